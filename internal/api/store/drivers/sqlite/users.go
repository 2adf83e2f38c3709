package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/matrixmedia/matrix/internal/api/domain"
	"github.com/matrixmedia/matrix/internal/api/store"
)

const userColumns = `id, username, full_name, email, phone, password_hash, provider,
	google_id, github_id, facebook_id, profile_image, cover_image, bio,
	current_address, media_link, verified, otp_code, otp_issued_at, otp_expires_at,
	last_login_at, created_at, updated_at`

type usersRepo struct {
	db dbtx
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u                                  domain.User
		email, phone, hash                 sql.NullString
		googleID, githubID, facebookID     sql.NullString
		otpCode                            sql.NullString
		otpIssued, otpExpires, lastLoginAt sql.NullInt64
		provider                           string
		verified                           int64
		createdAt, updatedAt               int64
	)

	err := row.Scan(
		&u.ID, &u.Username, &u.FullName, &email, &phone, &hash, &provider,
		&googleID, &githubID, &facebookID, &u.ProfileImage, &u.CoverImage, &u.Bio,
		&u.CurrentAddress, &u.MediaLink, &verified, &otpCode, &otpIssued, &otpExpires,
		&lastLoginAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}

	u.Email = mapNullString(email)
	u.Phone = mapNullString(phone)
	u.PasswordHash = mapNullString(hash)
	u.Provider = domain.Provider(provider)
	u.GoogleID = mapNullString(googleID)
	u.GitHubID = mapNullString(githubID)
	u.FacebookID = mapNullString(facebookID)
	u.Verified = verified != 0
	u.LastLoginAt = mapNullTimePtr(lastLoginAt)
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)

	if otpCode.Valid && otpIssued.Valid && otpExpires.Valid {
		u.OTP = &domain.OTP{
			Code:      otpCode.String,
			IssuedAt:  fromMillis(otpIssued.Int64),
			ExpiresAt: fromMillis(otpExpires.Int64),
		}
	}

	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	provider := u.Provider
	if provider == "" {
		provider = domain.ProviderEmail
	}
	updatedAt := u.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = u.CreatedAt
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, username, full_name, email, phone, password_hash, provider,
			google_id, github_id, facebook_id, profile_image, cover_image, bio,
			current_address, media_link, verified, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.FullName,
		mapStringNull(u.Email), mapStringNull(u.Phone), mapStringNull(u.PasswordHash),
		string(provider),
		mapStringNull(u.GoogleID), mapStringNull(u.GitHubID), mapStringNull(u.FacebookID),
		u.ProfileImage, u.CoverImage, u.Bio, u.CurrentAddress, u.MediaLink,
		boolInt(u.Verified), millis(u.CreatedAt), millis(updatedAt),
	)
	return mapConflict(err)
}

func (r *usersRepo) getOne(ctx context.Context, where string, args ...any) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+where+` LIMIT 1`, args...)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.getOne(ctx, `id = ?`, id)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getOne(ctx, `username = ?`, username)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	if email == "" {
		return domain.User{}, store.ErrNotFound
	}
	return r.getOne(ctx, `email = ?`, email)
}

func (r *usersRepo) GetUserByLogin(ctx context.Context, identifier string) (domain.User, error) {
	if identifier == "" {
		return domain.User{}, store.ErrNotFound
	}
	// A phone or email match outranks a username that happens to spell
	// the same string.
	return r.getOne(ctx,
		`(username = ? OR email = ? OR phone = ?)
		ORDER BY CASE WHEN phone = ? THEN 0 WHEN email = ? THEN 1 ELSE 2 END`,
		identifier, identifier, identifier, identifier, identifier)
}

func providerColumn(p domain.Provider) (string, error) {
	switch p {
	case domain.ProviderGoogle:
		return "google_id", nil
	case domain.ProviderGitHub:
		return "github_id", nil
	case domain.ProviderFacebook:
		return "facebook_id", nil
	}
	return "", fmt.Errorf("sqlite: provider %q has no external id column", p)
}

func (r *usersRepo) GetUserByProviderID(ctx context.Context, p domain.Provider, providerID string) (domain.User, error) {
	col, err := providerColumn(p)
	if err != nil {
		return domain.User{}, err
	}
	if providerID == "" {
		return domain.User{}, store.ErrNotFound
	}
	return r.getOne(ctx, col+` = ?`, providerID)
}

// escapeLike makes s match literally inside a LIKE pattern using '\' as
// the escape character.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *usersRepo) SearchUsers(ctx context.Context, query, excludeID string, limit int) ([]domain.User, error) {
	pattern := "%" + escapeLike(query) + "%"
	prefix := escapeLike(query) + "%"

	// Prefix matches on username rank ahead of substring matches.
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE id <> ?
		  AND (username LIKE ? ESCAPE '\' OR full_name LIKE ? ESCAPE '\')
		ORDER BY CASE WHEN username LIKE ? ESCAPE '\' THEN 0 ELSE 1 END, username
		LIMIT ?`,
		excludeID, pattern, pattern, prefix, limit,
	)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func collectUsers(rows *sql.Rows) ([]domain.User, error) {
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// execOne runs a single-row update and reports ErrNotFound when no row
// matched.
func (r *usersRepo) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapConflict(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.execOne(ctx, `UPDATE users SET last_login_at = ? WHERE id = ?`, millis(at), id)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, id, hash string, at time.Time) error {
	return r.execOne(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		hash, millis(at), id,
	)
}

func (r *usersRepo) UpdateProfile(ctx context.Context, id string, upd store.ProfileUpdate, at time.Time) error {
	var (
		sets []string
		args []any
	)
	add := func(col string, v *string) {
		if v == nil {
			return
		}
		sets = append(sets, col+" = ?")
		args = append(args, *v)
	}

	add("username", upd.Username)
	add("full_name", upd.FullName)
	add("bio", upd.Bio)
	add("current_address", upd.CurrentAddress)
	add("media_link", upd.MediaLink)
	add("password_hash", upd.PasswordHash)

	sets = append(sets, "updated_at = ?")
	args = append(args, millis(at), id)

	return r.execOne(ctx, `UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
}

func (r *usersRepo) UpdateImages(ctx context.Context, id string, profile, cover *string, at time.Time) error {
	return r.execOne(ctx, `
		UPDATE users
		SET profile_image = COALESCE(?, profile_image),
		    cover_image   = COALESCE(?, cover_image),
		    updated_at    = ?
		WHERE id = ?`,
		nullablePtr(profile), nullablePtr(cover), millis(at), id,
	)
}

func (r *usersRepo) LinkProvider(ctx context.Context, id string, p domain.Provider, providerID string, at time.Time) error {
	col, err := providerColumn(p)
	if err != nil {
		return err
	}
	return r.execOne(ctx,
		`UPDATE users SET provider = ?, `+col+` = ?, updated_at = ? WHERE id = ?`,
		string(p), providerID, millis(at), id,
	)
}

func (r *usersRepo) IssueOTP(ctx context.Context, id string, otp domain.OTP, cooldownCutoff time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET otp_code = ?, otp_issued_at = ?, otp_expires_at = ?
		WHERE id = ? AND (otp_issued_at IS NULL OR otp_issued_at <= ?)`,
		otp.Code, millis(otp.IssuedAt), millis(otp.ExpiresAt), id, millis(cooldownCutoff),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *usersRepo) ClearOTP(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET otp_code = NULL, otp_issued_at = NULL, otp_expires_at = NULL WHERE id = ?`,
		id,
	)
	return err
}

func (r *usersRepo) ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET otp_code = NULL, otp_issued_at = NULL, otp_expires_at = NULL
		WHERE otp_expires_at IS NOT NULL AND otp_expires_at <= ?`,
		millis(now),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullablePtr(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
