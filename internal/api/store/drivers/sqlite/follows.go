package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/matrixmedia/matrix/internal/api/domain"
)

type followsRepo struct {
	db dbtx
}

func (r *followsRepo) Follow(ctx context.Context, followerID, followeeID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO follows (follower_id, followee_id, created_at) VALUES (?, ?, ?)`,
		followerID, followeeID, millis(at),
	)
	return mapConflict(err)
}

func (r *followsRepo) Unfollow(ctx context.Context, followerID, followeeID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = ? AND followee_id = ?`,
		followerID, followeeID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *followsRepo) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = ? AND followee_id = ?)`,
		followerID, followeeID,
	).Scan(&exists)
	return exists == 1, err
}

// Insertion order is created_at with rowid breaking ties; a re-follow gets
// a fresh row and so moves to the end.
func (r *followsRepo) ListFollowers(ctx context.Context, userID string) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+prefixed("u", userColumns)+`
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.followee_id = ?
		ORDER BY f.created_at, f.rowid`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (r *followsRepo) ListFollowing(ctx context.Context, userID string) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+prefixed("u", userColumns)+`
		FROM follows f
		JOIN users u ON u.id = f.followee_id
		WHERE f.follower_id = ?
		ORDER BY f.created_at, f.rowid`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

// followedAmongBatch keeps each IN list well under SQLite's bound
// variable limit.
const followedAmongBatch = 500

func (r *followsRepo) FollowedAmong(ctx context.Context, followerID string, ids []string) (map[string]bool, error) {
	out := make(map[string]bool, len(ids))

	for start := 0; start < len(ids); start += followedAmongBatch {
		batch := ids[start:min(start+followedAmongBatch, len(ids))]
		if err := r.followedIn(ctx, followerID, batch, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *followsRepo) followedIn(ctx context.Context, followerID string, ids []string, out map[string]bool) error {
	args := make([]any, 0, len(ids)+1)
	args = append(args, followerID)
	for _, id := range ids {
		args = append(args, id)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	rows, err := r.db.QueryContext(ctx,
		`SELECT followee_id FROM follows WHERE follower_id = ? AND followee_id IN (`+placeholders+`)`,
		args...,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		out[id] = true
	}
	return rows.Err()
}

func (r *followsRepo) CountFollowers(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM follows WHERE followee_id = ?`, userID).Scan(&n)
	return n, err
}

func (r *followsRepo) CountFollowing(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM follows WHERE follower_id = ?`, userID).Scan(&n)
	return n, err
}

// prefixed qualifies every column in a comma separated list with alias.
func prefixed(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
