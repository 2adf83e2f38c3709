package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/matrixmedia/matrix/internal/api/domain"
)

type postMarksRepo struct {
	db dbtx
}

func markTable(kind domain.PostMarkKind) (string, error) {
	switch kind {
	case domain.PostLiked:
		return "post_likes", nil
	case domain.PostSaved:
		return "post_saves", nil
	}
	return "", fmt.Errorf("sqlite: unknown post mark kind %q", kind)
}

func (r *postMarksRepo) Add(ctx context.Context, kind domain.PostMarkKind, userID, postID string, at time.Time) error {
	table, err := markTable(kind)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO `+table+` (user_id, post_id, created_at) VALUES (?, ?, ?)`,
		userID, postID, millis(at),
	)
	return mapConflict(err)
}

func (r *postMarksRepo) Remove(ctx context.Context, kind domain.PostMarkKind, userID, postID string) (bool, error) {
	table, err := markTable(kind)
	if err != nil {
		return false, err
	}
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM `+table+` WHERE user_id = ? AND post_id = ?`,
		userID, postID,
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

func (r *postMarksRepo) List(ctx context.Context, kind domain.PostMarkKind, userID string) ([]domain.PostMark, error) {
	table, err := markTable(kind)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT post_id, created_at FROM `+table+` WHERE user_id = ? ORDER BY created_at, rowid`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	marks := []domain.PostMark{}
	for rows.Next() {
		var (
			m  domain.PostMark
			at int64
		)
		if err := rows.Scan(&m.PostID, &at); err != nil {
			return nil, err
		}
		m.CreatedAt = fromMillis(at)
		marks = append(marks, m)
	}
	return marks, rows.Err()
}

func (r *postMarksRepo) Count(ctx context.Context, kind domain.PostMarkKind, userID string) (int, error) {
	table, err := markTable(kind)
	if err != nil {
		return 0, err
	}
	var n int
	err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table+` WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}
