package repos

import (
	"context"

	"bazaar/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CommentRepo struct{ db *sqlx.DB }

func NewCommentRepo(db *sqlx.DB) *CommentRepo { return &CommentRepo{db: db} }

func (r *CommentRepo) CountComments(ctx context.Context, itemID int64) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM comments WHERE product_id = ?`, itemID)
	return n, err
}

// FetchComments returns the newest limit comments with their author names.
// Content is returned raw; redaction happens in the caller.
func (r *CommentRepo) FetchComments(ctx context.Context, itemID int64, limit int) ([]domain.CommentView, error) {
	out := []domain.CommentView{}
	err := r.db.SelectContext(ctx, &out, `
	  SELECT u.name, c.content
	  FROM comments AS c
	  INNER JOIN users AS u ON c.user_id = u.id
	  WHERE c.product_id = ?
	  ORDER BY c.created_at DESC, c.id DESC
	  LIMIT ?
	`, itemID, limit)
	return out, err
}

func (r *CommentRepo) RecordComment(ctx context.Context, itemID, userID int64, content string) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO comments(product_id, user_id, content, created_at)
	  VALUES(?, ?, ?, CURRENT_TIMESTAMP)
	`, itemID, userID, content)
	return err
}
