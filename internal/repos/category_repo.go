package repos

import (
	"context"
	"database/sql"
	"errors"

	"bazaar/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// FetchCategoryByID returns nil when the category does not exist.
func (r *CategoryRepo) FetchCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	var c domain.Category
	err := r.db.GetContext(ctx, &c, `
	  SELECT id, name, description, parent_id, created_at
	  FROM categories
	  WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCategory inserts a category under parent (nil for a root). Test
// fixture helper; the catalog API is read-only for categories.
func (r *CategoryRepo) CreateCategory(ctx context.Context, name, description string, parent *int64) (int64, error) {
	var p sql.NullInt64
	if parent != nil {
		p = sql.NullInt64{Int64: *parent, Valid: true}
	}
	res, err := r.db.ExecContext(ctx, `
	  INSERT INTO categories(name, description, parent_id) VALUES(?, ?, ?)
	`, name, description, p)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// SetCategoryParent re-parents a category. No cycle check is made here; the
// path resolver guards against cycles on read. Test fixture helper.
func (r *CategoryRepo) SetCategoryParent(ctx context.Context, id, parent int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE categories SET parent_id = ? WHERE id = ?`, parent, id)
	return err
}
