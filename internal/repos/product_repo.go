package repos

import (
	"context"
	"database/sql"
	"errors"

	"bazaar/internal/domain"

	"github.com/jmoiron/sqlx"
)

const itemColumns = `id, name, description, image_path, price, category_id, created_at`

type ItemRepo struct{ db *sqlx.DB }

func NewItemRepo(db *sqlx.DB) *ItemRepo { return &ItemRepo{db: db} }

// FetchItemsPage reads a physical window of the catalog, newest id first.
func (r *ItemRepo) FetchItemsPage(ctx context.Context, offset, limit int) ([]domain.Item, error) {
	out := []domain.Item{}
	err := r.db.SelectContext(ctx, &out, `
	  SELECT `+itemColumns+`
	  FROM products
	  ORDER BY id DESC
	  LIMIT ? OFFSET ?
	`, limit, offset)
	return out, err
}

// FetchItemByID returns nil when the item does not exist.
func (r *ItemRepo) FetchItemByID(ctx context.Context, id int64) (*domain.Item, error) {
	var it domain.Item
	err := r.db.GetContext(ctx, &it, `SELECT `+itemColumns+` FROM products WHERE id = ? LIMIT 1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// NearestItems returns up to limit items other than id, closest id first.
// Equal distances (id-1 and id+1) resolve to the lower id.
func (r *ItemRepo) NearestItems(ctx context.Context, id int64, limit int) ([]domain.Item, error) {
	out := []domain.Item{}
	err := r.db.SelectContext(ctx, &out, `
	  SELECT `+itemColumns+`
	  FROM products
	  WHERE id != ?
	  ORDER BY ABS(id - ?), id
	  LIMIT ?
	`, id, id, limit)
	return out, err
}

// LatestItems returns the newest limit items by id.
func (r *ItemRepo) LatestItems(ctx context.Context, limit int) ([]domain.Item, error) {
	return r.FetchItemsPage(ctx, 0, limit)
}

// CreateItem inserts a catalog row and returns its id. Test fixture helper;
// items only enter through Seed.
func (r *ItemRepo) CreateItem(ctx context.Context, it domain.Item) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
	  INSERT INTO products(name, description, image_path, price, category_id)
	  VALUES(?, ?, ?, ?, ?)
	`, it.Name, it.Description, it.ImagePath, it.Price, it.CategoryID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
