package repos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// EngagementRepo covers the per-item counters: views, favorites and sales.
// Counts are read fresh on every call.
type EngagementRepo struct{ db *sqlx.DB }

func NewEngagementRepo(db *sqlx.DB) *EngagementRepo { return &EngagementRepo{db: db} }

func (r *EngagementRepo) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, query, args...)
	return n, err
}

func (r *EngagementRepo) CountViews(ctx context.Context, itemID int64) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM product_views WHERE product_id = ?`, itemID)
}

func (r *EngagementRepo) CountFavorites(ctx context.Context, itemID int64) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM favorites WHERE product_id = ?`, itemID)
}

func (r *EngagementRepo) CountSales(ctx context.Context, itemID int64) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM histories WHERE product_id = ?`, itemID)
}

// RecordView appends a page view. userID and sessionID are optional.
func (r *EngagementRepo) RecordView(ctx context.Context, itemID int64, userID *int64, sessionID string) error {
	var uid sql.NullInt64
	if userID != nil {
		uid = sql.NullInt64{Int64: *userID, Valid: true}
	}
	sid := sql.NullString{String: sessionID, Valid: sessionID != ""}
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO product_views(product_id, user_id, session_id, viewed_at)
	  VALUES(?, ?, ?, CURRENT_TIMESTAMP)
	`, itemID, uid, sid)
	return err
}

func (r *EngagementRepo) IsFavorited(ctx context.Context, userID, itemID int64) (bool, error) {
	n, err := r.count(ctx, `SELECT COUNT(*) FROM favorites WHERE user_id = ? AND product_id = ?`, userID, itemID)
	return n > 0, err
}

// AddFavorite marks an item as a user's favorite. Test fixture helper; no
// route toggles favorites.
func (r *EngagementRepo) AddFavorite(ctx context.Context, userID, itemID int64) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO favorites(product_id, user_id, created_at)
	  VALUES(?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(user_id, product_id) DO NOTHING
	`, itemID, userID)
	return err
}

// RemoveFavorite is the fixture counterpart of AddFavorite.
func (r *EngagementRepo) RemoveFavorite(ctx context.Context, userID, itemID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = ? AND product_id = ?`, userID, itemID)
	return err
}
