package repos

import (
	"context"
	"fmt"

	"bazaar/internal/domain"

	"github.com/jmoiron/sqlx"
)

// StockRepo reads and appends stock ledger events. Rows are never updated;
// current stock is derived from the whole ledger.
type StockRepo struct{ db *sqlx.DB }

func NewStockRepo(db *sqlx.DB) *StockRepo { return &StockRepo{db: db} }

func (r *StockRepo) FetchStockEvents(ctx context.Context, itemID int64) ([]domain.StockEvent, error) {
	out := []domain.StockEvent{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT product_id, quantity, operation
		FROM stocks
		WHERE product_id = ?
	`, itemID)
	return out, err
}

// RecordStock appends an add or remove event. Test fixture helper; purchases
// do not touch the ledger.
func (r *StockRepo) RecordStock(ctx context.Context, itemID, qty int64, op string) error {
	if op != domain.StockAdd && op != domain.StockRemove {
		return fmt.Errorf("unknown stock operation %q", op)
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stocks(product_id, quantity, operation) VALUES (?, ?, ?)
	`, itemID, qty, op)
	return err
}
