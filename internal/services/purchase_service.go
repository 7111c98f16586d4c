package services

import (
	"context"
	"fmt"

	"bazaar/internal/domain"
)

type PurchaseService struct {
	gw Gateway
}

func NewPurchaseService(gw Gateway) *PurchaseService {
	return &PurchaseService{gw: gw}
}

// Buy records a completed purchase of one unit. Stock is neither checked nor
// changed.
func (s *PurchaseService) Buy(ctx context.Context, itemID, userID int64) error {
	it, err := s.gw.FetchItemByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("fetch item %d: %w", itemID, err)
	}
	if it == nil {
		return fmt.Errorf("item %d: %w", itemID, domain.ErrNotFound)
	}
	if err := s.gw.RecordPurchase(ctx, itemID, userID); err != nil {
		return fmt.Errorf("record purchase %d: %w", itemID, err)
	}
	return nil
}
