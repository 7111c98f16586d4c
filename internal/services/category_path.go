package services

import (
	"context"
	"fmt"
	"slices"

	"bazaar/internal/domain"
)

// MaxCategoryDepth bounds the parent walk.
const MaxCategoryDepth = 64

// CategoryPath resolves the chain from the root down to category id. A nil or
// zero id, or an unknown category, yields an empty path. The walk stops at a missing
// parent or a null/zero parent link. A chain that revisits a category or runs
// past MaxCategoryDepth fails with domain.ErrCategoryCycle.
func CategoryPath(ctx context.Context, gw Gateway, id *int64) ([]domain.Category, error) {
	path := []domain.Category{}
	if id == nil || *id == 0 {
		return path, nil
	}

	seen := make(map[int64]struct{})
	next := *id
	for {
		if _, ok := seen[next]; ok {
			return nil, fmt.Errorf("category %d revisited: %w", next, domain.ErrCategoryCycle)
		}
		if len(seen) == MaxCategoryDepth {
			return nil, fmt.Errorf("category %d deeper than %d: %w", *id, MaxCategoryDepth, domain.ErrCategoryCycle)
		}
		seen[next] = struct{}{}

		c, err := gw.FetchCategoryByID(ctx, next)
		if err != nil {
			return nil, fmt.Errorf("fetch category %d: %w", next, err)
		}
		if c == nil {
			break
		}
		path = append(path, *c)
		if !c.ParentID.Valid || c.ParentID.Int64 == 0 {
			break
		}
		next = c.ParentID.Int64
	}

	// collected leaf first
	slices.Reverse(path)
	return path, nil
}
