package services

import (
	"context"
	"fmt"

	"bazaar/internal/domain"
	"bazaar/internal/metrics"
	"bazaar/internal/scoring"

	"golang.org/x/sync/errgroup"
)

const (
	recommendationPool       = 100
	recommendationCandidates = 20
	Recommendations          = 5
)

type DashboardService struct {
	gw Gateway
}

func NewDashboardService(gw Gateway) *DashboardService {
	return &DashboardService{gw: gw}
}

// UserDashboard returns a user's purchases, newest first, the total spent and
// a handful of recommended items the user has not bought.
func (s *DashboardService) UserDashboard(ctx context.Context, userID int64) (d domain.Dashboard, err error) {
	defer metrics.Track("user_dashboard", &err)()

	u, err := s.gw.FetchUserByID(ctx, userID)
	if err != nil {
		return d, fmt.Errorf("fetch user %d: %w", userID, err)
	}
	if u == nil {
		return d, fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
	}
	d.User = u

	if d.Purchases, err = s.gw.FetchPurchaseHistory(ctx, userID); err != nil {
		return d, fmt.Errorf("purchase history %d: %w", userID, err)
	}
	bought := make(map[int64]struct{}, len(d.Purchases))
	for _, p := range d.Purchases {
		d.TotalSpend += p.Price
		bought[p.ItemID] = struct{}{}
	}

	d.Recommendations, err = s.recommend(ctx, bought)
	return d, err
}

func (s *DashboardService) recommend(ctx context.Context, bought map[int64]struct{}) ([]domain.Item, error) {
	latest, err := s.gw.LatestItems(ctx, recommendationPool)
	if err != nil {
		return nil, fmt.Errorf("latest items: %w", err)
	}
	cands := make([]domain.Item, 0, recommendationCandidates)
	for _, it := range latest {
		if len(cands) == recommendationCandidates {
			break
		}
		if _, ok := bought[it.ID]; !ok {
			cands = append(cands, it)
		}
	}

	scored := make([]scoring.Scored, len(cands))
	g, gctx := errgroup.WithContext(ctx)
	for i, it := range cands {
		g.Go(func() error {
			sig, err := s.signals(gctx, it.ID)
			if err != nil {
				return err
			}
			scored[i] = scoring.Scored{Item: it, Score: scoring.Score(sig)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scoring.Top(scoring.StableSort(scored, scoring.ByScoreDesc), Recommendations), nil
}

// signals loads the ranking inputs of a recommendation. Comments do not count
// towards it.
func (s *DashboardService) signals(ctx context.Context, itemID int64) (scoring.Signals, error) {
	var sig scoring.Signals
	views, err := s.gw.CountViews(ctx, itemID)
	if err != nil {
		return sig, fmt.Errorf("item %d views: %w", itemID, err)
	}
	ratings, err := s.gw.FetchRatings(ctx, itemID)
	if err != nil {
		return sig, fmt.Errorf("item %d ratings: %w", itemID, err)
	}
	favs, err := s.gw.CountFavorites(ctx, itemID)
	if err != nil {
		return sig, fmt.Errorf("item %d favorites: %w", itemID, err)
	}
	sales, err := s.gw.CountSales(ctx, itemID)
	if err != nil {
		return sig, fmt.Errorf("item %d sales: %w", itemID, err)
	}
	return scoring.Signals{
		Views:     views,
		Favorites: favs,
		Sales:     sales,
		Rating:    scoring.AverageRating(ratings),
	}, nil
}
