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
	// LatestComments is how many moderated comments an enriched item carries.
	LatestComments = 5
	// DetailSummaryLength is the summary length on the item detail view.
	DetailSummaryLength = 200
	// relatedCandidates is how many nearest-id items the related matcher scores.
	relatedCandidates = 100
)

type CatalogService struct {
	gw      Gateway
	workers int
}

// NewCatalogService returns a service enriching at most workers items at a
// time. workers below 1 is treated as 1.
func NewCatalogService(gw Gateway, workers int) *CatalogService {
	return &CatalogService{gw: gw, workers: max(1, workers)}
}

// ListItems returns one page of enriched items, highest id first.
func (s *CatalogService) ListItems(ctx context.Context, page int, userID *int64) (out []domain.EnrichedItem, err error) {
	defer metrics.Track("list_items", &err)()

	w := scoring.Window(page)
	rows, err := s.gw.FetchItemsPage(ctx, w.Offset, w.Limit)
	if err != nil {
		return nil, fmt.Errorf("fetch page %d: %w", w.Page, err)
	}
	rows = scoring.Slice(w, scoring.StableSort(rows, scoring.ByIDDesc))
	return s.enrichAll(ctx, rows, userID, scoring.DefaultSummaryLength)
}

// ItemDetail records a view of the item and returns it enriched together with
// its related items. Unknown ids fail with domain.ErrNotFound.
func (s *CatalogService) ItemDetail(ctx context.Context, itemID int64, userID *int64, sessionID string) (d domain.ItemDetail, err error) {
	defer metrics.Track("item_detail", &err)()

	it, err := s.gw.FetchItemByID(ctx, itemID)
	if err != nil {
		return d, fmt.Errorf("fetch item %d: %w", itemID, err)
	}
	if it == nil {
		return d, fmt.Errorf("item %d: %w", itemID, domain.ErrNotFound)
	}

	// recorded first so the view count below includes this visit
	if err := s.gw.RecordView(ctx, itemID, userID, sessionID); err != nil {
		return d, fmt.Errorf("record view %d: %w", itemID, err)
	}
	metrics.ViewsRecorded.Inc()

	d.Item, err = s.enrich(ctx, *it, userID, DetailSummaryLength)
	if err != nil {
		return d, err
	}
	if d.Related, err = s.related(ctx, *it, scoring.DefaultRelatedLimit); err != nil {
		return d, err
	}
	if userID != nil {
		if d.AlreadyBought, err = s.gw.HasPurchased(ctx, itemID, *userID); err != nil {
			return d, fmt.Errorf("purchase check %d: %w", itemID, err)
		}
	}
	return d, nil
}

// Related returns up to limit items similar to itemID. An unknown reference
// yields an empty list.
func (s *CatalogService) Related(ctx context.Context, itemID int64, limit int) (out []domain.Item, err error) {
	defer metrics.Track("related_items", &err)()

	ref, err := s.gw.FetchItemByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("fetch item %d: %w", itemID, err)
	}
	if ref == nil {
		return []domain.Item{}, nil
	}
	return s.related(ctx, *ref, limit)
}

func (s *CatalogService) related(ctx context.Context, ref domain.Item, limit int) ([]domain.Item, error) {
	cands, err := s.gw.NearestItems(ctx, ref.ID, relatedCandidates)
	if err != nil {
		return nil, fmt.Errorf("nearest items %d: %w", ref.ID, err)
	}
	return scoring.TopRelated(ref, cands, limit), nil
}

// enrichAll enriches rows with at most s.workers in flight. Each result lands
// in the slot of its row, so the output keeps row order.
func (s *CatalogService) enrichAll(ctx context.Context, rows []domain.Item, userID *int64, summaryLen int) ([]domain.EnrichedItem, error) {
	out := make([]domain.EnrichedItem, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, it := range rows {
		g.Go(func() error {
			e, err := s.enrich(gctx, it, userID, summaryLen)
			if err != nil {
				return err
			}
			out[i] = e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// enrich fetches every signal of one item concurrently and returns only once
// all of them have resolved.
func (s *CatalogService) enrich(ctx context.Context, it domain.Item, userID *int64, summaryLen int) (domain.EnrichedItem, error) {
	e := domain.EnrichedItem{Item: it}
	var (
		stock   []domain.StockEvent
		ratings []float64
		prices  []int64
	)

	g, gctx := errgroup.WithContext(ctx)
	fetch := func(signal string, fn func() error) {
		g.Go(func() error {
			if err := fn(); err != nil {
				return fmt.Errorf("item %d %s: %w", it.ID, signal, err)
			}
			return nil
		})
	}

	fetch("comment count", func() (err error) {
		e.CommentCount, err = s.gw.CountComments(gctx, it.ID)
		return err
	})
	fetch("comments", func() (err error) {
		e.Comments, err = s.gw.FetchComments(gctx, it.ID, LatestComments)
		return err
	})
	fetch("ratings", func() (err error) {
		ratings, err = s.gw.FetchRatings(gctx, it.ID)
		return err
	})
	fetch("views", func() (err error) {
		e.ViewCount, err = s.gw.CountViews(gctx, it.ID)
		return err
	})
	fetch("favorites", func() (err error) {
		e.FavoriteCount, err = s.gw.CountFavorites(gctx, it.ID)
		return err
	})
	fetch("stock", func() (err error) {
		stock, err = s.gw.FetchStockEvents(gctx, it.ID)
		return err
	})
	fetch("sales", func() (err error) {
		e.SalesCount, err = s.gw.CountSales(gctx, it.ID)
		return err
	})
	fetch("tags", func() (err error) {
		e.Tags, err = s.gw.FetchTags(gctx, it.ID)
		return err
	})
	fetch("category path", func() (err error) {
		e.CategoryPath, err = CategoryPath(gctx, s.gw, it.CategoryRef())
		return err
	})
	fetch("price history", func() (err error) {
		prices, err = s.gw.FetchPriceHistory(gctx, it.ID)
		return err
	})
	if userID != nil {
		fetch("favorite flag", func() (err error) {
			e.IsFavorited, err = s.gw.IsFavorited(gctx, *userID, it.ID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return domain.EnrichedItem{}, err
	}

	for i := range e.Comments {
		e.Comments[i].Content = scoring.Redact(e.Comments[i].Content)
	}
	e.Stock = scoring.StockLevel(stock)
	e.AverageRating = scoring.AverageRating(ratings)
	e.LowestPrice = scoring.LowestPrice(prices)
	e.Score = scoring.Score(scoring.Signals{
		Views:     e.ViewCount,
		Favorites: e.FavoriteCount,
		Sales:     e.SalesCount,
		Rating:    e.AverageRating,
		Comments:  e.CommentCount,
	})
	e.Summary = scoring.Summarize(it.Description, summaryLen)
	metrics.ItemsEnriched.Inc()
	return e, nil
}
