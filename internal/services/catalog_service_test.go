package services_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"bazaar/internal/domain"
	"bazaar/internal/repos"
	"bazaar/internal/services"
)

// seededStore opens a fresh in-memory store with the demo catalog.
func seededStore(t *testing.T) *repos.Store {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := repos.Seed(context.Background(), db); err != nil {
		t.Fatal(err)
	}
	return repos.NewStore(db)
}

func ptr(v int64) *int64 { return &v }

func ids(items []domain.Item) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestListItems_FirstPage(t *testing.T) {
	st := seededStore(t)
	svc := services.NewCatalogService(st, 4)

	got, err := svc.ListItems(context.Background(), 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 8 {
		t.Fatalf("want 8 items, got %d", len(got))
	}
	for i, e := range got {
		if want := int64(8 - i); e.ID != want {
			t.Fatalf("row %d: want id %d, got %d", i, want, e.ID)
		}
	}

	chair := got[7]
	if chair.Stock != 17 {
		t.Errorf("stock: want 17, got %d", chair.Stock)
	}
	if chair.AverageRating != 4.3 {
		t.Errorf("rating: want 4.3, got %v", chair.AverageRating)
	}
	if chair.FavoriteCount != 1 || chair.SalesCount != 1 || chair.CommentCount != 2 {
		t.Errorf("counters: %+v", chair)
	}
	if !slices.Equal(chair.Tags, []string{"oak", "handmade"}) {
		t.Errorf("tags: %v", chair.Tags)
	}
	if chair.LowestPrice == nil || *chair.LowestPrice != 4800 {
		t.Errorf("lowest price: %v", chair.LowestPrice)
	}
	var names []string
	for _, c := range chair.CategoryPath {
		names = append(names, c.Name)
	}
	if !slices.Equal(names, []string{"Home", "Furniture", "Chairs"}) {
		t.Errorf("category path: %v", names)
	}
	if len(chair.Comments) != 2 || chair.Comments[0].AuthorName != "Carol" {
		t.Fatalf("comments: %+v", chair.Comments)
	}
	if chair.Comments[0].Content != "Arrived with a *** scratch, otherwise fine." {
		t.Errorf("comment not redacted: %q", chair.Comments[0].Content)
	}
	if chair.Score != 53.49 {
		t.Errorf("score: want 53.49, got %v", chair.Score)
	}
	if chair.Summary != chair.Description {
		t.Errorf("short description should not be truncated: %q", chair.Summary)
	}
	if chair.IsFavorited {
		t.Error("anonymous listing must not flag favorites")
	}

	vase := got[0]
	if len(vase.CategoryPath) != 0 || vase.LowestPrice != nil || vase.AverageRating != 0 {
		t.Errorf("uncategorised item without history: %+v", vase)
	}
}

func TestListItems_FavoriteFlagForUser(t *testing.T) {
	st := seededStore(t)
	svc := services.NewCatalogService(st, 2)

	got, err := svc.ListItems(context.Background(), 0, ptr(2))
	if err != nil {
		t.Fatal(err)
	}
	fav := map[int64]bool{}
	for _, e := range got {
		fav[e.ID] = e.IsFavorited
	}
	if !fav[1] || !fav[3] || fav[2] || fav[6] {
		t.Fatalf("favorite flags for user 2: %v", fav)
	}
}

func TestListItems_PastTheEnd(t *testing.T) {
	st := seededStore(t)
	svc := services.NewCatalogService(st, 1)

	got, err := svc.ListItems(context.Background(), 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty page, got %v", got)
	}
}

func TestItemDetail_RecordsViewBeforeCounting(t *testing.T) {
	st := seededStore(t)
	svc := services.NewCatalogService(st, 4)
	ctx := context.Background()

	d, err := svc.ItemDetail(ctx, 1, ptr(1), "sess-a")
	if err != nil {
		t.Fatal(err)
	}
	if d.Item.ViewCount != 1 {
		t.Fatalf("want view count 1, got %d", d.Item.ViewCount)
	}
	if !d.AlreadyBought {
		t.Error("alice bought item 1")
	}
	if len(d.Related) != 5 || slices.Contains(ids(d.Related), 1) {
		t.Fatalf("related: %v", ids(d.Related))
	}

	d, err = svc.ItemDetail(ctx, 1, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if d.Item.ViewCount != 2 || d.AlreadyBought {
		t.Fatalf("second anonymous view: views=%d bought=%v", d.Item.ViewCount, d.AlreadyBought)
	}
}

func TestItemDetail_LongSummary(t *testing.T) {
	st := seededStore(t)
	ctx := context.Background()
	long := make([]rune, 250)
	for i := range long {
		long[i] = 'é'
	}
	id, err := st.CreateItem(ctx, domain.Item{Name: "Long", Description: string(long), Price: 100})
	if err != nil {
		t.Fatal(err)
	}

	svc := services.NewCatalogService(st, 4)
	d, err := svc.ItemDetail(ctx, id, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if n := len([]rune(d.Item.Summary)); n != services.DetailSummaryLength+3 {
		t.Fatalf("want %d characters, got %d", services.DetailSummaryLength+3, n)
	}
}

func TestItemDetail_NotFound(t *testing.T) {
	st := seededStore(t)
	svc := services.NewCatalogService(st, 4)

	_, err := svc.ItemDetail(context.Background(), 999, nil, "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	n, err := st.CountViews(context.Background(), 999)
	if err != nil || n != 0 {
		t.Fatalf("unknown item must not record a view: n=%d err=%v", n, err)
	}
}

func TestRelated(t *testing.T) {
	st := seededStore(t)
	svc := services.NewCatalogService(st, 4)
	ctx := context.Background()

	a, err := svc.Related(ctx, 4, 3)
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.Related(ctx, 4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 3 || !slices.Equal(ids(a), ids(b)) {
		t.Fatalf("want stable top 3, got %v then %v", ids(a), ids(b))
	}
	// "Brass Floor Lamp" shares most of its name, text and price band with
	// "Brass Desk Lamp".
	if a[0].ID != 3 {
		t.Fatalf("want item 3 first, got %v", ids(a))
	}

	none, err := svc.Related(ctx, 999, 3)
	if err != nil || len(none) != 0 {
		t.Fatalf("unknown reference: %v %v", none, err)
	}
}

type failingGateway struct {
	services.Gateway
	err error
}

func (f failingGateway) CountSales(context.Context, int64) (int, error) { return 0, f.err }

func TestListItems_PropagatesStoreFailure(t *testing.T) {
	boom := errors.New("store down")
	svc := services.NewCatalogService(failingGateway{Gateway: seededStore(t), err: boom}, 3)

	got, err := svc.ListItems(context.Background(), 0, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("want store error, got %v", err)
	}
	if got != nil {
		t.Fatalf("no partial page on failure, got %d items", len(got))
	}
}
