package handlers_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"bazaar/internal/config"
	"bazaar/internal/domain"
	"bazaar/internal/http/handlers"
	"bazaar/internal/repos"
)

// newTestApp wires the real routes over a seeded in-memory store.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	cfg := config.Config{DBDSN: ":memory:", EnrichWorkers: 2}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := repos.Seed(context.Background(), db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return handlers.NewApp(handlers.NewDeps(db, cfg)), db
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, body
}

func get(t *testing.T, app *fiber.App, target string, cookies ...*http.Cookie) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return do(t, app, req)
}

func postForm(t *testing.T, app *fiber.App, target string, form url.Values, cookies ...*http.Cookie) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return do(t, app, req)
}

func decode(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
}

type listing struct {
	Page     int                   `json:"page"`
	Products []domain.EnrichedItem `json:"products"`
}

func TestListRoute(t *testing.T) {
	app, _ := newTestApp(t)

	for _, q := range []string{"/", "/?page=abc", "/?page=-3", "/?page=4611686018427387904"} {
		resp, body := get(t, app, q)
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("%s: status %d body=%s", q, resp.StatusCode, body)
		}
		var l listing
		decode(t, body, &l)
		if l.Page != 0 || len(l.Products) != 8 || l.Products[0].ID != 8 {
			t.Fatalf("%s: page=%d items=%d", q, l.Page, len(l.Products))
		}
	}

	_, body := get(t, app, "/?page=1")
	var l listing
	decode(t, body, &l)
	if l.Page != 1 || len(l.Products) != 0 {
		t.Fatalf("page 1 of a small catalog should be empty, got %d", len(l.Products))
	}
}

func TestDetailRoute(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := get(t, app, "/products/1")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status %d body=%s", resp.StatusCode, body)
	}
	var d domain.ItemDetail
	decode(t, body, &d)
	if d.Item.ID != 1 || d.Item.ViewCount != 1 || len(d.Related) != 5 || d.AlreadyBought {
		t.Fatalf("unexpected detail: id=%d views=%d related=%d bought=%v",
			d.Item.ID, d.Item.ViewCount, len(d.Related), d.AlreadyBought)
	}
	var sid string
	for _, c := range resp.Cookies() {
		if c.Name == "sid" {
			sid = c.Value
		}
	}
	if sid == "" {
		t.Fatal("detail view should issue a session cookie")
	}

	if resp, _ := get(t, app, "/products/999"); resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("unknown item: want 404, got %d", resp.StatusCode)
	}
	for _, bad := range []string{"/products/abc", "/products/0", "/products/-1"} {
		if resp, _ := get(t, app, bad); resp.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("%s: want 400, got %d", bad, resp.StatusCode)
		}
	}
}

func TestRelatedRoute(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := get(t, app, "/products/4/related?limit=2")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status %d body=%s", resp.StatusCode, body)
	}
	var out struct {
		Related []domain.Item `json:"related_items"`
	}
	decode(t, body, &out)
	if len(out.Related) != 2 || out.Related[0].ID != 3 {
		t.Fatalf("related: %+v", out.Related)
	}

	if resp, _ := get(t, app, "/products/4/related?limit=0"); resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("limit=0: want 400, got %d", resp.StatusCode)
	}
}

func TestUserRoute(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := get(t, app, "/users/1")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status %d body=%s", resp.StatusCode, body)
	}
	var d domain.Dashboard
	decode(t, body, &d)
	if d.TotalSpend != 11300 || len(d.Purchases) != 2 || len(d.Recommendations) != 5 {
		t.Fatalf("dashboard: %+v", d)
	}
	if strings.Contains(string(body), "password") || strings.Contains(string(body), "alice@") {
		t.Fatalf("dashboard leaks credentials: %s", body)
	}

	if resp, _ := get(t, app, "/users/42"); resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("unknown user: want 404, got %d", resp.StatusCode)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	app, _ := newTestApp(t)

	if resp, body := get(t, app, "/healthz"); resp.StatusCode != fiber.StatusOK || !strings.Contains(string(body), "true") {
		t.Fatalf("healthz: %d %s", resp.StatusCode, body)
	}
	get(t, app, "/")
	resp, body := get(t, app, "/metrics")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("metrics: status %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "bazaar_items_enriched_total") {
		t.Fatal("metrics missing enrichment counter")
	}
}

func TestUnknownRoute(t *testing.T) {
	app, _ := newTestApp(t)
	if resp, _ := get(t, app, "/nope"); resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("want 404, got %d", resp.StatusCode)
	}
}
