package log_test

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	applog "bazaar/internal/log"
)

type logLine struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	Path   string         `json:"path"`
	ReqID  string         `json:"req_id"`
	Err    string         `json:"err"`
	Fields map[string]any `json:"fields"`
}

func capture(t *testing.T, fn func()) []logLine {
	t.Helper()
	var buf bytes.Buffer
	applog.Init(applog.Config{Level: "debug", Output: &buf})
	t.Cleanup(func() { applog.Init(applog.Config{}) })

	fn()

	var out []logLine
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var l logLine
		if err := json.Unmarshal([]byte(line), &l); err != nil {
			t.Fatalf("log line is not JSON: %q", line)
		}
		out = append(out, l)
	}
	return out
}

func TestRequestScopedEntries(t *testing.T) {
	app := fiber.New()
	app.Use(requestid.New())
	app.Get("/boom", func(c *fiber.Ctx) error {
		applog.Error(c, "catalog.list.fail", errors.New("db down"), map[string]any{"page": 2})
		applog.Security(c, "validation.fail", nil)
		return c.SendStatus(fiber.StatusNoContent)
	})

	lines := capture(t, func() {
		if _, err := app.Test(httptest.NewRequest("GET", "/boom", nil)); err != nil {
			t.Fatal(err)
		}
	})
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %d", len(lines))
	}
	e := lines[0]
	if e.Level != "error" || e.Action != "catalog.list.fail" || e.Err != "db down" || e.Path != "/boom" {
		t.Fatalf("unexpected error entry: %+v", e)
	}
	if e.ReqID == "" {
		t.Fatal("request id missing")
	}
	if e.Fields["page"] != float64(2) {
		t.Fatalf("fields not carried: %+v", e.Fields)
	}
	if lines[1].Level != "warn" {
		t.Fatalf("security events log at warn, got %q", lines[1].Level)
	}
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	applog.Init(applog.Config{Level: "error", Output: &buf})
	defer applog.Init(applog.Config{})

	applog.Info(nil, "startup", nil)
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at error level: %s", buf.String())
	}
	applog.Error(nil, "startup.fail", errors.New("x"), nil)
	if !strings.Contains(buf.String(), `"action":"startup.fail"`) {
		t.Fatalf("error entry missing: %s", buf.String())
	}
}
