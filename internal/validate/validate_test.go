package validate_test

import (
	"strconv"
	"testing"

	"bazaar/internal/scoring"
	"bazaar/internal/validate"
)

func TestPage(t *testing.T) {
	cases := map[string]int{
		"": 0, "0": 0, "3": 3, " 7 ": 7, "-1": 0, "abc": 0, "2.5": 0,
		"4611686018427387904":             0,
		"99999999999999999999":            0,
		strconv.Itoa(scoring.MaxPage):     scoring.MaxPage,
		strconv.Itoa(scoring.MaxPage + 1): 0,
	}
	for in, want := range cases {
		if got := validate.Page(in); got != want {
			t.Errorf("Page(%q): want %d, got %d", in, want, got)
		}
	}
}

func TestID(t *testing.T) {
	if id, ok := validate.ID("42"); !ok || id != 42 {
		t.Fatalf("want 42, got %d %v", id, ok)
	}
	for _, bad := range []string{"", "0", "-4", "abc", "1e3", "12345678901234567890"} {
		if _, ok := validate.ID(bad); ok {
			t.Errorf("ID(%q) should be rejected", bad)
		}
	}
}

func TestStruct(t *testing.T) {
	type form struct {
		Content string `validate:"required,max=10"`
	}
	if err := validate.Struct(form{Content: "ok"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := validate.Struct(form{})
	if err == nil {
		t.Fatal("want error for empty content")
	}
	if got := validate.FieldErrors(err)["Content"]; got != "required" {
		t.Fatalf("want required tag, got %v", got)
	}
}
