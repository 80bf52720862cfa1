package nav

import (
	"context"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

func TestPageHandlerMatchesNonFragment(t *testing.T) {
	var got []string
	tbl := router.NewTable(router.WithLogger(discardLogger()))
	if _, err := tbl.Register("/", func(ctx context.Context, params []string) error {
		return nil
	}, router.WithDefault(), router.WithTitle("Home")); err != nil {
		t.Fatal(err)
	}
	if _, err := tbl.Register(`/app#profile/(\d+)`, func(ctx context.Context, params []string) error {
		got = params
		return nil
	}, router.WithTitle("App")); err != nil {
		t.Fatal(err)
	}

	h := NewPageHandler(tbl, discardLogger())

	// A full page load never carries the fragment; "/app" must match
	// the pre-fragment portion of the pattern.
	req := httptest.NewRequest("GET", "/app", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if want := []string{"app"}; !reflect.DeepEqual(got, want) {
		t.Errorf("handler params = %v, want %v", got, want)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<title>App</title>") {
		t.Errorf("body missing title: %s", body)
	}
}

func TestPageHandlerFallsBackToDefault(t *testing.T) {
	calls := 0
	tbl := router.NewTable(router.WithLogger(discardLogger()))
	if _, err := tbl.Register("/", func(ctx context.Context, params []string) error {
		calls++
		if len(params) != 0 {
			t.Errorf("default handler params = %v, want none", params)
		}
		return nil
	}, router.WithDefault(), router.WithTitle("Home")); err != nil {
		t.Fatal(err)
	}

	h := NewPageHandler(tbl, discardLogger())

	req := httptest.NewRequest("GET", "/no/such/page", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200 (fallback is recoverable)", rec.Code)
	}
	if calls != 1 {
		t.Errorf("default handler calls = %d, want 1", calls)
	}
}

func TestPageHandlerHandlerError(t *testing.T) {
	tbl := router.NewTable(router.WithLogger(discardLogger()))
	if _, err := tbl.Register("/", func(ctx context.Context, params []string) error {
		return context.DeadlineExceeded
	}, router.WithDefault()); err != nil {
		t.Fatal(err)
	}

	h := NewPageHandler(tbl, discardLogger())

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != 500 {
		t.Errorf("status = %d, want 500 on handler error", rec.Code)
	}
}
