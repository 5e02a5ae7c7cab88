package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-backoffice/internal/gateway"
)

type fakeSource struct {
	values map[string]any
	err    error
	calls  int
	routes []gateway.Route
}

func (f *fakeSource) FetchObject(_ context.Context, route gateway.Route) (map[string]any, error) {
	f.calls++
	f.routes = append(f.routes, route)
	if f.err != nil {
		return nil, f.err
	}
	return f.values, nil
}

func TestAllIsSafeBeforeFirstRefresh(t *testing.T) {
	cache, err := New(&fakeSource{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	all := cache.All()
	if all == nil {
		t.Fatal("All() returned nil before load")
	}
	if len(all) != 0 {
		t.Fatalf("All() = %v, want empty", all)
	}
	if _, ok := cache.Get("siteName"); ok {
		t.Fatal("Get() reported presence before load")
	}
	if cache.Loaded() {
		t.Fatal("Loaded() true before refresh")
	}
}

func TestRefreshSwapsSnapshot(t *testing.T) {
	source := &fakeSource{values: map[string]any{"siteName": "Consult Co", "contactEmail": "hi@x.com"}}
	cache, err := New(source)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := cache.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if got := cache.GetString("siteName"); got != "Consult Co" {
		t.Fatalf("GetString = %q", got)
	}
	if !cache.Loaded() {
		t.Fatal("Loaded() false after refresh")
	}
	if cache.RefreshedAt().IsZero() {
		t.Fatal("RefreshedAt not set")
	}
	if source.routes[0].Path != DefaultPath {
		t.Fatalf("route path = %q", source.routes[0].Path)
	}
}

func TestFailedRefreshKeepsLastGood(t *testing.T) {
	source := &fakeSource{values: map[string]any{"siteName": "Consult Co"}}
	cache, err := New(source)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := cache.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	source.err = &gateway.RequestError{StatusCode: 500, Message: "boom"}
	if err := cache.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh failure")
	}
	if got := cache.GetString("siteName"); got != "Consult Co" {
		t.Fatalf("last-good snapshot lost: %q", got)
	}
	if !cache.Loaded() {
		t.Fatal("Loaded() reset by failed refresh")
	}
}

func TestAllReturnsCopy(t *testing.T) {
	source := &fakeSource{values: map[string]any{"siteName": "Consult Co"}}
	cache, err := New(source)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := cache.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	all := cache.All()
	all["siteName"] = "mutated"
	if got := cache.GetString("siteName"); got != "Consult Co" {
		t.Fatalf("caller mutation leaked into cache: %q", got)
	}
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrSourceRequired) {
		t.Fatalf("expected ErrSourceRequired, got %v", err)
	}
}
