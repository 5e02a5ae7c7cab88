package listview

import (
	"testing"

	"github.com/goliatone/go-backoffice/internal/gateway"
	"github.com/goliatone/go-backoffice/internal/resources"
)

func applications(t *testing.T) resources.Descriptor {
	t.Helper()
	registry, err := resources.DefaultRegistry("")
	if err != nil {
		t.Fatalf("DefaultRegistry() error = %v", err)
	}
	descriptor, err := registry.Get("applications")
	if err != nil {
		t.Fatalf("Get(applications) error = %v", err)
	}
	return descriptor
}

func services(t *testing.T) resources.Descriptor {
	t.Helper()
	registry, err := resources.DefaultRegistry("")
	if err != nil {
		t.Fatalf("DefaultRegistry() error = %v", err)
	}
	descriptor, err := registry.Get("services")
	if err != nil {
		t.Fatalf("Get(services) error = %v", err)
	}
	return descriptor
}

func application(id, name, email, status string) *gateway.Record {
	return &gateway.Record{ID: id, Fields: map[string]any{
		"name":   name,
		"email":  email,
		"status": status,
	}}
}

func TestFilterBySearchMatchesAnyConfiguredField(t *testing.T) {
	descriptor := applications(t)
	items := []*gateway.Record{
		application("1", "John Doe", "jd@example.com", "pending"),
		application("2", "Jane Roe", "john.roe@example.com", "pending"),
		application("3", "Ann Smith", "ann@example.com", "pending"),
	}

	got := FilterBySearch(descriptor, items, "  JOHN ")
	if len(got) != 2 {
		t.Fatalf("matches = %d, want 2", len(got))
	}
	if got[0].ID != "1" || got[1].ID != "2" {
		t.Fatalf("matched ids = %s, %s", got[0].ID, got[1].ID)
	}
}

func TestFilterByStatusExactMatch(t *testing.T) {
	descriptor := applications(t)
	items := []*gateway.Record{
		application("1", "a", "a@x.com", "pending"),
		application("2", "b", "b@x.com", "approved"),
		application("3", "c", "c@x.com", "pending"),
	}

	got := FilterByStatus(descriptor, items, "pending")
	if len(got) != 2 {
		t.Fatalf("matches = %d, want 2", len(got))
	}
	if all := FilterByStatus(descriptor, items, StatusAll); len(all) != 3 {
		t.Fatalf("StatusAll filtered records: %d", len(all))
	}
	if all := FilterByStatus(descriptor, items, ""); len(all) != 3 {
		t.Fatalf("empty status filtered records: %d", len(all))
	}
}

func TestFiltersAreConjunctiveAndCommute(t *testing.T) {
	descriptor := applications(t)
	items := []*gateway.Record{
		application("1", "John Doe", "jd@x.com", "pending"),
		application("2", "John Roe", "jr@x.com", "approved"),
		application("3", "Ann Smith", "as@x.com", "pending"),
	}

	searchFirst := FilterByStatus(descriptor, FilterBySearch(descriptor, items, "john"), "pending")
	statusFirst := FilterBySearch(descriptor, FilterByStatus(descriptor, items, "pending"), "john")

	if len(searchFirst) != len(statusFirst) {
		t.Fatalf("order changed result size: %d vs %d", len(searchFirst), len(statusFirst))
	}
	for i := range searchFirst {
		if searchFirst[i].ID != statusFirst[i].ID {
			t.Fatalf("order changed result set at %d: %s vs %s", i, searchFirst[i].ID, statusFirst[i].ID)
		}
	}
	if len(searchFirst) != 1 || searchFirst[0].ID != "1" {
		t.Fatalf("conjunction result = %+v", searchFirst)
	}
}

func TestFilterByStatusUsesActiveFlagWithoutStatusField(t *testing.T) {
	descriptor := services(t)
	active, inactive := true, false
	items := []*gateway.Record{
		{ID: "1", Active: &active, Fields: map[string]any{"name": "Visa Help"}},
		{ID: "2", Active: &inactive, Fields: map[string]any{"name": "IELTS Prep"}},
	}

	got := FilterByStatus(descriptor, items, "inactive")
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("inactive filter = %+v", got)
	}
}

func TestSortByOrderPutsUnorderedLast(t *testing.T) {
	descriptor := services(t)
	two, five := 2, 5
	items := []*gateway.Record{
		{ID: "no-order-a", Fields: map[string]any{}},
		{ID: "five", Order: &five, Fields: map[string]any{}},
		{ID: "no-order-b", Fields: map[string]any{}},
		{ID: "two", Order: &two, Fields: map[string]any{}},
	}

	got := SortByOrder(descriptor, items)
	wantIDs := []string{"two", "five", "no-order-a", "no-order-b"}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Fatalf("sorted[%d] = %s, want %s", i, got[i].ID, want)
		}
	}
}

func TestSortByOrderSkipsResourcesWithoutOrdering(t *testing.T) {
	registry, err := resources.DefaultRegistry("")
	if err != nil {
		t.Fatalf("DefaultRegistry() error = %v", err)
	}
	descriptor, err := registry.Get("applications")
	if err != nil {
		t.Fatalf("Get(applications) error = %v", err)
	}

	five, two := 5, 2
	items := []*gateway.Record{
		{ID: "five", Order: &five, Fields: map[string]any{}},
		{ID: "two", Order: &two, Fields: map[string]any{}},
	}
	got := SortByOrder(descriptor, items)
	if got[0].ID != "five" || got[1].ID != "two" {
		t.Fatalf("fetch order not preserved: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestFilterReturnsCopies(t *testing.T) {
	descriptor := applications(t)
	items := []*gateway.Record{application("1", "a", "a@x.com", "pending")}

	got := FilterBySearch(descriptor, items, "")
	got[0] = nil
	if items[0] == nil {
		t.Fatal("filter aliased the input slice")
	}
}
