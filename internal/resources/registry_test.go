package resources

import (
	"errors"
	"testing"

	"github.com/goliatone/go-backoffice/internal/gateway"
)

func TestDefaultRegistryHoldsSevenResources(t *testing.T) {
	registry, err := DefaultRegistry("tok-1")
	if err != nil {
		t.Fatalf("DefaultRegistry() error = %v", err)
	}

	names := registry.Names()
	want := []string{"applications", "faqs", "gallery", "jobs", "newsletter", "services", "videos"}
	if len(names) != len(want) {
		t.Fatalf("names = %v", names)
	}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("names[%d] = %q, want %q", i, names[i], name)
		}
	}

	newsletter, err := registry.Get("newsletter")
	if err != nil {
		t.Fatalf("Get(newsletter) error = %v", err)
	}
	if newsletter.Route.BearerToken != "tok-1" {
		t.Fatalf("newsletter bearer token = %q", newsletter.Route.BearerToken)
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	registry := NewRegistry()
	descriptor := Descriptor{
		Name:       "jobs",
		Route:      gateway.Route{Path: "jobs"},
		Pagination: PaginationServer,
		PageSize:   10,
	}
	if err := registry.Register(descriptor); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	if err := registry.Register(descriptor); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestRegistryRejectsInvalidDescriptor(t *testing.T) {
	registry := NewRegistry()
	err := registry.Register(Descriptor{Name: "broken"})
	if err == nil {
		t.Fatal("expected validation failure")
	}
}

func TestGetUnknownResource(t *testing.T) {
	registry := NewRegistry()
	if _, err := registry.Get("nope"); !errors.Is(err, ErrUnknownResource) {
		t.Fatalf("expected ErrUnknownResource, got %v", err)
	}
}

func TestNormalizeCreatePayloadDerivesSlug(t *testing.T) {
	descriptor := jobsDescriptor()
	payload, err := descriptor.NormalizeCreatePayload(map[string]any{"title": "Visa Officer (Senior)"})
	if err != nil {
		t.Fatalf("NormalizeCreatePayload() error = %v", err)
	}
	derived, _ := payload["slug"].(string)
	if derived == "" {
		t.Fatal("slug not derived from title")
	}
	if _, exists := payload["slug"]; !exists {
		t.Fatal("slug missing from normalized payload")
	}
}

func TestNormalizeCreatePayloadKeepsExplicitSlug(t *testing.T) {
	descriptor := jobsDescriptor()
	payload, err := descriptor.NormalizeCreatePayload(map[string]any{"title": "Visa Officer", "slug": "custom-slug"})
	if err != nil {
		t.Fatalf("NormalizeCreatePayload() error = %v", err)
	}
	if payload["slug"] != "custom-slug" {
		t.Fatalf("slug = %v, want explicit value preserved", payload["slug"])
	}
}

func TestNormalizeCreatePayloadValidatesSchema(t *testing.T) {
	descriptor := faqsDescriptor()
	if _, err := descriptor.NormalizeCreatePayload(map[string]any{"question": "Only a question"}); err == nil {
		t.Fatal("expected schema rejection for missing answer")
	}
}

func TestStatusValueVariants(t *testing.T) {
	apps := applicationsDescriptor()
	record := &gateway.Record{Fields: map[string]any{"status": "pending"}}
	if got := apps.StatusValue(record); got != "pending" {
		t.Fatalf("StatusValue = %q", got)
	}

	active := true
	faqs := faqsDescriptor()
	if got := faqs.StatusValue(&gateway.Record{Active: &active}); got != "active" {
		t.Fatalf("StatusValue = %q", got)
	}
}

func TestSearchTextConcatenatesConfiguredFields(t *testing.T) {
	apps := applicationsDescriptor()
	record := &gateway.Record{Fields: map[string]any{
		"name":     "John Doe",
		"email":    "JOHN@example.com",
		"jobTitle": "Visa Officer",
		"notes":    "should not appear",
	}}
	text := apps.SearchText(record)
	if text != "john doe john@example.com visa officer" {
		t.Fatalf("SearchText = %q", text)
	}
}
