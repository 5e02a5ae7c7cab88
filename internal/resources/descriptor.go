package resources

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-backoffice/internal/gateway"
	"github.com/goliatone/go-backoffice/internal/identity"
	payloadvalidation "github.com/goliatone/go-backoffice/internal/validation"
	slug "github.com/goliatone/go-slug"
	"github.com/google/uuid"
)

var (
	ErrNameRequired    = errors.New("resources: descriptor name is required")
	ErrUnknownResource = errors.New("resources: unknown resource")
	ErrDuplicateName   = errors.New("resources: duplicate descriptor name")
)

// ToggleStrategy selects how the list controller applies a boolean flip.
type ToggleStrategy string

const (
	// ToggleOptimistic flips the local flag before the network call resolves
	// and reverts on failure. Screens advertising instant feedback use it.
	ToggleOptimistic ToggleStrategy = "optimistic"
	// TogglePessimistic waits for the server response and replaces the record
	// wholesale. No pre-flip, no rollback flicker.
	TogglePessimistic ToggleStrategy = "pessimistic"
)

// PaginationMode selects whether SetPage re-queries the backend or slices the
// already-fetched list locally.
type PaginationMode string

const (
	PaginationServer PaginationMode = "server"
	PaginationClient PaginationMode = "client"
)

// Descriptor is the per-resource configuration consumed by the list
// controller and the gateway. One descriptor exists per managed resource.
type Descriptor struct {
	// Name is the registry key, e.g. "jobs".
	Name string
	// Route binds the descriptor to its REST endpoint and calling conventions.
	Route gateway.Route
	// SearchFields are concatenated (lower-cased) for substring search.
	SearchFields []string
	// StatusField names the attribute matched by resource-specific status
	// filters (e.g. "status" for applications). Empty means the filter runs
	// against the isActive flag.
	StatusField string
	// Statuses enumerates resource-specific filter values. Empty for plain
	// active/inactive resources.
	Statuses []string
	// ToggleField names the boolean the toggle operation flips. Empty means
	// the resource has no toggle.
	ToggleField string
	// Toggle picks the optimistic or pessimistic variant. Both are deliberate
	// per-resource choices, not a bug to unify.
	Toggle ToggleStrategy
	// Pagination picks server re-fetch or client-side slicing.
	Pagination PaginationMode
	// PageSize is the default page size.
	PageSize int
	// HasOrder enables ascending sort on the order attribute, missing values
	// last.
	HasOrder bool
	// SlugField/SlugSource derive a URL slug from another attribute on create
	// when the payload carries none.
	SlugField  string
	SlugSource string
	// Schema is the JSON schema create/update payloads are checked against
	// before any network call. Nil accepts everything.
	Schema map[string]any
}

// ID returns the deterministic identity of the descriptor.
func (d Descriptor) ID() uuid.UUID {
	return identity.ResourceUUID(d.Name)
}

// Validate checks the descriptor invariants before registry admission.
func (d Descriptor) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(d.Name) == "" {
		errs["name"] = validation.NewError("backoffice.resource.name_required", "descriptor name is required")
	}
	if strings.TrimSpace(d.Route.Path) == "" {
		errs["route"] = validation.NewError("backoffice.resource.path_required", "route path is required")
	}
	if d.PageSize < 1 {
		errs["page_size"] = validation.NewError("backoffice.resource.page_size_invalid", "page size must be positive")
	}
	switch d.Pagination {
	case PaginationServer, PaginationClient:
	default:
		errs["pagination"] = validation.NewError("backoffice.resource.pagination_invalid", "pagination mode must be server or client")
	}
	if d.ToggleField != "" {
		switch d.Toggle {
		case ToggleOptimistic, TogglePessimistic:
		default:
			errs["toggle"] = validation.NewError("backoffice.resource.toggle_invalid", "toggle strategy must be optimistic or pessimistic")
		}
	}
	if err := payloadvalidation.ValidateSchema(d.Schema); err != nil {
		errs["schema"] = validation.NewError("backoffice.resource.schema_invalid", err.Error())
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// NormalizeCreatePayload derives the slug when configured and absent, then
// validates the payload against the descriptor schema. The returned map is a
// copy; the caller's payload is never mutated.
func (d Descriptor) NormalizeCreatePayload(payload map[string]any) (map[string]any, error) {
	normalized := make(map[string]any, len(payload)+1)
	for key, value := range payload {
		normalized[key] = value
	}

	if d.SlugField != "" && d.SlugSource != "" {
		if current, _ := normalized[d.SlugField].(string); strings.TrimSpace(current) == "" {
			if source, _ := normalized[d.SlugSource].(string); strings.TrimSpace(source) != "" {
				if derived, err := slug.Normalize(source); err == nil && derived != "" {
					normalized[d.SlugField] = derived
				}
			}
		}
	}

	if err := payloadvalidation.ValidatePayload(d.Schema, normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

// NormalizeUpdatePayload validates a partial patch against the schema without
// enforcing required fields.
func (d Descriptor) NormalizeUpdatePayload(patch map[string]any) (map[string]any, error) {
	normalized := make(map[string]any, len(patch))
	for key, value := range patch {
		normalized[key] = value
	}
	if err := payloadvalidation.ValidatePartialPayload(d.Schema, normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

// StatusValue extracts the attribute the status filter compares for a record.
func (d Descriptor) StatusValue(record *gateway.Record) string {
	if record == nil {
		return ""
	}
	if d.StatusField != "" {
		return record.StringField(d.StatusField)
	}
	if record.Active != nil {
		if *record.Active {
			return "active"
		}
		return "inactive"
	}
	return ""
}

// SearchText concatenates the searchable attributes, lower-cased, for
// substring matching.
func (d Descriptor) SearchText(record *gateway.Record) string {
	if record == nil {
		return ""
	}
	parts := make([]string, 0, len(d.SearchFields))
	for _, field := range d.SearchFields {
		if value := record.StringField(field); value != "" {
			parts = append(parts, strings.ToLower(value))
		}
	}
	return strings.Join(parts, " ")
}
