package resources

import "github.com/goliatone/go-backoffice/internal/gateway"

// The seven managed resources and their calling conventions. Toggle and
// pagination variants intentionally differ between screens; both behaviours
// ship in the upstream admin and each descriptor records the deliberate pick.

func jobsDescriptor() Descriptor {
	return Descriptor{
		Name: "jobs",
		Route: gateway.Route{
			Path:         "jobs",
			PUTFallback:  true,
			ServerSearch: true,
		},
		SearchFields: []string{"title", "location", "category"},
		ToggleField:  "isActive",
		Toggle:       TogglePessimistic,
		Pagination:   PaginationServer,
		PageSize:     10,
		HasOrder:     true,
		SlugField:    "slug",
		SlugSource:   "title",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title":       map[string]any{"type": "string", "minLength": 1},
				"slug":        map[string]any{"type": "string"},
				"location":    map[string]any{"type": "string"},
				"category":    map[string]any{"type": "string"},
				"description": map[string]any{"type": "string"},
			},
			"required":             []any{"title"},
			"additionalProperties": true,
		},
	}
}

func servicesDescriptor() Descriptor {
	return Descriptor{
		Name: "services",
		Route: gateway.Route{
			Path:        "services",
			PUTFallback: true,
		},
		SearchFields: []string{"name", "summary"},
		ToggleField:  "isActive",
		Toggle:       TogglePessimistic,
		Pagination:   PaginationClient,
		PageSize:     12,
		HasOrder:     true,
		SlugField:    "slug",
		SlugSource:   "name",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":    map[string]any{"type": "string", "minLength": 1},
				"slug":    map[string]any{"type": "string"},
				"summary": map[string]any{"type": "string"},
				"icon":    map[string]any{"type": "string"},
			},
			"required":             []any{"name"},
			"additionalProperties": true,
		},
	}
}

func faqsDescriptor() Descriptor {
	return Descriptor{
		Name: "faqs",
		Route: gateway.Route{
			Path: "faqs",
		},
		SearchFields: []string{"question", "answer"},
		ToggleField:  "isActive",
		Toggle:       ToggleOptimistic,
		Pagination:   PaginationClient,
		PageSize:     20,
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string", "minLength": 1},
				"answer":   map[string]any{"type": "string", "minLength": 1},
			},
			"required":             []any{"question", "answer"},
			"additionalProperties": true,
		},
	}
}

func applicationsDescriptor() Descriptor {
	return Descriptor{
		Name: "applications",
		Route: gateway.Route{
			Path:         "applications",
			ServerSearch: true,
		},
		SearchFields: []string{"name", "email", "phone", "jobTitle"},
		StatusField:  "status",
		Statuses:     []string{"pending", "reviewed", "approved", "rejected"},
		Pagination:   PaginationServer,
		PageSize:     15,
	}
}

func galleryDescriptor() Descriptor {
	return Descriptor{
		Name: "gallery",
		Route: gateway.Route{
			Path:           "gallery",
			ToggleEndpoint: true,
		},
		SearchFields: []string{"title", "caption"},
		ToggleField:  "isActive",
		Toggle:       ToggleOptimistic,
		Pagination:   PaginationClient,
		PageSize:     24,
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title":    map[string]any{"type": "string"},
				"caption":  map[string]any{"type": "string"},
				"imageUrl": map[string]any{"type": "string", "minLength": 1},
			},
			"required":             []any{"imageUrl"},
			"additionalProperties": true,
		},
	}
}

func videosDescriptor() Descriptor {
	return Descriptor{
		Name: "videos",
		Route: gateway.Route{
			Path:           "videos",
			ToggleEndpoint: true,
		},
		SearchFields: []string{"title"},
		ToggleField:  "isActive",
		Toggle:       ToggleOptimistic,
		Pagination:   PaginationClient,
		PageSize:     12,
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title":    map[string]any{"type": "string"},
				"videoUrl": map[string]any{"type": "string", "minLength": 1},
			},
			"required":             []any{"videoUrl"},
			"additionalProperties": true,
		},
	}
}

// newsletterDescriptor binds the one screen whose backend expects a bearer
// token instead of the shared admin cookie. The token is filled in from config
// at registry build time.
func newsletterDescriptor(bearerToken string) Descriptor {
	return Descriptor{
		Name: "newsletter",
		Route: gateway.Route{
			Path:        "newsletter",
			BearerToken: bearerToken,
		},
		SearchFields: []string{"email"},
		Pagination:   PaginationClient,
		PageSize:     50,
	}
}
