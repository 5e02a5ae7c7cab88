package gateway

import (
	"encoding/json"
	"time"
)

// Record is the generic wire shape shared by every managed resource. Identity
// is the server-assigned ID; every other attribute is mutable. Attributes the
// engine does not interpret travel in Fields so no resource-specific struct is
// required.
type Record struct {
	ID        string
	Active    *bool
	Order     *int
	CreatedAt time.Time
	UpdatedAt time.Time
	Fields    map[string]any
}

const (
	keyID        = "id"
	keyActive    = "isActive"
	keyOrder     = "order"
	keyCreatedAt = "createdAt"
	keyUpdatedAt = "updatedAt"
)

// UnmarshalJSON splits well-known envelope keys from resource-specific fields.
func (r *Record) UnmarshalJSON(data []byte) error {
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := Record{Fields: map[string]any{}}
	for key, value := range raw {
		switch key {
		case keyID:
			if s, ok := value.(string); ok {
				out.ID = s
			}
		case keyActive:
			if b, ok := value.(bool); ok {
				active := b
				out.Active = &active
			}
		case keyOrder:
			if f, ok := value.(float64); ok {
				order := int(f)
				out.Order = &order
			}
		case keyCreatedAt:
			out.CreatedAt = parseTimestamp(value)
		case keyUpdatedAt:
			out.UpdatedAt = parseTimestamp(value)
		default:
			out.Fields[key] = value
		}
	}

	*r = out
	return nil
}

// MarshalJSON flattens the record back into the wire object the backend expects.
func (r Record) MarshalJSON() ([]byte, error) {
	raw := make(map[string]any, len(r.Fields)+5)
	for key, value := range r.Fields {
		raw[key] = value
	}
	if r.ID != "" {
		raw[keyID] = r.ID
	}
	if r.Active != nil {
		raw[keyActive] = *r.Active
	}
	if r.Order != nil {
		raw[keyOrder] = *r.Order
	}
	if !r.CreatedAt.IsZero() {
		raw[keyCreatedAt] = r.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	if !r.UpdatedAt.IsZero() {
		raw[keyUpdatedAt] = r.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}
	return json.Marshal(raw)
}

// Clone performs a deep copy so snapshots taken before an optimistic mutation
// cannot alias live state.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := &Record{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Active != nil {
		active := *r.Active
		out.Active = &active
	}
	if r.Order != nil {
		order := *r.Order
		out.Order = &order
	}
	if r.Fields != nil {
		out.Fields = cloneValue(r.Fields).(map[string]any)
	}
	return out
}

// Field returns the named resource-specific attribute, or nil when absent.
func (r *Record) Field(name string) any {
	if r == nil || r.Fields == nil {
		return nil
	}
	return r.Fields[name]
}

// StringField returns the named attribute coerced to a string.
func (r *Record) StringField(name string) string {
	if s, ok := r.Field(name).(string); ok {
		return s
	}
	return ""
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		copied := make(map[string]any, len(typed))
		for k, v := range typed {
			copied[k] = cloneValue(v)
		}
		return copied
	case []any:
		copied := make([]any, len(typed))
		for i, v := range typed {
			copied[i] = cloneValue(v)
		}
		return copied
	default:
		return typed
	}
}

func parseTimestamp(value any) time.Time {
	s, ok := value.(string)
	if !ok {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}
