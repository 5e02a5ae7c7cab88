package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ListPage is the canonical list shape the rest of the engine consumes. Total
// is the server's authoritative count; for bare-array responses it equals the
// item count.
type ListPage struct {
	Items []*Record
	Total int
}

type listEnvelope struct {
	Items      []json.RawMessage `json:"items"`
	Pagination *paginationBlock  `json:"pagination"`
}

type paginationBlock struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// normalizeListBody accepts the two list shapes the backend is known to emit,
// a bare JSON array or {items, pagination}, and converts either into a
// ListPage so downstream code only ever sees one canonical form.
func normalizeListBody(body []byte) (*ListPage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return &ListPage{Items: []*Record{}}, nil
	}

	if trimmed[0] == '[' {
		var items []*Record
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
		}
		return &ListPage{Items: items, Total: len(items)}, nil
	}

	envelope := listEnvelope{}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}

	items := make([]*Record, 0, len(envelope.Items))
	for _, raw := range envelope.Items {
		record := &Record{}
		if err := json.Unmarshal(raw, record); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
		}
		items = append(items, record)
	}

	page := &ListPage{Items: items, Total: len(items)}
	if envelope.Pagination != nil && envelope.Pagination.Total > 0 {
		page.Total = envelope.Pagination.Total
	}
	return page, nil
}

// normalizeObjectBody unwraps a singleton payload: a bare object passes
// through, a {data: {...}} envelope yields the inner object.
func normalizeObjectBody(body []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return map[string]any{}, nil
	}

	decoded := map[string]any{}
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if inner, ok := decoded["data"].(map[string]any); ok && len(decoded) == 1 {
		return inner, nil
	}
	return decoded, nil
}

func decodeRecordBody(body []byte) (*Record, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrResponseInvalid)
	}
	record := &Record{}
	if err := json.Unmarshal(trimmed, record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	return record, nil
}
