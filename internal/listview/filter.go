package listview

import (
	"math"
	"sort"
	"strings"

	"github.com/goliatone/go-backoffice/internal/gateway"
	"github.com/goliatone/go-backoffice/internal/resources"
)

// StatusAll passes every record through the status filter.
const StatusAll = "all"

// FilterByStatus keeps records whose status attribute matches exactly. The
// comparison runs against the descriptor's status field, or the active flag
// rendered as "active"/"inactive" when no field is configured.
func FilterByStatus(descriptor resources.Descriptor, items []*gateway.Record, status string) []*gateway.Record {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" || status == StatusAll {
		return append([]*gateway.Record{}, items...)
	}
	out := make([]*gateway.Record, 0, len(items))
	for _, item := range items {
		if strings.ToLower(descriptor.StatusValue(item)) == status {
			out = append(out, item)
		}
	}
	return out
}

// FilterBySearch keeps records whose searchable text contains the trimmed,
// lower-cased needle as a substring. An empty needle passes everything.
func FilterBySearch(descriptor resources.Descriptor, items []*gateway.Record, search string) []*gateway.Record {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return append([]*gateway.Record{}, items...)
	}
	out := make([]*gateway.Record, 0, len(items))
	for _, item := range items {
		if strings.Contains(descriptor.SearchText(item), needle) {
			out = append(out, item)
		}
	}
	return out
}

// Filtered applies status then search. Both filters are conjunctive and
// commute; the order here matches the upstream screens.
func Filtered(descriptor resources.Descriptor, items []*gateway.Record, search, status string) []*gateway.Record {
	return FilterBySearch(descriptor, FilterByStatus(descriptor, items, status), search)
}

// orderSentinel sorts records without an order attribute after every ordered
// record instead of letting them interleave.
const orderSentinel = math.MaxInt32

// SortByOrder sorts ascending by the order attribute when the descriptor
// carries one. The sort is stable so equal-order records keep fetch order.
func SortByOrder(descriptor resources.Descriptor, items []*gateway.Record) []*gateway.Record {
	out := append([]*gateway.Record{}, items...)
	if !descriptor.HasOrder {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		return orderOf(out[i]) < orderOf(out[j])
	})
	return out
}

func orderOf(record *gateway.Record) int {
	if record == nil || record.Order == nil {
		return orderSentinel
	}
	return *record.Order
}
