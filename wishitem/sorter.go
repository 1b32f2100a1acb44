package wishitem

import (
	"sort"

	"github.com/tmori/wishkeeper/internal/utils"
)

// SortKey selects the ordering of a wish-item list.
type SortKey string

const (
	SortPriority      SortKey = "priority"
	SortCreatedAtAsc  SortKey = "createdAt_asc"
	SortCreatedAtDesc SortKey = "createdAt_desc"
	SortPriceAsc      SortKey = "price_asc"
	SortPriceDesc     SortKey = "price_desc"
)

// priorityOrder ranks priorities for sorting; unknown values sort last.
var priorityOrder = map[Priority]int{
	PriorityHigh:   1,
	PriorityMiddle: 2,
	PriorityLow:    3,
}

// Sort returns the items ordered by the given key. The input slice is never
// mutated. An unknown key falls back to newest-first.
func Sort(items []Item, key SortKey) []Item {
	sorted := make([]Item, len(items))
	copy(sorted, items)

	switch key {
	case SortPriority:
		sort.SliceStable(sorted, func(i, j int) bool {
			return lessByPriority(sorted[i], sorted[j])
		})
	case SortCreatedAtAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		})
	case SortPriceAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return priceOrZero(sorted[i]) < priceOrZero(sorted[j])
		})
	case SortPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return priceOrZero(sorted[i]) > priceOrZero(sorted[j])
		})
	default: // SortCreatedAtDesc and anything unrecognized
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	}

	return sorted
}

// lessByPriority orders high before middle before low; equal priorities fall
// back to newest-first.
func lessByPriority(a, b Item) bool {
	pa, ok := priorityOrder[a.Priority]
	if !ok {
		pa = len(priorityOrder) + 1
	}
	pb, ok := priorityOrder[b.Priority]
	if !ok {
		pb = len(priorityOrder) + 1
	}

	if pa != pb {
		return pa < pb
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func priceOrZero(item Item) float64 {
	return utils.Value(item.Price)
}

// Filter returns the items matching the given status and priority. An empty
// selector matches everything.
func Filter(items []Item, status Status, priority Priority) []Item {
	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if status != "" && item.Status != status {
			continue
		}
		if priority != "" && item.Priority != priority {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}
