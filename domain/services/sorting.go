package services

import (
	"sort"

	"journaline/domain/core/entities"
	"journaline/domain/core/valueobjects"
)

// Compare orders two events by the preferred field and direction. Returns a
// negative value when a sorts before b, zero for ties. Ties must be broken
// by a stable sort so equal timestamps keep their original relative order;
// use SortEvents or sort.SliceStable, never sort.Slice.
func Compare(a, b *entities.Event, pref valueobjects.SortPreference) int {
	av := fieldValue(a, pref.Field)
	bv := fieldValue(b, pref.Field)

	var cmp int
	switch {
	case av < bv:
		cmp = -1
	case av > bv:
		cmp = 1
	}

	if pref.Order == valueobjects.SortDesc {
		cmp = -cmp
	}
	return cmp
}

// SortEvents stably sorts events in place by the given preference
func SortEvents(evts []*entities.Event, pref valueobjects.SortPreference) {
	sort.SliceStable(evts, func(i, j int) bool {
		return Compare(evts[i], evts[j], pref) < 0
	})
}

func fieldValue(e *entities.Event, field valueobjects.SortField) int64 {
	switch field {
	case valueobjects.SortByCreatedAt:
		return e.CreatedAt().UnixNano()
	case valueobjects.SortByUpdatedAt:
		return e.UpdatedAt().UnixNano()
	default:
		return e.Date().UnixNano()
	}
}
