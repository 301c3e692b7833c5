package valueobjects

import "fmt"

// SortField names the event timestamp a timeline sorts by.
type SortField string

const (
	SortByDate      SortField = "date"
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
)

// SortOrder is the sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortPreference is a timeline's chosen event ordering. The zero value is
// not meaningful; use DefaultSortPreference.
type SortPreference struct {
	Field SortField `json:"field"`
	Order SortOrder `json:"order"`
}

// DefaultSortPreference returns the default ordering: event date, newest first.
func DefaultSortPreference() SortPreference {
	return SortPreference{Field: SortByDate, Order: SortDesc}
}

// NewSortPreference validates and builds a sort preference
func NewSortPreference(field, order string) (SortPreference, error) {
	f := SortField(field)
	switch f {
	case SortByDate, SortByCreatedAt, SortByUpdatedAt:
	default:
		return SortPreference{}, fmt.Errorf("unknown sort field %q", field)
	}

	o := SortOrder(order)
	switch o {
	case SortAsc, SortDesc:
	default:
		return SortPreference{}, fmt.Errorf("unknown sort order %q", order)
	}

	return SortPreference{Field: f, Order: o}, nil
}

// IsZero reports whether the preference is unset
func (p SortPreference) IsZero() bool {
	return p.Field == "" && p.Order == ""
}

// Equals checks if two preferences are equal
func (p SortPreference) Equals(other SortPreference) bool {
	return p.Field == other.Field && p.Order == other.Order
}
