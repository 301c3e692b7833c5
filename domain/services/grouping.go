// Package services holds the pure domain computations behind timeline
// rendering: bucketing events into time groups, ordering events, and
// reconciling a persisted manual group order against the live bucket set.
package services

import (
	"fmt"
	"time"

	"journaline/domain/core/valueobjects"
)

// keyLayout is the canonical group key format, a date string that sorts
// chronologically under plain string comparison.
const keyLayout = "2006-01-02"

// GroupKey computes the canonical bucket key for a date under a grouping
// mode. Pure and deterministic: identical inputs always yield identical
// keys, and boundary dates belong to the bucket whose start they equal.
func GroupKey(date time.Time, mode valueobjects.GroupingMode) string {
	switch mode {
	case valueobjects.GroupDaily:
		return date.Format(keyLayout)
	case valueobjects.GroupWeekly:
		return weekStart(date).Format(keyLayout)
	case valueobjects.GroupYearly:
		return time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, date.Location()).Format(keyLayout)
	default: // monthly
		return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location()).Format(keyLayout)
	}
}

// GroupLabel renders the human label for a bucket key. For weekly mode the
// display index is derived purely from the key's position in the rendered
// ordered list. It is a view-level concern, never a stored property, so it
// cannot drift from what is on screen.
func GroupLabel(key string, mode valueobjects.GroupingMode, orderedKeys []string) string {
	start, err := time.Parse(keyLayout, key)
	if err != nil {
		return key
	}

	switch mode {
	case valueobjects.GroupDaily:
		return start.Format("Jan 2, 2006")
	case valueobjects.GroupWeekly:
		_, isoWeek := start.ISOWeek()
		return fmt.Sprintf("Week %d | %d", weekDisplayIndex(key, orderedKeys), isoWeek)
	case valueobjects.GroupYearly:
		return start.Format("2006")
	default: // monthly
		return start.Format("Jan 2006")
	}
}

// weekDisplayIndex numbers the rendered weeks so that, under the default
// newest-first order, the chronologically earliest visible week carries the
// highest number.
func weekDisplayIndex(key string, orderedKeys []string) int {
	for i, k := range orderedKeys {
		if k == key {
			return i + 1
		}
	}
	return 1
}

// weekStart returns the Monday on or before the given date, truncated to
// midnight. A date falling exactly on a Monday starts its own week.
func weekStart(date time.Time) time.Time {
	daysSinceMonday := (int(date.Weekday()) + 6) % 7
	d := date.AddDate(0, 0, -daysSinceMonday)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}
