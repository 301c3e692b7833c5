package valueobjects

import "fmt"

// GroupingMode selects the time granularity used to bucket events.
type GroupingMode string

const (
	GroupDaily   GroupingMode = "daily"
	GroupWeekly  GroupingMode = "weekly"
	GroupMonthly GroupingMode = "monthly"
	GroupYearly  GroupingMode = "yearly"
)

// ParseGroupingMode validates a raw mode string. An empty string falls back
// to monthly, the default view granularity.
func ParseGroupingMode(s string) (GroupingMode, error) {
	switch GroupingMode(s) {
	case GroupDaily, GroupWeekly, GroupMonthly, GroupYearly:
		return GroupingMode(s), nil
	case "":
		return GroupMonthly, nil
	default:
		return "", fmt.Errorf("unknown grouping mode %q", s)
	}
}

// IsValid reports whether the mode is one of the known granularities
func (m GroupingMode) IsValid() bool {
	switch m {
	case GroupDaily, GroupWeekly, GroupMonthly, GroupYearly:
		return true
	}
	return false
}

func (m GroupingMode) String() string {
	return string(m)
}
