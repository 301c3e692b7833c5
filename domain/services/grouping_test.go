package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"journaline/domain/core/valueobjects"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGroupKey_Daily(t *testing.T) {
	assert.Equal(t, "2024-03-15", GroupKey(date(2024, time.March, 15), valueobjects.GroupDaily))
	assert.Equal(t, "2024-03-15", GroupKey(time.Date(2024, time.March, 15, 23, 59, 59, 0, time.UTC), valueobjects.GroupDaily))
}

func TestGroupKey_Weekly_MondayStart(t *testing.T) {
	// 2024-03-15 is a Friday; its week starts Monday 2024-03-11
	assert.Equal(t, "2024-03-11", GroupKey(date(2024, time.March, 15), valueobjects.GroupWeekly))

	// A Monday starts its own week
	assert.Equal(t, "2024-03-11", GroupKey(date(2024, time.March, 11), valueobjects.GroupWeekly))

	// A Sunday belongs to the week of the previous Monday
	assert.Equal(t, "2024-03-11", GroupKey(date(2024, time.March, 17), valueobjects.GroupWeekly))

	// Week start can cross a month boundary
	assert.Equal(t, "2024-02-26", GroupKey(date(2024, time.March, 2), valueobjects.GroupWeekly))
}

func TestGroupKey_Monthly_Boundary(t *testing.T) {
	// Midnight on the first of the month belongs to that month, not the previous one
	assert.Equal(t, "2024-03-01", GroupKey(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), valueobjects.GroupMonthly))
	assert.Equal(t, "2024-02-01", GroupKey(date(2024, time.February, 29), valueobjects.GroupMonthly))
}

func TestGroupKey_Yearly(t *testing.T) {
	assert.Equal(t, "2024-01-01", GroupKey(date(2024, time.December, 31), valueobjects.GroupYearly))
	assert.Equal(t, "2024-01-01", GroupKey(date(2024, time.January, 1), valueobjects.GroupYearly))
}

func TestGroupKey_Deterministic(t *testing.T) {
	d := date(2024, time.March, 15)
	for _, mode := range []valueobjects.GroupingMode{
		valueobjects.GroupDaily, valueobjects.GroupWeekly,
		valueobjects.GroupMonthly, valueobjects.GroupYearly,
	} {
		first := GroupKey(d, mode)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, GroupKey(d, mode), "mode %s", mode)
		}
	}
}

func TestGroupLabel(t *testing.T) {
	assert.Equal(t, "Mar 15, 2024", GroupLabel("2024-03-15", valueobjects.GroupDaily, nil))
	assert.Equal(t, "Mar 2024", GroupLabel("2024-03-01", valueobjects.GroupMonthly, nil))
	assert.Equal(t, "2024", GroupLabel("2024-01-01", valueobjects.GroupYearly, nil))
}

func TestGroupLabel_WeeklyDisplayIndex(t *testing.T) {
	// Newest-first order: the earliest visible week gets the highest number.
	ordered := []string{"2024-03-11", "2024-03-04", "2024-02-26"}

	assert.Equal(t, "Week 1 | 11", GroupLabel("2024-03-11", valueobjects.GroupWeekly, ordered))
	assert.Equal(t, "Week 2 | 10", GroupLabel("2024-03-04", valueobjects.GroupWeekly, ordered))
	assert.Equal(t, "Week 3 | 9", GroupLabel("2024-02-26", valueobjects.GroupWeekly, ordered))
}
