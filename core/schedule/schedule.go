// Package schedule implements the weekly-recurrence arithmetic shared by the
// groups and attendance domains: expanding a weekly pattern into an end date,
// the fixed daily slot grid, and the live/past/future status of a slot.
package schedule

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the civil date format used for all stored dates.
// It compares lexically, so string comparison on the wire is safe.
const DateLayout = "2006-01-02"

// SlotLayout is the time-of-day format of a grid slot.
const SlotLayout = "15:04"

var (
	ErrInvalidSchedule = errors.New("schedule has no weekly days")
	ErrInvalidDate     = errors.New("invalid date")

	// NowFunc is mockable for tests.
	NowFunc = time.Now
)

// SlotState is where a slot stands relative to the wall clock.
type SlotState string

const (
	SlotLive   SlotState = "live"
	SlotPast   SlotState = "past"
	SlotFuture SlotState = "future"
)

// slotWindow is how long a slot is considered live once started.
// This is fixed at one hour regardless of the group's configured duration.
const slotWindow = time.Hour

// ParseDate parses a civil date in DateLayout.
func ParseDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Today returns the current civil date in DateLayout.
func Today() string {
	return NowFunc().Format(DateLayout)
}

// WeekdayOf returns the weekday of a civil date: 0=Sunday .. 6=Saturday.
func WeekdayOf(date string) (time.Weekday, error) {
	t, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	return t.Weekday(), nil
}

// ComputeEndDate expands a weekly pattern into the date of the last lecture:
// starting at startDate, every day whose weekday is in weeklyDays counts as one
// lecture, the start date itself included. lectureCount 0 returns startDate
// unchanged; an empty weeklyDays set is an input-contract violation.
func ComputeEndDate(startDate string, weeklyDays []time.Weekday, lectureCount int) (string, error) {
	if lectureCount <= 0 {
		return startDate, nil
	}
	if len(weeklyDays) == 0 {
		return "", ErrInvalidSchedule
	}

	daySet := make(map[time.Weekday]bool, len(weeklyDays))
	for _, d := range weeklyDays {
		daySet[d] = true
	}

	cursor, err := ParseDate(startDate)
	if err != nil {
		return "", err
	}
	left := lectureCount
	for {
		if daySet[cursor.Weekday()] {
			left--
		}
		if left == 0 {
			break
		}
		cursor = cursor.AddDate(0, 0, 1)
	}
	return cursor.Format(DateLayout), nil
}

// TimeSlots returns the fixed half-hour slot grid, "08:00" through "23:00"
// inclusive (31 slots). The grid is a constant of the daily schedule; a
// group's duration does not blank out the half-hour cells it overlaps.
func TimeSlots() []string {
	slots := make([]string, 0, 31)
	for i := 0; i < 31; i++ {
		hour := 8 + i/2
		min := "00"
		if i%2 != 0 {
			min = "30"
		}
		slots = append(slots, fmt.Sprintf("%02d:%s", hour, min))
	}
	return slots
}

// SlotStatus reports whether the slot on the given date is currently running,
// already over, or still to come. The slot window is always exactly one hour.
func SlotStatus(date, slot string) (SlotState, error) {
	start, err := time.ParseInLocation(DateLayout+" "+SlotLayout, date+" "+slot, time.Local)
	if err != nil {
		return "", ErrInvalidDate
	}
	now := NowFunc()
	end := start.Add(slotWindow)
	switch {
	case !now.Before(start) && now.Before(end):
		return SlotLive, nil
	case now.After(end) || now.Equal(end):
		return SlotPast, nil
	default:
		return SlotFuture, nil
	}
}
