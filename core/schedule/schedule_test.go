package schedule

import (
	"testing"
	"time"
)

func Test_ComputeEndDate(t *testing.T) {
	tests := []struct {
		name         string
		startDate    string
		weeklyDays   []time.Weekday
		lectureCount int
		want         string
		wantErr      error
	}{
		{
			name:       "start date counts as day zero",
			startDate:  "2024-01-07", // a Sunday
			weeklyDays: []time.Weekday{time.Sunday, time.Tuesday}, lectureCount: 3,
			want: "2024-01-14", // Sun 7, Tue 9, Sun 14
		},
		{
			name:       "single lecture on start day",
			startDate:  "2024-01-07",
			weeklyDays: []time.Weekday{time.Sunday}, lectureCount: 1,
			want: "2024-01-07",
		},
		{
			name:       "start day not in set",
			startDate:  "2024-01-08", // a Monday
			weeklyDays: []time.Weekday{time.Tuesday}, lectureCount: 2,
			want: "2024-01-16",
		},
		{
			name:       "zero lectures returns start unchanged",
			startDate:  "2024-01-07",
			weeklyDays: []time.Weekday{time.Sunday}, lectureCount: 0,
			want: "2024-01-07",
		},
		{
			name:       "zero lectures with empty set still returns start",
			startDate:  "2024-01-07",
			weeklyDays: nil, lectureCount: 0,
			want: "2024-01-07",
		},
		{
			name:       "empty set fails",
			startDate:  "2024-01-07",
			weeklyDays: nil, lectureCount: 3,
			wantErr: ErrInvalidSchedule,
		},
		{
			name:       "bad date fails",
			startDate:  "07/01/2024",
			weeklyDays: []time.Weekday{time.Sunday}, lectureCount: 1,
			wantErr: ErrInvalidDate,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeEndDate(tt.startDate, tt.weeklyDays, tt.lectureCount)
			if err != tt.wantErr {
				t.Fatalf("ComputeEndDate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ComputeEndDate() = %s, want %s", got, tt.want)
			}
		})
	}
}

// The end date's weekday must be in the set, and the number of set-matching
// weekdays in [start, end] must equal the lecture count exactly.
func Test_ComputeEndDate_properties(t *testing.T) {
	sets := [][]time.Weekday{
		{time.Sunday},
		{time.Saturday, time.Monday},
		{time.Sunday, time.Tuesday, time.Thursday},
		{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday},
	}
	starts := []string{"2024-01-01", "2024-02-29", "2024-12-31", "2025-06-15"}
	counts := []int{1, 2, 7, 12, 48}

	for _, days := range sets {
		daySet := make(map[time.Weekday]bool)
		for _, d := range days {
			daySet[d] = true
		}
		for _, start := range starts {
			for _, count := range counts {
				end, err := ComputeEndDate(start, days, count)
				if err != nil {
					t.Fatalf("ComputeEndDate(%s, %v, %d) failed: %v", start, days, count, err)
				}

				endDay, err := WeekdayOf(end)
				if err != nil {
					t.Fatalf("WeekdayOf(%s) failed: %v", end, err)
				}
				if !daySet[endDay] {
					t.Errorf("ComputeEndDate(%s, %v, %d) = %s: weekday %s not in set", start, days, count, end, endDay)
				}

				var matches int
				cursor, _ := ParseDate(start)
				endT, _ := ParseDate(end)
				for !cursor.After(endT) {
					if daySet[cursor.Weekday()] {
						matches++
					}
					cursor = cursor.AddDate(0, 0, 1)
				}
				if matches != count {
					t.Errorf("ComputeEndDate(%s, %v, %d) = %s: %d matching weekdays in range", start, days, count, end, matches)
				}
			}
		}
	}
}

func Test_TimeSlots(t *testing.T) {
	slots := TimeSlots()
	if len(slots) != 31 {
		t.Fatalf("TimeSlots() returned %d slots, want 31", len(slots))
	}
	if slots[0] != "08:00" {
		t.Errorf("first slot = %s, want 08:00", slots[0])
	}
	if slots[1] != "08:30" {
		t.Errorf("second slot = %s, want 08:30", slots[1])
	}
	if slots[30] != "23:00" {
		t.Errorf("last slot = %s, want 23:00", slots[30])
	}
}

func Test_SlotStatus(t *testing.T) {
	defer func() { NowFunc = time.Now }()

	date := "2024-03-20"
	slot := "10:00"
	slotStart := time.Date(2024, 3, 20, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		now  time.Time
		want SlotState
	}{
		{name: "before window", now: slotStart.Add(-time.Minute), want: SlotFuture},
		{name: "window start", now: slotStart, want: SlotLive},
		{name: "inside window", now: slotStart.Add(59 * time.Minute), want: SlotLive},
		{name: "window end", now: slotStart.Add(time.Hour), want: SlotPast},
		{name: "after window", now: slotStart.Add(2 * time.Hour), want: SlotPast},
		{name: "previous day", now: slotStart.AddDate(0, 0, -1), want: SlotFuture},
		{name: "next day", now: slotStart.AddDate(0, 0, 1), want: SlotPast},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			NowFunc = func() time.Time { return tt.now }
			got, err := SlotStatus(date, slot)
			if err != nil {
				t.Fatalf("SlotStatus() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("SlotStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}
