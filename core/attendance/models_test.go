package attendance

import (
	"testing"
	"time"

	"github.com/latinacademy/academia/core/academy"
	"github.com/latinacademy/academia/core/group"
	"github.com/latinacademy/academia/core/schedule"
)

func testGroup(id, labID, slot string, days []time.Weekday, start, end string) group.Group {
	return group.Group{
		ID:         id,
		LabID:      labID,
		StartTime:  slot,
		WeeklyDays: days,
		StartDate:  start,
		EndDate:    end,
	}
}

func TestResolveGrid(t *testing.T) {
	labs := []academy.Lab{{ID: "lab-1"}, {ID: "lab-2"}}
	// 2024-01-07 is a Sunday
	sun := []time.Weekday{time.Sunday}
	tue := []time.Weekday{time.Tuesday}

	groups := []group.Group{
		testGroup("g-sun", "lab-1", "10:00", sun, "2024-01-01", "2024-03-01"),
		testGroup("g-tue", "lab-1", "10:00", tue, "2024-01-01", "2024-03-01"),
		testGroup("g-other-lab", "lab-2", "10:00", sun, "2024-01-01", "2024-03-01"),
		testGroup("g-expired", "lab-1", "12:00", sun, "2023-01-01", "2023-06-01"),
		testGroup("g-not-started", "lab-1", "14:00", sun, "2024-06-01", "2024-08-01"),
	}

	res, err := ResolveGrid("2024-01-07", labs, groups)
	if err != nil {
		t.Fatalf("ResolveGrid() failed: %v", err)
	}

	tests := []struct {
		name   string
		labID  string
		slot   string
		wantID string // "" means empty cell
	}{
		{name: "weekday match", labID: "lab-1", slot: "10:00", wantID: "g-sun"},
		{name: "own lab only", labID: "lab-2", slot: "10:00", wantID: "g-other-lab"},
		{name: "after end date", labID: "lab-1", slot: "12:00", wantID: ""},
		{name: "before start date", labID: "lab-1", slot: "14:00", wantID: ""},
		{name: "empty slot", labID: "lab-1", slot: "08:00", wantID: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := res[tt.labID][tt.slot]
			if tt.wantID == "" {
				if g != nil {
					t.Errorf("ResolveGrid() cell = %v; want empty", g.ID)
				}
				return
			}
			if g == nil || g.ID != tt.wantID {
				t.Errorf("ResolveGrid() cell = %+v; want %v", g, tt.wantID)
			}
		})
	}
}

func TestResolveGrid_firstMatchWins(t *testing.T) {
	labs := []academy.Lab{{ID: "lab-1"}}
	sun := []time.Weekday{time.Sunday}
	groups := []group.Group{
		testGroup("g-first", "lab-1", "10:00", sun, "2024-01-01", "2024-03-01"),
		testGroup("g-second", "lab-1", "10:00", sun, "2024-01-01", "2024-03-01"),
	}

	res, err := ResolveGrid("2024-01-07", labs, groups)
	if err != nil {
		t.Fatalf("ResolveGrid() failed: %v", err)
	}
	if g := res["lab-1"]["10:00"]; g == nil || g.ID != "g-first" {
		t.Errorf("ResolveGrid() cell = %+v; want g-first", g)
	}
}

func TestResolveGrid_badDate(t *testing.T) {
	if _, err := ResolveGrid("07/01/2024", nil, nil); err != schedule.ErrInvalidDate {
		t.Errorf("ResolveGrid() error = %v; want %v", err, schedule.ErrInvalidDate)
	}
}

func Test_upgradeName(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		oldN, newN int
		want       string
	}{
		{name: "trailing number", in: "Eagles 1", oldN: 1, newN: 2, want: "Eagles 2"},
		{name: "embedded number", in: "English 2 - Evening", oldN: 2, newN: 3, want: "English 3 - Evening"},
		{name: "no number", in: "Eagles", oldN: 1, newN: 2, want: "Eagles"},
		{name: "first occurrence only", in: "Level 1 Group 1", oldN: 1, newN: 2, want: "Level 2 Group 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := upgradeName(tt.in, tt.oldN, tt.newN); got != tt.want {
				t.Errorf("upgradeName() = %v; want %v", got, tt.want)
			}
		})
	}
}
