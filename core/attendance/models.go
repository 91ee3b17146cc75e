package attendance

import (
	"github.com/latinacademy/academia/core"
	"github.com/latinacademy/academia/core/academy"
	"github.com/latinacademy/academia/core/group"
	"github.com/latinacademy/academia/core/schedule"
)

// Session is one recorded occurrence of a group's lecture. Records are
// append-only: the scheduler is the only writer and never mutates or deletes
// past entries.
type Session struct {
	Date          string          `json:"date"` // "2006-01-02"
	SessionNumber int             `json:"session_number"`
	Attendance    map[string]bool `json:"attendance"` // studentID -> present
	Image         string          `json:"image,omitempty"`
}

// CellState is the state of one (lab, slot) cell on the daily grid.
type CellState string

const (
	CellNoGroup CellState = "no_group"
	CellTaken   CellState = "taken"
	CellLive    CellState = "live"
	CellPast    CellState = "past"
	CellFuture  CellState = "future"
)

// Cell is one resolved grid cell; Group is nil for CellNoGroup.
type Cell struct {
	Group *group.Group `json:"group,omitempty"`
	State CellState    `json:"state"`
}

// Grid is the resolved daily schedule of one branch:
// labID -> slot -> cell.
type Grid struct {
	Date  string                     `json:"date"`
	Labs  []academy.Lab              `json:"labs"`
	Slots []string                   `json:"slots"`
	Cells map[string]map[string]Cell `json:"cells"`
}

// Sheet is what the attendance form needs when it opens for a group.
type Sheet struct {
	Group             group.Group       `json:"group"`
	Students          []academy.Student `json:"students"`
	SessionNumber     int               `json:"session_number"`
	EndOfLevelReached bool              `json:"end_of_level_reached"`
}

// SaveResult reports the outcome of saving a sheet. EndOfLevelReached tells
// the caller to offer the finish/upgrade/continue actions.
type SaveResult struct {
	Session           Session `json:"session"`
	EndOfLevelReached bool    `json:"end_of_level_reached"`
	AbsentNotified    int     `json:"absent_notified"`
}

// SaveAttendance contains a filled attendance sheet to be recorded.
type SaveAttendance struct {
	Date       string          `json:"date" validate:"required,civildate"`
	Attendance map[string]bool `json:"attendance" validate:"required"`
	Image      string          `json:"image"`
}

func (sa *SaveAttendance) Validate() error {
	return core.Validate.Struct(sa)
}

// ResolveGrid finds, for every (lab, slot) cell, the group occupying it on the
// given date: same lab, start time equal to the slot, recurring on the date's
// weekday, and the date within the group's start/end range. When data entry
// permits overlaps the first match in iteration order wins; the resolver never
// errors on conflicts.
func ResolveGrid(date string, labs []academy.Lab, groups []group.Group) (map[string]map[string]*group.Group, error) {
	day, err := schedule.WeekdayOf(date)
	if err != nil {
		return nil, err
	}
	slots := schedule.TimeSlots()
	res := make(map[string]map[string]*group.Group, len(labs))
	for _, lab := range labs {
		res[lab.ID] = make(map[string]*group.Group, len(slots))
		for _, slot := range slots {
			res[lab.ID][slot] = nil
			for i := range groups {
				g := &groups[i]
				if g.LabID == lab.ID && g.StartTime == slot && g.ScheduledOn(day) && g.InDateRange(date) {
					res[lab.ID][slot] = g
					break
				}
			}
		}
	}
	return res, nil
}
