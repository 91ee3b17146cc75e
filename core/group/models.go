package group

import (
	"time"

	"github.com/latinacademy/academia/core"
)

// CodePrefix is the sequential code prefix for groups.
const CodePrefix = "GRP"

type Status string

const (
	StatusActive    Status = "active"
	StatusPending   Status = "pending"
	StatusPostponed Status = "postponed"
	StatusCancelled Status = "cancelled"
	StatusFinished  Status = "finished"
)

var Statuses = []Status{StatusActive, StatusPending, StatusPostponed, StatusCancelled, StatusFinished}

// Group is a cohort of students working through one course level on a weekly
// pattern in a fixed lab. EndDate is always derived from the weekly pattern
// and the level's lecture count, never hand-edited.
type Group struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`

	CourseID string `json:"course_id"`
	LevelID  string `json:"level_id"`

	BranchID     string `json:"branch_id"`
	LabID        string `json:"lab_id"`
	InstructorID string `json:"instructor_id"`

	WeeklyDays    []time.Weekday `json:"weekly_days"` // 0=Sunday .. 6=Saturday
	StartTime     string         `json:"start_time"`  // "15:04" slot
	DurationHours float64        `json:"duration_hours"`
	StartDate     string         `json:"start_date"` // "2006-01-02"
	EndDate       string         `json:"end_date"`   // derived

	Status     Status   `json:"status"`
	StudentIDs []string `json:"student_ids"`

	// denormalized from the level at creation time
	LectureCount int     `json:"lecture_count"`
	Price        float64 `json:"price"`
}

// ScheduledOn reports whether the group recurs on the given weekday.
func (g *Group) ScheduledOn(day time.Weekday) bool {
	for _, d := range g.WeeklyDays {
		if d == day {
			return true
		}
	}
	return false
}

// InDateRange reports whether date falls within [StartDate, EndDate].
// Dates are in schedule.DateLayout so lexical comparison is correct.
func (g *Group) InDateRange(date string) bool {
	return g.StartDate <= date && date <= g.EndDate
}

// HasStudent reports whether the student belongs to the group.
func (g *Group) HasStudent(studentID string) bool {
	for _, id := range g.StudentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}

// NewGroup contains information needed to create a new Group.
// EndDate, price and lecture count are derived, never provided.
type NewGroup struct {
	Name          string         `json:"name" validate:"required"`
	CourseID      string         `json:"course_id" validate:"required"`
	LevelID       string         `json:"level_id" validate:"required"`
	BranchID      string         `json:"branch_id" validate:"required"`
	LabID         string         `json:"lab_id" validate:"required"`
	InstructorID  string         `json:"instructor_id" validate:"required"`
	WeeklyDays    []time.Weekday `json:"weekly_days" validate:"required,min=1,weekdays"`
	StartTime     string         `json:"start_time" validate:"required,timeslot"`
	DurationHours float64        `json:"duration_hours" validate:"required,gt=0"`
	StartDate     string         `json:"start_date" validate:"required,civildate"`
	Status        Status         `json:"status" validate:"omitempty,groupstatus"`
	StudentIDs    []string       `json:"student_ids"`
}

func (ng *NewGroup) Validate() error {
	ng.Name = core.CleanString(ng.Name)
	return core.Validate.Struct(ng)
}

// UpdateGroup defines what may be modified on an existing Group.
// Zero values keep the original; the schedule fields retrigger the end date
// derivation when any of them changes.
type UpdateGroup struct {
	Name          string         `json:"name"`
	Code          string         `json:"code"`
	StartDate     string         `json:"start_date" validate:"omitempty,civildate"`
	StartTime     string         `json:"start_time" validate:"omitempty,timeslot"`
	DurationHours float64        `json:"duration_hours" validate:"omitempty,gt=0"`
	WeeklyDays    []time.Weekday `json:"weekly_days" validate:"omitempty,min=1,weekdays"`
	Status        Status         `json:"status" validate:"omitempty,groupstatus"`
	StudentIDs    []string       `json:"student_ids"`
	Price         *float64       `json:"price" validate:"omitempty,min=0"`
}

func (ug *UpdateGroup) Validate() error {
	ug.Name = core.CleanString(ug.Name)
	ug.Code = core.CleanString(ug.Code)
	return core.Validate.Struct(ug)
}
