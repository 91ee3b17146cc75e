package group

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/latinacademy/academia/core"
	"github.com/latinacademy/academia/core/schedule"
)

var (
	weekdaysTag  = "weekdays"
	weekdaysText = "invalid weekdays"

	timeSlotTag  = "timeslot"
	timeSlotText = "start time must be one of the half-hour slots between 08:00 and 23:00"

	civilDateTag  = "civildate"
	civilDateText = "must be a date in YYYY-MM-DD form"

	groupStatusTag  = "groupstatus"
	groupStatusText = "invalid group status"

	startDayTag  = "startday"
	startDayText = "start date must fall on one of the weekly days"
)

func init() {
	_ = core.Validate.RegisterValidation(weekdaysTag, weekdaysValidation)
	core.RegisterCustomTranslation(weekdaysTag, weekdaysText)

	_ = core.Validate.RegisterValidation(timeSlotTag, timeSlotValidation)
	core.RegisterCustomTranslation(timeSlotTag, timeSlotText)

	_ = core.Validate.RegisterValidation(civilDateTag, civilDateValidation)
	core.RegisterCustomTranslation(civilDateTag, civilDateText)

	_ = core.Validate.RegisterValidation(groupStatusTag, groupStatusValidation)
	core.RegisterCustomTranslation(groupStatusTag, groupStatusText)

	core.Validate.RegisterStructValidation(groupStructValidation, NewGroup{})
	core.RegisterCustomTranslation(startDayTag, startDayText)
}

// weekdaysValidation checks that every weekday is in 0=Sunday..6=Saturday.
func weekdaysValidation(fl validator.FieldLevel) bool {
	days, ok := fl.Field().Interface().([]time.Weekday)
	if !ok {
		return false
	}
	for _, d := range days {
		if d < time.Sunday || d > time.Saturday {
			return false
		}
	}
	return true
}

// timeSlotValidation checks that a start time is on the fixed slot grid.
func timeSlotValidation(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, slot := range schedule.TimeSlots() {
		if slot == val {
			return true
		}
	}
	return false
}

func civilDateValidation(fl validator.FieldLevel) bool {
	_, err := schedule.ParseDate(fl.Field().String())
	return err == nil
}

func groupStatusValidation(fl validator.FieldLevel) bool {
	val := Status(fl.Field().String())
	for _, s := range Statuses {
		if s == val {
			return true
		}
	}
	return false
}

// groupStructValidation checks that the start date falls on one of the weekly
// days, like the group form does on entry.
func groupStructValidation(sl validator.StructLevel) {
	ng, ok := sl.Current().Interface().(NewGroup)
	if !ok {
		return
	}
	if len(ng.WeeklyDays) == 0 || ng.StartDate == "" {
		return // covered by field validations
	}
	day, err := schedule.WeekdayOf(ng.StartDate)
	if err != nil {
		return
	}
	for _, d := range ng.WeeklyDays {
		if d == day {
			return
		}
	}
	sl.ReportError(ng.StartDate, "start_date", "StartDate", startDayTag, "")
}
