package attendance

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/latinacademy/academia/core"
	"github.com/latinacademy/academia/core/academy"
	"github.com/latinacademy/academia/core/group"
	"github.com/latinacademy/academia/core/schedule"
)

// absenceMessage is the text sent to each absent student's contact number.
const absenceMessage = "You were absent today from your group's lecture: %s (%s) at the academy. " +
	"If you have an excuse, please contact the administration."

// ErrSessionTaken is returned when a group already has a session record for
// the date being saved. The log holds at most one record per group and date.
var ErrSessionTaken = errors.New("attendance already recorded for this date")

type (
	// Repository is the per-group append-only session log.
	Repository interface {
		AppendSession(groupID string, s Session) error
		QuerySessions(groupID string) ([]Session, error)
	}

	Service struct {
		repo     Repository
		groupSvc *group.Service
		academy  *academy.Service
		notifier core.NotificationService
		logger   core.Logger
	}
)

func NewService(
	repo Repository,
	groupSvc *group.Service,
	academySvc *academy.Service,
	notifier core.NotificationService,
	logger core.Logger,
) *Service {
	return &Service{
		repo:     repo,
		groupSvc: groupSvc,
		academy:  academySvc,
		notifier: notifier,
		logger:   logger,
	}
}

// Grid resolves the daily schedule of a branch and derives each cell's state:
// no group, session already recorded, or live/past/future against the wall
// clock.
func (svc *Service) Grid(date, branchID string) (Grid, error) {
	if _, err := svc.academy.GetBranch(branchID); err != nil {
		return Grid{}, err
	}
	labs, err := svc.academy.QueryBranchLabs(branchID)
	if err != nil {
		return Grid{}, errors.Wrap(err, "querying branch labs")
	}
	groups, err := svc.groupSvc.QueryByBranch(branchID)
	if err != nil {
		return Grid{}, errors.Wrap(err, "querying branch groups")
	}

	resolved, err := ResolveGrid(date, labs, groups)
	if err != nil {
		return Grid{}, err
	}

	grid := Grid{
		Date:  date,
		Labs:  labs,
		Slots: schedule.TimeSlots(),
		Cells: make(map[string]map[string]Cell, len(labs)),
	}
	for labID, bySlot := range resolved {
		grid.Cells[labID] = make(map[string]Cell, len(bySlot))
		for slot, g := range bySlot {
			cell, err := svc.cellState(date, slot, g)
			if err != nil {
				return Grid{}, err
			}
			grid.Cells[labID][slot] = cell
		}
	}
	return grid, nil
}

func (svc *Service) cellState(date, slot string, g *group.Group) (Cell, error) {
	if g == nil {
		return Cell{State: CellNoGroup}, nil
	}
	taken, err := svc.sessionTaken(g.ID, date)
	if err != nil {
		return Cell{}, err
	}
	if taken {
		return Cell{Group: g, State: CellTaken}, nil
	}
	status, err := schedule.SlotStatus(date, slot)
	if err != nil {
		return Cell{}, err
	}
	switch status {
	case schedule.SlotLive:
		return Cell{Group: g, State: CellLive}, nil
	case schedule.SlotPast:
		return Cell{Group: g, State: CellPast}, nil
	default:
		return Cell{Group: g, State: CellFuture}, nil
	}
}

// sessionTaken reports whether a session was already recorded for the group
// on that date.
func (svc *Service) sessionTaken(groupID, date string) (bool, error) {
	sessions, err := svc.repo.QuerySessions(groupID)
	if err != nil {
		return false, err
	}
	for _, s := range sessions {
		if s.Date == date {
			return true, nil
		}
	}
	return false, nil
}

// nextSessionNumber is 1 + the count of sessions already recorded for the
// group: strictly increasing, no gaps, no reuse.
func (svc *Service) nextSessionNumber(groupID string) (int, error) {
	sessions, err := svc.repo.QuerySessions(groupID)
	if err != nil {
		return 0, err
	}
	return len(sessions) + 1, nil
}

// OpenSheet loads everything the attendance form needs for a group: its
// members, the upcoming session number, and whether that session reaches the
// level's lecture quota.
func (svc *Service) OpenSheet(groupID string) (Sheet, error) {
	g, err := svc.groupSvc.GetByID(groupID)
	if err != nil {
		return Sheet{}, err
	}
	students, err := svc.academy.GetStudents(g.StudentIDs)
	if err != nil {
		return Sheet{}, errors.Wrap(err, "resolving group students")
	}
	num, err := svc.nextSessionNumber(groupID)
	if err != nil {
		return Sheet{}, err
	}
	end, err := svc.endOfLevelReached(g, num)
	if err != nil {
		return Sheet{}, err
	}
	return Sheet{
		Group:             g,
		Students:          students,
		SessionNumber:     num,
		EndOfLevelReached: end,
	}, nil
}

func (svc *Service) endOfLevelReached(g group.Group, sessionNumber int) (bool, error) {
	lvl, err := svc.academy.GetLevel(g.LevelID)
	if err != nil {
		if err == academy.ErrLevelNotFound {
			return false, nil
		}
		return false, err
	}
	return sessionNumber >= lvl.LectureCount, nil
}

// Save appends the session record and notifies every absent student with a
// known contact number. A date that already has a record is rejected, so the
// log keeps one session per date. Nothing else is mutated; the caller decides
// what to do when the end of the level is reached.
func (svc *Service) Save(groupID string, sa SaveAttendance) (SaveResult, error) {
	g, err := svc.groupSvc.GetByID(groupID)
	if err != nil {
		return SaveResult{}, err
	}
	taken, err := svc.sessionTaken(groupID, sa.Date)
	if err != nil {
		return SaveResult{}, err
	}
	if taken {
		return SaveResult{}, core.NewValidationError(ErrSessionTaken,
			core.FieldError{Field: "date", Error: ErrSessionTaken.Error()})
	}
	num, err := svc.nextSessionNumber(groupID)
	if err != nil {
		return SaveResult{}, err
	}

	s := Session{
		Date:          sa.Date,
		SessionNumber: num,
		Attendance:    sa.Attendance,
		Image:         sa.Image,
	}
	if err := svc.repo.AppendSession(groupID, s); err != nil {
		return SaveResult{}, errors.Wrap(err, "appending session")
	}

	notified := svc.notifyAbsents(g, sa.Attendance)

	end, err := svc.endOfLevelReached(g, num)
	if err != nil {
		return SaveResult{}, err
	}
	return SaveResult{Session: s, EndOfLevelReached: end, AbsentNotified: notified}, nil
}

func (svc *Service) notifyAbsents(g group.Group, att map[string]bool) int {
	body := fmt.Sprintf(absenceMessage, g.Name, g.Code)
	msgs := make([]*core.TextMessage, 0)
	for studentID, present := range att {
		if present {
			continue
		}
		s, err := svc.academy.GetStudent(studentID)
		if err != nil {
			if err != academy.ErrStudentNotFound {
				svc.logger.Warn(fmt.Sprintf("looking up absent student %s: %v", studentID, err))
			}
			continue
		}
		if s.Mobile == "" {
			continue
		}
		msgs = append(msgs, &core.TextMessage{Contact: s.Mobile, Body: body})
	}
	if len(msgs) > 0 {
		svc.notifier.SendMessages(msgs...)
	}
	return len(msgs)
}

// Sessions returns the group's full session log, oldest first.
func (svc *Service) Sessions(groupID string) ([]Session, error) {
	if _, err := svc.groupSvc.GetByID(groupID); err != nil {
		return nil, err
	}
	return svc.repo.QuerySessions(groupID)
}

// Finish marks the group finished. Terminal.
func (svc *Service) Finish(groupID string) (group.Group, error) {
	return svc.groupSvc.SetStatus(groupID, group.StatusFinished)
}

// Upgrade moves the group's cohort to the next level of its course: a new
// group is created with the same students, lab, instructor and weekly pattern,
// a fresh id and code, the next level, an active status, the attendance date
// as start date and a recomputed end date. If the course has no next level
// nothing is mutated and academy.ErrNoNextLevel is returned.
func (svc *Service) Upgrade(groupID, date string) (group.Group, error) {
	g, err := svc.groupSvc.GetByID(groupID)
	if err != nil {
		return group.Group{}, err
	}
	lvl, err := svc.academy.GetLevel(g.LevelID)
	if err != nil {
		return group.Group{}, err
	}
	nextLvl, err := svc.academy.NextLevel(lvl)
	if err != nil {
		return group.Group{}, err // academy.ErrNoNextLevel: no state change
	}

	ng := group.NewGroup{
		Name:          upgradeName(g.Name, lvl.LevelNumber, nextLvl.LevelNumber),
		CourseID:      g.CourseID,
		LevelID:       nextLvl.ID,
		BranchID:      g.BranchID,
		LabID:         g.LabID,
		InstructorID:  g.InstructorID,
		WeeklyDays:    g.WeeklyDays,
		StartTime:     g.StartTime,
		DurationHours: g.DurationHours,
		StartDate:     date,
		Status:        group.StatusActive,
		StudentIDs:    g.StudentIDs,
	}
	upgraded, err := svc.groupSvc.Create(ng)
	if err != nil {
		return group.Group{}, errors.Wrap(err, "creating upgraded group")
	}
	return upgraded, nil
}

// upgradeName substitutes the level-number token in the group's display name,
// eg. "English 2 - Evening" -> "English 3 - Evening".
func upgradeName(name string, oldNum, newNum int) string {
	return strings.Replace(name, strconv.Itoa(oldNum), strconv.Itoa(newNum), 1)
}
