package group

import (
	"errors"

	"github.com/latinacademy/academia/core"
	"github.com/latinacademy/academia/core/academy"
	"github.com/latinacademy/academia/core/schedule"
)

var (
	// errors
	ErrNotFound = errors.New("group not found")
)

type (
	Repository interface {
		CreateGroup(g Group) (Group, error)
		QueryAllGroups() ([]Group, error)
		GetGroupByID(id string) (Group, error)
		UpdateGroup(g Group) (Group, error)
		DeleteGroup(id string) error
	}

	Service struct {
		repo    Repository
		academy *academy.Service
	}
)

func NewService(repo Repository, academySvc *academy.Service) *Service {
	return &Service{repo: repo, academy: academySvc}
}

// Create builds a group from validated input: generated id and code, price and
// lecture count denormalized from the level, end date derived from the weekly
// pattern.
func (svc *Service) Create(ng NewGroup) (Group, error) {
	lvl, err := svc.academy.GetLevel(ng.LevelID)
	if err != nil {
		if err == academy.ErrLevelNotFound {
			return Group{}, core.NewValidationError(err, core.FieldError{Field: "level_id", Error: err.Error()})
		}
		return Group{}, err
	}

	endDate, err := schedule.ComputeEndDate(ng.StartDate, ng.WeeklyDays, lvl.LectureCount)
	if err != nil {
		return Group{}, err
	}

	groups, err := svc.repo.QueryAllGroups()
	if err != nil {
		return Group{}, err
	}

	status := ng.Status
	if status == "" {
		status = StatusActive
	}
	g := Group{
		ID:            core.NewID("grp-"),
		Code:          core.NextCode(CodePrefix, Codes(groups)),
		Name:          ng.Name,
		CourseID:      ng.CourseID,
		LevelID:       ng.LevelID,
		BranchID:      ng.BranchID,
		LabID:         ng.LabID,
		InstructorID:  ng.InstructorID,
		WeeklyDays:    ng.WeeklyDays,
		StartTime:     ng.StartTime,
		DurationHours: ng.DurationHours,
		StartDate:     ng.StartDate,
		EndDate:       endDate,
		Status:        status,
		StudentIDs:    ng.StudentIDs,
		LectureCount:  lvl.LectureCount,
		Price:         lvl.Price,
	}
	return svc.repo.CreateGroup(g)
}

func (svc *Service) QueryAll() ([]Group, error) {
	return svc.repo.QueryAllGroups()
}

func (svc *Service) GetByID(id string) (Group, error) {
	return svc.repo.GetGroupByID(id)
}

// QueryByBranch returns a branch's groups in stable creation order. Weekday
// and date range checks are left to the attendance grid resolver.
func (svc *Service) QueryByBranch(branchID string) ([]Group, error) {
	groups, err := svc.repo.QueryAllGroups()
	if err != nil {
		return nil, err
	}
	res := make([]Group, 0, len(groups))
	for _, g := range groups {
		if g.BranchID == branchID {
			res = append(res, g)
		}
	}
	return res, nil
}

// Update applies the set fields of ug and re-derives the end date when any
// schedule field changed.
func (svc *Service) Update(id string, ug UpdateGroup) (Group, error) {
	g, err := svc.repo.GetGroupByID(id)
	if err != nil {
		return Group{}, err
	}

	if ug.Name != "" {
		g.Name = ug.Name
	}
	if ug.Code != "" {
		g.Code = ug.Code
	}
	if ug.Status != "" {
		g.Status = ug.Status
	}
	if ug.StudentIDs != nil {
		g.StudentIDs = ug.StudentIDs
	}
	if ug.DurationHours != 0 {
		g.DurationHours = ug.DurationHours
	}
	if ug.Price != nil {
		g.Price = *ug.Price
	}

	reschedule := false
	if ug.StartDate != "" && ug.StartDate != g.StartDate {
		g.StartDate = ug.StartDate
		reschedule = true
	}
	if ug.StartTime != "" {
		g.StartTime = ug.StartTime
	}
	if ug.WeeklyDays != nil {
		g.WeeklyDays = ug.WeeklyDays
		reschedule = true
	}
	if reschedule {
		endDate, err := schedule.ComputeEndDate(g.StartDate, g.WeeklyDays, g.LectureCount)
		if err != nil {
			return Group{}, err
		}
		g.EndDate = endDate
	}

	return svc.repo.UpdateGroup(g)
}

func (svc *Service) SetStatus(id string, status Status) (Group, error) {
	g, err := svc.repo.GetGroupByID(id)
	if err != nil {
		return Group{}, err
	}
	g.Status = status
	return svc.repo.UpdateGroup(g)
}

func (svc *Service) Delete(id string) error {
	return svc.repo.DeleteGroup(id)
}

// Codes returns the code of every group, for sequential code generation.
func Codes(groups []Group) []string {
	codes := make([]string, 0, len(groups))
	for _, g := range groups {
		codes = append(codes, g.Code)
	}
	return codes
}
