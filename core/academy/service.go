package academy

import (
	"errors"
	"strings"

	"github.com/latinacademy/academia/core"
)

var (
	// errors
	ErrBranchNotFound     = errors.New("branch not found")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrLabNotFound        = errors.New("lab not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrInstructorNotFound = errors.New("instructor not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrLevelNotFound      = errors.New("course level not found")
	ErrNoNextLevel        = errors.New("course has no next level")
	ErrLevelNumberExists  = errors.New("a level with this number already exists for this course")
)

type (
	BranchRepository interface {
		CreateBranch(b Branch) (Branch, error)
		QueryAllBranches() ([]Branch, error)
		GetBranchByID(id string) (Branch, error)
		DeleteBranch(id string) error
	}

	DepartmentRepository interface {
		CreateDepartment(d Department) (Department, error)
		QueryAllDepartments() ([]Department, error)
		DeleteDepartment(id string) error
	}

	LabRepository interface {
		CreateLab(l Lab) (Lab, error)
		QueryAllLabs() ([]Lab, error)
		GetLabByID(id string) (Lab, error)
		DeleteLab(id string) error
	}

	StudentRepository interface {
		CreateStudent(s Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id string) (Student, error)
		DeleteStudent(id string) error
	}

	InstructorRepository interface {
		CreateInstructor(i Instructor) (Instructor, error)
		QueryAllInstructors() ([]Instructor, error)
		GetInstructorByID(id string) (Instructor, error)
		DeleteInstructor(id string) error
	}

	CourseRepository interface {
		CreateCourse(c Course) (Course, error)
		QueryAllCourses() ([]Course, error)
		GetCourseByID(id string) (Course, error)
		DeleteCourse(id string) error

		CreateLevel(l CourseLevel) (CourseLevel, error)
		QueryAllLevels() ([]CourseLevel, error)
		GetLevelByID(id string) (CourseLevel, error)
		DeleteLevel(id string) error
	}

	// Repository is the persistence boundary for the whole catalog.
	Repository interface {
		BranchRepository
		DepartmentRepository
		LabRepository
		StudentRepository
		InstructorRepository
		CourseRepository
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// matches does the catalog pages' case-insensitive search on name or code.
func matches(search, name, code string) bool {
	if search == "" {
		return true
	}
	search = strings.ToLower(search)
	return strings.Contains(strings.ToLower(name), search) ||
		strings.Contains(strings.ToLower(code), search)
}

// Branches

func (svc *Service) CreateBranch(nb NewBranch) (Branch, error) {
	branches, err := svc.repo.QueryAllBranches()
	if err != nil {
		return Branch{}, err
	}
	b := Branch{
		ID:          core.NewID("branch-"),
		Code:        core.NextCode(BranchCodePrefix, branchCodes(branches)),
		Name:        nb.Name,
		Governorate: nb.Governorate,
	}
	return svc.repo.CreateBranch(b)
}

func (svc *Service) QueryBranches(search string) ([]Branch, error) {
	branches, err := svc.repo.QueryAllBranches()
	if err != nil {
		return nil, err
	}
	res := make([]Branch, 0, len(branches))
	for _, b := range branches {
		if matches(search, b.Name, b.Code) {
			res = append(res, b)
		}
	}
	return res, nil
}

func (svc *Service) GetBranch(id string) (Branch, error) { return svc.repo.GetBranchByID(id) }

func (svc *Service) DeleteBranch(id string) error { return svc.repo.DeleteBranch(id) }

// Departments

func (svc *Service) CreateDepartment(nd NewDepartment) (Department, error) {
	departments, err := svc.repo.QueryAllDepartments()
	if err != nil {
		return Department{}, err
	}
	d := Department{
		ID:   core.NewID("dept-"),
		Code: core.NextCode(DepartmentCodePrefix, departmentCodes(departments)),
		Name: nd.Name,
	}
	return svc.repo.CreateDepartment(d)
}

func (svc *Service) QueryDepartments(search string) ([]Department, error) {
	departments, err := svc.repo.QueryAllDepartments()
	if err != nil {
		return nil, err
	}
	res := make([]Department, 0, len(departments))
	for _, d := range departments {
		if matches(search, d.Name, d.Code) {
			res = append(res, d)
		}
	}
	return res, nil
}

func (svc *Service) DeleteDepartment(id string) error { return svc.repo.DeleteDepartment(id) }

// Labs

func (svc *Service) CreateLab(nl NewLab) (Lab, error) {
	if _, err := svc.repo.GetBranchByID(nl.BranchID); err != nil {
		if err == ErrBranchNotFound {
			return Lab{}, core.NewValidationError(err, core.FieldError{Field: "branch_id", Error: err.Error()})
		}
		return Lab{}, err
	}
	labs, err := svc.repo.QueryAllLabs()
	if err != nil {
		return Lab{}, err
	}
	l := Lab{
		ID:       core.NewID("lab-"),
		Code:     core.NextCode(LabCodePrefix, labCodes(labs)),
		Name:     nl.Name,
		Location: nl.Location,
		Capacity: nl.Capacity,
		Type:     nl.Type,
		BranchID: nl.BranchID,
	}
	return svc.repo.CreateLab(l)
}

func (svc *Service) QueryLabs(search string) ([]Lab, error) {
	labs, err := svc.repo.QueryAllLabs()
	if err != nil {
		return nil, err
	}
	res := make([]Lab, 0, len(labs))
	for _, l := range labs {
		if matches(search, l.Name, l.Code) {
			res = append(res, l)
		}
	}
	return res, nil
}

// QueryBranchLabs returns the labs of one branch, in stable creation order.
func (svc *Service) QueryBranchLabs(branchID string) ([]Lab, error) {
	labs, err := svc.repo.QueryAllLabs()
	if err != nil {
		return nil, err
	}
	res := make([]Lab, 0, len(labs))
	for _, l := range labs {
		if l.BranchID == branchID {
			res = append(res, l)
		}
	}
	return res, nil
}

func (svc *Service) DeleteLab(id string) error { return svc.repo.DeleteLab(id) }

// Students

func (svc *Service) CreateStudent(ns NewStudent) (Student, error) {
	s := Student{
		ID:                core.NewID("std-"),
		Name:              ns.Name,
		Mobile:            ns.Mobile,
		ApplicationNumber: ns.ApplicationNumber,
	}
	return svc.repo.CreateStudent(s)
}

// QueryStudents searches by name, mobile or application number, the way the
// group membership picker does.
func (svc *Service) QueryStudents(search string) ([]Student, error) {
	students, err := svc.repo.QueryAllStudents()
	if err != nil {
		return nil, err
	}
	search = strings.ToLower(core.CleanString(search))
	res := make([]Student, 0, len(students))
	for _, s := range students {
		if search == "" ||
			strings.Contains(strings.ToLower(s.Name), search) ||
			strings.Contains(s.Mobile, search) ||
			(s.ApplicationNumber != "" && strings.Contains(s.ApplicationNumber, search)) {
			res = append(res, s)
		}
	}
	return res, nil
}

func (svc *Service) GetStudent(id string) (Student, error) { return svc.repo.GetStudentByID(id) }

// GetStudents resolves a membership id set, skipping ids that no longer exist.
func (svc *Service) GetStudents(ids []string) ([]Student, error) {
	res := make([]Student, 0, len(ids))
	for _, id := range ids {
		s, err := svc.repo.GetStudentByID(id)
		if err == ErrStudentNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, nil
}

func (svc *Service) DeleteStudent(id string) error { return svc.repo.DeleteStudent(id) }

// Instructors

func (svc *Service) CreateInstructor(ni NewInstructor) (Instructor, error) {
	i := Instructor{
		ID:        core.NewID("ins-"),
		Name:      ni.Name,
		CourseIDs: ni.CourseIDs,
	}
	return svc.repo.CreateInstructor(i)
}

func (svc *Service) QueryInstructors(courseID string) ([]Instructor, error) {
	instructors, err := svc.repo.QueryAllInstructors()
	if err != nil {
		return nil, err
	}
	if courseID == "" {
		return instructors, nil
	}
	res := make([]Instructor, 0, len(instructors))
	for _, i := range instructors {
		for _, cid := range i.CourseIDs {
			if cid == courseID {
				res = append(res, i)
				break
			}
		}
	}
	return res, nil
}

func (svc *Service) DeleteInstructor(id string) error { return svc.repo.DeleteInstructor(id) }

// Courses & levels

func (svc *Service) CreateCourse(nc NewCourse) (Course, error) {
	courses, err := svc.repo.QueryAllCourses()
	if err != nil {
		return Course{}, err
	}
	c := Course{
		ID:   core.NewID("crs-"),
		Code: core.NextCode(CourseCodePrefix, courseCodes(courses)),
		Name: nc.Name,
	}
	return svc.repo.CreateCourse(c)
}

func (svc *Service) QueryCourses(search string) ([]Course, error) {
	courses, err := svc.repo.QueryAllCourses()
	if err != nil {
		return nil, err
	}
	res := make([]Course, 0, len(courses))
	for _, c := range courses {
		if matches(search, c.Name, c.Code) {
			res = append(res, c)
		}
	}
	return res, nil
}

func (svc *Service) GetCourse(id string) (Course, error) { return svc.repo.GetCourseByID(id) }

func (svc *Service) DeleteCourse(id string) error { return svc.repo.DeleteCourse(id) }

func (svc *Service) CreateLevel(nl NewCourseLevel) (CourseLevel, error) {
	if _, err := svc.repo.GetCourseByID(nl.CourseID); err != nil {
		if err == ErrCourseNotFound {
			return CourseLevel{}, core.NewValidationError(err, core.FieldError{Field: "course_id", Error: err.Error()})
		}
		return CourseLevel{}, err
	}
	levels, err := svc.repo.QueryAllLevels()
	if err != nil {
		return CourseLevel{}, err
	}
	// level numbers are unique per course
	for _, l := range levels {
		if l.CourseID == nl.CourseID && l.LevelNumber == nl.LevelNumber {
			return CourseLevel{}, core.NewValidationError(ErrLevelNumberExists,
				core.FieldError{Field: "level_number", Error: ErrLevelNumberExists.Error()})
		}
	}
	l := CourseLevel{
		ID:           core.NewID("lvl-"),
		Code:         core.NextCode(LevelCodePrefix, levelCodes(levels)),
		CourseID:     nl.CourseID,
		LevelNumber:  nl.LevelNumber,
		LectureCount: nl.LectureCount,
		Price:        nl.Price,
	}
	return svc.repo.CreateLevel(l)
}

func (svc *Service) QueryCourseLevels(courseID string) ([]CourseLevel, error) {
	levels, err := svc.repo.QueryAllLevels()
	if err != nil {
		return nil, err
	}
	res := make([]CourseLevel, 0, len(levels))
	for _, l := range levels {
		if courseID == "" || l.CourseID == courseID {
			res = append(res, l)
		}
	}
	return res, nil
}

func (svc *Service) GetLevel(id string) (CourseLevel, error) { return svc.repo.GetLevelByID(id) }

// NextLevel returns the level following lvl within the same course, ie. the
// unique level with levelNumber+1. ErrNoNextLevel if the course ends at lvl.
func (svc *Service) NextLevel(lvl CourseLevel) (CourseLevel, error) {
	levels, err := svc.repo.QueryAllLevels()
	if err != nil {
		return CourseLevel{}, err
	}
	for _, l := range levels {
		if l.CourseID == lvl.CourseID && l.LevelNumber == lvl.LevelNumber+1 {
			return l, nil
		}
	}
	return CourseLevel{}, ErrNoNextLevel
}

func (svc *Service) DeleteLevel(id string) error { return svc.repo.DeleteLevel(id) }

// code slices

func branchCodes(bs []Branch) []string {
	codes := make([]string, 0, len(bs))
	for _, b := range bs {
		codes = append(codes, b.Code)
	}
	return codes
}

func departmentCodes(ds []Department) []string {
	codes := make([]string, 0, len(ds))
	for _, d := range ds {
		codes = append(codes, d.Code)
	}
	return codes
}

func labCodes(ls []Lab) []string {
	codes := make([]string, 0, len(ls))
	for _, l := range ls {
		codes = append(codes, l.Code)
	}
	return codes
}

func courseCodes(cs []Course) []string {
	codes := make([]string, 0, len(cs))
	for _, c := range cs {
		codes = append(codes, c.Code)
	}
	return codes
}

func levelCodes(ls []CourseLevel) []string {
	codes := make([]string, 0, len(ls))
	for _, l := range ls {
		codes = append(codes, l.Code)
	}
	return codes
}
