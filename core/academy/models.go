package academy

import "github.com/latinacademy/academia/core"

// Code prefixes, one per entity kind.
const (
	BranchCodePrefix     = "BR"
	DepartmentCodePrefix = "DEP"
	LabCodePrefix        = "LAB"
	CourseCodePrefix     = "CRS"
	LevelCodePrefix      = "LVL"
)

type LabType string

const (
	LabTypeComputer LabType = "computer"
	LabTypeLanguage LabType = "language"
	LabTypeGeneral  LabType = "general"
)

type (
	Branch struct {
		ID          string `json:"id"`
		Code        string `json:"code"`
		Name        string `json:"name"`
		Governorate string `json:"governorate"`
	}

	Department struct {
		ID   string `json:"id"`
		Code string `json:"code"`
		Name string `json:"name"`
	}

	Lab struct {
		ID       string  `json:"id"`
		Code     string  `json:"code"`
		Name     string  `json:"name"`
		Location string  `json:"location"`
		Capacity int     `json:"capacity"`
		Type     LabType `json:"type"`
		BranchID string  `json:"branch_id"`
	}

	Student struct {
		ID                string `json:"id"`
		Name              string `json:"name"`
		Mobile            string `json:"mobile"`
		ApplicationNumber string `json:"application_number"`
	}

	Instructor struct {
		ID        string   `json:"id"`
		Name      string   `json:"name"`
		CourseIDs []string `json:"course_ids"`
	}

	Course struct {
		ID   string `json:"id"`
		Code string `json:"code"`
		Name string `json:"name"`
	}

	// CourseLevel is one ordered stage within a Course. Level numbers are
	// unique per course; the next level is levelNumber+1.
	CourseLevel struct {
		ID           string  `json:"id"`
		Code         string  `json:"code"`
		CourseID     string  `json:"course_id"`
		LevelNumber  int     `json:"level_number"`
		LectureCount int     `json:"lecture_count"`
		Price        float64 `json:"price"`
	}
)

// Input structs

type NewBranch struct {
	Name        string `json:"name" validate:"required"`
	Governorate string `json:"governorate" validate:"required"`
}

func (nb *NewBranch) Validate() error {
	nb.Name = core.CleanString(nb.Name)
	nb.Governorate = core.CleanString(nb.Governorate)
	return core.Validate.Struct(nb)
}

type NewDepartment struct {
	Name string `json:"name" validate:"required"`
}

func (nd *NewDepartment) Validate() error {
	nd.Name = core.CleanString(nd.Name)
	return core.Validate.Struct(nd)
}

type NewLab struct {
	Name     string  `json:"name" validate:"required"`
	Location string  `json:"location"`
	Capacity int     `json:"capacity" validate:"min=0"`
	Type     LabType `json:"type" validate:"required,labtype"`
	BranchID string  `json:"branch_id" validate:"required"`
}

func (nl *NewLab) Validate() error {
	nl.Name = core.CleanString(nl.Name)
	nl.Location = core.CleanString(nl.Location)
	return core.Validate.Struct(nl)
}

type NewStudent struct {
	Name              string `json:"name" validate:"required"`
	Mobile            string `json:"mobile" validate:"required"`
	ApplicationNumber string `json:"application_number"`
}

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Mobile = core.CleanString(ns.Mobile)
	ns.ApplicationNumber = core.CleanString(ns.ApplicationNumber)
	return core.Validate.Struct(ns)
}

type NewInstructor struct {
	Name      string   `json:"name" validate:"required"`
	CourseIDs []string `json:"course_ids"`
}

func (ni *NewInstructor) Validate() error {
	ni.Name = core.CleanString(ni.Name)
	return core.Validate.Struct(ni)
}

type NewCourse struct {
	Name string `json:"name" validate:"required"`
}

func (nc *NewCourse) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	return core.Validate.Struct(nc)
}

type NewCourseLevel struct {
	CourseID     string  `json:"course_id" validate:"required"`
	LevelNumber  int     `json:"level_number" validate:"required,min=1"`
	LectureCount int     `json:"lecture_count" validate:"required,min=1"`
	Price        float64 `json:"price" validate:"min=0"`
}

func (nl *NewCourseLevel) Validate() error {
	return core.Validate.Struct(nl)
}
