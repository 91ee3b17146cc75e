package main

import (
	"fmt"
	"time"

	"github.com/latinacademy/academia/core/academy"
	"github.com/latinacademy/academia/core/group"
	"github.com/latinacademy/academia/core/schedule"
)

// seed loads a small demo catalog: two branches with labs, a department, a
// leveled course with an instructor, a handful of students and one active
// group starting today.
func (cli *commandLine) seed() error {
	main, err := cli.academySvc.CreateBranch(academy.NewBranch{Name: "Main Branch", Governorate: "Cairo"})
	if err != nil {
		return err
	}
	if _, err = cli.academySvc.CreateBranch(academy.NewBranch{Name: "October Branch", Governorate: "Giza"}); err != nil {
		return err
	}

	if _, err = cli.academySvc.CreateDepartment(academy.NewDepartment{Name: "Languages"}); err != nil {
		return err
	}

	lab, err := cli.academySvc.CreateLab(academy.NewLab{
		Name: "Computer Lab 1", Location: "1st floor", Capacity: 20,
		Type: academy.LabTypeComputer, BranchID: main.ID,
	})
	if err != nil {
		return err
	}
	if _, err = cli.academySvc.CreateLab(academy.NewLab{
		Name: "Language Lab 1", Location: "2nd floor", Capacity: 15,
		Type: academy.LabTypeLanguage, BranchID: main.ID,
	}); err != nil {
		return err
	}

	course, err := cli.academySvc.CreateCourse(academy.NewCourse{Name: "General English"})
	if err != nil {
		return err
	}
	level1, err := cli.academySvc.CreateLevel(academy.NewCourseLevel{
		CourseID: course.ID, LevelNumber: 1, LectureCount: 10, Price: 650,
	})
	if err != nil {
		return err
	}
	if _, err = cli.academySvc.CreateLevel(academy.NewCourseLevel{
		CourseID: course.ID, LevelNumber: 2, LectureCount: 10, Price: 700,
	}); err != nil {
		return err
	}

	instructor, err := cli.academySvc.CreateInstructor(academy.NewInstructor{
		Name: "Sara Adel", CourseIDs: []string{course.ID},
	})
	if err != nil {
		return err
	}

	studentIDs := make([]string, 0, 4)
	for i, s := range []struct{ name, mobile string }{
		{"Ahmed Hassan", "+201000000101"},
		{"Mona Ali", "+201000000102"},
		{"Omar Khaled", "+201000000103"},
		{"Nour Ibrahim", "+201000000104"},
	} {
		std, err := cli.academySvc.CreateStudent(academy.NewStudent{
			Name: s.name, Mobile: s.mobile,
			ApplicationNumber: fmt.Sprintf("APP-%04d", i+1),
		})
		if err != nil {
			return err
		}
		studentIDs = append(studentIDs, std.ID)
	}

	today := schedule.Today()
	weekday, err := schedule.WeekdayOf(today)
	if err != nil {
		return err
	}
	otherDay := (weekday + 2) % 7

	grp, err := cli.groupSvc.Create(group.NewGroup{
		Name:          "General English 1 - Evening",
		CourseID:      course.ID,
		LevelID:       level1.ID,
		BranchID:      main.ID,
		LabID:         lab.ID,
		InstructorID:  instructor.ID,
		WeeklyDays:    []time.Weekday{weekday, otherDay},
		StartTime:     "18:00",
		DurationHours: 2,
		StartDate:     today,
		StudentIDs:    studentIDs,
	})
	if err != nil {
		return err
	}

	logger.Printf("seeded demo catalog; group %s runs %s through %s", grp.Code, grp.StartDate, grp.EndDate)
	return nil
}
