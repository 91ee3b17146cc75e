package kvrepos_test

import (
	"fmt"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/latinacademy/academia/core"
	"github.com/latinacademy/academia/core/academy"
	"github.com/latinacademy/academia/core/attendance"
	"github.com/latinacademy/academia/core/group"
	logsvc "github.com/latinacademy/academia/services/logger"
	notifsvc "github.com/latinacademy/academia/services/notification"
	"github.com/latinacademy/academia/storage/kvrepos"
	"github.com/latinacademy/academia/storage/kvstore"
)

type services struct {
	academy    *academy.Service
	group      *group.Service
	attendance *attendance.Service
}

func setup(t *testing.T) *services {
	t.Helper()
	store, err := kvstore.OpenFile(t.TempDir())
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	db := kvrepos.Open(store)

	academySvc := academy.NewService(kvrepos.NewAcademyRepository(db))
	groupSvc := group.NewService(kvrepos.NewGroupRepository(db), academySvc)
	attSvc := attendance.NewService(
		kvrepos.NewAttendanceRepository(db),
		groupSvc,
		academySvc,
		notifsvc.NewConsoleServiceMock(),
		logsvc.NewStdLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags)),
	)
	return &services{academy: academySvc, group: groupSvc, attendance: attSvc}
}

type fixture struct {
	branch academy.Branch
	lab    academy.Lab
	course academy.Course
	level  academy.CourseLevel
	instr  academy.Instructor
}

func seedCatalog(t *testing.T, svcs *services, lectureCount int) fixture {
	t.Helper()
	branch, err := svcs.academy.CreateBranch(academy.NewBranch{Name: "Main", Governorate: "Cairo"})
	if err != nil {
		t.Fatalf("seedCatalog() failed: %v", err)
	}
	lab, err := svcs.academy.CreateLab(academy.NewLab{
		Name: "Lab 1", Capacity: 10, Type: academy.LabTypeGeneral, BranchID: branch.ID,
	})
	if err != nil {
		t.Fatalf("seedCatalog() failed: %v", err)
	}
	course, err := svcs.academy.CreateCourse(academy.NewCourse{Name: "English"})
	if err != nil {
		t.Fatalf("seedCatalog() failed: %v", err)
	}
	level, err := svcs.academy.CreateLevel(academy.NewCourseLevel{
		CourseID: course.ID, LevelNumber: 1, LectureCount: lectureCount, Price: 100,
	})
	if err != nil {
		t.Fatalf("seedCatalog() failed: %v", err)
	}
	instr, err := svcs.academy.CreateInstructor(academy.NewInstructor{Name: "Mr X", CourseIDs: []string{course.ID}})
	if err != nil {
		t.Fatalf("seedCatalog() failed: %v", err)
	}
	return fixture{branch: branch, lab: lab, course: course, level: level, instr: instr}
}

func newGroupInput(fix fixture, name, startDate string) group.NewGroup {
	return group.NewGroup{
		Name:          name,
		CourseID:      fix.course.ID,
		LevelID:       fix.level.ID,
		BranchID:      fix.branch.ID,
		LabID:         fix.lab.ID,
		InstructorID:  fix.instr.ID,
		WeeklyDays:    []time.Weekday{time.Sunday, time.Tuesday},
		StartTime:     "10:00",
		DurationHours: 2,
		StartDate:     startDate,
	}
}

func TestGroupService_Create(t *testing.T) {
	svcs := setup(t)
	fix := seedCatalog(t, svcs, 3)

	grp, err := svcs.group.Create(newGroupInput(fix, "Eagles 1", "2024-01-07"))
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	// 3 lectures on Sun+Tue from Sunday 2024-01-07: 07, 09, 14
	if grp.EndDate != "2024-01-14" {
		t.Errorf("end date = %v; want 2024-01-14", grp.EndDate)
	}
	if grp.Code != "GRP-0001" {
		t.Errorf("code = %v; want GRP-0001", grp.Code)
	}
	if grp.LectureCount != 3 || grp.Price != 100 {
		t.Errorf("denormalized level data = (%v, %v); want (3, 100)", grp.LectureCount, grp.Price)
	}
	if grp.Status != group.StatusActive {
		t.Errorf("status = %v; want %v", grp.Status, group.StatusActive)
	}

	grp2, err := svcs.group.Create(newGroupInput(fix, "Eagles 1 B", "2024-01-07"))
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if grp2.Code != "GRP-0002" {
		t.Errorf("code = %v; want GRP-0002", grp2.Code)
	}
}

func TestGroupService_Create_unknownLevel(t *testing.T) {
	svcs := setup(t)
	fix := seedCatalog(t, svcs, 3)

	ng := newGroupInput(fix, "Ghost", "2024-01-07")
	ng.LevelID = "lvl-nope"
	if _, err := svcs.group.Create(ng); err == nil {
		t.Fatal("Create() expected error")
	} else if _, ok := err.(*core.ValidationError); !ok {
		t.Errorf("Create() error = %T; want *core.ValidationError", err)
	}
}

func TestGroupService_Update_reDerivesEndDate(t *testing.T) {
	svcs := setup(t)
	fix := seedCatalog(t, svcs, 3)

	grp, err := svcs.group.Create(newGroupInput(fix, "Eagles 1", "2024-01-07"))
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	// renaming does not touch the schedule
	renamed, err := svcs.group.Update(grp.ID, group.UpdateGroup{Name: "Falcons 1"})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if renamed.EndDate != grp.EndDate {
		t.Errorf("end date changed on rename: %v -> %v", grp.EndDate, renamed.EndDate)
	}

	// moving the start date re-derives the end date: 3 lectures on Sun+Tue
	// from Tuesday 2024-01-09: 09, 14, 16
	moved, err := svcs.group.Update(grp.ID, group.UpdateGroup{StartDate: "2024-01-09"})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if moved.EndDate != "2024-01-16" {
		t.Errorf("end date = %v; want 2024-01-16", moved.EndDate)
	}

	// narrowing the weekly days stretches it: 3 lectures on Sun only
	// from 2024-01-07: 07, 14, 21
	narrowed, err := svcs.group.Update(grp.ID, group.UpdateGroup{
		StartDate:  "2024-01-07",
		WeeklyDays: []time.Weekday{time.Sunday},
	})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if narrowed.EndDate != "2024-01-21" {
		t.Errorf("end date = %v; want 2024-01-21", narrowed.EndDate)
	}
}

func TestAttendanceService_sessionNumbering(t *testing.T) {
	svcs := setup(t)
	fix := seedCatalog(t, svcs, 10)

	grp, err := svcs.group.Create(newGroupInput(fix, "Eagles 1", "2024-01-07"))
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	for i := 1; i <= 10; i++ {
		sheet, err := svcs.attendance.OpenSheet(grp.ID)
		if err != nil {
			t.Fatalf("OpenSheet() #%d failed: %v", i, err)
		}
		if sheet.SessionNumber != i {
			t.Errorf("sheet session number = %v; want %v", sheet.SessionNumber, i)
		}

		res, err := svcs.attendance.Save(grp.ID, attendance.SaveAttendance{
			Date:       fmt.Sprintf("2024-01-%02d", i),
			Attendance: map[string]bool{},
		})
		if err != nil {
			t.Fatalf("Save() #%d failed: %v", i, err)
		}
		if res.Session.SessionNumber != i {
			t.Errorf("saved session number = %v; want %v", res.Session.SessionNumber, i)
		}
		if want := i >= 10; res.EndOfLevelReached != want {
			t.Errorf("end of level after session %d = %v; want %v", i, res.EndOfLevelReached, want)
		}
	}

	sessions, err := svcs.attendance.Sessions(grp.ID)
	if err != nil {
		t.Fatalf("Sessions() failed: %v", err)
	}
	if len(sessions) != 10 {
		t.Fatalf("sessions = %v; want 10", len(sessions))
	}
	for i, s := range sessions {
		if s.SessionNumber != i+1 {
			t.Errorf("session[%d].SessionNumber = %v; want %v", i, s.SessionNumber, i+1)
		}
	}
}

func TestAttendanceService_Save_onePerDate(t *testing.T) {
	svcs := setup(t)
	fix := seedCatalog(t, svcs, 3)

	grp, err := svcs.group.Create(newGroupInput(fix, "Eagles 1", "2024-01-07"))
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if _, err := svcs.attendance.Save(grp.ID, attendance.SaveAttendance{
		Date:       "2024-01-07",
		Attendance: map[string]bool{},
	}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	// a second save for the same date must not append another record
	_, err = svcs.attendance.Save(grp.ID, attendance.SaveAttendance{
		Date:       "2024-01-07",
		Attendance: map[string]bool{},
	})
	if err == nil {
		t.Fatal("Save() accepted a duplicate date")
	}
	if _, ok := err.(*core.ValidationError); !ok {
		t.Errorf("Save() error = %T; want *core.ValidationError", err)
	}

	sessions, err := svcs.attendance.Sessions(grp.ID)
	if err != nil {
		t.Fatalf("Sessions() failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Errorf("sessions = %v; want 1", len(sessions))
	}

	// the next date still gets the next number, unaffected by the rejection
	res, err := svcs.attendance.Save(grp.ID, attendance.SaveAttendance{
		Date:       "2024-01-09",
		Attendance: map[string]bool{},
	})
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if res.Session.SessionNumber != 2 {
		t.Errorf("session number = %v; want 2", res.Session.SessionNumber)
	}
}

func TestAttendanceService_Save_notifiesAbsents(t *testing.T) {
	svcs := setup(t)
	fix := seedCatalog(t, svcs, 3)

	present, err := svcs.academy.CreateStudent(academy.NewStudent{Name: "Here", Mobile: "+201000000001"})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	absent, err := svcs.academy.CreateStudent(academy.NewStudent{Name: "Gone", Mobile: "+201000000002"})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}

	ng := newGroupInput(fix, "Eagles 1", "2024-01-07")
	ng.StudentIDs = []string{present.ID, absent.ID}
	grp, err := svcs.group.Create(ng)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	notifsvc.ClearSentMessages()
	res, err := svcs.attendance.Save(grp.ID, attendance.SaveAttendance{
		Date: "2024-01-07",
		Attendance: map[string]bool{
			present.ID: true,
			absent.ID:  false,
		},
	})
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if res.AbsentNotified != 1 {
		t.Errorf("absent notified = %v; want 1", res.AbsentNotified)
	}
	if len(notifsvc.SentMessages) != 1 {
		t.Fatalf("sent messages = %v; want 1", len(notifsvc.SentMessages))
	}
	msg := notifsvc.SentMessages[0]
	if msg.Contact != absent.Mobile {
		t.Errorf("message contact = %v; want %v", msg.Contact, absent.Mobile)
	}
	if !strings.Contains(msg.Body, grp.Name) {
		t.Errorf("message body %q does not mention the group", msg.Body)
	}
}

func TestAttendanceService_Upgrade_noNextLevel(t *testing.T) {
	svcs := setup(t)
	fix := seedCatalog(t, svcs, 3) // single-level course

	grp, err := svcs.group.Create(newGroupInput(fix, "Eagles 1", "2024-01-07"))
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if _, err := svcs.attendance.Upgrade(grp.ID, "2024-01-14"); err != academy.ErrNoNextLevel {
		t.Fatalf("Upgrade() error = %v; want %v", err, academy.ErrNoNextLevel)
	}

	// nothing was mutated
	groups, err := svcs.group.QueryAll()
	if err != nil {
		t.Fatalf("QueryAll() failed: %v", err)
	}
	if len(groups) != 1 {
		t.Errorf("groups = %v; want 1", len(groups))
	}
	unchanged, err := svcs.group.GetByID(grp.ID)
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}
	if unchanged.Status != grp.Status || unchanged.LevelID != grp.LevelID {
		t.Errorf("group mutated on failed upgrade: %+v", unchanged)
	}
}

func TestAttendanceService_Finish(t *testing.T) {
	svcs := setup(t)
	fix := seedCatalog(t, svcs, 3)

	grp, err := svcs.group.Create(newGroupInput(fix, "Eagles 1", "2024-01-07"))
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	finished, err := svcs.attendance.Finish(grp.ID)
	if err != nil {
		t.Fatalf("Finish() failed: %v", err)
	}
	if finished.Status != group.StatusFinished {
		t.Errorf("status = %v; want %v", finished.Status, group.StatusFinished)
	}
}

func TestAcademyService_levels(t *testing.T) {
	svcs := setup(t)
	fix := seedCatalog(t, svcs, 3)

	// duplicate level number for the same course is rejected
	if _, err := svcs.academy.CreateLevel(academy.NewCourseLevel{
		CourseID: fix.course.ID, LevelNumber: 1, LectureCount: 5, Price: 50,
	}); err == nil {
		t.Error("CreateLevel() accepted a duplicate level number")
	}

	level2, err := svcs.academy.CreateLevel(academy.NewCourseLevel{
		CourseID: fix.course.ID, LevelNumber: 2, LectureCount: 5, Price: 50,
	})
	if err != nil {
		t.Fatalf("CreateLevel() failed: %v", err)
	}

	next, err := svcs.academy.NextLevel(fix.level)
	if err != nil {
		t.Fatalf("NextLevel() failed: %v", err)
	}
	if next.ID != level2.ID {
		t.Errorf("NextLevel() = %v; want %v", next.ID, level2.ID)
	}

	if _, err := svcs.academy.NextLevel(level2); err != academy.ErrNoNextLevel {
		t.Errorf("NextLevel() error = %v; want %v", err, academy.ErrNoNextLevel)
	}
}

func TestAcademyService_search(t *testing.T) {
	svcs := setup(t)

	if _, err := svcs.academy.CreateBranch(academy.NewBranch{Name: "Downtown", Governorate: "Cairo"}); err != nil {
		t.Fatalf("CreateBranch() failed: %v", err)
	}
	if _, err := svcs.academy.CreateBranch(academy.NewBranch{Name: "October", Governorate: "Giza"}); err != nil {
		t.Fatalf("CreateBranch() failed: %v", err)
	}

	byName, err := svcs.academy.QueryBranches("down")
	if err != nil {
		t.Fatalf("QueryBranches() failed: %v", err)
	}
	if len(byName) != 1 || byName[0].Name != "Downtown" {
		t.Errorf("QueryBranches(down) = %+v; want Downtown only", byName)
	}

	byCode, err := svcs.academy.QueryBranches("br-0002")
	if err != nil {
		t.Fatalf("QueryBranches() failed: %v", err)
	}
	if len(byCode) != 1 || byCode[0].Name != "October" {
		t.Errorf("QueryBranches(br-0002) = %+v; want October only", byCode)
	}

	all, err := svcs.academy.QueryBranches("")
	if err != nil {
		t.Fatalf("QueryBranches() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("QueryBranches(\"\") = %v results; want 2", len(all))
	}
}
