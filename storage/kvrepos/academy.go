package kvrepos

import (
	"github.com/latinacademy/academia/core/academy"
)

type academyRepository struct {
	db *DB
}

var _ academy.Repository = (*academyRepository)(nil) // interface compliance check

func NewAcademyRepository(db *DB) academy.Repository {
	return &academyRepository{db: db}
}

// Branches

func (repo *academyRepository) CreateBranch(b academy.Branch) (academy.Branch, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	var branches []academy.Branch
	if err := repo.db.store.Get(keyBranches, &branches); err != nil {
		return academy.Branch{}, err
	}
	branches = append(branches, b)
	if err := repo.db.store.Set(keyBranches, branches); err != nil {
		return academy.Branch{}, err
	}
	return b, nil
}

func (repo *academyRepository) QueryAllBranches() ([]academy.Branch, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var branches []academy.Branch
	if err := repo.db.store.Get(keyBranches, &branches); err != nil {
		return nil, err
	}
	return branches, nil
}

func (repo *academyRepository) GetBranchByID(id string) (academy.Branch, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var branches []academy.Branch
	if err := repo.db.store.Get(keyBranches, &branches); err != nil {
		return academy.Branch{}, err
	}
	for _, b := range branches {
		if b.ID == id {
			return b, nil
		}
	}
	return academy.Branch{}, academy.ErrBranchNotFound
}

func (repo *academyRepository) DeleteBranch(id string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	var branches []academy.Branch
	if err := repo.db.store.Get(keyBranches, &branches); err != nil {
		return err
	}
	kept := branches[:0]
	for _, b := range branches {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	return repo.db.store.Set(keyBranches, kept)
}

// Departments

func (repo *academyRepository) CreateDepartment(d academy.Department) (academy.Department, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	var departments []academy.Department
	if err := repo.db.store.Get(keyDepartments, &departments); err != nil {
		return academy.Department{}, err
	}
	departments = append(departments, d)
	if err := repo.db.store.Set(keyDepartments, departments); err != nil {
		return academy.Department{}, err
	}
	return d, nil
}

func (repo *academyRepository) QueryAllDepartments() ([]academy.Department, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var departments []academy.Department
	if err := repo.db.store.Get(keyDepartments, &departments); err != nil {
		return nil, err
	}
	return departments, nil
}

func (repo *academyRepository) DeleteDepartment(id string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	var departments []academy.Department
	if err := repo.db.store.Get(keyDepartments, &departments); err != nil {
		return err
	}
	kept := departments[:0]
	for _, d := range departments {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	return repo.db.store.Set(keyDepartments, kept)
}

// Labs

func (repo *academyRepository) CreateLab(l academy.Lab) (academy.Lab, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	var labs []academy.Lab
	if err := repo.db.store.Get(keyLabs, &labs); err != nil {
		return academy.Lab{}, err
	}
	labs = append(labs, l)
	if err := repo.db.store.Set(keyLabs, labs); err != nil {
		return academy.Lab{}, err
	}
	return l, nil
}

func (repo *academyRepository) QueryAllLabs() ([]academy.Lab, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var labs []academy.Lab
	if err := repo.db.store.Get(keyLabs, &labs); err != nil {
		return nil, err
	}
	return labs, nil
}

func (repo *academyRepository) GetLabByID(id string) (academy.Lab, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var labs []academy.Lab
	if err := repo.db.store.Get(keyLabs, &labs); err != nil {
		return academy.Lab{}, err
	}
	for _, l := range labs {
		if l.ID == id {
			return l, nil
		}
	}
	return academy.Lab{}, academy.ErrLabNotFound
}

func (repo *academyRepository) DeleteLab(id string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	var labs []academy.Lab
	if err := repo.db.store.Get(keyLabs, &labs); err != nil {
		return err
	}
	kept := labs[:0]
	for _, l := range labs {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	return repo.db.store.Set(keyLabs, kept)
}

// Students

func (repo *academyRepository) CreateStudent(s academy.Student) (academy.Student, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	var students []academy.Student
	if err := repo.db.store.Get(keyStudents, &students); err != nil {
		return academy.Student{}, err
	}
	students = append(students, s)
	if err := repo.db.store.Set(keyStudents, students); err != nil {
		return academy.Student{}, err
	}
	return s, nil
}

func (repo *academyRepository) QueryAllStudents() ([]academy.Student, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var students []academy.Student
	if err := repo.db.store.Get(keyStudents, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (repo *academyRepository) GetStudentByID(id string) (academy.Student, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var students []academy.Student
	if err := repo.db.store.Get(keyStudents, &students); err != nil {
		return academy.Student{}, err
	}
	for _, s := range students {
		if s.ID == id {
			return s, nil
		}
	}
	return academy.Student{}, academy.ErrStudentNotFound
}

func (repo *academyRepository) DeleteStudent(id string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	var students []academy.Student
	if err := repo.db.store.Get(keyStudents, &students); err != nil {
		return err
	}
	kept := students[:0]
	for _, s := range students {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	return repo.db.store.Set(keyStudents, kept)
}

// Instructors

func (repo *academyRepository) CreateInstructor(i academy.Instructor) (academy.Instructor, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	var instructors []academy.Instructor
	if err := repo.db.store.Get(keyInstructors, &instructors); err != nil {
		return academy.Instructor{}, err
	}
	instructors = append(instructors, i)
	if err := repo.db.store.Set(keyInstructors, instructors); err != nil {
		return academy.Instructor{}, err
	}
	return i, nil
}

func (repo *academyRepository) QueryAllInstructors() ([]academy.Instructor, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var instructors []academy.Instructor
	if err := repo.db.store.Get(keyInstructors, &instructors); err != nil {
		return nil, err
	}
	return instructors, nil
}

func (repo *academyRepository) GetInstructorByID(id string) (academy.Instructor, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var instructors []academy.Instructor
	if err := repo.db.store.Get(keyInstructors, &instructors); err != nil {
		return academy.Instructor{}, err
	}
	for _, i := range instructors {
		if i.ID == id {
			return i, nil
		}
	}
	return academy.Instructor{}, academy.ErrInstructorNotFound
}

func (repo *academyRepository) DeleteInstructor(id string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	var instructors []academy.Instructor
	if err := repo.db.store.Get(keyInstructors, &instructors); err != nil {
		return err
	}
	kept := instructors[:0]
	for _, i := range instructors {
		if i.ID != id {
			kept = append(kept, i)
		}
	}
	return repo.db.store.Set(keyInstructors, kept)
}

// Courses & levels

func (repo *academyRepository) CreateCourse(c academy.Course) (academy.Course, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	var courses []academy.Course
	if err := repo.db.store.Get(keyCourses, &courses); err != nil {
		return academy.Course{}, err
	}
	courses = append(courses, c)
	if err := repo.db.store.Set(keyCourses, courses); err != nil {
		return academy.Course{}, err
	}
	return c, nil
}

func (repo *academyRepository) QueryAllCourses() ([]academy.Course, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var courses []academy.Course
	if err := repo.db.store.Get(keyCourses, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (repo *academyRepository) GetCourseByID(id string) (academy.Course, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var courses []academy.Course
	if err := repo.db.store.Get(keyCourses, &courses); err != nil {
		return academy.Course{}, err
	}
	for _, c := range courses {
		if c.ID == id {
			return c, nil
		}
	}
	return academy.Course{}, academy.ErrCourseNotFound
}

func (repo *academyRepository) DeleteCourse(id string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	var courses []academy.Course
	if err := repo.db.store.Get(keyCourses, &courses); err != nil {
		return err
	}
	kept := courses[:0]
	for _, c := range courses {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	return repo.db.store.Set(keyCourses, kept)
}

func (repo *academyRepository) CreateLevel(l academy.CourseLevel) (academy.CourseLevel, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	var levels []academy.CourseLevel
	if err := repo.db.store.Get(keyLevels, &levels); err != nil {
		return academy.CourseLevel{}, err
	}
	levels = append(levels, l)
	if err := repo.db.store.Set(keyLevels, levels); err != nil {
		return academy.CourseLevel{}, err
	}
	return l, nil
}

func (repo *academyRepository) QueryAllLevels() ([]academy.CourseLevel, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var levels []academy.CourseLevel
	if err := repo.db.store.Get(keyLevels, &levels); err != nil {
		return nil, err
	}
	return levels, nil
}

func (repo *academyRepository) GetLevelByID(id string) (academy.CourseLevel, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var levels []academy.CourseLevel
	if err := repo.db.store.Get(keyLevels, &levels); err != nil {
		return academy.CourseLevel{}, err
	}
	for _, l := range levels {
		if l.ID == id {
			return l, nil
		}
	}
	return academy.CourseLevel{}, academy.ErrLevelNotFound
}

func (repo *academyRepository) DeleteLevel(id string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	var levels []academy.CourseLevel
	if err := repo.db.store.Get(keyLevels, &levels); err != nil {
		return err
	}
	kept := levels[:0]
	for _, l := range levels {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	return repo.db.store.Set(keyLevels, kept)
}
