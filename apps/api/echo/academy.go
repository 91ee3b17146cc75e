package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/latinacademy/academia/core/academy"
)

type academyApi struct {
	svc *academy.Service
}

// registerAcademyAPI mounts the catalog endpoints: branches, departments,
// labs, students, instructors, courses and course levels. Reads are open to
// all staff; writes require admin.
func registerAcademyAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *academy.Service) {
	api := academyApi{svc: svc}

	ag := g.Group("", jwt, staffMiddleware())

	bg := ag.Group("/branches")
	bg.GET("", api.queryBranches)
	bg.POST("", api.createBranch, adminMiddleware())
	bg.GET("/:id", api.retrieveBranch)
	bg.GET("/:id/labs", api.queryBranchLabs)
	bg.DELETE("/:id", api.destroyBranch, adminMiddleware())

	dg := ag.Group("/departments")
	dg.GET("", api.queryDepartments)
	dg.POST("", api.createDepartment, adminMiddleware())
	dg.DELETE("/:id", api.destroyDepartment, adminMiddleware())

	lg := ag.Group("/labs")
	lg.GET("", api.queryLabs)
	lg.POST("", api.createLab, adminMiddleware())
	lg.DELETE("/:id", api.destroyLab, adminMiddleware())

	sg := ag.Group("/students")
	sg.GET("", api.queryStudents)
	sg.POST("", api.createStudent)
	sg.GET("/:id", api.retrieveStudent)
	sg.DELETE("/:id", api.destroyStudent, adminMiddleware())

	ig := ag.Group("/instructors")
	ig.GET("", api.queryInstructors)
	ig.POST("", api.createInstructor, adminMiddleware())
	ig.DELETE("/:id", api.destroyInstructor, adminMiddleware())

	cg := ag.Group("/courses")
	cg.GET("", api.queryCourses)
	cg.POST("", api.createCourse, adminMiddleware())
	cg.GET("/:id/levels", api.queryCourseLevels)
	cg.DELETE("/:id", api.destroyCourse, adminMiddleware())

	vg := ag.Group("/levels")
	vg.POST("", api.createLevel, adminMiddleware())
	vg.DELETE("/:id", api.destroyLevel, adminMiddleware())
}

// Branches

func (api *academyApi) createBranch(ctx echo.Context) error {
	var data academy.NewBranch
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewBranch")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	b, err := api.svc.CreateBranch(data)
	if err != nil {
		return errors.Wrap(err, "creating branch")
	}
	return ctx.JSON(http.StatusCreated, b)
}

func (api *academyApi) queryBranches(ctx echo.Context) error {
	branches, err := api.svc.QueryBranches(ctx.QueryParam("search"))
	if err != nil {
		return errors.Wrap(err, "querying branches")
	}
	if branches == nil {
		branches = []academy.Branch{}
	}
	return ctx.JSON(http.StatusOK, branches)
}

func (api *academyApi) retrieveBranch(ctx echo.Context) error {
	b, err := api.svc.GetBranch(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, b)
}

func (api *academyApi) queryBranchLabs(ctx echo.Context) error {
	labs, err := api.svc.QueryBranchLabs(ctx.Param("id"))
	if err != nil {
		return err
	}
	if labs == nil {
		labs = []academy.Lab{}
	}
	return ctx.JSON(http.StatusOK, labs)
}

func (api *academyApi) destroyBranch(ctx echo.Context) error {
	if err := api.svc.DeleteBranch(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting branch")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Departments

func (api *academyApi) createDepartment(ctx echo.Context) error {
	var data academy.NewDepartment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewDepartment")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	d, err := api.svc.CreateDepartment(data)
	if err != nil {
		return errors.Wrap(err, "creating department")
	}
	return ctx.JSON(http.StatusCreated, d)
}

func (api *academyApi) queryDepartments(ctx echo.Context) error {
	departments, err := api.svc.QueryDepartments(ctx.QueryParam("search"))
	if err != nil {
		return errors.Wrap(err, "querying departments")
	}
	if departments == nil {
		departments = []academy.Department{}
	}
	return ctx.JSON(http.StatusOK, departments)
}

func (api *academyApi) destroyDepartment(ctx echo.Context) error {
	if err := api.svc.DeleteDepartment(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting department")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Labs

func (api *academyApi) createLab(ctx echo.Context) error {
	var data academy.NewLab
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLab")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	l, err := api.svc.CreateLab(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, l)
}

func (api *academyApi) queryLabs(ctx echo.Context) error {
	labs, err := api.svc.QueryLabs(ctx.QueryParam("search"))
	if err != nil {
		return errors.Wrap(err, "querying labs")
	}
	if labs == nil {
		labs = []academy.Lab{}
	}
	return ctx.JSON(http.StatusOK, labs)
}

func (api *academyApi) destroyLab(ctx echo.Context) error {
	if err := api.svc.DeleteLab(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting lab")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Students

func (api *academyApi) createStudent(ctx echo.Context) error {
	var data academy.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	s, err := api.svc.CreateStudent(data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *academyApi) queryStudents(ctx echo.Context) error {
	students, err := api.svc.QueryStudents(ctx.QueryParam("search"))
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []academy.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *academyApi) retrieveStudent(ctx echo.Context) error {
	s, err := api.svc.GetStudent(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *academyApi) destroyStudent(ctx echo.Context) error {
	if err := api.svc.DeleteStudent(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Instructors

func (api *academyApi) createInstructor(ctx echo.Context) error {
	var data academy.NewInstructor
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewInstructor")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	i, err := api.svc.CreateInstructor(data)
	if err != nil {
		return errors.Wrap(err, "creating instructor")
	}
	return ctx.JSON(http.StatusCreated, i)
}

func (api *academyApi) queryInstructors(ctx echo.Context) error {
	instructors, err := api.svc.QueryInstructors(ctx.QueryParam("course_id"))
	if err != nil {
		return errors.Wrap(err, "querying instructors")
	}
	if instructors == nil {
		instructors = []academy.Instructor{}
	}
	return ctx.JSON(http.StatusOK, instructors)
}

func (api *academyApi) destroyInstructor(ctx echo.Context) error {
	if err := api.svc.DeleteInstructor(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting instructor")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Courses & levels

func (api *academyApi) createCourse(ctx echo.Context) error {
	var data academy.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	c, err := api.svc.CreateCourse(data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *academyApi) queryCourses(ctx echo.Context) error {
	courses, err := api.svc.QueryCourses(ctx.QueryParam("search"))
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		courses = []academy.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *academyApi) queryCourseLevels(ctx echo.Context) error {
	levels, err := api.svc.QueryCourseLevels(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying course levels")
	}
	if levels == nil {
		levels = []academy.CourseLevel{}
	}
	return ctx.JSON(http.StatusOK, levels)
}

func (api *academyApi) destroyCourse(ctx echo.Context) error {
	if err := api.svc.DeleteCourse(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *academyApi) createLevel(ctx echo.Context) error {
	var data academy.NewCourseLevel
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourseLevel")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	l, err := api.svc.CreateLevel(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, l)
}

func (api *academyApi) destroyLevel(ctx echo.Context) error {
	if err := api.svc.DeleteLevel(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting level")
	}
	return ctx.NoContent(http.StatusNoContent)
}
