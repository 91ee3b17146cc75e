package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/latinacademy/academia/core"
	"github.com/latinacademy/academia/core/attendance"
	"github.com/latinacademy/academia/core/schedule"
)

type attendanceApi struct {
	svc *attendance.Service
}

// registerAttendanceAPI mounts the daily grid and the per-group session flow:
// open a sheet, save it, then finish or upgrade once the level is done.
func registerAttendanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *attendance.Service) {
	api := attendanceApi{svc: svc}

	ag := g.Group("/attendance", jwt, staffMiddleware())
	ag.GET("/grid", api.grid)
	ag.GET("/groups/:id/sheet", api.openSheet)
	ag.POST("/groups/:id/sheet", api.save)
	ag.GET("/groups/:id/sessions", api.sessions)
	ag.POST("/groups/:id/finish", api.finish)
	ag.POST("/groups/:id/upgrade", api.upgrade)
}

func (api *attendanceApi) grid(ctx echo.Context) error {
	var params GridRequest
	if err := ctx.Bind(&params); err != nil {
		return errors.Wrap(err, "binding to GridRequest")
	}
	if err := params.Validate(); err != nil {
		return err
	}

	grid, err := api.svc.Grid(params.Date, params.Branch)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, grid)
}

func (api *attendanceApi) openSheet(ctx echo.Context) error {
	sheet, err := api.svc.OpenSheet(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sheet)
}

func (api *attendanceApi) save(ctx echo.Context) error {
	var data attendance.SaveAttendance
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SaveAttendance")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	res, err := api.svc.Save(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (api *attendanceApi) sessions(ctx echo.Context) error {
	sessions, err := api.svc.Sessions(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying sessions")
	}
	if sessions == nil {
		sessions = []attendance.Session{}
	}
	return ctx.JSON(http.StatusOK, sessions)
}

func (api *attendanceApi) finish(ctx echo.Context) error {
	grp, err := api.svc.Finish(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, grp)
}

func (api *attendanceApi) upgrade(ctx echo.Context) error {
	var data UpgradeRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpgradeRequest")
	}
	if data.Date == "" {
		data.Date = schedule.Today()
	}
	if err := data.Validate(); err != nil {
		return err
	}

	grp, err := api.svc.Upgrade(ctx.Param("id"), data.Date)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, grp)
}

type (
	GridRequest struct {
		Date   string `query:"date" validate:"required,civildate"`
		Branch string `query:"branch" validate:"required"`
	}

	UpgradeRequest struct {
		Date string `json:"date" validate:"required,civildate"`
	}
)

func (gr *GridRequest) Validate() error {
	return core.Validate.Struct(gr)
}

func (ur *UpgradeRequest) Validate() error {
	return core.Validate.Struct(ur)
}
