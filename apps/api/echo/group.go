package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/latinacademy/academia/core"
	"github.com/latinacademy/academia/core/group"
)

type groupApi struct {
	svc *group.Service
}

func registerGroupAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *group.Service) {
	api := groupApi{svc: svc}

	gg := g.Group("/groups", jwt, staffMiddleware())
	gg.GET("", api.query)
	gg.POST("", api.create)
	gg.GET("/:id", api.retrieve)
	gg.PUT("/:id", api.update)
	gg.PUT("/:id/status", api.setStatus)
	gg.DELETE("/:id", api.destroy, adminMiddleware())
}

func (api *groupApi) create(ctx echo.Context) error {
	var data group.NewGroup
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGroup")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	grp, err := api.svc.Create(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, grp)
}

func (api *groupApi) query(ctx echo.Context) error {
	var (
		groups []group.Group
		err    error
	)
	if branchID := ctx.QueryParam("branch"); branchID != "" {
		groups, err = api.svc.QueryByBranch(branchID)
	} else {
		groups, err = api.svc.QueryAll()
	}
	if err != nil {
		return errors.Wrap(err, "querying groups")
	}
	if groups == nil {
		groups = []group.Group{}
	}
	return ctx.JSON(http.StatusOK, groups)
}

func (api *groupApi) retrieve(ctx echo.Context) error {
	grp, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, grp)
}

func (api *groupApi) update(ctx echo.Context) error {
	var data group.UpdateGroup
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateGroup")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	grp, err := api.svc.Update(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, grp)
}

func (api *groupApi) setStatus(ctx echo.Context) error {
	var data SetStatusRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SetStatusRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	grp, err := api.svc.SetStatus(ctx.Param("id"), data.Status)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, grp)
}

func (api *groupApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

type SetStatusRequest struct {
	Status group.Status `json:"status" validate:"required,groupstatus"`
}

func (sr *SetStatusRequest) Validate() error {
	return core.Validate.Struct(sr)
}
