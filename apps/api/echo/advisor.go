package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/drodriguezm/tablero/core/advisor"
)

type advisorApi struct {
	svc *advisor.Service
}

func registerAdvisorAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *advisor.Service) {
	api := advisorApi{svc: svc}

	ag := g.Group("/advisors", jwt)
	ag.GET("", api.query)
	ag.POST("", api.create)
	ag.GET("/positions", api.queryPositions)
	ag.GET("/:id", api.retrieve)
	ag.PUT("/:id", api.update)
	ag.DELETE("/:id", api.destroy)
}

func (api *advisorApi) create(ctx echo.Context) error {
	var data advisor.NewAdvisor
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAdvisor")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	adv, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating advisor")
	}
	return ctx.JSON(http.StatusCreated, adv)
}

func (api *advisorApi) query(ctx echo.Context) error {
	advs, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying advisors")
	}
	if advs == nil {
		advs = []advisor.Advisor{}
	}
	return ctx.JSON(http.StatusOK, advs)
}

func (api *advisorApi) queryPositions(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, advisor.AllPositions)
}

func (api *advisorApi) retrieve(ctx echo.Context) error {
	adv, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == advisor.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting advisor")
	}
	return ctx.JSON(http.StatusOK, adv)
}

func (api *advisorApi) update(ctx echo.Context) error {
	orig, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == advisor.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting advisor")
	}

	var data advisor.UpdateAdvisor
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAdvisor")
	}
	if err := data.Validate(orig); err != nil {
		return err
	}

	adv, err := api.svc.Update(orig.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating advisor")
	}
	return ctx.JSON(http.StatusOK, adv)
}

func (api *advisorApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting advisor")
	}
	return ctx.NoContent(http.StatusNoContent)
}
