package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/drodriguezm/tablero/core/indicator"
)

type indicatorApi struct {
	svc *indicator.Service
}

func registerIndicatorAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *indicator.Service) {
	api := indicatorApi{svc: svc}

	ig := g.Group("/indicators", jwt)
	ig.GET("", api.query)
	ig.POST("", api.create, adminMiddleware())
	ig.GET("/:id", api.retrieve)
	ig.PUT("/:id", api.update, adminMiddleware())
	ig.DELETE("/:id", api.destroy, adminMiddleware())
}

func (api *indicatorApi) create(ctx echo.Context) error {
	var data indicator.NewIndicator
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewIndicator")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ind, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating indicator")
	}
	return ctx.JSON(http.StatusCreated, ind)
}

func (api *indicatorApi) query(ctx echo.Context) error {
	inds, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying indicators")
	}
	if inds == nil {
		inds = []indicator.Indicator{}
	}
	return ctx.JSON(http.StatusOK, inds)
}

func (api *indicatorApi) retrieve(ctx echo.Context) error {
	ind, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == indicator.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting indicator")
	}
	return ctx.JSON(http.StatusOK, ind)
}

func (api *indicatorApi) update(ctx echo.Context) error {
	orig, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == indicator.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting indicator")
	}

	var data indicator.UpdateIndicator
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateIndicator")
	}
	if err := data.Validate(orig); err != nil {
		return err
	}

	ind, err := api.svc.Update(orig.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating indicator")
	}
	return ctx.JSON(http.StatusOK, ind)
}

func (api *indicatorApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting indicator")
	}
	return ctx.NoContent(http.StatusNoContent)
}
