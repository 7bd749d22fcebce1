package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/drodriguezm/tablero/core/budget"
)

type budgetApi struct {
	svc *budget.Service
}

func registerBudgetAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *budget.Service) {
	api := budgetApi{svc: svc}

	bg := g.Group("/budgets", jwt)
	bg.GET("", api.query)
	bg.POST("", api.create, adminMiddleware())
	bg.POST("/bulk", api.createBulk, adminMiddleware())
	bg.GET("/:id", api.retrieve)
	bg.PUT("/:id", api.update, adminMiddleware())
	bg.DELETE("/:id", api.destroy, adminMiddleware())
}

func (api *budgetApi) create(ctx echo.Context) error {
	var data budget.NewConfig
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewConfig")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	cfg, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating budget config")
	}
	return ctx.JSON(http.StatusCreated, cfg)
}

// createBulk accepts an array of budget rows and saves them in one write.
func (api *budgetApi) createBulk(ctx echo.Context) error {
	var data []budget.NewConfig
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to []NewConfig")
	}
	for i := range data {
		if err := data[i].Validate(); err != nil {
			return err
		}
	}

	cfgs, err := api.svc.CreateBulk(data)
	if err != nil {
		return errors.Wrap(err, "creating budget configs")
	}
	if cfgs == nil {
		cfgs = []budget.Config{}
	}
	return ctx.JSON(http.StatusCreated, cfgs)
}

func (api *budgetApi) query(ctx echo.Context) error {
	cfgs, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying budget configs")
	}
	if cfgs == nil {
		cfgs = []budget.Config{}
	}
	return ctx.JSON(http.StatusOK, cfgs)
}

func (api *budgetApi) retrieve(ctx echo.Context) error {
	cfg, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == budget.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting budget config")
	}
	return ctx.JSON(http.StatusOK, cfg)
}

func (api *budgetApi) update(ctx echo.Context) error {
	var data budget.UpdateConfig
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateConfig")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	cfg, err := api.svc.Update(ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == budget.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating budget config")
	}
	return ctx.JSON(http.StatusOK, cfg)
}

func (api *budgetApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting budget config")
	}
	return ctx.NoContent(http.StatusNoContent)
}
