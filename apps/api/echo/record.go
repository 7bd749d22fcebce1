package echoapi

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/drodriguezm/tablero/core/record"
)

type recordApi struct {
	svc *record.Service
}

func registerRecordAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *record.Service) {
	api := recordApi{svc: svc}

	rg := g.Group("/records", jwt)
	rg.GET("", api.query)
	rg.POST("", api.create)
	rg.GET("/:id", api.retrieve)
	rg.PUT("/:id", api.update)
	rg.DELETE("/:id", api.destroy)
}

// create accepts either a single record or an array of records; bulk saves
// issue one write for the whole batch.
func (api *recordApi) create(ctx echo.Context) error {
	body, err := ioutil.ReadAll(ctx.Request().Body)
	if err != nil {
		return errors.Wrap(err, "reading request body")
	}

	var bulk []record.NewData
	if err := json.Unmarshal(body, &bulk); err == nil {
		for i := range bulk {
			if err := bulk[i].Validate(); err != nil {
				return err
			}
		}
		ds, err := api.svc.CreateBulk(bulk)
		if err != nil {
			return errors.Wrap(err, "creating records")
		}
		if ds == nil {
			ds = []record.Data{}
		}
		return ctx.JSON(http.StatusCreated, ds)
	}

	var data record.NewData
	if err := json.Unmarshal(body, &data); err != nil {
		return errors.Wrap(err, "binding to NewData")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	d, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating record")
	}
	return ctx.JSON(http.StatusCreated, d)
}

func (api *recordApi) query(ctx echo.Context) error {
	ds, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying records")
	}
	if ds == nil {
		ds = []record.Data{}
	}
	return ctx.JSON(http.StatusOK, ds)
}

func (api *recordApi) retrieve(ctx echo.Context) error {
	d, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == record.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting record")
	}
	return ctx.JSON(http.StatusOK, d)
}

func (api *recordApi) update(ctx echo.Context) error {
	var data record.UpdateData
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateData")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	d, err := api.svc.Update(ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == record.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating record")
	}
	return ctx.JSON(http.StatusOK, d)
}

func (api *recordApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting record")
	}
	return ctx.NoContent(http.StatusNoContent)
}
