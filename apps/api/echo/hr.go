package echoapi

import (
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/drodriguezm/tablero/core/hr"
)

type hrApi struct {
	svc *hr.Service
}

func registerHRAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *hr.Service) {
	api := hrApi{svc: svc}

	hg := g.Group("/hr/events", jwt)
	hg.GET("", api.query)
	hg.POST("", api.create)
	hg.GET("/types", api.queryTypes)
	hg.GET("/blocked", api.queryBlocked)
	hg.GET("/:id", api.retrieve)
	hg.DELETE("/:id", api.destroy)
}

func (api *hrApi) create(ctx echo.Context) error {
	var data hr.NewEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvent")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ev, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating hr event")
	}
	return ctx.JSON(http.StatusCreated, ev)
}

func (api *hrApi) query(ctx echo.Context) error {
	evs, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying hr events")
	}
	if evs == nil {
		evs = []hr.Event{}
	}
	return ctx.JSON(http.StatusOK, evs)
}

func (api *hrApi) queryTypes(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, hr.AllTypes)
}

// queryBlocked returns the advisor ids blocked on a date (default today);
// capture forms use it to hide absent advisors.
func (api *hrApi) queryBlocked(ctx echo.Context) error {
	date := time.Now().UTC()
	if raw := ctx.QueryParam("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		date = parsed
	}

	evs, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying hr events")
	}

	ids := make([]string, 0)
	for id := range hr.BlockedAdvisors(evs, date) {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ctx.JSON(http.StatusOK, ids)
}

func (api *hrApi) retrieve(ctx echo.Context) error {
	ev, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == hr.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting hr event")
	}
	return ctx.JSON(http.StatusOK, ev)
}

func (api *hrApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting hr event")
	}
	return ctx.NoContent(http.StatusNoContent)
}
