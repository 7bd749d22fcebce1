package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/drodriguezm/tablero/core"
	"github.com/drodriguezm/tablero/core/advisor"
	"github.com/drodriguezm/tablero/core/hr"
	"github.com/drodriguezm/tablero/core/report"
	"github.com/drodriguezm/tablero/core/schedule"
)

type scheduleApi struct {
	svc    *schedule.Service
	loader *report.Loader
}

func registerScheduleAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *schedule.Service, loader *report.Loader) {
	api := scheduleApi{svc: svc, loader: loader}

	sg := g.Group("/schedule", jwt)

	sg.GET("/activities", api.queryActivities)
	sg.POST("/activities", api.createActivity)
	sg.GET("/activities/:id", api.retrieveActivity)
	sg.PUT("/activities/:id", api.updateActivity)
	sg.DELETE("/activities/:id", api.destroyActivity)

	sg.PUT("/assignments", api.assign)
	sg.DELETE("/assignments", api.erase)

	sg.GET("/week", api.week)

	sg.GET("/config", api.getConfig)
	sg.PUT("/config", api.saveConfig)

	sg.PUT("/compliance", api.toggleCompliance)
}

// Activities

func (api *scheduleApi) createActivity(ctx echo.Context) error {
	var data schedule.NewActivity
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewActivity")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	act, err := api.svc.CreateActivity(data)
	if err != nil {
		return errors.Wrap(err, "creating activity")
	}
	return ctx.JSON(http.StatusCreated, act)
}

func (api *scheduleApi) queryActivities(ctx echo.Context) error {
	acts, err := api.svc.QueryActivities()
	if err != nil {
		return errors.Wrap(err, "querying activities")
	}
	if acts == nil {
		acts = []schedule.Activity{}
	}
	return ctx.JSON(http.StatusOK, acts)
}

func (api *scheduleApi) retrieveActivity(ctx echo.Context) error {
	act, err := api.svc.GetActivity(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == schedule.ErrActivityNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting activity")
	}
	return ctx.JSON(http.StatusOK, act)
}

func (api *scheduleApi) updateActivity(ctx echo.Context) error {
	orig, err := api.svc.GetActivity(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == schedule.ErrActivityNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting activity")
	}

	var data schedule.UpdateActivity
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateActivity")
	}
	if err := data.Validate(orig); err != nil {
		return err
	}

	act, err := api.svc.UpdateActivity(orig.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating activity")
	}
	return ctx.JSON(http.StatusOK, act)
}

func (api *scheduleApi) destroyActivity(ctx echo.Context) error {
	if err := api.svc.DeleteActivities(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting activity")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Assignments

func (api *scheduleApi) assign(ctx echo.Context) error {
	var data schedule.AssignSlot
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AssignSlot")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	a, err := api.svc.Assign(data)
	if err != nil {
		return errors.Wrap(err, "assigning slot")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *scheduleApi) erase(ctx echo.Context) error {
	var data schedule.EraseSlot
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to EraseSlot")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	if err := api.svc.Erase(data); err != nil {
		return errors.Wrap(err, "erasing slot")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Branch hours

func (api *scheduleApi) getConfig(ctx echo.Context) error {
	bc, err := api.svc.BranchConfig()
	if err != nil {
		return errors.Wrap(err, "getting branch config")
	}
	return ctx.JSON(http.StatusOK, bc)
}

func (api *scheduleApi) saveConfig(ctx echo.Context) error {
	var data schedule.BranchConfig
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to BranchConfig")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	bc, err := api.svc.SaveBranchConfig(data)
	if err != nil {
		return errors.Wrap(err, "saving branch config")
	}
	return ctx.JSON(http.StatusOK, bc)
}

// Compliance

func (api *scheduleApi) toggleCompliance(ctx echo.Context) error {
	var data schedule.ToggleCompliance
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ToggleCompliance")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	m, err := api.svc.ToggleCompliance(data)
	if err != nil {
		return errors.Wrap(err, "toggling compliance")
	}
	return ctx.JSON(http.StatusOK, m)
}

// Week grid

type (
	ScheduleWeekResponse struct {
		Year       int                 `json:"year"`
		Week       int                 `json:"week"`
		Open       string              `json:"open"`
		Close      string              `json:"close"`
		Slots      []string            `json:"slots"`
		Activities []schedule.Activity `json:"activities"`
		Advisors   []ScheduleRow       `json:"advisors"`
	}

	ScheduleRow struct {
		Advisor    advisor.Advisor `json:"advisor"`
		Blocked    bool            `json:"blocked"`
		Compliance float64         `json:"compliance"`
		Days       []ScheduleDay   `json:"days"`
	}

	ScheduleDay struct {
		Day     core.Weekday   `json:"day"`
		Date    string         `json:"date"` // YYYY-MM-DD
		Closed  bool           `json:"closed"`
		Blocked bool           `json:"blocked"`
		Runs    []schedule.Run `json:"runs"`
	}
)

// week renders the branch's weekly grid: the half-hour slot axis spanning the
// global open/close envelope, every advisor's merged runs per day, their
// protected-time compliance for the week, and HR blocking flags. Advisors are
// ranked for printing: blocked today first, then opening, closing, the rest.
func (api *scheduleApi) week(ctx echo.Context) error {
	now := time.Now().UTC()
	defYear, defWeek := core.ISOWeek(now)
	year := intQueryParam(ctx, "year", defYear)
	week := intQueryParam(ctx, "week", defWeek)
	if week < 1 || week > 53 {
		return echo.NewHTTPError(http.StatusBadRequest, "week must be in 1..53")
	}

	bc, err := api.svc.BranchConfig()
	if err != nil {
		return errors.Wrap(err, "getting branch config")
	}
	open, close := bc.Envelope()
	slots := schedule.TimeSlots(open, close)

	snap := api.loader.Load()

	weekDates := make(map[core.Weekday]time.Time, 7)
	monday := isoWeekStart(year, week)
	for d := core.Monday; d <= core.Sunday; d++ {
		weekDates[d] = monday.AddDate(0, 0, int(d-core.Monday))
	}

	blockedToday := hr.BlockedAdvisors(snap.HREvents, now)
	ranked := schedule.RankAdvisors(snap.Advisors, blockedToday)

	rows := make([]ScheduleRow, 0, len(ranked))
	for _, adv := range ranked {
		row := ScheduleRow{
			Advisor: adv,
			Blocked: blockedToday[adv.ID],
			Compliance: schedule.CompliancePercent(
				adv.ID, snap.Assignments, snap.Activities, snap.Compliance, weekDates),
			Days: make([]ScheduleDay, 0, 7),
		}
		for d := core.Monday; d <= core.Sunday; d++ {
			assigned := schedule.RowIndex(snap.Assignments, adv.ID, d)
			row.Days = append(row.Days, ScheduleDay{
				Day:     d,
				Date:    weekDates[d].Format("2006-01-02"),
				Closed:  bc.Hours(d).Closed,
				Blocked: hr.BlockedAdvisors(snap.HREvents, weekDates[d])[adv.ID],
				Runs:    schedule.MergeRuns(slots, assigned),
			})
		}
		rows = append(rows, row)
	}

	return ctx.JSON(http.StatusOK, ScheduleWeekResponse{
		Year:       year,
		Week:       week,
		Open:       open,
		Close:      close,
		Slots:      slots,
		Activities: snap.Activities,
		Advisors:   rows,
	})
}

// isoWeekStart returns the Monday of the given ISO week. Jan 4 is always in
// week 1.
func isoWeekStart(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	monday := jan4.AddDate(0, 0, -int(core.WeekdayOf(jan4)-core.Monday))
	return monday.AddDate(0, 0, (week-1)*7)
}
