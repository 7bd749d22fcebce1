package echoapi

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/drodriguezm/tablero/core"
	"github.com/drodriguezm/tablero/core/advisor"
	"github.com/drodriguezm/tablero/core/budget"
	"github.com/drodriguezm/tablero/core/record"
	"github.com/drodriguezm/tablero/core/report"
)

type dashboardApi struct {
	loader *report.Loader
}

func registerDashboardAPI(g *echo.Group, jwt echo.MiddlewareFunc, loader *report.Loader) {
	api := dashboardApi{loader: loader}
	g.GET("/dashboard", api.dashboard, jwt)
}

type (
	DashboardResponse struct {
		Year     int                `json:"year"`
		Week     int                `json:"week"`
		Quarter  int                `json:"quarter"`
		Period   report.Period      `json:"period"`
		Day      core.Weekday       `json:"day"`
		Branch   []IndicatorRow     `json:"branch"`
		Advisors []AdvisorDashboard `json:"advisors"`
	}

	AdvisorDashboard struct {
		Advisor advisor.Advisor `json:"advisor"`
		Score   float64         `json:"score"`
		Rows    []IndicatorRow  `json:"rows"`
	}

	// IndicatorRow is one rendered dashboard line. Commitment is only set on
	// day views of non-rate indicators, on branch and advisor rows alike.
	IndicatorRow struct {
		IndicatorID string             `json:"indicator_id"`
		Name        string             `json:"name"`
		Unit        string             `json:"unit"`
		Group       string             `json:"group"`
		Target      float64            `json:"target"`
		Actual      float64            `json:"actual"`
		Percent     float64            `json:"percent"`
		Remaining   float64            `json:"remaining"`
		Commitment  *report.Commitment `json:"commitment,omitempty"`
	}
)

// dashboard rebuilds the whole view from storage on every request: one fresh
// snapshot, one engine, no caching. Period defaults to WEEK of the current ISO
// week; DAY views default to today's weekday and carry adjusted commitments.
func (api *dashboardApi) dashboard(ctx echo.Context) error {
	now := time.Now().UTC()
	defYear, defWeek := core.ISOWeek(now)

	year := intQueryParam(ctx, "year", defYear)
	week := intQueryParam(ctx, "week", defWeek)
	if week < 1 || week > 53 {
		return echo.NewHTTPError(http.StatusBadRequest, "week must be in 1..53")
	}
	quarter := intQueryParam(ctx, "quarter", core.QuarterOfWeek(week))

	period := report.Period(ctx.QueryParam("period"))
	switch period {
	case "":
		period = report.PeriodWeek
	case report.PeriodDay, report.PeriodWeek, report.PeriodTrimester, report.PeriodYear:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "period must be one of DAY, WEEK, TRIMESTER, YEAR")
	}

	day := core.Weekday(intQueryParam(ctx, "day", int(core.WeekdayOf(now))))
	if !day.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "day must be in 1..7")
	}

	snap := api.loader.Load()
	engine := report.NewEngine(snap)

	resp := DashboardResponse{
		Year:    year,
		Week:    week,
		Quarter: quarter,
		Period:  period,
		Day:     day,
		Branch:  make([]IndicatorRow, 0),
	}

	for _, ind := range snap.Indicators {
		if !ind.AppliesToBranch() {
			continue
		}
		target := engine.Target(ind.ID, budget.BranchTarget, "", period, year, week, quarter, day)
		actual := engine.Actual(ind.ID, record.TypeBranch, "", period, year, week, quarter, day)
		row := newIndicatorRow(ind.ID, ind.Name, ind.Unit, ind.Group, target, actual)
		if period == report.PeriodDay && !ind.IsRate() {
			c := engine.DailyCommitment(ind.ID, budget.BranchTarget, "", year, week, day)
			row.Commitment = &c
		}
		resp.Branch = append(resp.Branch, row)
	}

	resp.Advisors = make([]AdvisorDashboard, 0, len(snap.Advisors))
	for _, adv := range snap.Advisors {
		ad := AdvisorDashboard{
			Advisor: adv,
			Score:   engine.CompositeScore(adv.ID, adv.Position, year, week),
			Rows:    make([]IndicatorRow, 0),
		}
		for _, ind := range snap.Indicators {
			if !ind.AppliesToPosition(adv.Position) {
				continue
			}
			target := engine.Target(ind.ID, adv.ID, adv.Position, period, year, week, quarter, day)
			actual := engine.Actual(ind.ID, record.TypeIndividual, adv.ID, period, year, week, quarter, day)
			row := newIndicatorRow(ind.ID, ind.Name, ind.Unit, ind.Group, target, actual)
			if period == report.PeriodDay && !ind.IsRate() {
				c := engine.DailyCommitment(ind.ID, adv.ID, adv.Position, year, week, day)
				row.Commitment = &c
			}
			ad.Rows = append(ad.Rows, row)
		}
		resp.Advisors = append(resp.Advisors, ad)
	}

	// best score first; ties keep advisor order stable
	sort.SliceStable(resp.Advisors, func(i, j int) bool {
		return resp.Advisors[i].Score > resp.Advisors[j].Score
	})

	return ctx.JSON(http.StatusOK, resp)
}

func newIndicatorRow(id, name, unit, group string, target, actual float64) IndicatorRow {
	row := IndicatorRow{
		IndicatorID: id,
		Name:        name,
		Unit:        unit,
		Group:       group,
		Target:      target,
		Actual:      actual,
	}
	if target > 0 {
		row.Percent = actual / target * 100
		if remaining := target - actual; remaining > 0 {
			row.Remaining = remaining
		}
	}
	return row
}

// intQueryParam parses an integer query parameter, falling back to def when
// absent or malformed.
func intQueryParam(ctx echo.Context, name string, def int) int {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
