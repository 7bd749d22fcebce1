package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	echoapi "github.com/drodriguezm/tablero/apps/api/echo"
	"github.com/drodriguezm/tablero/core"
	"github.com/drodriguezm/tablero/core/advisor"
	"github.com/drodriguezm/tablero/core/budget"
	"github.com/drodriguezm/tablero/core/indicator"
	"github.com/drodriguezm/tablero/core/record"
	"github.com/drodriguezm/tablero/core/user"
)

const (
	dashYear = 2021
	dashWeek = 10
)

func createAdvisor(t *testing.T, name, position string) advisor.Advisor {
	t.Helper()

	now := time.Now().UTC()
	adv, err := advRepo.CreateAdvisor(advisor.Advisor{
		ID:        uuid.New().String(),
		Name:      name,
		Position:  position,
		Shift:     advisor.ShiftNone,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateAdvisor(): %v", err)
	}
	return adv
}

func createIndicator(t *testing.T, name string, weight float64) indicator.Indicator {
	t.Helper()

	now := time.Now().UTC()
	ind, err := indRepo.CreateIndicator(indicator.Indicator{
		ID:            uuid.New().String(),
		Name:          name,
		Applicability: indicator.AppliesAll,
		Unit:          indicator.UnitCount,
		LoanWeight:    weight,
		IsCumulative:  true,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		t.Fatalf("CreateIndicator(): %v", err)
	}
	return ind
}

func createWeeklyBudget(t *testing.T, indicatorID, targetID string, amount float64) {
	t.Helper()

	now := time.Now().UTC()
	if _, err := budRepo.CreateConfig(budget.Config{
		ID:          uuid.New().String(),
		IndicatorID: indicatorID,
		TargetID:    targetID,
		Year:        dashYear,
		Week:        dashWeek,
		Scope:       budget.ScopeWeekly,
		Amount:      amount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}); err != nil {
		t.Fatalf("CreateConfig(): %v", err)
	}
}

func createDailyRecord(t *testing.T, advisorID, indicatorID string, day core.Weekday, amount float64) {
	t.Helper()

	now := time.Now().UTC()
	if _, err := recRepo.CreateData(record.Data{
		ID:        uuid.New().String(),
		Type:      record.TypeIndividual,
		AdvisorID: null.StringFrom(advisorID),
		Year:      dashYear,
		Week:      dashWeek,
		Frequency: record.FreqDaily,
		DayOfWeek: day,
		Values:    record.Values{indicatorID: amount},
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("CreateData(): %v", err)
	}
}

func createDailyBranchRecord(t *testing.T, indicatorID string, day core.Weekday, amount float64) {
	t.Helper()

	now := time.Now().UTC()
	if _, err := recRepo.CreateData(record.Data{
		ID:        uuid.New().String(),
		Type:      record.TypeBranch,
		Year:      dashYear,
		Week:      dashWeek,
		Frequency: record.FreqDaily,
		DayOfWeek: day,
		Values:    record.Values{indicatorID: amount},
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("CreateData(): %v", err)
	}
}

func getDashboard(t *testing.T, token, query string) echoapi.DashboardResponse {
	t.Helper()

	req, rec := newAuthRequest(http.MethodGet, "/v1/dashboard?"+query, token)
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var resp echoapi.DashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshalling DashboardResponse: %v", err)
	}
	return resp
}

func Test_dashboardApi_weekView(t *testing.T) {
	resetDB(t)

	manager := createUser(t, "Manager", "manager1", "manager@test.mx", "", user.ManagerRoles, true)
	token := getToken(t, manager)

	adv := createAdvisor(t, "Pedro", advisor.PositionLoan)
	ind := createIndicator(t, "Colocación", 1)
	createWeeklyBudget(t, ind.ID, adv.ID, 500)
	createDailyRecord(t, adv.ID, ind.ID, core.Monday, 120)
	createDailyRecord(t, adv.ID, ind.ID, core.Tuesday, 80)

	resp := getDashboard(t, token, "year=2021&week=10&period=WEEK")

	if resp.Year != dashYear || resp.Week != dashWeek || resp.Period != "WEEK" {
		t.Fatalf("unexpected scope: %+v", resp)
	}
	if len(resp.Advisors) != 1 {
		t.Fatalf("got %d advisor dashboards; want 1", len(resp.Advisors))
	}
	ad := resp.Advisors[0]
	if ad.Advisor.ID != adv.ID {
		t.Errorf("Advisor.ID = %s; want %s", ad.Advisor.ID, adv.ID)
	}
	// ceil(200/500 * 100)
	if ad.Score != 40 {
		t.Errorf("Score = %v; want 40", ad.Score)
	}
	if len(ad.Rows) != 1 {
		t.Fatalf("got %d rows; want 1", len(ad.Rows))
	}
	row := ad.Rows[0]
	if row.Target != 500 {
		t.Errorf("Target = %v; want 500", row.Target)
	}
	if row.Actual != 200 {
		t.Errorf("Actual = %v; want 200", row.Actual)
	}
	if row.Percent != 40 {
		t.Errorf("Percent = %v; want 40", row.Percent)
	}
	if row.Remaining != 300 {
		t.Errorf("Remaining = %v; want 300", row.Remaining)
	}
	if row.Commitment != nil {
		t.Error("week view must not carry commitments")
	}
}

func Test_dashboardApi_dayViewCarriesDeficit(t *testing.T) {
	resetDB(t)

	manager := createUser(t, "Manager", "manager1", "manager@test.mx", "", user.ManagerRoles, true)
	token := getToken(t, manager)

	adv := createAdvisor(t, "Pedro", advisor.PositionLoan)
	ind := createIndicator(t, "Colocación", 1)

	// 100 per day, Monday..Wednesday
	now := time.Now().UTC()
	for d := core.Monday; d <= core.Wednesday; d++ {
		if _, err := budRepo.CreateConfig(budget.Config{
			ID:          uuid.New().String(),
			IndicatorID: ind.ID,
			TargetID:    adv.ID,
			Year:        dashYear,
			Week:        dashWeek,
			Scope:       budget.ScopeDaily,
			DayOfWeek:   d,
			Amount:      100,
			CreatedAt:   now,
			UpdatedAt:   now,
		}); err != nil {
			t.Fatalf("CreateConfig(): %v", err)
		}
	}
	// 60 behind over Monday+Tuesday
	createDailyRecord(t, adv.ID, ind.ID, core.Monday, 80)
	createDailyRecord(t, adv.ID, ind.ID, core.Tuesday, 60)

	resp := getDashboard(t, token, "year=2021&week=10&period=DAY&day=3")

	if len(resp.Advisors) != 1 || len(resp.Advisors[0].Rows) != 1 {
		t.Fatalf("unexpected response shape: %+v", resp)
	}
	row := resp.Advisors[0].Rows[0]
	if row.Commitment == nil {
		t.Fatal("day view must carry a commitment")
	}
	if !row.Commitment.IsDeficit {
		t.Error("expected a deficit commitment")
	}
	if row.Commitment.Amount != 160 {
		t.Errorf("Commitment.Amount = %v; want 160", row.Commitment.Amount)
	}
}

func Test_dashboardApi_dayViewBranchCommitment(t *testing.T) {
	resetDB(t)

	manager := createUser(t, "Manager", "manager1", "manager@test.mx", "", user.ManagerRoles, true)
	token := getToken(t, manager)

	ind := createIndicator(t, "Colocación", 1)

	// 100 per day, Monday..Wednesday, for the whole branch
	now := time.Now().UTC()
	for d := core.Monday; d <= core.Wednesday; d++ {
		if _, err := budRepo.CreateConfig(budget.Config{
			ID:          uuid.New().String(),
			IndicatorID: ind.ID,
			TargetID:    budget.BranchTarget,
			Year:        dashYear,
			Week:        dashWeek,
			Scope:       budget.ScopeDaily,
			DayOfWeek:   d,
			Amount:      100,
			CreatedAt:   now,
			UpdatedAt:   now,
		}); err != nil {
			t.Fatalf("CreateConfig(): %v", err)
		}
	}
	// 60 behind over Monday+Tuesday
	createDailyBranchRecord(t, ind.ID, core.Monday, 80)
	createDailyBranchRecord(t, ind.ID, core.Tuesday, 60)

	resp := getDashboard(t, token, "year=2021&week=10&period=DAY&day=3")

	if len(resp.Branch) != 1 {
		t.Fatalf("got %d branch rows; want 1", len(resp.Branch))
	}
	row := resp.Branch[0]
	if row.Target != 100 {
		t.Errorf("Target = %v; want 100", row.Target)
	}
	if row.Commitment == nil {
		t.Fatal("branch day view must carry a commitment")
	}
	if !row.Commitment.IsDeficit {
		t.Error("expected a deficit commitment")
	}
	if row.Commitment.Amount != 160 {
		t.Errorf("Commitment.Amount = %v; want 160", row.Commitment.Amount)
	}
}

func Test_dashboardApi_authRequired(t *testing.T) {
	resetDB(t)

	tt := httpTest{
		name:     "Auth required",
		wantCode: http.StatusUnauthorized,
		wantData: marchallObj(t, errMissingToken),
	}
	req, rec := newRequest(http.MethodGet, "/v1/dashboard")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)
}
