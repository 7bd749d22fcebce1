package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/volatiletech/null/v8"

	"github.com/drodriguezm/tablero/core"
	"github.com/drodriguezm/tablero/core/advisor"
	"github.com/drodriguezm/tablero/core/budget"
	"github.com/drodriguezm/tablero/core/hr"
	"github.com/drodriguezm/tablero/core/indicator"
	"github.com/drodriguezm/tablero/core/record"
	"github.com/drodriguezm/tablero/core/user"
)

func Test_indicatorApi_adminWrites(t *testing.T) {
	resetDB(t)

	admin := createUser(t, "Admin", "admin1", "admin@test.mx", "", user.AdminRoles, true)
	manager := createUser(t, "Manager", "manager1", "manager@test.mx", "", user.ManagerRoles, true)

	body := marchallObj(t, indicator.NewIndicator{
		Name:       "Colocación semanal",
		Unit:       indicator.UnitCurrency,
		LoanWeight: 2,
		Group:      indicator.GroupColocacion,
	})

	t.Run("manager cannot create", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/indicators", getToken(t, manager), body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("failed! code = %v; wantCode %v", rec.Code, http.StatusForbidden)
		}
	})

	var created indicator.Indicator
	t.Run("admin creates", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/indicators", getToken(t, admin), body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
			t.Fatalf("unmarshalling Indicator: %v", err)
		}
		// empty applicability defaults to all
		if created.Applicability != indicator.AppliesAll {
			t.Errorf("Applicability = %s; want %s", created.Applicability, indicator.AppliesAll)
		}
	})

	t.Run("manager can read", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/indicators/"+created.ID, getToken(t, manager))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/indicators/lol", getToken(t, manager))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("failed! code = %v; wantCode %v", rec.Code, http.StatusNotFound)
		}
	})
}

func Test_budgetApi_bulkCreate(t *testing.T) {
	resetDB(t)

	admin := createUser(t, "Admin", "admin1", "admin@test.mx", "", user.AdminRoles, true)

	adv := createAdvisor(t, "Pedro", advisor.PositionLoan)
	ind := createIndicator(t, "Afiliaciones", 1)

	rows := make([]budget.NewConfig, 0, 7)
	for d := core.Monday; d <= core.Sunday; d++ {
		rows = append(rows, budget.NewConfig{
			IndicatorID: ind.ID,
			TargetID:    adv.ID,
			Year:        dashYear,
			Week:        dashWeek,
			Scope:       budget.ScopeDaily,
			DayOfWeek:   d,
			Amount:      50,
		})
	}

	req, rec := newAuthRequest(http.MethodPost, "/v1/budgets/bulk", getToken(t, admin), marchallObj(t, rows))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}

	saved, err := budRepo.QueryAllConfigs()
	if err != nil {
		t.Fatalf("QueryAllConfigs(): %v", err)
	}
	if len(saved) != 7 {
		t.Errorf("got %d configs; want 7", len(saved))
	}
}

func Test_budgetApi_dailyScopeRequiresWeekday(t *testing.T) {
	resetDB(t)

	admin := createUser(t, "Admin", "admin1", "admin@test.mx", "", user.AdminRoles, true)

	body := marchallObj(t, budget.NewConfig{
		IndicatorID: "ind1",
		TargetID:    "adv1",
		Year:        dashYear,
		Week:        dashWeek,
		Scope:       budget.ScopeDaily,
		Amount:      50,
	})
	req, rec := newAuthRequest(http.MethodPost, "/v1/budgets", getToken(t, admin), body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("failed! code = %v; wantCode %v; body %s", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
}

func Test_recordApi_bulkCreate(t *testing.T) {
	resetDB(t)

	manager := createUser(t, "Manager", "manager1", "manager@test.mx", "", user.ManagerRoles, true)

	adv := createAdvisor(t, "Pedro", advisor.PositionLoan)

	rows := []record.NewData{
		{
			Type:      record.TypeIndividual,
			AdvisorID: null.StringFrom(adv.ID),
			Year:      dashYear,
			Week:      dashWeek,
			Frequency: record.FreqDaily,
			DayOfWeek: core.Monday,
			Values:    record.Values{"ind1": 10},
		},
		{
			Type:      record.TypeBranch,
			Year:      dashYear,
			Week:      dashWeek,
			Frequency: record.FreqWeekly,
			Values:    record.Values{"ind1": 300},
		},
	}

	req, rec := newAuthRequest(http.MethodPost, "/v1/records", getToken(t, manager), marchallList(t, rows[0], rows[1]))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}

	saved, err := recRepo.QueryAllData()
	if err != nil {
		t.Fatalf("QueryAllData(): %v", err)
	}
	if len(saved) != 2 {
		t.Errorf("got %d records; want 2", len(saved))
	}
}

func Test_recordApi_individualRequiresAdvisor(t *testing.T) {
	resetDB(t)

	manager := createUser(t, "Manager", "manager1", "manager@test.mx", "", user.ManagerRoles, true)

	body := marchallObj(t, record.NewData{
		Type:      record.TypeIndividual,
		Year:      dashYear,
		Week:      dashWeek,
		Frequency: record.FreqWeekly,
		Values:    record.Values{"ind1": 10},
	})
	req, rec := newAuthRequest(http.MethodPost, "/v1/records", getToken(t, manager), body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("failed! code = %v; wantCode %v; body %s", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
}

func Test_hrApi_blockedAdvisors(t *testing.T) {
	resetDB(t)

	manager := createUser(t, "Manager", "manager1", "manager@test.mx", "", user.ManagerRoles, true)
	token := getToken(t, manager)

	adv := createAdvisor(t, "Pedro", advisor.PositionLoan)

	body := []byte(`{
		"advisor_id": "` + adv.ID + `",
		"type": "` + hr.TypeVacation + `",
		"start_date": "2021-03-08T00:00:00Z",
		"end_date": "2021-03-12T00:00:00Z"
	}`)
	req, rec := newAuthRequest(http.MethodPost, "/v1/hr/events", token, body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("creating event failed! code = %v; body %s", rec.Code, rec.Body.String())
	}

	tests := []struct {
		name string
		date string
		want []string
	}{
		{name: "covered date", date: "2021-03-10", want: []string{adv.ID}},
		{name: "end date is inclusive", date: "2021-03-12", want: []string{adv.ID}},
		{name: "outside the range", date: "2021-03-15", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/v1/hr/events/blocked?date="+tt.date, token)
			app.ServeHTTP(rec, req)
			if rec.Code != http.StatusOK {
				t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
			}
			var ids []string
			if err := json.Unmarshal(rec.Body.Bytes(), &ids); err != nil {
				t.Fatalf("unmarshalling ids: %v", err)
			}
			if len(ids) != len(tt.want) {
				t.Fatalf("got %v; want %v", ids, tt.want)
			}
			for i := range tt.want {
				if ids[i] != tt.want[i] {
					t.Errorf("got %v; want %v", ids, tt.want)
				}
			}
		})
	}
}

func Test_hrApi_dayOffRequiresWeekday(t *testing.T) {
	resetDB(t)

	manager := createUser(t, "Manager", "manager1", "manager@test.mx", "", user.ManagerRoles, true)

	body := []byte(`{"advisor_id": "adv1", "type": "` + hr.TypeDayOff + `"}`)
	req, rec := newAuthRequest(http.MethodPost, "/v1/hr/events", getToken(t, manager), body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("failed! code = %v; wantCode %v; body %s", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
}
