package report

import (
	"testing"

	"github.com/volatiletech/null/v8"

	"github.com/drodriguezm/tablero/core"
	"github.com/drodriguezm/tablero/core/advisor"
	"github.com/drodriguezm/tablero/core/budget"
	"github.com/drodriguezm/tablero/core/indicator"
	"github.com/drodriguezm/tablero/core/record"
)

const (
	testYear = 2021
	testWeek = 10
)

func cumulativeInd(id string) indicator.Indicator {
	return indicator.Indicator{
		ID: id, Name: id, Applicability: indicator.AppliesAll,
		Unit: indicator.UnitCurrency, IsCumulative: true,
	}
}

func averageInd(id string) indicator.Indicator {
	return indicator.Indicator{
		ID: id, Name: id, Applicability: indicator.AppliesAll,
		Unit: indicator.UnitCount, IsAverage: true,
	}
}

func weeklyBudget(indID, targetID string, week int, amount float64) budget.Config {
	return budget.Config{
		IndicatorID: indID, TargetID: targetID,
		Year: testYear, Week: week, Scope: budget.ScopeWeekly, Amount: amount,
	}
}

func dailyBudget(indID, targetID string, week int, day core.Weekday, amount float64) budget.Config {
	return budget.Config{
		IndicatorID: indID, TargetID: targetID,
		Year: testYear, Week: week, Scope: budget.ScopeDaily, DayOfWeek: day, Amount: amount,
	}
}

func dailyRecord(advisorID string, day core.Weekday, vals record.Values) record.Data {
	return record.Data{
		Type: record.TypeIndividual, AdvisorID: null.StringFrom(advisorID),
		Year: testYear, Week: testWeek, Frequency: record.FreqDaily, DayOfWeek: day,
		Values: vals,
	}
}

func weeklyRecord(advisorID string, vals record.Values) record.Data {
	return record.Data{
		Type: record.TypeIndividual, AdvisorID: null.StringFrom(advisorID),
		Year: testYear, Week: testWeek, Frequency: record.FreqWeekly,
		Values: vals,
	}
}

func branchRecord(freq string, day core.Weekday, vals record.Values) record.Data {
	return record.Data{
		Type: record.TypeBranch,
		Year: testYear, Week: testWeek, Frequency: freq, DayOfWeek: day,
		Values: vals,
	}
}

func TestTargetWeeklyPreferredOverDaily(t *testing.T) {
	eng := NewEngine(Snapshot{
		Indicators: []indicator.Indicator{cumulativeInd("col")},
		Budgets: []budget.Config{
			weeklyBudget("col", "adv1", testWeek, 500),
			dailyBudget("col", "adv1", testWeek, core.Monday, 100),
			dailyBudget("col", "adv1", testWeek, core.Tuesday, 100),
		},
	})

	if got := eng.Target("col", "adv1", advisor.PositionLoan, PeriodWeek, testYear, testWeek, 0, 0); got != 500 {
		t.Errorf("Target() = %v, want 500 (WEEKLY row must win over DAILY rows)", got)
	}
}

func TestTargetDailyDedupeNeverDoubleCounts(t *testing.T) {
	eng := NewEngine(Snapshot{
		Indicators: []indicator.Indicator{cumulativeInd("col")},
		Budgets: []budget.Config{
			dailyBudget("col", "adv1", testWeek, core.Monday, 100),
			dailyBudget("col", "adv1", testWeek, core.Monday, 150), // duplicate weekday, last wins
			dailyBudget("col", "adv1", testWeek, core.Tuesday, 200),
		},
	})

	if got := eng.Target("col", "adv1", advisor.PositionLoan, PeriodWeek, testYear, testWeek, 0, 0); got != 350 {
		t.Errorf("Target() = %v, want 350 (150 + 200)", got)
	}
}

func TestTargetDayFallback(t *testing.T) {
	budgets := []budget.Config{
		weeklyBudget("cum", "adv1", testWeek, 700),
		weeklyBudget("avg", "adv1", testWeek, 80),
	}
	eng := NewEngine(Snapshot{
		Indicators: []indicator.Indicator{cumulativeInd("cum"), averageInd("avg")},
		Budgets:    budgets,
	})

	tests := []struct {
		name string
		ind  string
		want float64
	}{
		{name: "cumulative divides weekly by 7", ind: "cum", want: 100},
		{name: "average keeps weekly as-is", ind: "avg", want: 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eng.Target(tt.ind, "adv1", advisor.PositionLoan, PeriodDay, testYear, testWeek, 0, core.Wednesday)
			if got != tt.want {
				t.Errorf("Target() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTargetPositionFallback(t *testing.T) {
	eng := NewEngine(Snapshot{
		Indicators: []indicator.Indicator{cumulativeInd("col")},
		Budgets: []budget.Config{
			weeklyBudget("col", budget.PositionTarget(advisor.PositionLoan), testWeek, 900),
		},
	})

	// adv1 has no rows of its own; the position-wide aggregate applies
	if got := eng.Target("col", "adv1", advisor.PositionLoan, PeriodWeek, testYear, testWeek, 0, 0); got != 900 {
		t.Errorf("Target() = %v, want 900 via position fallback", got)
	}
	// the branch singleton never falls back
	if got := eng.Target("col", budget.BranchTarget, advisor.PositionLoan, PeriodWeek, testYear, testWeek, 0, 0); got != 0 {
		t.Errorf("Target() = %v, want 0 for branch singleton without rows", got)
	}
}

func TestActualDailyBeatsWeekly(t *testing.T) {
	eng := NewEngine(Snapshot{
		Indicators: []indicator.Indicator{cumulativeInd("col")},
		Records: []record.Data{
			weeklyRecord("adv1", record.Values{"col": 999}), // stale weekly capture
			dailyRecord("adv1", core.Monday, record.Values{"col": 40}),
			dailyRecord("adv1", core.Monday, record.Values{"col": 60}), // recapture, last wins
			dailyRecord("adv1", core.Tuesday, record.Values{"col": 100}),
		},
	})

	got := eng.Actual("col", record.TypeIndividual, "adv1", PeriodWeek, testYear, testWeek, 0, 0)
	if got != 160 {
		t.Errorf("Actual() = %v, want 160 (daily rows win, Monday deduped)", got)
	}
}

func TestActualAverageAcrossAdvisorsWithData(t *testing.T) {
	eng := NewEngine(Snapshot{
		Indicators: []indicator.Indicator{averageInd("avg")},
		Records: []record.Data{
			weeklyRecord("adv1", record.Values{"avg": 10}),
			weeklyRecord("adv2", record.Values{"avg": 21}),
			weeklyRecord("adv3", record.Values{"other": 5}), // no value for avg, excluded
		},
	})

	got := eng.Actual("avg", record.TypeIndividual, "", PeriodWeek, testYear, testWeek, 0, 0)
	if got != 16 { // ceil((10+21)/2)
		t.Errorf("Actual() = %v, want 16", got)
	}
}

func TestActualBranchExcludesIndividualRows(t *testing.T) {
	eng := NewEngine(Snapshot{
		Indicators: []indicator.Indicator{cumulativeInd("col")},
		Records: []record.Data{
			branchRecord(record.FreqWeekly, 0, record.Values{"col": 300}),
			weeklyRecord("adv1", record.Values{"col": 50}),
			// individual row with its advisor id accidentally absent: still excluded
			{
				Type: record.TypeIndividual,
				Year: testYear, Week: testWeek, Frequency: record.FreqWeekly,
				Values: record.Values{"col": 50},
			},
		},
	})

	got := eng.Actual("col", record.TypeBranch, "", PeriodWeek, testYear, testWeek, 0, 0)
	if got != 300 {
		t.Errorf("Actual() = %v, want 300 (individual rows never leak into branch views)", got)
	}
}

func TestActualForTargetPosition(t *testing.T) {
	eng := NewEngine(Snapshot{
		Indicators: []indicator.Indicator{cumulativeInd("col")},
		Advisors: []advisor.Advisor{
			{ID: "adv1", Position: advisor.PositionLoan},
			{ID: "adv2", Position: advisor.PositionLoan},
			{ID: "adv3", Position: advisor.PositionAffiliation},
		},
		Records: []record.Data{
			weeklyRecord("adv1", record.Values{"col": 100}),
			weeklyRecord("adv2", record.Values{"col": 200}),
			weeklyRecord("adv3", record.Values{"col": 400}),
		},
	})

	got := eng.ActualForTarget("col", budget.PositionTarget(advisor.PositionLoan), PeriodWeek, testYear, testWeek, 0, 0)
	if got != 300 {
		t.Errorf("ActualForTarget() = %v, want 300 (loan advisors only)", got)
	}
}

func TestDailyCommitmentCarriesDeficit(t *testing.T) {
	// Monday target 100 / actual 60, Tuesday target 100 / actual 100,
	// Wednesday base 100: shortfall 40 carries onto Wednesday.
	eng := NewEngine(Snapshot{
		Indicators: []indicator.Indicator{cumulativeInd("col")},
		Budgets: []budget.Config{
			dailyBudget("col", "adv1", testWeek, core.Monday, 100),
			dailyBudget("col", "adv1", testWeek, core.Tuesday, 100),
			dailyBudget("col", "adv1", testWeek, core.Wednesday, 100),
		},
		Records: []record.Data{
			dailyRecord("adv1", core.Monday, record.Values{"col": 60}),
			dailyRecord("adv1", core.Tuesday, record.Values{"col": 100}),
		},
	})

	c := eng.DailyCommitment("col", "adv1", advisor.PositionLoan, testYear, testWeek, core.Wednesday)
	if c.Amount != 140 || !c.IsDeficit {
		t.Errorf("DailyCommitment() = %+v, want {Amount:140 IsDeficit:true}", c)
	}
}

func TestDailyCommitmentBranchTarget(t *testing.T) {
	// same carry rules for the branch singleton, fed by branch captures
	eng := NewEngine(Snapshot{
		Indicators: []indicator.Indicator{cumulativeInd("col")},
		Budgets: []budget.Config{
			dailyBudget("col", budget.BranchTarget, testWeek, core.Monday, 100),
			dailyBudget("col", budget.BranchTarget, testWeek, core.Tuesday, 100),
			dailyBudget("col", budget.BranchTarget, testWeek, core.Wednesday, 100),
		},
		Records: []record.Data{
			branchRecord(record.FreqDaily, core.Monday, record.Values{"col": 60}),
			branchRecord(record.FreqDaily, core.Tuesday, record.Values{"col": 100}),
		},
	})

	c := eng.DailyCommitment("col", budget.BranchTarget, "", testYear, testWeek, core.Wednesday)
	if c.Amount != 140 || !c.IsDeficit {
		t.Errorf("DailyCommitment() = %+v, want {Amount:140 IsDeficit:true}", c)
	}
}

func TestDailyCommitmentOnPace(t *testing.T) {
	eng := NewEngine(Snapshot{
		Indicators: []indicator.Indicator{cumulativeInd("col")},
		Budgets: []budget.Config{
			dailyBudget("col", "adv1", testWeek, core.Monday, 100),
			dailyBudget("col", "adv1", testWeek, core.Tuesday, 100),
		},
		Records: []record.Data{
			dailyRecord("adv1", core.Monday, record.Values{"col": 120}),
		},
	})

	c := eng.DailyCommitment("col", "adv1", advisor.PositionLoan, testYear, testWeek, core.Tuesday)
	if c.Amount != 100 || c.IsDeficit {
		t.Errorf("DailyCommitment() = %+v, want {Amount:100 IsDeficit:false}", c)
	}
}

func TestDailyCommitmentRateIndicatorsNeverCarry(t *testing.T) {
	pct := cumulativeInd("pct")
	pct.Unit = indicator.UnitPercentage

	eng := NewEngine(Snapshot{
		Indicators: []indicator.Indicator{pct, averageInd("avg")},
		Budgets: []budget.Config{
			dailyBudget("pct", "adv1", testWeek, core.Monday, 90),
			dailyBudget("pct", "adv1", testWeek, core.Tuesday, 90),
			dailyBudget("avg", "adv1", testWeek, core.Monday, 10),
			dailyBudget("avg", "adv1", testWeek, core.Tuesday, 10),
		},
		Records: []record.Data{
			dailyRecord("adv1", core.Monday, record.Values{"pct": 0, "avg": 0}), // far behind
		},
	})

	wantBase := map[string]float64{"pct": 90, "avg": 10}
	for id, base := range wantBase {
		c := eng.DailyCommitment(id, "adv1", advisor.PositionLoan, testYear, testWeek, core.Tuesday)
		if c.IsDeficit {
			t.Errorf("DailyCommitment(%s) flagged a deficit, rate indicators never carry", id)
		}
		if c.Amount != base {
			t.Errorf("DailyCommitment(%s).Amount = %v, want the untouched base %v", id, c.Amount, base)
		}
	}
}

func TestCompositeScore(t *testing.T) {
	weighted := cumulativeInd("col")
	weighted.LoanWeight = 3
	alsoWeighted := cumulativeInd("cap")
	alsoWeighted.LoanWeight = 1

	eng := NewEngine(Snapshot{
		Indicators: []indicator.Indicator{weighted, alsoWeighted},
		Budgets: []budget.Config{
			weeklyBudget("col", "adv1", testWeek, 100),
			weeklyBudget("cap", "adv1", testWeek, 100),
		},
		Records: []record.Data{
			weeklyRecord("adv1", record.Values{"col": 100, "cap": 50}),
		},
	})

	// (1.0*3 + 0.5*1) / 4 * 100 = 87.5 → 88
	got := eng.CompositeScore("adv1", advisor.PositionLoan, testYear, testWeek)
	if got != 88 {
		t.Errorf("CompositeScore() = %v, want 88", got)
	}
}

func TestCompositeScoreEvenSpreadWithoutWeights(t *testing.T) {
	eng := NewEngine(Snapshot{
		Indicators: []indicator.Indicator{cumulativeInd("col"), cumulativeInd("cap")},
		Budgets: []budget.Config{
			weeklyBudget("col", "adv1", testWeek, 100),
			weeklyBudget("cap", "adv1", testWeek, 100),
		},
		Records: []record.Data{
			weeklyRecord("adv1", record.Values{"col": 100, "cap": 100}),
		},
	})

	if got := eng.CompositeScore("adv1", advisor.PositionLoan, testYear, testWeek); got != 100 {
		t.Errorf("CompositeScore() = %v, want 100 with evenly spread weights", got)
	}
}
