package report

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drodriguezm/tablero/core/advisor"
	"github.com/drodriguezm/tablero/core/budget"
	"github.com/drodriguezm/tablero/core/indicator"
	dummydb "github.com/drodriguezm/tablero/storage/database/dummy"
)

type warnCollector struct {
	mu    sync.Mutex
	warns []string
}

func (l *warnCollector) Debug(msg string, args ...interface{}) {}
func (l *warnCollector) Info(msg string, args ...interface{})  {}
func (l *warnCollector) Warn(msg string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}
func (l *warnCollector) Error(msg string, args ...interface{}) {}
func (l *warnCollector) Fatal(msg string, args ...interface{}) {}

// brokenIndicators fails every query.
type brokenIndicators struct {
	indicator.Repository
}

func (brokenIndicators) QueryAllIndicators() ([]indicator.Indicator, error) {
	return nil, errors.New("backend down")
}

func TestLoaderLoadsAllCollections(t *testing.T) {
	db, err := dummydb.Open()
	require.NoError(t, err)

	indRepo := dummydb.NewIndicatorRepository(db)
	advRepo := dummydb.NewAdvisorRepository(db)

	_, err = indRepo.CreateIndicator(indicator.Indicator{ID: "ind1", Name: "Colocación"})
	require.NoError(t, err)
	_, err = advRepo.CreateAdvisor(advisor.Advisor{ID: "adv1", Name: "Pedro", Position: advisor.PositionLoan})
	require.NoError(t, err)

	logger := &warnCollector{}
	loader := NewLoader(
		logger,
		indRepo,
		dummydb.NewBudgetRepository(db),
		dummydb.NewRecordRepository(db),
		advRepo,
		dummydb.NewScheduleRepository(db),
		dummydb.NewHRRepository(db),
	)

	snap := loader.Load()

	assert.Len(t, snap.Indicators, 1)
	assert.Len(t, snap.Advisors, 1)
	assert.Empty(t, snap.Budgets)
	assert.Empty(t, snap.Records)
	assert.Empty(t, logger.warns)
}

func TestLoaderFailsOpenOnBrokenCollection(t *testing.T) {
	db, err := dummydb.Open()
	require.NoError(t, err)

	advRepo := dummydb.NewAdvisorRepository(db)
	_, err = advRepo.CreateAdvisor(advisor.Advisor{ID: "adv1", Name: "Pedro", Position: advisor.PositionLoan})
	require.NoError(t, err)

	logger := &warnCollector{}
	loader := NewLoader(
		logger,
		brokenIndicators{},
		dummydb.NewBudgetRepository(db),
		dummydb.NewRecordRepository(db),
		advRepo,
		dummydb.NewScheduleRepository(db),
		dummydb.NewHRRepository(db),
	)

	// the load never fails: the broken collection stays empty and is warned about
	snap := loader.Load()

	assert.Empty(t, snap.Indicators)
	assert.Len(t, snap.Advisors, 1)
	require.Len(t, logger.warns, 1)
	assert.Contains(t, logger.warns[0], "indicators")
}

// A snapshot straight out of the loader feeds the engine without further
// shaping.
func TestLoaderSnapshotFeedsEngine(t *testing.T) {
	db, err := dummydb.Open()
	require.NoError(t, err)

	indRepo := dummydb.NewIndicatorRepository(db)
	budRepo := dummydb.NewBudgetRepository(db)

	_, err = indRepo.CreateIndicator(indicator.Indicator{ID: "ind1", Name: "Colocación", Applicability: indicator.AppliesAll})
	require.NoError(t, err)
	_, err = budRepo.CreateConfig(budget.Config{
		ID: "b1", IndicatorID: "ind1", TargetID: "adv1",
		Year: 2021, Week: 10, Scope: budget.ScopeWeekly, Amount: 500,
	})
	require.NoError(t, err)

	loader := NewLoader(
		&warnCollector{},
		indRepo,
		budRepo,
		dummydb.NewRecordRepository(db),
		dummydb.NewAdvisorRepository(db),
		dummydb.NewScheduleRepository(db),
		dummydb.NewHRRepository(db),
	)

	engine := NewEngine(loader.Load())
	assert.Equal(t, 500.0, engine.Target("ind1", "adv1", advisor.PositionLoan, PeriodWeek, 2021, 10, 0, 0))
}
