package report

import (
	"sync"

	"github.com/drodriguezm/tablero/core"
	"github.com/drodriguezm/tablero/core/advisor"
	"github.com/drodriguezm/tablero/core/budget"
	"github.com/drodriguezm/tablero/core/hr"
	"github.com/drodriguezm/tablero/core/indicator"
	"github.com/drodriguezm/tablero/core/record"
	"github.com/drodriguezm/tablero/core/schedule"
)

// Snapshot is the fully-replaced-on-every-read application state the engine
// computes over. It is rebuilt from storage on demand; nothing is cached
// across requests and no collection is ever partially updated.
type Snapshot struct {
	Indicators  []indicator.Indicator
	Budgets     []budget.Config
	Records     []record.Data
	Advisors    []advisor.Advisor
	Activities  []schedule.Activity
	Assignments []schedule.Assignment
	Compliance  []schedule.ComplianceMark
	HREvents    []hr.Event
}

// Loader fans out one fetch per collection and joins them. A failed fetch is
// fail-open: the collection stays empty and a warning is logged, the load
// itself never fails.
type Loader struct {
	logger     core.Logger
	indicators indicator.Repository
	budgets    budget.Repository
	records    record.Repository
	advisors   advisor.Repository
	schedules  schedule.Repository
	events     hr.Repository
}

func NewLoader(
	logger core.Logger,
	indicators indicator.Repository,
	budgets budget.Repository,
	records record.Repository,
	advisors advisor.Repository,
	schedules schedule.Repository,
	events hr.Repository,
) *Loader {
	return &Loader{
		logger:     logger,
		indicators: indicators,
		budgets:    budgets,
		records:    records,
		advisors:   advisors,
		schedules:  schedules,
		events:     events,
	}
}

func (l *Loader) Load() Snapshot {
	var snap Snapshot
	var wg sync.WaitGroup

	fetch := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				l.logger.Warn("loading "+name+": collection left empty", err)
			}
		}()
	}

	fetch("indicators", func() (err error) {
		snap.Indicators, err = l.indicators.QueryAllIndicators()
		return
	})
	fetch("budgets", func() (err error) {
		snap.Budgets, err = l.budgets.QueryAllConfigs()
		return
	})
	fetch("records", func() (err error) {
		snap.Records, err = l.records.QueryAllData()
		return
	})
	fetch("advisors", func() (err error) {
		snap.Advisors, err = l.advisors.QueryAllAdvisors()
		return
	})
	fetch("activities", func() (err error) {
		snap.Activities, err = l.schedules.QueryAllActivities()
		return
	})
	fetch("assignments", func() (err error) {
		snap.Assignments, err = l.schedules.QueryAllAssignments()
		return
	})
	fetch("compliance", func() (err error) {
		snap.Compliance, err = l.schedules.QueryAllComplianceMarks()
		return
	})
	fetch("hr events", func() (err error) {
		snap.HREvents, err = l.events.QueryAllEvents()
		return
	})

	wg.Wait()
	return snap
}
