// Package dummydb provides in-memory repositories for tests and local runs.
package dummydb

import (
	"sync"

	"github.com/drodriguezm/tablero/core/advisor"
	"github.com/drodriguezm/tablero/core/budget"
	"github.com/drodriguezm/tablero/core/hr"
	"github.com/drodriguezm/tablero/core/indicator"
	"github.com/drodriguezm/tablero/core/record"
	"github.com/drodriguezm/tablero/core/schedule"
	"github.com/drodriguezm/tablero/core/user"
)

type (
	DB struct {
		user      *userTable
		advisor   *advisorTable
		indicator *indicatorTable
		budget    *budgetTable
		record    *recordTable
		schedule  *scheduleTable
		hr        *hrTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}
	advisorTable struct {
		sync.RWMutex
		table map[string]*advisor.Advisor
	}
	indicatorTable struct {
		sync.RWMutex
		table map[string]*indicator.Indicator
	}
	budgetTable struct {
		sync.RWMutex
		table map[string]*budget.Config
	}
	recordTable struct {
		sync.RWMutex
		table map[string]*record.Data
	}
	scheduleTable struct {
		sync.RWMutex
		activities  map[string]*schedule.Activity
		assignments map[string]*schedule.Assignment
		marks       map[string]*schedule.ComplianceMark
		config      *schedule.BranchConfig
	}
	hrTable struct {
		sync.RWMutex
		table map[string]*hr.Event
	}
)

// Reset drops every row; tests call it between cases.
func (db *DB) Reset() {
	db.user.Lock()
	db.user.table = make(map[string]*user.User)
	db.user.Unlock()

	db.advisor.Lock()
	db.advisor.table = make(map[string]*advisor.Advisor)
	db.advisor.Unlock()

	db.indicator.Lock()
	db.indicator.table = make(map[string]*indicator.Indicator)
	db.indicator.Unlock()

	db.budget.Lock()
	db.budget.table = make(map[string]*budget.Config)
	db.budget.Unlock()

	db.record.Lock()
	db.record.table = make(map[string]*record.Data)
	db.record.Unlock()

	db.schedule.Lock()
	db.schedule.activities = make(map[string]*schedule.Activity)
	db.schedule.assignments = make(map[string]*schedule.Assignment)
	db.schedule.marks = make(map[string]*schedule.ComplianceMark)
	db.schedule.config = nil
	db.schedule.Unlock()

	db.hr.Lock()
	db.hr.table = make(map[string]*hr.Event)
	db.hr.Unlock()
}

func Open() (*DB, error) {
	db := &DB{
		user:      &userTable{table: make(map[string]*user.User)},
		advisor:   &advisorTable{table: make(map[string]*advisor.Advisor)},
		indicator: &indicatorTable{table: make(map[string]*indicator.Indicator)},
		budget:    &budgetTable{table: make(map[string]*budget.Config)},
		record:    &recordTable{table: make(map[string]*record.Data)},
		schedule: &scheduleTable{
			activities:  make(map[string]*schedule.Activity),
			assignments: make(map[string]*schedule.Assignment),
			marks:       make(map[string]*schedule.ComplianceMark),
		},
		hr: &hrTable{table: make(map[string]*hr.Event)},
	}
	return db, nil
}
