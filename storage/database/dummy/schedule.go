package dummydb

import (
	"github.com/drodriguezm/tablero/core"
	"github.com/drodriguezm/tablero/core/schedule"
)

type scheduleRepository struct {
	db *scheduleTable
}

var _ schedule.Repository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(db *DB) schedule.Repository {
	return &scheduleRepository{db: db.schedule}
}

func assignmentKey(advisorID string, day core.Weekday, start string) string {
	return advisorID + "|" + day.String() + "|" + start
}

func markKey(m schedule.ComplianceMark) string {
	return m.AdvisorID + "|" + m.Date.Format("2006-01-02") + "|" + m.TimeSlot
}

// Activities

func (repo *scheduleRepository) CreateActivity(act schedule.Activity) (schedule.Activity, error) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.activities[act.ID] = &act
	return act, nil
}

func (repo *scheduleRepository) QueryAllActivities() ([]schedule.Activity, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	acts := make([]schedule.Activity, 0, len(repo.db.activities))
	for _, act := range repo.db.activities {
		acts = append(acts, *act)
	}
	return acts, nil
}

func (repo *scheduleRepository) GetActivityByID(id string) (schedule.Activity, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if act, ok := repo.db.activities[id]; ok {
		return *act, nil
	}
	return schedule.Activity{}, schedule.ErrActivityNotFound
}

func (repo *scheduleRepository) UpdateActivity(act schedule.Activity) (schedule.Activity, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.activities[act.ID]; !ok {
		return schedule.Activity{}, schedule.ErrActivityNotFound
	}
	repo.db.activities[act.ID] = &act
	return act, nil
}

func (repo *scheduleRepository) DeleteActivitiesByID(ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.activities, id)
	}
	return nil
}

// Assignments

func (repo *scheduleRepository) UpsertAssignment(a schedule.Assignment) (schedule.Assignment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	key := assignmentKey(a.AdvisorID, a.DayOfWeek, a.StartTime)
	if existing, ok := repo.db.assignments[key]; ok {
		a.ID = existing.ID
		a.CreatedAt = existing.CreatedAt
	}
	repo.db.assignments[key] = &a
	return a, nil
}

func (repo *scheduleRepository) GetAssignment(advisorID string, day core.Weekday, start string) (schedule.Assignment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if a, ok := repo.db.assignments[assignmentKey(advisorID, day, start)]; ok {
		return *a, nil
	}
	return schedule.Assignment{}, schedule.ErrAssignmentNotFound
}

func (repo *scheduleRepository) QueryAllAssignments() ([]schedule.Assignment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	as := make([]schedule.Assignment, 0, len(repo.db.assignments))
	for _, a := range repo.db.assignments {
		as = append(as, *a)
	}
	return as, nil
}

func (repo *scheduleRepository) DeleteAssignment(advisorID string, day core.Weekday, start string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	key := assignmentKey(advisorID, day, start)
	if _, ok := repo.db.assignments[key]; !ok {
		return schedule.ErrAssignmentNotFound
	}
	delete(repo.db.assignments, key)
	return nil
}

// Branch hours

func (repo *scheduleRepository) GetBranchConfig() (schedule.BranchConfig, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if repo.db.config == nil {
		return schedule.BranchConfig{}, schedule.ErrConfigNotFound
	}
	return *repo.db.config, nil
}

func (repo *scheduleRepository) SaveBranchConfig(bc schedule.BranchConfig) (schedule.BranchConfig, error) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.config = &bc
	return bc, nil
}

// Compliance

func (repo *scheduleRepository) UpsertComplianceMark(m schedule.ComplianceMark) (schedule.ComplianceMark, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	key := markKey(m)
	if existing, ok := repo.db.marks[key]; ok {
		m.ID = existing.ID
		m.CreatedAt = existing.CreatedAt
	}
	repo.db.marks[key] = &m
	return m, nil
}

func (repo *scheduleRepository) QueryAllComplianceMarks() ([]schedule.ComplianceMark, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	ms := make([]schedule.ComplianceMark, 0, len(repo.db.marks))
	for _, m := range repo.db.marks {
		ms = append(ms, *m)
	}
	return ms, nil
}
