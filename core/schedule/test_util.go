package schedule

import (
	"sync"

	"github.com/drodriguezm/tablero/core"
)

// repoMock is a minimal in-memory Repository for service tests.
type repoMock struct {
	mu          sync.RWMutex
	activities  map[string]Activity
	assignments map[string]Assignment
	marks       map[string]ComplianceMark
	config      *BranchConfig
}

func newRepoMock() *repoMock {
	return &repoMock{
		activities:  make(map[string]Activity),
		assignments: make(map[string]Assignment),
		marks:       make(map[string]ComplianceMark),
	}
}

func slotKey(advisorID string, day core.Weekday, start string) string {
	return advisorID + "|" + day.String() + "|" + start
}

func (r *repoMock) CreateActivity(act Activity) (Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activities[act.ID] = act
	return act, nil
}

func (r *repoMock) QueryAllActivities() ([]Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acts := make([]Activity, 0, len(r.activities))
	for _, act := range r.activities {
		acts = append(acts, act)
	}
	return acts, nil
}

func (r *repoMock) GetActivityByID(id string) (Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	act, ok := r.activities[id]
	if !ok {
		return Activity{}, ErrActivityNotFound
	}
	return act, nil
}

func (r *repoMock) UpdateActivity(act Activity) (Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.activities[act.ID]; !ok {
		return Activity{}, ErrActivityNotFound
	}
	r.activities[act.ID] = act
	return act, nil
}

func (r *repoMock) DeleteActivitiesByID(ids ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.activities, id)
	}
	return nil
}

func (r *repoMock) UpsertAssignment(a Assignment) (Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := slotKey(a.AdvisorID, a.DayOfWeek, a.StartTime)
	if existing, ok := r.assignments[key]; ok {
		a.ID = existing.ID
		a.CreatedAt = existing.CreatedAt
	}
	r.assignments[key] = a
	return a, nil
}

func (r *repoMock) GetAssignment(advisorID string, day core.Weekday, start string) (Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.assignments[slotKey(advisorID, day, start)]
	if !ok {
		return Assignment{}, ErrAssignmentNotFound
	}
	return a, nil
}

func (r *repoMock) QueryAllAssignments() ([]Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	as := make([]Assignment, 0, len(r.assignments))
	for _, a := range r.assignments {
		as = append(as, a)
	}
	return as, nil
}

func (r *repoMock) DeleteAssignment(advisorID string, day core.Weekday, start string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := slotKey(advisorID, day, start)
	if _, ok := r.assignments[key]; !ok {
		return ErrAssignmentNotFound
	}
	delete(r.assignments, key)
	return nil
}

func (r *repoMock) GetBranchConfig() (BranchConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.config == nil {
		return BranchConfig{}, ErrConfigNotFound
	}
	return *r.config, nil
}

func (r *repoMock) SaveBranchConfig(bc BranchConfig) (BranchConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.config = &bc
	return bc, nil
}

func (r *repoMock) UpsertComplianceMark(m ComplianceMark) (ComplianceMark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := m.AdvisorID + "|" + complianceKey(m.Date, m.TimeSlot)
	if existing, ok := r.marks[key]; ok {
		m.ID = existing.ID
		m.CreatedAt = existing.CreatedAt
	}
	r.marks[key] = m
	return m, nil
}

func (r *repoMock) QueryAllComplianceMarks() ([]ComplianceMark, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ms := make([]ComplianceMark, 0, len(r.marks))
	for _, m := range r.marks {
		ms = append(ms, m)
	}
	return ms, nil
}
