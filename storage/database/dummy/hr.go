package dummydb

import (
	"github.com/drodriguezm/tablero/core/hr"
)

type hrRepository struct {
	db *hrTable
}

var _ hr.Repository = (*hrRepository)(nil) // interface compliance check

func NewHRRepository(db *DB) hr.Repository {
	return &hrRepository{db: db.hr}
}

func (repo *hrRepository) CreateEvent(ev hr.Event) (hr.Event, error) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.table[ev.ID] = &ev
	return ev, nil
}

func (repo *hrRepository) QueryAllEvents() ([]hr.Event, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	evs := make([]hr.Event, 0, len(repo.db.table))
	for _, ev := range repo.db.table {
		evs = append(evs, *ev)
	}
	return evs, nil
}

func (repo *hrRepository) GetEventByID(id string) (hr.Event, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if ev, ok := repo.db.table[id]; ok {
		return *ev, nil
	}
	return hr.Event{}, hr.ErrNotFound
}

func (repo *hrRepository) DeleteEventsByID(ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
