package dummydb

import (
	"github.com/drodriguezm/tablero/core/indicator"
)

type indicatorRepository struct {
	db *indicatorTable
}

var _ indicator.Repository = (*indicatorRepository)(nil) // interface compliance check

func NewIndicatorRepository(db *DB) indicator.Repository {
	return &indicatorRepository{db: db.indicator}
}

func (repo *indicatorRepository) CreateIndicator(ind indicator.Indicator) (indicator.Indicator, error) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.table[ind.ID] = &ind
	return ind, nil
}

func (repo *indicatorRepository) QueryAllIndicators() ([]indicator.Indicator, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	inds := make([]indicator.Indicator, 0, len(repo.db.table))
	for _, ind := range repo.db.table {
		inds = append(inds, *ind)
	}
	return inds, nil
}

func (repo *indicatorRepository) GetIndicatorByID(id string) (indicator.Indicator, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if ind, ok := repo.db.table[id]; ok {
		return *ind, nil
	}
	return indicator.Indicator{}, indicator.ErrNotFound
}

func (repo *indicatorRepository) UpdateIndicator(ind indicator.Indicator) (indicator.Indicator, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[ind.ID]; !ok {
		return indicator.Indicator{}, indicator.ErrNotFound
	}
	repo.db.table[ind.ID] = &ind
	return ind, nil
}

func (repo *indicatorRepository) DeleteIndicatorsByID(ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
