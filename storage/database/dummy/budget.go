package dummydb

import (
	"github.com/drodriguezm/tablero/core/budget"
)

type budgetRepository struct {
	db *budgetTable
}

var _ budget.Repository = (*budgetRepository)(nil) // interface compliance check

func NewBudgetRepository(db *DB) budget.Repository {
	return &budgetRepository{db: db.budget}
}

func (repo *budgetRepository) CreateConfig(cfg budget.Config) (budget.Config, error) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.table[cfg.ID] = &cfg
	return cfg, nil
}

func (repo *budgetRepository) CreateConfigs(cfgs []budget.Config) ([]budget.Config, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for i := range cfgs {
		cfg := cfgs[i]
		repo.db.table[cfg.ID] = &cfg
	}
	return cfgs, nil
}

func (repo *budgetRepository) QueryAllConfigs() ([]budget.Config, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	cfgs := make([]budget.Config, 0, len(repo.db.table))
	for _, cfg := range repo.db.table {
		cfgs = append(cfgs, *cfg)
	}
	return cfgs, nil
}

func (repo *budgetRepository) GetConfigByID(id string) (budget.Config, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if cfg, ok := repo.db.table[id]; ok {
		return *cfg, nil
	}
	return budget.Config{}, budget.ErrNotFound
}

func (repo *budgetRepository) UpdateConfig(cfg budget.Config) (budget.Config, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[cfg.ID]; !ok {
		return budget.Config{}, budget.ErrNotFound
	}
	repo.db.table[cfg.ID] = &cfg
	return cfg, nil
}

func (repo *budgetRepository) DeleteConfigsByID(ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
