package dummydb

import (
	"github.com/drodriguezm/tablero/core/advisor"
)

type advisorRepository struct {
	db *advisorTable
}

var _ advisor.Repository = (*advisorRepository)(nil) // interface compliance check

func NewAdvisorRepository(db *DB) advisor.Repository {
	return &advisorRepository{db: db.advisor}
}

func (repo *advisorRepository) CreateAdvisor(adv advisor.Advisor) (advisor.Advisor, error) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.table[adv.ID] = &adv
	return adv, nil
}

func (repo *advisorRepository) QueryAllAdvisors() ([]advisor.Advisor, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	advs := make([]advisor.Advisor, 0, len(repo.db.table))
	for _, adv := range repo.db.table {
		advs = append(advs, *adv)
	}
	return advs, nil
}

func (repo *advisorRepository) GetAdvisorByID(id string) (advisor.Advisor, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if adv, ok := repo.db.table[id]; ok {
		return *adv, nil
	}
	return advisor.Advisor{}, advisor.ErrNotFound
}

func (repo *advisorRepository) UpdateAdvisor(adv advisor.Advisor) (advisor.Advisor, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[adv.ID]; !ok {
		return advisor.Advisor{}, advisor.ErrNotFound
	}
	repo.db.table[adv.ID] = &adv
	return adv, nil
}

func (repo *advisorRepository) DeleteAdvisorsByID(ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
