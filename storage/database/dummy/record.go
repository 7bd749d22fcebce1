package dummydb

import (
	"github.com/drodriguezm/tablero/core/record"
)

type recordRepository struct {
	db *recordTable
}

var _ record.Repository = (*recordRepository)(nil) // interface compliance check

func NewRecordRepository(db *DB) record.Repository {
	return &recordRepository{db: db.record}
}

func (repo *recordRepository) CreateData(d record.Data) (record.Data, error) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.table[d.ID] = &d
	return d, nil
}

func (repo *recordRepository) CreateDataBulk(ds []record.Data) ([]record.Data, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for i := range ds {
		d := ds[i]
		repo.db.table[d.ID] = &d
	}
	return ds, nil
}

func (repo *recordRepository) QueryAllData() ([]record.Data, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	ds := make([]record.Data, 0, len(repo.db.table))
	for _, d := range repo.db.table {
		ds = append(ds, *d)
	}
	return ds, nil
}

func (repo *recordRepository) GetDataByID(id string) (record.Data, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if d, ok := repo.db.table[id]; ok {
		return *d, nil
	}
	return record.Data{}, record.ErrNotFound
}

func (repo *recordRepository) UpdateData(d record.Data) (record.Data, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[d.ID]; !ok {
		return record.Data{}, record.ErrNotFound
	}
	repo.db.table[d.ID] = &d
	return d, nil
}

func (repo *recordRepository) DeleteDataByID(ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
