package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/drodriguezm/tablero/core/record"
)

type recordRepository struct {
	db *sqlx.DB
}

var _ record.Repository = (*recordRepository)(nil) // interface compliance check

func NewRecordRepository(db *sqlx.DB) record.Repository {
	return &recordRepository{db: db}
}

const recordCols = `id, type, advisor_id, year, week, frequency, day_of_week, vals, created_at, updated_at`

const recordInsert = `INSERT INTO record_data (` + recordCols + `)
	VALUES (:id, :type, :advisor_id, :year, :week, :frequency, :day_of_week, :vals, :created_at, :updated_at)`

func (repo *recordRepository) CreateData(d record.Data) (record.Data, error) {
	if _, err := repo.db.NamedExec(recordInsert, d); err != nil {
		return record.Data{}, errors.Wrap(err, "creating record")
	}
	return d, nil
}

func (repo *recordRepository) CreateDataBulk(ds []record.Data) ([]record.Data, error) {
	if len(ds) == 0 {
		return nil, nil
	}
	tx, err := repo.db.Beginx()
	if err != nil {
		return nil, errors.Wrap(err, "creating records")
	}
	for _, d := range ds {
		if _, err = tx.NamedExec(recordInsert, d); err != nil {
			_ = tx.Rollback()
			return nil, errors.Wrap(err, "creating records")
		}
	}
	if err = tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "creating records")
	}
	return ds, nil
}

func (repo *recordRepository) QueryAllData() ([]record.Data, error) {
	// fetch order backs last-write-wins deduplication downstream
	var ds []record.Data
	if err := repo.db.Select(&ds, `SELECT `+recordCols+` FROM record_data ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying records")
	}
	return ds, nil
}

func (repo *recordRepository) GetDataByID(id string) (record.Data, error) {
	var d record.Data
	err := repo.db.Get(&d, `SELECT `+recordCols+` FROM record_data WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return record.Data{}, record.ErrNotFound
	}
	if err != nil {
		return record.Data{}, errors.Wrap(err, "getting record")
	}
	return d, nil
}

func (repo *recordRepository) UpdateData(d record.Data) (record.Data, error) {
	res, err := repo.db.NamedExec(
		`UPDATE record_data SET vals = :vals, updated_at = :updated_at WHERE id = :id`, d,
	)
	if err != nil {
		return record.Data{}, errors.Wrap(err, "updating record")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return record.Data{}, record.ErrNotFound
	}
	return d, nil
}

func (repo *recordRepository) DeleteDataByID(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := repo.db.Exec(`DELETE FROM record_data WHERE id = ANY($1)`, pq.StringArray(ids))
	return errors.Wrap(err, "deleting records")
}
