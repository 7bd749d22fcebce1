package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/drodriguezm/tablero/core/advisor"
)

type advisorRepository struct {
	db *sqlx.DB
}

var _ advisor.Repository = (*advisorRepository)(nil) // interface compliance check

func NewAdvisorRepository(db *sqlx.DB) advisor.Repository {
	return &advisorRepository{db: db}
}

const advisorCols = `id, name, position, shift, employee_no, photo_url, birth_date, hire_date, created_at, updated_at`

func (repo *advisorRepository) CreateAdvisor(adv advisor.Advisor) (advisor.Advisor, error) {
	_, err := repo.db.NamedExec(
		`INSERT INTO advisor (`+advisorCols+`)
		VALUES (:id, :name, :position, :shift, :employee_no, :photo_url, :birth_date, :hire_date, :created_at, :updated_at)`,
		adv,
	)
	if err != nil {
		return advisor.Advisor{}, errors.Wrap(err, "creating advisor")
	}
	return adv, nil
}

func (repo *advisorRepository) QueryAllAdvisors() ([]advisor.Advisor, error) {
	var advs []advisor.Advisor
	if err := repo.db.Select(&advs, `SELECT `+advisorCols+` FROM advisor ORDER BY name`); err != nil {
		return nil, errors.Wrap(err, "querying advisors")
	}
	return advs, nil
}

func (repo *advisorRepository) GetAdvisorByID(id string) (advisor.Advisor, error) {
	var adv advisor.Advisor
	err := repo.db.Get(&adv, `SELECT `+advisorCols+` FROM advisor WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return advisor.Advisor{}, advisor.ErrNotFound
	}
	if err != nil {
		return advisor.Advisor{}, errors.Wrap(err, "getting advisor")
	}
	return adv, nil
}

func (repo *advisorRepository) UpdateAdvisor(adv advisor.Advisor) (advisor.Advisor, error) {
	res, err := repo.db.NamedExec(
		`UPDATE advisor SET name = :name, position = :position, shift = :shift, employee_no = :employee_no,
			photo_url = :photo_url, birth_date = :birth_date, hire_date = :hire_date, updated_at = :updated_at
		WHERE id = :id`,
		adv,
	)
	if err != nil {
		return advisor.Advisor{}, errors.Wrap(err, "updating advisor")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return advisor.Advisor{}, advisor.ErrNotFound
	}
	return adv, nil
}

func (repo *advisorRepository) DeleteAdvisorsByID(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := repo.db.Exec(`DELETE FROM advisor WHERE id = ANY($1)`, pq.StringArray(ids))
	return errors.Wrap(err, "deleting advisors")
}
