package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/drodriguezm/tablero/core/budget"
)

type budgetRepository struct {
	db *sqlx.DB
}

var _ budget.Repository = (*budgetRepository)(nil) // interface compliance check

func NewBudgetRepository(db *sqlx.DB) budget.Repository {
	return &budgetRepository{db: db}
}

const budgetCols = `id, indicator_id, target_id, year, week, scope, day_of_week, amount, created_at, updated_at`

const budgetInsert = `INSERT INTO budget_config (` + budgetCols + `)
	VALUES (:id, :indicator_id, :target_id, :year, :week, :scope, :day_of_week, :amount, :created_at, :updated_at)`

func (repo *budgetRepository) CreateConfig(cfg budget.Config) (budget.Config, error) {
	if _, err := repo.db.NamedExec(budgetInsert, cfg); err != nil {
		return budget.Config{}, errors.Wrap(err, "creating budget config")
	}
	return cfg, nil
}

func (repo *budgetRepository) CreateConfigs(cfgs []budget.Config) ([]budget.Config, error) {
	if len(cfgs) == 0 {
		return nil, nil
	}
	tx, err := repo.db.Beginx()
	if err != nil {
		return nil, errors.Wrap(err, "creating budget configs")
	}
	for _, cfg := range cfgs {
		if _, err = tx.NamedExec(budgetInsert, cfg); err != nil {
			_ = tx.Rollback()
			return nil, errors.Wrap(err, "creating budget configs")
		}
	}
	if err = tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "creating budget configs")
	}
	return cfgs, nil
}

func (repo *budgetRepository) QueryAllConfigs() ([]budget.Config, error) {
	var cfgs []budget.Config
	if err := repo.db.Select(&cfgs, `SELECT `+budgetCols+` FROM budget_config ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying budget configs")
	}
	return cfgs, nil
}

func (repo *budgetRepository) GetConfigByID(id string) (budget.Config, error) {
	var cfg budget.Config
	err := repo.db.Get(&cfg, `SELECT `+budgetCols+` FROM budget_config WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return budget.Config{}, budget.ErrNotFound
	}
	if err != nil {
		return budget.Config{}, errors.Wrap(err, "getting budget config")
	}
	return cfg, nil
}

func (repo *budgetRepository) UpdateConfig(cfg budget.Config) (budget.Config, error) {
	res, err := repo.db.NamedExec(
		`UPDATE budget_config SET scope = :scope, day_of_week = :day_of_week, amount = :amount, updated_at = :updated_at
		WHERE id = :id`,
		cfg,
	)
	if err != nil {
		return budget.Config{}, errors.Wrap(err, "updating budget config")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return budget.Config{}, budget.ErrNotFound
	}
	return cfg, nil
}

func (repo *budgetRepository) DeleteConfigsByID(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := repo.db.Exec(`DELETE FROM budget_config WHERE id = ANY($1)`, pq.StringArray(ids))
	return errors.Wrap(err, "deleting budget configs")
}
