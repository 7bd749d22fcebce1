package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/drodriguezm/tablero/core/indicator"
)

type indicatorRepository struct {
	db *sqlx.DB
}

var _ indicator.Repository = (*indicatorRepository)(nil) // interface compliance check

func NewIndicatorRepository(db *sqlx.DB) indicator.Repository {
	return &indicatorRepository{db: db}
}

// indicatorRow adapts the applies_to array column for sqlx scanning.
type indicatorRow struct {
	indicator.Indicator
	DBAppliesTo pq.StringArray `db:"applies_to"`
}

func (r indicatorRow) toIndicator() indicator.Indicator {
	ind := r.Indicator
	ind.AppliesTo = r.DBAppliesTo
	return ind
}

const indicatorCols = `id, name, applicability, applies_to, unit, loan_weight, affil_weight, is_cumulative, is_average, grp, created_at, updated_at`

func (repo *indicatorRepository) CreateIndicator(ind indicator.Indicator) (indicator.Indicator, error) {
	_, err := repo.db.Exec(
		`INSERT INTO indicator (`+indicatorCols+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		ind.ID, ind.Name, ind.Applicability, pq.StringArray(ind.AppliesTo), ind.Unit,
		ind.LoanWeight, ind.AffilWeight, ind.IsCumulative, ind.IsAverage, ind.Group,
		ind.CreatedAt, ind.UpdatedAt,
	)
	if err != nil {
		return indicator.Indicator{}, errors.Wrap(err, "creating indicator")
	}
	return ind, nil
}

func (repo *indicatorRepository) QueryAllIndicators() ([]indicator.Indicator, error) {
	var rows []indicatorRow
	if err := repo.db.Select(&rows, `SELECT `+indicatorCols+` FROM indicator ORDER BY name`); err != nil {
		return nil, errors.Wrap(err, "querying indicators")
	}
	inds := make([]indicator.Indicator, 0, len(rows))
	for _, r := range rows {
		inds = append(inds, r.toIndicator())
	}
	return inds, nil
}

func (repo *indicatorRepository) GetIndicatorByID(id string) (indicator.Indicator, error) {
	var row indicatorRow
	err := repo.db.Get(&row, `SELECT `+indicatorCols+` FROM indicator WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return indicator.Indicator{}, indicator.ErrNotFound
	}
	if err != nil {
		return indicator.Indicator{}, errors.Wrap(err, "getting indicator")
	}
	return row.toIndicator(), nil
}

func (repo *indicatorRepository) UpdateIndicator(ind indicator.Indicator) (indicator.Indicator, error) {
	res, err := repo.db.Exec(
		`UPDATE indicator SET name = $2, applicability = $3, applies_to = $4, unit = $5, loan_weight = $6,
			affil_weight = $7, is_cumulative = $8, is_average = $9, grp = $10, updated_at = $11
		WHERE id = $1`,
		ind.ID, ind.Name, ind.Applicability, pq.StringArray(ind.AppliesTo), ind.Unit,
		ind.LoanWeight, ind.AffilWeight, ind.IsCumulative, ind.IsAverage, ind.Group, ind.UpdatedAt,
	)
	if err != nil {
		return indicator.Indicator{}, errors.Wrap(err, "updating indicator")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return indicator.Indicator{}, indicator.ErrNotFound
	}
	return ind, nil
}

func (repo *indicatorRepository) DeleteIndicatorsByID(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := repo.db.Exec(`DELETE FROM indicator WHERE id = ANY($1)`, pq.StringArray(ids))
	return errors.Wrap(err, "deleting indicators")
}
