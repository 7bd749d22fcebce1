package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/drodriguezm/tablero/core/hr"
)

type hrRepository struct {
	db *sqlx.DB
}

var _ hr.Repository = (*hrRepository)(nil) // interface compliance check

func NewHRRepository(db *sqlx.DB) hr.Repository {
	return &hrRepository{db: db}
}

const hrCols = `id, advisor_id, type, start_date, end_date, recurring_day, note, created_at, updated_at`

func (repo *hrRepository) CreateEvent(ev hr.Event) (hr.Event, error) {
	_, err := repo.db.NamedExec(
		`INSERT INTO hr_event (`+hrCols+`)
		VALUES (:id, :advisor_id, :type, :start_date, :end_date, :recurring_day, :note, :created_at, :updated_at)`,
		ev,
	)
	if err != nil {
		return hr.Event{}, errors.Wrap(err, "creating hr event")
	}
	return ev, nil
}

func (repo *hrRepository) QueryAllEvents() ([]hr.Event, error) {
	var evs []hr.Event
	if err := repo.db.Select(&evs, `SELECT `+hrCols+` FROM hr_event ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying hr events")
	}
	return evs, nil
}

func (repo *hrRepository) GetEventByID(id string) (hr.Event, error) {
	var ev hr.Event
	err := repo.db.Get(&ev, `SELECT `+hrCols+` FROM hr_event WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return hr.Event{}, hr.ErrNotFound
	}
	if err != nil {
		return hr.Event{}, errors.Wrap(err, "getting hr event")
	}
	return ev, nil
}

func (repo *hrRepository) DeleteEventsByID(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := repo.db.Exec(`DELETE FROM hr_event WHERE id = ANY($1)`, pq.StringArray(ids))
	return errors.Wrap(err, "deleting hr events")
}
