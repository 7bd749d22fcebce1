package sqlxrepos

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/drodriguezm/tablero/core"
	"github.com/drodriguezm/tablero/core/schedule"
)

type scheduleRepository struct {
	db *sqlx.DB
}

var _ schedule.Repository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(db *sqlx.DB) schedule.Repository {
	return &scheduleRepository{db: db}
}

// Activities

const activityCols = `id, name, color, is_protected, created_at, updated_at`

func (repo *scheduleRepository) CreateActivity(act schedule.Activity) (schedule.Activity, error) {
	_, err := repo.db.NamedExec(
		`INSERT INTO schedule_activity (`+activityCols+`)
		VALUES (:id, :name, :color, :is_protected, :created_at, :updated_at)`,
		act,
	)
	if err != nil {
		return schedule.Activity{}, errors.Wrap(err, "creating activity")
	}
	return act, nil
}

func (repo *scheduleRepository) QueryAllActivities() ([]schedule.Activity, error) {
	var acts []schedule.Activity
	if err := repo.db.Select(&acts, `SELECT `+activityCols+` FROM schedule_activity ORDER BY name`); err != nil {
		return nil, errors.Wrap(err, "querying activities")
	}
	return acts, nil
}

func (repo *scheduleRepository) GetActivityByID(id string) (schedule.Activity, error) {
	var act schedule.Activity
	err := repo.db.Get(&act, `SELECT `+activityCols+` FROM schedule_activity WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return schedule.Activity{}, schedule.ErrActivityNotFound
	}
	if err != nil {
		return schedule.Activity{}, errors.Wrap(err, "getting activity")
	}
	return act, nil
}

func (repo *scheduleRepository) UpdateActivity(act schedule.Activity) (schedule.Activity, error) {
	res, err := repo.db.NamedExec(
		`UPDATE schedule_activity SET name = :name, color = :color, is_protected = :is_protected, updated_at = :updated_at
		WHERE id = :id`,
		act,
	)
	if err != nil {
		return schedule.Activity{}, errors.Wrap(err, "updating activity")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return schedule.Activity{}, schedule.ErrActivityNotFound
	}
	return act, nil
}

func (repo *scheduleRepository) DeleteActivitiesByID(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := repo.db.Exec(`DELETE FROM schedule_activity WHERE id = ANY($1)`, pq.StringArray(ids))
	return errors.Wrap(err, "deleting activities")
}

// Assignments

const assignmentCols = `id, advisor_id, day_of_week, start_time, activity_id, created_at, updated_at`

func (repo *scheduleRepository) UpsertAssignment(a schedule.Assignment) (schedule.Assignment, error) {
	_, err := repo.db.NamedExec(
		`INSERT INTO schedule_assignment (`+assignmentCols+`)
		VALUES (:id, :advisor_id, :day_of_week, :start_time, :activity_id, :created_at, :updated_at)
		ON CONFLICT (advisor_id, day_of_week, start_time)
			DO UPDATE SET activity_id = EXCLUDED.activity_id, updated_at = EXCLUDED.updated_at`,
		a,
	)
	if err != nil {
		return schedule.Assignment{}, errors.Wrap(err, "upserting assignment")
	}
	return repo.GetAssignment(a.AdvisorID, a.DayOfWeek, a.StartTime)
}

func (repo *scheduleRepository) GetAssignment(advisorID string, day core.Weekday, start string) (schedule.Assignment, error) {
	var a schedule.Assignment
	err := repo.db.Get(&a,
		`SELECT `+assignmentCols+` FROM schedule_assignment
		WHERE advisor_id = $1 AND day_of_week = $2 AND start_time = $3`,
		advisorID, int(day), start,
	)
	if err == sql.ErrNoRows {
		return schedule.Assignment{}, schedule.ErrAssignmentNotFound
	}
	if err != nil {
		return schedule.Assignment{}, errors.Wrap(err, "getting assignment")
	}
	return a, nil
}

func (repo *scheduleRepository) QueryAllAssignments() ([]schedule.Assignment, error) {
	var as []schedule.Assignment
	if err := repo.db.Select(&as, `SELECT `+assignmentCols+` FROM schedule_assignment`); err != nil {
		return nil, errors.Wrap(err, "querying assignments")
	}
	return as, nil
}

func (repo *scheduleRepository) DeleteAssignment(advisorID string, day core.Weekday, start string) error {
	res, err := repo.db.Exec(
		`DELETE FROM schedule_assignment WHERE advisor_id = $1 AND day_of_week = $2 AND start_time = $3`,
		advisorID, int(day), start,
	)
	if err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return schedule.ErrAssignmentNotFound
	}
	return nil
}

// Branch hours; one JSONB row

func (repo *scheduleRepository) GetBranchConfig() (schedule.BranchConfig, error) {
	var raw []byte
	err := repo.db.QueryRow(`SELECT config FROM branch_schedule_config WHERE id = 1`).Scan(&raw)
	if err == sql.ErrNoRows {
		return schedule.BranchConfig{}, schedule.ErrConfigNotFound
	}
	if err != nil {
		return schedule.BranchConfig{}, errors.Wrap(err, "getting branch config")
	}
	var bc schedule.BranchConfig
	if err = json.Unmarshal(raw, &bc); err != nil {
		return schedule.BranchConfig{}, errors.Wrap(err, "decoding branch config")
	}
	return bc, nil
}

func (repo *scheduleRepository) SaveBranchConfig(bc schedule.BranchConfig) (schedule.BranchConfig, error) {
	raw, err := json.Marshal(bc)
	if err != nil {
		return schedule.BranchConfig{}, errors.Wrap(err, "encoding branch config")
	}
	_, err = repo.db.Exec(
		`INSERT INTO branch_schedule_config (id, config, updated_at) VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET config = EXCLUDED.config, updated_at = EXCLUDED.updated_at`,
		raw, time.Now().UTC(),
	)
	if err != nil {
		return schedule.BranchConfig{}, errors.Wrap(err, "saving branch config")
	}
	return bc, nil
}

// Compliance

const markCols = `id, advisor_id, date, time_slot, completed, note, created_at, updated_at`

func (repo *scheduleRepository) UpsertComplianceMark(m schedule.ComplianceMark) (schedule.ComplianceMark, error) {
	_, err := repo.db.NamedExec(
		`INSERT INTO fenix_compliance (`+markCols+`)
		VALUES (:id, :advisor_id, :date, :time_slot, :completed, :note, :created_at, :updated_at)
		ON CONFLICT (advisor_id, date, time_slot)
			DO UPDATE SET completed = EXCLUDED.completed, note = EXCLUDED.note, updated_at = EXCLUDED.updated_at`,
		m,
	)
	if err != nil {
		return schedule.ComplianceMark{}, errors.Wrap(err, "upserting compliance mark")
	}
	return m, nil
}

func (repo *scheduleRepository) QueryAllComplianceMarks() ([]schedule.ComplianceMark, error) {
	var ms []schedule.ComplianceMark
	if err := repo.db.Select(&ms, `SELECT `+markCols+` FROM fenix_compliance`); err != nil {
		return nil, errors.Wrap(err, "querying compliance marks")
	}
	return ms, nil
}
