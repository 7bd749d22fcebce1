package schedule

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/drodriguezm/tablero/core"
)

var (
	ErrActivityNotFound   = errors.New("schedule activity not found")
	ErrAssignmentNotFound = errors.New("schedule assignment not found")
	ErrConfigNotFound     = errors.New("branch schedule config not found")
)

type (
	Repository interface {
		// activities
		CreateActivity(act Activity) (Activity, error)
		QueryAllActivities() ([]Activity, error)
		GetActivityByID(id string) (Activity, error)
		UpdateActivity(act Activity) (Activity, error)
		DeleteActivitiesByID(ids ...string) error

		// assignments; upserted on the (advisor, weekday, start) unique key
		UpsertAssignment(a Assignment) (Assignment, error)
		GetAssignment(advisorID string, day core.Weekday, start string) (Assignment, error)
		QueryAllAssignments() ([]Assignment, error)
		DeleteAssignment(advisorID string, day core.Weekday, start string) error

		// branch hours
		GetBranchConfig() (BranchConfig, error)
		SaveBranchConfig(bc BranchConfig) (BranchConfig, error)

		// compliance marks; upserted on the (advisor, date, slot) unique key
		UpsertComplianceMark(m ComplianceMark) (ComplianceMark, error)
		QueryAllComplianceMarks() ([]ComplianceMark, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Activities

func (svc *Service) CreateActivity(na NewActivity) (Activity, error) {
	now := time.Now().UTC()
	act := Activity{
		ID:          uuid.New().String(),
		Name:        na.Name,
		Color:       na.Color,
		IsProtected: na.IsProtected,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateActivity(act)
}

func (svc *Service) QueryActivities() ([]Activity, error) {
	return svc.repo.QueryAllActivities()
}

func (svc *Service) GetActivity(id string) (Activity, error) {
	return svc.repo.GetActivityByID(id)
}

func (svc *Service) UpdateActivity(id string, ua UpdateActivity) (Activity, error) {
	orig, err := svc.repo.GetActivityByID(id)
	if err != nil {
		return Activity{}, err
	}
	orig.Name = ua.Name
	orig.Color = ua.Color
	if ua.IsProtected != nil {
		orig.IsProtected = *ua.IsProtected
	}
	orig.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateActivity(orig)
}

func (svc *Service) DeleteActivities(ids ...string) error {
	return svc.repo.DeleteActivitiesByID(ids...)
}

// Assignments

// Assign upserts exactly one assignment keyed by (advisor, weekday, start).
// Assigning the activity already present at the slot is a no-op.
func (svc *Service) Assign(as AssignSlot) (Assignment, error) {
	if existing, err := svc.repo.GetAssignment(as.AdvisorID, as.DayOfWeek, as.StartTime); err == nil {
		if existing.ActivityID == as.ActivityID {
			return existing, nil
		}
	} else if err != ErrAssignmentNotFound {
		return Assignment{}, err
	}

	now := time.Now().UTC()
	return svc.repo.UpsertAssignment(Assignment{
		ID:         uuid.New().String(),
		AdvisorID:  as.AdvisorID,
		DayOfWeek:  as.DayOfWeek,
		StartTime:  as.StartTime,
		ActivityID: as.ActivityID,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

// Erase deletes any assignment at the slot; an empty slot is a no-op.
func (svc *Service) Erase(es EraseSlot) error {
	if _, err := svc.repo.GetAssignment(es.AdvisorID, es.DayOfWeek, es.StartTime); err != nil {
		if err == ErrAssignmentNotFound {
			return nil
		}
		return err
	}
	return svc.repo.DeleteAssignment(es.AdvisorID, es.DayOfWeek, es.StartTime)
}

func (svc *Service) QueryAssignments() ([]Assignment, error) {
	return svc.repo.QueryAllAssignments()
}

// Branch hours

// BranchConfig returns the stored configuration, or the fail-open default
// (fully-open seven-day week) when none exists.
func (svc *Service) BranchConfig() (BranchConfig, error) {
	bc, err := svc.repo.GetBranchConfig()
	if err == ErrConfigNotFound {
		return DefaultBranchConfig(), nil
	}
	return bc, err
}

func (svc *Service) SaveBranchConfig(bc BranchConfig) (BranchConfig, error) {
	return svc.repo.SaveBranchConfig(bc)
}

// Compliance

func (svc *Service) ToggleCompliance(tc ToggleCompliance) (ComplianceMark, error) {
	now := time.Now().UTC()
	return svc.repo.UpsertComplianceMark(ComplianceMark{
		ID:        uuid.New().String(),
		AdvisorID: tc.AdvisorID,
		Date:      tc.Date,
		TimeSlot:  tc.TimeSlot,
		Completed: tc.Completed,
		Note:      tc.Note,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (svc *Service) QueryComplianceMarks() ([]ComplianceMark, error) {
	return svc.repo.QueryAllComplianceMarks()
}
