package hr

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("hr event not found")

type (
	Repository interface {
		CreateEvent(ev Event) (Event, error)
		QueryAllEvents() ([]Event, error)
		GetEventByID(id string) (Event, error)
		DeleteEventsByID(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ne NewEvent) (Event, error) {
	now := time.Now().UTC()
	ev := Event{
		ID:           uuid.New().String(),
		AdvisorID:    ne.AdvisorID,
		Type:         ne.Type,
		StartDate:    ne.StartDate,
		EndDate:      ne.EndDate,
		RecurringDay: ne.RecurringDay,
		Note:         ne.Note,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return svc.repo.CreateEvent(ev)
}

func (svc *Service) QueryAll() ([]Event, error) {
	return svc.repo.QueryAllEvents()
}

func (svc *Service) GetByID(id string) (Event, error) {
	return svc.repo.GetEventByID(id)
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteEventsByID(ids...)
}

// BlockedAdvisors returns the set of advisor ids with a blocking event on date.
func BlockedAdvisors(events []Event, date time.Time) map[string]bool {
	blocked := make(map[string]bool)
	for _, ev := range events {
		if ev.BlocksOn(date) {
			blocked[ev.AdvisorID] = true
		}
	}
	return blocked
}
