package advisor

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("advisor not found")

type (
	Repository interface {
		CreateAdvisor(adv Advisor) (Advisor, error)
		QueryAllAdvisors() ([]Advisor, error)
		GetAdvisorByID(id string) (Advisor, error)
		UpdateAdvisor(adv Advisor) (Advisor, error)
		DeleteAdvisorsByID(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(na NewAdvisor) (Advisor, error) {
	now := time.Now().UTC()
	adv := Advisor{
		ID:         uuid.New().String(),
		Name:       na.Name,
		Position:   na.Position,
		EmployeeNo: na.EmployeeNo,
		PhotoURL:   na.PhotoURL,
		BirthDate:  na.BirthDate,
		HireDate:   na.HireDate,
		Shift:      na.Shift,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return svc.repo.CreateAdvisor(adv)
}

func (svc *Service) QueryAll() ([]Advisor, error) {
	return svc.repo.QueryAllAdvisors()
}

func (svc *Service) GetByID(id string) (Advisor, error) {
	return svc.repo.GetAdvisorByID(id)
}

func (svc *Service) Update(id string, ua UpdateAdvisor) (Advisor, error) {
	adv := Advisor{
		ID:         id,
		Name:       ua.Name,
		Position:   ua.Position,
		EmployeeNo: ua.EmployeeNo,
		PhotoURL:   ua.PhotoURL,
		BirthDate:  ua.BirthDate,
		HireDate:   ua.HireDate,
		Shift:      ua.Shift,
		UpdatedAt:  time.Now().UTC(),
	}
	return svc.repo.UpdateAdvisor(adv)
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteAdvisorsByID(ids...)
}
