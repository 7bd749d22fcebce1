package indicator

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("indicator not found")

type (
	Repository interface {
		CreateIndicator(ind Indicator) (Indicator, error)
		QueryAllIndicators() ([]Indicator, error)
		GetIndicatorByID(id string) (Indicator, error)
		UpdateIndicator(ind Indicator) (Indicator, error)
		DeleteIndicatorsByID(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ni NewIndicator) (Indicator, error) {
	now := time.Now().UTC()
	ind := Indicator{
		ID:            uuid.New().String(),
		Name:          ni.Name,
		Applicability: ni.Applicability,
		AppliesTo:     ni.AppliesTo,
		Unit:          ni.Unit,
		LoanWeight:    ni.LoanWeight,
		AffilWeight:   ni.AffilWeight,
		IsCumulative:  ni.IsCumulative,
		IsAverage:     ni.IsAverage,
		Group:         ni.Group,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return svc.repo.CreateIndicator(ind)
}

func (svc *Service) QueryAll() ([]Indicator, error) {
	return svc.repo.QueryAllIndicators()
}

func (svc *Service) GetByID(id string) (Indicator, error) {
	return svc.repo.GetIndicatorByID(id)
}

func (svc *Service) Update(id string, ui UpdateIndicator) (Indicator, error) {
	orig, err := svc.repo.GetIndicatorByID(id)
	if err != nil {
		return Indicator{}, err
	}

	orig.Name = ui.Name
	orig.Applicability = ui.Applicability
	if ui.AppliesTo != nil {
		orig.AppliesTo = ui.AppliesTo
	}
	orig.Unit = ui.Unit
	if ui.LoanWeight != nil {
		orig.LoanWeight = *ui.LoanWeight
	}
	if ui.AffilWeight != nil {
		orig.AffilWeight = *ui.AffilWeight
	}
	if ui.IsCumulative != nil {
		orig.IsCumulative = *ui.IsCumulative
	}
	if ui.IsAverage != nil {
		orig.IsAverage = *ui.IsAverage
	}
	if ui.Group != "" {
		orig.Group = ui.Group
	}
	orig.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateIndicator(orig)
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteIndicatorsByID(ids...)
}
