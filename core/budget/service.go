package budget

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("budget config not found")

type (
	Repository interface {
		CreateConfig(cfg Config) (Config, error)
		CreateConfigs(cfgs []Config) ([]Config, error)
		QueryAllConfigs() ([]Config, error)
		GetConfigByID(id string) (Config, error)
		UpdateConfig(cfg Config) (Config, error)
		DeleteConfigsByID(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(nc NewConfig) (Config, error) {
	return svc.repo.CreateConfig(newRow(nc))
}

// CreateBulk saves several budget rows in one write; bulk writes accept arrays.
func (svc *Service) CreateBulk(ncs []NewConfig) ([]Config, error) {
	rows := make([]Config, 0, len(ncs))
	for _, nc := range ncs {
		rows = append(rows, newRow(nc))
	}
	return svc.repo.CreateConfigs(rows)
}

func (svc *Service) QueryAll() ([]Config, error) {
	return svc.repo.QueryAllConfigs()
}

func (svc *Service) GetByID(id string) (Config, error) {
	return svc.repo.GetConfigByID(id)
}

func (svc *Service) Update(id string, uc UpdateConfig) (Config, error) {
	orig, err := svc.repo.GetConfigByID(id)
	if err != nil {
		return Config{}, err
	}
	if uc.Amount != nil {
		orig.Amount = *uc.Amount
	}
	if uc.Scope != "" {
		orig.Scope = uc.Scope
	}
	if uc.DayOfWeek != nil {
		orig.DayOfWeek = *uc.DayOfWeek
	}
	orig.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateConfig(orig)
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteConfigsByID(ids...)
}

func newRow(nc NewConfig) Config {
	now := time.Now().UTC()
	return Config{
		ID:          uuid.New().String(),
		IndicatorID: nc.IndicatorID,
		TargetID:    nc.TargetID,
		Year:        nc.Year,
		Week:        nc.Week,
		Scope:       nc.Scope,
		DayOfWeek:   nc.DayOfWeek,
		Amount:      nc.Amount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
