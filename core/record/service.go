package record

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("record not found")

type (
	Repository interface {
		CreateData(d Data) (Data, error)
		CreateDataBulk(ds []Data) ([]Data, error)
		QueryAllData() ([]Data, error)
		GetDataByID(id string) (Data, error)
		UpdateData(d Data) (Data, error)
		DeleteDataByID(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(nd NewData) (Data, error) {
	return svc.repo.CreateData(newRow(nd))
}

// CreateBulk saves several records in one write; bulk writes accept arrays.
func (svc *Service) CreateBulk(nds []NewData) ([]Data, error) {
	rows := make([]Data, 0, len(nds))
	for _, nd := range nds {
		rows = append(rows, newRow(nd))
	}
	return svc.repo.CreateDataBulk(rows)
}

func (svc *Service) QueryAll() ([]Data, error) {
	return svc.repo.QueryAllData()
}

func (svc *Service) GetByID(id string) (Data, error) {
	return svc.repo.GetDataByID(id)
}

func (svc *Service) Update(id string, ud UpdateData) (Data, error) {
	orig, err := svc.repo.GetDataByID(id)
	if err != nil {
		return Data{}, err
	}
	orig.Values = ud.Values
	orig.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateData(orig)
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteDataByID(ids...)
}

func newRow(nd NewData) Data {
	now := time.Now().UTC()
	return Data{
		ID:        uuid.New().String(),
		Type:      nd.Type,
		AdvisorID: nd.AdvisorID,
		Year:      nd.Year,
		Week:      nd.Week,
		Frequency: nd.Frequency,
		DayOfWeek: nd.DayOfWeek,
		Values:    nd.Values,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
