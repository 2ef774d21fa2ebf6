package customer

import (
	"context"
	"errors"

	"go-marketing/pkg/filter"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, customer *Customer) error
	GetCustomer(ctx context.Context, id string) (*Customer, error)
	UpdateCustomer(ctx context.Context, customer *Customer) error
	DeleteCustomer(ctx context.Context, id string) error
	ListCustomers(ctx context.Context) ([]Customer, error)
	AllRecords(ctx context.Context) ([]filter.CustomerRecord, error)
}

type CustomerServiceImpl struct {
	Repo CustomerRepository
}

func NewCustomerService(repo CustomerRepository) CustomerService {
	return &CustomerServiceImpl{Repo: repo}
}

func (s *CustomerServiceImpl) CreateCustomer(ctx context.Context, customer *Customer) error {
	if customer.Name == "" {
		return errors.New("customer name is required")
	}
	return s.Repo.Create(ctx, customer)
}

func (s *CustomerServiceImpl) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	return s.Repo.Get(ctx, id)
}

func (s *CustomerServiceImpl) UpdateCustomer(ctx context.Context, customer *Customer) error {
	return s.Repo.Update(ctx, customer)
}

func (s *CustomerServiceImpl) DeleteCustomer(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func (s *CustomerServiceImpl) ListCustomers(ctx context.Context) ([]Customer, error) {
	return s.Repo.FindAll(ctx)
}

// AllRecords materializes the full population in the evaluator's shape.
func (s *CustomerServiceImpl) AllRecords(ctx context.Context) ([]filter.CustomerRecord, error) {
	customers, err := s.Repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]filter.CustomerRecord, len(customers))
	for i, c := range customers {
		records[i] = c.ToRecord()
	}
	return records, nil
}
