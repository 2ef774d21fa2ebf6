package sale

import (
	"context"
	"errors"

	"go-marketing/pkg/filter"
)

type SaleService interface {
	CreateSale(ctx context.Context, sale *Sale) error
	ListSales(ctx context.Context) ([]Sale, error)
	ListCustomerSales(ctx context.Context, customerID string) ([]Sale, error)
	AllRecords(ctx context.Context) ([]filter.SaleRecord, error)
}

type SaleServiceImpl struct {
	Repo SaleRepository
}

func NewSaleService(repo SaleRepository) SaleService {
	return &SaleServiceImpl{Repo: repo}
}

func (s *SaleServiceImpl) CreateSale(ctx context.Context, sale *Sale) error {
	if sale.CustomerID == "" {
		return errors.New("customer_id is required")
	}
	return s.Repo.Create(ctx, sale)
}

func (s *SaleServiceImpl) ListSales(ctx context.Context) ([]Sale, error) {
	return s.Repo.FindAll(ctx)
}

func (s *SaleServiceImpl) ListCustomerSales(ctx context.Context, customerID string) ([]Sale, error) {
	return s.Repo.FindByCustomer(ctx, customerID)
}

func (s *SaleServiceImpl) AllRecords(ctx context.Context) ([]filter.SaleRecord, error) {
	sales, err := s.Repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]filter.SaleRecord, len(sales))
	for i, sl := range sales {
		records[i] = sl.ToRecord()
	}
	return records, nil
}
