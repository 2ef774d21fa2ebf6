package product

import (
	"context"
	"errors"

	"go-marketing/pkg/filter"
)

type ProductService interface {
	CreateProduct(ctx context.Context, product *Product) error
	ListProducts(ctx context.Context) ([]Product, error)
	AllRecords(ctx context.Context) ([]filter.ProductRecord, error)
}

type ProductServiceImpl struct {
	Repo ProductRepository
}

func NewProductService(repo ProductRepository) ProductService {
	return &ProductServiceImpl{Repo: repo}
}

func (s *ProductServiceImpl) CreateProduct(ctx context.Context, product *Product) error {
	if product.SKU == "" {
		return errors.New("product sku is required")
	}
	return s.Repo.Create(ctx, product)
}

func (s *ProductServiceImpl) ListProducts(ctx context.Context) ([]Product, error) {
	return s.Repo.FindAll(ctx)
}

func (s *ProductServiceImpl) AllRecords(ctx context.Context) ([]filter.ProductRecord, error) {
	products, err := s.Repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]filter.ProductRecord, len(products))
	for i, p := range products {
		records[i] = p.ToRecord()
	}
	return records, nil
}
