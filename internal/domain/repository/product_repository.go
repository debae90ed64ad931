package repository

import (
	"context"

	"dentmarket/internal/domain/entity"
)

// ProductFilter narrows a catalog listing.
type ProductFilter struct {
	Category   string
	MinPrice   float64
	MaxPrice   float64
	Search     string
	SupplierID string
	ActiveOnly bool
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, int64, error)
	ListBySupplierID(ctx context.Context, supplierID string) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	DeactivateBySupplierID(ctx context.Context, supplierID string) error
}
