package repository

import (
	"context"

	"dentmarket/internal/domain/entity"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByProductAndUser(ctx context.Context, productID, userID string) (*entity.Review, error)
	ListByProductID(ctx context.Context, productID string) ([]*entity.Review, error)
}
