package usecase

import (
	"context"
	"time"

	"dentmarket/internal/domain/entity"
	"dentmarket/internal/domain/repository"
	"dentmarket/pkg/errors"
)

type ReviewUseCase struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// Create posts a product review. Only buyers with a delivered order containing
// the product may review it, once per product.
func (uc *ReviewUseCase) Create(ctx context.Context, userID, productID string, rating int, comment string) (*entity.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}

	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, errors.NotFound("Product", err)
	}

	purchased, err := uc.orderRepo.HasDeliveredOrderWithProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, errors.Forbidden("You can only review products you have received", nil)
	}

	if existing, err := uc.reviewRepo.GetByProductAndUser(ctx, productID, userID); err == nil && existing != nil {
		return nil, errors.Conflict("You have already reviewed this product")
	}

	now := time.Now()
	review := &entity.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	count := product.Rating.Count
	product.Rating.Score = (product.Rating.Score*float64(count) + float64(rating)) / float64(count+1)
	product.Rating.Count = count + 1
	product.UpdatedAt = now
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return review, nil
}

func (uc *ReviewUseCase) ListByProduct(ctx context.Context, productID string) ([]*entity.Review, error) {
	if _, err := uc.productRepo.GetByID(ctx, productID); err != nil {
		return nil, errors.NotFound("Product", err)
	}
	return uc.reviewRepo.ListByProductID(ctx, productID)
}
