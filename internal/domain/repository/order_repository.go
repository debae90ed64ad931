package repository

import (
	"context"

	"dentmarket/internal/domain/entity"
)

type OrderRepository interface {
	// Place writes the order atomically: stock checks and decrements, product
	// sales counters, supplier stats and the order-number counter all commit
	// together or not at all. On success the order carries its allocated
	// number and snapshot line items.
	Place(ctx context.Context, order *entity.Order) error

	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListByBuyerID(ctx context.Context, buyerID string) ([]*entity.Order, error)
	ListBySupplierID(ctx context.Context, supplierID string) ([]*entity.Order, error)
	ListAll(ctx context.Context) ([]*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error

	// Cancel restores stock, sales counters and supplier stats atomically and
	// marks the order cancelled.
	Cancel(ctx context.Context, order *entity.Order, description string) error

	// SaveRating stores the post-delivery rating and folds it into the rating
	// aggregates of every product and supplier on the order.
	SaveRating(ctx context.Context, order *entity.Order, rating *entity.OrderRating) error

	CountInFlightBySupplierID(ctx context.Context, supplierID string) (int64, error)

	// HasDeliveredOrderWithProduct reports whether the buyer has a delivered
	// order containing the product. Gate for product reviews.
	HasDeliveredOrderWithProduct(ctx context.Context, buyerID, productID string) (bool, error)
}
