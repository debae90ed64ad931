package usecase

import (
	"context"
	"time"

	"dentmarket/internal/domain/entity"
	"dentmarket/internal/domain/repository"
	"dentmarket/pkg/errors"
)

// Notifier pushes best-effort events to connected users.
type Notifier interface {
	NotifyUser(userID, event string, payload interface{})
}

type OrderUseCase struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	notifier    Notifier
}

func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	notifier Notifier,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		notifier:    notifier,
	}
}

type OrderItemInput struct {
	ProductID string
	Quantity  int
}

type PlaceOrderInput struct {
	Items           []OrderItemInput
	ShippingAddress entity.ShippingAddress
	PaymentMethod   string
	Note            string
}

var paymentMethods = map[string]bool{
	entity.PaymentMethodBankTransfer:   true,
	entity.PaymentMethodCashOnDelivery: true,
	entity.PaymentMethodCard:           true,
	entity.PaymentMethodCheque:         true,
}

func (uc *OrderUseCase) Place(ctx context.Context, buyerID string, input PlaceOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, errors.BadRequest("Order must contain at least one item", nil)
	}
	if !paymentMethods[input.PaymentMethod] {
		return nil, errors.BadRequest("Unknown payment method", nil)
	}

	seen := make(map[string]bool, len(input.Items))
	items := make([]entity.OrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		if in.Quantity <= 0 {
			return nil, errors.BadRequest("Item quantity must be greater than zero", nil)
		}
		if seen[in.ProductID] {
			return nil, errors.BadRequest("Duplicate product in order", nil)
		}
		seen[in.ProductID] = true
		items = append(items, entity.OrderItem{
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
		})
	}

	// One shipment per supplier: charge the highest fee among that supplier's
	// items, then sum across suppliers.
	feePerSupplier := make(map[string]float64)
	for _, item := range items {
		product, err := uc.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, errors.NotFound("Product", err)
		}
		if product.SupplierID == buyerID {
			return nil, errors.BadRequest("You cannot order your own products", nil)
		}
		if product.Shipping.Fee > feePerSupplier[product.SupplierID] {
			feePerSupplier[product.SupplierID] = product.Shipping.Fee
		}
	}
	var shippingFee float64
	for _, fee := range feePerSupplier {
		shippingFee += fee
	}

	now := time.Now()
	order := &entity.Order{
		BuyerID: buyerID,
		Items:   items,
		Amounts: entity.OrderAmounts{ShippingFee: shippingFee},
		ShippingAddress: input.ShippingAddress,
		Status:          entity.OrderStatusPending,
		Payment: entity.Payment{
			Method: input.PaymentMethod,
			Status: entity.PaymentStatusPending,
		},
		History: []entity.StatusEntry{{
			Status:      entity.OrderStatusPending,
			Description: "Order placed",
			At:          now,
		}},
		Notes: entity.OrderNotes{Buyer: input.Note},
	}

	if err := uc.orderRepo.Place(ctx, order); err != nil {
		return nil, err
	}

	for _, supplierID := range order.SupplierIDs {
		uc.notifier.NotifyUser(supplierID, "new_order", order)
	}

	return order, nil
}

func (uc *OrderUseCase) List(ctx context.Context, userID, role string) ([]*entity.Order, error) {
	switch role {
	case entity.RoleAdmin:
		return uc.orderRepo.ListAll(ctx)
	case entity.RoleSupplier:
		return uc.orderRepo.ListBySupplierID(ctx, userID)
	default:
		return uc.orderRepo.ListByBuyerID(ctx, userID)
	}
}

func (uc *OrderUseCase) GetByID(ctx context.Context, userID, role, orderID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if role != entity.RoleAdmin && order.BuyerID != userID && !order.InvolvesSupplier(userID) {
		return nil, errors.Forbidden("You do not have access to this order", nil)
	}

	return order, nil
}

func (uc *OrderUseCase) UpdateStatus(ctx context.Context, userID, role, orderID, newStatus, description string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	isAdmin := role == entity.RoleAdmin
	if !isAdmin && !order.InvolvesSupplier(userID) {
		return nil, errors.Forbidden("Only the supplier of this order can update its status", nil)
	}

	if !entity.CanTransition(order.Status, newStatus, isAdmin) {
		return nil, errors.BadRequest("Invalid status transition", nil)
	}

	now := time.Now()
	order.Status = newStatus
	if newStatus == entity.OrderStatusDelivered && order.Payment.Method == entity.PaymentMethodCashOnDelivery {
		order.Payment.Status = entity.PaymentStatusPaid
		order.Payment.PaidAt = &now
	}
	order.History = append(order.History, entity.StatusEntry{
		Status:      newStatus,
		Description: description,
		At:          now,
	})

	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	uc.notifier.NotifyUser(order.BuyerID, "order_status", order)

	return order, nil
}

func (uc *OrderUseCase) Cancel(ctx context.Context, buyerID, orderID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != buyerID {
		return nil, errors.Forbidden("Only the buyer can cancel this order", nil)
	}

	if err := uc.orderRepo.Cancel(ctx, order, "Cancelled by buyer"); err != nil {
		return nil, err
	}

	for _, supplierID := range order.SupplierIDs {
		uc.notifier.NotifyUser(supplierID, "order_cancelled", order)
	}

	return order, nil
}

func (uc *OrderUseCase) Rate(ctx context.Context, buyerID, orderID string, score int, comment string) (*entity.Order, error) {
	if score < 1 || score > 5 {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}

	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != buyerID {
		return nil, errors.Forbidden("Only the buyer can rate this order", nil)
	}
	if order.Status != entity.OrderStatusDelivered {
		return nil, errors.BadRequest("Only delivered orders can be rated", nil)
	}
	if order.Rating != nil {
		return nil, errors.Conflict("This order has already been rated")
	}

	rating := &entity.OrderRating{
		Score:   score,
		Comment: comment,
		RatedAt: time.Now(),
	}
	if err := uc.orderRepo.SaveRating(ctx, order, rating); err != nil {
		return nil, err
	}

	return order, nil
}
