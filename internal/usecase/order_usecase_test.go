package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dentmarket/internal/domain/entity"
	"dentmarket/pkg/errors"
)

func seedProduct(t *testing.T, repo *fakeProductRepo, supplierID string, price float64, stock int) *entity.Product {
	t.Helper()
	product := &entity.Product{
		Name:       "Turbine LED",
		Category:   "Instruments",
		Price:      price,
		Currency:   "MAD",
		Stock:      entity.Stock{Quantity: stock, Unit: "unité"},
		SupplierID: supplierID,
		Shipping:   entity.Shipping{Type: "standard", Fee: 50},
		Active:     true,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), product))
	return product
}

func TestPlaceOrder(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo(products, 5)
	notifier := newFakeNotifier()
	uc := NewOrderUseCase(orders, products, notifier)

	product := seedProduct(t, products, "supplier-1", 1200, 10)

	order, err := uc.Place(context.Background(), "buyer-1", PlaceOrderInput{
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 3}},
		ShippingAddress: entity.ShippingAddress{Name: "Dr Benali", Phone: "0600", Street: "Rue 1", City: "Casablanca"},
		PaymentMethod:   entity.PaymentMethodBankTransfer,
	})
	require.NoError(t, err)

	assert.Equal(t, "CMD000001", order.Number)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, 3600.0, order.Amounts.Subtotal)
	assert.Equal(t, 50.0, order.Amounts.ShippingFee)
	assert.Equal(t, 180.0, order.Amounts.Commission)
	assert.Equal(t, order.Amounts.Subtotal+order.Amounts.ShippingFee, order.Amounts.Total)
	require.Len(t, order.History, 1)
	assert.Equal(t, entity.OrderStatusPending, order.History[0].Status)

	// stock decremented
	updated, err := products.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Stock.Quantity)
	assert.Equal(t, 3, updated.SalesCount)

	// supplier notified
	assert.Contains(t, notifier.events["supplier-1"], "new_order")
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo(products, 5)
	uc := NewOrderUseCase(orders, products, newFakeNotifier())

	product := seedProduct(t, products, "supplier-1", 1200, 2)

	_, err := uc.Place(context.Background(), "buyer-1", PlaceOrderInput{
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 5}},
		ShippingAddress: entity.ShippingAddress{Name: "Dr Benali", Phone: "0600", Street: "Rue 1", City: "Casablanca"},
		PaymentMethod:   entity.PaymentMethodCard,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	// stock untouched after the rejection
	updated, err := products.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Stock.Quantity)
}

func TestPlaceOrderOwnProduct(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo(products, 5)
	uc := NewOrderUseCase(orders, products, newFakeNotifier())

	product := seedProduct(t, products, "supplier-1", 1200, 10)

	_, err := uc.Place(context.Background(), "supplier-1", PlaceOrderInput{
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: entity.ShippingAddress{Name: "X", Phone: "0600", Street: "Rue 1", City: "Rabat"},
		PaymentMethod:   entity.PaymentMethodCard,
	})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestCancelOrderRestoresStock(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo(products, 5)
	uc := NewOrderUseCase(orders, products, newFakeNotifier())

	product := seedProduct(t, products, "supplier-1", 800, 5)

	order, err := uc.Place(context.Background(), "buyer-1", PlaceOrderInput{
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 2}},
		ShippingAddress: entity.ShippingAddress{Name: "Dr Benali", Phone: "0600", Street: "Rue 1", City: "Casablanca"},
		PaymentMethod:   entity.PaymentMethodCashOnDelivery,
	})
	require.NoError(t, err)

	cancelled, err := uc.Cancel(context.Background(), "buyer-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, cancelled.Status)

	updated, err := products.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Stock.Quantity)
	assert.Equal(t, 0, updated.SalesCount)
}

func TestCancelShippedOrderRejected(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo(products, 5)
	uc := NewOrderUseCase(orders, products, newFakeNotifier())

	product := seedProduct(t, products, "supplier-1", 800, 5)

	order, err := uc.Place(context.Background(), "buyer-1", PlaceOrderInput{
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: entity.ShippingAddress{Name: "Dr Benali", Phone: "0600", Street: "Rue 1", City: "Casablanca"},
		PaymentMethod:   entity.PaymentMethodCard,
	})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), "supplier-1", entity.RoleSupplier, order.ID, entity.OrderStatusShipped, "")
	require.NoError(t, err)

	_, err = uc.Cancel(context.Background(), "buyer-1", order.ID)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestCancelRequiresOwner(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo(products, 5)
	uc := NewOrderUseCase(orders, products, newFakeNotifier())

	product := seedProduct(t, products, "supplier-1", 800, 5)

	order, err := uc.Place(context.Background(), "buyer-1", PlaceOrderInput{
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: entity.ShippingAddress{Name: "Dr Benali", Phone: "0600", Street: "Rue 1", City: "Casablanca"},
		PaymentMethod:   entity.PaymentMethodCard,
	})
	require.NoError(t, err)

	_, err = uc.Cancel(context.Background(), "buyer-2", order.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestUpdateStatusForwardOnly(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo(products, 5)
	uc := NewOrderUseCase(orders, products, newFakeNotifier())

	product := seedProduct(t, products, "supplier-1", 800, 5)

	order, err := uc.Place(context.Background(), "buyer-1", PlaceOrderInput{
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: entity.ShippingAddress{Name: "Dr Benali", Phone: "0600", Street: "Rue 1", City: "Casablanca"},
		PaymentMethod:   entity.PaymentMethodCard,
	})
	require.NoError(t, err)

	updated, err := uc.UpdateStatus(context.Background(), "supplier-1", entity.RoleSupplier, order.ID, entity.OrderStatusConfirmed, "Confirmée")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConfirmed, updated.Status)
	assert.Len(t, updated.History, 2)

	// moving backwards is rejected
	_, err = uc.UpdateStatus(context.Background(), "supplier-1", entity.RoleSupplier, order.ID, entity.OrderStatusPending, "")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	// suppliers cannot cancel through the status endpoint
	_, err = uc.UpdateStatus(context.Background(), "supplier-1", entity.RoleSupplier, order.ID, entity.OrderStatusCancelled, "")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	// an uninvolved supplier is rejected
	_, err = uc.UpdateStatus(context.Background(), "supplier-2", entity.RoleSupplier, order.ID, entity.OrderStatusPreparing, "")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestRateOrder(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo(products, 5)
	uc := NewOrderUseCase(orders, products, newFakeNotifier())

	product := seedProduct(t, products, "supplier-1", 800, 5)

	order, err := uc.Place(context.Background(), "buyer-1", PlaceOrderInput{
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: entity.ShippingAddress{Name: "Dr Benali", Phone: "0600", Street: "Rue 1", City: "Casablanca"},
		PaymentMethod:   entity.PaymentMethodCard,
	})
	require.NoError(t, err)

	// not yet delivered
	_, err = uc.Rate(context.Background(), "buyer-1", order.ID, 5, "Parfait")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	for _, status := range []string{entity.OrderStatusShipped, entity.OrderStatusDelivered} {
		_, err = uc.UpdateStatus(context.Background(), "supplier-1", entity.RoleSupplier, order.ID, status, "")
		require.NoError(t, err)
	}

	rated, err := uc.Rate(context.Background(), "buyer-1", order.ID, 5, "Parfait")
	require.NoError(t, err)
	require.NotNil(t, rated.Rating)
	assert.Equal(t, 5, rated.Rating.Score)

	// second rating rejected
	_, err = uc.Rate(context.Background(), "buyer-1", order.ID, 4, "")
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestRateOrderStaleSnapshotRejected(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo(products, 5)
	uc := NewOrderUseCase(orders, products, newFakeNotifier())

	product := seedProduct(t, products, "supplier-1", 800, 5)

	order, err := uc.Place(context.Background(), "buyer-1", PlaceOrderInput{
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: entity.ShippingAddress{Name: "Dr Benali", Phone: "0600", Street: "Rue 1", City: "Casablanca"},
		PaymentMethod:   entity.PaymentMethodCard,
	})
	require.NoError(t, err)

	for _, status := range []string{entity.OrderStatusShipped, entity.OrderStatusDelivered} {
		_, err = uc.UpdateStatus(context.Background(), "supplier-1", entity.RoleSupplier, order.ID, status, "")
		require.NoError(t, err)
	}

	// A copy read before the first rating landed still has Rating nil.
	stale, err := orders.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Nil(t, stale.Rating)

	_, err = uc.Rate(context.Background(), "buyer-1", order.ID, 5, "")
	require.NoError(t, err)

	err = orders.SaveRating(context.Background(), stale, &entity.OrderRating{Score: 1, RatedAt: time.Now()})
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestListOrdersByRole(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo(products, 5)
	uc := NewOrderUseCase(orders, products, newFakeNotifier())

	p1 := seedProduct(t, products, "supplier-1", 100, 10)
	p2 := seedProduct(t, products, "supplier-2", 200, 10)

	for buyer, productID := range map[string]string{"buyer-1": p1.ID, "buyer-2": p2.ID} {
		_, err := uc.Place(context.Background(), buyer, PlaceOrderInput{
			Items:           []OrderItemInput{{ProductID: productID, Quantity: 1}},
			ShippingAddress: entity.ShippingAddress{Name: "X", Phone: "0600", Street: "Rue 1", City: "Fès"},
			PaymentMethod:   entity.PaymentMethodCard,
		})
		require.NoError(t, err)
	}

	buyerOrders, err := uc.List(context.Background(), "buyer-1", entity.RoleBuyer)
	require.NoError(t, err)
	assert.Len(t, buyerOrders, 1)

	supplierOrders, err := uc.List(context.Background(), "supplier-2", entity.RoleSupplier)
	require.NoError(t, err)
	assert.Len(t, supplierOrders, 1)

	allOrders, err := uc.List(context.Background(), "admin-1", entity.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, allOrders, 2)
}

func TestGetOrderAccessControl(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo(products, 5)
	uc := NewOrderUseCase(orders, products, newFakeNotifier())

	product := seedProduct(t, products, "supplier-1", 100, 10)

	order, err := uc.Place(context.Background(), "buyer-1", PlaceOrderInput{
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: entity.ShippingAddress{Name: "X", Phone: "0600", Street: "Rue 1", City: "Fès"},
		PaymentMethod:   entity.PaymentMethodCard,
	})
	require.NoError(t, err)

	_, err = uc.GetByID(context.Background(), "buyer-1", entity.RoleBuyer, order.ID)
	assert.NoError(t, err)

	_, err = uc.GetByID(context.Background(), "supplier-1", entity.RoleSupplier, order.ID)
	assert.NoError(t, err)

	_, err = uc.GetByID(context.Background(), "buyer-2", entity.RoleBuyer, order.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}
