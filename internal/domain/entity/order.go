package entity

import (
	"fmt"
	"time"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
	OrderStatusRefunded  = "refunded"
)

const (
	PaymentMethodBankTransfer   = "bank_transfer"
	PaymentMethodCashOnDelivery = "cash_on_delivery"
	PaymentMethodCard           = "card"
	PaymentMethodCheque         = "cheque"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// statusRank orders the forward progression of an order. Terminal states
// (cancelled, refunded) sit outside the progression.
var statusRank = map[string]int{
	OrderStatusPending:   0,
	OrderStatusConfirmed: 1,
	OrderStatusPreparing: 2,
	OrderStatusShipped:   3,
	OrderStatusDelivered: 4,
}

// CanTransition reports whether an order may move from one status to another.
// Suppliers advance orders forward one or more steps; only admins may set
// cancelled or refunded through the status endpoint.
func CanTransition(from, to string, isAdmin bool) bool {
	if from == OrderStatusCancelled || from == OrderStatusRefunded {
		return false
	}
	if to == OrderStatusCancelled {
		return isAdmin && from != OrderStatusDelivered
	}
	if to == OrderStatusRefunded {
		return isAdmin && (from == OrderStatusCancelled || from == OrderStatusDelivered)
	}
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

// FormatOrderNumber renders the human-facing order number for a counter value.
func FormatOrderNumber(n int64) string {
	return fmt.Sprintf("CMD%06d", n)
}

type OrderItem struct {
	ProductID  string  `json:"product_id" firestore:"productId"`
	SupplierID string  `json:"supplier_id" firestore:"supplierId"`
	Name       string  `json:"name" firestore:"name"`   // snapshot at order time
	Price      float64 `json:"price" firestore:"price"` // snapshot at order time
	Quantity   int     `json:"quantity" firestore:"quantity"`
	Subtotal   float64 `json:"subtotal" firestore:"subtotal"`
}

type OrderAmounts struct {
	Subtotal    float64 `json:"subtotal" firestore:"subtotal"`
	ShippingFee float64 `json:"shipping_fee" firestore:"shippingFee"`
	Commission  float64 `json:"commission" firestore:"commission"`
	Total       float64 `json:"total" firestore:"total"`
}

type ShippingAddress struct {
	Name       string `json:"name" firestore:"name"`
	Phone      string `json:"phone" firestore:"phone"`
	Street     string `json:"street" firestore:"street"`
	City       string `json:"city" firestore:"city"`
	PostalCode string `json:"postal_code,omitempty" firestore:"postalCode,omitempty"`
	Extra      string `json:"extra,omitempty" firestore:"extra,omitempty"`
}

type Payment struct {
	Method    string     `json:"method" firestore:"method"`
	Status    string     `json:"status" firestore:"status"`
	PaidAt    *time.Time `json:"paid_at,omitempty" firestore:"paidAt,omitempty"`
	Reference string     `json:"reference,omitempty" firestore:"reference,omitempty"`
}

type StatusEntry struct {
	Status      string    `json:"status" firestore:"status"`
	Description string    `json:"description" firestore:"description"`
	At          time.Time `json:"at" firestore:"at"`
}

type OrderNotes struct {
	Buyer    string `json:"buyer,omitempty" firestore:"buyer,omitempty"`
	Supplier string `json:"supplier,omitempty" firestore:"supplier,omitempty"`
	Admin    string `json:"admin,omitempty" firestore:"admin,omitempty"`
}

type OrderRating struct {
	Score   int       `json:"score" firestore:"score"`
	Comment string    `json:"comment,omitempty" firestore:"comment,omitempty"`
	RatedAt time.Time `json:"rated_at" firestore:"ratedAt"`
}

type Order struct {
	ID     string `json:"id" firestore:"id"`
	Number string `json:"number" firestore:"number"`

	BuyerID string      `json:"buyer_id" firestore:"buyerId"`
	Items   []OrderItem `json:"items" firestore:"items"`

	// SupplierIDs and ProductIDs duplicate the distinct ids of the line items
	// so supplier-scoped listings and purchased-product checks can use
	// array-contains queries.
	SupplierIDs []string `json:"-" firestore:"supplierIds"`
	ProductIDs  []string `json:"-" firestore:"productIds"`

	Amounts         OrderAmounts    `json:"amounts" firestore:"amounts"`
	ShippingAddress ShippingAddress `json:"shipping_address" firestore:"shippingAddress"`
	Status          string          `json:"status" firestore:"status"`
	Payment         Payment         `json:"payment" firestore:"payment"`
	History         []StatusEntry   `json:"history" firestore:"history"`
	Notes           OrderNotes      `json:"notes,omitempty" firestore:"notes,omitempty"`
	Rating          *OrderRating    `json:"rating,omitempty" firestore:"rating,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// InvolvesSupplier reports whether any line item belongs to the supplier.
func (o *Order) InvolvesSupplier(supplierID string) bool {
	for _, item := range o.Items {
		if item.SupplierID == supplierID {
			return true
		}
	}
	return false
}
