package usecase

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"dentmarket/internal/domain/entity"
	"dentmarket/internal/domain/repository"
	"dentmarket/internal/domain/service"
	"dentmarket/pkg/errors"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		r.seq++
		user.ID = fmt.Sprintf("user-%d", r.seq)
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	seq      int
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID == "" {
		r.seq++
		product.ID = fmt.Sprintf("product-%d", r.seq)
	}
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	copied := *product
	return &copied, nil
}

func (r *fakeProductRepo) List(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*entity.Product
	for _, product := range r.products {
		if filter.ActiveOnly && !product.Active {
			continue
		}
		if filter.Category != "" && product.Category != filter.Category {
			continue
		}
		if filter.MinPrice > 0 && product.Price < filter.MinPrice {
			continue
		}
		if filter.MaxPrice > 0 && product.Price > filter.MaxPrice {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(product.Name), strings.ToLower(filter.Search)) {
			continue
		}
		copied := *product
		matched = append(matched, &copied)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (r *fakeProductRepo) ListBySupplierID(ctx context.Context, supplierID string) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, product := range r.products {
		if product.SupplierID == supplierID {
			copied := *product
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) IncrementViews(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product, ok := r.products[id]; ok {
		product.Views++
	}
	return nil
}

func (r *fakeProductRepo) DeactivateBySupplierID(ctx context.Context, supplierID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, product := range r.products {
		if product.SupplierID == supplierID {
			product.Active = false
		}
	}
	return nil
}

// fakeOrderRepo mirrors the transactional placement semantics of the
// Firestore implementation against the in-memory product store.
type fakeOrderRepo struct {
	mu             sync.Mutex
	seq            int
	counter        int64
	commissionRate float64
	orders         map[string]*entity.Order
	products       *fakeProductRepo
}

func newFakeOrderRepo(products *fakeProductRepo, commissionRate float64) *fakeOrderRepo {
	return &fakeOrderRepo{
		commissionRate: commissionRate,
		orders:         make(map[string]*entity.Order),
		products:       products,
	}
}

func (r *fakeOrderRepo) Place(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products.mu.Lock()
	defer r.products.mu.Unlock()

	for i := range order.Items {
		item := &order.Items[i]
		product, ok := r.products.products[item.ProductID]
		if !ok {
			return errors.NotFound("Product", nil)
		}
		if !product.Active {
			return errors.BadRequest(fmt.Sprintf("Product %s is no longer available", product.Name), nil)
		}
		if product.Stock.Quantity < item.Quantity {
			return errors.BadRequest(
				fmt.Sprintf("Insufficient stock for %s. Available: %d", product.Name, product.Stock.Quantity), nil)
		}
	}

	supplierSet := make(map[string]bool)
	var subtotal float64
	for i := range order.Items {
		item := &order.Items[i]
		product := r.products.products[item.ProductID]

		item.SupplierID = product.SupplierID
		item.Name = product.Name
		item.Price = product.Price
		item.Subtotal = product.Price * float64(item.Quantity)
		subtotal += item.Subtotal

		product.Stock.Quantity -= item.Quantity
		product.SalesCount += item.Quantity
		supplierSet[product.SupplierID] = true

		order.ProductIDs = append(order.ProductIDs, item.ProductID)
	}

	for supplierID := range supplierSet {
		order.SupplierIDs = append(order.SupplierIDs, supplierID)
	}
	sort.Strings(order.SupplierIDs)

	order.Amounts.Subtotal = subtotal
	order.Amounts.Commission = subtotal * r.commissionRate / 100
	order.Amounts.Total = subtotal + order.Amounts.ShippingFee

	r.counter++
	order.Number = entity.FormatOrderNumber(r.counter)
	r.seq++
	order.ID = fmt.Sprintf("order-%d", r.seq)
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt

	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) ListByBuyerID(ctx context.Context, buyerID string) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Order
	for _, order := range r.orders {
		if order.BuyerID == buyerID {
			copied := *order
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListBySupplierID(ctx context.Context, supplierID string) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Order
	for _, order := range r.orders {
		for _, id := range order.SupplierIDs {
			if id == supplierID {
				copied := *order
				out = append(out, &copied)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListAll(ctx context.Context) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Order
	for _, order := range r.orders {
		copied := *order
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order.UpdatedAt = time.Now()
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) Cancel(ctx context.Context, order *entity.Order, description string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.orders[order.ID]
	if !ok {
		return errors.NotFound("Order", nil)
	}
	if current.Status == entity.OrderStatusShipped || current.Status == entity.OrderStatusDelivered {
		return errors.BadRequest("Cannot cancel an order that has already been shipped", nil)
	}
	if current.Status == entity.OrderStatusCancelled {
		return errors.BadRequest("Order is already cancelled", nil)
	}

	r.products.mu.Lock()
	for _, item := range current.Items {
		if product, ok := r.products.products[item.ProductID]; ok {
			product.Stock.Quantity += item.Quantity
			product.SalesCount -= item.Quantity
		}
	}
	r.products.mu.Unlock()

	now := time.Now()
	current.Status = entity.OrderStatusCancelled
	current.History = append(current.History, entity.StatusEntry{
		Status:      entity.OrderStatusCancelled,
		Description: description,
		At:          now,
	})
	current.UpdatedAt = now

	*order = *current
	return nil
}

func (r *fakeOrderRepo) SaveRating(ctx context.Context, order *entity.Order, rating *entity.OrderRating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.orders[order.ID]
	if !ok {
		return errors.NotFound("Order", nil)
	}
	if current.Status != entity.OrderStatusDelivered {
		return errors.BadRequest("Only delivered orders can be rated", nil)
	}
	if current.Rating != nil {
		return errors.Conflict("This order has already been rated")
	}
	current.Rating = rating
	*order = *current
	return nil
}

func (r *fakeOrderRepo) CountInFlightBySupplierID(ctx context.Context, supplierID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, order := range r.orders {
		switch order.Status {
		case entity.OrderStatusPending, entity.OrderStatusConfirmed, entity.OrderStatusPreparing, entity.OrderStatusShipped:
			for _, id := range order.SupplierIDs {
				if id == supplierID {
					count++
					break
				}
			}
		}
	}
	return count, nil
}

func (r *fakeOrderRepo) HasDeliveredOrderWithProduct(ctx context.Context, buyerID, productID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.orders {
		if order.BuyerID != buyerID || order.Status != entity.OrderStatusDelivered {
			continue
		}
		for _, id := range order.ProductIDs {
			if id == productID {
				return true, nil
			}
		}
	}
	return false, nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	seq      int
	messages map[string]*entity.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[string]*entity.Message)}
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	message.ID = fmt.Sprintf("message-%d", r.seq)
	copied := *message
	r.messages[message.ID] = &copied
	return nil
}

func (r *fakeMessageRepo) GetByID(ctx context.Context, id string) (*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	message, ok := r.messages[id]
	if !ok {
		return nil, errors.NotFound("Message", nil)
	}
	copied := *message
	return &copied, nil
}

func (r *fakeMessageRepo) ListByUserID(ctx context.Context, userID string) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Message
	for _, message := range r.messages {
		if message.SenderID == userID || message.RecipientID == userID {
			copied := *message
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeMessageRepo) ListByConversationID(ctx context.Context, conversationID string) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Message
	for _, message := range r.messages {
		if message.ConversationID == conversationID {
			copied := *message
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeMessageRepo) MarkConversationRead(ctx context.Context, conversationID, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, message := range r.messages {
		if message.ConversationID == conversationID && message.RecipientID == recipientID && !message.Read {
			message.Read = true
			message.ReadAt = &now
		}
	}
	return nil
}

func (r *fakeMessageRepo) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, message := range r.messages {
		if message.RecipientID == recipientID && !message.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeMessageRepo) Update(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *message
	r.messages[message.ID] = &copied
	return nil
}

func (r *fakeMessageRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.messages, id)
	return nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	seq     int
	reviews map[string]*entity.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]*entity.Review)}
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	review.ID = fmt.Sprintf("review-%d", r.seq)
	copied := *review
	r.reviews[review.ID] = &copied
	return nil
}

func (r *fakeReviewRepo) GetByProductAndUser(ctx context.Context, productID, userID string) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, review := range r.reviews {
		if review.ProductID == productID && review.UserID == userID {
			copied := *review
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Review", nil)
}

func (r *fakeReviewRepo) ListByProductID(ctx context.Context, productID string) ([]*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Review
	for _, review := range r.reviews {
		if review.ProductID == productID {
			copied := *review
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events map[string][]string // userID -> events
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{events: make(map[string][]string)}
}

func (n *fakeNotifier) NotifyUser(userID, event string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events[userID] = append(n.events[userID], event)
}

type fakeTokens struct{}

func (fakeTokens) Generate(userID, role string) (string, error) {
	return "token-" + userID + "-" + role, nil
}

type fakeFileService struct {
	mu      sync.Mutex
	deleted []string
}

func (f *fakeFileService) UploadFile(ctx context.Context, file io.Reader, contentType, folder string) (*service.UploadResult, error) {
	return &service.UploadResult{
		URL:        "https://example.com/fake.jpg",
		ObjectName: "products/fake.jpg",
	}, nil
}

func (f *fakeFileService) DeleteFile(ctx context.Context, objectName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, objectName)
	return nil
}

func (f *fakeFileService) Close() error {
	return nil
}
