package usecase

import (
	"context"
	"sort"
	"time"

	"golang.org/x/crypto/bcrypt"

	"dentmarket/internal/domain/entity"
	"dentmarket/internal/domain/repository"
	"dentmarket/pkg/errors"
)

type UserUseCase struct {
	userRepo       repository.UserRepository
	productRepo    repository.ProductRepository
	orderRepo      repository.OrderRepository
	commissionRate float64
	trialDays      int
}

func NewUserUseCase(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	commissionRate float64,
	trialDays int,
) *UserUseCase {
	return &UserUseCase{
		userRepo:       userRepo,
		productRepo:    productRepo,
		orderRepo:      orderRepo,
		commissionRate: commissionRate,
		trialDays:      trialDays,
	}
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	return user, nil
}

type UpdateProfileInput struct {
	FirstName string
	LastName  string
	Phone     string
	Company   *entity.Company
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Company != nil && user.Role == entity.RoleSupplier {
		user.Company = input.Company
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *UserUseCase) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return errors.NotFound("User", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return errors.Unauthorized("Current password is incorrect", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Internal("Failed to hash password", err)
	}

	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(ctx, user)
}

// Dashboard aggregates a supplier's activity for the account overview page.
type Dashboard struct {
	ProductCount  int64               `json:"product_count"`
	TotalStock    int                 `json:"total_stock"`
	TopProducts   []*entity.Product   `json:"top_products"`
	OrderCounts   map[string]int      `json:"order_counts"`
	Revenue       float64             `json:"revenue"`
	Commission    float64             `json:"commission"`
	NetRevenue    float64             `json:"net_revenue"`
	Rating        float64             `json:"rating"`
	RatingCount   int                 `json:"rating_count"`
	Subscription  entity.Subscription `json:"subscription"`
	TrialDaysLeft int                 `json:"trial_days_left"`
	RecentOrders  []*entity.Order     `json:"recent_orders"`
}

func (uc *UserUseCase) SupplierDashboard(ctx context.Context, supplierID string) (*Dashboard, error) {
	user, err := uc.userRepo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	if user.Role != entity.RoleSupplier {
		return nil, errors.Forbidden("Dashboard is only available to suppliers", nil)
	}

	products, err := uc.productRepo.ListBySupplierID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	orders, err := uc.orderRepo.ListBySupplierID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	dash := &Dashboard{
		ProductCount: int64(len(products)),
		OrderCounts:  map[string]int{},
		Rating:       user.Stats.Rating,
		RatingCount:  user.Stats.RatingCount,
		Subscription: user.Subscription,
	}

	for _, p := range products {
		dash.TotalStock += p.Stock.Quantity
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].SalesCount > products[j].SalesCount
	})
	if len(products) > 5 {
		products = products[:5]
	}
	dash.TopProducts = products

	for _, order := range orders {
		dash.OrderCounts[order.Status]++
		// revenue counts only once an order has left the warehouse
		if order.Status != entity.OrderStatusShipped && order.Status != entity.OrderStatusDelivered {
			continue
		}
		for _, item := range order.Items {
			if item.SupplierID != supplierID {
				continue
			}
			dash.Revenue += item.Subtotal
			dash.Commission += item.Subtotal * uc.commissionRate / 100
		}
	}
	dash.NetRevenue = dash.Revenue - dash.Commission

	if user.Subscription.Type == entity.SubscriptionFreeTrial {
		end := user.Subscription.StartDate.AddDate(0, 0, uc.trialDays)
		if left := int(time.Until(end).Hours() / 24); left > 0 {
			dash.TrialDaysLeft = left
		}
	}

	if len(orders) > 5 {
		orders = orders[:5]
	}
	dash.RecentOrders = orders

	return dash, nil
}

func (uc *UserUseCase) ActivateSubscription(ctx context.Context, userID, plan string) (*entity.User, error) {
	if plan != entity.SubscriptionBasic && plan != entity.SubscriptionPremium {
		return nil, errors.BadRequest("Unknown subscription plan", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	if user.Role != entity.RoleSupplier {
		return nil, errors.Forbidden("Only suppliers can subscribe", nil)
	}

	now := time.Now()
	user.Subscription = entity.Subscription{
		Type:      plan,
		StartDate: now,
		EndDate:   now.AddDate(0, 1, 0),
		Active:    true,
	}
	user.UpdatedAt = now

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SupplierPage is the public view of a supplier: company details and its
// active catalog, nothing account-private.
type SupplierPage struct {
	ID        string            `json:"id"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Company   *entity.Company   `json:"company,omitempty"`
	Stats     entity.UserStats  `json:"stats"`
	MemberFor time.Time         `json:"member_since"`
	Products  []*entity.Product `json:"products"`
}

func (uc *UserUseCase) PublicSupplierPage(ctx context.Context, supplierID string) (*SupplierPage, error) {
	user, err := uc.userRepo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, errors.NotFound("Supplier", err)
	}
	if user.Role != entity.RoleSupplier || user.Status != entity.UserStatusActive {
		return nil, errors.NotFound("Supplier", nil)
	}

	products, err := uc.productRepo.ListBySupplierID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	active := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if p.Active {
			active = append(active, p)
		}
		if len(active) == 10 {
			break
		}
	}

	return &SupplierPage{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Company:   user.Company,
		Stats:     user.Stats,
		MemberFor: user.CreatedAt,
		Products:  active,
	}, nil
}

// CloseAccount soft-closes the account. Suppliers must have no in-flight
// orders, and their catalog is deactivated so it disappears from listings.
func (uc *UserUseCase) CloseAccount(ctx context.Context, userID string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return errors.NotFound("User", err)
	}

	if user.Role == entity.RoleSupplier {
		inFlight, err := uc.orderRepo.CountInFlightBySupplierID(ctx, userID)
		if err != nil {
			return err
		}
		if inFlight > 0 {
			return errors.Conflict("Cannot close the account while orders are still in progress")
		}
		if err := uc.productRepo.DeactivateBySupplierID(ctx, userID); err != nil {
			return err
		}
	}

	user.Status = entity.UserStatusClosed
	user.Subscription.Active = false
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(ctx, user)
}
