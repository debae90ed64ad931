package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dentmarket/internal/domain/entity"
	"dentmarket/internal/domain/repository"
	"dentmarket/pkg/errors"
)

func seedSupplier(t *testing.T, repo *fakeUserRepo, trialStart time.Time) *entity.User {
	t.Helper()
	user := &entity.User{
		FirstName: "Karim",
		LastName:  "Idrissi",
		Email:     "karim@dentaplus.ma",
		Role:      entity.RoleSupplier,
		Status:    entity.UserStatusActive,
		Company:   &entity.Company{Name: "DentaPlus"},
		Subscription: entity.Subscription{
			Type:      entity.SubscriptionFreeTrial,
			StartDate: trialStart,
			EndDate:   trialStart.AddDate(0, 0, 30),
			Active:    true,
		},
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func validProductInput() ProductInput {
	return ProductInput{
		Name:     "Autoclave 18L",
		Category: "Hygiène & Stérilisation",
		Price:    15000,
		Stock:    entity.Stock{Quantity: 3, Unit: "unité"},
		Shipping: entity.Shipping{Type: "heavy_equipment", Fee: 300},
	}
}

func TestCreateProduct(t *testing.T) {
	users := newFakeUserRepo()
	products := newFakeProductRepo()
	uc := NewProductUseCase(products, users, &fakeFileService{}, 30)

	supplier := seedSupplier(t, users, time.Now())

	product, err := uc.Create(context.Background(), supplier.ID, validProductInput())
	require.NoError(t, err)
	assert.True(t, product.Active)
	assert.Equal(t, "MAD", product.Currency)
	assert.Equal(t, supplier.ID, product.SupplierID)
}

func TestCreateProductExpiredTrial(t *testing.T) {
	users := newFakeUserRepo()
	products := newFakeProductRepo()
	uc := NewProductUseCase(products, users, &fakeFileService{}, 30)

	supplier := seedSupplier(t, users, time.Now().AddDate(0, 0, -45))

	_, err := uc.Create(context.Background(), supplier.ID, validProductInput())
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestCreateProductBuyerRejected(t *testing.T) {
	users := newFakeUserRepo()
	products := newFakeProductRepo()
	uc := NewProductUseCase(products, users, &fakeFileService{}, 30)

	buyer := seedUser(t, users, "sara", "Benali")

	_, err := uc.Create(context.Background(), buyer.ID, validProductInput())
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestCreateProductUnknownCategory(t *testing.T) {
	users := newFakeUserRepo()
	products := newFakeProductRepo()
	uc := NewProductUseCase(products, users, &fakeFileService{}, 30)

	supplier := seedSupplier(t, users, time.Now())

	input := validProductInput()
	input.Category = "Gadgets"

	_, err := uc.Create(context.Background(), supplier.ID, input)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestUpdateProductOwnerOnly(t *testing.T) {
	users := newFakeUserRepo()
	products := newFakeProductRepo()
	uc := NewProductUseCase(products, users, &fakeFileService{}, 30)

	owner := seedSupplier(t, users, time.Now())
	other := &entity.User{
		FirstName: "Nadia",
		LastName:  "Alami",
		Email:     "nadia@dentashop.ma",
		Role:      entity.RoleSupplier,
		Status:    entity.UserStatusActive,
		Subscription: entity.Subscription{
			Type:   entity.SubscriptionBasic,
			Active: true,
		},
	}
	require.NoError(t, users.Create(context.Background(), other))

	product, err := uc.Create(context.Background(), owner.ID, validProductInput())
	require.NoError(t, err)

	newPrice := 14000.0
	_, err = uc.Update(context.Background(), other.ID, product.ID, ProductUpdateInput{Price: &newPrice})
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	updated, err := uc.Update(context.Background(), owner.ID, product.ID, ProductUpdateInput{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 14000.0, updated.Price)
}

func TestDeleteProductCleansImages(t *testing.T) {
	users := newFakeUserRepo()
	products := newFakeProductRepo()
	files := &fakeFileService{}
	uc := NewProductUseCase(products, users, files, 30)

	supplier := seedSupplier(t, users, time.Now())

	input := validProductInput()
	input.Images = []entity.ProductImage{{URL: "https://cdn/x.jpg", ObjectName: "products/x.jpg"}}

	product, err := uc.Create(context.Background(), supplier.ID, input)
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), supplier.ID, entity.RoleSupplier, product.ID))
	assert.Contains(t, files.deleted, "products/x.jpg")

	_, err = products.GetByID(context.Background(), product.ID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestListFiltersActiveOnly(t *testing.T) {
	users := newFakeUserRepo()
	products := newFakeProductRepo()
	uc := NewProductUseCase(products, users, &fakeFileService{}, 30)

	active := seedProduct(t, products, "supplier-1", 100, 5)
	inactive := seedProduct(t, products, "supplier-1", 100, 5)
	inactive.Active = false
	require.NoError(t, products.Update(context.Background(), inactive))

	list, total, err := uc.List(context.Background(), repository.ProductFilter{}, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, active.ID, list[0].ID)
}
