package usecase

import (
	"context"
	"time"

	"dentmarket/internal/domain/entity"
	"dentmarket/internal/domain/repository"
	"dentmarket/internal/domain/service"
	"dentmarket/pkg/errors"
	"dentmarket/pkg/logger"
)

type ProductUseCase struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	fileService service.FileUploadService
	trialDays   int
}

func NewProductUseCase(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	fileService service.FileUploadService,
	trialDays int,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		userRepo:    userRepo,
		fileService: fileService,
		trialDays:   trialDays,
	}
}

func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int64, error) {
	filter.ActiveOnly = true
	return uc.productRepo.List(ctx, filter, limit, offset)
}

func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("Product", err)
	}

	// view counting must not slow the read path down
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := uc.productRepo.IncrementViews(ctx, id); err != nil {
			logger.Warn("Failed to increment views for product %s: %v", id, err)
		}
	}()

	return product, nil
}

type ProductInput struct {
	Name        string
	Description string
	Category    string
	SubCategory string
	Brand       string
	Price       float64
	Stock       entity.Stock
	Images      []entity.ProductImage
	Specs       entity.Specs
	Shipping    entity.Shipping
	Promo       *entity.Promo
}

// requireSeller loads the supplier and checks the subscription gate shared by
// product creation and update.
func (uc *ProductUseCase) requireSeller(ctx context.Context, supplierID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	if user.Role != entity.RoleSupplier {
		return nil, errors.Forbidden("Only suppliers can manage products", nil)
	}
	if !user.CanSell(time.Now(), uc.trialDays) {
		return nil, errors.Forbidden("Your trial has expired. Subscribe to keep selling.", nil)
	}
	return user, nil
}

func (uc *ProductUseCase) Create(ctx context.Context, supplierID string, input ProductInput) (*entity.Product, error) {
	if _, err := uc.requireSeller(ctx, supplierID); err != nil {
		return nil, err
	}

	if !entity.ValidCategory(input.Category) {
		return nil, errors.BadRequest("Unknown product category", nil)
	}
	if input.Price <= 0 {
		return nil, errors.BadRequest("Price must be greater than zero", nil)
	}
	if input.Stock.Quantity < 0 {
		return nil, errors.BadRequest("Stock quantity cannot be negative", nil)
	}

	now := time.Now()
	product := &entity.Product{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		SubCategory: input.SubCategory,
		Brand:       input.Brand,
		Price:       input.Price,
		Currency:    "MAD",
		Stock:       input.Stock,
		Images:      input.Images,
		SupplierID:  supplierID,
		Specs:       input.Specs,
		Shipping:    input.Shipping,
		Promo:       input.Promo,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if product.Stock.Unit == "" {
		product.Stock.Unit = "unité"
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

type ProductUpdateInput struct {
	Name        *string
	Description *string
	Category    *string
	SubCategory *string
	Brand       *string
	Price       *float64
	Stock       *entity.Stock
	Images      []entity.ProductImage
	Specs       *entity.Specs
	Shipping    *entity.Shipping
	Promo       *entity.Promo
	Active      *bool
}

func (uc *ProductUseCase) Update(ctx context.Context, supplierID, productID string, input ProductUpdateInput) (*entity.Product, error) {
	if _, err := uc.requireSeller(ctx, supplierID); err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, errors.NotFound("Product", err)
	}
	if product.SupplierID != supplierID {
		return nil, errors.Forbidden("You can only edit your own products", nil)
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Category != nil {
		if !entity.ValidCategory(*input.Category) {
			return nil, errors.BadRequest("Unknown product category", nil)
		}
		product.Category = *input.Category
	}
	if input.SubCategory != nil {
		product.SubCategory = *input.SubCategory
	}
	if input.Brand != nil {
		product.Brand = *input.Brand
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, errors.BadRequest("Price must be greater than zero", nil)
		}
		product.Price = *input.Price
	}
	if input.Stock != nil {
		if input.Stock.Quantity < 0 {
			return nil, errors.BadRequest("Stock quantity cannot be negative", nil)
		}
		if input.Stock.Unit == "" {
			input.Stock.Unit = product.Stock.Unit
		}
		product.Stock = *input.Stock
	}
	if input.Images != nil {
		product.Images = input.Images
	}
	if input.Specs != nil {
		product.Specs = *input.Specs
	}
	if input.Shipping != nil {
		product.Shipping = *input.Shipping
	}
	if input.Promo != nil {
		product.Promo = input.Promo
	}
	if input.Active != nil {
		product.Active = *input.Active
	}
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (uc *ProductUseCase) Delete(ctx context.Context, userID, role, productID string) error {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return errors.NotFound("Product", err)
	}
	if role != entity.RoleAdmin && product.SupplierID != userID {
		return errors.Forbidden("You can only delete your own products", nil)
	}

	if err := uc.productRepo.Delete(ctx, productID); err != nil {
		return err
	}

	// stored images are orphaned once the product is gone
	for _, img := range product.Images {
		if img.ObjectName == "" {
			continue
		}
		if err := uc.fileService.DeleteFile(ctx, img.ObjectName); err != nil {
			logger.Warn("Failed to delete image %s: %v", img.ObjectName, err)
		}
	}

	return nil
}

func (uc *ProductUseCase) ListMine(ctx context.Context, supplierID string) ([]*entity.Product, error) {
	return uc.productRepo.ListBySupplierID(ctx, supplierID)
}
