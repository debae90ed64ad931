package handler

import (
	"encoding/json"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"dentmarket/internal/domain/entity"
	"dentmarket/internal/domain/repository"
	"dentmarket/internal/domain/service"
	"dentmarket/internal/usecase"
	"dentmarket/pkg/errors"
	"dentmarket/pkg/response"
	"dentmarket/pkg/utils"
)

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
	fileService    service.FileUploadService
}

func NewProductHandler(productUseCase *usecase.ProductUseCase, fileService service.FileUploadService) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
		fileService:    fileService,
	}
}

type productImageRequest struct {
	URL        string `json:"url" validate:"required"`
	ObjectName string `json:"object_name"`
	AltText    string `json:"alt_text"`
}

type productShippingRequest struct {
	Type     string   `json:"type"`
	LeadTime string   `json:"lead_time"`
	Fee      float64  `json:"fee" validate:"gte=0"`
	Zones    []string `json:"zones"`
}

type createProductRequest struct {
	Name        string                 `json:"name" validate:"required,max=200"`
	Description string                 `json:"description" validate:"max=2000"`
	Category    string                 `json:"category" validate:"required"`
	SubCategory string                 `json:"sub_category"`
	Brand       string                 `json:"brand"`
	Price       float64                `json:"price" validate:"required,gt=0"`
	Quantity    int                    `json:"quantity" validate:"gte=0"`
	Unit        string                 `json:"unit"`
	Images      []productImageRequest  `json:"images"`
	Specs       entity.Specs           `json:"specs"`
	Shipping    productShippingRequest `json:"shipping"`
	Promo       *entity.Promo          `json:"promo"`
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	minPrice, _ := strconv.ParseFloat(c.QueryParam("prixMin"), 64)
	maxPrice, _ := strconv.ParseFloat(c.QueryParam("prixMax"), 64)

	filter := repository.ProductFilter{
		Category: c.QueryParam("categorie"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Search:   c.QueryParam("recherche"),
	}

	products, total, err := h.productUseCase.List(c.Request().Context(), filter, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, products, total, pagination.Page, pagination.PageSize)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.productUseCase.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) ListMyProducts(c echo.Context) error {
	uid := c.Get("uid").(string)

	products, err := h.productUseCase.ListMine(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, products)
}

// bindProductRequest accepts either a JSON body or a multipart form with a
// "data" field holding the JSON payload and "images" file parts. Uploaded
// files are pushed to storage and appended to the request's image list.
func (h *ProductHandler) bindProductRequest(c echo.Context) (*createProductRequest, error) {
	var req createProductRequest

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		if err := c.Bind(&req); err != nil {
			return nil, err
		}
		return &req, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, errors.BadRequest("Invalid multipart form", err)
	}

	data := c.FormValue("data")
	if data == "" {
		return nil, errors.BadRequest("Missing product data", nil)
	}
	if err := json.Unmarshal([]byte(data), &req); err != nil {
		return nil, errors.BadRequest("Invalid product data", err)
	}

	for _, fileHeader := range form.File["images"] {
		result, err := h.uploadImage(c, fileHeader)
		if err != nil {
			return nil, err
		}
		req.Images = append(req.Images, productImageRequest{
			URL:        result.URL,
			ObjectName: result.ObjectName,
		})
	}

	return &req, nil
}

func (h *ProductHandler) uploadImage(c echo.Context, fileHeader *multipart.FileHeader) (*service.UploadResult, error) {
	if err := validateImage(fileHeader); err != nil {
		return nil, err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, errors.Internal("Failed to open uploaded file", err)
	}
	defer src.Close()

	return h.fileService.UploadFile(c.Request().Context(), src, fileHeader.Header.Get("Content-Type"), "products")
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	uid := c.Get("uid").(string)

	req, err := h.bindProductRequest(c)
	if err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.productUseCase.Create(c.Request().Context(), uid, usecase.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Brand:       req.Brand,
		Price:       req.Price,
		Stock:       entity.Stock{Quantity: req.Quantity, Unit: req.Unit},
		Images:      toEntityImages(req.Images),
		Specs:       req.Specs,
		Shipping: entity.Shipping{
			Type:     req.Shipping.Type,
			LeadTime: req.Shipping.LeadTime,
			Fee:      req.Shipping.Fee,
			Zones:    req.Shipping.Zones,
		},
		Promo: req.Promo,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, product)
}

type updateProductRequest struct {
	Name        *string                 `json:"name" validate:"omitempty,max=200"`
	Description *string                 `json:"description" validate:"omitempty,max=2000"`
	Category    *string                 `json:"category"`
	SubCategory *string                 `json:"sub_category"`
	Brand       *string                 `json:"brand"`
	Price       *float64                `json:"price"`
	Quantity    *int                    `json:"quantity"`
	Unit        *string                 `json:"unit"`
	Images      []productImageRequest   `json:"images"`
	Specs       *entity.Specs           `json:"specs"`
	Shipping    *productShippingRequest `json:"shipping"`
	Promo       *entity.Promo           `json:"promo"`
	Active      *bool                   `json:"active"`
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	input := usecase.ProductUpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Brand:       req.Brand,
		Price:       req.Price,
		Specs:       req.Specs,
		Promo:       req.Promo,
		Active:      req.Active,
	}
	if req.Quantity != nil {
		unit := ""
		if req.Unit != nil {
			unit = *req.Unit
		}
		input.Stock = &entity.Stock{Quantity: *req.Quantity, Unit: unit}
	}
	if req.Images != nil {
		input.Images = toEntityImages(req.Images)
	}
	if req.Shipping != nil {
		input.Shipping = &entity.Shipping{
			Type:     req.Shipping.Type,
			LeadTime: req.Shipping.LeadTime,
			Fee:      req.Shipping.Fee,
			Zones:    req.Shipping.Zones,
		}
	}

	product, err := h.productUseCase.Update(c.Request().Context(), uid, c.Param("id"), input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	uid := c.Get("uid").(string)
	role, _ := c.Get("role").(string)

	if err := h.productUseCase.Delete(c.Request().Context(), uid, role, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Product deleted",
	})
}

func toEntityImages(images []productImageRequest) []entity.ProductImage {
	out := make([]entity.ProductImage, len(images))
	for i, img := range images {
		out[i] = entity.ProductImage{
			URL:        img.URL,
			ObjectName: img.ObjectName,
			AltText:    img.AltText,
		}
	}
	return out
}
