package handler

import (
	"github.com/labstack/echo/v4"

	"dentmarket/internal/domain/entity"
	"dentmarket/internal/usecase"
	"dentmarket/pkg/response"
)

type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
	}
}

type orderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type shippingAddressRequest struct {
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postal_code"`
	Extra      string `json:"extra"`
}

type createOrderRequest struct {
	Items           []orderItemRequest     `json:"items" validate:"required,min=1,dive"`
	ShippingAddress shippingAddressRequest `json:"shipping_address" validate:"required"`
	PaymentMethod   string                 `json:"payment_method" validate:"required,oneof=bank_transfer cash_on_delivery card cheque"`
	Note            string                 `json:"note"`
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	items := make([]usecase.OrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = usecase.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	order, err := h.orderUseCase.Place(c.Request().Context(), uid, usecase.PlaceOrderInput{
		Items: items,
		ShippingAddress: entity.ShippingAddress{
			Name:       req.ShippingAddress.Name,
			Phone:      req.ShippingAddress.Phone,
			Street:     req.ShippingAddress.Street,
			City:       req.ShippingAddress.City,
			PostalCode: req.ShippingAddress.PostalCode,
			Extra:      req.ShippingAddress.Extra,
		},
		PaymentMethod: req.PaymentMethod,
		Note:          req.Note,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, order)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	uid := c.Get("uid").(string)
	role, _ := c.Get("role").(string)

	orders, err := h.orderUseCase.List(c.Request().Context(), uid, role)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, orders)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	uid := c.Get("uid").(string)
	role, _ := c.Get("role").(string)

	order, err := h.orderUseCase.GetByID(c.Request().Context(), uid, role, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

type updateStatusRequest struct {
	Status      string `json:"status" validate:"required,oneof=pending confirmed preparing shipped delivered cancelled refunded"`
	Description string `json:"description"`
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	uid := c.Get("uid").(string)
	role, _ := c.Get("role").(string)

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	order, err := h.orderUseCase.UpdateStatus(c.Request().Context(), uid, role, c.Param("id"), req.Status, req.Description)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

type rateOrderRequest struct {
	Score   int    `json:"score" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func (h *OrderHandler) RateOrder(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req rateOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	order, err := h.orderUseCase.Rate(c.Request().Context(), uid, c.Param("id"), req.Score, req.Comment)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *OrderHandler) CancelOrder(c echo.Context) error {
	uid := c.Get("uid").(string)

	order, err := h.orderUseCase.Cancel(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}
