package handler

import (
	"github.com/labstack/echo/v4"

	"dentmarket/internal/domain/entity"
	"dentmarket/internal/usecase"
	"dentmarket/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.userUseCase.GetProfile(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

type updateProfileRequest struct {
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Phone     string          `json:"phone"`
	Company   *companyRequest `json:"company"`
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	input := usecase.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}
	if req.Company != nil {
		input.Company = &entity.Company{
			Name:          req.Company.Name,
			TradeRegister: req.Company.TradeRegister,
			ICE:           req.Company.ICE,
			Address: entity.Address{
				Street:     req.Company.Street,
				City:       req.Company.City,
				PostalCode: req.Company.PostalCode,
			},
		}
	}

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), uid, input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

func (h *UserHandler) ChangePassword(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.userUseCase.ChangePassword(c.Request().Context(), uid, req.CurrentPassword, req.NewPassword); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Password updated",
	})
}

func (h *UserHandler) Dashboard(c echo.Context) error {
	uid := c.Get("uid").(string)

	dashboard, err := h.userUseCase.SupplierDashboard(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, dashboard)
}

type activateSubscriptionRequest struct {
	Plan string `json:"plan" validate:"required,oneof=basic premium"`
}

func (h *UserHandler) ActivateSubscription(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req activateSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.ActivateSubscription(c.Request().Context(), uid, req.Plan)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) PublicSupplier(c echo.Context) error {
	page, err := h.userUseCase.PublicSupplierPage(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, page)
}

func (h *UserHandler) CloseAccount(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.userUseCase.CloseAccount(c.Request().Context(), uid); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Account closed",
	})
}
