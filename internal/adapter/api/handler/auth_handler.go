package handler

import (
	"github.com/labstack/echo/v4"

	"dentmarket/internal/domain/entity"
	"dentmarket/internal/usecase"
	"dentmarket/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type companyRequest struct {
	Name          string `json:"name" validate:"required"`
	TradeRegister string `json:"trade_register"`
	ICE           string `json:"ice"`
	Street        string `json:"street"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
}

type registerRequest struct {
	FirstName string          `json:"first_name" validate:"required"`
	LastName  string          `json:"last_name" validate:"required"`
	Email     string          `json:"email" validate:"required,email"`
	Phone     string          `json:"phone"`
	Password  string          `json:"password" validate:"required,min=8"`
	Role      string          `json:"role" validate:"omitempty,oneof=buyer supplier"`
	Company   *companyRequest `json:"company"`
}

type authResponse struct {
	Token   string       `json:"token"`
	User    *entity.User `json:"user"`
	Warning string       `json:"warning,omitempty"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	input := usecase.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
		Role:      req.Role,
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

	result, err := h.authUseCase.Register(c.Request().Context(), input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, authResponse{
		Token: result.Token,
		User:  result.User,
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, authResponse{
		Token:   result.Token,
		User:    result.User,
		Warning: result.Warning,
	})
}

func (h *AuthHandler) Profile(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.authUseCase.GetUserByID(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}
