package handler

import (
	"github.com/labstack/echo/v4"

	"dentmarket/internal/usecase"
	"dentmarket/pkg/response"
)

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
	}
}

type createReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=500"`
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	review, err := h.reviewUseCase.Create(c.Request().Context(), uid, c.Param("productId"), req.Rating, req.Comment)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, review)
}

func (h *ReviewHandler) ListReviews(c echo.Context) error {
	reviews, err := h.reviewUseCase.ListByProduct(c.Request().Context(), c.Param("productId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, reviews)
}
