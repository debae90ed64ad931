package handler

import (
	"github.com/labstack/echo/v4"

	"dentmarket/internal/usecase"
	"dentmarket/pkg/response"
)

type MessageHandler struct {
	messageUseCase *usecase.MessageUseCase
}

func NewMessageHandler(messageUseCase *usecase.MessageUseCase) *MessageHandler {
	return &MessageHandler{
		messageUseCase: messageUseCase,
	}
}

type sendMessageRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	Body        string `json:"body" validate:"required,max=1000"`
	Type        string `json:"type" validate:"omitempty,oneof=text image file"`
	FileURL     string `json:"file_url"`
	ProductID   string `json:"product_id"`
}

func (h *MessageHandler) SendMessage(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	message, err := h.messageUseCase.Send(c.Request().Context(), uid, usecase.SendMessageInput{
		RecipientID: req.RecipientID,
		Body:        req.Body,
		Type:        req.Type,
		FileURL:     req.FileURL,
		ProductID:   req.ProductID,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *MessageHandler) ListConversations(c echo.Context) error {
	uid := c.Get("uid").(string)

	conversations, err := h.messageUseCase.ListConversations(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversations)
}

func (h *MessageHandler) GetThread(c echo.Context) error {
	uid := c.Get("uid").(string)

	messages, err := h.messageUseCase.Thread(c.Request().Context(), uid, c.Param("otherUserId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

func (h *MessageHandler) UnreadCount(c echo.Context) error {
	uid := c.Get("uid").(string)

	count, err := h.messageUseCase.UnreadCount(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]int64{
		"unread": count,
	})
}

func (h *MessageHandler) MarkRead(c echo.Context) error {
	uid := c.Get("uid").(string)

	message, err := h.messageUseCase.MarkRead(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, message)
}

func (h *MessageHandler) DeleteMessage(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.messageUseCase.Delete(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Message deleted",
	})
}
