package handler

import (
	"dentmarket/internal/domain/service"
	"dentmarket/internal/infrastructure/websocket"
	"dentmarket/internal/usecase"
)

var (
	authHandler      *AuthHandler
	userHandler      *UserHandler
	productHandler   *ProductHandler
	orderHandler     *OrderHandler
	messageHandler   *MessageHandler
	reviewHandler    *ReviewHandler
	uploadHandler    *UploadHandler
	websocketHandler *WebSocketHandler
	healthHandler    *HealthHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	productUseCase *usecase.ProductUseCase,
	orderUseCase *usecase.OrderUseCase,
	messageUseCase *usecase.MessageUseCase,
	reviewUseCase *usecase.ReviewUseCase,
	fileService service.FileUploadService,
	wsManager *websocket.Manager,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	productHandler = NewProductHandler(productUseCase, fileService)
	orderHandler = NewOrderHandler(orderUseCase)
	messageHandler = NewMessageHandler(messageUseCase)
	reviewHandler = NewReviewHandler(reviewUseCase)
	uploadHandler = NewUploadHandler(fileService)
	websocketHandler = NewWebSocketHandler(wsManager)
	healthHandler = NewHealthHandler()
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetOrderHandler() *OrderHandler {
	return orderHandler
}

func GetMessageHandler() *MessageHandler {
	return messageHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}

func GetUploadHandler() *UploadHandler {
	return uploadHandler
}

func GetWebSocketHandler() *WebSocketHandler {
	return websocketHandler
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}
