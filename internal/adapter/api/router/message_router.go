package router

import (
	"github.com/labstack/echo/v4"

	"dentmarket/internal/adapter/api/handler"
	"dentmarket/internal/adapter/api/middleware"
)

func SetupMessageRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	messageHandler := handler.GetMessageHandler()
	websocketHandler := handler.GetWebSocketHandler()

	// Websocket upgrade cannot carry an Authorization header from a browser
	e.GET("/api/messages/ws", websocketHandler.HandleWebSocket, authMiddleware.VerifyQueryToken)

	messages := e.Group("/api/messages")
	messages.Use(authMiddleware.Authenticate)

	messages.POST("", messageHandler.SendMessage)
	messages.GET("/conversations", messageHandler.ListConversations)
	messages.GET("/conversation/:otherUserId", messageHandler.GetThread)
	messages.GET("/non-lus", messageHandler.UnreadCount)
	messages.PUT("/:id/lire", messageHandler.MarkRead)
	messages.DELETE("/:id", messageHandler.DeleteMessage)
}
