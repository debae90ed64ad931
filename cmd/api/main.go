package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"dentmarket/internal/adapter/api"
	"dentmarket/internal/adapter/api/handler"
	apimiddleware "dentmarket/internal/adapter/api/middleware"
	"dentmarket/internal/adapter/api/router"
	"dentmarket/internal/adapter/repository"
	"dentmarket/internal/domain/service"
	"dentmarket/internal/infrastructure/auth"
	"dentmarket/internal/infrastructure/storage"
	"dentmarket/internal/infrastructure/websocket"
	"dentmarket/internal/usecase"
	"dentmarket/pkg/config"
	"dentmarket/pkg/response"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	firestoreClient, err := firestore.NewClient(ctx, cfg.GCPProject)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	var fileService service.FileUploadService
	switch cfg.StorageDriver {
	case "gcs":
		client, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
		if err != nil {
			log.Fatalf("Failed to initialize Cloud Storage: %v", err)
		}
		fileService = client
	default:
		client, err := storage.NewLocalStorageClient(cfg.UploadDir)
		if err != nil {
			log.Fatalf("Failed to initialize local storage: %v", err)
		}
		fileService = client
	}
	defer fileService.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	productRepo := repository.NewFirestoreProductRepository(firestoreClient)
	orderRepo := repository.NewFirestoreOrderRepository(firestoreClient, cfg.CommissionRate)
	messageRepo := repository.NewFirestoreMessageRepository(firestoreClient)
	reviewRepo := repository.NewFirestoreReviewRepository(firestoreClient)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	authUseCase := usecase.NewAuthUseCase(userRepo, jwtManager, cfg.FreeTrialDays)
	userUseCase := usecase.NewUserUseCase(userRepo, productRepo, orderRepo, cfg.CommissionRate, cfg.FreeTrialDays)
	productUseCase := usecase.NewProductUseCase(productRepo, userRepo, fileService, cfg.FreeTrialDays)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, productRepo, wsManager)
	messageUseCase := usecase.NewMessageUseCase(messageRepo, userRepo, wsManager)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo, productRepo, orderRepo)

	handler.Setup(authUseCase, userUseCase, productUseCase, orderUseCase, messageUseCase, reviewUseCase, fileService, wsManager)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
	}))

	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = response.HTTPErrorHandler

	authMiddleware := apimiddleware.NewAuthMiddleware(jwtManager)
	roleMiddleware := apimiddleware.NewRoleMiddleware()
	subscriptionMiddleware := apimiddleware.NewSubscriptionMiddleware(userRepo, cfg.FreeTrialDays)

	router.Setup(e, authMiddleware, roleMiddleware, subscriptionMiddleware)

	if cfg.StorageDriver != "gcs" {
		e.Static("/uploads", cfg.UploadDir)
	}

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
