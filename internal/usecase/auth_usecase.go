package usecase

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"dentmarket/internal/domain/entity"
	"dentmarket/internal/domain/repository"
	"dentmarket/pkg/errors"
	"dentmarket/pkg/logger"
)

// TokenManager issues the signed bearer tokens returned at registration and
// login.
type TokenManager interface {
	Generate(userID, role string) (string, error)
}

const trialExpiredWarning = "Your free trial has expired. Some features are limited until you subscribe."

type AuthUseCase struct {
	userRepo  repository.UserRepository
	tokens    TokenManager
	trialDays int
}

func NewAuthUseCase(userRepo repository.UserRepository, tokens TokenManager, trialDays int) *AuthUseCase {
	return &AuthUseCase{
		userRepo:  userRepo,
		tokens:    tokens,
		trialDays: trialDays,
	}
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
	Role      string
	Company   *entity.Company
}

type AuthResult struct {
	User    *entity.User
	Token   string
	Warning string
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	existing, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, errors.Conflict("An account already exists with this email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	role := input.Role
	if role == "" {
		role = entity.RoleBuyer
	}

	now := time.Now()
	user := &entity.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: string(hash),
		Role:         role,
		Status:       entity.UserStatusActive,
		Verification: entity.Verification{Status: "pending"},
		Subscription: entity.Subscription{Type: entity.SubscriptionInactive},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Suppliers start on a free trial window
	if role == entity.RoleSupplier {
		user.Company = input.Company
		user.Subscription = entity.Subscription{
			Type:      entity.SubscriptionFreeTrial,
			StartDate: now,
			EndDate:   now.AddDate(0, 0, uc.trialDays),
			Active:    true,
		}
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := uc.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User:  user,
		Token: token,
	}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.Unauthorized("Incorrect email or password", err)
	}

	if user.Status == entity.UserStatusClosed {
		return nil, errors.Unauthorized("This account has been closed", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.Unauthorized("Incorrect email or password", err)
	}

	user.LastLoginAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		logger.Warn("Failed to record last login for user %s: %v", user.ID, err)
	}

	token, err := uc.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	result := &AuthResult{
		User:  user,
		Token: token,
	}

	if user.Role == entity.RoleSupplier && user.TrialExpired(time.Now(), uc.trialDays) {
		result.Warning = trialExpiredWarning
	}

	return result, nil
}

func (uc *AuthUseCase) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	return user, nil
}
