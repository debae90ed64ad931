package entity

import (
	"time"
)

const (
	RoleBuyer    = "buyer"
	RoleSupplier = "supplier"
	RoleAdmin    = "admin"
)

const (
	UserStatusActive = "active"
	UserStatusClosed = "closed"
)

const (
	SubscriptionFreeTrial = "free_trial"
	SubscriptionBasic     = "basic"
	SubscriptionPremium   = "premium"
	SubscriptionInactive  = "inactive"
)

type Address struct {
	Street     string `json:"street,omitempty" firestore:"street,omitempty"`
	City       string `json:"city,omitempty" firestore:"city,omitempty"`
	PostalCode string `json:"postal_code,omitempty" firestore:"postalCode,omitempty"`
}

// Company holds the professional details of a supplier account.
type Company struct {
	Name          string  `json:"name,omitempty" firestore:"name,omitempty"`
	TradeRegister string  `json:"trade_register,omitempty" firestore:"tradeRegister,omitempty"`
	ICE           string  `json:"ice,omitempty" firestore:"ice,omitempty"` // Identifiant Commun de l'Entreprise
	Address       Address `json:"address,omitempty" firestore:"address,omitempty"`
}

type KYCDocument struct {
	URL        string    `json:"url" firestore:"url"`
	UploadedAt time.Time `json:"uploaded_at" firestore:"uploadedAt"`
}

type Verification struct {
	Status       string        `json:"status" firestore:"status"` // "pending", "verified", "rejected"
	KYCDocuments []KYCDocument `json:"kyc_documents,omitempty" firestore:"kycDocuments,omitempty"`
}

type Subscription struct {
	Type      string    `json:"type" firestore:"type"` // free_trial, basic, premium, inactive
	StartDate time.Time `json:"start_date" firestore:"startDate"`
	EndDate   time.Time `json:"end_date,omitempty" firestore:"endDate,omitempty"`
	Active    bool      `json:"active" firestore:"active"`
}

type UserStats struct {
	SalesCount  int     `json:"sales_count" firestore:"salesCount"`
	Revenue     float64 `json:"revenue" firestore:"revenue"`
	Rating      float64 `json:"rating" firestore:"rating"`
	RatingCount int     `json:"rating_count" firestore:"ratingCount"`
}

type User struct {
	ID           string `json:"id" firestore:"id"`
	FirstName    string `json:"first_name" firestore:"firstName"`
	LastName     string `json:"last_name" firestore:"lastName"`
	Email        string `json:"email" firestore:"email"`
	Phone        string `json:"phone" firestore:"phone"`
	PasswordHash string `json:"-" firestore:"passwordHash"`
	Role         string `json:"role" firestore:"role"`
	Status       string `json:"status" firestore:"status"`

	Company      *Company     `json:"company,omitempty" firestore:"company,omitempty"`
	Verification Verification `json:"verification" firestore:"verification"`
	Subscription Subscription `json:"subscription" firestore:"subscription"`
	Stats        UserStats    `json:"stats" firestore:"stats"`

	LastLoginAt time.Time `json:"last_login_at,omitempty" firestore:"lastLoginAt,omitempty"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}

// TrialExpired reports whether the free trial window has passed. Only
// meaningful for suppliers on the free_trial subscription type.
func (u *User) TrialExpired(now time.Time, trialDays int) bool {
	if u.Subscription.Type != SubscriptionFreeTrial {
		return false
	}
	return now.After(u.Subscription.StartDate.AddDate(0, 0, trialDays))
}

// CanSell reports whether a supplier may create or update products: an
// unexpired trial, or an active paid subscription.
func (u *User) CanSell(now time.Time, trialDays int) bool {
	if u.Role != RoleSupplier {
		return false
	}
	if u.Subscription.Type == SubscriptionFreeTrial {
		return !u.TrialExpired(now, trialDays)
	}
	return u.Subscription.Active
}
