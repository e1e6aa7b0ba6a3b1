package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Member is a storefront customer keyed by mobile phone number, with the
// saved pickup points the checkout form is pre-filled from.
type Member struct {
	Phone           string    `json:"phone"`
	Name            string    `json:"name,omitempty"`
	Email           string    `json:"email,omitempty"`
	Store711        string    `json:"store_711,omitempty"`
	Store711Note    string    `json:"store_711_note,omitempty"`
	StoreFami       string    `json:"store_fami,omitempty"`
	StoreFamiNote   string    `json:"store_fami_note,omitempty"`
	ShippingAddress string    `json:"shipping_address,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// LoginRequest carries the quick phone login: a Taiwanese mobile number,
// 09 followed by eight digits.
type LoginRequest struct {
	Phone string `json:"phone" validate:"required,len=10,numeric,startswith=09"`
}

type LoginResponse struct {
	Token      string  `json:"token,omitempty"`
	ExpiresIn  int     `json:"expires_in,omitempty"`
	RetryAfter int     `json:"retry_after,omitempty"`
	Member     *Member `json:"member,omitempty"`
}

// UpdateProfileRequest updates one or more profile sections. Convenience
// store numbers are always six digits.
type UpdateProfileRequest struct {
	Name            *string `json:"name,omitempty"`
	Email           *string `json:"email,omitempty" validate:"omitempty,email"`
	Store711        *string `json:"store_711,omitempty" validate:"omitempty,len=6,numeric"`
	Store711Note    *string `json:"store_711_note,omitempty"`
	StoreFami       *string `json:"store_fami,omitempty" validate:"omitempty,len=6,numeric"`
	StoreFamiNote   *string `json:"store_fami_note,omitempty"`
	ShippingAddress *string `json:"shipping_address,omitempty"`
}

// Claims is the JWT session payload for a logged-in member.
type Claims struct {
	Phone string `json:"phone"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}
