package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User is a survey owner account
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Email        string    `json:"email" bson:"email"`
	Name         string    `json:"name" bson:"name"`
	PasswordHash []byte    `json:"-" bson:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// OwnerClaims are JWT claims for survey owner tokens
type OwnerClaims struct {
	OwnerID string `json:"ownerId"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

// RegisterRequest is the request body for owner registration
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest is the request body for owner login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful register/login
type LoginResponse struct {
	Token   string `json:"token"`
	OwnerID string `json:"ownerId"`
	Email   string `json:"email"`
}
