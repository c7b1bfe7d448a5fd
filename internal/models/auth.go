package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the JWT claims issued by the user-service
type TokenClaims struct {
	Type    string `json:"type"` // "access" or "refresh"
	UserID  int64  `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// TokenPair holds an access/refresh token pair
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
