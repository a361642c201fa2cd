package core

import "github.com/golang-jwt/jwt/v4"

type Claims struct {
	UUID   string `json:"uuid"`
	Role   Role   `json:"role"`
	Email  string `json:"email"`
	UserID string `json:"_id"`
	jwt.RegisteredClaims
}

// gin context keys set by the auth middleware
const (
	ContextUserKey   = "authUser"
	ContextClaimsKey = "authClaims"
)
