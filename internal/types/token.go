package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims in a household JWT token
type TokenClaims struct {
	jwt.RegisteredClaims
	Household string `json:"household"`
	PersonA   string `json:"person_a,omitempty"`
	PersonB   string `json:"person_b,omitempty"`
}
