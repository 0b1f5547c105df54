package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the identity token claims issued by the auth provider
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Identity is the verified caller identity handed to the application
type Identity struct {
	Subject string
	Email   string
	Name    string
}
