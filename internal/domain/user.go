package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

type User struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	Active       bool   `json:"active"`
}

type Claims struct {
	UserName  string `json:"name"`
	UserEmail string `json:"email"`
	UserRole  string `json:"role"`
	jwt.RegisteredClaims
}

// AnonymousAdmin é usado quando a autenticação está desabilitada
var AnonymousAdmin = &Claims{
	UserName:  "anônimo",
	UserEmail: "",
	UserRole:  RoleAdmin,
}
