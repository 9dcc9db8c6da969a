package domain

import "github.com/golang-jwt/jwt/v5"

const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// Claims é o conteúdo do JWT aceito pela API administrativa
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
