package domain

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func ParseRole(value string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrValidation, value)
	}
}

// Principal is an authenticated actor. ManagerID is only set for users and
// always references an admin; it is resolved by lookup, never held as a pointer.
type Principal struct {
	ID           uint64
	Username     string
	Email        string
	Name         string
	Role         Role
	ManagerID    *uint64
	IsActive     bool
	PasswordHash string
	CreatedAt    time.Time
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// RequireRole is the single capability check used at every operation gate.
func RequireRole(p Principal, role Role) error {
	if p.Role != role {
		return fmt.Errorf("%w: %s role required", ErrForbidden, role)
	}
	return nil
}

type NewPrincipal struct {
	Username     string
	Email        string
	Name         string
	Role         Role
	ManagerID    *uint64
	PasswordHash string
	CreatedAt    time.Time
}

type RegisterUserInput struct {
	Email    string
	Name     string
	Password string
	Role     Role
}

type UpdateProfileInput struct {
	Name     *string
	Email    *string
	Password *string
}

type Profile struct {
	Principal   Principal
	ManagerName *string
}

type Credentials struct {
	Identifier string
	Secret     string
}

type AccessToken struct {
	Token     string
	TokenType string
	ExpiresAt time.Time
}

type TokenClaims struct {
	PrincipalID uint64
	Email       string
	Role        Role
}

type SeedAdmin struct {
	Email    string
	Name     string
	Password string
}
