package ports

import (
	"context"

	"taskflow/internal/core/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.NewPrincipal) (domain.Principal, error)
	FindByID(ctx context.Context, id uint64) (domain.Principal, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.Principal, error)
	FindByEmail(ctx context.Context, email string) (domain.Principal, error)
	FindByUsername(ctx context.Context, username string) (domain.Principal, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, user domain.Principal) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(principal domain.Principal) (domain.AccessToken, error)
	Parse(token string) (domain.TokenClaims, error)
}

type IdentityService interface {
	Authenticate(ctx context.Context, credentials domain.Credentials) (domain.Principal, error)
	Login(ctx context.Context, credentials domain.Credentials) (domain.AccessToken, error)
	CurrentPrincipal(ctx context.Context, token string) (domain.Principal, error)
	RegisterUser(ctx context.Context, actor domain.Principal, input domain.RegisterUserInput) (domain.Principal, error)
	Profile(ctx context.Context, actor domain.Principal) (domain.Profile, error)
	UpdateProfile(ctx context.Context, actor domain.Principal, input domain.UpdateProfileInput) (domain.Principal, error)
	EnsureSeedAdmin(ctx context.Context, seed domain.SeedAdmin) (bool, error)
}
