package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"taskflow/internal/core/domain"
	"taskflow/internal/core/ports"
)

type IdentityService struct {
	transactor     ports.Transactor
	userRepository ports.UserRepository
	hasher         ports.PasswordHasher
	tokens         ports.TokenIssuer
	now            func() time.Time
}

func NewIdentityService(
	transactor ports.Transactor,
	userRepository ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
) *IdentityService {
	return &IdentityService{
		transactor:     transactor,
		userRepository: userRepository,
		hasher:         hasher,
		tokens:         tokens,
		now:            time.Now,
	}
}

// Authenticate resolves an email or username plus secret to exactly one
// principal. Every failure cause collapses into ErrUnauthenticated.
func (s *IdentityService) Authenticate(ctx context.Context, credentials domain.Credentials) (domain.Principal, error) {
	identifier := strings.TrimSpace(credentials.Identifier)
	if identifier == "" || credentials.Secret == "" {
		return domain.Principal{}, domain.ErrUnauthenticated
	}

	principal, err := s.userRepository.FindByEmail(ctx, identifier)
	if errors.Is(err, domain.ErrUserNotFound) {
		principal, err = s.userRepository.FindByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Principal{}, domain.ErrUnauthenticated
		}
		return domain.Principal{}, err
	}

	if !principal.IsActive {
		return domain.Principal{}, domain.ErrUnauthenticated
	}
	if err := s.hasher.Compare(principal.PasswordHash, credentials.Secret); err != nil {
		return domain.Principal{}, domain.ErrUnauthenticated
	}

	return principal, nil
}

func (s *IdentityService) Login(ctx context.Context, credentials domain.Credentials) (domain.AccessToken, error) {
	principal, err := s.Authenticate(ctx, credentials)
	if err != nil {
		return domain.AccessToken{}, err
	}

	token, err := s.tokens.Issue(principal)
	if err != nil {
		return domain.AccessToken{}, fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

func (s *IdentityService) CurrentPrincipal(ctx context.Context, token string) (domain.Principal, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return domain.Principal{}, err
	}

	principal, err := s.userRepository.FindByID(ctx, claims.PrincipalID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Principal{}, domain.ErrUnauthenticated
		}
		return domain.Principal{}, err
	}
	if !principal.IsActive {
		return domain.Principal{}, domain.ErrUnauthenticated
	}

	return principal, nil
}

// RegisterUser creates a principal on behalf of an admin. A new user is
// managed by the admin that registered it; a new admin has no manager.
func (s *IdentityService) RegisterUser(ctx context.Context, actor domain.Principal, input domain.RegisterUserInput) (domain.Principal, error) {
	if err := domain.RequireRole(actor, domain.RoleAdmin); err != nil {
		return domain.Principal{}, err
	}

	role, err := domain.ParseRole(string(input.Role))
	if err != nil {
		return domain.Principal{}, err
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return domain.Principal{}, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.Principal{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if input.Password == "" {
		return domain.Principal{}, fmt.Errorf("%w: password is required", domain.ErrValidation)
	}

	var managerID *uint64
	if role == domain.RoleUser {
		id := actor.ID
		managerID = &id
	}

	var created domain.Principal
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureEmailAvailable(ctx, email, 0); err != nil {
			return err
		}

		hash, err := s.hasher.Hash(input.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		created, err = s.userRepository.Create(ctx, domain.NewPrincipal{
			Username:     email,
			Email:        email,
			Name:         name,
			Role:         role,
			ManagerID:    managerID,
			PasswordHash: hash,
			CreatedAt:    s.now().UTC(),
		})
		return err
	})
	if err != nil {
		return domain.Principal{}, err
	}

	return created, nil
}

func (s *IdentityService) Profile(ctx context.Context, actor domain.Principal) (domain.Profile, error) {
	profile := domain.Profile{Principal: actor}
	if actor.IsAdmin() {
		return profile, nil
	}

	if actor.ManagerID == nil {
		return domain.Profile{}, domain.ErrManagerNotFound
	}
	manager, err := s.userRepository.FindByID(ctx, *actor.ManagerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Profile{}, domain.ErrManagerNotFound
		}
		return domain.Profile{}, err
	}

	name := manager.Name
	profile.ManagerName = &name
	return profile, nil
}

func (s *IdentityService) UpdateProfile(ctx context.Context, actor domain.Principal, input domain.UpdateProfileInput) (domain.Principal, error) {
	var updated domain.Principal
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.userRepository.FindByID(ctx, actor.ID)
		if err != nil {
			return err
		}

		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return fmt.Errorf("%w: name must not be empty", domain.ErrValidation)
			}
			current.Name = name
		}

		if input.Email != nil {
			email, err := normalizeEmail(*input.Email)
			if err != nil {
				return err
			}
			if err := s.ensureEmailAvailable(ctx, email, current.ID); err != nil {
				return err
			}
			if current.Username == current.Email {
				current.Username = email
			}
			current.Email = email
		}

		if input.Password != nil {
			if *input.Password == "" {
				return fmt.Errorf("%w: password must not be empty", domain.ErrValidation)
			}
			hash, err := s.hasher.Hash(*input.Password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			current.PasswordHash = hash
		}

		if err := s.userRepository.Update(ctx, current); err != nil {
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		return domain.Principal{}, err
	}

	return updated, nil
}

// EnsureSeedAdmin inserts the seed admin only when the store holds no
// principals. It reports whether an admin was created.
func (s *IdentityService) EnsureSeedAdmin(ctx context.Context, seed domain.SeedAdmin) (bool, error) {
	created := false
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		count, err := s.userRepository.Count(ctx)
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		if count > 0 {
			return nil
		}

		email, err := normalizeEmail(seed.Email)
		if err != nil {
			return err
		}
		hash, err := s.hasher.Hash(seed.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		admin, err := s.userRepository.Create(ctx, domain.NewPrincipal{
			Username:     email,
			Email:        email,
			Name:         seed.Name,
			Role:         domain.RoleAdmin,
			PasswordHash: hash,
			CreatedAt:    s.now().UTC(),
		})
		if err != nil {
			return err
		}

		zap.L().Info("seed admin created", zap.Uint64("user_id", admin.ID), zap.String("email", admin.Email))
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return created, nil
}

func (s *IdentityService) ensureEmailAvailable(ctx context.Context, email string, ownerID uint64) error {
	existing, err := s.userRepository.FindByEmail(ctx, email)
	if err == nil && existing.ID != ownerID {
		return domain.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	existing, err = s.userRepository.FindByUsername(ctx, email)
	if err == nil && existing.ID != ownerID {
		return domain.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	return nil
}

var emailValidator = validator.New()

func normalizeEmail(value string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(value))
	if err := emailValidator.Var(email, "required,email"); err != nil {
		return "", fmt.Errorf("%w: invalid email %q", domain.ErrValidation, value)
	}
	return email, nil
}

var _ ports.IdentityService = (*IdentityService)(nil)
