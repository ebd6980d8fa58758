package memory

import (
	"context"
	"sort"
	"strings"

	"taskflow/internal/core/domain"
	"taskflow/internal/core/ports"
)

type UserRepository struct {
	store *Store
}

var _ ports.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(_ context.Context, input domain.NewPrincipal) (domain.Principal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, user := range r.store.data.users {
		if strings.EqualFold(user.Email, input.Email) || strings.EqualFold(user.Username, input.Username) {
			return domain.Principal{}, domain.ErrUserAlreadyExists
		}
	}

	user := domain.Principal{
		ID:           r.store.data.nextUserID,
		Username:     input.Username,
		Email:        input.Email,
		Name:         input.Name,
		Role:         input.Role,
		ManagerID:    input.ManagerID,
		IsActive:     true,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
	}
	r.store.data.users[user.ID] = user
	r.store.data.nextUserID++

	return user, nil
}

func (r *UserRepository) FindByID(_ context.Context, id uint64) (domain.Principal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.data.users[id]
	if !ok {
		return domain.Principal{}, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *UserRepository) FindByIDs(_ context.Context, ids []uint64) ([]domain.Principal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users := make([]domain.Principal, 0, len(ids))
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if user, ok := r.store.data.users[id]; ok {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	return users, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (domain.Principal, error) {
	return r.findBy(func(user domain.Principal) bool { return strings.EqualFold(user.Email, email) })
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (domain.Principal, error) {
	return r.findBy(func(user domain.Principal) bool { return strings.EqualFold(user.Username, username) })
}

func (r *UserRepository) Count(_ context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return len(r.store.data.users), nil
}

func (r *UserRepository) Update(_ context.Context, user domain.Principal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.data.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for id, other := range r.store.data.users {
		if id != user.ID && (strings.EqualFold(other.Email, user.Email) || strings.EqualFold(other.Username, user.Username)) {
			return domain.ErrUserAlreadyExists
		}
	}
	r.store.data.users[user.ID] = user

	return nil
}

func (r *UserRepository) findBy(match func(domain.Principal) bool) (domain.Principal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, user := range r.store.data.users {
		if match(user) {
			return user, nil
		}
	}
	return domain.Principal{}, domain.ErrUserNotFound
}
