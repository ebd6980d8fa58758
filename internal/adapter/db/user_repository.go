package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"taskflow/internal/core/domain"
	"taskflow/internal/core/ports"
)

const selectUserQuery = `
SELECT id, username, email, name, role, manager_id, is_active, password_hash, created_at
FROM users`

const (
	insertUserQuery = `
INSERT INTO users (username, email, name, role, manager_id, is_active, password_hash, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	findUserByIDQuery       = selectUserQuery + ` WHERE id = ?`
	findUserByEmailQuery    = selectUserQuery + ` WHERE email = ?`
	findUserByUsernameQuery = selectUserQuery + ` WHERE username = ?`
	findUsersByIDsQuery     = selectUserQuery + ` WHERE id IN (?) ORDER BY id`
	countUsersQuery         = `SELECT COUNT(*) FROM users`

	updateUserQuery = `
UPDATE users
SET username = ?, email = ?, name = ?, role = ?, manager_id = ?, is_active = ?, password_hash = ?
WHERE id = ?`
)

type UserRepository struct {
	db *sqlx.DB
}

type userRow struct {
	ID           uint64        `db:"id"`
	Username     string        `db:"username"`
	Email        string        `db:"email"`
	Name         string        `db:"name"`
	Role         string        `db:"role"`
	ManagerID    sql.NullInt64 `db:"manager_id"`
	IsActive     bool          `db:"is_active"`
	PasswordHash string        `db:"password_hash"`
	CreatedAt    time.Time     `db:"created_at"`
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user domain.NewPrincipal) (domain.Principal, error) {
	result, err := executor(ctx, r.db).ExecContext(ctx, insertUserQuery,
		user.Username,
		user.Email,
		user.Name,
		string(user.Role),
		nullableID(user.ManagerID),
		true,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		if isMySQLError(err, mysqlErrDuplicateEntry) {
			return domain.Principal{}, domain.ErrUserAlreadyExists
		}
		return domain.Principal{}, fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.Principal{}, fmt.Errorf("read user id: %w", err)
	}

	return domain.Principal{
		ID:           uint64(id),
		Username:     user.Username,
		Email:        user.Email,
		Name:         user.Name,
		Role:         user.Role,
		ManagerID:    user.ManagerID,
		IsActive:     true,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (domain.Principal, error) {
	return r.findOne(ctx, findUserByIDQuery, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.Principal, error) {
	return r.findOne(ctx, findUserByEmailQuery, email)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (domain.Principal, error) {
	return r.findOne(ctx, findUserByUsernameQuery, username)
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []uint64) ([]domain.Principal, error) {
	if len(ids) == 0 {
		return []domain.Principal{}, nil
	}

	query, args, err := sqlx.In(findUsersByIDsQuery, ids)
	if err != nil {
		return nil, err
	}

	ext := executor(ctx, r.db)
	var rows []userRow
	if err := sqlx.SelectContext(ctx, ext, &rows, ext.Rebind(query), args...); err != nil {
		return nil, err
	}

	users := make([]domain.Principal, 0, len(rows))
	for _, row := range rows {
		users = append(users, mapUserRowToPrincipal(row))
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &count, countUsersQuery); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserRepository) Update(ctx context.Context, user domain.Principal) error {
	_, err := executor(ctx, r.db).ExecContext(ctx, updateUserQuery,
		user.Username,
		user.Email,
		user.Name,
		string(user.Role),
		nullableID(user.ManagerID),
		user.IsActive,
		user.PasswordHash,
		user.ID,
	)
	if err != nil {
		if isMySQLError(err, mysqlErrDuplicateEntry) {
			return domain.ErrUserAlreadyExists
		}
		return fmt.Errorf("update user %d: %w", user.ID, err)
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...any) (domain.Principal, error) {
	var row userRow
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Principal{}, domain.ErrUserNotFound
		}
		return domain.Principal{}, err
	}
	return mapUserRowToPrincipal(row), nil
}

func mapUserRowToPrincipal(row userRow) domain.Principal {
	principal := domain.Principal{
		ID:           row.ID,
		Username:     row.Username,
		Email:        row.Email,
		Name:         row.Name,
		Role:         domain.Role(row.Role),
		IsActive:     row.IsActive,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
	}

	if row.ManagerID.Valid {
		value := uint64(row.ManagerID.Int64)
		principal.ManagerID = &value
	}

	return principal
}

func nullableID(value *uint64) any {
	if value == nil {
		return nil
	}
	return *value
}
