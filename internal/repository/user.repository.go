package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"portfoliotracker/internal/domain"
)

const (
	_insertUser = `INSERT INTO users (id, name, email, rut, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, email, rut, phone, created_at, updated_at`
	_getUser = `SELECT id, name, email, rut, phone, created_at, updated_at
		FROM users WHERE id = $1`
	_updateUser = `UPDATE users
		SET name = COALESCE($2, name), email = COALESCE($3, email),
			rut = COALESCE($4, rut), phone = COALESCE($5, phone), updated_at = $6
		WHERE id = $1
		RETURNING id, name, email, rut, phone, created_at, updated_at`
)

type UserUpdate struct {
	Name  *string
	Email *string
	Rut   *string
	Phone *string
}

type UserRepository interface {
	Add(ctx context.Context, user domain.User) (*domain.User, error)
	Get(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, userID uuid.UUID, update UserUpdate) (*domain.User, error)
}

type userRepositoryHandler struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return userRepositoryHandler{db: db}
}

func (h userRepositoryHandler) Add(ctx context.Context, user domain.User) (*domain.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	out := domain.User{}
	err := h.db.GetContext(ctx, &out, _insertUser,
		user.ID,
		user.Name,
		user.Email,
		user.Rut,
		user.Phone,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &out, nil
}

func (h userRepositoryHandler) Get(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	out := domain.User{}
	err := h.db.GetContext(ctx, &out, _getUser, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}

	return &out, nil
}

func (h userRepositoryHandler) Update(ctx context.Context, userID uuid.UUID, update UserUpdate) (*domain.User, error) {
	out := domain.User{}
	err := h.db.GetContext(ctx, &out, _updateUser,
		userID,
		update.Name,
		update.Email,
		update.Rut,
		update.Phone,
		time.Now().UTC(),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", userID, err)
	}

	return &out, nil
}
