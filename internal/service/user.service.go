package service

import (
	"context"

	"github.com/google/uuid"

	"portfoliotracker/internal/domain"
	"portfoliotracker/internal/repository"
)

type UserService interface {
	Update(ctx context.Context, userID uuid.UUID, update repository.UserUpdate) (*domain.User, error)
}

type userServiceHandler struct {
	UserRepository repository.UserRepository
}

func NewUserService(userRepository repository.UserRepository) UserService {
	return userServiceHandler{UserRepository: userRepository}
}

func (h userServiceHandler) Update(ctx context.Context, userID uuid.UUID, update repository.UserUpdate) (*domain.User, error) {
	return h.UserRepository.Update(ctx, userID, update)
}
