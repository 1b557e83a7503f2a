package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"portfoliotracker/internal/domain"
	"portfoliotracker/internal/repository"
)

// ValidationService answers existence checks before mutations and before
// reads that require an existing portfolio.
type ValidationService interface {
	ValidatePortfolioAndUser(ctx context.Context, portfolioID, userID uuid.UUID) error
	PortfolioExists(ctx context.Context, portfolioID uuid.UUID) (bool, error)
	UserExists(ctx context.Context, userID uuid.UUID) (bool, error)
}

type validationServiceHandler struct {
	PortfolioRepository repository.PortfolioRepository
	UserRepository      repository.UserRepository
}

func NewValidationService(
	portfolioRepository repository.PortfolioRepository,
	userRepository repository.UserRepository,
) ValidationService {
	return validationServiceHandler{
		PortfolioRepository: portfolioRepository,
		UserRepository:      userRepository,
	}
}

func (h validationServiceHandler) ValidatePortfolioAndUser(ctx context.Context, portfolioID, userID uuid.UUID) error {
	if _, err := h.PortfolioRepository.Get(ctx, portfolioID); err != nil {
		return err
	}
	if _, err := h.UserRepository.Get(ctx, userID); err != nil {
		return err
	}
	return nil
}

func (h validationServiceHandler) PortfolioExists(ctx context.Context, portfolioID uuid.UUID) (bool, error) {
	_, err := h.PortfolioRepository.Get(ctx, portfolioID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (h validationServiceHandler) UserExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	_, err := h.UserRepository.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
