package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portfoliotracker/internal/domain"
	"portfoliotracker/internal/repository"
)

type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
	Rut   *string `json:"rut"`
	Phone *string `json:"phone"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Rut       *string   `json:"rut,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

func (m ApiHandler) updateUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		returnBadRequestJson(fmt.Errorf("invalid user id: %w", err), c)
		return
	}

	var body updateUserRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		returnBadRequestJson(err, c)
		return
	}
	if body.Name == nil && body.Email == nil && body.Rut == nil && body.Phone == nil {
		returnBadRequestJson(fmt.Errorf("at least one field must be provided"), c)
		return
	}

	user, err := m.UserService.Update(c.Request.Context(), userID, repository.UserUpdate{
		Name:  body.Name,
		Email: body.Email,
		Rut:   body.Rut,
		Phone: body.Phone,
	})
	if err != nil {
		m.returnErrorJson(err, c)
		return
	}

	successJson(c, 200, userResponseFromDomain(user), "User updated")
}

func userResponseFromDomain(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Rut:       u.Rut,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
