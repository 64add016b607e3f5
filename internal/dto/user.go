package dto

import (
	"time"

	"github.com/jaydipchangani/project-management-backend/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// optionalUser returns nil when the relation was not preloaded
func optionalUser(user models.User) *UserDTO {
	if user.ID == 0 {
		return nil
	}
	u := ToUserDTO(user)
	return &u
}

// AuthDTO is returned by a successful login
type AuthDTO struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}
