package repositories

import "attire/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	// UpdateRoleByEmail sets the role of the user with the given email.
	UpdateRoleByEmail(email string, role string) error
}
