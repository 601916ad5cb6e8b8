package repositories

import (
	"errors"

	"resumebuilder/internal/models"
)

// ErrNotFound is returned when a lookup matches no record. Callers distinguish
// it from infrastructure failures with errors.Is.
var ErrNotFound = errors.New("record not found")

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByVerificationToken(token string) (*models.User, error)
	GetByPasswordResetToken(token string) (*models.User, error)
	ExistsByEmail(email string) (bool, error)
	Save(user *models.User) error
	Delete(user *models.User) error
}
