package repositories

import (
	"errors"
	"fmt"

	"resumebuilder/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by their ID.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	return r.first("id = ?", id)
}

// GetByEmail retrieves a user by their email. The email is a case-sensitive key.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	return r.first("email = ?", email)
}

// GetByVerificationToken retrieves a user holding the given verification token.
func (r *GORMUserRepository) GetByVerificationToken(token string) (*models.User, error) {
	return r.first("verification_token = ?", token)
}

// GetByPasswordResetToken retrieves a user holding the given reset token.
func (r *GORMUserRepository) GetByPasswordResetToken(token string) (*models.User, error) {
	return r.first("password_reset_token = ?", token)
}

// ExistsByEmail reports whether a user with the given email exists.
func (r *GORMUserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return count > 0, nil
}

// Save upserts the user, persisting any security-state mutation.
func (r *GORMUserRepository) Save(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// Delete removes the user row permanently. A soft delete would keep the
// email's unique index entry and block the address from ever registering
// again.
func (r *GORMUserRepository) Delete(user *models.User) error {
	if err := r.db.Unscoped().Delete(user).Error; err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (r *GORMUserRepository) first(query string, arg string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user lookup %q: %w", query, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by %q: %w", query, err)
	}
	return &user, nil
}
