package services

import (
	"errors"
	"fmt"
	"time"

	"resumebuilder/internal/models"
	"resumebuilder/internal/repositories"
)

// UserService handles profile management and account deletion for an
// already-authenticated principal.
type UserService struct {
	userRepo   repositories.UserRepository
	resumeRepo repositories.ResumeRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, resumeRepo repositories.ResumeRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		resumeRepo: resumeRepo,
	}
}

// GetByEmail retrieves a user by email.
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateProfile updates the mutable profile fields. Blank inputs leave the
// existing value untouched.
func (s *UserService) UpdateProfile(email, firstName, lastName, phone string) (*models.User, error) {
	user, err := s.GetByEmail(email)
	if err != nil {
		return nil, err
	}

	if firstName != "" {
		user.FirstName = firstName
	}
	if lastName != "" {
		user.LastName = lastName
	}
	if phone != "" {
		user.Phone = phone
	}

	if err := s.userRepo.Save(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// UpdateProfileImage replaces the profile image URL.
func (s *UserService) UpdateProfileImage(email, imageURL string) (*models.User, error) {
	user, err := s.GetByEmail(email)
	if err != nil {
		return nil, err
	}

	user.ProfileImageURL = imageURL
	if err := s.userRepo.Save(user); err != nil {
		return nil, fmt.Errorf("failed to update profile image: %w", err)
	}
	return user, nil
}

// Stats builds the account summary, including the live resume count.
func (s *UserService) Stats(email string) (models.UserStats, error) {
	user, err := s.GetByEmail(email)
	if err != nil {
		return models.UserStats{}, err
	}

	count, err := s.resumeRepo.CountByOwner(user.ID)
	if err != nil {
		return models.UserStats{}, fmt.Errorf("failed to count resumes: %w", err)
	}

	return models.UserStats{
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		IsPremium:       user.IsPremium,
		IsPremiumActive: user.IsPremiumActive(time.Now()),
		MemberSince:     user.CreatedAt,
		ResumeCount:     count,
	}, nil
}

// DeleteAccount removes the user's resumes and then the user itself.
func (s *UserService) DeleteAccount(email string) error {
	user, err := s.GetByEmail(email)
	if err != nil {
		return err
	}

	if err := s.resumeRepo.DeleteByOwner(user.ID); err != nil {
		return fmt.Errorf("failed to delete resumes: %w", err)
	}
	if err := s.userRepo.Delete(user); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}
