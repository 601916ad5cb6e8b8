package repositories

import (
	"errors"
	"fmt"

	"resumebuilder/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMResumeRepository is a GORM implementation of ResumeRepository.
type GORMResumeRepository struct {
	db *gorm.DB
}

// NewGORMResumeRepository creates a new instance of GORMResumeRepository.
func NewGORMResumeRepository(db *gorm.DB) *GORMResumeRepository {
	return &GORMResumeRepository{
		db: db,
	}
}

// Create creates a new resume in the database.
func (r *GORMResumeRepository) Create(resume *models.Resume) error {
	if resume.ID == "" {
		resume.ID = uuid.New().String()
	}
	if err := r.db.Create(resume).Error; err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}
	return nil
}

// GetByOwner retrieves all resumes belonging to the given user.
func (r *GORMResumeRepository) GetByOwner(userID string) ([]models.Resume, error) {
	var resumes []models.Resume
	if err := r.db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&resumes).Error; err != nil {
		return nil, fmt.Errorf("failed to list resumes for user %s: %w", userID, err)
	}
	return resumes, nil
}

// GetByIDAndOwner retrieves a resume by the composite (id, user_id) key.
// A resume id alone never authorizes access.
func (r *GORMResumeRepository) GetByIDAndOwner(id, userID string) (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&resume).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("resume %s for user %s: %w", id, userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get resume %s: %w", id, err)
	}
	return &resume, nil
}

// Save upserts the resume.
func (r *GORMResumeRepository) Save(resume *models.Resume) error {
	if err := r.db.Save(resume).Error; err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	return nil
}

// Delete removes the resume row permanently.
func (r *GORMResumeRepository) Delete(resume *models.Resume) error {
	if err := r.db.Unscoped().Delete(resume).Error; err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	return nil
}

// CountByOwner counts the resumes belonging to the given user.
func (r *GORMResumeRepository) CountByOwner(userID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Resume{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count resumes for user %s: %w", userID, err)
	}
	return count, nil
}

// DeleteByOwner permanently removes every resume belonging to the given user.
func (r *GORMResumeRepository) DeleteByOwner(userID string) error {
	if err := r.db.Unscoped().Where("user_id = ?", userID).Delete(&models.Resume{}).Error; err != nil {
		return fmt.Errorf("failed to delete resumes for user %s: %w", userID, err)
	}
	return nil
}

// SearchByOwnerAndTitle retrieves the user's resumes whose title contains term.
func (r *GORMResumeRepository) SearchByOwnerAndTitle(userID, term string) ([]models.Resume, error) {
	var resumes []models.Resume
	pattern := "%" + term + "%"
	if err := r.db.Where("user_id = ? AND title LIKE ?", userID, pattern).Find(&resumes).Error; err != nil {
		return nil, fmt.Errorf("failed to search resumes for user %s: %w", userID, err)
	}
	return resumes, nil
}
