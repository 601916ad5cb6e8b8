package services

import (
	"errors"
	"fmt"

	"resumebuilder/internal/models"
	"resumebuilder/internal/repositories"
)

// freeResumeLimit caps non-premium owners. The limit is a rule callers check
// before creating, not an automatic guard inside Create.
const freeResumeLimit = 3

// ResumeService handles ownership-checked CRUD over resume records. Every
// read, update, and delete is keyed by (resume id, owner id) jointly; a
// missing record and a foreign record are indistinguishable to the caller.
type ResumeService struct {
	resumeRepo repositories.ResumeRepository
}

// NewResumeService creates a new ResumeService.
func NewResumeService(resumeRepo repositories.ResumeRepository) *ResumeService {
	return &ResumeService{
		resumeRepo: resumeRepo,
	}
}

// Create stores a new resume stamped with the authenticated owner. Any owner
// id supplied by the caller is ignored.
func (s *ResumeService) Create(resume *models.Resume, ownerID string) (*models.Resume, error) {
	resume.ID = ""
	resume.UserID = ownerID
	if resume.Template == "" {
		resume.Template = "modern"
	}
	if resume.ColorTheme == "" {
		resume.ColorTheme = "blue"
	}

	if err := s.resumeRepo.Create(resume); err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return resume, nil
}

// ListByOwner retrieves all resumes belonging to the owner.
func (s *ResumeService) ListByOwner(ownerID string) ([]models.Resume, error) {
	return s.resumeRepo.GetByOwner(ownerID)
}

// GetByID retrieves a resume by the composite (id, owner) key.
func (s *ResumeService) GetByID(id, ownerID string) (*models.Resume, error) {
	resume, err := s.resumeRepo.GetByIDAndOwner(id, ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFoundOrForbidden
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return resume, nil
}

// Update replaces the stored resume's content with the given one, preserving
// the identity and owner of the existing record.
func (s *ResumeService) Update(id, ownerID string, updated *models.Resume) (*models.Resume, error) {
	existing, err := s.GetByID(id, ownerID)
	if err != nil {
		return nil, err
	}

	updated.ID = existing.ID
	updated.UserID = ownerID
	updated.CreatedAt = existing.CreatedAt
	if err := s.resumeRepo.Save(updated); err != nil {
		return nil, fmt.Errorf("failed to update resume: %w", err)
	}
	return updated, nil
}

// UpdateTitle renames the resume.
func (s *ResumeService) UpdateTitle(id, ownerID, title string) (*models.Resume, error) {
	return s.patch(id, ownerID, func(r *models.Resume) { r.Title = title })
}

// UpdateTemplate switches the template selector.
func (s *ResumeService) UpdateTemplate(id, ownerID, template string) (*models.Resume, error) {
	return s.patch(id, ownerID, func(r *models.Resume) { r.Template = template })
}

// UpdateColorTheme switches the color theme selector.
func (s *ResumeService) UpdateColorTheme(id, ownerID, colorTheme string) (*models.Resume, error) {
	return s.patch(id, ownerID, func(r *models.Resume) { r.ColorTheme = colorTheme })
}

func (s *ResumeService) patch(id, ownerID string, mutate func(*models.Resume)) (*models.Resume, error) {
	resume, err := s.GetByID(id, ownerID)
	if err != nil {
		return nil, err
	}

	mutate(resume)
	if err := s.resumeRepo.Save(resume); err != nil {
		return nil, fmt.Errorf("failed to update resume: %w", err)
	}
	return resume, nil
}

// Delete removes the resume identified by the composite (id, owner) key.
func (s *ResumeService) Delete(id, ownerID string) error {
	resume, err := s.GetByID(id, ownerID)
	if err != nil {
		return err
	}

	if err := s.resumeRepo.Delete(resume); err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	return nil
}

// Search retrieves the owner's resumes whose title contains the term.
func (s *ResumeService) Search(ownerID, term string) ([]models.Resume, error) {
	return s.resumeRepo.SearchByOwnerAndTitle(ownerID, term)
}

// Count counts the owner's resumes.
func (s *ResumeService) Count(ownerID string) (int64, error) {
	return s.resumeRepo.CountByOwner(ownerID)
}

// CanCreateMore reports whether the owner may create another resume.
// Premium owners are unlimited; everyone else is capped.
func (s *ResumeService) CanCreateMore(ownerID string, isPremium bool) (bool, error) {
	if isPremium {
		return true, nil
	}

	count, err := s.resumeRepo.CountByOwner(ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to count resumes: %w", err)
	}
	return count < freeResumeLimit, nil
}

// DeleteAllForOwner removes every resume belonging to the owner.
func (s *ResumeService) DeleteAllForOwner(ownerID string) error {
	return s.resumeRepo.DeleteByOwner(ownerID)
}
