package repositories

import (
	"fmt"
	"strings"
	"sync"

	"resumebuilder/internal/models"

	"github.com/google/uuid"
)

// MockResumeRepository is an in-memory implementation of ResumeRepository.
type MockResumeRepository struct {
	resumes map[string]models.Resume
	mu      sync.RWMutex
}

// NewMockResumeRepository creates a new instance of MockResumeRepository.
func NewMockResumeRepository() *MockResumeRepository {
	return &MockResumeRepository{
		resumes: make(map[string]models.Resume),
	}
}

// Create stores a new resume, generating an ID if one is not provided.
func (r *MockResumeRepository) Create(resume *models.Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if resume.ID == "" {
		resume.ID = uuid.New().String()
	}
	if _, exists := r.resumes[resume.ID]; exists {
		return fmt.Errorf("resume with ID %s already exists", resume.ID)
	}
	r.resumes[resume.ID] = *resume
	return nil
}

// GetByOwner returns all resumes belonging to the given user.
func (r *MockResumeRepository) GetByOwner(userID string) ([]models.Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	resumeList := make([]models.Resume, 0)
	for _, res := range r.resumes {
		if res.UserID == userID {
			resumeList = append(resumeList, res)
		}
	}
	return resumeList, nil
}

// GetByIDAndOwner returns a resume only when both id and owner match.
func (r *MockResumeRepository) GetByIDAndOwner(id, userID string) (*models.Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, exists := r.resumes[id]
	if !exists || res.UserID != userID {
		return nil, fmt.Errorf("resume %s for user %s: %w", id, userID, ErrNotFound)
	}
	copied := res
	return &copied, nil
}

// Save upserts the resume.
func (r *MockResumeRepository) Save(resume *models.Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if resume.ID == "" {
		resume.ID = uuid.New().String()
	}
	r.resumes[resume.ID] = *resume
	return nil
}

// Delete removes the resume.
func (r *MockResumeRepository) Delete(resume *models.Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.resumes[resume.ID]; !exists {
		return fmt.Errorf("resume %s: %w", resume.ID, ErrNotFound)
	}
	delete(r.resumes, resume.ID)
	return nil
}

// CountByOwner counts the resumes belonging to the given user.
func (r *MockResumeRepository) CountByOwner(userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, res := range r.resumes {
		if res.UserID == userID {
			count++
		}
	}
	return count, nil
}

// DeleteByOwner removes every resume belonging to the given user.
func (r *MockResumeRepository) DeleteByOwner(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, res := range r.resumes {
		if res.UserID == userID {
			delete(r.resumes, id)
		}
	}
	return nil
}

// SearchByOwnerAndTitle returns the user's resumes whose title contains term.
func (r *MockResumeRepository) SearchByOwnerAndTitle(userID, term string) ([]models.Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	resumeList := make([]models.Resume, 0)
	for _, res := range r.resumes {
		if res.UserID == userID && strings.Contains(res.Title, term) {
			resumeList = append(resumeList, res)
		}
	}
	return resumeList, nil
}
