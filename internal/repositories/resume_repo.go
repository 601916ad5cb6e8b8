package repositories

import "resumebuilder/internal/models"

// ResumeRepository defines the interface for resume data access. Every scoped
// lookup takes the owner id so the composite (id, user_id) key is applied at
// the query, not filtered afterwards.
type ResumeRepository interface {
	Create(resume *models.Resume) error
	GetByOwner(userID string) ([]models.Resume, error)
	GetByIDAndOwner(id, userID string) (*models.Resume, error)
	Save(resume *models.Resume) error
	Delete(resume *models.Resume) error
	CountByOwner(userID string) (int64, error)
	DeleteByOwner(userID string) error
	SearchByOwnerAndTitle(userID, term string) ([]models.Resume, error)
}
