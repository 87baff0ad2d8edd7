package project

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/collect5/collect5/internal/db/models"
)

// ErrProjectNotFound is returned when no project exists for a slug.
var ErrProjectNotFound = errors.New("project not found")

// Store loads projects and their parsed definitions.
type Store struct {
	db *gorm.DB
}

// NewStore creates a project store on top of the given database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindBySlug loads a project row by slug and parses its definition.
// The definition is immutable for the duration of a request; callers keep
// the returned pointer for the request lifetime instead of re-reading.
func (s *Store) FindBySlug(slug string) (*models.Project, *Definition, error) {
	var proj models.Project

	result := s.db.Where("slug = ?", slug).First(&proj)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProjectNotFound
		}

		return nil, nil, result.Error
	}

	def, err := Parse(proj.Definition)
	if err != nil {
		return nil, nil, err
	}

	return &proj, def, nil
}

// RoleFor returns the role the user holds on the project, or "" when the
// user holds none.
func (s *Store) RoleFor(userID, projectID uint64) (models.Role, error) {
	if userID == 0 {
		return "", nil
	}

	var pr models.ProjectRole

	result := s.db.Where("user_id = ? AND project_id = ?", userID, projectID).First(&pr)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}

		return "", result.Error
	}

	return pr.Role, nil
}
