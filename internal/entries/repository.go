package entries

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/collect5/collect5/internal/db/models"
)

// Repository persists entries and branch entries for one project scope.
// All mutating methods are expected to run inside a Transaction so counter
// updates commit or roll back together with the row they belong to.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository on top of the given database handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Transaction runs fn inside a database transaction. The repository handed
// to fn is bound to the transaction; any error returned rolls everything
// back.
func (r *Repository) Transaction(fn func(tx *Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// forUpdate adds a FOR UPDATE row lock on dialects that support it.
// SQLite (tests) serializes writers on its own and rejects the syntax.
func (r *Repository) forUpdate(tx *gorm.DB) *gorm.DB {
	if r.db.Dialector.Name() == "sqlite" {
		return tx
	}

	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// FindEntry returns the entry with the given uuid, or nil when absent.
func (r *Repository) FindEntry(projectID uint64, entryUUID string) (*models.Entry, error) {
	var e models.Entry

	result := r.db.Where("project_id = ? AND uuid = ?", projectID, entryUUID).First(&e)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, result.Error
	}

	return &e, nil
}

// FindEntryLocked is FindEntry with a FOR UPDATE lock, serializing
// concurrent counter updates on the same parent/owner row.
func (r *Repository) FindEntryLocked(projectID uint64, entryUUID string) (*models.Entry, error) {
	var e models.Entry

	result := r.forUpdate(r.db).Where("project_id = ? AND uuid = ?", projectID, entryUUID).First(&e)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, result.Error
	}

	return &e, nil
}

// FindBranchEntry returns the branch entry with the given uuid, or nil when absent.
func (r *Repository) FindBranchEntry(projectID uint64, branchUUID string) (*models.BranchEntry, error) {
	var b models.BranchEntry

	result := r.db.Where("project_id = ? AND uuid = ?", projectID, branchUUID).First(&b)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, result.Error
	}

	return &b, nil
}

// CreateEntry inserts a new entry row.
func (r *Repository) CreateEntry(e *models.Entry) error {
	return r.db.Create(e).Error
}

// SaveEntry updates an existing entry row in place.
func (r *Repository) SaveEntry(e *models.Entry) error {
	return r.db.Save(e).Error
}

// CreateBranchEntry inserts a new branch entry row.
func (r *Repository) CreateBranchEntry(b *models.BranchEntry) error {
	return r.db.Create(b).Error
}

// SaveBranchEntry updates an existing branch entry row in place.
func (r *Repository) SaveBranchEntry(b *models.BranchEntry) error {
	return r.db.Save(b).Error
}

// EntriesByForm returns all entries of one form in one project.
func (r *Repository) EntriesByForm(projectID uint64, formRef string) ([]models.Entry, error) {
	var out []models.Entry

	result := r.db.Where("project_id = ? AND form_ref = ?", projectID, formRef).Order("id").Find(&out)
	if result.Error != nil {
		return nil, result.Error
	}

	return out, nil
}

// BranchEntriesByInput returns all branch entry rows of one branch input,
// project-wide (across all owner entries).
func (r *Repository) BranchEntriesByInput(projectID uint64, ownerInputRef string) ([]models.BranchEntry, error) {
	var out []models.BranchEntry

	result := r.db.Where("project_id = ? AND owner_input_ref = ?", projectID, ownerInputRef).Order("id").Find(&out)
	if result.Error != nil {
		return nil, result.Error
	}

	return out, nil
}

// BranchEntriesByOwner returns the branch rows stored under one owner entry
// and branch input.
func (r *Repository) BranchEntriesByOwner(projectID uint64, ownerUUID, ownerInputRef string) ([]models.BranchEntry, error) {
	var out []models.BranchEntry

	result := r.db.
		Where("project_id = ? AND owner_uuid = ? AND owner_input_ref = ?", projectID, ownerUUID, ownerInputRef).
		Order("id").
		Find(&out)
	if result.Error != nil {
		return nil, result.Error
	}

	return out, nil
}

// DeleteBranches removes all branch rows stored under one owner entry and
// branch input. Used when an edit jumps a branch.
func (r *Repository) DeleteBranches(projectID uint64, ownerUUID, ownerInputRef string) error {
	return r.db.
		Where("project_id = ? AND owner_uuid = ? AND owner_input_ref = ?", projectID, ownerUUID, ownerInputRef).
		Delete(&models.BranchEntry{}).Error
}

// parentPointer is a slim projection used to build the hierarchy index.
type parentPointer struct {
	UUID       string
	ParentUUID string
}

// ParentIndex returns a uuid to parent-uuid index over all entries of a
// project, the arena the root resolution walks over.
func (r *Repository) ParentIndex(projectID uint64) (map[string]string, error) {
	var rows []parentPointer

	result := r.db.Model(&models.Entry{}).
		Select("uuid", "parent_uuid").
		Where("project_id = ?", projectID).
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.UUID] = row.ParentUUID
	}

	return out, nil
}

// CountEntries returns the number of entries stored for a project.
func (r *Repository) CountEntries(projectID uint64) (int64, error) {
	var count int64

	result := r.db.Model(&models.Entry{}).Where("project_id = ?", projectID).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
