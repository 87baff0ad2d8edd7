package models

import "time"

// BranchEntry represents one repeating-group ("branch") submission owned by a
// specific Entry. FormRef is the ref of the form the owner entry belongs to;
// OwnerInputRef identifies which branch input on that form the row belongs
// to. The branch row has its own uuid, independent of the owner's.
type BranchEntry struct {
	// ID is the internal row identifier.
	ID uint64 `gorm:"primaryKey"`
	// UUID is the client-generated, globally unique identity of the branch entry.
	UUID string `gorm:"size:36;uniqueIndex;not null"`
	// ProjectID is the owning project.
	ProjectID uint64 `gorm:"not null;index"`
	// FormRef is the ref of the owning form.
	FormRef string `gorm:"size:100;not null"`
	// OwnerUUID is the Entry this branch row belongs to.
	OwnerUUID string `gorm:"size:36;not null;index:idx_branch_owner_input"`
	// OwnerInputRef is the branch input on the owner form.
	OwnerInputRef string `gorm:"size:100;not null;index:idx_branch_owner_input"`
	// UserID is the owner/creator. Never reassigned by edits.
	UserID uint64 `gorm:"index"`
	// Title is the denormalized display value derived from the branch's title inputs.
	Title string `gorm:"size:255"`
	// EntryData is the structured answer payload, keyed by input ref.
	EntryData AnswerSet `gorm:"serializer:json"`
	// CreatedAt is the timestamp when the branch entry was first uploaded (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp of the last in-place edit (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the BranchEntry model.
func (BranchEntry) TableName() string {
	return "branch_entries"
}
