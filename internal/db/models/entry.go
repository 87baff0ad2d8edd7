package models

import "time"

// Answer is one submitted value for one input ref.
// WasJumped marks a branch or optional input the client skipped; on edit of
// an existing entry it triggers deletion of that branch's stored rows.
type Answer struct {
	Answer    any  `json:"answer"`
	WasJumped bool `json:"was_jumped,omitempty"`
}

// AnswerSet maps input refs to submitted answers.
type AnswerSet map[string]Answer

// CountMap maps a child form ref or branch input ref to a live row count.
type CountMap map[string]int

// Entry represents one submission to a hierarchy form. Entries of form 0 are
// top-level; entries of deeper forms carry the uuid of their parent entry,
// forming a singly-linked chain up to the root.
type Entry struct {
	// ID is the internal row identifier.
	ID uint64 `gorm:"primaryKey"`
	// UUID is the client-generated, globally unique identity of the entry.
	UUID string `gorm:"size:36;uniqueIndex;not null"`
	// ProjectID is the owning project.
	ProjectID uint64 `gorm:"not null;index:idx_entries_project_form"`
	// FormRef is the ref of the form this entry was submitted to.
	FormRef string `gorm:"size:100;not null;index:idx_entries_project_form"`
	// ParentUUID references the parent entry; empty for form-0 entries.
	ParentUUID string `gorm:"size:36;index"`
	// ParentFormRef is the form ref of the parent entry; empty for form-0 entries.
	ParentFormRef string `gorm:"size:100"`
	// UserID is the owner/creator. Never reassigned by edits.
	UserID uint64 `gorm:"index"`
	// Title is the denormalized display value derived from the form's title inputs.
	Title string `gorm:"size:255"`
	// EntryData is the structured answer payload, keyed by input ref.
	EntryData AnswerSet `gorm:"serializer:json"`
	// ChildCounts maps child form ref to the count of direct children currently stored.
	ChildCounts CountMap `gorm:"serializer:json"`
	// BranchCounts maps branch input ref to the count of branch entries currently stored.
	BranchCounts CountMap `gorm:"serializer:json"`
	// CreatedAt is the timestamp when the entry was first uploaded (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp of the last in-place edit (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Entry model.
func (Entry) TableName() string {
	return "entries"
}
