// Package models contains database model definitions.
package models

import "time"

// ProjectAccess controls who may see and upload to a project.
type ProjectAccess string

const (
	// ProjectAccessPublic allows anyone, including anonymous clients, to view and upload.
	ProjectAccessPublic ProjectAccess = "public"
	// ProjectAccessPrivate restricts the project to users holding a project role.
	ProjectAccessPrivate ProjectAccess = "private"
)

// Project represents a field-survey project. The form schema (forms, inputs,
// branches, groups, uniqueness rules) is stored as a JSON definition blob and
// is read-only input to the upload path.
type Project struct {
	// ID is the unique identifier for the project.
	ID uint64 `gorm:"primaryKey"`
	// Ref is the immutable 32-char hex reference of the project.
	Ref string `gorm:"size:32;unique;not null"`
	// Slug is the URL-safe unique name used in API routes.
	Slug string `gorm:"size:100;unique;not null"`
	// Name is the display name of the project.
	Name string `gorm:"size:255;not null"`
	// Access is either public or private.
	Access ProjectAccess `gorm:"type:varchar(20);not null;default:'private'"`
	// CreatedBy is the user ID of the project creator.
	CreatedBy uint64 `gorm:"not null"`
	// Definition is the JSON form schema.
	Definition []byte `gorm:"type:blob"`
	// CreatedAt is the timestamp when the project was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the project was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Project model.
func (Project) TableName() string {
	return "projects"
}
