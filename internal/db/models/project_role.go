package models

import "time"

// Role is a per-project role assigned to a user.
type Role string

const (
	// RoleCreator is held by exactly one user per project.
	RoleCreator Role = "creator"
	// RoleManager may edit any entry of the project.
	RoleManager Role = "manager"
	// RoleCurator may edit any entry of the project.
	RoleCurator Role = "curator"
	// RoleCollector may create entries and edit only their own.
	RoleCollector Role = "collector"
)

// ProjectRole maps a (user, project) pair to a role. Roles are assigned per
// project; the same user can be a manager on one project and a collector on
// another.
type ProjectRole struct {
	// ID is the unique identifier for the assignment.
	ID uint64 `gorm:"primaryKey"`
	// UserID is the user holding the role.
	UserID uint64 `gorm:"not null;uniqueIndex:idx_user_project"`
	// ProjectID is the project the role applies to.
	ProjectID uint64 `gorm:"not null;uniqueIndex:idx_user_project"`
	// Role is one of creator, manager, curator, collector.
	Role Role `gorm:"type:varchar(20);not null"`
	// CreatedAt is the timestamp when the role was assigned (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the ProjectRole model.
func (ProjectRole) TableName() string {
	return "project_roles"
}
