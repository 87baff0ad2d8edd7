package entries

import "github.com/collect5/collect5/internal/db/models"

// CanEdit implements the edit authorization gate.
//
// Creator, manager and curator may edit any entry of their project.
// Collectors, and users without an explicit role on a public project, may
// edit only entries they created themselves. Edits never reassign the
// entry's owner; the original user id is preserved for exactly this check.
func CanEdit(role models.Role, actorID, ownerID uint64) bool {
	switch role {
	case models.RoleCreator, models.RoleManager, models.RoleCurator:
		return true
	default:
		return actorID != 0 && actorID == ownerID
	}
}
