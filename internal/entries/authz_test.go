package entries

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/collect5/collect5/internal/db/models"
)

func TestCanEdit(t *testing.T) {
	testCases := []struct {
		name     string
		role     models.Role
		actorID  uint64
		ownerID  uint64
		expected bool
	}{
		{name: "creator edits anyone", role: models.RoleCreator, actorID: 1, ownerID: 2, expected: true},
		{name: "manager edits anyone", role: models.RoleManager, actorID: 1, ownerID: 2, expected: true},
		{name: "curator edits anyone", role: models.RoleCurator, actorID: 1, ownerID: 2, expected: true},
		{name: "collector edits own", role: models.RoleCollector, actorID: 2, ownerID: 2, expected: true},
		{name: "collector denied on foreign entry", role: models.RoleCollector, actorID: 1, ownerID: 2, expected: false},
		{name: "no role edits own", role: "", actorID: 2, ownerID: 2, expected: true},
		{name: "no role denied on foreign entry", role: "", actorID: 1, ownerID: 2, expected: false},
		{name: "anonymous denied even on anonymous entry", role: "", actorID: 0, ownerID: 0, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CanEdit(tc.role, tc.actorID, tc.ownerID))
		})
	}
}
