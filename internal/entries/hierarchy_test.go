package entries

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRootUUID(t *testing.T) {
	parents := map[string]string{
		"root":    "",
		"child":   "root",
		"grand":   "child",
		"great":   "grand",
		"leaf":    "great",
		"orphan":  "gone", // parent row never uploaded
		"cycle-a": "cycle-b",
		"cycle-b": "cycle-a",
	}

	testCases := []struct {
		name     string
		start    string
		expected string
	}{
		{name: "root resolves to itself", start: "root", expected: "root"},
		{name: "direct child", start: "child", expected: "root"},
		{name: "five level walk", start: "leaf", expected: "root"},
		{name: "unknown uuid is its own root", start: "stranger", expected: "stranger"},
		{name: "broken chain stops at the missing link", start: "orphan", expected: "gone"},
		{name: "cycle terminates", start: "cycle-a", expected: "cycle-a"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ResolveRootUUID(parents, tc.start))
		})
	}
}
