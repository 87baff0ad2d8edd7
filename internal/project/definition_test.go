package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDefinitionJSON = `{
	"forms": [
		{
			"ref": "form-household",
			"name": "Household",
			"slug": "household",
			"inputs": [
				{"ref": "in-name", "type": "text", "uniqueness": "form", "is_title": true},
				{
					"ref": "in-address", "type": "group",
					"group": [
						{"ref": "in-street", "type": "text"},
						{"ref": "in-postcode", "type": "text", "is_title": true}
					]
				},
				{
					"ref": "in-visits", "type": "branch",
					"branch": [
						{"ref": "in-visit-date", "type": "date", "datetime_format": "dd/MM/YYYY", "is_title": true},
						{
							"ref": "in-visit-details", "type": "group",
							"group": [{"ref": "in-visit-note", "type": "text"}]
						}
					]
				}
			]
		},
		{
			"ref": "form-member",
			"name": "Member",
			"slug": "member",
			"inputs": [
				{"ref": "in-nickname", "type": "text", "uniqueness": "hierarchy", "is_title": true}
			]
		}
	]
}`

func parseTestDefinition(t *testing.T) *Definition {
	t.Helper()

	def, err := Parse([]byte(testDefinitionJSON))
	require.NoError(t, err)

	return def
}

func TestParseRejections(t *testing.T) {
	testCases := []struct {
		name          string
		raw           string
		expectedError error
	}{
		{name: "no forms", raw: `{"forms": []}`, expectedError: ErrNoForms},
		{
			name:          "duplicate form refs",
			raw:           `{"forms": [{"ref": "f"}, {"ref": "f"}]}`,
			expectedError: ErrDuplicateFormRef,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			def, err := Parse([]byte(tc.raw))
			require.Error(t, err)
			require.ErrorIs(t, err, tc.expectedError)
			assert.Nil(t, def)
		})
	}

	t.Run("invalid json", func(t *testing.T) {
		def, err := Parse([]byte(`{{`))
		require.Error(t, err)
		assert.Nil(t, def)
	})
}

func TestFormLookup(t *testing.T) {
	def := parseTestDefinition(t)

	require.NotNil(t, def.FormByRef("form-household"))
	assert.Nil(t, def.FormByRef("form-unknown"))

	assert.Equal(t, 0, def.FormIndex("form-household"))
	assert.Equal(t, 1, def.FormIndex("form-member"))
	assert.Equal(t, -1, def.FormIndex("form-unknown"))

	assert.Equal(t, "form-member", def.ChildFormRef("form-household"))
	assert.Empty(t, def.ChildFormRef("form-member"), "deepest form has no child")
	assert.Empty(t, def.ChildFormRef("form-unknown"))
}

func TestInputLookup(t *testing.T) {
	def := parseTestDefinition(t)
	form := def.FormByRef("form-household")
	require.NotNil(t, form)

	// Top level, group member, branch nest and group inside a branch are all
	// reachable by ref.
	for _, ref := range []InputRef{"in-name", "in-street", "in-visit-date", "in-visit-note"} {
		assert.NotNil(t, form.Input(ref), "input %s should be found", ref)
	}

	assert.Nil(t, form.Input("in-bogus"))

	require.NotNil(t, form.BranchInput("in-visits"))
	assert.Nil(t, form.BranchInput("in-name"), "non-branch input is not a branch")

	branches := form.BranchInputs()
	require.Len(t, branches, 1)
	assert.Equal(t, InputRef("in-visits"), branches[0].Ref)
}

func TestEntryInputs(t *testing.T) {
	def := parseTestDefinition(t)
	form := def.FormByRef("form-household")
	require.NotNil(t, form)

	var refs []InputRef
	for _, in := range form.EntryInputs() {
		refs = append(refs, in.Ref)
	}

	// Declaration order, group members inlined, branch nests excluded but the
	// branch input itself present.
	assert.Equal(t, []InputRef{"in-name", "in-address", "in-street", "in-postcode", "in-visits"}, refs)

	branch := form.BranchInput("in-visits")
	require.NotNil(t, branch)

	refs = nil
	for _, in := range branch.EntryInputs() {
		refs = append(refs, in.Ref)
	}

	assert.Equal(t, []InputRef{"in-visit-date", "in-visit-details", "in-visit-note"}, refs)
}

func TestTitleRefs(t *testing.T) {
	def := parseTestDefinition(t)
	form := def.FormByRef("form-household")
	require.NotNil(t, form)

	assert.Equal(t, []InputRef{"in-name", "in-postcode"}, form.TitleRefs())

	branch := form.BranchInput("in-visits")
	require.NotNil(t, branch)
	assert.Equal(t, []InputRef{"in-visit-date"}, branch.BranchTitleRefs())
}

func TestComparable(t *testing.T) {
	comparableTypes := []string{
		TypeText, TypeTextarea, TypePhone, TypeBarcode,
		TypeInteger, TypeDecimal, TypeDate, TypeTime,
		TypeRadio, TypeDropdown, TypeCheckbox,
	}
	for _, typ := range comparableTypes {
		in := Input{Type: typ}
		assert.True(t, in.Comparable(), "type %s should be comparable", typ)
	}

	exemptTypes := []string{TypeLocation, TypePhoto, TypeAudio, TypeVideo, TypeBranch, TypeGroup}
	for _, typ := range exemptTypes {
		in := Input{Type: typ}
		assert.False(t, in.Comparable(), "type %s should be exempt", typ)
	}
}
