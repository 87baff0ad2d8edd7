package entries

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUUID      = "0a1b2c3d-4e5f-6071-8293-a4b5c6d7e8f9"
	testOwnerUUID = "1b2c3d4e-5f60-7182-93a4-b5c6d7e8f90a"
)

func TestParsePayloadEntry(t *testing.T) {
	validate := validator.New()

	raw := []byte(`{
		"data": {
			"id": "` + testUUID + `",
			"type": "entry",
			"attributes": {
				"form": {"ref": "form-household"}
			},
			"entry": {
				"answers": {
					"in-name": {"answer": "Smith"},
					"in-size": {"answer": 4},
					"in-visits": {"answer": "", "was_jumped": true}
				}
			}
		}
	}`)

	up, uploadErr := ParsePayload(validate, raw)
	require.Nil(t, uploadErr)
	assert.Equal(t, testUUID, up.UUID)
	assert.Equal(t, TypeEntry, up.Type)
	assert.False(t, up.IsBranch())
	assert.Equal(t, "form-household", up.FormRef)
	assert.Empty(t, up.ParentUUID)
	assert.Equal(t, "Smith", up.Answers["in-name"].Answer)
	assert.True(t, up.Answers["in-visits"].WasJumped)
}

func TestParsePayloadChildEntry(t *testing.T) {
	validate := validator.New()

	raw := []byte(`{
		"data": {
			"id": "` + testUUID + `",
			"type": "entry",
			"attributes": {
				"form": {"ref": "form-member"},
				"parent": {"uuid": "` + testOwnerUUID + `", "form_ref": "form-household"}
			},
			"entry": {"answers": {"in-nickname": {"answer": "Bob"}}}
		}
	}`)

	up, uploadErr := ParsePayload(validate, raw)
	require.Nil(t, uploadErr)
	assert.Equal(t, testOwnerUUID, up.ParentUUID)
	assert.Equal(t, "form-household", up.ParentFormRef)
}

func TestParsePayloadBranchEntry(t *testing.T) {
	validate := validator.New()

	raw := []byte(`{
		"data": {
			"id": "` + testUUID + `",
			"type": "branch_entry",
			"attributes": {
				"form": {"ref": "form-household"}
			},
			"branch_entry": {
				"owner_uuid": "` + testOwnerUUID + `",
				"owner_input_ref": "in-visits",
				"answers": {"in-visit-note": {"answer": "first"}}
			}
		}
	}`)

	up, uploadErr := ParsePayload(validate, raw)
	require.Nil(t, uploadErr)
	assert.True(t, up.IsBranch())
	assert.Equal(t, testOwnerUUID, up.OwnerUUID)
	assert.Equal(t, "in-visits", up.OwnerInputRef)
	assert.Equal(t, "first", up.Answers["in-visit-note"].Answer)
}

func TestParsePayloadRejections(t *testing.T) {
	validate := validator.New()

	testCases := []struct {
		name           string
		raw            string
		expectedSource string
	}{
		{
			name:           "not json",
			raw:            `{{{`,
			expectedSource: "upload",
		},
		{
			name:           "missing id",
			raw:            `{"data": {"type": "entry", "attributes": {"form": {"ref": "f"}}, "entry": {"answers": {}}}}`,
			expectedSource: "upload",
		},
		{
			name:           "unknown type",
			raw:            `{"data": {"id": "` + testUUID + `", "type": "mystery", "attributes": {"form": {"ref": "f"}}}}`,
			expectedSource: "upload",
		},
		{
			name:           "id is not a uuid",
			raw:            `{"data": {"id": "not-a-uuid", "type": "entry", "attributes": {"form": {"ref": "f"}}, "entry": {"answers": {}}}}`,
			expectedSource: "id",
		},
		{
			name:           "entry body missing",
			raw:            `{"data": {"id": "` + testUUID + `", "type": "entry", "attributes": {"form": {"ref": "f"}}}}`,
			expectedSource: "entry",
		},
		{
			name: "parent uuid invalid",
			raw: `{"data": {"id": "` + testUUID + `", "type": "entry",
				"attributes": {"form": {"ref": "f"}, "parent": {"uuid": "nope", "form_ref": "g"}},
				"entry": {"answers": {}}}}`,
			expectedSource: "parent",
		},
		{
			name:           "branch body missing",
			raw:            `{"data": {"id": "` + testUUID + `", "type": "branch_entry", "attributes": {"form": {"ref": "f"}}}}`,
			expectedSource: "branch_entry",
		},
		{
			name: "branch owner uuid invalid",
			raw: `{"data": {"id": "` + testUUID + `", "type": "branch_entry",
				"attributes": {"form": {"ref": "f"}},
				"branch_entry": {"owner_uuid": "nope", "owner_input_ref": "in-visits", "answers": {}}}}`,
			expectedSource: "owner_uuid",
		},
		{
			name: "branch owner input ref missing",
			raw: `{"data": {"id": "` + testUUID + `", "type": "branch_entry",
				"attributes": {"form": {"ref": "f"}},
				"branch_entry": {"owner_uuid": "` + testOwnerUUID + `", "answers": {}}}}`,
			expectedSource: "owner_input_ref",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			up, uploadErr := ParsePayload(validate, []byte(tc.raw))
			require.NotNil(t, uploadErr)
			assert.Nil(t, up)
			assert.Equal(t, CodeInvalidPayload, uploadErr.Code)
			assert.Equal(t, tc.expectedSource, uploadErr.Source)
		})
	}
}
