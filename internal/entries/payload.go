package entries

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/collect5/collect5/internal/db/models"
	"github.com/collect5/collect5/internal/project"
)

// Upload types on the wire.
const (
	TypeEntry       = "entry"
	TypeBranchEntry = "branch_entry"
)

// payload mirrors the JSON request body:
//
//	{ "data": { "id", "type", "attributes": { "form": {"ref"}, "parent": {...} },
//	            "entry"|"branch_entry": { ..., "answers": {...} } } }
type payload struct {
	Data struct {
		ID         string `json:"id"   validate:"required"`
		Type       string `json:"type" validate:"required,oneof=entry branch_entry"`
		Attributes struct {
			Form struct {
				Ref string `json:"ref" validate:"required"`
			} `json:"form"`
			Parent *struct {
				UUID    string `json:"uuid"`
				FormRef string `json:"form_ref"`
			} `json:"parent,omitempty"`
		} `json:"attributes"`
		Entry       *payloadBody `json:"entry,omitempty"`
		BranchEntry *payloadBody `json:"branch_entry,omitempty"`
	} `json:"data"`
}

type payloadBody struct {
	// OwnerUUID and OwnerInputRef are only present on branch_entry bodies:
	// the uuid of the owning Entry and the branch input on the owner form.
	OwnerUUID     string                   `json:"owner_uuid,omitempty"`
	OwnerInputRef string                   `json:"owner_input_ref,omitempty"`
	Answers       map[string]models.Answer `json:"answers"`
}

// Upload is a parsed, validated upload request.
//
// For branch entries FormRef is the owner form's ref (the form the owning
// Entry belongs to); the branch row is identified by OwnerUUID plus
// OwnerInputRef. For child entries ParentUUID/ParentFormRef link the entry
// into the hierarchy chain.
type Upload struct {
	UUID          string
	Type          string
	FormRef       project.FormRef
	ParentUUID    string
	ParentFormRef project.FormRef
	OwnerUUID     string
	OwnerInputRef project.InputRef
	Answers       models.AnswerSet
}

// IsBranch reports whether the upload targets a branch entry.
func (u *Upload) IsBranch() bool {
	return u.Type == TypeBranchEntry
}

// ParsePayload decodes and validates a raw upload request body.
func ParsePayload(validate *validator.Validate, raw []byte) (*Upload, *Error) {
	var p payload

	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, errInvalidPayload("upload")
	}

	if err := validate.Struct(&p); err != nil {
		return nil, errInvalidPayload("upload")
	}

	if _, err := uuid.Parse(p.Data.ID); err != nil {
		return nil, errInvalidPayload("id")
	}

	up := &Upload{
		UUID:    p.Data.ID,
		Type:    p.Data.Type,
		FormRef: p.Data.Attributes.Form.Ref,
	}

	switch p.Data.Type {
	case TypeEntry:
		if p.Data.Entry == nil || p.Data.Entry.Answers == nil {
			return nil, errInvalidPayload("entry")
		}

		if p.Data.Attributes.Parent != nil {
			if _, err := uuid.Parse(p.Data.Attributes.Parent.UUID); err != nil {
				return nil, errInvalidPayload("parent")
			}

			up.ParentUUID = p.Data.Attributes.Parent.UUID
			up.ParentFormRef = p.Data.Attributes.Parent.FormRef
		}

		up.Answers = p.Data.Entry.Answers
	case TypeBranchEntry:
		if p.Data.BranchEntry == nil || p.Data.BranchEntry.Answers == nil {
			return nil, errInvalidPayload("branch_entry")
		}

		if _, err := uuid.Parse(p.Data.BranchEntry.OwnerUUID); err != nil {
			return nil, errInvalidPayload("owner_uuid")
		}

		if p.Data.BranchEntry.OwnerInputRef == "" {
			return nil, errInvalidPayload("owner_input_ref")
		}

		up.OwnerUUID = p.Data.BranchEntry.OwnerUUID
		up.OwnerInputRef = p.Data.BranchEntry.OwnerInputRef
		up.Answers = p.Data.BranchEntry.Answers
	}

	return up, nil
}
