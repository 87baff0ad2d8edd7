// Package project provides the project form schema (the "definition") and
// lookup of projects by slug. The definition is read-only input to the
// upload path: forms are a linear hierarchy (form 0 is top-level, each next
// form is the child form of the previous one) and every form carries a flat
// list of inputs, some of which nest further inputs as groups or branches.
package project

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// FormRef identifies a form inside a project definition.
// A BranchEntry's own form ref and its owner's form ref are both FormRefs;
// they are kept in differently named fields to avoid mixing them up.
type FormRef = string

// InputRef identifies an input inside a form, including inputs nested in
// groups and branches.
type InputRef = string

// Uniqueness is the declared uniqueness scope of an input.
type Uniqueness string

const (
	// UniquenessNone disables the uniqueness check.
	UniquenessNone Uniqueness = "none"
	// UniquenessForm requires the answer to be unique among all entries of the same form, project-wide.
	UniquenessForm Uniqueness = "form"
	// UniquenessHierarchy requires the answer to be unique among entries sharing the same root ancestor.
	UniquenessHierarchy Uniqueness = "hierarchy"
)

// Input types as declared in the definition.
const (
	TypeText     = "text"
	TypeTextarea = "textarea"
	TypePhone    = "phone"
	TypeBarcode  = "barcode"
	TypeInteger  = "integer"
	TypeDecimal  = "decimal"
	TypeDate     = "date"
	TypeTime     = "time"
	TypeRadio    = "radio"
	TypeDropdown = "dropdown"
	TypeCheckbox = "checkbox"
	TypeLocation = "location"
	TypePhoto    = "photo"
	TypeAudio    = "audio"
	TypeVideo    = "video"
	TypeBranch   = "branch"
	TypeGroup    = "group"
)

// Definition is the parsed form schema of one project.
type Definition struct {
	Forms []Form `json:"forms"`
}

// Form is one level of the project hierarchy.
type Form struct {
	Ref    FormRef `json:"ref"`
	Name   string  `json:"name"`
	Slug   string  `json:"slug"`
	Inputs []Input `json:"inputs"`
}

// Input is one question of a form. Branch inputs nest the inputs of the
// repeating group; group inputs nest their members inline.
type Input struct {
	Ref            InputRef   `json:"ref"`
	Type           string     `json:"type"`
	Uniqueness     Uniqueness `json:"uniqueness"`
	DatetimeFormat string     `json:"datetime_format,omitempty"`
	IsTitle        bool       `json:"is_title,omitempty"`
	Required       bool       `json:"required,omitempty"`
	Branch         []Input    `json:"branch,omitempty"`
	Group          []Input    `json:"group,omitempty"`
}

var (
	// ErrNoForms is returned when a definition declares no forms.
	ErrNoForms = errors.New("project definition has no forms")
	// ErrDuplicateFormRef is returned when two forms share a ref.
	ErrDuplicateFormRef = errors.New("project definition has duplicate form refs")
)

// Parse decodes and validates a stored definition blob.
func Parse(raw []byte) (*Definition, error) {
	var d Definition

	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, errors.Wrap(err, "failed to decode project definition")
	}

	if len(d.Forms) == 0 {
		return nil, ErrNoForms
	}

	seen := make(map[FormRef]bool, len(d.Forms))
	for _, f := range d.Forms {
		if seen[f.Ref] {
			return nil, ErrDuplicateFormRef
		}

		seen[f.Ref] = true
	}

	return &d, nil
}

// FormByRef returns the form with the given ref, or nil.
func (d *Definition) FormByRef(ref FormRef) *Form {
	for i := range d.Forms {
		if d.Forms[i].Ref == ref {
			return &d.Forms[i]
		}
	}

	return nil
}

// FormIndex returns the hierarchy index of the form with the given ref, or -1.
func (d *Definition) FormIndex(ref FormRef) int {
	for i := range d.Forms {
		if d.Forms[i].Ref == ref {
			return i
		}
	}

	return -1
}

// ChildFormRef returns the ref of the child form of the given form,
// or "" if the form is the deepest level.
func (d *Definition) ChildFormRef(ref FormRef) FormRef {
	idx := d.FormIndex(ref)
	if idx < 0 || idx+1 >= len(d.Forms) {
		return ""
	}

	return d.Forms[idx+1].Ref
}

// Input returns the input with the given ref, searching the form's top
// level, group members and branch nests (including groups inside branches).
// Returns nil if the ref is unknown to this form.
func (f *Form) Input(ref InputRef) *Input {
	return findInput(f.Inputs, ref)
}

func findInput(inputs []Input, ref InputRef) *Input {
	for i := range inputs {
		if inputs[i].Ref == ref {
			return &inputs[i]
		}

		if in := findInput(inputs[i].Group, ref); in != nil {
			return in
		}

		if in := findInput(inputs[i].Branch, ref); in != nil {
			return in
		}
	}

	return nil
}

// BranchInput returns the branch input with the given ref at the form's top
// level, or nil.
func (f *Form) BranchInput(ref InputRef) *Input {
	for i := range f.Inputs {
		if f.Inputs[i].Type == TypeBranch && f.Inputs[i].Ref == ref {
			return &f.Inputs[i]
		}
	}

	return nil
}

// BranchInputs returns all branch inputs declared at the form's top level.
func (f *Form) BranchInputs() []*Input {
	var out []*Input

	for i := range f.Inputs {
		if f.Inputs[i].Type == TypeBranch {
			out = append(out, &f.Inputs[i])
		}
	}

	return out
}

// EntryInputs returns the inputs answered by a hierarchy entry of this form
// in declaration order: top-level inputs plus group members. Inputs nested
// inside branches belong to branch entries and are excluded (the branch
// input itself is included).
func (f *Form) EntryInputs() []*Input {
	var out []*Input

	flattenEntryInputs(f.Inputs, &out)

	return out
}

func flattenEntryInputs(inputs []Input, out *[]*Input) {
	for i := range inputs {
		*out = append(*out, &inputs[i])

		flattenEntryInputs(inputs[i].Group, out)
	}
}

// EntryInputs returns the inputs answered by one branch entry of this branch
// input, in declaration order, with group members inlined.
func (in *Input) EntryInputs() []*Input {
	var out []*Input

	flattenEntryInputs(in.Branch, &out)

	return out
}

// TitleRefs returns the refs of the inputs flagged is_title, in declaration
// order. Used to derive the denormalized entry title.
func (f *Form) TitleRefs() []InputRef {
	var out []InputRef

	collectTitleRefs(f.Inputs, &out)

	return out
}

func collectTitleRefs(inputs []Input, out *[]InputRef) {
	for i := range inputs {
		if inputs[i].IsTitle {
			*out = append(*out, inputs[i].Ref)
		}

		collectTitleRefs(inputs[i].Group, out)
	}
}

// BranchTitleRefs returns the refs of is_title inputs nested in the given
// branch input.
func (in *Input) BranchTitleRefs() []InputRef {
	var out []InputRef

	collectTitleRefs(in.Branch, &out)

	return out
}

// Comparable reports whether an input type takes part in uniqueness checks.
// Media and location inputs are exempt regardless of their declared rule.
func (in *Input) Comparable() bool {
	switch in.Type {
	case TypeLocation, TypePhoto, TypeAudio, TypeVideo, TypeBranch, TypeGroup:
		return false
	default:
		return true
	}
}
