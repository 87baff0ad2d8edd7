// Package entries implements the entry upload core: orchestration of
// create-vs-edit decisions, uniqueness checking, hierarchy counter
// maintenance and edit authorization. All writes of one upload commit or
// roll back as a single transaction.
package entries

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/collect5/collect5/internal/db/models"
	"github.com/collect5/collect5/internal/project"
)

// Service orchestrates entry uploads for all projects.
type Service struct {
	repo *Repository
}

// NewService creates the upload service on top of the given database handle.
func NewService(db *gorm.DB) *Service {
	return &Service{repo: NewRepository(db)}
}

// Repo exposes the underlying repository for read-only consumers (export).
func (s *Service) Repo() *Repository {
	return s.repo
}

// Receipt is the success payload of an accepted upload.
type Receipt struct {
	Code  string `json:"code"`
	Title string `json:"title"`
}

// Upload validates and persists one upload request. A uuid never stored
// before is a create; a known uuid is an in-place edit, gated by the
// project role of the acting user. Returns a coded Error and performs no
// writes on any failure.
func (s *Service) Upload(
	proj *models.Project,
	def *project.Definition,
	role models.Role,
	actorID uint64,
	up *Upload,
) (*Receipt, *Error) {
	form := def.FormByRef(up.FormRef)
	if form == nil {
		return nil, errFormNotFound()
	}

	var branchInput *project.Input

	if up.IsBranch() {
		branchInput = form.BranchInput(up.OwnerInputRef)
		if branchInput == nil {
			return nil, errInputNotFound(up.OwnerInputRef)
		}

		if uploadErr := validateAnswerRefs(up.Answers, branchInput.EntryInputs()); uploadErr != nil {
			return nil, uploadErr
		}
	} else {
		if uploadErr := validateAnswerRefs(up.Answers, form.EntryInputs()); uploadErr != nil {
			return nil, uploadErr
		}
	}

	txErr := s.repo.Transaction(func(tx *Repository) error {
		if up.IsBranch() {
			return uploadBranch(tx, proj, form, branchInput, role, actorID, up)
		}

		return uploadEntry(tx, proj, def, form, role, actorID, up)
	})

	if txErr != nil {
		var coded *Error
		if errors.As(txErr, &coded) {
			return nil, coded
		}

		log.Error().Err(txErr).Str("project", proj.Slug).Str("uuid", up.UUID).Msg("upload transaction failed")

		return nil, errSaveFailed()
	}

	return &Receipt{Code: CodeUploaded, Title: Title(CodeUploaded)}, nil
}

// validateAnswerRefs rejects answers referencing inputs unknown to the
// target form or branch.
func validateAnswerRefs(answers models.AnswerSet, allowed []*project.Input) *Error {
	known := make(map[project.InputRef]bool, len(allowed))
	for _, in := range allowed {
		known[in.Ref] = true
	}

	for ref := range answers {
		if !known[ref] {
			return errInputNotFound(ref)
		}
	}

	return nil
}

func uploadEntry(
	tx *Repository,
	proj *models.Project,
	def *project.Definition,
	form *project.Form,
	role models.Role,
	actorID uint64,
	up *Upload,
) error {
	existing, err := tx.FindEntryLocked(proj.ID, up.UUID)
	if err != nil {
		return err
	}

	isEdit := existing != nil

	// An edit must target the form the row was stored under; answers were
	// validated and uniqueness-scoped against the claimed form.
	if isEdit && existing.FormRef != form.Ref {
		return errEntryNotFound()
	}

	if isEdit && !CanEdit(role, actorID, existing.UserID) {
		return errNotAuthorised()
	}

	// Resolve and lock the parent row for child creates before any write,
	// so concurrent sibling creates serialize their counter increments.
	var parent *models.Entry

	if !isEdit && up.ParentUUID != "" {
		parent, err = tx.FindEntryLocked(proj.ID, up.ParentUUID)
		if err != nil {
			return err
		}

		if parent == nil || parent.FormRef != up.ParentFormRef {
			return errEntryNotFound()
		}

		if def.ChildFormRef(parent.FormRef) != form.Ref {
			return errFormNotFound()
		}
	}

	if !isEdit && up.ParentUUID == "" && def.FormIndex(form.Ref) != 0 {
		return errEntryNotFound()
	}

	// Root of the hierarchy the candidate lands in: itself for top-level
	// creates, its parent's root for child creates, its own root on edits.
	rootStart := up.UUID
	if !isEdit && up.ParentUUID != "" {
		rootStart = up.ParentUUID
	}

	if err = checkUniqueness(tx, proj, form.EntryInputs(), up, rootStart, entryAnswerSource(tx, proj, form)); err != nil {
		return err
	}

	title := deriveTitle(form.TitleRefs(), up.Answers, up.UUID)

	if isEdit {
		existing.EntryData = up.Answers
		existing.Title = title

		// Jumped branches drop their stored rows and zero the counter;
		// branches not marked jumped are left untouched.
		for _, bi := range form.BranchInputs() {
			ans, ok := up.Answers[bi.Ref]
			if !ok || !ans.WasJumped {
				continue
			}

			if err = tx.DeleteBranches(proj.ID, existing.UUID, bi.Ref); err != nil {
				return err
			}

			if existing.BranchCounts == nil {
				existing.BranchCounts = models.CountMap{}
			}

			existing.BranchCounts[bi.Ref] = 0
		}

		return tx.SaveEntry(existing)
	}

	entry := &models.Entry{
		UUID:          up.UUID,
		ProjectID:     proj.ID,
		FormRef:       form.Ref,
		ParentUUID:    up.ParentUUID,
		ParentFormRef: up.ParentFormRef,
		UserID:        actorID,
		Title:         title,
		EntryData:     up.Answers,
		ChildCounts:   initialChildCounts(def, form.Ref),
		BranchCounts:  initialBranchCounts(form),
	}

	if err = tx.CreateEntry(entry); err != nil {
		return err
	}

	if parent != nil {
		if parent.ChildCounts == nil {
			parent.ChildCounts = models.CountMap{}
		}

		parent.ChildCounts[form.Ref]++

		return tx.SaveEntry(parent)
	}

	return nil
}

func uploadBranch(
	tx *Repository,
	proj *models.Project,
	form *project.Form,
	branchInput *project.Input,
	role models.Role,
	actorID uint64,
	up *Upload,
) error {
	// Lock the owner row: branch creates increment its branch counter and
	// concurrent creates under the same owner must not lose an increment.
	owner, err := tx.FindEntryLocked(proj.ID, up.OwnerUUID)
	if err != nil {
		return err
	}

	if owner == nil || owner.FormRef != form.Ref {
		return errEntryNotFound()
	}

	existing, err := tx.FindBranchEntry(proj.ID, up.UUID)
	if err != nil {
		return err
	}

	isEdit := existing != nil

	// An edit must claim the owner entry and branch input the row is stored
	// under: the owner lock and the hierarchy uniqueness scope were both
	// resolved from the claimed owner.
	if isEdit && (existing.OwnerUUID != up.OwnerUUID || existing.OwnerInputRef != up.OwnerInputRef) {
		return errEntryNotFound()
	}

	if isEdit && !CanEdit(role, actorID, existing.UserID) {
		return errNotAuthorised()
	}

	err = checkUniqueness(
		tx, proj, branchInput.EntryInputs(), up, up.OwnerUUID,
		branchAnswerSource(tx, proj, up.OwnerInputRef),
	)
	if err != nil {
		return err
	}

	title := deriveTitle(branchInput.BranchTitleRefs(), up.Answers, up.UUID)

	if isEdit {
		existing.EntryData = up.Answers
		existing.Title = title

		return tx.SaveBranchEntry(existing)
	}

	branch := &models.BranchEntry{
		UUID:          up.UUID,
		ProjectID:     proj.ID,
		FormRef:       form.Ref,
		OwnerUUID:     up.OwnerUUID,
		OwnerInputRef: up.OwnerInputRef,
		UserID:        actorID,
		Title:         title,
		EntryData:     up.Answers,
	}

	if err = tx.CreateBranchEntry(branch); err != nil {
		return err
	}

	if owner.BranchCounts == nil {
		owner.BranchCounts = models.CountMap{}
	}

	owner.BranchCounts[up.OwnerInputRef]++

	return tx.SaveEntry(owner)
}

// storedRow is one persisted row a candidate answer is compared against.
type storedRow struct {
	uuid     string
	rootFrom string // uuid the hierarchy walk starts at for this row
	answers  models.AnswerSet
}

// answerSource lazily loads the rows a scoped input compares against.
type answerSource func() ([]storedRow, error)

func entryAnswerSource(tx *Repository, proj *models.Project, form *project.Form) answerSource {
	return func() ([]storedRow, error) {
		rows, err := tx.EntriesByForm(proj.ID, form.Ref)
		if err != nil {
			return nil, err
		}

		out := make([]storedRow, 0, len(rows))
		for _, e := range rows {
			out = append(out, storedRow{uuid: e.UUID, rootFrom: e.UUID, answers: e.EntryData})
		}

		return out, nil
	}
}

func branchAnswerSource(tx *Repository, proj *models.Project, ownerInputRef project.InputRef) answerSource {
	return func() ([]storedRow, error) {
		rows, err := tx.BranchEntriesByInput(proj.ID, ownerInputRef)
		if err != nil {
			return nil, err
		}

		out := make([]storedRow, 0, len(rows))
		for _, b := range rows {
			out = append(out, storedRow{uuid: b.UUID, rootFrom: b.OwnerUUID, answers: b.EntryData})
		}

		return out, nil
	}
}

// checkUniqueness walks the scoped inputs in declaration order and returns
// ec5_22 for the first duplicate found, tagged with the offending input
// ref. Hierarchy scope restricts the comparison to rows sharing the
// candidate's root ancestor.
func checkUniqueness(
	tx *Repository,
	proj *models.Project,
	inputs []*project.Input,
	up *Upload,
	rootStart string,
	source answerSource,
) error {
	var (
		rows    []storedRow
		parents map[string]string
		root    string
	)

	for _, in := range inputs {
		if in.Uniqueness == project.UniquenessNone || in.Uniqueness == "" || !in.Comparable() {
			continue
		}

		candidate, ok := up.Answers[in.Ref]
		if !ok {
			continue
		}

		if rows == nil {
			loaded, err := source()
			if err != nil {
				return err
			}

			rows = loaded
		}

		if in.Uniqueness == project.UniquenessHierarchy && parents == nil {
			index, err := tx.ParentIndex(proj.ID)
			if err != nil {
				return err
			}

			parents = index
			root = ResolveRootUUID(parents, rootStart)
		}

		var stored []models.Answer

		for _, row := range rows {
			if row.uuid == up.UUID {
				continue // edits compare against other rows only
			}

			if in.Uniqueness == project.UniquenessHierarchy &&
				ResolveRootUUID(parents, row.rootFrom) != root {
				continue
			}

			if a, found := row.answers[in.Ref]; found {
				stored = append(stored, a)
			}
		}

		if !CheckUnique(in, candidate, stored) {
			return errNotUnique(in.Ref)
		}
	}

	return nil
}

// initialChildCounts zeroes the child counter of the form's declared child
// form. The deepest form has no child counters.
func initialChildCounts(def *project.Definition, formRef project.FormRef) models.CountMap {
	out := models.CountMap{}

	if child := def.ChildFormRef(formRef); child != "" {
		out[child] = 0
	}

	return out
}

// initialBranchCounts zeroes one counter per branch input of the form.
func initialBranchCounts(form *project.Form) models.CountMap {
	out := models.CountMap{}

	for _, bi := range form.BranchInputs() {
		out[bi.Ref] = 0
	}

	return out
}

// deriveTitle joins the string answers of the is_title inputs; entries
// without any title answer fall back to their uuid.
func deriveTitle(titleRefs []project.InputRef, answers models.AnswerSet, fallback string) string {
	var parts []string

	for _, ref := range titleRefs {
		if ans, ok := answers[ref]; ok && !ans.WasJumped {
			if s, valid := answerString(ans.Answer); valid && s != "" {
				parts = append(parts, s)
			}
		}
	}

	if len(parts) == 0 {
		return fallback
	}

	return strings.Join(parts, " ")
}
