// Package export serves stored entries of one form as JSON, including the
// maintained child and branch counters.
package export

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/collect5/collect5/internal/config"
	"github.com/collect5/collect5/internal/db/models"
	"github.com/collect5/collect5/internal/entries"
	"github.com/collect5/collect5/internal/project"
	"github.com/collect5/collect5/internal/web/handler"
	"github.com/collect5/collect5/internal/web/middleware/access"
)

// Path is the path to the entries export endpoint.
const Path = "/api/export/entries/:project_slug"

// Service is the export handler service.
type Service struct {
	cfg     *config.Config
	entries *entries.Service
}

// Handler is the export handler.
var Handler = Service{}

// Init initializes the export handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.entries = entries.NewService(db)

	app.Get(Path, access.New(project.NewStore(db)), s.Get)

	return nil
}

type exportedEntry struct {
	UUID         string           `json:"uuid"`
	FormRef      project.FormRef  `json:"form_ref"`
	ParentUUID   string           `json:"parent_uuid,omitempty"`
	Title        string           `json:"title"`
	Answers      models.AnswerSet `json:"answers"`
	ChildCounts  models.CountMap  `json:"child_counts"`
	BranchCounts models.CountMap  `json:"branch_counts"`
	CreatedAt    string           `json:"created_at"`
}

// Get lists the entries of one form, selected by the form_ref query param.
// Without form_ref the top-level form is exported.
func (s *Service) Get(c *fiber.Ctx) error {
	proj, _ := c.Locals(handler.LocalProject).(*models.Project)
	def, _ := c.Locals(handler.LocalDefinition).(*project.Definition)

	if proj == nil || def == nil {
		return handler.SendError(c, fiber.StatusInternalServerError, entries.CodeSaveFailed, "export")
	}

	formRef := project.FormRef(c.Query("form_ref"))
	if formRef == "" {
		formRef = def.Forms[0].Ref
	}

	if def.FormByRef(formRef) == nil {
		return handler.SendError(c, fiber.StatusBadRequest, entries.CodeFormNotFound, "form_ref")
	}

	rows, err := s.entries.Repo().EntriesByForm(proj.ID, formRef)
	if err != nil {
		log.Error().Err(err).Str("project", proj.Slug).Msg("failed to load entries for export")

		return handler.SendError(c, fiber.StatusInternalServerError, entries.CodeSaveFailed, "export")
	}

	out := make([]exportedEntry, 0, len(rows))
	for _, e := range rows {
		out = append(out, exportedEntry{
			UUID:         e.UUID,
			FormRef:      e.FormRef,
			ParentUUID:   e.ParentUUID,
			Title:        e.Title,
			Answers:      e.EntryData,
			ChildCounts:  e.ChildCounts,
			BranchCounts: e.BranchCounts,
			CreatedAt:    e.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
		})
	}

	return handler.SendData(c, out)
}
