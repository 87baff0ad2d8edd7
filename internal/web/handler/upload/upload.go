// Package upload wires the entry upload endpoints: the public device API
// and the internal web-upload route used by the browser data editor. Both
// run the same upload core behind the project access gate; the internal
// route additionally requires an authenticated session.
package upload

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/collect5/collect5/internal/config"
	"github.com/collect5/collect5/internal/db/models"
	"github.com/collect5/collect5/internal/entries"
	"github.com/collect5/collect5/internal/project"
	"github.com/collect5/collect5/internal/web/handler"
	"github.com/collect5/collect5/internal/web/middleware/access"
)

const (
	// Path is the path to the public upload endpoint.
	Path = "/api/upload/:project_slug"
	// WebUploadPath is the path to the internal web-upload endpoint.
	WebUploadPath = "/api/internal/web-upload/:project_slug"
)

// Service is the upload handler service.
type Service struct {
	cfg      *config.Config
	validate *validator.Validate
	entries  *entries.Service
}

// Handler is the upload handler.
var Handler = Service{}

// Init initializes the upload handler and registers both routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.validate = validator.New()
	s.entries = entries.NewService(db)

	gate := access.New(project.NewStore(db))

	app.Post(Path, gate, s.Post)
	app.Post(WebUploadPath, gate, access.RequireAuthenticated(), s.Post)

	return nil
}

// Post handles one upload request. The access middleware has already
// resolved the project, definition, requester and role into Locals.
func (s *Service) Post(c *fiber.Ctx) error {
	proj, _ := c.Locals(handler.LocalProject).(*models.Project)
	def, _ := c.Locals(handler.LocalDefinition).(*project.Definition)
	requester, _ := c.Locals(handler.LocalRequester).(models.User)
	role, _ := c.Locals(handler.LocalRole).(models.Role)

	if proj == nil || def == nil {
		return handler.SendError(c, fiber.StatusInternalServerError, entries.CodeSaveFailed, "upload")
	}

	up, uploadErr := entries.ParsePayload(s.validate, c.Body())
	if uploadErr != nil {
		return handler.SendUploadError(c, uploadErr)
	}

	receipt, uploadErr := s.entries.Upload(proj, def, role, requester.ID, up)
	if uploadErr != nil {
		return handler.SendUploadError(c, uploadErr)
	}

	return handler.SendData(c, receipt)
}
