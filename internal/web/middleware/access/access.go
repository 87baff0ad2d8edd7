// Package access implements the project access gate. It resolves the
// project behind the :project_slug route param, the requesting user behind
// the session cookie, and the user's project role, and stores all of them
// in fiber.Locals for the handlers downstream.
//
// Private projects are hidden from outsiders: unauthenticated requests get
// 404 ec5_77, authenticated requests without a project role get 404 ec5_78.
package access

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/collect5/collect5/internal/db/models"
	"github.com/collect5/collect5/internal/entries"
	"github.com/collect5/collect5/internal/project"
	"github.com/collect5/collect5/internal/web/handler"
	"github.com/collect5/collect5/internal/web/session"
)

// New creates the project access middleware on top of a project store.
func New(store *project.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := c.Params("project_slug")

		proj, def, err := store.FindBySlug(slug)
		if err != nil {
			if errors.Is(err, project.ErrProjectNotFound) {
				return handler.SendError(c, fiber.StatusNotFound, entries.CodeProjectPrivate, "middleware")
			}

			log.Error().Err(err).Str("slug", slug).Msg("failed to resolve project")

			return handler.SendError(c, fiber.StatusInternalServerError, entries.CodeSaveFailed, "middleware")
		}

		requester := resolveRequester(c)

		role, err := store.RoleFor(requester.ID, proj.ID)
		if err != nil {
			log.Error().Err(err).Str("slug", slug).Uint64("user_id", requester.ID).Msg("failed to resolve project role")

			return handler.SendError(c, fiber.StatusInternalServerError, entries.CodeSaveFailed, "middleware")
		}

		if proj.Access == models.ProjectAccessPrivate {
			if requester.ID == 0 {
				return handler.SendError(c, fiber.StatusNotFound, entries.CodeProjectPrivate, "middleware")
			}

			if role == "" {
				return handler.SendError(c, fiber.StatusNotFound, entries.CodeProjectNoAccess, "middleware")
			}
		}

		c.Locals(handler.LocalProject, proj)
		c.Locals(handler.LocalDefinition, def)
		c.Locals(handler.LocalRequester, requester)
		c.Locals(handler.LocalRole, role)

		return c.Next()
	}
}

// RequireAuthenticated rejects requests without a valid session. Used by the
// internal web-upload route, which never accepts anonymous submissions.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requester := resolveRequester(c)
		if requester.ID == 0 {
			return handler.SendError(c, fiber.StatusNotFound, entries.CodeProjectNoAccess, "middleware")
		}

		return c.Next()
	}
}

// resolveRequester reads the session cookie and returns the stored user.
// Anonymous or invalid sessions yield the zero user.
func resolveRequester(c *fiber.Ctx) models.User {
	sessionID := c.Cookies("session")
	if sessionID == "" {
		return models.User{}
	}

	sessData := new(session.Data)
	if err := sessData.Read(sessionID); err != nil {
		return models.User{}
	}

	return sessData.User
}
