// Package login provides the local username/password login issuing the
// session cookie. External identity providers (OAuth, LDAP, passwordless
// email codes) are upstream collaborators and are not handled here.
package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/collect5/collect5/internal/config"
	"github.com/collect5/collect5/internal/db/models"
	"github.com/collect5/collect5/internal/web/handler"
	"github.com/collect5/collect5/internal/web/session"
)

const (
	// Path is the path to the login endpoint.
	Path = "/login"
	// LogoutPath is the path to the logout endpoint.
	LogoutPath = "/logout"
)

// Service is the login handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.db = db
	s.cfg = cfg

	app.Post(Path, s.Post)
	app.Get(LogoutPath, s.Logout)

	return nil
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Post handles a login request and sets the session cookie on success.
func (s *Service) Post(c *fiber.Ctx) error {
	var creds credentials

	if err := c.BodyParser(&creds); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid credentials payload"})
	}

	var dbUser models.User

	result := s.db.Where("username = ?", creds.Username).First(&dbUser)
	if result.Error != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid username or password"})
	}

	if !dbUser.Active {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "account is inactive"})
	}

	if !dbUser.VerifyPassword(creds.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid username or password"})
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	userSession := &session.Data{
		User: dbUser,
	}

	if err = userSession.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	cookieSettings := &fiber.Cookie{
		Name:     "session",
		Value:    sessionID,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax",
	}

	if s.cfg.DevMode {
		cookieSettings.Secure = false
	}

	c.Cookie(cookieSettings)

	return c.JSON(fiber.Map{"username": dbUser.Username})
}

// Logout deletes the session and clears the cookie.
func (s *Service) Logout(c *fiber.Ctx) error {
	if sessionID := c.Cookies("session"); sessionID != "" {
		_ = session.Store.Storage.Delete(sessionID)
	}

	c.ClearCookie("session")

	return c.JSON(fiber.Map{"logged_out": true})
}
