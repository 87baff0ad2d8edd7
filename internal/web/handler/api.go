// Package handler provides shared helpers for web handlers: the JSON API
// envelope and the fiber.Locals keys populated by the access middleware.
package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/collect5/collect5/internal/entries"
)

// APIError is one element of the error envelope.
type APIError struct {
	Code   string `json:"code"`
	Source string `json:"source"`
	Title  string `json:"title"`
}

// errorEnvelope wraps API errors: { "errors": [ {code, source, title} ] }.
type errorEnvelope struct {
	Errors []APIError `json:"errors"`
}

// dataEnvelope wraps API success payloads: { "data": ... }.
type dataEnvelope struct {
	Data any `json:"data"`
}

// SendData sends a success envelope with status 200.
func SendData(c *fiber.Ctx, data any) error {
	return c.JSON(dataEnvelope{Data: data})
}

// SendError sends a single-error envelope with the given status.
func SendError(c *fiber.Ctx, status int, code, source string) error {
	return c.Status(status).JSON(errorEnvelope{
		Errors: []APIError{{Code: code, Source: source, Title: entries.Title(code)}},
	})
}

// SendUploadError sends the envelope for a coded upload failure.
func SendUploadError(c *fiber.Ctx, uploadErr *entries.Error) error {
	return SendError(c, uploadErr.Status, uploadErr.Code, uploadErr.Source)
}
