package entries

import "github.com/gofiber/fiber/v2"

// Error codes returned by the upload API. The numeric codes are part of the
// wire contract with the mobile and web clients and must not be renumbered.
const (
	CodeInvalidPayload  = "ec5_14"
	CodeFormNotFound    = "ec5_15"
	CodeEntryNotFound   = "ec5_21"
	CodeNotUnique       = "ec5_22"
	CodeNotAuthorised   = "ec5_54"
	CodeProjectPrivate  = "ec5_77"
	CodeProjectNoAccess = "ec5_78"
	CodeInputNotFound   = "ec5_84"
	CodeSaveFailed      = "ec5_104"
	CodeUploaded        = "ec5_237"
)

// titles maps error codes to their human readable messages.
var titles = map[string]string{
	CodeInvalidPayload:  "Invalid payload structure",
	CodeFormNotFound:    "Form does not exist",
	CodeEntryNotFound:   "Entry does not exist",
	CodeNotUnique:       "Answer is not unique",
	CodeNotAuthorised:   "User not authorised to edit this entry",
	CodeProjectPrivate:  "This project is private",
	CodeProjectNoAccess: "You are not authorised to access this project",
	CodeInputNotFound:   "Input does not exist",
	CodeSaveFailed:      "Entry could not be saved",
	CodeUploaded:        "Entry successfully uploaded.",
}

// Title returns the human readable message for a code.
func Title(code string) string {
	return titles[code]
}

// Error is a structured, coded upload failure. Source identifies the
// offending input ref for uniqueness violations, or a surface name
// ("upload", "middleware") otherwise.
type Error struct {
	Code   string
	Source string
	Status int
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Code + ": " + Title(e.Code)
}

// Title returns the human readable message of the error.
func (e *Error) Title() string {
	return Title(e.Code)
}

func newError(code, source string, status int) *Error {
	return &Error{Code: code, Source: source, Status: status}
}

func errInvalidPayload(source string) *Error {
	return newError(CodeInvalidPayload, source, fiber.StatusBadRequest)
}

func errFormNotFound() *Error {
	return newError(CodeFormNotFound, "upload", fiber.StatusBadRequest)
}

func errEntryNotFound() *Error {
	return newError(CodeEntryNotFound, "upload", fiber.StatusBadRequest)
}

func errNotUnique(inputRef string) *Error {
	return newError(CodeNotUnique, inputRef, fiber.StatusBadRequest)
}

func errNotAuthorised() *Error {
	return newError(CodeNotAuthorised, "upload", fiber.StatusBadRequest)
}

func errInputNotFound(inputRef string) *Error {
	return newError(CodeInputNotFound, inputRef, fiber.StatusBadRequest)
}

func errSaveFailed() *Error {
	return newError(CodeSaveFailed, "upload", fiber.StatusBadRequest)
}
