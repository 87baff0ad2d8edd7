package handler

const (
	// RouterRootPath is the root path of a route group.
	RouterRootPath = "/"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"

	// LocalProject is the fiber.Locals key for the resolved project row.
	LocalProject = "project"
	// LocalDefinition is the fiber.Locals key for the parsed form schema.
	LocalDefinition = "definition"
	// LocalRequester is the fiber.Locals key for the resolved user (zero user when anonymous).
	LocalRequester = "requester"
	// LocalRole is the fiber.Locals key for the requester's project role ("" when none).
	LocalRole = "role"
)
