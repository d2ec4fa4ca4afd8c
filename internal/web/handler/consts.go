package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"

	// LocalsAdmin is the fiber.Locals key of the administration flag.
	LocalsAdmin = "Admin"

	// LocalsCurrentUser is the fiber.Locals key of the logged in user.
	LocalsCurrentUser = "CurrentUser"
)

// PublicLayout is the layout of the pages visitors see.
const PublicLayout = "layouts/public"
