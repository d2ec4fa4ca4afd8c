// Package auth provides authentication middleware for the web application.
//
// The middleware reads the session cookie, adds the logged in user to
// fiber.Locals for handlers and templates and redirects anonymous requests for
// the administration to the login page. Public pages stay reachable without a
// session.
//
// Usage:
//
//	app.Use(handler.AdminContext(cfg.Webserver.AdminPrefix))
//	app.Use(authmiddleware.New(cfg.Webserver.AdminPrefix))
package auth
