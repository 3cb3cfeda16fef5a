// internals/features/libraries/route/library_routes.go
package route

import (
	libController "librarydesk_backend/internals/features/libraries/controller"
	"librarydesk_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/*
Public routes: registration and login, each behind its own limiter.
Mount: LibraryPublicRoutes(app.Group("/api"), db)
*/
func LibraryPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctl := libController.NewLibraryController(db)

	auth := r.Group("/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctl.Register) // POST /api/auth/register
	auth.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)         // POST /api/auth/login
}

// Private routes: the signed-in owner's own library.
func LibraryPrivateRoutes(r fiber.Router, db *gorm.DB) {
	ctl := libController.NewLibraryController(db)

	lib := r.Group("/libraries")
	lib.Get("/me", ctl.Me) // GET /api/libraries/me
}
