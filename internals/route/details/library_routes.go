package details

import (
	libRoute "librarydesk_backend/internals/features/libraries/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func LibraryRoutes(public fiber.Router, private fiber.Router, db *gorm.DB) {
	libRoute.LibraryPublicRoutes(public, db)
	libRoute.LibraryPrivateRoutes(private, db)
}
