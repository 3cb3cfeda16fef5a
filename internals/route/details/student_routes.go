package details

import (
	stuRoute "librarydesk_backend/internals/features/students/route"
	helperOss "librarydesk_backend/internals/helpers/oss"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func StudentRoutes(private fiber.Router, db *gorm.DB, photos helperOss.PhotoService) {
	stuRoute.StudentPrivateRoutes(private, db, photos)
}
