package details

import (
	notifRoute "librarydesk_backend/internals/features/notifications/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func NotificationRoutes(private fiber.Router, db *gorm.DB) {
	notifRoute.NotificationPrivateRoutes(private, db)
}
