// internals/features/notifications/route/notification_routes.go
package route

import (
	notifController "librarydesk_backend/internals/features/notifications/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/*
Private routes: message composition plus the bulk dispatch session.
Mount: NotificationPrivateRoutes(app.Group("/api", authJWT), db)
*/
func NotificationPrivateRoutes(r fiber.Router, db *gorm.DB) {
	ctl := notifController.NewNotificationController(db)

	notif := r.Group("/notifications")
	notif.Post("/send", ctl.Send)                    // POST /api/notifications/send
	notif.Post("/check-expiry", ctl.CheckExpiry)     // POST /api/notifications/check-expiry
	notif.Post("/bulk", ctl.Bulk)                    // POST /api/notifications/bulk
	notif.Post("/bulk/strategy", ctl.SelectStrategy) // POST /api/notifications/bulk/strategy
	notif.Post("/bulk/open-next", ctl.OpenNext)      // POST /api/notifications/bulk/open-next
	notif.Post("/bulk/open-all", ctl.OpenAll)        // POST /api/notifications/bulk/open-all
	notif.Post("/bulk/cancel", ctl.Cancel)           // POST /api/notifications/bulk/cancel
}
