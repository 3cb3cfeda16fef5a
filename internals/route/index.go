// file: internals/route/index.go
package routes

import (
	"log"
	"os"
	"time"

	authMiddleware "librarydesk_backend/internals/middlewares/auth"

	helperOss "librarydesk_backend/internals/helpers/oss"
	routeDetails "librarydesk_backend/internals/route/details"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	// ===================== GROUPS =====================

	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api")

	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	)

	// Photo storage is optional in local dev; the upload endpoint answers 503
	// until the ALI_OSS_* env is present.
	photos, err := helperOss.NewOSSPhotoServiceFromEnv("")
	if err != nil {
		log.Printf("[WARN] photo storage disabled: %v", err)
	}
	var photoService helperOss.PhotoService
	if photos != nil {
		photoService = photos
	}

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Library routes...")
	routeDetails.LibraryRoutes(public, private, db)

	log.Println("[INFO] Mounting Student routes...")
	routeDetails.StudentRoutes(private, db, photoService)

	log.Println("[INFO] Mounting Notification routes...")
	routeDetails.NotificationRoutes(private, db)
}
