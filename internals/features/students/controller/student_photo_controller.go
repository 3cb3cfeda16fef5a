// internals/features/students/controller/student_photo_controller.go
package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	helper "librarydesk_backend/internals/helpers"
	helperOss "librarydesk_backend/internals/helpers/oss"
	authmw "librarydesk_backend/internals/middlewares/auth"
)

// StudentPhotoController only moves bytes to object storage; attaching the
// returned URL to a student happens through the normal create/update calls.
type StudentPhotoController struct {
	Photos helperOss.PhotoService
}

func NewStudentPhotoController(photos helperOss.PhotoService) *StudentPhotoController {
	return &StudentPhotoController{Photos: photos}
}

// POST /api/students/photo (multipart, field "photo")
func (ctl *StudentPhotoController) Upload(c *fiber.Ctx) error {
	libID, err := authmw.GetLibraryID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if ctl.Photos == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Photo storage is not configured")
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Photo file is required (field: photo)")
	}

	url, err := ctl.Photos.UploadStudentPhoto(c.UserContext(), libID, fh)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		log.Printf("[Student.Photo] upload failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Photo upload failed")
	}

	return helper.JsonCreated(c, "Photo uploaded", fiber.Map{"photo_url": url})
}
