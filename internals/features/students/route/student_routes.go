// internals/features/students/route/student_routes.go
package route

import (
	stuController "librarydesk_backend/internals/features/students/controller"
	helperOss "librarydesk_backend/internals/helpers/oss"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/*
Private routes: full student CRUD plus the seat map, scoped to the
authenticated library.
Mount: StudentPrivateRoutes(app.Group("/api", authJWT), db, photos)
*/
func StudentPrivateRoutes(r fiber.Router, db *gorm.DB, photos helperOss.PhotoService) {
	ctl := stuController.NewStudentController(db)
	photoCtl := stuController.NewStudentPhotoController(photos)

	students := r.Group("/students")
	students.Get("/", ctl.List)               // GET    /api/students
	students.Get("/seats", ctl.Seats)         // GET    /api/students/seats?exclude_seat=
	students.Post("/", ctl.Create)            // POST   /api/students
	students.Post("/photo", photoCtl.Upload)  // POST   /api/students/photo (multipart)
	students.Put("/:id", ctl.Update)          // PUT    /api/students/:id
	students.Delete("/:id", ctl.Delete)       // DELETE /api/students/:id (soft)
}
