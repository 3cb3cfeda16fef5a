// internals/features/students/controller/student_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	libModel "librarydesk_backend/internals/features/libraries/model"
	stuDTO "librarydesk_backend/internals/features/students/dto"
	stuModel "librarydesk_backend/internals/features/students/model"
	svc "librarydesk_backend/internals/features/students/service"
	helper "librarydesk_backend/internals/helpers"
	authmw "librarydesk_backend/internals/middlewares/auth"
)

type StudentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db, Validate: helper.Validator()}
}

/* ===================== HANDLERS ===================== */

// POST /api/students
func (ctl *StudentController) Create(c *fiber.Ctx) error {
	libID, err := authmw.GetLibraryID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req stuDTO.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	m, err := req.ToModel(libID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	// Seat check and insert run in one transaction; the partial unique index
	// is the backstop when two requests race for the same vacated seat.
	txErr := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		lib, err := findLibrary(tx, libID)
		if err != nil {
			return err
		}
		active, err := listActive(tx, libID)
		if err != nil {
			return err
		}
		if err := seatError(svc.ValidateAssignment(lib.LibraryTotalSeats, active, m.StudentSeatNumber, uuid.Nil)); err != nil {
			return err
		}
		return tx.Create(m).Error
	})
	if txErr != nil {
		return ctl.writeStudentError(c, txErr, "create")
	}

	return helper.JsonCreated(c, "Student registered successfully", stuDTO.NewStudentResponse(m))
}

// PUT /api/students/:id
func (ctl *StudentController) Update(c *fiber.Ctx) error {
	libID, err := authmw.GetLibraryID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Student ID is not valid")
	}

	var req stuDTO.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	if !req.HasChanges() {
		return helper.JsonError(c, fiber.StatusBadRequest, "No fields to update")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	var m stuModel.StudentModel
	txErr := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ? AND student_library_id = ? AND student_is_active = TRUE", id, libID).
			First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Student not found")
			}
			return err
		}

		if req.StudentSeatNumber != nil && *req.StudentSeatNumber != m.StudentSeatNumber {
			lib, err := findLibrary(tx, libID)
			if err != nil {
				return err
			}
			active, err := listActive(tx, libID)
			if err != nil {
				return err
			}
			if err := seatError(svc.ValidateAssignment(lib.LibraryTotalSeats, active, *req.StudentSeatNumber, m.StudentID)); err != nil {
				return err
			}
		}

		if err := req.ApplyToModel(&m); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return tx.Save(&m).Error
	})
	if txErr != nil {
		return ctl.writeStudentError(c, txErr, "update")
	}

	return helper.JsonUpdated(c, "Student information updated", stuDTO.NewStudentResponse(&m))
}

// DELETE /api/students/:id is a soft delete: the record stays for seat history
// and messaging audit, it just stops holding the seat.
func (ctl *StudentController) Delete(c *fiber.Ctx) error {
	libID, err := authmw.GetLibraryID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Student ID is not valid")
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Model(&stuModel.StudentModel{}).
		Where("student_id = ? AND student_library_id = ? AND student_is_active = TRUE", id, libID).
		Update("student_is_active", false)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to remove student")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
	}

	return helper.JsonDeleted(c, "Student removed; seat is free again", fiber.Map{"student_id": id})
}

// GET /api/students
func (ctl *StudentController) List(c *fiber.Ctx) error {
	libID, err := authmw.GetLibraryID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	active, err := listActive(ctl.DB.WithContext(c.UserContext()), libID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load students")
	}

	items := make([]*stuDTO.StudentResponse, 0, len(active))
	for i := range active {
		items = append(items, stuDTO.NewStudentResponse(&active[i]))
	}
	return helper.JsonList(c, "", items)
}

// GET /api/students/seats recomputes availability fresh on every call, never
// cached across mutations.
func (ctl *StudentController) Seats(c *fiber.Ctx) error {
	libID, err := authmw.GetLibraryID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	db := ctl.DB.WithContext(c.UserContext())
	lib, err := findLibrary(db, libID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	active, err := listActive(db, libID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load students")
	}

	excluded := c.QueryInt("exclude_seat", 0)
	return helper.JsonOK(c, "", stuDTO.SeatMapResponse{
		TotalSeats:     lib.LibraryTotalSeats,
		OccupiedSeats:  svc.OccupiedSeats(active),
		AvailableSeats: svc.AvailableSeatsExcluding(lib.LibraryTotalSeats, active, excluded),
	})
}

/* ===================== HELPERS ===================== */

func findLibrary(tx *gorm.DB, libID uuid.UUID) (*libModel.LibraryModel, error) {
	var lib libModel.LibraryModel
	if err := tx.Where("library_id = ?", libID).First(&lib).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Library not found")
		}
		return nil, err
	}
	return &lib, nil
}

func listActive(tx *gorm.DB, libID uuid.UUID) ([]stuModel.StudentModel, error) {
	var rows []stuModel.StudentModel
	err := tx.
		Where("student_library_id = ? AND student_is_active = TRUE", libID).
		Order("student_seat_number ASC").
		Find(&rows).Error
	return rows, err
}

// seatError converts allocator errors to actionable HTTP errors.
func seatError(err error) error {
	if err == nil {
		return nil
	}
	var conflict *svc.SeatConflictError
	if errors.As(err, &conflict) {
		return fiber.NewError(fiber.StatusConflict, "Seat is already occupied by another student. Please pick another seat.")
	}
	var oor *svc.SeatOutOfRangeError
	if errors.As(err, &oor) {
		return fiber.NewError(fiber.StatusBadRequest, oor.Error())
	}
	return err
}

func (ctl *StudentController) writeStudentError(c *fiber.Ctx, err error, op string) error {
	if fe, ok := err.(*fiber.Error); ok {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	if helper.IsUniqueViolation(err) {
		// the race the in-transaction check could not see; index caught it
		return helper.JsonError(c, fiber.StatusConflict, "Seat is already occupied by another student. Please pick another seat.")
	}
	log.Printf("[Student.%s] storage error: %v", op, err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save student")
}
