// internals/features/libraries/controller/library_controller.go
package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"librarydesk_backend/internals/configs"
	libDTO "librarydesk_backend/internals/features/libraries/dto"
	libModel "librarydesk_backend/internals/features/libraries/model"
	helper "librarydesk_backend/internals/helpers"
	authmw "librarydesk_backend/internals/middlewares/auth"
)

type LibraryController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewLibraryController(db *gorm.DB) *LibraryController {
	return &LibraryController{DB: db, Validate: helper.Validator()}
}

const accessTokenTTL = 7 * 24 * time.Hour

/* ===================== HANDLERS ===================== */

// POST /api/auth/register
func (ctl *LibraryController) Register(c *fiber.Ctx) error {
	var req libDTO.RegisterLibraryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.LibraryPassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	m := req.ToModel(string(hash))
	if err := ctl.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		code, msg := helper.MapPGError(err, "A library is already registered with this phone number")
		log.Printf("[Library.Register] create error: %v", err)
		return helper.JsonError(c, code, msg)
	}

	return helper.JsonCreated(c, "Library registered successfully", libDTO.NewLibraryResponse(m))
}

// POST /api/auth/login
func (ctl *LibraryController) Login(c *fiber.Ctx) error {
	var req libDTO.LoginLibraryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	var m libModel.LibraryModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("library_owner_phone = ?", req.LibraryOwnerPhone).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Phone number or password is incorrect")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to look up library")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(m.LibraryPassword), []byte(req.LibraryPassword)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Phone number or password is incorrect")
	}

	token, err := signAccessToken(m.LibraryID.String())
	if err != nil {
		log.Printf("[Library.Login] sign token error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue session token")
	}

	return helper.JsonOK(c, "Login successful", libDTO.LoginLibraryResponse{
		AccessToken: token,
		Library:     libDTO.NewLibraryResponse(&m),
	})
}

// GET /api/libraries/me
func (ctl *LibraryController) Me(c *fiber.Ctx) error {
	libID, err := authmw.GetLibraryID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var m libModel.LibraryModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("library_id = ?", libID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Library not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to look up library")
	}

	return helper.JsonOK(c, "", libDTO.NewLibraryResponse(&m))
}

/* ===================== HELPERS ===================== */

func signAccessToken(libraryID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":        libraryID,
		"library_id": libraryID,
		"iat":        now.Unix(),
		"exp":        now.Add(accessTokenTTL).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(configs.JWTSecret))
}
