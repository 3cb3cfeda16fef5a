// internals/features/libraries/dto/library_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	libModel "librarydesk_backend/internals/features/libraries/model"
)

/* ===================== REQUESTS ===================== */

type RegisterLibraryRequest struct {
	LibraryName       string `json:"name" validate:"required,min=2,max=150"`
	LibraryOwnerName  string `json:"owner_name" validate:"required,min=2,max=100"`
	LibraryOwnerPhone string `json:"owner_phone" validate:"required,e164in"`
	LibraryPassword   string `json:"password" validate:"required,min=6,max=72"`
	LibraryTotalSeats int    `json:"total_seats" validate:"required,gte=1"`
}

func (r *RegisterLibraryRequest) ToModel(passwordHash string) *libModel.LibraryModel {
	return &libModel.LibraryModel{
		LibraryName:       r.LibraryName,
		LibraryOwnerName:  r.LibraryOwnerName,
		LibraryOwnerPhone: r.LibraryOwnerPhone,
		LibraryPassword:   passwordHash,
		LibraryTotalSeats: r.LibraryTotalSeats,
	}
}

type LoginLibraryRequest struct {
	LibraryOwnerPhone string `json:"owner_phone" validate:"required,e164in"`
	LibraryPassword   string `json:"password" validate:"required"`
}

/* ===================== RESPONSES ===================== */

type LibraryResponse struct {
	LibraryID         uuid.UUID  `json:"library_id"`
	LibraryName       string     `json:"library_name"`
	LibraryOwnerName  string     `json:"library_owner_name"`
	LibraryOwnerPhone string     `json:"library_owner_phone"`
	LibraryTotalSeats int        `json:"library_total_seats"`
	LibraryCreatedAt  time.Time  `json:"library_created_at"`
	LibraryUpdatedAt  *time.Time `json:"library_updated_at,omitempty"`
}

func NewLibraryResponse(m *libModel.LibraryModel) *LibraryResponse {
	if m == nil {
		return nil
	}
	return &LibraryResponse{
		LibraryID:         m.LibraryID,
		LibraryName:       m.LibraryName,
		LibraryOwnerName:  m.LibraryOwnerName,
		LibraryOwnerPhone: m.LibraryOwnerPhone,
		LibraryTotalSeats: m.LibraryTotalSeats,
		LibraryCreatedAt:  m.LibraryCreatedAt,
		LibraryUpdatedAt:  m.LibraryUpdatedAt,
	}
}

type LoginLibraryResponse struct {
	AccessToken string           `json:"access_token"`
	Library     *LibraryResponse `json:"library"`
}
