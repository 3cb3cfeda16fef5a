// internals/features/students/dto/student_dto.go
package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	stuModel "librarydesk_backend/internals/features/students/model"
)

const dateLayout = "2006-01-02"

/* ===================== REQUESTS ===================== */

type CreateStudentRequest struct {
	StudentName       string  `json:"name" validate:"required,min=2,max=100"`
	StudentPhone      string  `json:"phone" validate:"required,e164in"`
	StudentSeatNumber int     `json:"seat_number" validate:"required,gte=1"`
	StudentStartDate  string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	StudentEndDate    string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	StudentPhotoURL   *string `json:"photo_url" validate:"omitempty,url"`
}

func (r *CreateStudentRequest) ToModel(libraryID uuid.UUID) (*stuModel.StudentModel, error) {
	start, err := time.Parse(dateLayout, r.StudentStartDate)
	if err != nil {
		return nil, fmt.Errorf("start_date must be a date in YYYY-MM-DD format")
	}
	end, err := time.Parse(dateLayout, r.StudentEndDate)
	if err != nil {
		return nil, fmt.Errorf("end_date must be a date in YYYY-MM-DD format")
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end_date must not be before start_date")
	}
	return &stuModel.StudentModel{
		StudentLibraryID:  libraryID,
		StudentName:       r.StudentName,
		StudentPhone:      r.StudentPhone,
		StudentSeatNumber: r.StudentSeatNumber,
		StudentStartDate:  datatypes.Date(start),
		StudentEndDate:    datatypes.Date(end),
		StudentPhotoURL:   r.StudentPhotoURL,
		StudentIsActive:   true,
	}, nil
}

// UpdateStudentRequest: only supplied fields change; at least one must be set.
type UpdateStudentRequest struct {
	StudentName       *string `json:"name" validate:"omitempty,min=2,max=100"`
	StudentPhone      *string `json:"phone" validate:"omitempty,e164in"`
	StudentSeatNumber *int    `json:"seat_number" validate:"omitempty,gte=1"`
	StudentStartDate  *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	StudentEndDate    *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	StudentPhotoURL   *string `json:"photo_url" validate:"omitempty,url"`
}

func (r *UpdateStudentRequest) HasChanges() bool {
	return r.StudentName != nil || r.StudentPhone != nil || r.StudentSeatNumber != nil ||
		r.StudentStartDate != nil || r.StudentEndDate != nil || r.StudentPhotoURL != nil
}

func (r *UpdateStudentRequest) ApplyToModel(m *stuModel.StudentModel) error {
	if r.StudentName != nil {
		m.StudentName = *r.StudentName
	}
	if r.StudentPhone != nil {
		m.StudentPhone = *r.StudentPhone
	}
	if r.StudentSeatNumber != nil {
		m.StudentSeatNumber = *r.StudentSeatNumber
	}
	if r.StudentStartDate != nil {
		start, err := time.Parse(dateLayout, *r.StudentStartDate)
		if err != nil {
			return fmt.Errorf("start_date must be a date in YYYY-MM-DD format")
		}
		m.StudentStartDate = datatypes.Date(start)
	}
	if r.StudentEndDate != nil {
		end, err := time.Parse(dateLayout, *r.StudentEndDate)
		if err != nil {
			return fmt.Errorf("end_date must be a date in YYYY-MM-DD format")
		}
		m.StudentEndDate = datatypes.Date(end)
	}
	if r.StudentPhotoURL != nil {
		m.StudentPhotoURL = r.StudentPhotoURL
	}
	if m.EndDateTime().Before(m.StartDateTime()) {
		return fmt.Errorf("end_date must not be before start_date")
	}
	return nil
}

/* ===================== RESPONSES ===================== */

type StudentResponse struct {
	StudentID         uuid.UUID `json:"student_id"`
	StudentLibraryID  uuid.UUID `json:"student_library_id"`
	StudentName       string    `json:"student_name"`
	StudentPhone      string    `json:"student_phone"`
	StudentSeatNumber int       `json:"student_seat_number"`
	StudentStartDate  string    `json:"student_start_date"`
	StudentEndDate    string    `json:"student_end_date"`
	StudentPhotoURL   *string   `json:"student_photo_url,omitempty"`
	StudentIsActive   bool      `json:"student_is_active"`
	StudentCreatedAt  time.Time `json:"student_created_at"`
}

func NewStudentResponse(m *stuModel.StudentModel) *StudentResponse {
	if m == nil {
		return nil
	}
	return &StudentResponse{
		StudentID:         m.StudentID,
		StudentLibraryID:  m.StudentLibraryID,
		StudentName:       m.StudentName,
		StudentPhone:      m.StudentPhone,
		StudentSeatNumber: m.StudentSeatNumber,
		StudentStartDate:  m.StartDateTime().Format(dateLayout),
		StudentEndDate:    m.EndDateTime().Format(dateLayout),
		StudentPhotoURL:   m.StudentPhotoURL,
		StudentIsActive:   m.StudentIsActive,
		StudentCreatedAt:  m.StudentCreatedAt,
	}
}

type SeatMapResponse struct {
	TotalSeats     int   `json:"total_seats"`
	OccupiedSeats  []int `json:"occupied_seats"`
	AvailableSeats []int `json:"available_seats"`
}
