// internals/features/students/model/student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*
Membership record. A seat is held only while the record is active; Delete is a
soft deactivate (student_is_active = false) so seat history and messaging audit
stay queryable. The partial unique index uq_students_active_seat (see
databases.Migrate) is the final backstop for seat uniqueness.
*/
type StudentModel struct {
	// PK
	StudentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_id" json:"student_id"`

	// Owning library
	StudentLibraryID uuid.UUID `gorm:"type:uuid;not null;index;column:student_library_id" json:"student_library_id"`

	// Identity & contact
	StudentName  string `gorm:"type:varchar(100);not null;column:student_name" json:"student_name"`
	StudentPhone string `gorm:"type:varchar(20);not null;column:student_phone" json:"student_phone"`

	// Seat & membership window
	StudentSeatNumber int            `gorm:"not null;check:student_seat_number >= 1;column:student_seat_number" json:"student_seat_number"`
	StudentStartDate  datatypes.Date `gorm:"type:date;not null;column:student_start_date" json:"student_start_date"`
	StudentEndDate    datatypes.Date `gorm:"type:date;not null;column:student_end_date" json:"student_end_date"`

	// Media
	StudentPhotoURL *string `gorm:"column:student_photo_url" json:"student_photo_url,omitempty"`

	// Status
	StudentIsActive bool `gorm:"not null;default:true;column:student_is_active" json:"student_is_active"`

	// Audit
	StudentCreatedAt time.Time      `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt *time.Time     `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at,omitempty"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"student_deleted_at,omitempty"`
}

func (StudentModel) TableName() string { return "students" }

// EndDateTime returns the membership end date as time.Time.
func (s *StudentModel) EndDateTime() time.Time { return time.Time(s.StudentEndDate) }

// StartDateTime returns the membership start date as time.Time.
func (s *StudentModel) StartDateTime() time.Time { return time.Time(s.StudentStartDate) }
