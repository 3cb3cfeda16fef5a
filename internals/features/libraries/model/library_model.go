// internals/features/libraries/model/library_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LibraryModel struct {
	// PK
	LibraryID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:library_id" json:"library_id"`

	// Identity
	LibraryName      string `gorm:"type:varchar(150);not null;column:library_name" json:"library_name"`
	LibraryOwnerName string `gorm:"type:varchar(100);not null;column:library_owner_name" json:"library_owner_name"`

	// Owner contact, international format (+91 followed by 10 digits)
	LibraryOwnerPhone string `gorm:"type:varchar(20);not null;column:library_owner_phone" json:"library_owner_phone"`

	// Credentials
	LibraryPassword string `gorm:"type:varchar(100);not null;column:library_password" json:"-"`

	// Seat capacity; immutable after registration
	LibraryTotalSeats int `gorm:"not null;check:library_total_seats >= 1;column:library_total_seats" json:"library_total_seats"`

	// Audit
	LibraryCreatedAt time.Time      `gorm:"column:library_created_at;autoCreateTime" json:"library_created_at"`
	LibraryUpdatedAt *time.Time     `gorm:"column:library_updated_at;autoUpdateTime" json:"library_updated_at,omitempty"`
	LibraryDeletedAt gorm.DeletedAt `gorm:"column:library_deleted_at;index" json:"library_deleted_at,omitempty"`
}

func (LibraryModel) TableName() string { return "libraries" }
