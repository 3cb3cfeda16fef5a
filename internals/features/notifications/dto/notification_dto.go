// internals/features/notifications/dto/notification_dto.go
package dto

import (
	svc "librarydesk_backend/internals/features/notifications/service"
)

/* ===================== REQUESTS ===================== */

type SendNotificationRequest struct {
	StudentID string `json:"student_id" validate:"required,uuid"`
	Message   string `json:"message" validate:"required,min=1,max=1000"`
	Language  string `json:"language" validate:"omitempty,oneof=hindi english"`
}

type BulkNotificationRequest struct {
	Message  string `json:"message" validate:"required,min=1,max=1000"`
	Language string `json:"language" validate:"omitempty,oneof=hindi english"`
}

type CheckExpiryRequest struct {
	Language string `json:"language" validate:"omitempty,oneof=hindi english"`
}

type SelectStrategyRequest struct {
	Choice string `json:"choice" validate:"required"`
}

/* ===================== RESPONSES ===================== */

type BulkInstructions struct {
	PhoneList   string `json:"phone_list"`
	StudentList string `json:"student_list"`
	Message     string `json:"message"`
}

// BulkComposeResponse carries every render mode at once so the operator can
// pick a method without a second round trip for the data itself.
type BulkComposeResponse struct {
	TotalStudents    int                    `json:"total_students"`
	Prompt           string                 `json:"prompt"`
	DispatchState    string                 `json:"dispatch_state"`
	WhatsAppURLs     []svc.MessageIntent    `json:"whatsapp_urls"`
	BulkInstructions BulkInstructions       `json:"bulk_instructions"`
	Skipped          []svc.SkippedRecipient `json:"skipped,omitempty"`
}

func NewBulkComposeResponse(batch *svc.BulkBatch, lang svc.Language, state svc.DispatchState) *BulkComposeResponse {
	manual := batch.Manual()
	return &BulkComposeResponse{
		TotalStudents: len(batch.Intents),
		Prompt:        svc.StrategyPrompt(lang, len(batch.Intents)),
		DispatchState: string(state),
		WhatsAppURLs:  batch.SequentialIntents(),
		BulkInstructions: BulkInstructions{
			PhoneList:   batch.PhoneList(),
			StudentList: manual.StudentList,
			Message:     batch.SharedBody,
		},
		Skipped: batch.Skipped,
	}
}

type StrategyResponse struct {
	Strategy      string              `json:"strategy"`
	DispatchState string              `json:"dispatch_state"`
	Opened        []svc.MessageIntent `json:"opened,omitempty"`
	Remaining     []svc.MessageIntent `json:"remaining,omitempty"`
	PhoneList     string              `json:"phone_list,omitempty"`
	StudentList   string              `json:"student_list,omitempty"`
	Message       string              `json:"message,omitempty"`
}

type CheckExpiryResponse struct {
	TotalExpiring    int                 `json:"total_expiring"`
	ExpiredToday     int                 `json:"expired_today"`
	ExpiringTomorrow int                 `json:"expiring_tomorrow"`
	WhatsAppURLs     []svc.MessageIntent `json:"whatsapp_urls"`
}
