// internals/features/notifications/service/whatsapp.go
package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	helper "librarydesk_backend/internals/helpers"
)

/*
The composer builds addressable message intents only. Nothing here talks to
WhatsApp; the deep-link is opened by a browser or operator downstream, and
delivery is never guaranteed by this layer.
*/

const waBaseURL = "https://wa.me/"

type Recipient struct {
	StudentID uuid.UUID
	Name      string
	Phone     string
}

type MessageIntent struct {
	StudentID           uuid.UUID `json:"student_id,omitempty"`
	StudentName         string    `json:"student_name"`
	Phone               string    `json:"phone"`
	Body                string    `json:"message"`
	WhatsAppURL         string    `json:"whatsapp_url"`
	IsOwnerNotification bool      `json:"is_owner_notification,omitempty"`
}

type InvalidPhoneError struct {
	Phone string
}

func (e *InvalidPhoneError) Error() string {
	return fmt.Sprintf("phone %q does not match +91 followed by 10 digits", e.Phone)
}

// DeepLink is pure and deterministic: the same (phone, body) always yields the
// same URL.
func DeepLink(phone, body string) string {
	digits := strings.TrimPrefix(phone, "+")
	return waBaseURL + digits + "?text=" + url.QueryEscape(body)
}

// ComposeSingle builds one intent, rejecting phones outside the +91 contract.
func ComposeSingle(r Recipient, body string) (MessageIntent, error) {
	phone := strings.TrimSpace(r.Phone)
	if !helper.IsValidPhone(phone) {
		return MessageIntent{}, &InvalidPhoneError{Phone: r.Phone}
	}
	return MessageIntent{
		StudentID:   r.StudentID,
		StudentName: r.Name,
		Phone:       phone,
		Body:        body,
		WhatsAppURL: DeepLink(phone, body),
	}, nil
}

type SkippedRecipient struct {
	StudentID uuid.UUID `json:"student_id,omitempty"`
	Name      string    `json:"student_name"`
	Phone     string    `json:"phone"`
	Reason    string    `json:"reason"`
}

// BulkBatch is ephemeral: composed on demand, never persisted.
type BulkBatch struct {
	Intents    []MessageIntent
	Skipped    []SkippedRecipient
	SharedBody string
}

func (b *BulkBatch) TotalRecipients() int { return len(b.Intents) + len(b.Skipped) }

// ComposeBulk applies composition to every recipient. A recipient with a bad
// phone is skipped and counted, never aborts the batch. render may be nil, in
// which case every intent carries sharedBody.
func ComposeBulk(recipients []Recipient, sharedBody string, render func(Recipient) string) *BulkBatch {
	batch := &BulkBatch{SharedBody: sharedBody}
	for _, r := range recipients {
		body := sharedBody
		if render != nil {
			body = render(r)
		}
		intent, err := ComposeSingle(r, body)
		if err != nil {
			batch.Skipped = append(batch.Skipped, SkippedRecipient{
				StudentID: r.StudentID,
				Name:      r.Name,
				Phone:     r.Phone,
				Reason:    err.Error(),
			})
			continue
		}
		batch.Intents = append(batch.Intents, intent)
	}
	return batch
}

/* ===================== RENDER MODES =====================
Three views over the same batch; the caller picks, the composer never does. */

// SequentialIntents: every recipient individually addressed.
func (b *BulkBatch) SequentialIntents() []MessageIntent { return b.Intents }

// PhoneList: newline-joined phone numbers for the external channel's
// broadcast-list feature.
func (b *BulkBatch) PhoneList() string {
	phones := make([]string, 0, len(b.Intents))
	for _, it := range b.Intents {
		phones = append(phones, it.Phone)
	}
	return strings.Join(phones, "\n")
}

type BroadcastInstructions struct {
	PhoneList string `json:"phone_list"`
	Message   string `json:"message"`
}

func (b *BulkBatch) Broadcast() BroadcastInstructions {
	return BroadcastInstructions{PhoneList: b.PhoneList(), Message: b.SharedBody}
}

type ManualCopyList struct {
	StudentList string `json:"student_list"`
	Message     string `json:"message"`
}

// Manual: a human-readable "name, phone" listing with no deep-links, for fully
// manual sending.
func (b *BulkBatch) Manual() ManualCopyList {
	var sb strings.Builder
	for i, it := range b.Intents {
		fmt.Fprintf(&sb, "%d. %s, %s\n", i+1, it.StudentName, it.Phone)
	}
	return ManualCopyList{StudentList: strings.TrimRight(sb.String(), "\n"), Message: b.SharedBody}
}
