package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func recipient(name, phone string) Recipient {
	return Recipient{StudentID: uuid.New(), Name: name, Phone: phone}
}

func TestComposeSingle(t *testing.T) {
	r := recipient("Ravi", "+919876543210")
	intent, err := ComposeSingle(r, "Seat 4 is yours")
	if err != nil {
		t.Fatalf("ComposeSingle: %v", err)
	}
	want := "https://wa.me/919876543210?text=Seat+4+is+yours"
	if intent.WhatsAppURL != want {
		t.Fatalf("WhatsAppURL = %q, want %q", intent.WhatsAppURL, want)
	}
	if intent.StudentName != "Ravi" || intent.Body != "Seat 4 is yours" {
		t.Fatalf("intent fields lost: %+v", intent)
	}
}

func TestComposeSingleDeterministic(t *testing.T) {
	r := recipient("Ravi", "+919876543210")
	a, _ := ComposeSingle(r, "hello")
	b, _ := ComposeSingle(r, "hello")
	if a.WhatsAppURL != b.WhatsAppURL {
		t.Fatalf("same input produced different links: %q vs %q", a.WhatsAppURL, b.WhatsAppURL)
	}
}

func TestComposeSingleRejectsBadPhone(t *testing.T) {
	for _, phone := range []string{"", "9876543210", "+9198765432", "+11234567890", "+91 9876543210"} {
		_, err := ComposeSingle(recipient("X", phone), "hi")
		var ipe *InvalidPhoneError
		if !errors.As(err, &ipe) {
			t.Fatalf("phone %q: err = %v, want InvalidPhoneError", phone, err)
		}
	}
}

func TestDeepLinkEscapesBody(t *testing.T) {
	link := DeepLink("+919876543210", "Fees due: ₹500 & seat #4\nRenew today")
	if strings.ContainsAny(link[strings.Index(link, "?text=")+6:], " \n&#") {
		t.Fatalf("body not fully escaped: %q", link)
	}
}

func TestComposeBulkSkipsInvalid(t *testing.T) {
	recipients := []Recipient{
		recipient("A", "+919876543210"),
		recipient("B", "12345"),
		recipient("C", "+919000000000"),
	}
	batch := ComposeBulk(recipients, "Library closed on Sunday", nil)

	if len(batch.Intents) != 2 {
		t.Fatalf("Intents = %d, want 2", len(batch.Intents))
	}
	if len(batch.Skipped) != 1 {
		t.Fatalf("Skipped = %d, want 1", len(batch.Skipped))
	}
	if batch.Skipped[0].Name != "B" {
		t.Fatalf("wrong recipient skipped: %+v", batch.Skipped[0])
	}
	if batch.TotalRecipients() != 3 {
		t.Fatalf("TotalRecipients = %d, want 3", batch.TotalRecipients())
	}
}

func TestComposeBulkPerRecipientRender(t *testing.T) {
	recipients := []Recipient{recipient("A", "+919876543210"), recipient("B", "+919000000000")}
	batch := ComposeBulk(recipients, "", func(r Recipient) string { return "Hi " + r.Name })
	if batch.Intents[0].Body != "Hi A" || batch.Intents[1].Body != "Hi B" {
		t.Fatalf("render func not applied: %+v", batch.Intents)
	}
}

func TestBroadcastRenderMode(t *testing.T) {
	batch := ComposeBulk([]Recipient{
		recipient("A", "+919876543210"),
		recipient("B", "+919000000000"),
	}, "Holiday notice", nil)

	instr := batch.Broadcast()
	if instr.PhoneList != "+919876543210\n+919000000000" {
		t.Fatalf("PhoneList = %q", instr.PhoneList)
	}
	if instr.Message != "Holiday notice" {
		t.Fatalf("Message = %q", instr.Message)
	}
}

func TestManualRenderMode(t *testing.T) {
	batch := ComposeBulk([]Recipient{
		recipient("Asha", "+919876543210"),
		recipient("Vikram", "+919000000000"),
	}, "Holiday notice", nil)

	list := batch.Manual()
	want := "1. Asha, +919876543210\n2. Vikram, +919000000000"
	if list.StudentList != want {
		t.Fatalf("StudentList = %q, want %q", list.StudentList, want)
	}
	if strings.Contains(list.StudentList, "wa.me") {
		t.Fatalf("manual list must not carry deep-links")
	}
}
