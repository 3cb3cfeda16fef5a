package helper

import "testing"

func TestIsValidPhone(t *testing.T) {
	valid := []string{"+919876543210", "+910000000000"}
	for _, p := range valid {
		if !IsValidPhone(p) {
			t.Fatalf("IsValidPhone(%q) = false, want true", p)
		}
	}

	invalid := []string{
		"",
		"9876543210",      // no country code
		"+9198765432",     // too short
		"+9198765432100",  // too long
		"+11234567890",    // wrong country code
		"+91 9876543210",  // embedded space
		"+91987654321a",   // letter
		"whatsapp:+91987", // junk prefix
	}
	for _, p := range invalid {
		if IsValidPhone(p) {
			t.Fatalf("IsValidPhone(%q) = true, want false", p)
		}
	}
}

func TestValidationErrorMap(t *testing.T) {
	type form struct {
		Name  string `validate:"required,min=2"`
		Phone string `validate:"required,e164in"`
	}
	err := Validator().Struct(form{Name: "A", Phone: "123"})
	if err == nil {
		t.Fatalf("expected validation failure")
	}

	m := ValidationErrorMap(err)
	if len(m["Name"]) == 0 {
		t.Fatalf("missing Name message: %v", m)
	}
	if len(m["Phone"]) == 0 {
		t.Fatalf("missing Phone message: %v", m)
	}
}
