package validate

import (
	"errors"
	"testing"
)

type contactPayload struct {
	Name       string `json:"name" validate:"notblank,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Recipients string `json:"recipient_emails" validate:"omitempty,email_list"`
}

func TestFieldErrorsUsesJSONNames(t *testing.T) {
	err := Struct(contactPayload{Name: "  ", Email: "not-an-email", Recipients: "a@example.com, nope"})
	fields := FieldErrors(err)
	if fields == nil {
		t.Fatalf("expected field errors, got %v", err)
	}
	for _, key := range []string{"name", "email", "recipient_emails"} {
		if len(fields[key]) == 0 {
			t.Fatalf("expected error for %s, got %#v", key, fields)
		}
	}
	if fields["name"][0] != "this field may not be blank" {
		t.Fatalf("unexpected blank message %q", fields["name"][0])
	}
}

func TestFieldErrorsRequiredMessage(t *testing.T) {
	fields := FieldErrors(Struct(contactPayload{Name: "Ann"}))
	if got := fields["email"]; len(got) != 1 || got[0] != "this field is required" {
		t.Fatalf("unexpected required message %#v", got)
	}
}

func TestFieldErrorsIgnoresOtherErrors(t *testing.T) {
	if fields := FieldErrors(errors.New("boom")); fields != nil {
		t.Fatalf("expected nil for non validation error, got %#v", fields)
	}
	if err := Struct(contactPayload{Name: "Ann", Email: "ann@example.com", Recipients: "a@example.com,b@example.com"}); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
}

func TestIsEmail(t *testing.T) {
	if !IsEmail("reader@example.com") {
		t.Fatalf("expected valid email")
	}
	if IsEmail("reader@") || IsEmail("") {
		t.Fatalf("expected invalid email")
	}
}
