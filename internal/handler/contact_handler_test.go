package handler

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/campuscms/internal/db"
)

func validContactPayload() map[string]string {
	return map[string]string{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"phone":   "+254700000000",
		"subject": "Admissions",
		"message": "When does the next intake start?",
	}
}

func TestSubmitContactWithoutSettingsUsesDefaultMessage(t *testing.T) {
	sender := &recordingSender{}
	api, gdb := setupTestAPI(t, sender)

	c, w := newContext(http.MethodPost, "/api/v1/contact/submit/", validContactPayload())
	api.SubmitContact(c)
	assertStatus(t, w, http.StatusCreated)

	if got := decodeBody(t, w)["message"]; got != db.DefaultSuccessMessage {
		t.Fatalf("unexpected success message %v", got)
	}

	var submission db.ContactSubmission
	if err := gdb.First(&submission).Error; err != nil {
		t.Fatalf("expected persisted submission: %v", err)
	}
	if submission.IsRead {
		t.Fatalf("expected new submission to be unread")
	}
	if len(sender.messages()) != 0 {
		t.Fatalf("expected no mail without settings, got %d", len(sender.messages()))
	}

	var settingsCount int64
	gdb.Model(&db.ContactSettings{}).Count(&settingsCount)
	if settingsCount != 0 {
		t.Fatalf("expected intake not to create contact settings, found %d", settingsCount)
	}
}

func TestSubmitContactSendsNotificationAndAutoReply(t *testing.T) {
	sender := &recordingSender{}
	api, gdb := setupTestAPI(t, sender)

	settings := db.DefaultContactSettings("office@niru.ac.ke, dean@niru.ac.ke")
	settings.SuccessMessage = "Asante!"
	settings.ID = db.SingletonKey
	if err := gdb.Create(&settings).Error; err != nil {
		t.Fatalf("failed to seed contact settings: %v", err)
	}

	c, w := newContext(http.MethodPost, "/api/v1/contact/submit/", validContactPayload())
	api.SubmitContact(c)
	assertStatus(t, w, http.StatusCreated)

	if got := decodeBody(t, w)["message"]; got != "Asante!" {
		t.Fatalf("unexpected success message %v", got)
	}

	sent := sender.messages()
	if len(sent) != 2 {
		t.Fatalf("expected notification and auto-reply, got %d messages", len(sent))
	}
	if sent[0].Subject != "New Contact Form Submission: Admissions" {
		t.Fatalf("unexpected notification subject %q", sent[0].Subject)
	}
	if len(sent[0].To) != 2 || sent[0].To[1] != "dean@niru.ac.ke" {
		t.Fatalf("unexpected notification recipients %v", sent[0].To)
	}
	if sent[1].To[0] != "jane@example.com" || !strings.Contains(sent[1].Body, "Dear Jane Doe") {
		t.Fatalf("unexpected auto-reply %+v", sent[1])
	}
}

func TestSubmitContactSucceedsWhenMailFails(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	api, gdb := setupTestAPI(t, sender)

	settings := db.DefaultContactSettings("office@niru.ac.ke")
	settings.ID = db.SingletonKey
	if err := gdb.Create(&settings).Error; err != nil {
		t.Fatalf("failed to seed contact settings: %v", err)
	}

	c, w := newContext(http.MethodPost, "/api/v1/contact/submit/", validContactPayload())
	api.SubmitContact(c)
	assertStatus(t, w, http.StatusCreated)

	var count int64
	gdb.Model(&db.ContactSubmission{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected submission to persist despite mail failure, found %d", count)
	}
	if len(sender.messages()) != 2 {
		t.Fatalf("expected each message to be attempted once, got %d", len(sender.messages()))
	}
}

func TestSubmitContactInvalidEmail(t *testing.T) {
	sender := &recordingSender{}
	api, gdb := setupTestAPI(t, sender)

	payload := validContactPayload()
	payload["email"] = "not-an-email"
	c, w := newContext(http.MethodPost, "/api/v1/contact/submit/", payload)
	api.SubmitContact(c)
	assertStatus(t, w, http.StatusBadRequest)

	body := decodeBody(t, w)
	if _, ok := body["email"]; !ok {
		t.Fatalf("expected email field error, got %v", body)
	}

	var count int64
	gdb.Model(&db.ContactSubmission{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no submission to be stored, found %d", count)
	}
	if len(sender.messages()) != 0 {
		t.Fatalf("expected no mail for invalid submission")
	}
}

func TestSubmitContactFieldLengths(t *testing.T) {
	api, gdb := setupTestAPI(t, nil)

	payload := validContactPayload()
	payload["name"] = strings.Repeat("n", 200)
	payload["subject"] = strings.Repeat("s", 300)
	c, w := newContext(http.MethodPost, "/api/v1/contact/submit/", payload)
	api.SubmitContact(c)
	assertStatus(t, w, http.StatusCreated)

	payload["subject"] = strings.Repeat("s", 301)
	c, w = newContext(http.MethodPost, "/api/v1/contact/submit/", payload)
	api.SubmitContact(c)
	assertStatus(t, w, http.StatusBadRequest)
	if _, ok := decodeBody(t, w)["subject"]; !ok {
		t.Fatalf("expected subject error, got %s", w.Body.String())
	}

	var count int64
	gdb.Model(&db.ContactSubmission{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected one stored submission, got %d", count)
	}
}

func TestMarkContactSubmissions(t *testing.T) {
	api, gdb := setupTestAPI(t, nil)

	first := db.ContactSubmission{Name: "A", Email: "a@example.com", Subject: "s", Message: "m"}
	second := db.ContactSubmission{Name: "B", Email: "b@example.com", Subject: "s", Message: "m"}
	if err := gdb.Create(&first).Error; err != nil {
		t.Fatalf("failed to seed submission: %v", err)
	}
	if err := gdb.Create(&second).Error; err != nil {
		t.Fatalf("failed to seed submission: %v", err)
	}

	c, w := newContext(http.MethodPost, "/admin/api/contact-submissions/mark", map[string]interface{}{
		"ids":  []uint{first.ID},
		"read": true,
	})
	api.MarkContactSubmissions(c)
	assertStatus(t, w, http.StatusOK)
	if got := decodeBody(t, w)["updated"]; got != float64(1) {
		t.Fatalf("expected 1 updated row, got %v", got)
	}

	c, w = newContext(http.MethodGet, "/admin/api/contact-submissions?is_read=false", nil)
	api.ListContactSubmissions(c)
	assertStatus(t, w, http.StatusOK)
	if got := decodeBody(t, w)["count"]; got != float64(1) {
		t.Fatalf("expected 1 unread submission, got %v", got)
	}
}

func TestUpdateContactSettingsValidatesRecipients(t *testing.T) {
	api, _ := setupTestAPI(t, nil)

	payload := map[string]interface{}{
		"recipient_emails":   "office@niru.ac.ke, nope",
		"auto_reply_enabled": false,
		"auto_reply_subject": "Thanks",
		"auto_reply_message": "Dear {name}",
		"success_message":    "Done",
	}
	c, w := newContext(http.MethodPut, "/admin/api/contact-settings", payload)
	api.UpdateContactSettings(c)
	assertStatus(t, w, http.StatusBadRequest)
	if _, ok := decodeBody(t, w)["recipient_emails"]; !ok {
		t.Fatalf("expected recipient_emails field error")
	}

	payload["recipient_emails"] = "office@niru.ac.ke,dean@niru.ac.ke"
	c, w = newContext(http.MethodPut, "/admin/api/contact-settings", payload)
	api.UpdateContactSettings(c)
	assertStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	if body["recipient_emails"] != "office@niru.ac.ke, dean@niru.ac.ke" {
		t.Fatalf("unexpected recipients %v", body["recipient_emails"])
	}
	if body["auto_reply_enabled"] != false {
		t.Fatalf("expected auto reply disabled, got %v", body["auto_reply_enabled"])
	}
}

func TestDeleteContactSettingsNotAllowed(t *testing.T) {
	api, _ := setupTestAPI(t, nil)

	c, w := newContext(http.MethodDelete, "/admin/api/contact-settings", nil)
	api.DeleteContactSettings(c)
	assertStatus(t, w, http.StatusMethodNotAllowed)
}
