package handler

import (
	"net/http"
	"testing"

	"github.com/campuscms/internal/db"
)

func TestGetAboutPageCreatesDefaultsOnce(t *testing.T) {
	api, gdb := setupTestAPI(t, nil)

	for i := 0; i < 2; i++ {
		c, w := newContext(http.MethodGet, "/api/v1/about/", nil)
		api.GetAboutPage(c)
		assertStatus(t, w, http.StatusOK)

		body := decodeBody(t, w)
		if body["mission"] != db.DefaultAboutPage().Mission {
			t.Fatalf("expected default mission, got %v", body["mission"])
		}
	}

	var count int64
	gdb.Model(&db.AboutPage{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one about page, found %d", count)
	}
}

func TestUpdateAboutPageSanitizesHTML(t *testing.T) {
	api, gdb := setupTestAPI(t, nil)

	payload := map[string]string{
		"mission": `<p>Excellence</p><script>alert(1)</script>`,
		"vision":  "<p>Vision</p>",
		"history": "<p>History</p>",
	}
	c, w := newContext(http.MethodPut, "/admin/api/about", payload)
	api.UpdateAboutPage(c)
	assertStatus(t, w, http.StatusOK)

	var page db.AboutPage
	if err := gdb.First(&page, db.SingletonKey).Error; err != nil {
		t.Fatalf("failed to load about page: %v", err)
	}
	if page.Mission != "<p>Excellence</p>" {
		t.Fatalf("expected sanitized mission, got %q", page.Mission)
	}
}

func TestUpdateAboutPageRejectsBlankFields(t *testing.T) {
	api, _ := setupTestAPI(t, nil)

	c, w := newContext(http.MethodPut, "/admin/api/about", map[string]string{"mission": "  ", "vision": "v", "history": "h"})
	api.UpdateAboutPage(c)
	assertStatus(t, w, http.StatusBadRequest)

	body := decodeBody(t, w)
	if _, ok := body["mission"]; !ok {
		t.Fatalf("expected mission field error, got %v", body)
	}
}

func TestGetAboutFullWithoutVCMessage(t *testing.T) {
	api, gdb := setupTestAPI(t, nil)

	if err := gdb.Create(&db.CoreValue{Title: "Integrity", Description: "Honesty"}).Error; err != nil {
		t.Fatalf("failed to seed core value: %v", err)
	}

	c, w := newContext(http.MethodGet, "/api/v1/about/about-full/", nil)
	api.GetAboutFull(c)
	assertStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	if body["vc_message"] != nil {
		t.Fatalf("expected null vc_message, got %v", body["vc_message"])
	}
	values, ok := body["core_values"].([]interface{})
	if !ok || len(values) != 1 {
		t.Fatalf("expected one core value, got %v", body["core_values"])
	}
	if _, ok := body["about_page"].(map[string]interface{}); !ok {
		t.Fatalf("expected about_page object, got %v", body["about_page"])
	}
}

func TestGetVCMessageNotFound(t *testing.T) {
	api, _ := setupTestAPI(t, nil)

	c, w := newContext(http.MethodGet, "/api/v1/about/vc-message/", nil)
	api.GetVCMessage(c)
	assertStatus(t, w, http.StatusNotFound)
}
