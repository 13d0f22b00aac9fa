package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/campuscms/internal/db"
)

func validLibraryPayload() map[string]string {
	return map[string]string{
		"mission":             "<p>Serve research</p><script>alert(1)</script>",
		"vision":              "A leading research library",
		"objectives":          "Support teaching and learning",
		"value_1_title":       "Integrity",
		"value_1_description": "Honest service",
		"value_2_title":       "Access",
		"value_2_description": "Open to all members",
		"value_3_title":       "Innovation",
		"value_3_description": "Modern tools",
		"value_4_title":       "Quality",
		"value_4_description": "Reliable collections",
		"quality_statement":   "We are committed to quality",
	}
}

func TestGetLibraryPageResolvesSingletonOnce(t *testing.T) {
	api, gdb := setupTestAPI(t, nil)

	for i := 0; i < 2; i++ {
		c, w := newContext(http.MethodGet, "/api/v1/library/library-page/", nil)
		api.GetLibraryPage(c)
		assertStatus(t, w, http.StatusOK)

		body := decodeBody(t, w)
		if body["id"] != float64(db.SingletonKey) {
			t.Fatalf("expected singleton id %d, got %v", db.SingletonKey, body["id"])
		}
		if body["mission"] != "Default library mission" {
			t.Fatalf("unexpected mission %v", body["mission"])
		}
	}

	var count int64
	gdb.Model(&db.LibraryPage{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one library page row, got %d", count)
	}
}

func TestGetLibraryResourcesWithoutLibrarian(t *testing.T) {
	api, gdb := setupTestAPI(t, nil)

	gdb.Create(&db.EResource{Name: "JSTOR", URL: "https://www.jstor.org", Category: db.ResourceEResources})
	gdb.Create(&db.LibraryPolicy{Title: "Borrowing"})

	c, w := newContext(http.MethodGet, "/api/v1/library/library-resources/", nil)
	api.GetLibraryResources(c)
	assertStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	if value, ok := body["librarian_message"]; !ok || value != nil {
		t.Fatalf("expected librarian_message null, got %v", value)
	}
	if resources, _ := body["e_resources"].([]interface{}); len(resources) != 1 {
		t.Fatalf("expected one e-resource, got %v", body["e_resources"])
	}
	if policies, _ := body["policies"].([]interface{}); len(policies) != 1 {
		t.Fatalf("expected one policy, got %v", body["policies"])
	}
	page, _ := body["library_page"].(map[string]interface{})
	if page["id"] != float64(db.SingletonKey) {
		t.Fatalf("expected library page in bundle, got %v", body["library_page"])
	}

	c, w = newContext(http.MethodGet, "/api/v1/library/librarian-message/", nil)
	api.GetLibrarianMessage(c)
	assertStatus(t, w, http.StatusNotFound)
}

func TestUpdateLibraryPageSanitizesFields(t *testing.T) {
	api, gdb := setupTestAPI(t, nil)

	c, w := newContext(http.MethodPut, "/admin/api/library-page", validLibraryPayload())
	api.UpdateLibraryPage(c)
	assertStatus(t, w, http.StatusOK)

	var page db.LibraryPage
	if err := gdb.First(&page, db.SingletonKey).Error; err != nil {
		t.Fatalf("failed to load library page: %v", err)
	}
	if strings.Contains(page.Mission, "script") || !strings.Contains(page.Mission, "Serve research") {
		t.Fatalf("expected sanitized mission, got %q", page.Mission)
	}
	if page.Value4Title != "Quality" {
		t.Fatalf("unexpected value 4 title %q", page.Value4Title)
	}

	var count int64
	gdb.Model(&db.LibraryPage{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected update to keep a single row, got %d", count)
	}
}

func TestUpdateLibraryPageRejectsBlankFields(t *testing.T) {
	api, gdb := setupTestAPI(t, nil)

	payload := validLibraryPayload()
	payload["vision"] = "   "
	payload["value_2_title"] = ""
	c, w := newContext(http.MethodPut, "/admin/api/library-page", payload)
	api.UpdateLibraryPage(c)
	assertStatus(t, w, http.StatusBadRequest)

	body := decodeBody(t, w)
	for _, field := range []string{"vision", "value_2_title"} {
		if _, ok := body[field]; !ok {
			t.Fatalf("expected %s error, got %v", field, body)
		}
	}

	var count int64
	gdb.Model(&db.LibraryPage{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected rejected update not to touch the table, got %d rows", count)
	}
}
