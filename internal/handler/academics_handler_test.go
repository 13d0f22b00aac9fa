package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/campuscms/internal/db"
	"gorm.io/gorm"
)

func seedProgramme(t *testing.T, gdb *gorm.DB) db.Programme {
	t.Helper()
	programme := db.Programme{
		Name:       "MBA Strategic Studies",
		Code:       "MBA-SS",
		Mode:       db.ModeFullTime,
		Duration:   "2 years",
		IsFeatured: true,
		Highlights: []db.ProgrammeHighlight{
			{Title: "Strategic Leadership"},
			{Title: "Policy Analysis"},
		},
		AdmissionRequirements: []db.AdmissionRequirement{
			{Requirement: "A bachelor's degree with at least upper second class honours"},
		},
	}
	if err := gdb.Create(&programme).Error; err != nil {
		t.Fatalf("failed to seed programme: %v", err)
	}
	return programme
}

func TestGetProgrammeDetails(t *testing.T) {
	api, gdb := setupTestAPI(t, nil)
	seedProgramme(t, gdb)

	c, w := newContext(http.MethodGet, "/api/v1/academics/programmes/mba-strategic-studies/details/", nil, "slug", "mba-strategic-studies")
	api.GetProgrammeDetails(c)
	assertStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	if highlights, _ := body["highlights"].([]interface{}); len(highlights) != 2 {
		t.Fatalf("expected 2 highlights, got %v", body["highlights"])
	}
	if reqs, _ := body["admission_requirements"].([]interface{}); len(reqs) != 1 {
		t.Fatalf("expected 1 admission requirement, got %v", body["admission_requirements"])
	}
	programme, _ := body["programme"].(map[string]interface{})
	if programme["mode_display"] != "Full Time" {
		t.Fatalf("unexpected mode display %v", programme["mode_display"])
	}
}

func TestGetProgrammeUnknownSlug(t *testing.T) {
	api, _ := setupTestAPI(t, nil)

	c, w := newContext(http.MethodGet, "/api/v1/academics/programmes/missing/", nil, "slug", "missing")
	api.GetProgramme(c)
	assertStatus(t, w, http.StatusNotFound)
}

func TestListProgrammesFeaturedFilter(t *testing.T) {
	api, gdb := setupTestAPI(t, nil)
	seedProgramme(t, gdb)
	other := db.Programme{Name: "Diploma in Security", Code: "DIP-SEC", Mode: db.ModePartTime}
	if err := gdb.Create(&other).Error; err != nil {
		t.Fatalf("failed to seed programme: %v", err)
	}

	c, w := newContext(http.MethodGet, "/api/v1/academics/programmes/?featured=true", nil)
	api.ListProgrammes(c)
	assertStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	if body["count"] != float64(1) {
		t.Fatalf("expected 1 featured programme, got %v", body["count"])
	}

	c, w = newContext(http.MethodGet, "/api/v1/academics/programmes/", nil)
	api.ListProgrammes(c)
	assertStatus(t, w, http.StatusOK)
	if got := decodeBody(t, w)["count"]; got != float64(2) {
		t.Fatalf("expected 2 programmes, got %v", got)
	}
}

func TestListProgrammesPagination(t *testing.T) {
	api, gdb := setupTestAPI(t, nil)
	api.pageSize = 2

	for i := 0; i < 3; i++ {
		p := db.Programme{Name: fmt.Sprintf("Programme %d", i), Code: fmt.Sprintf("P-%d", i), Mode: db.ModeOnline}
		if err := gdb.Create(&p).Error; err != nil {
			t.Fatalf("failed to seed programme: %v", err)
		}
	}

	c, w := newContext(http.MethodGet, "/api/v1/academics/programmes/", nil)
	api.ListProgrammes(c)
	assertStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	if body["next"] != "http://example.com/api/v1/academics/programmes/?page=2" {
		t.Fatalf("unexpected next link %v", body["next"])
	}
	if body["previous"] != nil {
		t.Fatalf("expected no previous link, got %v", body["previous"])
	}

	c, w = newContext(http.MethodGet, "/api/v1/academics/programmes/?page=2", nil)
	api.ListProgrammes(c)
	assertStatus(t, w, http.StatusOK)
	body = decodeBody(t, w)
	if results, _ := body["results"].([]interface{}); len(results) != 1 {
		t.Fatalf("expected 1 result on page 2, got %v", body["results"])
	}
	if body["previous"] != "http://example.com/api/v1/academics/programmes/" {
		t.Fatalf("unexpected previous link %v", body["previous"])
	}

	c, w = newContext(http.MethodGet, "/api/v1/academics/programmes/?page=last", nil)
	api.ListProgrammes(c)
	assertStatus(t, w, http.StatusOK)

	for _, page := range []string{"3", "0", "abc"} {
		c, w = newContext(http.MethodGet, "/api/v1/academics/programmes/?page="+page, nil)
		api.ListProgrammes(c)
		assertStatus(t, w, http.StatusNotFound)
		if got := decodeBody(t, w)["error"]; got != "Invalid page." {
			t.Fatalf("page %s: unexpected error %v", page, got)
		}
	}
}
