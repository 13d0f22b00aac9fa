package handler

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/campuscms/internal/db"
)

func TestStudentLifeOverview(t *testing.T) {
	api, gdb := setupTestAPI(t, nil)

	services := []db.Service{
		{Name: "Counselling", SortOrder: 2},
		{Name: "Career Office", SortOrder: 1},
	}
	if err := gdb.Create(&services).Error; err != nil {
		t.Fatalf("failed to seed services: %v", err)
	}

	capacity := 200
	gym := db.Facility{
		Name:       "Gymnasium",
		Category:   db.FacilityRecreation,
		Recreation: &db.RecreationDetail{Capacity: &capacity, Availability: "06:00 - 22:00"},
	}
	hostel := db.Facility{Name: "Hostel A", Category: db.FacilityAccommodation}
	for _, f := range []*db.Facility{&gym, &hostel} {
		if err := gdb.Create(f).Error; err != nil {
			t.Fatalf("failed to seed facility: %v", err)
		}
	}

	c, w := newContext(http.MethodGet, "/api/v1/student-life/student-services-facilities/", nil)
	api.GetStudentLifeOverview(c)
	assertStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	svc, _ := body["services"].([]interface{})
	if len(svc) != 2 || svc[0].(map[string]interface{})["name"] != "Career Office" {
		t.Fatalf("expected services ordered by order, got %v", body["services"])
	}
	if facilities, _ := body["facilities"].([]interface{}); len(facilities) != 2 {
		t.Fatalf("expected 2 facilities, got %v", body["facilities"])
	}
	recreation, _ := body["recreation_facilities"].([]interface{})
	if len(recreation) != 1 || recreation[0].(map[string]interface{})["capacity"] != float64(200) {
		t.Fatalf("expected gym with capacity, got %v", body["recreation_facilities"])
	}

	c, w = newContext(http.MethodGet, "/api/v1/student-life/recreation-facilities/x/", nil, "id", strconv.Itoa(int(hostel.ID)))
	api.GetRecreationFacility(c)
	assertStatus(t, w, http.StatusNotFound)
}

func TestListFacilitiesByCategory(t *testing.T) {
	api, gdb := setupTestAPI(t, nil)

	facilities := []db.Facility{
		{Name: "Cafeteria", Category: db.FacilityDining},
		{Name: "Reading Room", Category: db.FacilityStudy},
	}
	if err := gdb.Create(&facilities).Error; err != nil {
		t.Fatalf("failed to seed facilities: %v", err)
	}

	c, w := newContext(http.MethodGet, "/api/v1/student-life/facilities/?category=dining", nil)
	api.ListFacilities(c)
	assertStatus(t, w, http.StatusOK)

	if got := decodeBody(t, w)["count"]; got != float64(1) {
		t.Fatalf("expected 1 dining facility, got %v", got)
	}
}

func TestGetStudentServiceInvalidID(t *testing.T) {
	api, _ := setupTestAPI(t, nil)

	c, w := newContext(http.MethodGet, "/api/v1/student-life/services/abc/", nil, "id", "abc")
	api.GetStudentService(c)
	assertStatus(t, w, http.StatusNotFound)
}
