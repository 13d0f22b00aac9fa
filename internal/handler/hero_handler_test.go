package handler

import (
	"net/http"
	"testing"

	"github.com/campuscms/internal/db"
)

func TestGetPageHeroActiveThenDeactivated(t *testing.T) {
	api, gdb := setupTestAPI(t, nil)

	hero := db.PageHero{
		PageIdentifier:  db.PageContact,
		Title:           "Contact Us",
		Subtitle:        "We would love to hear from you",
		BackgroundImage: "heroes/contact.jpg",
		OverlayOpacity:  db.DefaultOverlayOpacity,
		IsActive:        true,
	}
	if err := gdb.Create(&hero).Error; err != nil {
		t.Fatalf("failed to seed hero: %v", err)
	}

	c, w := newContext(http.MethodGet, "/api/v1/page-hero/contact/", nil, "identifier", "contact")
	api.GetPageHero(c)
	assertStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	if body["title"] != "Contact Us" {
		t.Fatalf("unexpected title %v", body["title"])
	}
	if body["background_image_url"] != "http://example.com/media/heroes/contact.jpg" {
		t.Fatalf("expected absolute image url, got %v", body["background_image_url"])
	}

	if err := gdb.Model(&hero).Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to deactivate hero: %v", err)
	}

	c, w = newContext(http.MethodGet, "/api/v1/page-hero/contact/", nil, "identifier", "contact")
	api.GetPageHero(c)
	assertStatus(t, w, http.StatusNotFound)
	if got := decodeBody(t, w)["error"]; got != "Page hero for contact not found" {
		t.Fatalf("unexpected error message %v", got)
	}
}

func TestGetPageHeroHonoursForwardedProto(t *testing.T) {
	api, gdb := setupTestAPI(t, nil)

	hero := db.PageHero{
		PageIdentifier:  db.PageHome,
		Title:           "Welcome",
		BackgroundImage: "heroes/home.jpg",
		OverlayOpacity:  40,
		IsActive:        true,
	}
	if err := gdb.Create(&hero).Error; err != nil {
		t.Fatalf("failed to seed hero: %v", err)
	}

	c, w := newContext(http.MethodGet, "/api/v1/page-hero/home/", nil, "identifier", "home")
	c.Request.Header.Set("X-Forwarded-Proto", "https")
	api.GetPageHero(c)
	assertStatus(t, w, http.StatusOK)

	if got := decodeBody(t, w)["background_image_url"]; got != "https://example.com/media/heroes/home.jpg" {
		t.Fatalf("expected https image url, got %v", got)
	}
}

func TestDeletePageHeroUnknown(t *testing.T) {
	api, _ := setupTestAPI(t, nil)

	c, w := newContext(http.MethodDelete, "/admin/api/page-heroes/library", nil, "identifier", "library")
	api.DeletePageHero(c)
	assertStatus(t, w, http.StatusNotFound)
}
