package handler

import (
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/campuscms/internal/db"
)

func TestListArticlesOnlyPublished(t *testing.T) {
	api, gdb := setupTestAPI(t, nil)

	category := db.NewsCategory{Name: "Research"}
	if err := gdb.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	published := db.NewsArticle{
		Title:      "New Lab Opens",
		Content:    "The **new lab** is open.",
		Status:     db.StatusPublished,
		CategoryID: &category.ID,
		Tags:       []db.NewsTag{{Name: "Labs"}},
	}
	draft := db.NewsArticle{Title: "Draft Story", Content: "hidden", Status: db.StatusDraft}
	for _, article := range []*db.NewsArticle{&published, &draft} {
		if err := gdb.Create(article).Error; err != nil {
			t.Fatalf("failed to seed article: %v", err)
		}
	}

	c, w := newContext(http.MethodGet, "/api/v1/news/articles/?category=research", nil)
	api.ListArticles(c)
	assertStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	results, _ := body["results"].([]interface{})
	if len(results) != 1 {
		t.Fatalf("expected only the published article, got %v", body["results"])
	}
	article := results[0].(map[string]interface{})
	if !strings.Contains(article["content_html"].(string), "<strong>new lab</strong>") {
		t.Fatalf("expected rendered markdown, got %v", article["content_html"])
	}
	if tags, _ := article["tags"].([]interface{}); len(tags) != 1 || tags[0] != "Labs" {
		t.Fatalf("unexpected tags %v", article["tags"])
	}

	c, w = newContext(http.MethodGet, "/api/v1/news/articles/x/", nil, "id", strconv.Itoa(int(draft.ID)))
	api.GetArticle(c)
	assertStatus(t, w, http.StatusNotFound)
}

func TestListEventsOrderedByEventDate(t *testing.T) {
	api, gdb := setupTestAPI(t, nil)

	now := time.Now()
	early := db.NewsArticle{
		Title:   "Open Day",
		Content: "Visit us",
		Status:  db.StatusPublished,
		Event:   &db.EventDetail{EventDate: now.Add(24 * time.Hour), Location: "Main Campus"},
	}
	late := db.NewsArticle{
		Title:   "Graduation",
		Content: "Ceremony",
		Status:  db.StatusPublished,
		Event:   &db.EventDetail{EventDate: now.Add(30 * 24 * time.Hour), Location: "Hall"},
	}
	plain := db.NewsArticle{Title: "Plain News", Content: "No event", Status: db.StatusPublished}
	for _, article := range []*db.NewsArticle{&early, &late, &plain} {
		if err := gdb.Create(article).Error; err != nil {
			t.Fatalf("failed to seed article: %v", err)
		}
	}

	c, w := newContext(http.MethodGet, "/api/v1/news/events/", nil)
	api.ListEvents(c)
	assertStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	if body["count"] != float64(2) {
		t.Fatalf("expected 2 events, got %v", body["count"])
	}
	results := body["results"].([]interface{})
	first := results[0].(map[string]interface{})
	if first["title"] != "Graduation" || first["location"] != "Hall" {
		t.Fatalf("expected latest event first, got %v", first)
	}

	c, w = newContext(http.MethodGet, "/api/v1/news/events/x/", nil, "id", strconv.Itoa(int(plain.ID)))
	api.GetEvent(c)
	assertStatus(t, w, http.StatusNotFound)
}
