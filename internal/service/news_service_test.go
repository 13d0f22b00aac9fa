package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/campuscms/internal/db"
)

func TestNewsServiceArticleFilters(t *testing.T) {
	gdb := setupServiceTestDB(t, "news-filters")
	svc := NewNewsService(gdb)
	ctx := context.Background()

	research := db.NewsCategory{Name: "Research"}
	events := db.NewsCategory{Name: "Events"}
	for _, c := range []*db.NewsCategory{&research, &events} {
		if err := gdb.Create(c).Error; err != nil {
			t.Fatalf("seed category: %v", err)
		}
	}

	now := time.Now()
	articles := []db.NewsArticle{
		{Title: "Older", Content: "x", Status: db.StatusPublished, CategoryID: &research.ID, PublishDate: now.Add(-48 * time.Hour)},
		{Title: "Newer", Content: "x", Status: db.StatusPublished, CategoryID: &research.ID, PublishDate: now, IsFeatured: true},
		{Title: "Other", Content: "x", Status: db.StatusPublished, CategoryID: &events.ID, PublishDate: now},
		{Title: "Hidden", Content: "x", Status: db.StatusDraft, CategoryID: &research.ID, PublishDate: now},
	}
	for i := range articles {
		if err := gdb.Create(&articles[i]).Error; err != nil {
			t.Fatalf("seed article: %v", err)
		}
	}

	page, err := svc.Articles(ctx, ArticleFilter{CategorySlug: "research", Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("articles: %v", err)
	}
	if page.Total != 2 || page.Items[0].Title != "Newer" {
		t.Fatalf("expected 2 research articles newest first, got %+v", page.Items)
	}
	if page.Items[0].Category == nil || page.Items[0].Category.Slug != "research" {
		t.Fatalf("expected category preloaded, got %+v", page.Items[0].Category)
	}

	featured := false
	page, err = svc.Articles(ctx, ArticleFilter{Featured: &featured, Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("articles: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("expected 2 non-featured published articles, got %d", page.Total)
	}

	if _, err := svc.Article(ctx, articles[3].ID); !errors.Is(err, ErrArticleNotFound) {
		t.Fatalf("expected draft to be hidden, got %v", err)
	}
}

func TestNewsServiceDeletingArticleRemovesEvent(t *testing.T) {
	gdb := setupServiceTestDB(t, "news-cascade")

	article := db.NewsArticle{
		Title:   "Open Day",
		Content: "x",
		Status:  db.StatusPublished,
		Event:   &db.EventDetail{EventDate: time.Now()},
	}
	if err := gdb.Create(&article).Error; err != nil {
		t.Fatalf("seed event: %v", err)
	}
	if err := gdb.Delete(&article).Error; err != nil {
		t.Fatalf("delete article: %v", err)
	}

	var count int64
	gdb.Model(&db.EventDetail{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected event detail removed with article, found %d", count)
	}
}
