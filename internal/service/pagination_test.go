package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/campuscms/internal/db"
)

func TestPaginateBounds(t *testing.T) {
	gdb := setupServiceTestDB(t, "paginate")
	for i := 0; i < 5; i++ {
		if err := gdb.Create(&db.CoreValue{Title: fmt.Sprintf("Value %d", i)}).Error; err != nil {
			t.Fatalf("seed core value: %v", err)
		}
	}

	svc := NewAboutService(gdb)
	ctx := context.Background()

	page, err := svc.CoreValues(ctx, 2, 2)
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if page.Total != 5 || page.TotalPages != 3 || len(page.Items) != 2 {
		t.Fatalf("unexpected page %+v", page)
	}
	if !page.HasNext() || !page.HasPrevious() {
		t.Fatalf("expected both neighbours on middle page")
	}

	if _, err := svc.CoreValues(ctx, 4, 2); !errors.Is(err, ErrPageOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
}

func TestPaginateEmptyFirstPage(t *testing.T) {
	gdb := setupServiceTestDB(t, "paginate-empty")

	page, err := NewAboutService(gdb).CoreValues(context.Background(), 1, 20)
	if err != nil {
		t.Fatalf("empty first page should be valid: %v", err)
	}
	if page.Items == nil || len(page.Items) != 0 || page.HasNext() {
		t.Fatalf("unexpected empty page %+v", page)
	}
}

func TestCalculateTotalPages(t *testing.T) {
	tests := []struct {
		total   int64
		perPage int
		want    int
	}{
		{total: 0, perPage: 20, want: 1},
		{total: 20, perPage: 20, want: 1},
		{total: 21, perPage: 20, want: 2},
		{total: 5, perPage: 0, want: 1},
	}
	for _, tt := range tests {
		if got := calculateTotalPages(tt.total, tt.perPage); got != tt.want {
			t.Fatalf("calculateTotalPages(%d, %d) = %d, want %d", tt.total, tt.perPage, got, tt.want)
		}
	}
}
