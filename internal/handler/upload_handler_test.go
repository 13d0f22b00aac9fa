package handler

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/campuscms/internal/db"
	"github.com/gin-gonic/gin"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func multipartContext(t *testing.T, method, target, field, filename string, data []byte, fields map[string]string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field: %v", err)
		}
	}
	if data != nil {
		part, err := writer.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		part.Write(data)
	}
	writer.Close()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, &body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	return c, w
}

func TestUploadImageCreatesThumbnail(t *testing.T) {
	api, _ := setupTestAPI(t, nil)

	c, w := multipartContext(t, http.MethodPost, "/admin/api/uploads?kind=icon", "image", "logo.png", pngBytes(t, 300, 200), nil)
	api.UploadImage(c)
	assertStatus(t, w, http.StatusCreated)

	body := decodeBody(t, w)
	thumb, _ := body["thumbnail"].(string)
	if thumb == "" {
		t.Fatalf("expected thumbnail path, got %v", body)
	}
	if _, err := os.Stat(filepath.Join(api.media.Root(), filepath.FromSlash(thumb))); err != nil {
		t.Fatalf("expected thumbnail on disk: %v", err)
	}
}

func TestUploadImageIgnoresClientExtension(t *testing.T) {
	api, _ := setupTestAPI(t, nil)

	var buf bytes.Buffer
	if err := gif.Encode(&buf, image.NewPaletted(image.Rect(0, 0, 40, 30), color.Palette{color.White, color.Black}), nil); err != nil {
		t.Fatalf("failed to encode gif: %v", err)
	}

	c, w := multipartContext(t, http.MethodPost, "/admin/api/uploads?kind=card", "image", "x.html", buf.Bytes(), nil)
	api.UploadImage(c)
	assertStatus(t, w, http.StatusCreated)

	stored, _ := decodeBody(t, w)["path"].(string)
	if !strings.HasSuffix(stored, ".gif") {
		t.Fatalf("expected extension from decoded format, got %q", stored)
	}
}

func TestUploadImageRejectsUnknownKind(t *testing.T) {
	api, _ := setupTestAPI(t, nil)

	c, w := multipartContext(t, http.MethodPost, "/admin/api/uploads?kind=banner", "image", "logo.png", pngBytes(t, 10, 10), nil)
	api.UploadImage(c)
	assertStatus(t, w, http.StatusBadRequest)
}

func TestUploadImageRejectsNonImage(t *testing.T) {
	api, _ := setupTestAPI(t, nil)

	c, w := multipartContext(t, http.MethodPost, "/admin/api/uploads?kind=card", "image", "notes.txt", []byte("plain text"), nil)
	api.UploadImage(c)
	assertStatus(t, w, http.StatusBadRequest)
}

func TestUpsertPageHeroWithImage(t *testing.T) {
	api, gdb := setupTestAPI(t, nil)

	fields := map[string]string{
		"title":           "Library",
		"subtitle":        "Resources",
		"overlay_opacity": "30",
		"is_active":       "true",
	}
	c, w := multipartContext(t, http.MethodPut, "/admin/api/page-heroes/library", "background_image", "bg.png", pngBytes(t, 2400, 750), fields)
	c.Params = gin.Params{{Key: "identifier", Value: db.PageLibrary}}
	api.UpsertPageHero(c)
	assertStatus(t, w, http.StatusOK)

	var hero db.PageHero
	if err := gdb.Where("page_identifier = ?", db.PageLibrary).First(&hero).Error; err != nil {
		t.Fatalf("expected stored hero: %v", err)
	}
	if !hero.IsActive || hero.OverlayOpacity != 30 {
		t.Fatalf("unexpected hero %+v", hero)
	}
	file, err := os.Open(filepath.Join(api.media.Root(), filepath.FromSlash(hero.BackgroundImage)))
	if err != nil {
		t.Fatalf("expected background image on disk: %v", err)
	}
	defer file.Close()
	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		t.Fatalf("failed to decode stored image: %v", err)
	}
	if cfg.Width != 1920 || cfg.Height != 600 {
		t.Fatalf("expected image fitted to 1920x600, got %dx%d", cfg.Width, cfg.Height)
	}
	first := hero.BackgroundImage

	c, w = multipartContext(t, http.MethodPut, "/admin/api/page-heroes/library", "background_image", "bg2.png", pngBytes(t, 100, 100), map[string]string{"title": "Library"})
	c.Params = gin.Params{{Key: "identifier", Value: db.PageLibrary}}
	api.UpsertPageHero(c)
	assertStatus(t, w, http.StatusOK)

	if _, err := os.Stat(filepath.Join(api.media.Root(), filepath.FromSlash(first))); !os.IsNotExist(err) {
		t.Fatalf("expected replaced image to be removed, stat err %v", err)
	}
}

func TestUpsertPageHeroRejectsBadOpacity(t *testing.T) {
	api, _ := setupTestAPI(t, nil)

	c, w := multipartContext(t, http.MethodPut, "/admin/api/page-heroes/home", "", "", nil, map[string]string{
		"title":           "Home",
		"overlay_opacity": "150",
	})
	c.Params = gin.Params{{Key: "identifier", Value: db.PageHome}}
	api.UpsertPageHero(c)
	assertStatus(t, w, http.StatusBadRequest)
}
