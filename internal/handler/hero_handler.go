package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/campuscms/internal/media"
	"github.com/campuscms/internal/service"
	"github.com/gin-gonic/gin"
)

// GetPageHero 返回页面的启用横幅，不存在或已停用时返回 404。
func (a *API) GetPageHero(c *gin.Context) {
	identifier := c.Param("identifier")
	hero, err := a.heroes.Active(c.Request.Context(), identifier)
	if err != nil {
		if errors.Is(err, service.ErrHeroNotFound) {
			respondError(c, http.StatusNotFound, fmt.Sprintf("Page hero for %s not found", identifier))
			return
		}
		a.respondServerError(c, err, "failed to load page hero")
		return
	}
	c.JSON(http.StatusOK, a.payloads(c).hero(*hero))
}

// ListPageHeroes 后台查看全部横幅（含停用）。
func (a *API) ListPageHeroes(c *gin.Context) {
	heroes, err := a.heroes.List(c.Request.Context())
	if err != nil {
		a.respondServerError(c, err, "failed to load page heroes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": serializeAll(heroes, a.payloads(c).hero)})
}

// UpsertPageHero 以 multipart 表单创建或更新横幅，可附带背景图。
func (a *API) UpsertPageHero(c *gin.Context) {
	identifier := c.Param("identifier")

	input := service.HeroInput{
		Title:    c.PostForm("title"),
		Subtitle: c.PostForm("subtitle"),
	}
	if raw := strings.TrimSpace(c.PostForm("overlay_opacity")); raw != "" {
		opacity, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"overlay_opacity": []string{"A valid integer is required."}})
			return
		}
		input.OverlayOpacity = &opacity
	}
	if raw := strings.TrimSpace(c.PostForm("is_active")); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"is_active": []string{"Must be a valid boolean."}})
			return
		}
		input.IsActive = &active
	}

	var stored *media.Stored
	if file, err := c.FormFile("background_image"); err == nil {
		src, err := file.Open()
		if err != nil {
			respondError(c, http.StatusBadRequest, "unable to read uploaded image")
			return
		}
		saved, err := a.media.SaveImage(src, media.KindHero)
		src.Close()
		if err != nil {
			a.respondUploadError(c, err)
			return
		}
		stored = &saved
		input.BackgroundImage = saved.Path
	}

	hero, replaced, err := a.heroes.Upsert(c.Request.Context(), identifier, input)
	if err != nil {
		if stored != nil {
			_ = a.media.Delete(stored.Path)
		}
		switch {
		case errors.Is(err, service.ErrHeroPageInvalid):
			respondError(c, http.StatusNotFound, fmt.Sprintf("Unknown page identifier %s", identifier))
		case errors.Is(err, service.ErrHeroOpacityInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"overlay_opacity": []string{err.Error()}})
		default:
			a.respondServerError(c, err, "failed to save page hero")
		}
		return
	}

	if replaced != "" {
		if err := a.media.Delete(replaced); err != nil {
			a.log.WithError(err).WithField("path", replaced).Warn("failed to remove replaced hero image")
		}
	}
	c.JSON(http.StatusOK, a.payloads(c).hero(*hero))
}

// DeletePageHero 删除横幅及其背景图。
func (a *API) DeletePageHero(c *gin.Context) {
	hero, err := a.heroes.Delete(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		if errors.Is(err, service.ErrHeroNotFound) {
			respondError(c, http.StatusNotFound, "page hero not found")
			return
		}
		a.respondServerError(c, err, "failed to delete page hero")
		return
	}
	if err := a.media.Delete(hero.BackgroundImage); err != nil {
		a.log.WithError(err).WithField("path", hero.BackgroundImage).Warn("failed to remove hero image")
	}
	c.Status(http.StatusNoContent)
}
