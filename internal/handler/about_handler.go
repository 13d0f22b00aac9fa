package handler

import (
	"errors"
	"net/http"

	"github.com/campuscms/internal/db"
	"github.com/campuscms/internal/media"
	"github.com/campuscms/internal/service"
	"github.com/gin-gonic/gin"
)

type aboutPageRequest struct {
	Mission string `json:"mission" validate:"notblank"`
	Vision  string `json:"vision" validate:"notblank"`
	History string `json:"history" validate:"notblank"`
}

type coreValueRequest struct {
	Title       string `json:"title" form:"title" validate:"notblank,max=100"`
	Description string `json:"description" form:"description" validate:"notblank"`
}

// GetAboutPage 返回关于页单例，首次访问自动写入默认内容。
func (a *API) GetAboutPage(c *gin.Context) {
	page, err := a.about.Page(c.Request.Context())
	if err != nil {
		a.respondServerError(c, err, "failed to load about page")
		return
	}
	c.JSON(http.StatusOK, a.payloads(c).aboutPage(*page))
}

func (a *API) ListCoreValues(c *gin.Context) {
	listPage(a, c, func(page, perPage int) (service.Page[db.CoreValue], error) {
		return a.about.CoreValues(c.Request.Context(), page, perPage)
	}, a.payloads(c).coreValue)
}

func (a *API) GetVCMessage(c *gin.Context) {
	msg, err := a.about.VCMessage(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrVCMessageNotFound) {
			respondError(c, http.StatusNotFound, "Not found.")
			return
		}
		a.respondServerError(c, err, "failed to load vice chancellor message")
		return
	}
	c.JSON(http.StatusOK, a.payloads(c).vcMessage(*msg))
}

// GetAboutFull 返回关于页、核心价值与校长致辞的组合数据。
func (a *API) GetAboutFull(c *gin.Context) {
	overview, err := a.about.Overview(c.Request.Context())
	if err != nil {
		a.respondServerError(c, err, "failed to load about page")
		return
	}

	p := a.payloads(c)
	var vc interface{}
	if overview.VCMessage != nil {
		vc = p.vcMessage(*overview.VCMessage)
	}
	c.JSON(http.StatusOK, gin.H{
		"about_page":  p.aboutPage(*overview.Page),
		"core_values": serializeAll(overview.CoreValues, p.coreValue),
		"vc_message":  vc,
	})
}

// UpdateAboutPage 后台更新关于页内容。
func (a *API) UpdateAboutPage(c *gin.Context) {
	var req aboutPageRequest
	if !bindAndValidate(c, &req) {
		return
	}
	page, err := a.about.UpdatePage(c.Request.Context(), service.AboutPageInput{
		Mission: req.Mission,
		Vision:  req.Vision,
		History: req.History,
	})
	if err != nil {
		a.respondServerError(c, err, "failed to update about page")
		return
	}
	c.JSON(http.StatusOK, a.payloads(c).aboutPage(*page))
}

// CreateCoreValue 新建核心价值，multipart 请求可附带 icon 图片。
func (a *API) CreateCoreValue(c *gin.Context) {
	var req coreValueRequest
	if !bindContent(c, &req) {
		return
	}
	upload := a.newContentUpload()
	icon, ok := upload.image(c, "icon", media.KindIcon)
	if !ok {
		return
	}
	item, err := a.about.CreateCoreValue(c.Request.Context(), service.CoreValueInput{
		Title:       req.Title,
		Description: req.Description,
		Icon:        icon,
	})
	if err != nil {
		upload.rollback()
		a.respondContentError(c, err, "failed to create core value")
		return
	}
	c.JSON(http.StatusCreated, a.payloads(c).coreValue(*item))
}

func (a *API) UpdateCoreValue(c *gin.Context) {
	id, ok := contentID(c)
	if !ok {
		return
	}
	var req coreValueRequest
	if !bindContent(c, &req) {
		return
	}
	upload := a.newContentUpload()
	icon, ok := upload.image(c, "icon", media.KindIcon)
	if !ok {
		return
	}
	item, obsolete, err := a.about.UpdateCoreValue(c.Request.Context(), id, service.CoreValueInput{
		Title:       req.Title,
		Description: req.Description,
		Icon:        icon,
	})
	if err != nil {
		upload.rollback()
		a.respondContentError(c, err, "failed to update core value", service.ErrCoreValueNotFound)
		return
	}
	a.discardMedia(obsolete...)
	c.JSON(http.StatusOK, a.payloads(c).coreValue(*item))
}

func (a *API) DeleteCoreValue(c *gin.Context) {
	id, ok := contentID(c)
	if !ok {
		return
	}
	files, err := a.about.DeleteCoreValue(c.Request.Context(), id)
	if err != nil {
		a.respondContentError(c, err, "failed to delete core value", service.ErrCoreValueNotFound)
		return
	}
	a.discardMedia(files...)
	c.Status(http.StatusNoContent)
}
