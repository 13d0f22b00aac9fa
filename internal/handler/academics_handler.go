package handler

import (
	"errors"
	"net/http"

	"github.com/campuscms/internal/db"
	"github.com/campuscms/internal/media"
	"github.com/campuscms/internal/service"
	"github.com/gin-gonic/gin"
)

type programmeRequest struct {
	Name                             string   `json:"name" form:"name" validate:"notblank,max=200"`
	Code                             string   `json:"code" form:"code" validate:"notblank,max=20"`
	Slug                             string   `json:"slug" form:"slug" validate:"max=220"`
	Description                      string   `json:"description" form:"description" validate:"notblank"`
	Duration                         string   `json:"duration" form:"duration" validate:"notblank,max=100"`
	Mode                             string   `json:"mode" form:"mode" validate:"required"`
	Tagline                          string   `json:"tagline" form:"tagline" validate:"max=300"`
	FullDescription                  string   `json:"full_description" form:"full_description"`
	AdmissionRequirementsDescription string   `json:"admission_requirements_description" form:"admission_requirements_description"`
	ApplicationNote                  string   `json:"application_note" form:"application_note"`
	IsFeatured                       bool     `json:"is_featured" form:"is_featured"`
	AdmissionRequirements            []string `json:"admission_requirements" form:"admission_requirements" validate:"omitempty,dive,max=2000"`
}

func (r programmeRequest) input() service.ProgrammeInput {
	return service.ProgrammeInput{
		Name:                             r.Name,
		Code:                             r.Code,
		Slug:                             r.Slug,
		Description:                      r.Description,
		Duration:                         r.Duration,
		Mode:                             r.Mode,
		Tagline:                          r.Tagline,
		FullDescription:                  r.FullDescription,
		AdmissionRequirementsDescription: r.AdmissionRequirementsDescription,
		ApplicationNote:                  r.ApplicationNote,
		IsFeatured:                       r.IsFeatured,
		AdmissionRequirements:            r.AdmissionRequirements,
	}
}

type highlightRequest struct {
	Title       string `json:"title" form:"title" validate:"notblank,max=200"`
	Description string `json:"description" form:"description" validate:"notblank"`
}

// ListProgrammes 分页列出项目，?featured=true 只返回推荐项目。
func (a *API) ListProgrammes(c *gin.Context) {
	featured := parseBoolQuery(c, "featured")
	featuredOnly := featured != nil && *featured
	listPage(a, c, func(page, perPage int) (service.Page[db.Programme], error) {
		return a.academics.Programmes(c.Request.Context(), featuredOnly, page, perPage)
	}, a.payloads(c).programme)
}

func (a *API) GetProgramme(c *gin.Context) {
	programme, err := a.academics.BySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		a.respondProgrammeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a.payloads(c).programme(*programme))
}

func (a *API) GetProgrammeDetails(c *gin.Context) {
	details, err := a.academics.Details(c.Request.Context(), c.Param("slug"))
	if err != nil {
		a.respondProgrammeError(c, err)
		return
	}

	p := a.payloads(c)
	c.JSON(http.StatusOK, gin.H{
		"programme":              p.programme(*details.Programme),
		"highlights":             serializeAll(details.Highlights, p.highlight),
		"admission_requirements": serializeAll(details.AdmissionRequirements, p.requirement),
	})
}

func (a *API) ListProgrammeHighlights(c *gin.Context) {
	listPage(a, c, func(page, perPage int) (service.Page[db.ProgrammeHighlight], error) {
		return a.academics.Highlights(c.Request.Context(), page, perPage)
	}, a.payloads(c).highlight)
}

func (a *API) ListAdmissionRequirements(c *gin.Context) {
	listPage(a, c, func(page, perPage int) (service.Page[db.AdmissionRequirement], error) {
		return a.academics.AdmissionRequirements(c.Request.Context(), page, perPage)
	}, a.payloads(c).requirement)
}

// ListFeaturedProgrammes 不分页。
func (a *API) ListFeaturedProgrammes(c *gin.Context) {
	programmes, err := a.academics.Featured(c.Request.Context())
	if err != nil {
		a.respondServerError(c, err, "failed to load featured programmes")
		return
	}
	c.JSON(http.StatusOK, serializeAll(programmes, a.payloads(c).programme))
}

func (a *API) respondProgrammeError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrProgrammeNotFound) {
		respondError(c, http.StatusNotFound, "Not found.")
		return
	}
	a.respondServerError(c, err, "failed to load programme")
}

// CreateProgramme 新建项目，admission_requirements 按顺序写入入学要求。
func (a *API) CreateProgramme(c *gin.Context) {
	var req programmeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	programme, err := a.academics.CreateProgramme(c.Request.Context(), req.input())
	if err != nil {
		a.respondContentError(c, err, "failed to create programme")
		return
	}
	c.JSON(http.StatusCreated, a.payloads(c).programme(*programme))
}

// UpdateProgramme 整体替换项目字段；省略 admission_requirements 时保留原列表。
func (a *API) UpdateProgramme(c *gin.Context) {
	id, ok := contentID(c)
	if !ok {
		return
	}
	var req programmeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	programme, err := a.academics.UpdateProgramme(c.Request.Context(), id, req.input())
	if err != nil {
		a.respondContentError(c, err, "failed to update programme", service.ErrProgrammeNotFound)
		return
	}
	c.JSON(http.StatusOK, a.payloads(c).programme(*programme))
}

func (a *API) DeleteProgramme(c *gin.Context) {
	id, ok := contentID(c)
	if !ok {
		return
	}
	files, err := a.academics.DeleteProgramme(c.Request.Context(), id)
	if err != nil {
		a.respondContentError(c, err, "failed to delete programme", service.ErrProgrammeNotFound)
		return
	}
	a.discardMedia(files...)
	c.Status(http.StatusNoContent)
}

func (a *API) CreateProgrammeHighlight(c *gin.Context) {
	programmeID, ok := contentID(c)
	if !ok {
		return
	}
	var req highlightRequest
	if !bindContent(c, &req) {
		return
	}
	upload := a.newContentUpload()
	icon, ok := upload.image(c, "icon", media.KindIcon)
	if !ok {
		return
	}
	item, err := a.academics.CreateHighlight(c.Request.Context(), programmeID, service.HighlightInput{
		Title:       req.Title,
		Description: req.Description,
		Icon:        icon,
	})
	if err != nil {
		upload.rollback()
		a.respondContentError(c, err, "failed to create programme highlight", service.ErrProgrammeNotFound)
		return
	}
	c.JSON(http.StatusCreated, a.payloads(c).highlight(*item))
}

func (a *API) UpdateProgrammeHighlight(c *gin.Context) {
	id, ok := contentID(c)
	if !ok {
		return
	}
	var req highlightRequest
	if !bindContent(c, &req) {
		return
	}
	upload := a.newContentUpload()
	icon, ok := upload.image(c, "icon", media.KindIcon)
	if !ok {
		return
	}
	item, obsolete, err := a.academics.UpdateHighlight(c.Request.Context(), id, service.HighlightInput{
		Title:       req.Title,
		Description: req.Description,
		Icon:        icon,
	})
	if err != nil {
		upload.rollback()
		a.respondContentError(c, err, "failed to update programme highlight", service.ErrHighlightNotFound)
		return
	}
	a.discardMedia(obsolete...)
	c.JSON(http.StatusOK, a.payloads(c).highlight(*item))
}

func (a *API) DeleteProgrammeHighlight(c *gin.Context) {
	id, ok := contentID(c)
	if !ok {
		return
	}
	files, err := a.academics.DeleteHighlight(c.Request.Context(), id)
	if err != nil {
		a.respondContentError(c, err, "failed to delete programme highlight", service.ErrHighlightNotFound)
		return
	}
	a.discardMedia(files...)
	c.Status(http.StatusNoContent)
}
