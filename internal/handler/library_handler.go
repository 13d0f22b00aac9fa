package handler

import (
	"errors"
	"net/http"

	"github.com/campuscms/internal/db"
	"github.com/campuscms/internal/media"
	"github.com/campuscms/internal/service"
	"github.com/gin-gonic/gin"
)

type eResourceRequest struct {
	Name        string `json:"name" form:"name" validate:"notblank,max=200"`
	Description string `json:"description" form:"description" validate:"notblank"`
	URL         string `json:"url" form:"url" validate:"required,url,max=500"`
	Category    string `json:"category" form:"category" validate:"required"`
}

type libraryPageRequest struct {
	Mission           string `json:"mission" validate:"notblank"`
	Vision            string `json:"vision" validate:"notblank"`
	Objectives        string `json:"objectives" validate:"notblank"`
	Value1Title       string `json:"value_1_title" validate:"notblank,max=100"`
	Value1Description string `json:"value_1_description" validate:"notblank"`
	Value2Title       string `json:"value_2_title" validate:"notblank,max=100"`
	Value2Description string `json:"value_2_description" validate:"notblank"`
	Value3Title       string `json:"value_3_title" validate:"notblank,max=100"`
	Value3Description string `json:"value_3_description" validate:"notblank"`
	Value4Title       string `json:"value_4_title" validate:"notblank,max=100"`
	Value4Description string `json:"value_4_description" validate:"notblank"`
	QualityStatement  string `json:"quality_statement" validate:"notblank"`
}

func (a *API) GetLibraryPage(c *gin.Context) {
	page, err := a.library.Page(c.Request.Context())
	if err != nil {
		a.respondServerError(c, err, "failed to load library page")
		return
	}
	c.JSON(http.StatusOK, a.payloads(c).libraryPage(*page))
}

func (a *API) GetLibrarianMessage(c *gin.Context) {
	msg, err := a.library.LibrarianMessage(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrLibrarianMessageNotFound) {
			respondError(c, http.StatusNotFound, "Not found.")
			return
		}
		a.respondServerError(c, err, "failed to load librarian message")
		return
	}
	c.JSON(http.StatusOK, a.payloads(c).librarianMessage(*msg))
}

func (a *API) ListEResources(c *gin.Context) {
	listPage(a, c, func(page, perPage int) (service.Page[db.EResource], error) {
		return a.library.EResources(c.Request.Context(), page, perPage)
	}, a.payloads(c).eResource)
}

func (a *API) ListLibraryPolicies(c *gin.Context) {
	listPage(a, c, func(page, perPage int) (service.Page[db.LibraryPolicy], error) {
		return a.library.Policies(c.Request.Context(), page, perPage)
	}, a.payloads(c).policy)
}

// GetLibraryResources 图书馆页面的组合数据。
func (a *API) GetLibraryResources(c *gin.Context) {
	res, err := a.library.Resources(c.Request.Context())
	if err != nil {
		a.respondServerError(c, err, "failed to load library resources")
		return
	}

	p := a.payloads(c)
	var librarian interface{}
	if res.LibrarianMessage != nil {
		librarian = p.librarianMessage(*res.LibrarianMessage)
	}
	c.JSON(http.StatusOK, gin.H{
		"library_page":      p.libraryPage(*res.Page),
		"e_resources":       serializeAll(res.EResources, p.eResource),
		"policies":          serializeAll(res.Policies, p.policy),
		"librarian_message": librarian,
	})
}

func (a *API) UpdateLibraryPage(c *gin.Context) {
	var req libraryPageRequest
	if !bindAndValidate(c, &req) {
		return
	}
	page, err := a.library.UpdatePage(c.Request.Context(), service.LibraryPageInput(req))
	if err != nil {
		a.respondServerError(c, err, "failed to update library page")
		return
	}
	c.JSON(http.StatusOK, a.payloads(c).libraryPage(*page))
}

func (a *API) CreateEResource(c *gin.Context) {
	var req eResourceRequest
	if !bindContent(c, &req) {
		return
	}
	upload := a.newContentUpload()
	icon, ok := upload.image(c, "icon", media.KindIcon)
	if !ok {
		return
	}
	item, err := a.library.CreateEResource(c.Request.Context(), service.EResourceInput{
		Name:        req.Name,
		Description: req.Description,
		URL:         req.URL,
		Category:    req.Category,
		Icon:        icon,
	})
	if err != nil {
		upload.rollback()
		a.respondContentError(c, err, "failed to create e-resource")
		return
	}
	c.JSON(http.StatusCreated, a.payloads(c).eResource(*item))
}

func (a *API) UpdateEResource(c *gin.Context) {
	id, ok := contentID(c)
	if !ok {
		return
	}
	var req eResourceRequest
	if !bindContent(c, &req) {
		return
	}
	upload := a.newContentUpload()
	icon, ok := upload.image(c, "icon", media.KindIcon)
	if !ok {
		return
	}
	item, obsolete, err := a.library.UpdateEResource(c.Request.Context(), id, service.EResourceInput{
		Name:        req.Name,
		Description: req.Description,
		URL:         req.URL,
		Category:    req.Category,
		Icon:        icon,
	})
	if err != nil {
		upload.rollback()
		a.respondContentError(c, err, "failed to update e-resource", service.ErrEResourceNotFound)
		return
	}
	a.discardMedia(obsolete...)
	c.JSON(http.StatusOK, a.payloads(c).eResource(*item))
}

func (a *API) DeleteEResource(c *gin.Context) {
	id, ok := contentID(c)
	if !ok {
		return
	}
	files, err := a.library.DeleteEResource(c.Request.Context(), id)
	if err != nil {
		a.respondContentError(c, err, "failed to delete e-resource", service.ErrEResourceNotFound)
		return
	}
	a.discardMedia(files...)
	c.Status(http.StatusNoContent)
}
