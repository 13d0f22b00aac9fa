package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/campuscms/internal/db"
	"github.com/campuscms/internal/media"
	"github.com/campuscms/internal/service"
	"github.com/gin-gonic/gin"
)

type studentServiceRequest struct {
	Name        string `json:"name" form:"name" validate:"notblank,max=200"`
	Description string `json:"description" form:"description" validate:"notblank"`
	SortOrder   int    `json:"order" form:"order"`
}

// facilityRequest 中 is_recreation 为 false 时忽略并移除娱乐详情字段。
type facilityRequest struct {
	Name               string `json:"name" form:"name" validate:"notblank,max=200"`
	Description        string `json:"description" form:"description" validate:"notblank"`
	Category           string `json:"category" form:"category" validate:"required"`
	IsRecreation       bool   `json:"is_recreation" form:"is_recreation"`
	Capacity           *int   `json:"capacity" form:"capacity" validate:"omitempty,min=0"`
	Availability       string `json:"availability" form:"availability" validate:"max=200"`
	EquipmentAvailable string `json:"equipment_available" form:"equipment_available"`
	RulesRegulations   string `json:"rules_regulations" form:"rules_regulations"`
}

func (r facilityRequest) input(image *service.StoredImage) service.FacilityInput {
	in := service.FacilityInput{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Image:       image,
	}
	if r.IsRecreation {
		in.Recreation = &service.RecreationInput{
			Capacity:           r.Capacity,
			Availability:       r.Availability,
			EquipmentAvailable: r.EquipmentAvailable,
			RulesRegulations:   r.RulesRegulations,
		}
	}
	return in
}

func (a *API) ListStudentServices(c *gin.Context) {
	listPage(a, c, func(page, perPage int) (service.Page[db.Service], error) {
		return a.studentLife.Services(c.Request.Context(), page, perPage)
	}, a.payloads(c).service)
}

func (a *API) GetStudentService(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Not found.")
		return
	}
	item, err := a.studentLife.Service(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			respondError(c, http.StatusNotFound, "Not found.")
			return
		}
		a.respondServerError(c, err, "failed to load service")
		return
	}
	c.JSON(http.StatusOK, a.payloads(c).service(*item))
}

// ListFacilities 支持 ?category= 过滤。
func (a *API) ListFacilities(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))
	listPage(a, c, func(page, perPage int) (service.Page[db.Facility], error) {
		return a.studentLife.Facilities(c.Request.Context(), category, page, perPage)
	}, a.payloads(c).facility)
}

// ListRecreationFacilities 只返回带有 recreation 详情的设施。
func (a *API) ListRecreationFacilities(c *gin.Context) {
	listPage(a, c, func(page, perPage int) (service.Page[db.Facility], error) {
		return a.studentLife.RecreationFacilities(c.Request.Context(), page, perPage)
	}, a.payloads(c).facility)
}

func (a *API) GetRecreationFacility(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Not found.")
		return
	}
	facility, err := a.studentLife.RecreationFacility(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrFacilityNotFound) {
			respondError(c, http.StatusNotFound, "Not found.")
			return
		}
		a.respondServerError(c, err, "failed to load facility")
		return
	}
	c.JSON(http.StatusOK, a.payloads(c).facility(*facility))
}

func (a *API) GetStudentLifeOverview(c *gin.Context) {
	overview, err := a.studentLife.Overview(c.Request.Context())
	if err != nil {
		a.respondServerError(c, err, "failed to load student life")
		return
	}

	p := a.payloads(c)
	c.JSON(http.StatusOK, gin.H{
		"services":              serializeAll(overview.Services, p.service),
		"facilities":            serializeAll(overview.Facilities, p.facility),
		"recreation_facilities": serializeAll(overview.RecreationFacilities, p.facility),
	})
}

// CreateStudentService 新建学生服务，必须以 multipart 附带 image。
func (a *API) CreateStudentService(c *gin.Context) {
	var req studentServiceRequest
	if !bindContent(c, &req) {
		return
	}
	upload := a.newContentUpload()
	image, ok := upload.image(c, "image", media.KindCard)
	if !ok {
		return
	}
	item, err := a.studentLife.CreateService(c.Request.Context(), service.ServiceInput{
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
		Image:       image,
	})
	if err != nil {
		upload.rollback()
		a.respondContentError(c, err, "failed to create service")
		return
	}
	c.JSON(http.StatusCreated, a.payloads(c).service(*item))
}

func (a *API) UpdateStudentService(c *gin.Context) {
	id, ok := contentID(c)
	if !ok {
		return
	}
	var req studentServiceRequest
	if !bindContent(c, &req) {
		return
	}
	upload := a.newContentUpload()
	image, ok := upload.image(c, "image", media.KindCard)
	if !ok {
		return
	}
	item, obsolete, err := a.studentLife.UpdateService(c.Request.Context(), id, service.ServiceInput{
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
		Image:       image,
	})
	if err != nil {
		upload.rollback()
		a.respondContentError(c, err, "failed to update service", service.ErrServiceNotFound)
		return
	}
	a.discardMedia(obsolete...)
	c.JSON(http.StatusOK, a.payloads(c).service(*item))
}

func (a *API) DeleteStudentService(c *gin.Context) {
	id, ok := contentID(c)
	if !ok {
		return
	}
	files, err := a.studentLife.DeleteService(c.Request.Context(), id)
	if err != nil {
		a.respondContentError(c, err, "failed to delete service", service.ErrServiceNotFound)
		return
	}
	a.discardMedia(files...)
	c.Status(http.StatusNoContent)
}

// CreateFacility 新建设施，is_recreation=true 时同时写入娱乐详情。
func (a *API) CreateFacility(c *gin.Context) {
	var req facilityRequest
	if !bindContent(c, &req) {
		return
	}
	upload := a.newContentUpload()
	image, ok := upload.image(c, "image", media.KindCard)
	if !ok {
		return
	}
	item, err := a.studentLife.CreateFacility(c.Request.Context(), req.input(image))
	if err != nil {
		upload.rollback()
		a.respondContentError(c, err, "failed to create facility")
		return
	}
	c.JSON(http.StatusCreated, a.payloads(c).facility(*item))
}

func (a *API) UpdateFacility(c *gin.Context) {
	id, ok := contentID(c)
	if !ok {
		return
	}
	var req facilityRequest
	if !bindContent(c, &req) {
		return
	}
	upload := a.newContentUpload()
	image, ok := upload.image(c, "image", media.KindCard)
	if !ok {
		return
	}
	item, obsolete, err := a.studentLife.UpdateFacility(c.Request.Context(), id, req.input(image))
	if err != nil {
		upload.rollback()
		a.respondContentError(c, err, "failed to update facility", service.ErrFacilityNotFound)
		return
	}
	a.discardMedia(obsolete...)
	c.JSON(http.StatusOK, a.payloads(c).facility(*item))
}

func (a *API) DeleteFacility(c *gin.Context) {
	id, ok := contentID(c)
	if !ok {
		return
	}
	files, err := a.studentLife.DeleteFacility(c.Request.Context(), id)
	if err != nil {
		a.respondContentError(c, err, "failed to delete facility", service.ErrFacilityNotFound)
		return
	}
	a.discardMedia(files...)
	c.Status(http.StatusNoContent)
}
