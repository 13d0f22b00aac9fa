package handler

import (
	"net/http"

	"github.com/campuscms/internal/db"
	"github.com/campuscms/internal/service"
	"github.com/gin-gonic/gin"
)

type contactRequest struct {
	Name    string `json:"name" validate:"notblank,max=200"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Phone   string `json:"phone" validate:"max=20"`
	Subject string `json:"subject" validate:"notblank,max=300"`
	Message string `json:"message" validate:"notblank"`
}

type markSubmissionsRequest struct {
	IDs  []uint `json:"ids" validate:"required,min=1"`
	Read *bool  `json:"read" validate:"required"`
}

// SubmitContact 保存联系表单，通知邮件失败不影响提交结果。
func (a *API) SubmitContact(c *gin.Context) {
	var req contactRequest
	if !bindAndValidate(c, &req) {
		return
	}

	receipt, err := a.contact.Submit(c.Request.Context(), service.ContactInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		a.respondServerError(c, err, "failed to save contact submission")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": receipt.SuccessMessage})
}

// ListContactSubmissions 后台分页查看提交记录，?is_read= 过滤已读状态。
func (a *API) ListContactSubmissions(c *gin.Context) {
	isRead := parseBoolQuery(c, "is_read")
	listPage(a, c, func(page, perPage int) (service.Page[db.ContactSubmission], error) {
		return a.contact.List(c.Request.Context(), service.SubmissionFilter{
			IsRead:  isRead,
			Page:    page,
			PerPage: perPage,
		})
	}, a.payloads(c).submission)
}

func (a *API) MarkContactSubmissions(c *gin.Context) {
	var req markSubmissionsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	updated, err := a.contact.Mark(c.Request.Context(), req.IDs, *req.Read)
	if err != nil {
		a.respondServerError(c, err, "failed to update contact submissions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
