package handler

import (
	"errors"
	"net/http"

	"github.com/campuscms/internal/db"
	"github.com/campuscms/internal/service"
	"github.com/gin-gonic/gin"
)

type subscribeRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Subscribe 订阅简报。重复邮箱（包括并发写入时被唯一索引拦下的）统一返回 400。
func (a *API) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	subscriber, err := a.newsletter.Subscribe(c.Request.Context(), service.SubscribeInput{
		Email:     req.Email,
		Name:      req.Name,
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailRequired):
			respondError(c, http.StatusBadRequest, "Email is required.")
		case errors.Is(err, service.ErrEmailInvalid):
			respondError(c, http.StatusBadRequest, "Invalid email format.")
		case errors.Is(err, service.ErrAlreadySubscribed):
			respondError(c, http.StatusBadRequest, "This email is already subscribed.")
		default:
			a.respondServerError(c, err, "failed to subscribe")
		}
		return
	}
	c.JSON(http.StatusCreated, a.payloads(c).subscriber(*subscriber))
}

func (a *API) Unsubscribe(c *gin.Context) {
	if _, err := a.newsletter.Unsubscribe(c.Request.Context(), c.Param("token")); err != nil {
		if errors.Is(err, service.ErrSubscriberNotFound) {
			respondError(c, http.StatusNotFound, "Invalid unsubscribe link.")
			return
		}
		a.respondServerError(c, err, "failed to unsubscribe")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "You have been unsubscribed."})
}

func (a *API) ListNewsletterIssues(c *gin.Context) {
	listPage(a, c, func(page, perPage int) (service.Page[db.NewsletterIssue], error) {
		return a.newsletter.Issues(c.Request.Context(), page, perPage)
	}, a.payloads(c).issue)
}

func (a *API) GetNewsletterIssue(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Not found.")
		return
	}
	issue, err := a.newsletter.Issue(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrIssueNotFound) {
			respondError(c, http.StatusNotFound, "Not found.")
			return
		}
		a.respondServerError(c, err, "failed to load newsletter issue")
		return
	}
	c.JSON(http.StatusOK, a.payloads(c).issue(*issue))
}
