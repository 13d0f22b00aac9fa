package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/campuscms/internal/service"
	"github.com/gin-gonic/gin"
)

const charterDateLayout = "2006-01-02"

type siteSettingsRequest struct {
	UniversityName  string   `json:"university_name" validate:"notblank,max=200"`
	ShortName       string   `json:"short_name" validate:"notblank,max=20"`
	Tagline         string   `json:"tagline" validate:"max=200"`
	Address         string   `json:"address"`
	PhoneNumbers    []string `json:"phone_numbers" validate:"dive,max=30"`
	Email           string   `json:"email" validate:"required,email"`
	FacebookURL     string   `json:"facebook_url" validate:"omitempty,url"`
	TwitterURL      string   `json:"twitter_url" validate:"omitempty,url"`
	LinkedInURL     string   `json:"linkedin_url" validate:"omitempty,url"`
	InstagramURL    string   `json:"instagram_url" validate:"omitempty,url"`
	YouTubeURL      string   `json:"youtube_url" validate:"omitempty,url"`
	Logo            string   `json:"logo"`
	CopyrightText   string   `json:"copyright_text" validate:"max=200"`
	CharterDate     string   `json:"charter_date" validate:"omitempty,datetime=2006-01-02"`
	CharterBy       string   `json:"charter_by" validate:"max=200"`
	MaintenanceMode bool     `json:"maintenance_mode"`
	AnalyticsCode   string   `json:"analytics_code"`
}

type contactSettingsRequest struct {
	RecipientEmails  string `json:"recipient_emails" validate:"email_list"`
	AutoReplyEnabled bool   `json:"auto_reply_enabled"`
	AutoReplySubject string `json:"auto_reply_subject" validate:"notblank,max=200"`
	AutoReplyMessage string `json:"auto_reply_message" validate:"notblank"`
	SuccessMessage   string `json:"success_message" validate:"notblank"`
}

// GetSiteSettings 返回站点配置单例，首次访问写入默认值。
func (a *API) GetSiteSettings(c *gin.Context) {
	settings, err := a.settings.Site(c.Request.Context())
	if err != nil {
		a.respondServerError(c, err, "failed to load site settings")
		return
	}
	c.JSON(http.StatusOK, a.payloads(c).siteSettings(*settings))
}

func (a *API) UpdateSiteSettings(c *gin.Context) {
	var req siteSettingsRequest
	if !bindAndValidate(c, &req) {
		return
	}

	var charterDate *time.Time
	if raw := strings.TrimSpace(req.CharterDate); raw != "" {
		parsed, err := time.Parse(charterDateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"charter_date": []string{"date must use YYYY-MM-DD"}})
			return
		}
		charterDate = &parsed
	}

	settings, err := a.settings.UpdateSite(c.Request.Context(), service.SiteSettingsInput{
		UniversityName:  req.UniversityName,
		ShortName:       req.ShortName,
		Tagline:         req.Tagline,
		Address:         req.Address,
		PhoneNumbers:    req.PhoneNumbers,
		Email:           req.Email,
		FacebookURL:     req.FacebookURL,
		TwitterURL:      req.TwitterURL,
		LinkedInURL:     req.LinkedInURL,
		InstagramURL:    req.InstagramURL,
		YouTubeURL:      req.YouTubeURL,
		Logo:            req.Logo,
		CopyrightText:   req.CopyrightText,
		CharterDate:     charterDate,
		CharterBy:       req.CharterBy,
		MaintenanceMode: req.MaintenanceMode,
		AnalyticsCode:   req.AnalyticsCode,
	})
	if err != nil {
		a.respondServerError(c, err, "failed to update site settings")
		return
	}
	c.JSON(http.StatusOK, a.payloads(c).siteSettings(*settings))
}

// GetContactSettings 返回联系表单配置单例。
func (a *API) GetContactSettings(c *gin.Context) {
	settings, err := a.settings.Contact(c.Request.Context())
	if err != nil {
		a.respondServerError(c, err, "failed to load contact settings")
		return
	}
	c.JSON(http.StatusOK, a.payloads(c).contactSettings(*settings))
}

func (a *API) UpdateContactSettings(c *gin.Context) {
	var req contactSettingsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	settings, err := a.settings.UpdateContact(c.Request.Context(), service.ContactSettingsInput(req))
	if err != nil {
		a.respondServerError(c, err, "failed to update contact settings")
		return
	}
	c.JSON(http.StatusOK, a.payloads(c).contactSettings(*settings))
}

// DeleteContactSettings 配置单例不可删除。
func (a *API) DeleteContactSettings(c *gin.Context) {
	c.Header("Allow", "GET, PUT")
	respondError(c, http.StatusMethodNotAllowed, service.ErrSettingsUndeletable.Error())
}
