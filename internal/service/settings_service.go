package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/campuscms/internal/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrSettingsUndeletable 站点配置与联系表单配置不允许删除。
var ErrSettingsUndeletable = errors.New("settings cannot be deleted")

// SettingsService 提供站点配置与联系表单配置两个单例。
type SettingsService struct {
	db                *gorm.DB
	contactRecipients string
}

// SiteSettingsInput 后台可编辑的站点配置。
type SiteSettingsInput struct {
	UniversityName  string
	ShortName       string
	Tagline         string
	Address         string
	PhoneNumbers    []string
	Email           string
	FacebookURL     string
	TwitterURL      string
	LinkedInURL     string
	InstagramURL    string
	YouTubeURL      string
	Logo            string
	CopyrightText   string
	CharterDate     *time.Time
	CharterBy       string
	MaintenanceMode bool
	AnalyticsCode   string
}

// ContactSettingsInput 后台可编辑的联系表单配置。
type ContactSettingsInput struct {
	RecipientEmails  string
	AutoReplyEnabled bool
	AutoReplySubject string
	AutoReplyMessage string
	SuccessMessage   string
}

// NewSettingsService 构造设置服务，contactRecipients 用于首次读取时初始化联系设置单例。
func NewSettingsService(gdb *gorm.DB, contactRecipients string) *SettingsService {
	return &SettingsService{db: gdb, contactRecipients: contactRecipients}
}

func (s *SettingsService) Site(ctx context.Context) (*db.SiteSettings, error) {
	settings, _, err := db.ResolveSingleton(ctx, s.db, db.SingletonKey, db.DefaultSiteSettings())
	return settings, err
}

func (s *SettingsService) UpdateSite(ctx context.Context, input SiteSettingsInput) (*db.SiteSettings, error) {
	settings, err := s.Site(ctx)
	if err != nil {
		return nil, err
	}

	phones := make(datatypes.JSONSlice[string], 0, len(input.PhoneNumbers))
	for _, phone := range input.PhoneNumbers {
		if trimmed := strings.TrimSpace(phone); trimmed != "" {
			phones = append(phones, trimmed)
		}
	}

	settings.UniversityName = strings.TrimSpace(input.UniversityName)
	settings.ShortName = strings.TrimSpace(input.ShortName)
	settings.Tagline = strings.TrimSpace(input.Tagline)
	settings.Address = strings.TrimSpace(input.Address)
	settings.PhoneNumbers = phones
	settings.Email = strings.TrimSpace(input.Email)
	settings.FacebookURL = strings.TrimSpace(input.FacebookURL)
	settings.TwitterURL = strings.TrimSpace(input.TwitterURL)
	settings.LinkedInURL = strings.TrimSpace(input.LinkedInURL)
	settings.InstagramURL = strings.TrimSpace(input.InstagramURL)
	settings.YouTubeURL = strings.TrimSpace(input.YouTubeURL)
	if logo := strings.TrimSpace(input.Logo); logo != "" {
		settings.Logo = logo
	}
	settings.CopyrightText = strings.TrimSpace(input.CopyrightText)
	settings.CharterDate = input.CharterDate
	settings.CharterBy = strings.TrimSpace(input.CharterBy)
	settings.MaintenanceMode = input.MaintenanceMode
	settings.AnalyticsCode = input.AnalyticsCode

	if err := s.db.WithContext(ctx).Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// Contact 返回联系表单配置单例，首次访问时写入默认值。
func (s *SettingsService) Contact(ctx context.Context) (*db.ContactSettings, error) {
	settings, _, err := db.ResolveSingleton(ctx, s.db, db.SingletonKey, db.DefaultContactSettings(s.contactRecipients))
	return settings, err
}

func (s *SettingsService) UpdateContact(ctx context.Context, input ContactSettingsInput) (*db.ContactSettings, error) {
	settings, err := s.Contact(ctx)
	if err != nil {
		return nil, err
	}

	settings.RecipientEmails = strings.Join(db.ContactSettings{RecipientEmails: input.RecipientEmails}.Recipients(), ", ")
	settings.AutoReplyEnabled = input.AutoReplyEnabled
	settings.AutoReplySubject = strings.TrimSpace(input.AutoReplySubject)
	settings.AutoReplyMessage = strings.TrimSpace(input.AutoReplyMessage)
	settings.SuccessMessage = strings.TrimSpace(input.SuccessMessage)

	if err := s.db.WithContext(ctx).Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}
