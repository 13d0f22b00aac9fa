package db

import (
	"time"

	"gorm.io/datatypes"
)

// SiteSettings 站点级单例配置，页眉页脚与社交链接都从这里读取。
type SiteSettings struct {
	Model
	UniversityName  string                      `gorm:"size:200;not null" validate:"required"`
	ShortName       string                      `gorm:"size:20;not null" validate:"required"`
	Tagline         string                      `gorm:"size:200"`
	Address         string                      `gorm:"type:text"`
	PhoneNumbers    datatypes.JSONSlice[string] `gorm:"type:json"`
	Email           string                      `gorm:"size:254" validate:"required,email"`
	FacebookURL     string                      `gorm:"size:200"`
	TwitterURL      string                      `gorm:"size:200"`
	LinkedInURL     string                      `gorm:"size:200"`
	InstagramURL    string                      `gorm:"size:200"`
	YouTubeURL      string                      `gorm:"size:200"`
	Logo            string                      `gorm:"size:255"`
	CopyrightText   string                      `gorm:"type:text"`
	CharterDate     *time.Time
	CharterBy       string `gorm:"size:200"`
	MaintenanceMode bool   `gorm:"not null"`
	AnalyticsCode   string `gorm:"type:text"`
}

// DefaultSiteSettings 返回首次访问时写入的站点配置。
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		UniversityName: "National Intelligence and Research University",
		ShortName:      "NIRU",
		Tagline:        "Premier Science and Research-Intensive African University",
		Address:        "P.O. Box 47446 - 00100, Nairobi, Kenya",
		PhoneNumbers:   datatypes.JSONSlice[string]{},
		Email:          "admin@niru.ac.ke",
		CopyrightText:  "Copyright 2025. National Intelligence and Research University. All Rights Reserved.",
	}
}
