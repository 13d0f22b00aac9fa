package db

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Slugify 将标题转换为 URL 片段：小写字母数字，其余字符折叠为单个连字符。
func Slugify(value string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// NewUnsubscribeToken 返回 32 位随机令牌。
func NewUnsubscribeToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

func (p *Programme) BeforeSave(*gorm.DB) error {
	if strings.TrimSpace(p.Slug) == "" {
		p.Slug = Slugify(p.Name)
	}
	return nil
}

func (c *NewsCategory) BeforeSave(*gorm.DB) error {
	if strings.TrimSpace(c.Slug) == "" {
		c.Slug = Slugify(c.Name)
	}
	return nil
}

func (t *NewsTag) BeforeSave(*gorm.DB) error {
	if strings.TrimSpace(t.Slug) == "" {
		t.Slug = Slugify(t.Name)
	}
	return nil
}

func (a *NewsArticle) BeforeSave(*gorm.DB) error {
	if strings.TrimSpace(a.Slug) == "" {
		a.Slug = Slugify(a.Title)
	}
	if a.Status == "" {
		a.Status = StatusDraft
	}
	if a.PublishDate.IsZero() {
		a.PublishDate = time.Now()
	}
	return nil
}

func (s *Subscriber) BeforeCreate(*gorm.DB) error {
	if s.UnsubscribeToken == "" {
		s.UnsubscribeToken = NewUnsubscribeToken()
	}
	if s.SubscribedDate.IsZero() {
		s.SubscribedDate = time.Now()
	}
	return nil
}
