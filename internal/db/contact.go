package db

import (
	"strings"
	"time"
)

// ContactSubmission 联系表单提交记录
type ContactSubmission struct {
	Model
	Name      string `gorm:"size:200;not null"`
	Email     string `gorm:"size:254;not null"`
	Phone     string `gorm:"size:20"`
	Subject   string `gorm:"size:300;not null"`
	Message   string `gorm:"type:text;not null"`
	IPAddress string `gorm:"size:45"`
	IsRead    bool   `gorm:"not null;index"`
	RepliedAt *time.Time
}

// ContactSettings 联系表单单例配置：通知收件人与自动回复模板。
type ContactSettings struct {
	Model
	RecipientEmails  string `gorm:"type:text;not null" validate:"required"`
	AutoReplyEnabled bool   `gorm:"not null"`
	AutoReplySubject string `gorm:"size:200;not null" validate:"required"`
	AutoReplyMessage string `gorm:"type:text;not null" validate:"required"`
	SuccessMessage   string `gorm:"type:text;not null" validate:"required"`
}

// DefaultSuccessMessage 没有设置行时展示给访客的提示。
const DefaultSuccessMessage = "Thank you for your message. We will get back to you soon."

// DefaultContactSettings 返回首次读取时落库的默认配置，recipients 为逗号分隔的收件人。
func DefaultContactSettings(recipients string) ContactSettings {
	return ContactSettings{
		RecipientEmails:  recipients,
		AutoReplyEnabled: true,
		AutoReplySubject: "Thank you for contacting us",
		AutoReplyMessage: "Dear {name},\n\nThank you for reaching out. We have received your message and will respond as soon as possible.",
		SuccessMessage:   DefaultSuccessMessage,
	}
}

// Recipients 拆分逗号分隔的收件人列表，忽略空白项。
func (s ContactSettings) Recipients() []string {
	parts := strings.Split(s.RecipientEmails, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

var braceUnescaper = func(name string) *strings.Replacer {
	return strings.NewReplacer("{{", "{", "}}", "}", "{name}", name)
}

// RenderAutoReply 用提交者姓名替换模板中的 {name} 占位符。
func (s ContactSettings) RenderAutoReply(name string) string {
	return braceUnescaper(name).Replace(s.AutoReplyMessage)
}
