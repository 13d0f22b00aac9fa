package mail

import (
	"context"
	"errors"
	"strings"

	"github.com/campuscms/internal/config"
	"github.com/sirupsen/logrus"
)

// ErrNoRecipients 邮件没有任何收件人。
var ErrNoRecipients = errors.New("email has no recipients")

// Message 一封纯文本邮件。
type Message struct {
	To      []string
	Subject string
	Body    string
}

// HasRecipients 至少存在一个非空地址时返回 true。
func (m Message) HasRecipients() bool {
	for _, to := range m.To {
		if strings.TrimSpace(to) != "" {
			return true
		}
	}
	return false
}

// Sender 投递一次邮件，实现方不做重试。
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewSender 根据配置选择投递后端，未知后端回退到控制台输出。
func NewSender(cfg config.EmailConfig, log *logrus.Logger) Sender {
	switch cfg.Backend {
	case config.EmailBackendSendgrid:
		if strings.TrimSpace(cfg.SendgridAPIKey) == "" {
			log.Warn("sendgrid backend selected without SENDGRID_API_KEY, falling back to console")
			return NewConsoleSender(cfg.FromAddress, log)
		}
		return NewSendgridSender(cfg.SendgridAPIKey, cfg.FromName, cfg.FromAddress)
	case config.EmailBackendNone:
		return NoopSender{}
	default:
		return NewConsoleSender(cfg.FromAddress, log)
	}
}

// NoopSender 丢弃所有邮件。
type NoopSender struct{}

func (NoopSender) Send(context.Context, Message) error { return nil }
