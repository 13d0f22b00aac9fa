package mail

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

// ConsoleSender 将邮件写入日志，用于开发环境。
type ConsoleSender struct {
	from string
	log  *logrus.Logger
}

var _ Sender = (*ConsoleSender)(nil)

func NewConsoleSender(from string, log *logrus.Logger) *ConsoleSender {
	return &ConsoleSender{from: from, log: log}
}

func (s *ConsoleSender) Send(_ context.Context, msg Message) error {
	if !msg.HasRecipients() {
		return ErrNoRecipients
	}
	s.log.WithFields(logrus.Fields{
		"from":    s.from,
		"to":      strings.Join(msg.To, ", "),
		"subject": msg.Subject,
	}).Info("email\n" + msg.Body)
	return nil
}
