package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campuscms/internal/db"
	"github.com/campuscms/internal/mail"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ContactService 处理联系表单提交与通知。
type ContactService struct {
	db     *gorm.DB
	mailer mail.Sender
	log    *logrus.Logger
}

// ContactInput 已通过校验的联系表单。
type ContactInput struct {
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	IPAddress string
}

// ContactReceipt 提交结果：已保存的记录与展示给访客的提示语。
type ContactReceipt struct {
	Submission     *db.ContactSubmission
	SuccessMessage string
}

// SubmissionFilter 后台提交列表的过滤条件，IsRead 为 nil 时不过滤。
type SubmissionFilter struct {
	IsRead  *bool
	Page    int
	PerPage int
}

func NewContactService(gdb *gorm.DB, mailer mail.Sender, log *logrus.Logger) *ContactService {
	if mailer == nil {
		mailer = mail.NoopSender{}
	}
	return &ContactService{db: gdb, mailer: mailer, log: log}
}

// Submit 先持久化提交记录，再同步尝试发送通知与自动回复。
// 邮件失败只记录日志，不影响提交结果，也不重试。
// 配置行不存在时使用默认提示语且不发送任何邮件，读取配置不会创建配置行。
func (s *ContactService) Submit(ctx context.Context, input ContactInput) (ContactReceipt, error) {
	submission := db.ContactSubmission{
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		Subject:   strings.TrimSpace(input.Subject),
		Message:   strings.TrimSpace(input.Message),
		IPAddress: strings.TrimSpace(input.IPAddress),
		IsRead:    false,
	}
	if err := s.db.WithContext(ctx).Create(&submission).Error; err != nil {
		return ContactReceipt{}, fmt.Errorf("save contact submission: %w", err)
	}

	receipt := ContactReceipt{Submission: &submission, SuccessMessage: db.DefaultSuccessMessage}

	settings, err := db.LookupSingleton[db.ContactSettings](ctx, s.db, db.SingletonKey)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.WithError(err).WithField("submission_id", submission.ID).Warn("contact settings unavailable, skipping notifications")
		}
		return receipt, nil
	}

	if msg := strings.TrimSpace(settings.SuccessMessage); msg != "" {
		receipt.SuccessMessage = msg
	}
	s.notify(ctx, &submission, settings)
	return receipt, nil
}

func (s *ContactService) notify(ctx context.Context, submission *db.ContactSubmission, settings *db.ContactSettings) {
	fields := logrus.Fields{"submission_id": submission.ID}

	if recipients := settings.Recipients(); len(recipients) > 0 {
		err := s.mailer.Send(ctx, mail.Message{
			To:      recipients,
			Subject: "New Contact Form Submission: " + submission.Subject,
			Body:    notificationBody(submission),
		})
		if err != nil {
			s.log.WithFields(fields).WithError(err).Error("sending contact notification")
		}
	}

	if settings.AutoReplyEnabled {
		err := s.mailer.Send(ctx, mail.Message{
			To:      []string{submission.Email},
			Subject: settings.AutoReplySubject,
			Body:    settings.RenderAutoReply(submission.Name),
		})
		if err != nil {
			s.log.WithFields(fields).WithError(err).Error("sending contact auto-reply")
		}
	}
}

func notificationBody(submission *db.ContactSubmission) string {
	var b strings.Builder
	b.WriteString("New contact form submission received:\n\n")
	fmt.Fprintf(&b, "Name: %s\n", submission.Name)
	fmt.Fprintf(&b, "Email: %s\n", submission.Email)
	fmt.Fprintf(&b, "Phone: %s\n", submission.Phone)
	fmt.Fprintf(&b, "Subject: %s\n", submission.Subject)
	fmt.Fprintf(&b, "Message: %s\n", submission.Message)
	fmt.Fprintf(&b, "IP Address: %s\n", submission.IPAddress)
	fmt.Fprintf(&b, "Submitted at: %s\n", submission.CreatedAt.Format(time.RFC1123))
	return b.String()
}

// List 后台分页查看提交记录，最新的在前。
func (s *ContactService) List(ctx context.Context, filter SubmissionFilter) (Page[db.ContactSubmission], error) {
	query := s.db.Model(&db.ContactSubmission{})
	if filter.IsRead != nil {
		query = query.Where("is_read = ?", *filter.IsRead)
	}
	return paginate[db.ContactSubmission](ctx, query.Order("created_at desc").Order("id desc"), filter.Page, filter.PerPage)
}

// Mark 设置指定提交的已读状态，返回受影响的行数。
func (s *ContactService) Mark(ctx context.Context, ids []uint, read bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := s.db.WithContext(ctx).
		Model(&db.ContactSubmission{}).
		Where("id IN ?", ids).
		Update("is_read", read)
	return result.RowsAffected, result.Error
}
