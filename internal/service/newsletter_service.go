package service

import (
	"context"
	"errors"
	"strings"

	"github.com/campuscms/internal/db"
	"github.com/campuscms/internal/validate"
	"gorm.io/gorm"
)

var (
	ErrEmailRequired      = errors.New("email is required")
	ErrEmailInvalid       = errors.New("invalid email format")
	ErrAlreadySubscribed  = errors.New("email is already subscribed")
	ErrSubscriberNotFound = errors.New("subscriber not found")
	ErrIssueNotFound      = errors.New("newsletter issue not found")
)

// NewsletterService 管理订阅者与往期简报。
type NewsletterService struct {
	db *gorm.DB
}

// SubscribeInput 订阅请求
type SubscribeInput struct {
	Email     string
	Name      string
	IPAddress string
}

func NewNewsletterService(gdb *gorm.DB) *NewsletterService {
	return &NewsletterService{db: gdb}
}

// Subscribe 新增订阅者。重复邮箱返回 ErrAlreadySubscribed；
// 并发重复提交由唯一索引兜底，同样映射为 ErrAlreadySubscribed。
func (s *NewsletterService) Subscribe(ctx context.Context, input SubscribeInput) (*db.Subscriber, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if !validate.IsEmail(email) {
		return nil, ErrEmailInvalid
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&db.Subscriber{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrAlreadySubscribed
	}

	sub := db.Subscriber{
		Email:     email,
		Name:      strings.TrimSpace(input.Name),
		IsActive:  true,
		IPAddress: strings.TrimSpace(input.IPAddress),
	}
	if err := s.db.WithContext(ctx).Create(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadySubscribed
		}
		return nil, err
	}
	return &sub, nil
}

// Unsubscribe 停用 token 对应的订阅者，可重复调用。
func (s *NewsletterService) Unsubscribe(ctx context.Context, token string) (*db.Subscriber, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrSubscriberNotFound
	}

	var sub db.Subscriber
	if err := s.db.WithContext(ctx).Where("unsubscribe_token = ?", token).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriberNotFound
		}
		return nil, err
	}
	if !sub.IsActive {
		return &sub, nil
	}

	sub.IsActive = false
	if err := s.db.WithContext(ctx).Model(&sub).Update("is_active", false).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *NewsletterService) Issues(ctx context.Context, page, perPage int) (Page[db.NewsletterIssue], error) {
	return paginate[db.NewsletterIssue](ctx, s.db.Model(&db.NewsletterIssue{}).Order("issue_number desc"), page, perPage)
}

func (s *NewsletterService) Issue(ctx context.Context, id uint) (*db.NewsletterIssue, error) {
	var item db.NewsletterIssue
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, err
	}
	return &item, nil
}
