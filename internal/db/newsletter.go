package db

import "time"

// Subscriber 邮件订阅者，邮箱与退订令牌均唯一。
type Subscriber struct {
	Model
	Email            string    `gorm:"size:254;uniqueIndex;not null"`
	Name             string    `gorm:"size:100"`
	IsActive         bool      `gorm:"not null;index"`
	SubscribedDate   time.Time `gorm:"not null;index"`
	IPAddress        string    `gorm:"size:45"`
	UnsubscribeToken string    `gorm:"size:32;uniqueIndex;not null"`
}

type NewsletterIssue struct {
	Model
	Title           string `gorm:"size:200;not null"`
	Content         string `gorm:"type:text;not null"`
	IssueNumber     uint   `gorm:"not null;uniqueIndex"`
	SentDate        *time.Time
	RecipientsCount uint `gorm:"not null"`
}
