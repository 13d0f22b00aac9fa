package db

import "time"

// 文章发布状态。
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// IsArticleStatus 判断是否为已知发布状态。
func IsArticleStatus(value string) bool {
	return value == StatusDraft || value == StatusPublished
}

type NewsCategory struct {
	Model
	Name          string `gorm:"size:100;uniqueIndex;not null"`
	Slug          string `gorm:"size:120;uniqueIndex;not null"`
	Description   string `gorm:"type:text"`
	IconImage     string `gorm:"size:255"`
	IconThumbnail string `gorm:"size:255"`
}

type NewsTag struct {
	Model
	Name string `gorm:"size:50;uniqueIndex;not null"`
	Slug string `gorm:"size:60;uniqueIndex;not null"`
}

// NewsArticle 新闻文章。带 Event 的文章即为活动，活动删除随文章级联。
type NewsArticle struct {
	Model
	Title                  string        `gorm:"size:200;not null"`
	Slug                   string        `gorm:"size:220;uniqueIndex;not null"`
	Content                string        `gorm:"type:text;not null"`
	Excerpt                string        `gorm:"size:300"`
	FeaturedImage          string        `gorm:"size:255"`
	FeaturedImageThumbnail string        `gorm:"size:255"`
	ThumbnailImage         string        `gorm:"size:255"`
	CategoryID             *uint         `gorm:"index"`
	Category               *NewsCategory `gorm:"constraint:OnDelete:SET NULL"`
	AuthorName             string        `gorm:"size:100"`
	AuthorTitle            string        `gorm:"size:100"`
	PublishDate            time.Time     `gorm:"not null;index"`
	Status                 string        `gorm:"size:10;not null;index"`
	IsFeatured             bool          `gorm:"not null;index"`
	Tags                   []NewsTag     `gorm:"many2many:news_article_tags"`
	Event                  *EventDetail  `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE"`
}

// EventDetail 活动信息，与文章一对一。
type EventDetail struct {
	Model
	ArticleID        uint      `gorm:"not null;uniqueIndex"`
	EventDate        time.Time `gorm:"not null;index"`
	Location         string    `gorm:"size:200"`
	RegistrationLink string    `gorm:"size:500"`
	EventImage       string    `gorm:"size:255"`
}
