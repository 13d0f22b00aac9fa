package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campuscms/internal/db"
	"github.com/campuscms/internal/service"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Options 控制一次初始化运行。
type Options struct {
	Force             bool
	Demo              bool
	AdminUsername     string
	AdminPassword     string
	ContactRecipients string
}

// Seeder 写入站点运行所需的初始数据，重复运行不会产生重复记录。
type Seeder struct {
	db  *gorm.DB
	log *logrus.Logger
}

func New(gdb *gorm.DB, log *logrus.Logger) *Seeder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Seeder{db: gdb, log: log}
}

// Run 依次写入站点配置、页面横幅、管理员账号，Demo 为 true 时追加新闻示例数据。
func (s *Seeder) Run(ctx context.Context, opts Options) error {
	if err := s.SiteSettings(ctx, opts.Force); err != nil {
		return fmt.Errorf("seed site settings: %w", err)
	}

	created, err := service.NewHeroService(s.db).SeedDefaults(ctx, opts.Force)
	if err != nil {
		return fmt.Errorf("seed page heroes: %w", err)
	}
	s.log.WithField("rows", created).Info("page heroes seeded")

	if err := db.EnsureUser(s.db, opts.AdminUsername, opts.AdminPassword); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	if opts.Demo {
		if err := s.News(ctx, opts.Force); err != nil {
			return fmt.Errorf("seed news: %w", err)
		}
		if err := s.ContactSettings(ctx, opts.ContactRecipients); err != nil {
			return fmt.Errorf("seed contact settings: %w", err)
		}
	}
	return nil
}

func defaultSiteSettings() db.SiteSettings {
	settings := db.DefaultSiteSettings()
	settings.PhoneNumbers = datatypes.JSONSlice[string]{"+254 798 471845", "+254 742 093140"}
	settings.CharterBy = "H.E. William Samoei Ruto, President and Commander in Chief of the Kenya Defence Forces"
	return settings
}

// SiteSettings 创建站点配置单例；force 时用默认值覆盖已有内容。
func (s *Seeder) SiteSettings(ctx context.Context, force bool) error {
	defaults := defaultSiteSettings()
	settings, created, err := db.ResolveSingleton(ctx, s.db, db.SingletonKey, defaults)
	if err != nil {
		return err
	}
	if created {
		s.log.WithField("university", settings.UniversityName).Info("site settings created")
		return nil
	}
	if !force {
		s.log.Info("site settings already exist, use --force to reset")
		return nil
	}

	defaults.ID = settings.ID
	defaults.CreatedAt = settings.CreatedAt
	defaults.Logo = settings.Logo
	if err := s.db.WithContext(ctx).Save(&defaults).Error; err != nil {
		return err
	}
	s.log.Info("site settings reset to defaults")
	return nil
}

var demoCategories = []db.NewsCategory{
	{Name: "Announcements", Description: "Official announcements from NIRU"},
	{Name: "Events", Description: "Upcoming and past events"},
	{Name: "Research", Description: "Research updates and discoveries"},
	{Name: "Academics", Description: "Academic programme updates"},
	{Name: "Student Life", Description: "Student life and activities"},
}

// upsertArticle 按标题查找示例文章；force 时用示例内容覆盖已有文章。
func (s *Seeder) upsertArticle(ctx context.Context, article db.NewsArticle, force bool) error {
	tx := s.db.WithContext(ctx)

	var existing db.NewsArticle
	err := tx.Where("title = ?", article.Title).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return tx.Create(&article).Error
	case err != nil:
		return err
	case !force:
		return nil
	}

	article.ID = existing.ID
	article.Slug = existing.Slug
	article.CreatedAt = existing.CreatedAt
	article.FeaturedImage = existing.FeaturedImage
	article.FeaturedImageThumbnail = existing.FeaturedImageThumbnail
	article.ThumbnailImage = existing.ThumbnailImage
	return tx.Omit("Tags", "Event", "Category").Save(&article).Error
}

// News 写入示例新闻分类、文章与一期简报，force 时覆盖示例文章内容。
func (s *Seeder) News(ctx context.Context, force bool) error {
	tx := s.db.WithContext(ctx)

	for _, item := range demoCategories {
		category := item
		if err := tx.Where(db.NewsCategory{Name: category.Name}).FirstOrCreate(&category).Error; err != nil {
			return err
		}
	}

	var announcements db.NewsCategory
	if err := tx.Where("name = ?", "Announcements").First(&announcements).Error; err != nil {
		return err
	}

	var existing int64
	if err := tx.Model(&db.NewsArticle{}).Count(&existing).Error; err != nil {
		return err
	}
	if existing == 0 || force {
		now := time.Now()
		articles := []db.NewsArticle{
			{
				Title:       "NIRU Launches AI Hackathon 2025",
				Excerpt:     "NIRU announces its inaugural AI Hackathon focusing on intelligence and security solutions.",
				Content:     "National Intelligence and Research University is proud to announce the launch of its first AI Hackathon in 2025. This event will bring together the brightest minds to develop innovative solutions for intelligence and security challenges.",
				AuthorName:  "NIRU Communications",
				AuthorTitle: "Communications Team",
				PublishDate: now,
				Status:      db.StatusPublished,
				IsFeatured:  true,
				CategoryID:  &announcements.ID,
			},
			{
				Title:       "Weekly Newsletter Issue #20",
				Excerpt:     "This week's edition of our newsletter featuring campus updates.",
				Content:     "Stay updated with the latest happenings at NIRU. This week we feature new research initiatives, upcoming events, and student achievements.",
				AuthorName:  "NIRU Editorial Team",
				AuthorTitle: "Editorial Staff",
				PublishDate: now,
				Status:      db.StatusPublished,
				CategoryID:  &announcements.ID,
			},
		}
		for _, item := range articles {
			if err := s.upsertArticle(ctx, item, force); err != nil {
				return err
			}
		}
		s.log.WithField("articles", len(articles)).Info("news articles seeded")
	}

	issue := db.NewsletterIssue{
		IssueNumber:     1,
		Title:           "NIRU Monthly Digest - January 2025",
		Content:         "Welcome to the first issue of NIRU Monthly Digest. This newsletter brings you the latest updates from our university.",
		RecipientsCount: 100,
	}
	return tx.Where(db.NewsletterIssue{IssueNumber: issue.IssueNumber}).FirstOrCreate(&issue).Error
}

// ContactSettings 创建联系表单配置单例，已存在时保持不变。
func (s *Seeder) ContactSettings(ctx context.Context, recipients string) error {
	if recipients == "" {
		recipients = "admin@niru.ac.ke,info@niru.ac.ke"
	}
	defaults := db.DefaultContactSettings(recipients)
	defaults.AutoReplySubject = "Thank you for contacting NIRU"
	defaults.AutoReplyMessage = "Dear {name}, thank you for contacting NIRU. We have received your message and will respond shortly."

	_, created, err := db.ResolveSingleton(ctx, s.db, db.SingletonKey, defaults)
	if err != nil {
		if errors.Is(err, db.ErrSingletonDefaults) {
			return fmt.Errorf("contact recipients %q: %w", recipients, err)
		}
		return err
	}
	if created {
		s.log.Info("contact settings created")
	}
	return nil
}
