package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/campuscms/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrArticleNotFound  = errors.New("news article not found")
	ErrEventNotFound    = errors.New("event not found")
	ErrCategoryNotFound = errors.New("news category not found")
)

type CategoryInput struct {
	Name        string
	Slug        string
	Description string
	Icon        *StoredImage
}

// ArticleInput 后台写入文章的字段。
// Tags 为 nil 时保留原标签；Event 为 nil 时移除活动详情；图片为 nil 时保留原文件。
type ArticleInput struct {
	Title          string
	Slug           string
	Content        string
	Excerpt        string
	AuthorName     string
	AuthorTitle    string
	Status         string
	CategoryID     *uint
	PublishDate    *time.Time
	IsFeatured     bool
	Tags           []string
	FeaturedImage  *StoredImage
	ThumbnailImage *StoredImage
	Event          *EventInput
}

type EventInput struct {
	EventDate        time.Time
	Location         string
	RegistrationLink string
	Image            *StoredImage
}

// NewsService 提供已发布的新闻与活动。
type NewsService struct {
	db *gorm.DB
}

// ArticleFilter 已发布文章列表的过滤条件。
// Featured 为 nil 时不按推荐过滤。
type ArticleFilter struct {
	CategorySlug string
	Featured     *bool
	Page         int
	PerPage      int
}

func NewNewsService(gdb *gorm.DB) *NewsService {
	return &NewsService{db: gdb}
}

func (s *NewsService) Categories(ctx context.Context, page, perPage int) (Page[db.NewsCategory], error) {
	return paginate[db.NewsCategory](ctx, s.db.Model(&db.NewsCategory{}).Order("name asc"), page, perPage)
}

func withArticleRelations(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Category").
		Preload("Tags", func(tx *gorm.DB) *gorm.DB { return tx.Order("name asc") }).
		Preload("Event")
}

func (s *NewsService) publishedQuery() *gorm.DB {
	return s.db.Model(&db.NewsArticle{}).Where("news_articles.status = ?", db.StatusPublished)
}

// Articles 分页列出已发布文章，按发布时间倒序。
func (s *NewsService) Articles(ctx context.Context, filter ArticleFilter) (Page[db.NewsArticle], error) {
	query := s.publishedQuery()
	if slug := strings.TrimSpace(filter.CategorySlug); slug != "" {
		query = query.Where("news_articles.category_id IN (?)",
			s.db.Model(&db.NewsCategory{}).Select("id").Where("slug = ?", slug))
	}
	if filter.Featured != nil {
		query = query.Where("news_articles.is_featured = ?", *filter.Featured)
	}
	query = query.Order("news_articles.publish_date desc").Order("news_articles.created_at desc")
	return paginate[db.NewsArticle](ctx, query, filter.Page, filter.PerPage, withArticleRelations)
}

func (s *NewsService) Article(ctx context.Context, id uint) (*db.NewsArticle, error) {
	var item db.NewsArticle
	if err := s.publishedQuery().WithContext(ctx).Scopes(withArticleRelations).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return &item, nil
}

// eventQuery 只保留带活动详情的已发布文章。
func (s *NewsService) eventQuery() *gorm.DB {
	return s.publishedQuery().
		Where("EXISTS (SELECT 1 FROM event_details WHERE event_details.article_id = news_articles.id)")
}

// Events 分页列出已发布活动，按活动时间倒序。
func (s *NewsService) Events(ctx context.Context, page, perPage int) (Page[db.NewsArticle], error) {
	query := s.eventQuery().
		Order("(SELECT event_date FROM event_details WHERE event_details.article_id = news_articles.id) desc").
		Order("news_articles.publish_date desc")
	return paginate[db.NewsArticle](ctx, query, page, perPage, withArticleRelations)
}

func (s *NewsService) Event(ctx context.Context, id uint) (*db.NewsArticle, error) {
	var item db.NewsArticle
	if err := s.eventQuery().WithContext(ctx).Scopes(withArticleRelations).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *NewsService) category(ctx context.Context, id uint) (*db.NewsCategory, error) {
	return firstByID[db.NewsCategory](ctx, s.db, id, ErrCategoryNotFound)
}

func (s *NewsService) checkCategory(ctx context.Context, c *db.NewsCategory, id uint) error {
	taken, err := takenBy(ctx, s.db, &db.NewsCategory{}, "name", c.Name, id)
	if err != nil {
		return err
	}
	if taken {
		return alreadyExists("name", "news category")
	}
	slug := c.Slug
	if slug == "" {
		slug = db.Slugify(c.Name)
	}
	taken, err = takenBy(ctx, s.db, &db.NewsCategory{}, "slug", slug, id)
	if err != nil {
		return err
	}
	if taken {
		return alreadyExists("slug", "news category")
	}
	return nil
}

func (s *NewsService) CreateCategory(ctx context.Context, input CategoryInput) (*db.NewsCategory, error) {
	item := db.NewsCategory{
		Name:        strings.TrimSpace(input.Name),
		Slug:        db.Slugify(input.Slug),
		Description: input.Description,
	}
	if err := s.checkCategory(ctx, &item, 0); err != nil {
		return nil, err
	}
	replaceImage(&item.IconImage, &item.IconThumbnail, input.Icon)
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *NewsService) UpdateCategory(ctx context.Context, id uint, input CategoryInput) (item *db.NewsCategory, obsolete []string, err error) {
	item, err = s.category(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	item.Name = strings.TrimSpace(input.Name)
	item.Slug = db.Slugify(input.Slug)
	item.Description = input.Description
	if err := s.checkCategory(ctx, item, id); err != nil {
		return nil, nil, err
	}
	obsolete = replaceImage(&item.IconImage, &item.IconThumbnail, input.Icon)
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, nil, err
	}
	return item, obsolete, nil
}

// DeleteCategory 删除分类，其下文章的 category_id 置空。
func (s *NewsService) DeleteCategory(ctx context.Context, id uint) ([]string, error) {
	item, err := s.category(ctx, id)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db.NewsArticle{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(item).Error
	})
	if err != nil {
		return nil, err
	}
	return StoredImage{Path: item.IconImage, Thumbnail: item.IconThumbnail}.Files(), nil
}

// AdminArticle 读取任意状态的文章。
func (s *NewsService) AdminArticle(ctx context.Context, id uint) (*db.NewsArticle, error) {
	return firstByID[db.NewsArticle](ctx, s.db, id, ErrArticleNotFound, withArticleRelations)
}

func (s *NewsService) checkArticle(ctx context.Context, a *db.NewsArticle, id uint) error {
	if !db.IsArticleStatus(a.Status) {
		return invalidChoice("status", a.Status)
	}
	if a.CategoryID != nil {
		var count int64
		if err := s.db.WithContext(ctx).Model(&db.NewsCategory{}).Where("id = ?", *a.CategoryID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return &FieldError{Field: "category_id", Message: "Invalid pk - object does not exist."}
		}
	}
	slug := a.Slug
	if slug == "" {
		slug = db.Slugify(a.Title)
	}
	if slug == "" {
		return requiredField("slug")
	}
	taken, err := takenBy(ctx, s.db, &db.NewsArticle{}, "slug", slug, id)
	if err != nil {
		return err
	}
	if taken {
		return alreadyExists("slug", "news article")
	}
	return nil
}

// resolveTags 按名称查找或创建标签。
func resolveTags(tx *gorm.DB, names []string) ([]db.NewsTag, error) {
	tags := make([]db.NewsTag, 0, len(names))
	seen := map[string]bool{}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true
		tag := db.NewsTag{Name: name}
		if err := tx.Where("name = ?", name).FirstOrCreate(&tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// saveArticleChildren 写入标签与活动详情，返回被替换或移除的活动图片。
func saveArticleChildren(tx *gorm.DB, article *db.NewsArticle, input ArticleInput) ([]string, error) {
	if input.Tags != nil {
		tags, err := resolveTags(tx, input.Tags)
		if err != nil {
			return nil, err
		}
		if err := tx.Model(article).Association("Tags").Replace(tags); err != nil {
			return nil, err
		}
	}
	var event db.EventDetail
	err := tx.Where("article_id = ?", article.ID).First(&event).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	exists := err == nil
	if input.Event == nil {
		if !exists {
			return nil, nil
		}
		if err := tx.Delete(&event).Error; err != nil {
			return nil, err
		}
		return StoredImage{Path: event.EventImage}.Files(), nil
	}
	if input.Event.EventDate.IsZero() {
		return nil, requiredField("event_date")
	}
	event.ArticleID = article.ID
	event.EventDate = input.Event.EventDate
	event.Location = strings.TrimSpace(input.Event.Location)
	event.RegistrationLink = strings.TrimSpace(input.Event.RegistrationLink)
	obsolete := replaceFile(&event.EventImage, input.Event.Image)
	if err := tx.Save(&event).Error; err != nil {
		return nil, err
	}
	return obsolete, nil
}

func (in ArticleInput) apply(a *db.NewsArticle) {
	a.Title = strings.TrimSpace(in.Title)
	a.Slug = db.Slugify(in.Slug)
	a.Content = in.Content
	a.Excerpt = strings.TrimSpace(in.Excerpt)
	a.AuthorName = strings.TrimSpace(in.AuthorName)
	a.AuthorTitle = strings.TrimSpace(in.AuthorTitle)
	a.Status = in.Status
	if a.Status == "" {
		a.Status = db.StatusDraft
	}
	a.CategoryID = in.CategoryID
	if in.PublishDate != nil {
		a.PublishDate = *in.PublishDate
	}
	a.IsFeatured = in.IsFeatured
}

// CreateArticle 新建文章，必须带封面图。
func (s *NewsService) CreateArticle(ctx context.Context, input ArticleInput) (*db.NewsArticle, error) {
	var item db.NewsArticle
	input.apply(&item)
	if err := s.checkArticle(ctx, &item, 0); err != nil {
		return nil, err
	}
	if input.FeaturedImage == nil {
		return nil, requiredField("featured_image")
	}
	replaceImage(&item.FeaturedImage, &item.FeaturedImageThumbnail, input.FeaturedImage)
	replaceFile(&item.ThumbnailImage, input.ThumbnailImage)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&item).Error; err != nil {
			return err
		}
		_, err := saveArticleChildren(tx, &item, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.AdminArticle(ctx, item.ID)
}

// UpdateArticle 整体更新文章，obsolete 为被替换或随活动移除的图片。
func (s *NewsService) UpdateArticle(ctx context.Context, id uint, input ArticleInput) (item *db.NewsArticle, obsolete []string, err error) {
	item, err = s.AdminArticle(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	input.apply(item)
	if err := s.checkArticle(ctx, item, id); err != nil {
		return nil, nil, err
	}
	replaced := replaceImage(&item.FeaturedImage, &item.FeaturedImageThumbnail, input.FeaturedImage)
	replaced = append(replaced, replaceFile(&item.ThumbnailImage, input.ThumbnailImage)...)
	item.Category, item.Tags, item.Event = nil, nil, nil
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(item).Error; err != nil {
			return err
		}
		eventFiles, err := saveArticleChildren(tx, item, input)
		if err != nil {
			return err
		}
		obsolete = append(replaced, eventFiles...)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	item, err = s.AdminArticle(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return item, obsolete, nil
}

// DeleteArticle 删除文章及其活动与标签关联，返回全部图片文件。
func (s *NewsService) DeleteArticle(ctx context.Context, id uint) ([]string, error) {
	item, err := s.AdminArticle(ctx, id)
	if err != nil {
		return nil, err
	}
	files := StoredImage{Path: item.FeaturedImage, Thumbnail: item.FeaturedImageThumbnail}.Files()
	files = append(files, StoredImage{Path: item.ThumbnailImage}.Files()...)
	if item.Event != nil {
		files = append(files, StoredImage{Path: item.Event.EventImage}.Files()...)
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(item).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", id).Delete(&db.EventDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db.NewsArticle{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
