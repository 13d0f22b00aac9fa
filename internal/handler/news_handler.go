package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/campuscms/internal/db"
	"github.com/campuscms/internal/media"
	"github.com/campuscms/internal/service"
	"github.com/gin-gonic/gin"
)

type newsCategoryRequest struct {
	Name        string `json:"name" form:"name" validate:"notblank,max=100"`
	Slug        string `json:"slug" form:"slug" validate:"max=120"`
	Description string `json:"description" form:"description"`
}

// articleRequest 中 is_event 为 false 时移除活动详情；tags 省略时保留原标签。
type articleRequest struct {
	Title            string   `json:"title" form:"title" validate:"notblank,max=200"`
	Slug             string   `json:"slug" form:"slug" validate:"max=220"`
	Content          string   `json:"content" form:"content" validate:"notblank"`
	Excerpt          string   `json:"excerpt" form:"excerpt" validate:"max=300"`
	AuthorName       string   `json:"author_name" form:"author_name" validate:"max=100"`
	AuthorTitle      string   `json:"author_title" form:"author_title" validate:"max=100"`
	Status           string   `json:"status" form:"status"`
	CategoryID       *uint    `json:"category_id" form:"category_id"`
	PublishDate      string   `json:"publish_date" form:"publish_date"`
	IsFeatured       bool     `json:"is_featured" form:"is_featured"`
	Tags             []string `json:"tags" form:"tags" validate:"omitempty,dive,max=50"`
	IsEvent          bool     `json:"is_event" form:"is_event"`
	EventDate        string   `json:"event_date" form:"event_date"`
	Location         string   `json:"location" form:"location" validate:"max=200"`
	RegistrationLink string   `json:"registration_link" form:"registration_link" validate:"omitempty,url,max=500"`
}

func (a *API) ListNewsCategories(c *gin.Context) {
	listPage(a, c, func(page, perPage int) (service.Page[db.NewsCategory], error) {
		return a.news.Categories(c.Request.Context(), page, perPage)
	}, a.payloads(c).newsCategory)
}

// ListArticles 列出已发布文章，支持 ?category=<slug> 与 ?featured=。
func (a *API) ListArticles(c *gin.Context) {
	filter := service.ArticleFilter{
		CategorySlug: strings.TrimSpace(c.Query("category")),
		Featured:     parseBoolQuery(c, "featured"),
	}
	listPage(a, c, func(page, perPage int) (service.Page[db.NewsArticle], error) {
		filter.Page = page
		filter.PerPage = perPage
		return a.news.Articles(c.Request.Context(), filter)
	}, a.payloads(c).article)
}

func (a *API) GetArticle(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Not found.")
		return
	}
	article, err := a.news.Article(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			respondError(c, http.StatusNotFound, "Not found.")
			return
		}
		a.respondServerError(c, err, "failed to load article")
		return
	}
	c.JSON(http.StatusOK, a.payloads(c).article(*article))
}

func (a *API) ListEvents(c *gin.Context) {
	listPage(a, c, func(page, perPage int) (service.Page[db.NewsArticle], error) {
		return a.news.Events(c.Request.Context(), page, perPage)
	}, a.payloads(c).event)
}

func (a *API) GetEvent(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Not found.")
		return
	}
	event, err := a.news.Event(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			respondError(c, http.StatusNotFound, "Not found.")
			return
		}
		a.respondServerError(c, err, "failed to load event")
		return
	}
	c.JSON(http.StatusOK, a.payloads(c).event(*event))
}

func (a *API) CreateNewsCategory(c *gin.Context) {
	var req newsCategoryRequest
	if !bindContent(c, &req) {
		return
	}
	upload := a.newContentUpload()
	icon, ok := upload.image(c, "icon_image", media.KindIcon)
	if !ok {
		return
	}
	item, err := a.news.CreateCategory(c.Request.Context(), service.CategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Icon:        icon,
	})
	if err != nil {
		upload.rollback()
		a.respondContentError(c, err, "failed to create news category")
		return
	}
	c.JSON(http.StatusCreated, a.payloads(c).newsCategory(*item))
}

func (a *API) UpdateNewsCategory(c *gin.Context) {
	id, ok := contentID(c)
	if !ok {
		return
	}
	var req newsCategoryRequest
	if !bindContent(c, &req) {
		return
	}
	upload := a.newContentUpload()
	icon, ok := upload.image(c, "icon_image", media.KindIcon)
	if !ok {
		return
	}
	item, obsolete, err := a.news.UpdateCategory(c.Request.Context(), id, service.CategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Icon:        icon,
	})
	if err != nil {
		upload.rollback()
		a.respondContentError(c, err, "failed to update news category", service.ErrCategoryNotFound)
		return
	}
	a.discardMedia(obsolete...)
	c.JSON(http.StatusOK, a.payloads(c).newsCategory(*item))
}

// DeleteNewsCategory 删除分类，原属文章变为未分类。
func (a *API) DeleteNewsCategory(c *gin.Context) {
	id, ok := contentID(c)
	if !ok {
		return
	}
	files, err := a.news.DeleteCategory(c.Request.Context(), id)
	if err != nil {
		a.respondContentError(c, err, "failed to delete news category", service.ErrCategoryNotFound)
		return
	}
	a.discardMedia(files...)
	c.Status(http.StatusNoContent)
}

// articleInput 解析日期并保存文章图片；返回 false 时响应已写出。
func (a *API) articleInput(c *gin.Context, req articleRequest, upload *contentUpload) (service.ArticleInput, bool) {
	in := service.ArticleInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Content:     req.Content,
		Excerpt:     req.Excerpt,
		AuthorName:  req.AuthorName,
		AuthorTitle: req.AuthorTitle,
		Status:      req.Status,
		CategoryID:  req.CategoryID,
		IsFeatured:  req.IsFeatured,
		Tags:        req.Tags,
	}
	var ok bool
	if in.PublishDate, ok = parseDateField(c, "publish_date", req.PublishDate); !ok {
		return in, false
	}
	if req.IsEvent {
		eventDate, ok := parseDateField(c, "event_date", req.EventDate)
		if !ok {
			return in, false
		}
		if eventDate == nil {
			c.JSON(http.StatusBadRequest, gin.H{"event_date": []string{"This field is required."}})
			return in, false
		}
		in.Event = &service.EventInput{
			EventDate:        *eventDate,
			Location:         req.Location,
			RegistrationLink: req.RegistrationLink,
		}
	}

	if in.FeaturedImage, ok = upload.image(c, "featured_image", media.KindNews); !ok {
		return in, false
	}
	if in.ThumbnailImage, ok = upload.image(c, "thumbnail_image", media.KindPhoto); !ok {
		upload.rollback()
		return in, false
	}
	if in.Event != nil {
		if in.Event.Image, ok = upload.image(c, "event_image", media.KindPhoto); !ok {
			upload.rollback()
			return in, false
		}
	}
	return in, true
}

// CreateArticle 新建文章，multipart 请求必须附带 featured_image。
func (a *API) CreateArticle(c *gin.Context) {
	var req articleRequest
	if !bindContent(c, &req) {
		return
	}
	upload := a.newContentUpload()
	input, ok := a.articleInput(c, req, upload)
	if !ok {
		return
	}
	article, err := a.news.CreateArticle(c.Request.Context(), input)
	if err != nil {
		upload.rollback()
		a.respondContentError(c, err, "failed to create news article")
		return
	}
	c.JSON(http.StatusCreated, a.payloads(c).event(*article))
}

func (a *API) UpdateArticle(c *gin.Context) {
	id, ok := contentID(c)
	if !ok {
		return
	}
	var req articleRequest
	if !bindContent(c, &req) {
		return
	}
	upload := a.newContentUpload()
	input, ok := a.articleInput(c, req, upload)
	if !ok {
		return
	}
	article, obsolete, err := a.news.UpdateArticle(c.Request.Context(), id, input)
	if err != nil {
		upload.rollback()
		a.respondContentError(c, err, "failed to update news article", service.ErrArticleNotFound)
		return
	}
	a.discardMedia(obsolete...)
	c.JSON(http.StatusOK, a.payloads(c).event(*article))
}

// DeleteArticle 删除文章及其活动详情与全部图片。
func (a *API) DeleteArticle(c *gin.Context) {
	id, ok := contentID(c)
	if !ok {
		return
	}
	files, err := a.news.DeleteArticle(c.Request.Context(), id)
	if err != nil {
		a.respondContentError(c, err, "failed to delete news article", service.ErrArticleNotFound)
		return
	}
	a.discardMedia(files...)
	c.Status(http.StatusNoContent)
}
