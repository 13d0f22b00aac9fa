package service

import (
	"context"
	"errors"
	"strings"

	"github.com/campuscms/internal/db"
	"gorm.io/gorm"
)

var (
	ErrLibrarianMessageNotFound = errors.New("librarian message not found")
	ErrEResourceNotFound        = errors.New("e-resource not found")
)

type EResourceInput struct {
	Name        string
	Description string
	URL         string
	Category    string
	Icon        *StoredImage
}

// LibraryService 提供图书馆页面、电子资源与馆藏政策。
type LibraryService struct {
	db *gorm.DB
}

// LibraryPageInput 图书馆页面单例的可编辑字段。
type LibraryPageInput struct {
	Mission           string
	Vision            string
	Objectives        string
	Value1Title       string
	Value1Description string
	Value2Title       string
	Value2Description string
	Value3Title       string
	Value3Description string
	Value4Title       string
	Value4Description string
	QualityStatement  string
}

// LibraryResources 图书馆页面渲染所需的全部数据。
type LibraryResources struct {
	Page             *db.LibraryPage
	EResources       []db.EResource
	Policies         []db.LibraryPolicy
	LibrarianMessage *db.LibrarianMessage
}

func NewLibraryService(gdb *gorm.DB) *LibraryService {
	return &LibraryService{db: gdb}
}

func (s *LibraryService) Page(ctx context.Context) (*db.LibraryPage, error) {
	page, _, err := db.ResolveSingleton(ctx, s.db, db.SingletonKey, db.DefaultLibraryPage())
	return page, err
}

func (s *LibraryService) UpdatePage(ctx context.Context, input LibraryPageInput) (*db.LibraryPage, error) {
	page, err := s.Page(ctx)
	if err != nil {
		return nil, err
	}
	page.Mission = SanitizeHTML(input.Mission)
	page.Vision = SanitizeHTML(input.Vision)
	page.Objectives = SanitizeHTML(input.Objectives)
	page.Value1Title = input.Value1Title
	page.Value1Description = SanitizeHTML(input.Value1Description)
	page.Value2Title = input.Value2Title
	page.Value2Description = SanitizeHTML(input.Value2Description)
	page.Value3Title = input.Value3Title
	page.Value3Description = SanitizeHTML(input.Value3Description)
	page.Value4Title = input.Value4Title
	page.Value4Description = SanitizeHTML(input.Value4Description)
	page.QualityStatement = SanitizeHTML(input.QualityStatement)
	if err := s.db.WithContext(ctx).Save(page).Error; err != nil {
		return nil, err
	}
	return page, nil
}

func (s *LibraryService) LibrarianMessage(ctx context.Context) (*db.LibrarianMessage, error) {
	var msg db.LibrarianMessage
	if err := s.db.WithContext(ctx).Order("id asc").First(&msg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLibrarianMessageNotFound
		}
		return nil, err
	}
	return &msg, nil
}

func (s *LibraryService) eResourceQuery() *gorm.DB {
	return s.db.Model(&db.EResource{}).Order("category asc").Order("name asc")
}

func (s *LibraryService) EResources(ctx context.Context, page, perPage int) (Page[db.EResource], error) {
	return paginate[db.EResource](ctx, s.eResourceQuery(), page, perPage)
}

func (s *LibraryService) Policies(ctx context.Context, page, perPage int) (Page[db.LibraryPolicy], error) {
	return paginate[db.LibraryPolicy](ctx, s.db.Model(&db.LibraryPolicy{}).Order("id asc"), page, perPage)
}

// Resources 汇总图书馆页面所需的全部数据；馆长致辞缺失时为 nil。
func (s *LibraryService) Resources(ctx context.Context) (LibraryResources, error) {
	var res LibraryResources

	page, err := s.Page(ctx)
	if err != nil {
		return res, err
	}
	res.Page = page

	if err := s.eResourceQuery().WithContext(ctx).Find(&res.EResources).Error; err != nil {
		return res, err
	}
	if err := s.db.WithContext(ctx).Order("id asc").Find(&res.Policies).Error; err != nil {
		return res, err
	}

	msg, err := s.LibrarianMessage(ctx)
	if err != nil && !errors.Is(err, ErrLibrarianMessageNotFound) {
		return res, err
	}
	res.LibrarianMessage = msg
	return res, nil
}

func (s *LibraryService) CreateEResource(ctx context.Context, input EResourceInput) (*db.EResource, error) {
	if !db.IsResourceCategory(input.Category) {
		return nil, invalidChoice("category", input.Category)
	}
	item := db.EResource{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		URL:         strings.TrimSpace(input.URL),
		Category:    input.Category,
	}
	replaceImage(&item.Icon, &item.IconThumbnail, input.Icon)
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *LibraryService) UpdateEResource(ctx context.Context, id uint, input EResourceInput) (item *db.EResource, obsolete []string, err error) {
	if !db.IsResourceCategory(input.Category) {
		return nil, nil, invalidChoice("category", input.Category)
	}
	item, err = firstByID[db.EResource](ctx, s.db, id, ErrEResourceNotFound)
	if err != nil {
		return nil, nil, err
	}
	item.Name = strings.TrimSpace(input.Name)
	item.Description = input.Description
	item.URL = strings.TrimSpace(input.URL)
	item.Category = input.Category
	obsolete = replaceImage(&item.Icon, &item.IconThumbnail, input.Icon)
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, nil, err
	}
	return item, obsolete, nil
}

func (s *LibraryService) DeleteEResource(ctx context.Context, id uint) ([]string, error) {
	item, err := firstByID[db.EResource](ctx, s.db, id, ErrEResourceNotFound)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(item).Error; err != nil {
		return nil, err
	}
	return StoredImage{Path: item.Icon, Thumbnail: item.IconThumbnail}.Files(), nil
}
