package service

import (
	"context"
	"errors"
	"strings"

	"github.com/campuscms/internal/db"
	"gorm.io/gorm"
)

var (
	ErrVCMessageNotFound = errors.New("vice chancellor message not found")
	ErrCoreValueNotFound = errors.New("core value not found")
)

// AboutService 提供关于我们页面的内容。
type AboutService struct {
	db *gorm.DB
}

// AboutPageInput 后台更新关于页面时接受的字段。
type AboutPageInput struct {
	Mission string
	Vision  string
	History string
}

// CoreValueInput 后台写入核心价值的字段，Icon 为 nil 时保留原图标。
type CoreValueInput struct {
	Title       string
	Description string
	Icon        *StoredImage
}

// AboutOverview 关于页面渲染所需的全部数据。
type AboutOverview struct {
	Page       *db.AboutPage
	CoreValues []db.CoreValue
	VCMessage  *db.ViceChancellorMessage
}

func NewAboutService(gdb *gorm.DB) *AboutService {
	return &AboutService{db: gdb}
}

// Page 返回关于页单例，首次访问时写入默认内容。
func (s *AboutService) Page(ctx context.Context) (*db.AboutPage, error) {
	page, _, err := db.ResolveSingleton(ctx, s.db, db.SingletonKey, db.DefaultAboutPage())
	return page, err
}

func (s *AboutService) UpdatePage(ctx context.Context, input AboutPageInput) (*db.AboutPage, error) {
	page, err := s.Page(ctx)
	if err != nil {
		return nil, err
	}
	page.Mission = SanitizeHTML(input.Mission)
	page.Vision = SanitizeHTML(input.Vision)
	page.History = SanitizeHTML(input.History)
	if err := s.db.WithContext(ctx).Save(page).Error; err != nil {
		return nil, err
	}
	return page, nil
}

func (s *AboutService) CoreValues(ctx context.Context, page, perPage int) (Page[db.CoreValue], error) {
	return paginate[db.CoreValue](ctx, s.db.Model(&db.CoreValue{}).Order("id asc"), page, perPage)
}

func (s *AboutService) AllCoreValues(ctx context.Context) ([]db.CoreValue, error) {
	var items []db.CoreValue
	if err := s.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// VCMessage 返回第一条校长致辞。
func (s *AboutService) VCMessage(ctx context.Context) (*db.ViceChancellorMessage, error) {
	var msg db.ViceChancellorMessage
	if err := s.db.WithContext(ctx).Order("id asc").First(&msg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVCMessageNotFound
		}
		return nil, err
	}
	return &msg, nil
}

// Overview 汇总关于页、核心价值与校长致辞；致辞缺失时为 nil。
func (s *AboutService) Overview(ctx context.Context) (AboutOverview, error) {
	var overview AboutOverview

	page, err := s.Page(ctx)
	if err != nil {
		return overview, err
	}
	overview.Page = page

	if overview.CoreValues, err = s.AllCoreValues(ctx); err != nil {
		return overview, err
	}

	msg, err := s.VCMessage(ctx)
	if err != nil && !errors.Is(err, ErrVCMessageNotFound) {
		return overview, err
	}
	overview.VCMessage = msg
	return overview, nil
}

func (s *AboutService) CreateCoreValue(ctx context.Context, input CoreValueInput) (*db.CoreValue, error) {
	item := db.CoreValue{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
	}
	replaceImage(&item.Icon, &item.IconThumbnail, input.Icon)
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateCoreValue 更新核心价值，obsolete 为被新图标替换下来的文件。
func (s *AboutService) UpdateCoreValue(ctx context.Context, id uint, input CoreValueInput) (item *db.CoreValue, obsolete []string, err error) {
	item, err = firstByID[db.CoreValue](ctx, s.db, id, ErrCoreValueNotFound)
	if err != nil {
		return nil, nil, err
	}
	item.Title = strings.TrimSpace(input.Title)
	item.Description = strings.TrimSpace(input.Description)
	obsolete = replaceImage(&item.Icon, &item.IconThumbnail, input.Icon)
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, nil, err
	}
	return item, obsolete, nil
}

// DeleteCoreValue 删除核心价值并返回其图标文件。
func (s *AboutService) DeleteCoreValue(ctx context.Context, id uint) ([]string, error) {
	item, err := firstByID[db.CoreValue](ctx, s.db, id, ErrCoreValueNotFound)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(item).Error; err != nil {
		return nil, err
	}
	return StoredImage{Path: item.Icon, Thumbnail: item.IconThumbnail}.Files(), nil
}
