package service

import (
	"context"
	"errors"
	"strings"

	"github.com/campuscms/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrHeroNotFound       = errors.New("page hero not found")
	ErrHeroPageInvalid    = errors.New("page identifier is invalid")
	ErrHeroOpacityInvalid = errors.New("overlay opacity must be between 0 and 100")
)

// HeroService 管理各页面顶部横幅。
type HeroService struct {
	db *gorm.DB
}

// HeroInput 创建或更新横幅时接受的字段。
// 指针为 nil 时保留原值，BackgroundImage 为空时保留原背景图。
type HeroInput struct {
	Title           string
	Subtitle        string
	BackgroundImage string
	OverlayOpacity  *int
	IsActive        *bool
}

type heroDefault struct {
	Identifier string
	Title      string
	Subtitle   string
}

var heroDefaults = []heroDefault{
	{db.PageHome, "National Intelligence and Research University", "Premier Science and Research-Intensive African University"},
	{db.PageAbout, "About NIRU", "Our History, Mission and Vision"},
	{db.PageGovernance, "Governance", "Leadership and Administrative Structure"},
	{db.PageProgrammes, "Academic Programmes", "Empowering Future Leaders in Intelligence and Strategy"},
	{db.PageProgrammeDetail, "", ""},
	{db.PageLibrary, "Library", "Resources for Academic Excellence"},
	{db.PageStudentLife, "Student Life", "Support and Services"},
	{db.PageRecreation, "Recreation", "Facilities for Wellness and Fitness"},
	{db.PageResearch, "Research", "Advancing Knowledge and Innovation"},
	{db.PageNewsEvents, "News & Events", "Latest Updates from NIRU"},
	{db.PageContact, "Contact Us", "Get in Touch"},
}

func NewHeroService(gdb *gorm.DB) *HeroService {
	return &HeroService{db: gdb}
}

// Active 返回指定页面且处于启用状态的横幅，从不自动创建。
func (s *HeroService) Active(ctx context.Context, identifier string) (*db.PageHero, error) {
	identifier = strings.TrimSpace(identifier)
	if !db.IsHeroPage(identifier) {
		return nil, ErrHeroNotFound
	}

	var hero db.PageHero
	err := s.db.WithContext(ctx).
		Where("page_identifier = ? AND is_active = ?", identifier, true).
		First(&hero).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHeroNotFound
		}
		return nil, err
	}
	return &hero, nil
}

// List 按页面标识返回全部横幅。
func (s *HeroService) List(ctx context.Context) ([]db.PageHero, error) {
	var heroes []db.PageHero
	if err := s.db.WithContext(ctx).Order("page_identifier asc").Find(&heroes).Error; err != nil {
		return nil, err
	}
	return heroes, nil
}

// Upsert 创建或更新页面横幅，新背景图替换旧图时 replaced 为旧图路径。
func (s *HeroService) Upsert(ctx context.Context, identifier string, input HeroInput) (hero *db.PageHero, replaced string, err error) {
	identifier = strings.TrimSpace(identifier)
	if !db.IsHeroPage(identifier) {
		return nil, "", ErrHeroPageInvalid
	}
	if input.OverlayOpacity != nil && (*input.OverlayOpacity < 0 || *input.OverlayOpacity > 100) {
		return nil, "", ErrHeroOpacityInvalid
	}

	var item db.PageHero
	err = s.db.WithContext(ctx).Where("page_identifier = ?", identifier).First(&item).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = db.PageHero{
			PageIdentifier: identifier,
			OverlayOpacity: db.DefaultOverlayOpacity,
			IsActive:       true,
		}
	case err != nil:
		return nil, "", err
	}

	item.Title = strings.TrimSpace(input.Title)
	item.Subtitle = strings.TrimSpace(input.Subtitle)
	if image := strings.TrimSpace(input.BackgroundImage); image != "" {
		if item.BackgroundImage != image {
			replaced = item.BackgroundImage
		}
		item.BackgroundImage = image
	}
	if input.OverlayOpacity != nil {
		item.OverlayOpacity = *input.OverlayOpacity
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	if err := s.db.WithContext(ctx).Save(&item).Error; err != nil {
		return nil, "", err
	}
	return &item, replaced, nil
}

// Delete 删除页面横幅并返回被删除的行。
func (s *HeroService) Delete(ctx context.Context, identifier string) (*db.PageHero, error) {
	var item db.PageHero
	if err := s.db.WithContext(ctx).Where("page_identifier = ?", strings.TrimSpace(identifier)).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHeroNotFound
		}
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// SeedDefaults 写入默认横幅文案。新建的横幅没有背景图，保持停用直到上传图片。
// force 为 true 时覆盖已有横幅的标题与副标题。
func (s *HeroService) SeedDefaults(ctx context.Context, force bool) (int64, error) {
	conflict := clause.OnConflict{Columns: []clause.Column{{Name: "page_identifier"}}, DoNothing: true}
	if force {
		conflict = clause.OnConflict{
			Columns:   []clause.Column{{Name: "page_identifier"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "subtitle", "overlay_opacity", "updated_at"}),
		}
	}

	var affected int64
	for _, def := range heroDefaults {
		hero := db.PageHero{
			PageIdentifier: def.Identifier,
			Title:          def.Title,
			Subtitle:       def.Subtitle,
			OverlayOpacity: db.DefaultOverlayOpacity,
			IsActive:       false,
		}
		result := s.db.WithContext(ctx).Clauses(conflict).Create(&hero)
		if result.Error != nil {
			return affected, result.Error
		}
		affected += result.RowsAffected
	}
	return affected, nil
}
