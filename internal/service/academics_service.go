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
	ErrProgrammeNotFound = errors.New("programme not found")
	ErrHighlightNotFound = errors.New("programme highlight not found")
)

// ProgrammeInput 后台写入项目的字段。AdmissionRequirements 为 nil 时保留原列表，非 nil 时整体替换。
type ProgrammeInput struct {
	Name                             string
	Code                             string
	Slug                             string
	Description                      string
	Duration                         string
	Mode                             string
	Tagline                          string
	FullDescription                  string
	AdmissionRequirementsDescription string
	ApplicationNote                  string
	IsFeatured                       bool
	AdmissionRequirements            []string
}

type HighlightInput struct {
	Title       string
	Description string
	Icon        *StoredImage
}

// AcademicsService 提供学位项目及其亮点与入学要求。
type AcademicsService struct {
	db *gorm.DB
}

// ProgrammeDetails 项目详情页所需的聚合数据。
type ProgrammeDetails struct {
	Programme             *db.Programme
	Highlights            []db.ProgrammeHighlight
	AdmissionRequirements []db.AdmissionRequirement
}

func NewAcademicsService(gdb *gorm.DB) *AcademicsService {
	return &AcademicsService{db: gdb}
}

func withProgrammeChildren(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Highlights", func(tx *gorm.DB) *gorm.DB { return tx.Order("id asc") }).
		Preload("AdmissionRequirements", func(tx *gorm.DB) *gorm.DB { return tx.Order("id asc") })
}

func (s *AcademicsService) programmeQuery(featuredOnly bool) *gorm.DB {
	query := s.db.Model(&db.Programme{})
	if featuredOnly {
		query = query.Where("is_featured = ?", true)
	}
	return query.Order("is_featured desc").Order("name asc")
}

// Programmes 分页列出项目，featured 为 true 时只返回推荐项目。
func (s *AcademicsService) Programmes(ctx context.Context, featuredOnly bool, page, perPage int) (Page[db.Programme], error) {
	return paginate[db.Programme](ctx, s.programmeQuery(featuredOnly), page, perPage, withProgrammeChildren)
}

// Featured 返回全部推荐项目，不分页。
func (s *AcademicsService) Featured(ctx context.Context) ([]db.Programme, error) {
	var items []db.Programme
	if err := s.programmeQuery(true).WithContext(ctx).Scopes(withProgrammeChildren).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *AcademicsService) BySlug(ctx context.Context, slug string) (*db.Programme, error) {
	var item db.Programme
	err := s.db.WithContext(ctx).
		Scopes(withProgrammeChildren).
		Where("slug = ?", strings.TrimSpace(slug)).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgrammeNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Details 返回项目及其亮点与入学要求。
func (s *AcademicsService) Details(ctx context.Context, slug string) (ProgrammeDetails, error) {
	programme, err := s.BySlug(ctx, slug)
	if err != nil {
		return ProgrammeDetails{}, err
	}
	return ProgrammeDetails{
		Programme:             programme,
		Highlights:            programme.Highlights,
		AdmissionRequirements: programme.AdmissionRequirements,
	}, nil
}

func (s *AcademicsService) Highlights(ctx context.Context, page, perPage int) (Page[db.ProgrammeHighlight], error) {
	return paginate[db.ProgrammeHighlight](ctx, s.db.Model(&db.ProgrammeHighlight{}).Order("id asc"), page, perPage)
}

func (s *AcademicsService) AdmissionRequirements(ctx context.Context, page, perPage int) (Page[db.AdmissionRequirement], error) {
	return paginate[db.AdmissionRequirement](ctx, s.db.Model(&db.AdmissionRequirement{}).Order("id asc"), page, perPage)
}

func (in ProgrammeInput) apply(p *db.Programme) {
	p.Name = strings.TrimSpace(in.Name)
	p.Code = strings.TrimSpace(in.Code)
	p.Slug = db.Slugify(in.Slug)
	p.Description = in.Description
	p.Duration = strings.TrimSpace(in.Duration)
	p.Mode = in.Mode
	p.Tagline = strings.TrimSpace(in.Tagline)
	p.FullDescription = in.FullDescription
	p.AdmissionRequirementsDescription = in.AdmissionRequirementsDescription
	p.ApplicationNote = in.ApplicationNote
	p.IsFeatured = in.IsFeatured
}

// checkProgramme 校验学习模式以及 code/slug 的唯一性，id 为当前项目（新建时为 0）。
func (s *AcademicsService) checkProgramme(ctx context.Context, p *db.Programme, id uint) error {
	if !db.IsStudyMode(p.Mode) {
		return invalidChoice("mode", p.Mode)
	}
	taken, err := takenBy(ctx, s.db, &db.Programme{}, "code", p.Code, id)
	if err != nil {
		return err
	}
	if taken {
		return alreadyExists("code", "programme")
	}
	slug := p.Slug
	if slug == "" {
		slug = db.Slugify(p.Name)
	}
	if slug == "" {
		return requiredField("slug")
	}
	taken, err = takenBy(ctx, s.db, &db.Programme{}, "slug", slug, id)
	if err != nil {
		return err
	}
	if taken {
		return alreadyExists("slug", "programme")
	}
	return nil
}

func replaceRequirements(tx *gorm.DB, programmeID uint, requirements []string) error {
	if err := tx.Where("programme_id = ?", programmeID).Delete(&db.AdmissionRequirement{}).Error; err != nil {
		return err
	}
	rows := make([]db.AdmissionRequirement, 0, len(requirements))
	for _, r := range requirements {
		if r = strings.TrimSpace(r); r != "" {
			rows = append(rows, db.AdmissionRequirement{ProgrammeID: programmeID, Requirement: r})
		}
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

func (s *AcademicsService) CreateProgramme(ctx context.Context, input ProgrammeInput) (*db.Programme, error) {
	var item db.Programme
	input.apply(&item)
	if err := s.checkProgramme(ctx, &item, 0); err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&item).Error; err != nil {
			return err
		}
		return replaceRequirements(tx, item.ID, input.AdmissionRequirements)
	})
	if err != nil {
		return nil, err
	}
	return firstByID[db.Programme](ctx, s.db, item.ID, ErrProgrammeNotFound, withProgrammeChildren)
}

// UpdateProgramme 整体更新项目字段，亮点不受影响。
func (s *AcademicsService) UpdateProgramme(ctx context.Context, id uint, input ProgrammeInput) (*db.Programme, error) {
	item, err := firstByID[db.Programme](ctx, s.db, id, ErrProgrammeNotFound)
	if err != nil {
		return nil, err
	}
	input.apply(item)
	if err := s.checkProgramme(ctx, item, id); err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(item).Error; err != nil {
			return err
		}
		if input.AdmissionRequirements == nil {
			return nil
		}
		return replaceRequirements(tx, id, input.AdmissionRequirements)
	})
	if err != nil {
		return nil, err
	}
	return firstByID[db.Programme](ctx, s.db, id, ErrProgrammeNotFound, withProgrammeChildren)
}

// DeleteProgramme 删除项目及其亮点与入学要求，返回亮点图标文件。
func (s *AcademicsService) DeleteProgramme(ctx context.Context, id uint) ([]string, error) {
	item, err := firstByID[db.Programme](ctx, s.db, id, ErrProgrammeNotFound, withProgrammeChildren)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, h := range item.Highlights {
		files = append(files, StoredImage{Path: h.Icon, Thumbnail: h.IconThumbnail}.Files()...)
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("programme_id = ?", id).Delete(&db.ProgrammeHighlight{}).Error; err != nil {
			return err
		}
		if err := tx.Where("programme_id = ?", id).Delete(&db.AdmissionRequirement{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db.Programme{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (s *AcademicsService) CreateHighlight(ctx context.Context, programmeID uint, input HighlightInput) (*db.ProgrammeHighlight, error) {
	if _, err := firstByID[db.Programme](ctx, s.db, programmeID, ErrProgrammeNotFound); err != nil {
		return nil, err
	}
	item := db.ProgrammeHighlight{
		ProgrammeID: programmeID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
	}
	replaceImage(&item.Icon, &item.IconThumbnail, input.Icon)
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *AcademicsService) UpdateHighlight(ctx context.Context, id uint, input HighlightInput) (item *db.ProgrammeHighlight, obsolete []string, err error) {
	item, err = firstByID[db.ProgrammeHighlight](ctx, s.db, id, ErrHighlightNotFound)
	if err != nil {
		return nil, nil, err
	}
	item.Title = strings.TrimSpace(input.Title)
	item.Description = input.Description
	obsolete = replaceImage(&item.Icon, &item.IconThumbnail, input.Icon)
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, nil, err
	}
	return item, obsolete, nil
}

func (s *AcademicsService) DeleteHighlight(ctx context.Context, id uint) ([]string, error) {
	item, err := firstByID[db.ProgrammeHighlight](ctx, s.db, id, ErrHighlightNotFound)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(item).Error; err != nil {
		return nil, err
	}
	return StoredImage{Path: item.Icon, Thumbnail: item.IconThumbnail}.Files(), nil
}
