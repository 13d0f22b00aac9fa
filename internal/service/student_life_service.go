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
	ErrServiceNotFound  = errors.New("service not found")
	ErrFacilityNotFound = errors.New("facility not found")
)

// StudentLifeService 提供学生服务与校园设施。
type StudentLifeService struct {
	db *gorm.DB
}

// ServiceInput 后台写入学生服务的字段，新建时必须带图片。
type ServiceInput struct {
	Name        string
	Description string
	SortOrder   int
	Image       *StoredImage
}

// FacilityInput 后台写入设施的字段。Recreation 为 nil 时移除娱乐详情。
type FacilityInput struct {
	Name        string
	Description string
	Category    string
	Image       *StoredImage
	Recreation  *RecreationInput
}

type RecreationInput struct {
	Capacity           *int
	Availability       string
	EquipmentAvailable string
	RulesRegulations   string
}

// StudentLifeOverview 学生服务、设施及其中的娱乐设施。
type StudentLifeOverview struct {
	Services             []db.Service
	Facilities           []db.Facility
	RecreationFacilities []db.Facility
}

func NewStudentLifeService(gdb *gorm.DB) *StudentLifeService {
	return &StudentLifeService{db: gdb}
}

func (s *StudentLifeService) serviceQuery() *gorm.DB {
	return s.db.Model(&db.Service{}).Order("sort_order asc").Order("name asc")
}

func (s *StudentLifeService) Services(ctx context.Context, page, perPage int) (Page[db.Service], error) {
	return paginate[db.Service](ctx, s.serviceQuery(), page, perPage)
}

func (s *StudentLifeService) Service(ctx context.Context, id uint) (*db.Service, error) {
	return firstByID[db.Service](ctx, s.db, id, ErrServiceNotFound)
}

func withRecreation(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Recreation")
}

func (s *StudentLifeService) facilityQuery(category string) *gorm.DB {
	query := s.db.Model(&db.Facility{})
	if category = strings.TrimSpace(category); category != "" {
		query = query.Where("category = ?", category)
	}
	return query.Order("category asc").Order("name asc")
}

// recreationQuery 只保留带娱乐详情的设施。
func (s *StudentLifeService) recreationQuery() *gorm.DB {
	return s.db.Model(&db.Facility{}).
		Where("EXISTS (SELECT 1 FROM recreation_details rd WHERE rd.facility_id = facilities.id)").
		Order("category asc").
		Order("name asc")
}

// Facilities 分页列出设施，可按分类过滤。
func (s *StudentLifeService) Facilities(ctx context.Context, category string, page, perPage int) (Page[db.Facility], error) {
	return paginate[db.Facility](ctx, s.facilityQuery(category), page, perPage, withRecreation)
}

func (s *StudentLifeService) RecreationFacilities(ctx context.Context, page, perPage int) (Page[db.Facility], error) {
	return paginate[db.Facility](ctx, s.recreationQuery(), page, perPage, withRecreation)
}

// RecreationFacility 只返回带娱乐详情的设施。
func (s *StudentLifeService) RecreationFacility(ctx context.Context, id uint) (*db.Facility, error) {
	var item db.Facility
	if err := s.recreationQuery().WithContext(ctx).Scopes(withRecreation).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *StudentLifeService) Overview(ctx context.Context) (StudentLifeOverview, error) {
	var out StudentLifeOverview
	if err := s.serviceQuery().WithContext(ctx).Find(&out.Services).Error; err != nil {
		return out, err
	}
	if err := s.facilityQuery("").WithContext(ctx).Scopes(withRecreation).Find(&out.Facilities).Error; err != nil {
		return out, err
	}
	if err := s.recreationQuery().WithContext(ctx).Scopes(withRecreation).Find(&out.RecreationFacilities).Error; err != nil {
		return out, err
	}
	return out, nil
}

func (s *StudentLifeService) CreateService(ctx context.Context, input ServiceInput) (*db.Service, error) {
	if input.Image == nil {
		return nil, requiredField("image")
	}
	item := db.Service{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		SortOrder:   input.SortOrder,
	}
	replaceImage(&item.Image, &item.ImageThumbnail, input.Image)
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *StudentLifeService) UpdateService(ctx context.Context, id uint, input ServiceInput) (item *db.Service, obsolete []string, err error) {
	item, err = s.Service(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	item.Name = strings.TrimSpace(input.Name)
	item.Description = input.Description
	item.SortOrder = input.SortOrder
	obsolete = replaceImage(&item.Image, &item.ImageThumbnail, input.Image)
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, nil, err
	}
	return item, obsolete, nil
}

func (s *StudentLifeService) DeleteService(ctx context.Context, id uint) ([]string, error) {
	item, err := s.Service(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(item).Error; err != nil {
		return nil, err
	}
	return StoredImage{Path: item.Image, Thumbnail: item.ImageThumbnail}.Files(), nil
}

func (s *StudentLifeService) Facility(ctx context.Context, id uint) (*db.Facility, error) {
	return firstByID[db.Facility](ctx, s.db, id, ErrFacilityNotFound, withRecreation)
}

// saveRecreation 按 input 写入或移除设施的娱乐详情。
func saveRecreation(tx *gorm.DB, facilityID uint, input *RecreationInput) error {
	if input == nil {
		return tx.Where("facility_id = ?", facilityID).Delete(&db.RecreationDetail{}).Error
	}
	if input.Capacity != nil && *input.Capacity < 0 {
		return &FieldError{Field: "capacity", Message: "Ensure this value is greater than or equal to 0."}
	}
	detail := db.RecreationDetail{FacilityID: facilityID}
	if err := tx.Where("facility_id = ?", facilityID).FirstOrInit(&detail).Error; err != nil {
		return err
	}
	detail.Capacity = input.Capacity
	detail.Availability = strings.TrimSpace(input.Availability)
	detail.EquipmentAvailable = input.EquipmentAvailable
	detail.RulesRegulations = input.RulesRegulations
	return tx.Save(&detail).Error
}

func (s *StudentLifeService) CreateFacility(ctx context.Context, input FacilityInput) (*db.Facility, error) {
	if !db.IsFacilityCategory(input.Category) {
		return nil, invalidChoice("category", input.Category)
	}
	if input.Image == nil {
		return nil, requiredField("image")
	}
	item := db.Facility{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Category:    input.Category,
	}
	replaceImage(&item.Image, &item.ImageThumbnail, input.Image)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&item).Error; err != nil {
			return err
		}
		return saveRecreation(tx, item.ID, input.Recreation)
	})
	if err != nil {
		return nil, err
	}
	return s.Facility(ctx, item.ID)
}

func (s *StudentLifeService) UpdateFacility(ctx context.Context, id uint, input FacilityInput) (item *db.Facility, obsolete []string, err error) {
	if !db.IsFacilityCategory(input.Category) {
		return nil, nil, invalidChoice("category", input.Category)
	}
	item, err = s.Facility(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	item.Name = strings.TrimSpace(input.Name)
	item.Description = input.Description
	item.Category = input.Category
	obsolete = replaceImage(&item.Image, &item.ImageThumbnail, input.Image)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(item).Error; err != nil {
			return err
		}
		return saveRecreation(tx, id, input.Recreation)
	})
	if err != nil {
		return nil, nil, err
	}
	item, err = s.Facility(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return item, obsolete, nil
}

// DeleteFacility 删除设施及其娱乐详情，返回设施图片文件。
func (s *StudentLifeService) DeleteFacility(ctx context.Context, id uint) ([]string, error) {
	item, err := s.Facility(ctx, id)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("facility_id = ?", id).Delete(&db.RecreationDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db.Facility{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return StoredImage{Path: item.Image, Thumbnail: item.ImageThumbnail}.Files(), nil
}
