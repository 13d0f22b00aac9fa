package service

import (
	"context"
	"errors"
	"strings"

	"github.com/campuscms/internal/db"
	"gorm.io/gorm"
)

var (
	ErrChancellorNotFound     = errors.New("chancellor not found")
	ErrGovernanceBodyNotFound = errors.New("governance body not found")
	ErrBoardMemberNotFound    = errors.New("board member not found")
)

// BoardMemberInput 后台写入董事会成员的字段，新建时必须带照片。
type BoardMemberInput struct {
	Name      string
	Position  string
	Bio       string
	BoardType string
	Photo     *StoredImage
}

// GovernanceService 提供校监、董事会成员与治理机构。
type GovernanceService struct {
	db *gorm.DB
}

// GovernanceStructure 校监与全部治理机构。
type GovernanceStructure struct {
	Chancellor *db.Chancellor
	Bodies     []db.GovernanceBody
}

func NewGovernanceService(gdb *gorm.DB) *GovernanceService {
	return &GovernanceService{db: gdb}
}

func (s *GovernanceService) Chancellor(ctx context.Context) (*db.Chancellor, error) {
	var item db.Chancellor
	if err := s.db.WithContext(ctx).Order("id asc").First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChancellorNotFound
		}
		return nil, err
	}
	return &item, nil
}

// BoardMembers 分页列出成员，可按董事会类型过滤。
func (s *GovernanceService) BoardMembers(ctx context.Context, boardType string, page, perPage int) (Page[db.BoardMember], error) {
	query := s.db.Model(&db.BoardMember{})
	if boardType = strings.TrimSpace(boardType); boardType != "" {
		query = query.Where("board_type = ?", boardType)
	}
	return paginate[db.BoardMember](ctx, query.Order("board_type asc").Order("name asc"), page, perPage)
}

func (s *GovernanceService) bodyQuery() *gorm.DB {
	return s.db.Model(&db.GovernanceBody{}).
		Order("display_order asc").
		Order("name asc")
}

func withMembers(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Members", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("board_type asc").Order("name asc")
	})
}

func (s *GovernanceService) Bodies(ctx context.Context, page, perPage int) (Page[db.GovernanceBody], error) {
	return paginate[db.GovernanceBody](ctx, s.bodyQuery(), page, perPage, withMembers)
}

func (s *GovernanceService) Body(ctx context.Context, id uint) (*db.GovernanceBody, error) {
	var body db.GovernanceBody
	if err := s.bodyQuery().WithContext(ctx).Scopes(withMembers).First(&body, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGovernanceBodyNotFound
		}
		return nil, err
	}
	return &body, nil
}

// Structure 汇总治理结构页数据；校监缺失时为 nil。
func (s *GovernanceService) Structure(ctx context.Context) (GovernanceStructure, error) {
	var out GovernanceStructure

	chancellor, err := s.Chancellor(ctx)
	if err != nil && !errors.Is(err, ErrChancellorNotFound) {
		return out, err
	}
	out.Chancellor = chancellor

	if err := s.bodyQuery().WithContext(ctx).Scopes(withMembers).Find(&out.Bodies).Error; err != nil {
		return out, err
	}
	return out, nil
}

func (s *GovernanceService) CreateBoardMember(ctx context.Context, input BoardMemberInput) (*db.BoardMember, error) {
	if !db.IsBoardType(input.BoardType) {
		return nil, invalidChoice("board_type", input.BoardType)
	}
	if input.Photo == nil {
		return nil, requiredField("photo")
	}
	item := db.BoardMember{
		Name:      strings.TrimSpace(input.Name),
		Position:  strings.TrimSpace(input.Position),
		Bio:       input.Bio,
		BoardType: input.BoardType,
		Photo:     input.Photo.Path,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *GovernanceService) UpdateBoardMember(ctx context.Context, id uint, input BoardMemberInput) (item *db.BoardMember, obsolete []string, err error) {
	if !db.IsBoardType(input.BoardType) {
		return nil, nil, invalidChoice("board_type", input.BoardType)
	}
	item, err = firstByID[db.BoardMember](ctx, s.db, id, ErrBoardMemberNotFound)
	if err != nil {
		return nil, nil, err
	}
	item.Name = strings.TrimSpace(input.Name)
	item.Position = strings.TrimSpace(input.Position)
	item.Bio = input.Bio
	item.BoardType = input.BoardType
	obsolete = replaceFile(&item.Photo, input.Photo)
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, nil, err
	}
	return item, obsolete, nil
}

// DeleteBoardMember 删除成员及其治理机构关联，返回照片文件。
func (s *GovernanceService) DeleteBoardMember(ctx context.Context, id uint) ([]string, error) {
	item, err := firstByID[db.BoardMember](ctx, s.db, id, ErrBoardMemberNotFound)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM governance_body_members WHERE board_member_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(item).Error
	})
	if err != nil {
		return nil, err
	}
	return StoredImage{Path: item.Photo}.Files(), nil
}
