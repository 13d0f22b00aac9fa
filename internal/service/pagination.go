package service

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrPageOutOfRange 请求的页码超出结果范围。
var ErrPageOutOfRange = errors.New("invalid page")

// DefaultPageSize 调用方传入非正数页大小时使用。
const DefaultPageSize = 20

// Page 分页结果
type Page[T any] struct {
	Items      []T
	Total      int64
	Page       int
	PerPage    int
	TotalPages int
}

// HasNext 是否存在下一页。
func (p Page[T]) HasNext() bool {
	return p.Page < p.TotalPages
}

// HasPrevious 是否存在上一页。
func (p Page[T]) HasPrevious() bool {
	return p.Page > 1
}

// paginate 统计总数并读取一页数据。第 1 页始终有效，超出末页返回 ErrPageOutOfRange。
// scopes（预加载）只作用于取数查询。
func paginate[T any](ctx context.Context, query *gorm.DB, page, perPage int, load ...func(*gorm.DB) *gorm.DB) (Page[T], error) {
	result := Page[T]{
		Page:    normalizePage(page),
		PerPage: normalizePerPage(perPage, DefaultPageSize),
	}

	if err := query.WithContext(ctx).Session(&gorm.Session{}).Count(&result.Total).Error; err != nil {
		return result, err
	}

	result.TotalPages = calculateTotalPages(result.Total, result.PerPage)
	if result.Page > result.TotalPages {
		return result, ErrPageOutOfRange
	}

	offset := (result.Page - 1) * result.PerPage
	if err := query.WithContext(ctx).
		Scopes(load...).
		Limit(result.PerPage).
		Offset(offset).
		Find(&result.Items).Error; err != nil {
		return result, err
	}
	if result.Items == nil {
		result.Items = []T{}
	}
	return result, nil
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizePerPage(perPage, fallback int) int {
	if perPage <= 0 {
		return fallback
	}
	return perPage
}

func calculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	if total == 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
