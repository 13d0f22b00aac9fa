package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SingletonKey 所有单例内容行的固定主键。
const SingletonKey uint = 1

// ErrSingletonDefaults 默认内容缺少必填字段。
var ErrSingletonDefaults = errors.New("singleton defaults are incomplete")

var defaultsValidator = validator.New()

// Keyed 由可在插入前指定主键的模型实现。
type Keyed[T any] interface {
	*T
	SetID(id uint)
}

// ResolveSingleton 返回 key 对应的行，不存在时用 defaults 写入，created 表示本次调用执行了插入。
// 插入依赖主键约束：并发创建中落败的一方会重新读取胜出的行。
func ResolveSingleton[T any, PT Keyed[T]](ctx context.Context, gdb *gorm.DB, key uint, defaults T) (*T, bool, error) {
	row, err := LookupSingleton[T](ctx, gdb, key)
	if err == nil {
		return row, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if err := defaultsValidator.StructCtx(ctx, defaults); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrSingletonDefaults, err)
	}

	candidate := defaults
	PT(&candidate).SetID(key)

	result := gdb.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&candidate)
	if result.Error != nil {
		return nil, false, fmt.Errorf("create singleton %d: %w", key, result.Error)
	}
	if result.RowsAffected == 1 {
		return &candidate, true, nil
	}

	winner, err := LookupSingleton[T](ctx, gdb, key)
	if err != nil {
		return nil, false, fmt.Errorf("reload singleton %d: %w", key, err)
	}
	return winner, false, nil
}

// LookupSingleton 只读取 key 对应的行，不会创建。
// 行不存在时返回 gorm.ErrRecordNotFound。
func LookupSingleton[T any](ctx context.Context, gdb *gorm.DB, key uint) (*T, error) {
	var row T
	if err := gdb.WithContext(ctx).First(&row, key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load singleton %d: %w", key, err)
	}
	return &row, nil
}
