package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// FieldError 单个字段的业务校验失败，handler 输出为 {field: [message]}。
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func invalidChoice(field, value string) error {
	return &FieldError{Field: field, Message: fmt.Sprintf("%q is not a valid choice.", value)}
}

func requiredField(field string) error {
	return &FieldError{Field: field, Message: "This field is required."}
}

func alreadyExists(field, entity string) error {
	return &FieldError{Field: field, Message: fmt.Sprintf("%s with this %s already exists.", entity, field)}
}

// StoredImage 已写入媒体目录的图片，路径相对于媒体根目录。
type StoredImage struct {
	Path      string
	Thumbnail string
}

// Files 返回非空的文件路径。
func (img StoredImage) Files() []string {
	var files []string
	for _, p := range []string{img.Path, img.Thumbnail} {
		if strings.TrimSpace(p) != "" {
			files = append(files, p)
		}
	}
	return files
}

// replaceImage 用 img 覆盖原图与缩略图字段，返回被替换下来的文件。img 为 nil 时保持不变。
func replaceImage(path, thumb *string, img *StoredImage) []string {
	if img == nil {
		return nil
	}
	old := StoredImage{Path: *path, Thumbnail: *thumb}.Files()
	*path, *thumb = img.Path, img.Thumbnail
	return old
}

// replaceFile 同 replaceImage，用于不带缩略图的字段。
func replaceFile(path *string, img *StoredImage) []string {
	if img == nil {
		return nil
	}
	old := StoredImage{Path: *path}.Files()
	*path = img.Path
	return old
}

// takenBy 检查 column=value 是否已被 id 以外的行占用。
func takenBy(ctx context.Context, gdb *gorm.DB, model interface{}, column, value string, id uint) (bool, error) {
	var count int64
	query := gdb.WithContext(ctx).Model(model).Where(column+" = ?", value)
	if id != 0 {
		query = query.Where("id <> ?", id)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// firstByID 按主键读取一行，不存在时返回 notFound。
func firstByID[T any](ctx context.Context, gdb *gorm.DB, id uint, notFound error, scopes ...func(*gorm.DB) *gorm.DB) (*T, error) {
	var item T
	if err := gdb.WithContext(ctx).Scopes(scopes...).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, err
	}
	return &item, nil
}
