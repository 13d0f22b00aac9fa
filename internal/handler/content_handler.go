package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/campuscms/internal/media"
	"github.com/campuscms/internal/service"
	"github.com/gin-gonic/gin"
)

// bindContent 按 Content-Type 解析 JSON 或 multipart 表单并执行结构体校验。
func bindContent(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBind(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return false
	}
	return validateInput(c, dst)
}

// contentUpload 记录一次请求内保存的图片，业务失败时回滚。
type contentUpload struct {
	api   *API
	saved []string
}

func (a *API) newContentUpload() *contentUpload {
	return &contentUpload{api: a}
}

// image 保存表单中的 field 图片。字段缺失时返回 nil；出错时已写好响应，ok 为 false。
func (u *contentUpload) image(c *gin.Context, field string, kind media.Kind) (img *service.StoredImage, ok bool) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, true
	}
	file, err := c.FormFile(field)
	if err != nil {
		return nil, true
	}
	if file.Size > media.MaxUploadBytes {
		respondError(c, http.StatusRequestEntityTooLarge, media.ErrImageTooLarge.Error())
		return nil, false
	}
	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "unable to read uploaded image")
		return nil, false
	}
	defer src.Close()

	stored, err := u.api.media.SaveImage(src, kind)
	if err != nil {
		u.api.respondUploadError(c, err)
		return nil, false
	}
	img = &service.StoredImage{Path: stored.Path, Thumbnail: stored.Thumbnail}
	u.saved = append(u.saved, img.Files()...)
	return img, true
}

// rollback 删除本次请求已写入的图片。
func (u *contentUpload) rollback() {
	u.api.discardMedia(u.saved...)
	u.saved = nil
}

// discardMedia 删除不再被引用的媒体文件，失败只记录日志。
func (a *API) discardMedia(paths ...string) {
	for _, p := range paths {
		if err := a.media.Delete(p); err != nil {
			a.log.WithError(err).WithField("path", p).Warn("failed to remove media file")
		}
	}
}

// respondContentError 将内容写入错误映射为响应：字段错误 400，notFound 404，其余 500。
func (a *API) respondContentError(c *gin.Context, err error, message string, notFound ...error) {
	var fieldErr *service.FieldError
	if errors.As(err, &fieldErr) {
		c.JSON(http.StatusBadRequest, gin.H{fieldErr.Field: []string{fieldErr.Message}})
		return
	}
	for _, target := range notFound {
		if errors.Is(err, target) {
			respondError(c, http.StatusNotFound, "Not found.")
			return
		}
	}
	a.respondServerError(c, err, message)
}

// contentID 解析路径中的 :id，非法时直接返回 404。
func contentID(c *gin.Context) (uint, bool) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Not found.")
		return 0, false
	}
	return id, true
}

// parseDateField 接受 RFC3339 或 YYYY-MM-DD，空串返回 nil。
func parseDateField(c *gin.Context, field, raw string) (*time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, true
		}
	}
	c.JSON(http.StatusBadRequest, gin.H{field: []string{"Datetime has wrong format. Use one of these formats instead: YYYY-MM-DDThh:mm:ssZ, YYYY-MM-DD."}})
	return nil, false
}
