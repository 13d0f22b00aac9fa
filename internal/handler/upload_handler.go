package handler

import (
	"errors"
	"net/http"

	"github.com/campuscms/internal/media"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UploadImage 处理图片上传请求，?kind=icon|card|news|photo 决定缩略图尺寸。
func (a *API) UploadImage(c *gin.Context) {
	kind, err := media.ParseKind(c.DefaultQuery("kind", string(media.KindCard)))
	if err != nil || kind == media.KindHero {
		respondError(c, http.StatusBadRequest, "kind must be one of icon, card, news, photo")
		return
	}

	// 获取上传的文件
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "image file is required")
		return
	}
	if file.Size > media.MaxUploadBytes {
		respondError(c, http.StatusRequestEntityTooLarge, media.ErrImageTooLarge.Error())
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "unable to read uploaded image")
		return
	}
	defer src.Close()

	stored, err := a.media.SaveImage(src, kind)
	if err != nil {
		a.respondUploadError(c, err)
		return
	}

	a.log.WithFields(logrus.Fields{
		"kind": kind,
		"path": stored.Path,
	}).Info("image uploaded")

	c.JSON(http.StatusCreated, gin.H{
		"path":          stored.Path,
		"thumbnail":     stored.Thumbnail,
		"url":           a.mediaURL(c, stored.Path),
		"thumbnail_url": a.mediaURL(c, stored.Thumbnail),
		"width":         stored.Width,
		"height":        stored.Height,
	})
}

func (a *API) respondUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, media.ErrUnsupportedImage):
		respondError(c, http.StatusBadRequest, "only JPEG, PNG, GIF and WebP images are supported")
	case errors.Is(err, media.ErrImageTooLarge):
		respondError(c, http.StatusRequestEntityTooLarge, err.Error())
	default:
		a.respondServerError(c, err, "failed to store image")
	}
}
