package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/campuscms/internal/service"
	"github.com/campuscms/internal/validate"
	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondServerError 记录错误并返回通用的 500 响应。
func (a *API) respondServerError(c *gin.Context, err error, message string) {
	_ = c.Error(err)
	a.log.WithError(err).WithField("path", c.Request.URL.Path).Error(message)
	respondError(c, http.StatusInternalServerError, message)
}

// bindAndValidate 解析 JSON 请求体并执行结构体校验，失败时返回 {字段: [消息]}。
func bindAndValidate(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return false
	}
	return validateInput(c, dst)
}

func validateInput(c *gin.Context, dst interface{}) bool {
	if err := validate.Struct(dst); err != nil {
		if fields := validate.FieldErrors(err); fields != nil {
			c.JSON(http.StatusBadRequest, fields)
			return false
		}
		respondError(c, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// parseBoolQuery 参数缺失或为空时返回 nil。
func parseBoolQuery(c *gin.Context, key string) *bool {
	raw := strings.ToLower(strings.TrimSpace(c.Query(key)))
	if raw == "" {
		return nil
	}
	value := raw == "true" || raw == "1" || raw == "yes"
	return &value
}

// requestedPage 读取 ?page=，非法值视为越界页。
func requestedPage(c *gin.Context) (int, bool) {
	raw := strings.TrimSpace(c.Query("page"))
	if raw == "" {
		return 1, true
	}
	if raw == "last" {
		return -1, true
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, false
	}
	return page, true
}

// requestBaseURL 依据请求构造 scheme://host，优先使用反向代理头。
func (a *API) requestBaseURL(c *gin.Context) string {
	if c == nil || c.Request == nil || strings.TrimSpace(c.Request.Host) == "" {
		return strings.TrimRight(a.siteBaseURL, "/")
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if forwarded := strings.TrimSpace(c.GetHeader("X-Forwarded-Proto")); forwarded != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(forwarded, ",")[0]))
	}
	host := c.Request.Host
	if forwardedHost := strings.TrimSpace(c.GetHeader("X-Forwarded-Host")); forwardedHost != "" {
		host = strings.TrimSpace(strings.Split(forwardedHost, ",")[0])
	}
	return scheme + "://" + host
}

// mediaURL 返回媒体文件的绝对地址，空路径返回 nil 以序列化为 null。
func (a *API) mediaURL(c *gin.Context, rel string) interface{} {
	path := a.media.URL(rel)
	if path == "" {
		return nil
	}
	return a.requestBaseURL(c) + path
}

// pageLink 生成当前列表指定页的绝对地址。
func (a *API) pageLink(c *gin.Context, page int) string {
	u := url.URL{Path: c.Request.URL.Path}
	query := c.Request.URL.Query()
	if page <= 1 {
		query.Del("page")
	} else {
		query.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = query.Encode()
	return a.requestBaseURL(c) + u.String()
}

// respondPage 输出 {count, next, previous, results} 分页结构。
func respondPage[T any](a *API, c *gin.Context, page service.Page[T], serialize func(T) gin.H) {
	results := make([]gin.H, 0, len(page.Items))
	for _, item := range page.Items {
		results = append(results, serialize(item))
	}

	var next, previous interface{}
	if page.HasNext() {
		next = a.pageLink(c, page.Page+1)
	}
	if page.HasPrevious() {
		previous = a.pageLink(c, page.Page-1)
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    page.Total,
		"next":     next,
		"previous": previous,
		"results":  results,
	})
}

// listPage 处理分页参数与越界页，load 负责实际查询。
func listPage[T any](a *API, c *gin.Context, load func(page, perPage int) (service.Page[T], error), serialize func(T) gin.H) {
	pageNumber, ok := requestedPage(c)
	if !ok {
		respondError(c, http.StatusNotFound, "Invalid page.")
		return
	}

	if pageNumber == -1 {
		first, err := load(1, a.pageSize)
		if err != nil {
			a.respondServerError(c, err, "failed to load list")
			return
		}
		pageNumber = first.TotalPages
	}

	page, err := load(pageNumber, a.pageSize)
	if err != nil {
		if errors.Is(err, service.ErrPageOutOfRange) {
			respondError(c, http.StatusNotFound, "Invalid page.")
			return
		}
		a.respondServerError(c, err, "failed to load list")
		return
	}
	respondPage(a, c, page, serialize)
}

func serializeAll[T any](items []T, serialize func(T) gin.H) []gin.H {
	out := make([]gin.H, 0, len(items))
	for _, item := range items {
		out = append(out, serialize(item))
	}
	return out
}
