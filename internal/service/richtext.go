package service

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML(), html.WithUnsafe()),
	)
	sanitizer = buildContentSanitizer()

	videoEmbedSrcPattern = regexp.MustCompile(`^https://(?:www\.)?(?:youtube\.com/embed/|youtube-nocookie\.com/embed/|player\.vimeo\.com/video/)`)
)

// buildContentSanitizer 在 UGC 策略基础上放行视频平台的 iframe 嵌入。
func buildContentSanitizer() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("iframe")
	policy.AllowAttrs("src").Matching(videoEmbedSrcPattern).OnElements("iframe")
	policy.AllowAttrs("title", "allow", "allowfullscreen", "frameborder", "loading", "referrerpolicy", "sandbox").OnElements("iframe")
	// 仅放行颜色与对齐，其余 CSS 属性一律丢弃
	policy.AllowStyles("color", "text-align").OnElements("span", "p")
	return policy
}

// SanitizeHTML 清理后台写入的富文本，只保留安全标签。
func SanitizeHTML(raw string) string {
	return strings.TrimSpace(sanitizer.Sanitize(raw))
}

// RenderMarkdown 将 Markdown（或内嵌 HTML）渲染为清理后的 HTML。
func RenderMarkdown(source string) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(source), &buf); err != nil {
		return SanitizeHTML(source)
	}
	return strings.TrimSpace(string(sanitizer.SanitizeBytes(buf.Bytes())))
}
