package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr        string
	Port              string
	DatabasePath      string
	SessionSecret     string
	GinMode           string
	MediaDir          string
	MediaURLPath      string
	SiteBaseURL       string
	SuperRootUserName string
	SuperRootPassword string
	PageSize          int
	CORSOrigins       []string
	LogLevel          string
	LogFormat         string
	Email             EmailConfig
}

// EmailConfig 描述通知邮件的发送方式。
type EmailConfig struct {
	Backend           string
	SendgridAPIKey    string
	FromAddress       string
	FromName          string
	ContactRecipients string
}

const (
	EmailBackendConsole  = "console"
	EmailBackendSendgrid = "sendgrid"
	EmailBackendNone     = "none"
)

// Load 从 .env 与环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	loadDotEnv(strings.TrimSpace(os.Getenv("ENV_FILE")))

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_PATH", "campuscms.db")
	v.SetDefault("SESSION_SECRET", "campuscms-dev-secret")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("MEDIA_DIR", "media")
	v.SetDefault("MEDIA_URL_PATH", "/media")
	v.SetDefault("SITE_BASE_URL", "http://localhost:8080")
	v.SetDefault("PAGE_SIZE", 20)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("EMAIL_BACKEND", EmailBackendConsole)
	v.SetDefault("DEFAULT_FROM_EMAIL", "noreply@localhost")
	v.SetDefault("DEFAULT_FROM_NAME", "Campus Website")
	v.SetDefault("CONTACT_RECIPIENTS", "admin@niru.ac.ke")

	port := strings.TrimSpace(v.GetString("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(v.GetString("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	pageSize := v.GetInt("PAGE_SIZE")
	if pageSize <= 0 {
		pageSize = 20
	}

	backend := strings.ToLower(strings.TrimSpace(v.GetString("EMAIL_BACKEND")))
	switch backend {
	case EmailBackendConsole, EmailBackendSendgrid, EmailBackendNone:
	default:
		backend = EmailBackendConsole
	}

	return AppConfig{
		ListenAddr:        listenAddr,
		Port:              port,
		DatabasePath:      strings.TrimSpace(v.GetString("DATABASE_PATH")),
		SessionSecret:     strings.TrimSpace(v.GetString("SESSION_SECRET")),
		GinMode:           strings.TrimSpace(v.GetString("GIN_MODE")),
		MediaDir:          strings.TrimSpace(v.GetString("MEDIA_DIR")),
		MediaURLPath:      normalizeURLPath(v.GetString("MEDIA_URL_PATH")),
		SiteBaseURL:       strings.TrimRight(strings.TrimSpace(v.GetString("SITE_BASE_URL")), "/"),
		SuperRootUserName: strings.TrimSpace(v.GetString("SUPER_ROOT_USER_NAME")),
		SuperRootPassword: strings.TrimSpace(v.GetString("SUPER_ROOT_PASSWORD")),
		PageSize:          pageSize,
		CORSOrigins:       splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		LogLevel:          strings.TrimSpace(v.GetString("LOG_LEVEL")),
		LogFormat:         strings.TrimSpace(v.GetString("LOG_FORMAT")),
		Email: EmailConfig{
			Backend:           backend,
			SendgridAPIKey:    strings.TrimSpace(v.GetString("SENDGRID_API_KEY")),
			FromAddress:       strings.TrimSpace(v.GetString("DEFAULT_FROM_EMAIL")),
			FromName:          strings.TrimSpace(v.GetString("DEFAULT_FROM_NAME")),
			ContactRecipients: strings.TrimSpace(v.GetString("CONTACT_RECIPIENTS")),
		},
	}
}

// loadDotEnv 读取可选的 .env 文件，已存在的环境变量优先。
func loadDotEnv(path string) {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	_ = godotenv.Load(path)
}

func normalizeURLPath(raw string) string {
	trimmed := strings.Trim(strings.TrimSpace(raw), "/")
	if trimmed == "" {
		return "/media"
	}
	return "/" + trimmed
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
