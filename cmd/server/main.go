package main

import (
	"os"

	"github.com/campuscms/internal/config"
	"github.com/campuscms/internal/db"
	"github.com/campuscms/internal/handler"
	"github.com/campuscms/internal/logging"
	"github.com/campuscms/internal/mail"
	"github.com/campuscms/internal/router"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	log := logging.Log

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}

	if err := db.EnsureUser(db.DB, cfg.SuperRootUserName, cfg.SuperRootPassword); err != nil {
		log.WithError(err).Fatal("failed to ensure super root user")
	}

	if err := os.MkdirAll(cfg.MediaDir, 0o755); err != nil {
		log.WithError(err).WithField("dir", cfg.MediaDir).Fatal("failed to create media directory")
	}

	api := handler.NewAPI(db.DB, handler.Options{
		MediaDir:          cfg.MediaDir,
		MediaURLPath:      cfg.MediaURLPath,
		SiteBaseURL:       cfg.SiteBaseURL,
		PageSize:          cfg.PageSize,
		ContactRecipients: cfg.Email.ContactRecipients,
		Mailer:            mail.NewSender(cfg.Email, log),
		Logger:            log,
	})

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(cfg, api)
	log.WithField("addr", cfg.ListenAddr).Info("server starting")
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.WithError(err).Fatal("failed to run server")
	}
}
