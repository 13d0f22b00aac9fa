package main

import (
	"context"
	"flag"

	"github.com/campuscms/internal/config"
	"github.com/campuscms/internal/db"
	"github.com/campuscms/internal/logging"
	"github.com/campuscms/internal/seed"
)

func main() {
	force := flag.Bool("force", false, "reset site settings and page hero copy to defaults")
	demo := flag.Bool("demo", false, "also create sample news, a newsletter issue and contact settings")
	flag.Parse()

	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	log := logging.Log

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}

	err := seed.New(db.DB, log).Run(context.Background(), seed.Options{
		Force:             *force,
		Demo:              *demo,
		AdminUsername:     cfg.SuperRootUserName,
		AdminPassword:     cfg.SuperRootPassword,
		ContactRecipients: cfg.Email.ContactRecipients,
	})
	if err != nil {
		log.WithError(err).Fatal("seeding failed")
	}
	log.Info("seeding completed")
}
