package handler

import (
	"github.com/campuscms/internal/mail"
	"github.com/campuscms/internal/media"
	"github.com/campuscms/internal/service"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Options 构造 API 所需的外部配置。
type Options struct {
	MediaDir          string
	MediaURLPath      string
	SiteBaseURL       string
	PageSize          int
	ContactRecipients string
	Mailer            mail.Sender
	Logger            *logrus.Logger
}

// API 汇集 HTTP handler 共享的依赖。
type API struct {
	db          *gorm.DB
	heroes      *service.HeroService
	about       *service.AboutService
	library     *service.LibraryService
	settings    *service.SettingsService
	governance  *service.GovernanceService
	academics   *service.AcademicsService
	studentLife *service.StudentLifeService
	news        *service.NewsService
	newsletter  *service.NewsletterService
	contact     *service.ContactService
	media       *media.Store
	log         *logrus.Logger
	siteBaseURL string
	pageSize    int
}

// NewAPI 构造 handler 集合及其共享服务。
func NewAPI(gdb *gorm.DB, opts Options) *API {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = service.DefaultPageSize
	}

	return &API{
		db:          gdb,
		heroes:      service.NewHeroService(gdb),
		about:       service.NewAboutService(gdb),
		library:     service.NewLibraryService(gdb),
		settings:    service.NewSettingsService(gdb, opts.ContactRecipients),
		governance:  service.NewGovernanceService(gdb),
		academics:   service.NewAcademicsService(gdb),
		studentLife: service.NewStudentLifeService(gdb),
		news:        service.NewNewsService(gdb),
		newsletter:  service.NewNewsletterService(gdb),
		contact:     service.NewContactService(gdb, opts.Mailer, log),
		media:       media.NewStore(opts.MediaDir, opts.MediaURLPath),
		log:         log,
		siteBaseURL: opts.SiteBaseURL,
		pageSize:    pageSize,
	}
}
