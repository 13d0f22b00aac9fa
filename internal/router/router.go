package router

import (
	"net/http"
	"time"

	"github.com/campuscms/internal/config"
	"github.com/campuscms/internal/handler"
	"github.com/campuscms/internal/logging"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const sessionName = "campuscms_session"

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(cfg config.AppConfig, api *handler.API) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestLogger())

	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int((7 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	// 媒体文件服务
	if cfg.MediaDir != "" && cfg.MediaURLPath != "" {
		r.Static(cfg.MediaURLPath, cfg.MediaDir)
	}

	r.GET("/healthz", api.HealthCheck)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/page-hero/:identifier/", api.GetPageHero)
		v1.GET("/site-settings/", api.GetSiteSettings)

		about := v1.Group("/about")
		{
			about.GET("/", api.GetAboutPage)
			about.GET("/about/", api.GetAboutPage)
			about.GET("/core-values/", api.ListCoreValues)
			about.GET("/vc-message/", api.GetVCMessage)
			about.GET("/about-full/", api.GetAboutFull)
		}

		governance := v1.Group("/governance")
		{
			governance.GET("/chancellor/", api.GetChancellor)
			governance.GET("/board-members/", api.ListBoardMembers)
			governance.GET("/governance-bodies/", api.ListGovernanceBodies)
			governance.GET("/governance-bodies/:id/", api.GetGovernanceBody)
			governance.GET("/governance-structure/", api.GetGovernanceStructure)
		}

		academics := v1.Group("/academics")
		{
			academics.GET("/programmes/", api.ListProgrammes)
			academics.GET("/programmes/:slug/", api.GetProgramme)
			academics.GET("/programmes/:slug/details/", api.GetProgrammeDetails)
			academics.GET("/programme-highlights/", api.ListProgrammeHighlights)
			academics.GET("/admission-requirements/", api.ListAdmissionRequirements)
			academics.GET("/featured-programmes/", api.ListFeaturedProgrammes)
		}

		library := v1.Group("/library")
		{
			library.GET("/library-page/", api.GetLibraryPage)
			library.GET("/librarian-message/", api.GetLibrarianMessage)
			library.GET("/e-resources/", api.ListEResources)
			library.GET("/policies/", api.ListLibraryPolicies)
			library.GET("/library-resources/", api.GetLibraryResources)
		}

		studentLife := v1.Group("/student-life")
		{
			studentLife.GET("/services/", api.ListStudentServices)
			studentLife.GET("/services/:id/", api.GetStudentService)
			studentLife.GET("/facilities/", api.ListFacilities)
			studentLife.GET("/recreation-facilities/", api.ListRecreationFacilities)
			studentLife.GET("/recreation-facilities/:id/", api.GetRecreationFacility)
			studentLife.GET("/student-services-facilities/", api.GetStudentLifeOverview)
		}

		news := v1.Group("/news")
		{
			news.GET("/categories/", api.ListNewsCategories)
			news.GET("/articles/", api.ListArticles)
			news.GET("/articles/:id/", api.GetArticle)
			news.GET("/events/", api.ListEvents)
			news.GET("/events/:id/", api.GetEvent)
		}

		newsletter := v1.Group("/newsletter")
		{
			newsletter.POST("/subscribe/", api.Subscribe)
			newsletter.POST("/unsubscribe/:token/", api.Unsubscribe)
			newsletter.GET("/issues/", api.ListNewsletterIssues)
			newsletter.GET("/issues/:id/", api.GetNewsletterIssue)
		}

		contact := v1.Group("/contact")
		{
			contact.GET("/settings/", api.GetContactSettings)
			contact.POST("/submit/", api.SubmitContact)
		}
	}

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.POST("/login", api.Login)
		admin.POST("/logout", api.Logout)

		// 需要认证的后台路由
		auth := admin.Group("/api")
		auth.Use(handler.AuthRequired())
		{
			auth.PUT("/about", api.UpdateAboutPage)
			auth.PUT("/library-page", api.UpdateLibraryPage)
			auth.PUT("/site-settings", api.UpdateSiteSettings)
			auth.PUT("/contact-settings", api.UpdateContactSettings)
			auth.DELETE("/contact-settings", api.DeleteContactSettings)

			auth.GET("/page-heroes", api.ListPageHeroes)
			auth.PUT("/page-heroes/:identifier", api.UpsertPageHero)
			auth.DELETE("/page-heroes/:identifier", api.DeletePageHero)

			auth.POST("/uploads", api.UploadImage)

			// 列表内容：POST 新建，PUT 整体更新，DELETE 同时清理图片
			auth.POST("/core-values", api.CreateCoreValue)
			auth.PUT("/core-values/:id", api.UpdateCoreValue)
			auth.DELETE("/core-values/:id", api.DeleteCoreValue)

			auth.POST("/programmes", api.CreateProgramme)
			auth.PUT("/programmes/:id", api.UpdateProgramme)
			auth.DELETE("/programmes/:id", api.DeleteProgramme)
			auth.POST("/programmes/:id/highlights", api.CreateProgrammeHighlight)
			auth.PUT("/programme-highlights/:id", api.UpdateProgrammeHighlight)
			auth.DELETE("/programme-highlights/:id", api.DeleteProgrammeHighlight)

			auth.POST("/services", api.CreateStudentService)
			auth.PUT("/services/:id", api.UpdateStudentService)
			auth.DELETE("/services/:id", api.DeleteStudentService)
			auth.POST("/facilities", api.CreateFacility)
			auth.PUT("/facilities/:id", api.UpdateFacility)
			auth.DELETE("/facilities/:id", api.DeleteFacility)

			auth.POST("/news/categories", api.CreateNewsCategory)
			auth.PUT("/news/categories/:id", api.UpdateNewsCategory)
			auth.DELETE("/news/categories/:id", api.DeleteNewsCategory)
			auth.POST("/news/articles", api.CreateArticle)
			auth.PUT("/news/articles/:id", api.UpdateArticle)
			auth.DELETE("/news/articles/:id", api.DeleteArticle)

			auth.POST("/board-members", api.CreateBoardMember)
			auth.PUT("/board-members/:id", api.UpdateBoardMember)
			auth.DELETE("/board-members/:id", api.DeleteBoardMember)

			auth.POST("/e-resources", api.CreateEResource)
			auth.PUT("/e-resources/:id", api.UpdateEResource)
			auth.DELETE("/e-resources/:id", api.DeleteEResource)

			auth.GET("/contact-submissions", api.ListContactSubmissions)
			auth.POST("/contact-submissions/mark", api.MarkContactSubmissions)
		}
	}

	return r
}
