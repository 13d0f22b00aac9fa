package handler

import (
	"github.com/campuscms/internal/db"
	"github.com/campuscms/internal/service"
	"github.com/gin-gonic/gin"
)

// payloads 将模型转换为 JSON 响应，图片字段输出为绝对地址。
type payloads struct {
	a *API
	c *gin.Context
}

func (a *API) payloads(c *gin.Context) payloads {
	return payloads{a: a, c: c}
}

func (p payloads) url(rel string) interface{} {
	return p.a.mediaURL(p.c, rel)
}

func (p payloads) hero(h db.PageHero) gin.H {
	return gin.H{
		"page_identifier":      h.PageIdentifier,
		"title":                h.Title,
		"subtitle":             h.Subtitle,
		"background_image_url": p.url(h.BackgroundImage),
		"overlay_opacity":      h.OverlayOpacity,
		"is_active":            h.IsActive,
		"created_at":           h.CreatedAt,
		"updated_at":           h.UpdatedAt,
	}
}

func (p payloads) aboutPage(page db.AboutPage) gin.H {
	return gin.H{
		"id":         page.ID,
		"mission":    page.Mission,
		"vision":     page.Vision,
		"history":    page.History,
		"created_at": page.CreatedAt,
		"updated_at": page.UpdatedAt,
	}
}

func (p payloads) coreValue(v db.CoreValue) gin.H {
	return gin.H{
		"id":                 v.ID,
		"title":              v.Title,
		"description":        v.Description,
		"icon_url":           p.url(v.Icon),
		"icon_thumbnail_url": p.url(v.IconThumbnail),
		"created_at":         v.CreatedAt,
		"updated_at":         v.UpdatedAt,
	}
}

func (p payloads) vcMessage(m db.ViceChancellorMessage) gin.H {
	return gin.H{
		"id":            m.ID,
		"name":          m.Name,
		"title":         m.Title,
		"photo_url":     p.url(m.Photo),
		"message":       m.Message,
		"signature_url": p.url(m.Signature),
		"created_at":    m.CreatedAt,
		"updated_at":    m.UpdatedAt,
	}
}

func (p payloads) chancellor(ch db.Chancellor) gin.H {
	return gin.H{
		"id":          ch.ID,
		"name":        ch.Name,
		"title":       ch.Title,
		"credentials": ch.Credentials,
		"photo_url":   p.url(ch.Photo),
		"description": ch.Description,
		"created_at":  ch.CreatedAt,
		"updated_at":  ch.UpdatedAt,
	}
}

func (p payloads) boardMember(m db.BoardMember) gin.H {
	return gin.H{
		"id":                 m.ID,
		"name":               m.Name,
		"position":           m.Position,
		"photo_url":          p.url(m.Photo),
		"bio":                m.Bio,
		"board_type":         m.BoardType,
		"board_type_display": db.BoardTypeDisplay(m.BoardType),
		"created_at":         m.CreatedAt,
		"updated_at":         m.UpdatedAt,
	}
}

func (p payloads) governanceBody(b db.GovernanceBody) gin.H {
	return gin.H{
		"id":            b.ID,
		"name":          b.Name,
		"description":   b.Description,
		"image_url":     p.url(b.Image),
		"display_order": b.DisplayOrder,
		"members":       serializeAll(b.Members, p.boardMember),
		"created_at":    b.CreatedAt,
		"updated_at":    b.UpdatedAt,
	}
}

func (p payloads) highlight(h db.ProgrammeHighlight) gin.H {
	return gin.H{
		"id":                 h.ID,
		"title":              h.Title,
		"description":        h.Description,
		"icon_url":           p.url(h.Icon),
		"icon_thumbnail_url": p.url(h.IconThumbnail),
		"created_at":         h.CreatedAt,
		"updated_at":         h.UpdatedAt,
	}
}

func (p payloads) requirement(r db.AdmissionRequirement) gin.H {
	return gin.H{
		"id":          r.ID,
		"requirement": r.Requirement,
		"created_at":  r.CreatedAt,
		"updated_at":  r.UpdatedAt,
	}
}

func (p payloads) programme(pr db.Programme) gin.H {
	return gin.H{
		"id":                                 pr.ID,
		"name":                               pr.Name,
		"code":                               pr.Code,
		"slug":                               pr.Slug,
		"description":                        pr.Description,
		"duration":                           pr.Duration,
		"mode":                               pr.Mode,
		"mode_display":                       db.ModeDisplay(pr.Mode),
		"tagline":                            pr.Tagline,
		"full_description":                   pr.FullDescription,
		"admission_requirements_description": pr.AdmissionRequirementsDescription,
		"application_note":                   pr.ApplicationNote,
		"is_featured":                        pr.IsFeatured,
		"highlights":                         serializeAll(pr.Highlights, p.highlight),
		"admission_reqs":                     serializeAll(pr.AdmissionRequirements, p.requirement),
		"created_at":                         pr.CreatedAt,
		"updated_at":                         pr.UpdatedAt,
	}
}

func (p payloads) libraryPage(l db.LibraryPage) gin.H {
	return gin.H{
		"id":                  l.ID,
		"mission":             l.Mission,
		"vision":              l.Vision,
		"objectives":          l.Objectives,
		"quality_statement":   l.QualityStatement,
		"value_1_title":       l.Value1Title,
		"value_1_description": l.Value1Description,
		"value_2_title":       l.Value2Title,
		"value_2_description": l.Value2Description,
		"value_3_title":       l.Value3Title,
		"value_3_description": l.Value3Description,
		"value_4_title":       l.Value4Title,
		"value_4_description": l.Value4Description,
		"created_at":          l.CreatedAt,
		"updated_at":          l.UpdatedAt,
	}
}

func (p payloads) librarianMessage(m db.LibrarianMessage) gin.H {
	return gin.H{
		"id":         m.ID,
		"name":       m.Name,
		"title":      m.Title,
		"photo_url":  p.url(m.Photo),
		"message":    m.Message,
		"created_at": m.CreatedAt,
		"updated_at": m.UpdatedAt,
	}
}

func (p payloads) eResource(r db.EResource) gin.H {
	return gin.H{
		"id":                 r.ID,
		"name":               r.Name,
		"description":        r.Description,
		"url":                r.URL,
		"icon_url":           p.url(r.Icon),
		"icon_thumbnail_url": p.url(r.IconThumbnail),
		"category":           r.Category,
		"category_display":   db.ResourceCategoryDisplay(r.Category),
		"created_at":         r.CreatedAt,
		"updated_at":         r.UpdatedAt,
	}
}

func (p payloads) policy(pol db.LibraryPolicy) gin.H {
	return gin.H{
		"id":           pol.ID,
		"title":        pol.Title,
		"description":  pol.Description,
		"document_url": p.url(pol.DocumentFile),
		"created_at":   pol.CreatedAt,
		"updated_at":   pol.UpdatedAt,
	}
}

func (p payloads) service(s db.Service) gin.H {
	return gin.H{
		"id":                  s.ID,
		"name":                s.Name,
		"image_url":           p.url(s.Image),
		"image_thumbnail_url": p.url(s.ImageThumbnail),
		"description":         s.Description,
		"order":               s.SortOrder,
		"created_at":          s.CreatedAt,
		"updated_at":          s.UpdatedAt,
	}
}

// facility 娱乐设施额外输出 capacity 等字段。
func (p payloads) facility(f db.Facility) gin.H {
	out := gin.H{
		"id":                  f.ID,
		"name":                f.Name,
		"image_url":           p.url(f.Image),
		"image_thumbnail_url": p.url(f.ImageThumbnail),
		"description":         f.Description,
		"category":            f.Category,
		"category_display":    db.FacilityCategoryDisplay(f.Category),
		"created_at":          f.CreatedAt,
		"updated_at":          f.UpdatedAt,
	}
	if r := f.Recreation; r != nil {
		out["capacity"] = r.Capacity
		out["availability"] = r.Availability
		out["equipment_available"] = r.EquipmentAvailable
		out["rules_regulations"] = r.RulesRegulations
	}
	return out
}

func (p payloads) newsCategory(cat db.NewsCategory) gin.H {
	return gin.H{
		"id":                 cat.ID,
		"name":               cat.Name,
		"slug":               cat.Slug,
		"description":        cat.Description,
		"icon_image":         p.url(cat.IconImage),
		"icon_thumbnail_url": p.url(cat.IconThumbnail),
		"created_at":         cat.CreatedAt,
		"updated_at":         cat.UpdatedAt,
	}
}

func (p payloads) article(art db.NewsArticle) gin.H {
	tags := make([]string, 0, len(art.Tags))
	for _, tag := range art.Tags {
		tags = append(tags, tag.Name)
	}

	thumbnail := art.ThumbnailImage
	if thumbnail == "" {
		thumbnail = art.FeaturedImage
	}

	var category interface{}
	if art.Category != nil {
		category = p.newsCategory(*art.Category)
	}

	return gin.H{
		"id":                           art.ID,
		"title":                        art.Title,
		"slug":                         art.Slug,
		"excerpt":                      art.Excerpt,
		"content":                      art.Content,
		"content_html":                 service.RenderMarkdown(art.Content),
		"featured_image_url":           p.url(art.FeaturedImage),
		"thumbnail_image_url":          p.url(thumbnail),
		"featured_image_thumbnail_url": p.url(art.FeaturedImageThumbnail),
		"author_name":                  art.AuthorName,
		"author_title":                 art.AuthorTitle,
		"publish_date":                 art.PublishDate,
		"status":                       art.Status,
		"is_featured":                  art.IsFeatured,
		"tags":                         tags,
		"category":                     category,
		"created_at":                   art.CreatedAt,
		"updated_at":                   art.UpdatedAt,
	}
}

// event 在文章字段之上附加活动信息。
func (p payloads) event(art db.NewsArticle) gin.H {
	out := p.article(art)
	if ev := art.Event; ev != nil {
		out["event_date"] = ev.EventDate
		out["location"] = ev.Location
		out["registration_link"] = ev.RegistrationLink
		out["event_image"] = p.url(ev.EventImage)
	}
	return out
}

func (p payloads) subscriber(s db.Subscriber) gin.H {
	return gin.H{
		"id":              s.ID,
		"email":           s.Email,
		"name":            s.Name,
		"is_active":       s.IsActive,
		"subscribed_date": s.SubscribedDate,
		"ip_address":      s.IPAddress,
		"created_at":      s.CreatedAt,
		"updated_at":      s.UpdatedAt,
	}
}

func (p payloads) issue(i db.NewsletterIssue) gin.H {
	return gin.H{
		"id":               i.ID,
		"title":            i.Title,
		"content":          i.Content,
		"content_html":     service.RenderMarkdown(i.Content),
		"issue_number":     i.IssueNumber,
		"sent_date":        i.SentDate,
		"recipients_count": i.RecipientsCount,
		"created_at":       i.CreatedAt,
		"updated_at":       i.UpdatedAt,
	}
}

func (p payloads) submission(s db.ContactSubmission) gin.H {
	return gin.H{
		"id":         s.ID,
		"name":       s.Name,
		"email":      s.Email,
		"phone":      s.Phone,
		"subject":    s.Subject,
		"message":    s.Message,
		"ip_address": s.IPAddress,
		"is_read":    s.IsRead,
		"replied_at": s.RepliedAt,
		"created_at": s.CreatedAt,
		"updated_at": s.UpdatedAt,
	}
}

func (p payloads) contactSettings(s db.ContactSettings) gin.H {
	return gin.H{
		"id":                 s.ID,
		"recipient_emails":   s.RecipientEmails,
		"auto_reply_enabled": s.AutoReplyEnabled,
		"auto_reply_subject": s.AutoReplySubject,
		"auto_reply_message": s.AutoReplyMessage,
		"success_message":    s.SuccessMessage,
		"created_at":         s.CreatedAt,
		"updated_at":         s.UpdatedAt,
	}
}

func (p payloads) siteSettings(s db.SiteSettings) gin.H {
	phones := []string(s.PhoneNumbers)
	if phones == nil {
		phones = []string{}
	}
	return gin.H{
		"id":               s.ID,
		"university_name":  s.UniversityName,
		"short_name":       s.ShortName,
		"tagline":          s.Tagline,
		"address":          s.Address,
		"phone_numbers":    phones,
		"email":            s.Email,
		"facebook_url":     s.FacebookURL,
		"twitter_url":      s.TwitterURL,
		"linkedin_url":     s.LinkedInURL,
		"instagram_url":    s.InstagramURL,
		"youtube_url":      s.YouTubeURL,
		"logo_url":         p.url(s.Logo),
		"copyright_text":   s.CopyrightText,
		"charter_date":     s.CharterDate,
		"charter_by":       s.CharterBy,
		"maintenance_mode": s.MaintenanceMode,
		"analytics_code":   s.AnalyticsCode,
		"created_at":       s.CreatedAt,
		"updated_at":       s.UpdatedAt,
	}
}
