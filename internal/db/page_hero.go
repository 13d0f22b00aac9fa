package db

// 可配置横幅的页面标识。
const (
	PageHome            = "home"
	PageAbout           = "about"
	PageGovernance      = "governance"
	PageProgrammes      = "programmes"
	PageProgrammeDetail = "programme-detail"
	PageLibrary         = "library"
	PageStudentLife     = "student-life"
	PageRecreation      = "recreation"
	PageResearch        = "research"
	PageNewsEvents      = "news-events"
	PageContact         = "contact"
)

// HeroPages 按站点导航顺序列出全部可配置横幅的页面。
var HeroPages = []string{
	PageHome,
	PageAbout,
	PageGovernance,
	PageProgrammes,
	PageProgrammeDetail,
	PageLibrary,
	PageStudentLife,
	PageRecreation,
	PageResearch,
	PageNewsEvents,
	PageContact,
}

// IsHeroPage 判断页面标识是否允许配置横幅。
func IsHeroPage(identifier string) bool {
	for _, page := range HeroPages {
		if page == identifier {
			return true
		}
	}
	return false
}

// PageHero 页面顶部横幅，每个页面最多一条。
type PageHero struct {
	Model
	PageIdentifier  string `gorm:"size:20;uniqueIndex;not null"`
	Title           string `gorm:"size:200;not null"`
	Subtitle        string `gorm:"size:300"`
	BackgroundImage string `gorm:"size:255"`
	OverlayOpacity  int    `gorm:"not null"`
	IsActive        bool   `gorm:"not null;index"`
}

// DefaultOverlayOpacity 创建横幅未指定透明度时使用。
const DefaultOverlayOpacity = 50
