package db

// LibraryPage 图书馆页面单例，包含四组核心价值。
type LibraryPage struct {
	Model
	Mission           string `gorm:"type:text;not null" validate:"required"`
	Vision            string `gorm:"type:text;not null" validate:"required"`
	Objectives        string `gorm:"type:text;not null" validate:"required"`
	Value1Title       string `gorm:"size:100" validate:"required"`
	Value1Description string `gorm:"type:text" validate:"required"`
	Value2Title       string `gorm:"size:100" validate:"required"`
	Value2Description string `gorm:"type:text" validate:"required"`
	Value3Title       string `gorm:"size:100" validate:"required"`
	Value3Description string `gorm:"type:text" validate:"required"`
	Value4Title       string `gorm:"size:100" validate:"required"`
	Value4Description string `gorm:"type:text" validate:"required"`
	QualityStatement  string `gorm:"type:text;not null" validate:"required"`
}

// DefaultLibraryPage 返回首次读取时落库的默认内容。
func DefaultLibraryPage() LibraryPage {
	return LibraryPage{
		Mission:           "Default library mission",
		Vision:            "Default library vision",
		Objectives:        "Default library objectives",
		Value1Title:       "Default Value 1",
		Value1Description: "Default value 1 description",
		Value2Title:       "Default Value 2",
		Value2Description: "Default value 2 description",
		Value3Title:       "Default Value 3",
		Value3Description: "Default value 3 description",
		Value4Title:       "Default Value 4",
		Value4Description: "Default value 4 description",
		QualityStatement:  "Default quality statement",
	}
}

type LibrarianMessage struct {
	Model
	Name    string `gorm:"size:200;not null"`
	Title   string `gorm:"size:200"`
	Photo   string `gorm:"size:255"`
	Message string `gorm:"type:text"`
}

// 电子资源分类。
const (
	ResourceCatalog    = "catalog"
	ResourceEResources = "eresources"
	ResourcePlatform   = "platform"
	ResourceOther      = "other"
)

var resourceCategoryNames = map[string]string{
	ResourceCatalog:    "Catalog",
	ResourceEResources: "Electronic Resources",
	ResourcePlatform:   "Platform",
	ResourceOther:      "Other",
}

// ResourceCategoryDisplay 返回电子资源分类的展示名称。
func ResourceCategoryDisplay(category string) string {
	if name, ok := resourceCategoryNames[category]; ok {
		return name
	}
	return category
}

// IsResourceCategory 判断是否为已知电子资源分类。
func IsResourceCategory(value string) bool {
	_, ok := resourceCategoryNames[value]
	return ok
}

type EResource struct {
	Model
	Name          string `gorm:"size:200;not null"`
	Description   string `gorm:"type:text"`
	URL           string `gorm:"size:500"`
	Icon          string `gorm:"size:255"`
	IconThumbnail string `gorm:"size:255"`
	Category      string `gorm:"size:20;not null;index"`
}

type LibraryPolicy struct {
	Model
	Title        string `gorm:"size:200;not null"`
	DocumentFile string `gorm:"size:255"`
	Description  string `gorm:"type:text"`
}
