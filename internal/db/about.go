package db

// AboutPage 关于我们页面的单例正文。
type AboutPage struct {
	Model
	Mission string `gorm:"type:text;not null" validate:"required"`
	Vision  string `gorm:"type:text;not null" validate:"required"`
	History string `gorm:"type:text;not null" validate:"required"`
}

// DefaultAboutPage 返回首次读取时落库的默认内容。
func DefaultAboutPage() AboutPage {
	return AboutPage{
		Mission: "Default mission statement",
		Vision:  "Default vision statement",
		History: "Default history content",
	}
}

// CoreValue 核心价值条目
type CoreValue struct {
	Model
	Title         string `gorm:"size:100;not null"`
	Icon          string `gorm:"size:255"`
	IconThumbnail string `gorm:"size:255"`
	Description   string `gorm:"type:text"`
}

type ViceChancellorMessage struct {
	Model
	Name      string `gorm:"size:200;not null"`
	Title     string `gorm:"size:200"`
	Photo     string `gorm:"size:255"`
	Message   string `gorm:"type:text"`
	Signature string `gorm:"size:255"`
}
