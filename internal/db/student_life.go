package db

// Service 学生服务条目，SortOrder 越小越靠前。
type Service struct {
	Model
	Name           string `gorm:"size:200;not null"`
	Image          string `gorm:"size:255"`
	ImageThumbnail string `gorm:"size:255"`
	Description    string `gorm:"type:text"`
	SortOrder      int    `gorm:"not null;index"`
}

// 设施分类。
const (
	FacilityAccommodation = "accommodation"
	FacilityDining        = "dining"
	FacilityRecreation    = "recreation"
	FacilityStudy         = "study"
	FacilityOther         = "other"
)

var facilityCategoryNames = map[string]string{
	FacilityAccommodation: "Accommodation",
	FacilityDining:        "Dining",
	FacilityRecreation:    "Recreation",
	FacilityStudy:         "Study",
	FacilityOther:         "Other",
}

// FacilityCategoryDisplay 返回设施分类的展示名称。
func FacilityCategoryDisplay(category string) string {
	if name, ok := facilityCategoryNames[category]; ok {
		return name
	}
	return category
}

// IsFacilityCategory 判断是否为已知设施分类。
func IsFacilityCategory(value string) bool {
	_, ok := facilityCategoryNames[value]
	return ok
}

// Facility 校园设施。娱乐类设施可附带 RecreationDetail。
type Facility struct {
	Model
	Name           string            `gorm:"size:200;not null"`
	Image          string            `gorm:"size:255"`
	ImageThumbnail string            `gorm:"size:255"`
	Description    string            `gorm:"type:text"`
	Category       string            `gorm:"size:20;not null;index"`
	Recreation     *RecreationDetail `gorm:"constraint:OnDelete:CASCADE"`
}

// RecreationDetail 娱乐设施的补充信息，与设施一对一。
type RecreationDetail struct {
	Model
	FacilityID         uint `gorm:"not null;uniqueIndex"`
	Capacity           *int
	Availability       string `gorm:"size:200"`
	EquipmentAvailable string `gorm:"type:text"`
	RulesRegulations   string `gorm:"type:text"`
}
