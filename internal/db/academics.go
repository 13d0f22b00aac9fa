package db

// 项目的学习模式。
const (
	ModeFullTime = "full_time"
	ModePartTime = "part_time"
	ModeOnline   = "online"
	ModeHybrid   = "hybrid"
)

var modeNames = map[string]string{
	ModeFullTime: "Full Time",
	ModePartTime: "Part Time",
	ModeOnline:   "Online",
	ModeHybrid:   "Hybrid",
}

// ModeDisplay 返回学习模式的展示名称。
func ModeDisplay(mode string) string {
	if name, ok := modeNames[mode]; ok {
		return name
	}
	return mode
}

// IsStudyMode 判断是否为已知学习模式。
func IsStudyMode(value string) bool {
	_, ok := modeNames[value]
	return ok
}

// Programme 学位项目，亮点与入学要求随项目级联删除。
type Programme struct {
	Model
	Name                             string                 `gorm:"size:200;not null"`
	Code                             string                 `gorm:"size:20;uniqueIndex;not null"`
	Slug                             string                 `gorm:"size:220;uniqueIndex;not null"`
	Description                      string                 `gorm:"type:text"`
	Duration                         string                 `gorm:"size:100"`
	Mode                             string                 `gorm:"size:20;not null"`
	Tagline                          string                 `gorm:"size:300"`
	FullDescription                  string                 `gorm:"type:text"`
	AdmissionRequirementsDescription string                 `gorm:"type:text"`
	ApplicationNote                  string                 `gorm:"type:text"`
	IsFeatured                       bool                   `gorm:"not null;index"`
	Highlights                       []ProgrammeHighlight   `gorm:"constraint:OnDelete:CASCADE"`
	AdmissionRequirements            []AdmissionRequirement `gorm:"constraint:OnDelete:CASCADE"`
}

type ProgrammeHighlight struct {
	Model
	ProgrammeID   uint   `gorm:"not null;index"`
	Title         string `gorm:"size:200;not null"`
	Icon          string `gorm:"size:255"`
	IconThumbnail string `gorm:"size:255"`
	Description   string `gorm:"type:text"`
}

type AdmissionRequirement struct {
	Model
	ProgrammeID uint   `gorm:"not null;index"`
	Requirement string `gorm:"type:text;not null"`
}
