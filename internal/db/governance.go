package db

// 成员所属的董事会类型。
const (
	BoardCouncil       = "council"
	BoardManagement    = "management"
	BoardSenate        = "senate"
	BoardAdministrator = "administrator"
)

var boardTypeNames = map[string]string{
	BoardCouncil:       "University Council",
	BoardManagement:    "Management Board",
	BoardSenate:        "Senate",
	BoardAdministrator: "Administrator",
}

// BoardTypeDisplay 返回董事会类型的展示名称，未知类型原样返回。
func BoardTypeDisplay(boardType string) string {
	if name, ok := boardTypeNames[boardType]; ok {
		return name
	}
	return boardType
}

// IsBoardType 判断是否为已知董事会类型。
func IsBoardType(value string) bool {
	_, ok := boardTypeNames[value]
	return ok
}

type Chancellor struct {
	Model
	Name        string `gorm:"size:200;not null"`
	Title       string `gorm:"size:200"`
	Credentials string `gorm:"size:300"`
	Photo       string `gorm:"size:255"`
	Description string `gorm:"type:text"`
}

// BoardMember 治理机构成员
type BoardMember struct {
	Model
	Name      string `gorm:"size:200;not null"`
	Position  string `gorm:"size:200"`
	Photo     string `gorm:"size:255"`
	Bio       string `gorm:"type:text"`
	BoardType string `gorm:"size:20;not null;index"`
}

// GovernanceBody 治理机构，成员为多对多关系。
type GovernanceBody struct {
	Model
	Name         string        `gorm:"size:200;uniqueIndex;not null"`
	Description  string        `gorm:"type:text"`
	Image        string        `gorm:"size:255"`
	DisplayOrder int           `gorm:"not null"`
	Members      []BoardMember `gorm:"many2many:governance_body_members"`
}
