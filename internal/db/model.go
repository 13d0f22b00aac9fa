package db

import "time"

// Model 是内容表共用的主键与时间戳字段。
// 不使用 gorm.Model 的软删除，单例行以固定主键寻址，软删除会让主键冲突无法自愈。
type Model struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SetID 在插入前指定主键。
func (m *Model) SetID(id uint) {
	m.ID = id
}
