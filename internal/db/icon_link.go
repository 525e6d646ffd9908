package db

import "time"

// IconLink 表示一个社交平台快捷入口
// 同一 Profile 下每个平台最多一条记录，由组合唯一索引保证
// OrderIndex 值越小越靠前；删除为物理删除，避免软删除残留占用唯一索引

type IconLink struct {
	ID         uint   `gorm:"primaryKey"`
	ProfileID  uint   `gorm:"uniqueIndex:idx_icon_links_profile_platform;not null"`
	Platform   string `gorm:"size:50;uniqueIndex:idx_icon_links_profile_platform;not null"`
	URL        string `gorm:"size:255;not null"`
	OrderIndex int    `gorm:"default:0"`
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName 指定自定义表名，避免自动复数化导致的歧义。
func (IconLink) TableName() string {
	return "icon_links"
}
