package db

import "time"

// CustomLink 表示一个自定义标题链接
// ClickCount 只增不减，由存储层的原子自增维护

type CustomLink struct {
	ID         uint   `gorm:"primaryKey"`
	ProfileID  uint   `gorm:"index;not null"`
	Title      string `gorm:"size:120;not null"`
	Subtitle   string `gorm:"size:200"`
	URL        string `gorm:"size:255;not null"`
	ImageURL   string `gorm:"size:255"`
	ClickCount uint64 `gorm:"default:0"`
	OrderIndex int    `gorm:"default:0"`
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName 指定自定义表名。
func (CustomLink) TableName() string {
	return "custom_links"
}
