package db

import "gorm.io/gorm"

// Profile 保存公开页面的展示信息
// Username 全小写且全局唯一，创建后不可修改
// 颜色字段存储 6 位十六进制值，不含前导 #

type Profile struct {
	gorm.Model
	UserID          uint   `gorm:"uniqueIndex;not null"`
	Username        string `gorm:"size:20;uniqueIndex;not null"`
	DisplayName     string `gorm:"size:80"`
	Bio             string `gorm:"size:200"`
	AvatarURL       string `gorm:"size:255"`
	BackgroundColor string `gorm:"size:6;default:ffffff"`
	TextColor       string `gorm:"size:6;default:000000"`
}

// TableName 返回自定义表名，避免冲突
func (Profile) TableName() string {
	return "profiles"
}
