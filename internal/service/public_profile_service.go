package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/linkfolio/internal/db"
	"gorm.io/gorm"
)

const (
	defaultBackgroundColor = "#ffffff"
	defaultTextColor       = "#000000"
)

// PublicProfile 是匿名访客可见的渲染视图
// 颜色已归一化为带 # 前缀的形式，链接集合只含启用项且已排序

type PublicProfile struct {
	Username        string
	DisplayName     string
	Bio             string
	AvatarURL       string
	BackgroundColor string
	TextColor       string
	IconLinks       []db.IconLink
	CustomLinks     []db.CustomLink
}

// PublicProfileService 将用户名解析为对外展示的聚合视图

type PublicProfileService struct {
	db *gorm.DB
}

// NewPublicProfileService 构造 PublicProfileService
func NewPublicProfileService(gdb *gorm.DB) *PublicProfileService {
	return &PublicProfileService{db: gdb}
}

// Resolve 按用户名精确匹配解析公开页面。
// Profile 不存在返回 ErrProfileNotFound；两类链接集合相互独立加载，
// 任一集合加载失败只记日志并降级为空列表，不影响整页返回。
func (s *PublicProfileService) Resolve(username string) (*PublicProfile, error) {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return nil, ErrProfileNotFound
	}

	var profile db.Profile
	if err := s.db.Where("username = ?", trimmed).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("resolve profile: %w", err)
	}

	result := &PublicProfile{
		Username:        profile.Username,
		DisplayName:     profile.DisplayName,
		Bio:             profile.Bio,
		AvatarURL:       profile.AvatarURL,
		BackgroundColor: normalizePublicColor(profile.BackgroundColor, defaultBackgroundColor),
		TextColor:       normalizePublicColor(profile.TextColor, defaultTextColor),
		IconLinks:       []db.IconLink{},
		CustomLinks:     []db.CustomLink{},
	}
	if result.DisplayName == "" {
		result.DisplayName = profile.Username
	}

	var icons []db.IconLink
	if err := s.db.Where("profile_id = ? AND is_active = ?", profile.ID, true).
		Order("order_index ASC, id ASC").Find(&icons).Error; err != nil {
		log.Printf("load icon links for %s: %v", trimmed, err)
	} else {
		result.IconLinks = icons
	}

	var links []db.CustomLink
	if err := s.db.Where("profile_id = ? AND is_active = ?", profile.ID, true).
		Order("order_index ASC, id ASC").Find(&links).Error; err != nil {
		log.Printf("load custom links for %s: %v", trimmed, err)
	} else {
		result.CustomLinks = links
	}

	return result, nil
}

// normalizePublicColor 在缺省时回退默认色，否则补齐 # 前缀
func normalizePublicColor(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}
	return "#" + trimmed
}
