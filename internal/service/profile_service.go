package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/linkfolio/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrProfileNotFound 在当前用户尚未创建个人资料时返回
	ErrProfileNotFound = errors.New("profile not found")
	// ErrProfileInvalidInput 在资料字段不符合约束时返回
	ErrProfileInvalidInput = errors.New("invalid profile input")
	// ErrUsernameTaken 在用户名已被占用时返回
	ErrUsernameTaken = errors.New("username already taken")
	// ErrUsernameImmutable 在尝试修改既有用户名时返回
	ErrUsernameImmutable = errors.New("username cannot be changed")
)

const maxBioLength = 200

var (
	usernamePattern = regexp.MustCompile(`^[a-z0-9_]{3,20}$`)
	hexColorPattern = regexp.MustCompile(`^[0-9a-f]{6}$`)
)

// ProfileService 负责维护页面主人的个人资料
// 身份以显式参数传入，不读取任何全局会话状态

type ProfileService struct {
	db *gorm.DB
}

// NewProfileService 构造 ProfileService
func NewProfileService(gdb *gorm.DB) *ProfileService {
	return &ProfileService{db: gdb}
}

// ProfileInput 描述可更新的资料字段
// 指针字段用于区分"未传入"与"清空"

type ProfileInput struct {
	DisplayName     *string
	Bio             *string
	AvatarURL       *string
	BackgroundColor *string
	TextColor       *string
}

// Onboard 以用户为键创建个人资料。用户名一经设定不可变更，
// 使用相同用户名重复提交视为幂等操作。
func (s *ProfileService) Onboard(userID uint, username string) (*db.Profile, error) {
	clean := strings.ToLower(strings.TrimSpace(username))
	if !usernamePattern.MatchString(clean) {
		return nil, fmt.Errorf("%w: 用户名须为3-20位小写字母、数字或下划线", ErrProfileInvalidInput)
	}

	var existing db.Profile
	err := s.db.Where("user_id = ?", userID).First(&existing).Error
	switch {
	case err == nil:
		if existing.Username != clean {
			return nil, ErrUsernameImmutable
		}
		return &existing, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("onboard profile: %w", err)
	}

	profile := db.Profile{
		UserID:          userID,
		Username:        clean,
		DisplayName:     clean,
		BackgroundColor: "ffffff",
		TextColor:       "000000",
	}
	if err := s.db.Create(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}

	return &profile, nil
}

// GetByUserID 返回指定用户的个人资料
func (s *ProfileService) GetByUserID(userID uint) (*db.Profile, error) {
	var profile db.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

// Update 应用部分字段更新，未传入的字段保持原值
func (s *ProfileService) Update(userID uint, input ProfileInput) (*db.Profile, error) {
	var profile db.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}

	if input.DisplayName != nil {
		profile.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.Bio != nil {
		bio := strings.TrimSpace(*input.Bio)
		if utf8.RuneCountInString(bio) > maxBioLength {
			return nil, fmt.Errorf("%w: 简介不能超过%d个字符", ErrProfileInvalidInput, maxBioLength)
		}
		profile.Bio = bio
	}
	if input.AvatarURL != nil {
		profile.AvatarURL = strings.TrimSpace(*input.AvatarURL)
	}
	if input.BackgroundColor != nil {
		color, err := normalizeHexColor(*input.BackgroundColor)
		if err != nil {
			return nil, err
		}
		profile.BackgroundColor = color
	}
	if input.TextColor != nil {
		color, err := normalizeHexColor(*input.TextColor)
		if err != nil {
			return nil, err
		}
		profile.TextColor = color
	}

	if err := s.db.Save(&profile).Error; err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return &profile, nil
}

// normalizeHexColor 去掉前导 # 并统一为小写的 6 位十六进制值
func normalizeHexColor(value string) (string, error) {
	trimmed := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(value), "#"))
	if !hexColorPattern.MatchString(trimmed) {
		return "", fmt.Errorf("%w: 颜色须为6位十六进制值", ErrProfileInvalidInput)
	}
	return trimmed, nil
}
