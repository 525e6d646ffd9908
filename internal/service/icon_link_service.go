package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/linkfolio/internal/db"
	"github.com/linkfolio/internal/view"
	"gorm.io/gorm"
)

var (
	// ErrLinkNotFound 在目标链接不存在时返回，图标链接与自定义链接共用
	ErrLinkNotFound = errors.New("link not found")
	// ErrLinkInvalidInput 在链接字段不完整时返回
	ErrLinkInvalidInput = errors.New("invalid link input")
	// ErrDuplicatePlatform 在同一 Profile 重复添加同一平台时返回
	ErrDuplicatePlatform = errors.New("platform already linked")
	// ErrReorderFailed 在排序写入未能全部落库时返回
	ErrReorderFailed = errors.New("reorder links failed")
)

// IconLinkService 维护单个 Profile 的图标链接集合
// 排序策略通过 ReorderStrategy 注入，默认两两交换

type IconLinkService struct {
	db      *gorm.DB
	reorder ReorderStrategy
}

// NewIconLinkService 构造 IconLinkService
func NewIconLinkService(gdb *gorm.DB) *IconLinkService {
	return &IconLinkService{db: gdb, reorder: PairwiseSwap{}}
}

// List 返回全部图标链接（含未启用），按排序值升序、相同排序值按插入序
func (s *IconLinkService) List(profileID uint) ([]db.IconLink, error) {
	var items []db.IconLink
	if err := s.db.Where("profile_id = ?", profileID).
		Order("order_index ASC, id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list icon links: %w", err)
	}
	return items, nil
}

// Add 追加新的图标链接：排序值取当前最大值加一，默认启用。
// 平台必须来自固定集合；同平台重复由唯一索引拦截并转换为 ErrDuplicatePlatform。
func (s *IconLinkService) Add(profileID uint, platform, rawURL string) (*db.IconLink, error) {
	key := strings.ToLower(strings.TrimSpace(platform))
	if key == "" {
		return nil, fmt.Errorf("%w: 请选择平台", ErrLinkInvalidInput)
	}
	if !view.IsSupportedPlatform(key) {
		return nil, fmt.Errorf("%w: 不支持的平台 %q", ErrLinkInvalidInput, key)
	}
	if err := ValidateLinkURL(rawURL); err != nil {
		return nil, err
	}

	orderIndex, err := s.nextOrderIndex(profileID)
	if err != nil {
		return nil, err
	}

	link := db.IconLink{
		ProfileID:  profileID,
		Platform:   key,
		URL:        strings.TrimSpace(rawURL),
		OrderIndex: orderIndex,
		IsActive:   true,
	}
	if err := s.db.Create(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicatePlatform
		}
		return nil, fmt.Errorf("create icon link: %w", err)
	}

	return &link, nil
}

// UpdateURL 只替换跳转地址，排序值与启用状态保持不变
func (s *IconLinkService) UpdateURL(profileID, id uint, rawURL string) (*db.IconLink, error) {
	if err := ValidateLinkURL(rawURL); err != nil {
		return nil, err
	}

	var link db.IconLink
	if err := s.db.Where("id = ? AND profile_id = ?", id, profileID).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("find icon link: %w", err)
	}

	link.URL = strings.TrimSpace(rawURL)
	if err := s.db.Save(&link).Error; err != nil {
		return nil, fmt.Errorf("update icon link: %w", err)
	}

	return &link, nil
}

// Delete 物理删除指定链接，目标不存在时返回 ErrLinkNotFound
// 删除后不重排剩余记录，排序值允许留空洞
func (s *IconLinkService) Delete(profileID, id uint) error {
	result := s.db.Where("profile_id = ?", profileID).Delete(&db.IconLink{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete icon link: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrLinkNotFound
	}
	return nil
}

// ToggleActive 翻转启用状态，排序值不变
func (s *IconLinkService) ToggleActive(profileID, id uint) (*db.IconLink, error) {
	var link db.IconLink
	if err := s.db.Where("id = ? AND profile_id = ?", id, profileID).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("find icon link: %w", err)
	}

	link.IsActive = !link.IsActive
	if err := s.db.Save(&link).Error; err != nil {
		return nil, fmt.Errorf("toggle icon link: %w", err)
	}

	return &link, nil
}

// Reorder 对拖拽落点执行排序变更。两次写入顺序执行且不包事务：
// 任一写入失败即整体上报 ErrReorderFailed，已落库的另一半保持原样，
// 调用方只应以确认落库的结果刷新本地视图。
func (s *IconLinkService) Reorder(profileID, draggedID, targetID uint) error {
	items, err := s.List(profileID)
	if err != nil {
		return err
	}

	records := make([]OrderedRecord, 0, len(items))
	for _, item := range items {
		records = append(records, OrderedRecord{ID: item.ID, OrderIndex: item.OrderIndex})
	}

	updates, ok := s.reorder.Plan(records, draggedID, targetID)
	if !ok {
		return nil
	}

	for _, update := range updates {
		if err := s.db.Model(&db.IconLink{}).
			Where("id = ? AND profile_id = ?", update.ID, profileID).
			Update("order_index", update.OrderIndex).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrReorderFailed, err)
		}
	}

	return nil
}

func (s *IconLinkService) nextOrderIndex(profileID uint) (int, error) {
	var maxIndex int
	if err := s.db.Model(&db.IconLink{}).Where("profile_id = ?", profileID).
		Select("COALESCE(MAX(order_index), -1)").Scan(&maxIndex).Error; err != nil {
		return 0, fmt.Errorf("resolve icon link order: %w", err)
	}
	return maxIndex + 1, nil
}
