package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/linkfolio/internal/db"
	"gorm.io/gorm"
)

// CustomLinkService 维护单个 Profile 的自定义链接集合
// 与图标链接共用排序引擎与 URL 准入策略

type CustomLinkService struct {
	db      *gorm.DB
	reorder ReorderStrategy
}

// NewCustomLinkService 构造 CustomLinkService
func NewCustomLinkService(gdb *gorm.DB) *CustomLinkService {
	return &CustomLinkService{db: gdb, reorder: PairwiseSwap{}}
}

// CustomLinkInput 描述创建或编辑自定义链接时可设置的字段
// ImageURL 使用指针判断是否显式传入

type CustomLinkInput struct {
	Title    string
	Subtitle string
	URL      string
	ImageURL *string
}

// List 返回全部自定义链接（含未启用），按排序值升序、相同排序值按插入序
func (s *CustomLinkService) List(profileID uint) ([]db.CustomLink, error) {
	var items []db.CustomLink
	if err := s.db.Where("profile_id = ?", profileID).
		Order("order_index ASC, id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list custom links: %w", err)
	}
	return items, nil
}

// Add 追加新的自定义链接：排序值取当前最大值加一（空集合为 0），默认启用
func (s *CustomLinkService) Add(profileID uint, input CustomLinkInput) (*db.CustomLink, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: 请输入链接标题", ErrLinkInvalidInput)
	}
	if err := ValidateLinkURL(input.URL); err != nil {
		return nil, err
	}

	orderIndex, err := s.nextOrderIndex(profileID)
	if err != nil {
		return nil, err
	}

	link := db.CustomLink{
		ProfileID:  profileID,
		Title:      title,
		Subtitle:   strings.TrimSpace(input.Subtitle),
		URL:        strings.TrimSpace(input.URL),
		OrderIndex: orderIndex,
		IsActive:   true,
	}
	if input.ImageURL != nil {
		link.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if err := s.db.Create(&link).Error; err != nil {
		return nil, fmt.Errorf("create custom link: %w", err)
	}

	return &link, nil
}

// Update 按创建时的规则重新校验并替换编辑字段，
// 排序值、启用状态与点击计数保持不变
func (s *CustomLinkService) Update(profileID, id uint, input CustomLinkInput) (*db.CustomLink, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: 请输入链接标题", ErrLinkInvalidInput)
	}
	if err := ValidateLinkURL(input.URL); err != nil {
		return nil, err
	}

	var link db.CustomLink
	if err := s.db.Where("id = ? AND profile_id = ?", id, profileID).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("find custom link: %w", err)
	}

	link.Title = title
	link.Subtitle = strings.TrimSpace(input.Subtitle)
	link.URL = strings.TrimSpace(input.URL)
	if input.ImageURL != nil {
		link.ImageURL = strings.TrimSpace(*input.ImageURL)
	}

	if err := s.db.Save(&link).Error; err != nil {
		return nil, fmt.Errorf("update custom link: %w", err)
	}

	return &link, nil
}

// Delete 物理删除指定链接，目标不存在时返回 ErrLinkNotFound
func (s *CustomLinkService) Delete(profileID, id uint) error {
	result := s.db.Where("profile_id = ?", profileID).Delete(&db.CustomLink{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete custom link: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrLinkNotFound
	}
	return nil
}

// ToggleActive 翻转启用状态，排序值与点击计数不变
func (s *CustomLinkService) ToggleActive(profileID, id uint) (*db.CustomLink, error) {
	var link db.CustomLink
	if err := s.db.Where("id = ? AND profile_id = ?", id, profileID).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("find custom link: %w", err)
	}

	link.IsActive = !link.IsActive
	if err := s.db.Save(&link).Error; err != nil {
		return nil, fmt.Errorf("toggle custom link: %w", err)
	}

	return &link, nil
}

// Reorder 语义与 IconLinkService.Reorder 相同：两次非事务写入，
// 部分成功按失败上报
func (s *CustomLinkService) Reorder(profileID, draggedID, targetID uint) error {
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
		if err := s.db.Model(&db.CustomLink{}).
			Where("id = ? AND profile_id = ?", update.ID, profileID).
			Update("order_index", update.OrderIndex).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrReorderFailed, err)
		}
	}

	return nil
}

// RecordClick 以存储层原子自增记录一次点击，避免读改写竞态丢失计数。
// 点击记账对访客不可见，失败由调用方记日志后吞掉。
func (s *CustomLinkService) RecordClick(id uint) error {
	result := s.db.Model(&db.CustomLink{}).Where("id = ?", id).
		UpdateColumn("click_count", gorm.Expr("click_count + ?", 1))
	if result.Error != nil {
		return fmt.Errorf("record click: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrLinkNotFound
	}
	return nil
}

func (s *CustomLinkService) nextOrderIndex(profileID uint) (int, error) {
	var maxIndex int
	if err := s.db.Model(&db.CustomLink{}).Where("profile_id = ?", profileID).
		Select("COALESCE(MAX(order_index), -1)").Scan(&maxIndex).Error; err != nil {
		return 0, fmt.Errorf("resolve custom link order: %w", err)
	}
	return maxIndex + 1, nil
}
