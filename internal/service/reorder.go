package service

import (
	"cmp"
	"slices"
)

// OrderedRecord 是排序引擎可见的最小记录视图
type OrderedRecord struct {
	ID         uint
	OrderIndex int
}

// OrderUpdate 描述一次需要持久化的排序值变更
type OrderUpdate struct {
	ID         uint
	OrderIndex int
}

// ReorderStrategy 在拖拽落点确定后计算需要持久化的排序变更。
// 返回 ok=false 表示本次拖拽应按无操作处理。
// 抽象成接口是为了将来可以替换为整表重排等其他策略。
type ReorderStrategy interface {
	Plan(records []OrderedRecord, draggedID, targetID uint) (updates []OrderUpdate, ok bool)
}

// PairwiseSwap 只交换被拖拽项与落点项的排序值，其余记录保持不动。
// 相比整表重排，写放大固定为两行；排序值全局唯一，交换后唯一性不变。
type PairwiseSwap struct{}

// Plan 先按排序值升序得到规范序列（相同排序值保持传入顺序），
// 再按 ID 定位两个元素并交换排序值。
// 任一 ID 不在序列中或拖到自身时视为良性竞态，返回无操作。
func (PairwiseSwap) Plan(records []OrderedRecord, draggedID, targetID uint) ([]OrderUpdate, bool) {
	if draggedID == targetID {
		return nil, false
	}

	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b OrderedRecord) int {
		return cmp.Compare(a.OrderIndex, b.OrderIndex)
	})

	draggedIdx := slices.IndexFunc(sorted, func(r OrderedRecord) bool { return r.ID == draggedID })
	targetIdx := slices.IndexFunc(sorted, func(r OrderedRecord) bool { return r.ID == targetID })
	if draggedIdx < 0 || targetIdx < 0 {
		return nil, false
	}

	return []OrderUpdate{
		{ID: draggedID, OrderIndex: sorted[targetIdx].OrderIndex},
		{ID: targetID, OrderIndex: sorted[draggedIdx].OrderIndex},
	}, true
}
