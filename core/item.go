package core

import "github.com/geteat/tablerec/pkg/utils"

// Item 是推荐链路中的统一承载结构：一家候选餐厅及其两种"距离"。
// Score 是模型距离（特征空间欧氏距离，越小越相似）；
// DistanceM 是用户位置到餐厅的测地距离（米），由过滤阶段回填。
type Item struct {
	ID        string
	Score     float64
	DistanceM float64

	// Lat/Lon 为餐厅坐标；Vector 为餐厅特征向量（与用户向量同维）。
	// Vector 全链路共享同一底层数组，任何阶段都不得复制或改写。
	Lat    float64
	Lon    float64
	Vector []float32

	Labels map[string]utils.Label
}

// NewItem 从餐厅记录构造候选 Item。Vector 直接引用，不复制。
func NewItem(r Restaurant) *Item {
	return &Item{
		ID:     r.ID,
		Lat:    r.Lat,
		Lon:    r.Lon,
		Vector: r.Vector,
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}
