package core

import "github.com/geteat/tablerec/pkg/utils"

// RecommendContext 承载单次推荐请求的全部输入，贯穿整个 Pipeline 透传。
// 一次请求由单个 worker 同步处理到底，RecommendContext 不跨请求共享，
// 节点可以直接读写而无需加锁。
type RecommendContext struct {
	UserID string

	// Lat/Lon 为用户坐标（度），进入管道前已通过参数校验。
	Lat float64
	Lon float64

	// Size 为期望返回的结果条数；<= 0 时返回空序列（不视为错误）。
	Size int

	// MaxDistanceM 为测地距离上限（米，含边界）。
	// 空间索引用其约束环扩张，过滤节点用其做精确裁剪。
	MaxDistanceM float64

	// SortByDistance 为 true 时按测地距离升序重排（模型距离作平局项），
	// 否则保持模型距离升序。
	SortByDistance bool

	// UserVector 为用户特征向量，进入管道前由特征服务解析填充
	// （缓存 -> 持久存储回退）。与餐厅向量同维。
	UserVector []float32

	// Labels 是用户级标签，可驱动规则过滤等节点的行为。
	Labels map[string]utils.Label

	// Params 请求级扩展参数，规则过滤表达式可引用。
	Params map[string]any
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
