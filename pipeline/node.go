package pipeline

import (
	"context"

	"github.com/geteat/tablerec/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindRecall Kind = "recall" // 召回阶段：空间索引生成候选集
	KindFilter Kind = "filter" // 过滤阶段：测地距离裁剪 / 规则过滤
	KindRank   Kind = "rank"   // 排序阶段：相似度模型打分并排序
	KindReRank Kind = "rerank" // 重排阶段：按距离重排 / TopN 截断
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用"输入 items -> 输出 items"的形态，方便 Recall 生成、
// Filter 截断、ReRank 重排等操作。节点从 RecommendContext 读取
// 请求级参数（size / max_dis / sort_dis），不持有任何请求级状态，
// 同一条 Pipeline 被所有 worker 并发复用。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}
