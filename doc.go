// Package tablerec 是一个餐厅推荐服务核心（Table Recommender）。
//
// 设计要点：
// - Pipeline-first: 推荐流程通过 Node 串联（空间召回 → 距离过滤 → kNN 排序 → 重排/截断）
// - 缓存透明: 特征缓存只影响延迟不影响结果，Redis 之后永远有 Postgres 兜底
// - Node 可扩展: 自定义 Node 即可插拔扩展，YAML 配置驱动组链
package tablerec

import "github.com/geteat/tablerec/pipeline"

// 轻量 facade：便于用户直接 import "tablerec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall = pipeline.KindRecall
	KindFilter = pipeline.KindFilter
	KindRank   = pipeline.KindRank
	KindReRank = pipeline.KindReRank
)
