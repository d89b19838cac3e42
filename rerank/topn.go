package rerank

import (
	"context"

	"github.com/geteat/tablerec/core"
	"github.com/geteat/tablerec/pipeline"
)

// TopN 是结果截断节点，放在链尾，把排好序的候选截到请求的 size。
//
// 语义与请求参数一致：
//   - size <= 0 返回空序列（合法请求，不是错误）
//   - size >= len(items) 返回全部
//
// size 逐请求从 RecommendContext 读取，核心不对其施加上限，
// 上限由边界层按需约束。
type TopN struct{}

func (n *TopN) Name() string        { return "rerank.topn" }
func (n *TopN) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *TopN) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if rctx.Size <= 0 {
		return []*core.Item{}, nil
	}
	if len(items) <= rctx.Size {
		return items, nil
	}
	return items[:rctx.Size], nil
}

var _ pipeline.Node = (*TopN)(nil)
