package rerank

import (
	"context"
	"sort"

	"github.com/geteat/tablerec/core"
	"github.com/geteat/tablerec/pipeline"
)

// DistanceSort 是按测地距离重排的 Node，对应请求里的 sort_dis 开关：
// 开启时把已按模型距离排好的序列改为测地距离升序，模型距离作平局项；
// 关闭时原样透传。节点无状态，开关逐请求从 RecommendContext 读取。
type DistanceSort struct{}

func (n *DistanceSort) Name() string        { return "rerank.distance" }
func (n *DistanceSort) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *DistanceSort) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if !rctx.SortByDistance || len(items) < 2 {
		return items, nil
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].DistanceM != items[j].DistanceM {
			return items[i].DistanceM < items[j].DistanceM
		}
		return items[i].Score < items[j].Score
	})
	return items, nil
}

var _ pipeline.Node = (*DistanceSort)(nil)
