package filter

import (
	"context"

	"github.com/geteat/tablerec/core"
	"github.com/geteat/tablerec/geo"
)

// MaxDistance 按测地距离裁剪候选：空间索引的环枚举是超集语义，
// 精确的 max_dis 截断在这里完成。边界取闭区间（恰好等于 max_dis 保留）。
//
// 顺带把算出的测地距离回填到 item.DistanceM，后续的距离重排与
// 响应构造直接复用，不再二次计算。
type MaxDistance struct{}

func (f *MaxDistance) Name() string { return "filter.max_distance" }

func (f *MaxDistance) ShouldFilter(_ context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error) {
	item.DistanceM = geo.DistanceM(rctx.Lat, rctx.Lon, item.Lat, item.Lon)
	return item.DistanceM > rctx.MaxDistanceM, nil
}

var _ Filter = (*MaxDistance)(nil)
