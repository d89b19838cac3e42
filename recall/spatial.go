package recall

import (
	"context"

	"github.com/geteat/tablerec/core"
	"github.com/geteat/tablerec/geo"
	"github.com/geteat/tablerec/pipeline"
	"github.com/geteat/tablerec/pkg/utils"
)

// Spatial 是空间索引召回源：以用户坐标为中心、max_dis 为半径约束，
// 从 H3 网格取回候选餐厅。输出是超集语义（可能含真实距离超界的候选），
// 精确裁剪交给后面的距离过滤节点。
//
// 最小候选阈值取请求的 size：环枚举恰好压着 cell 边界时容易召回过少，
// 阈值驱动的环扩张用召回量换网格对齐的运气。
type Spatial struct {
	Index *geo.Index
}

func (r *Spatial) Name() string        { return "recall.spatial" }
func (r *Spatial) Kind() pipeline.Kind { return pipeline.KindRecall }

func (r *Spatial) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	restaurants, err := r.Index.Candidates(ctx, rctx.Lat, rctx.Lon, rctx.MaxDistanceM, rctx.Size)
	if err != nil {
		return nil, err
	}

	items := make([]*core.Item, 0, len(restaurants))
	for _, rest := range restaurants {
		it := core.NewItem(rest)
		it.PutLabel("recall_source", utils.Label{Value: r.Name(), Source: "recall"})
		items = append(items, it)
	}
	return items, nil
}

// Process 让 Spatial 可以直接作为 Pipeline Node 使用（单召回源场景）。
func (r *Spatial) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

var _ Source = (*Spatial)(nil)
var _ pipeline.Node = (*Spatial)(nil)
