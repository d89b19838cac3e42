package rank

import (
	"context"

	"github.com/geteat/tablerec/core"
	"github.com/geteat/tablerec/knn"
	"github.com/geteat/tablerec/pipeline"
	"github.com/geteat/tablerec/pkg/utils"
)

// KNNNode 是使用最近邻模型的排序 Node：把候选的特征向量拼成候选矩阵，
// 与用户向量一起交给相似度引擎，按模型距离升序重排候选。
// 候选矩阵只收集向量引用，不复制任何向量数据。
type KNNNode struct {
	Engine *knn.Engine
}

func (n *KNNNode) Name() string        { return "rank.knn" }
func (n *KNNNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *KNNNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Engine == nil || len(items) == 0 {
		return items, nil
	}

	matrix := make([][]float32, len(items))
	for i, it := range items {
		matrix[i] = it.Vector
	}

	neighbors, err := n.Engine.Rank(rctx.UserVector, matrix)
	if err != nil {
		return nil, err
	}

	out := make([]*core.Item, len(neighbors))
	for i, nb := range neighbors {
		it := items[nb.Index]
		it.Score = nb.Distance
		it.PutLabel("rank_model", utils.Label{Value: "knn", Source: "rank"})
		out[i] = it
	}
	return out, nil
}

var _ pipeline.Node = (*KNNNode)(nil)
