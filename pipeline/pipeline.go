package pipeline

import (
	"context"

	"github.com/geteat/tablerec/core"
)

// Pipeline 把推荐逻辑拆成可组合的 Node 链：
// 空间召回 -> 距离过滤 -> 相似度排序 -> 重排/截断。
//
// 一次请求内节点严格顺序执行，任何错误立即短路返回；
// 请求之间相互独立，不存在跨请求的挂起点。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
