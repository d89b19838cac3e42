package recall

import (
	"context"

	"github.com/geteat/tablerec/core"
)

// Source 表示一个可复用的召回源。当前主召回是空间索引（Spatial），
// 接口保留给后续的补充召回（热门兜底、运营位等）fan-out 复用。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}
