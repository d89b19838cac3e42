package recall

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/geteat/tablerec/core"
	"github.com/geteat/tablerec/pipeline"
	"github.com/geteat/tablerec/pkg/utils"
)

// Fanout 是一个 Recall Node：并发执行多个召回源并合并结果。
// 单个召回源失败或超时只丢失该源的候选，不中断整条请求。
// 合并按源的声明顺序拼接，同 ID 保留先出现的（Dedup 开启时）。
type Fanout struct {
	Sources       []Source
	Dedup         bool
	Timeout       time.Duration // 每个召回源的超时时间（0 表示不限制）
	MaxConcurrent int           // 最大并发数（0 表示无限制）
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	// 单召回源直接透传，错误不吞：主召回失败就是请求失败
	if len(n.Sources) == 1 {
		return n.Sources[0].Recall(ctx, rctx)
	}

	var (
		mu      sync.Mutex
		results = make([][]*core.Item, len(n.Sources))
		eg, _   = errgroup.WithContext(ctx)
	)
	if n.MaxConcurrent > 0 {
		eg.SetLimit(n.MaxConcurrent)
	}

	for i, src := range n.Sources {
		idx, s := i, src
		eg.Go(func() error {
			recallCtx := ctx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(ctx, n.Timeout)
				defer cancel()
			}

			items, err := s.Recall(recallCtx, rctx)
			if err != nil {
				// 超时或错误时该源返回空，不中断其他召回源
				return nil
			}

			for _, it := range items {
				it.PutLabel("recall_source", utils.Label{Value: s.Name(), Source: "recall"})
			}

			mu.Lock()
			results[idx] = items
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return n.merge(results), nil
}

// merge 按源声明顺序拼接；Dedup 开启时同 ID 保留先出现的并合并 Labels。
func (n *Fanout) merge(results [][]*core.Item) []*core.Item {
	var total int
	for _, items := range results {
		total += len(items)
	}

	if !n.Dedup {
		out := make([]*core.Item, 0, total)
		for _, items := range results {
			out = append(out, items...)
		}
		return out
	}

	seen := make(map[string]*core.Item, total)
	out := make([]*core.Item, 0, total)
	for _, items := range results {
		for _, it := range items {
			if it == nil {
				continue
			}
			if old, ok := seen[it.ID]; ok {
				for k, v := range it.Labels {
					old.PutLabel(k, v)
				}
				continue
			}
			seen[it.ID] = it
			out = append(out, it)
		}
	}
	return out
}
