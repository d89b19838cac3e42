// Package config 把 YAML 配置变成可执行的 Pipeline。
//
// 与纯配置驱动不同，空间召回与相似度排序需要进程级的运行期依赖
// （空间索引、相似度引擎），因此工厂以 Deps 注入、构建器闭包持有，
// 而不是 init 注册的全局表。
package config

import (
	"fmt"
	"time"

	"github.com/geteat/tablerec/filter"
	"github.com/geteat/tablerec/geo"
	"github.com/geteat/tablerec/knn"
	"github.com/geteat/tablerec/pipeline"
	"github.com/geteat/tablerec/pkg/conv"
	"github.com/geteat/tablerec/rank"
	"github.com/geteat/tablerec/recall"
	"github.com/geteat/tablerec/rerank"
)

// Deps 是 Node 构建所需的运行期依赖，进程启动时构造一次。
type Deps struct {
	Index  *geo.Index
	Engine *knn.Engine
}

// NewFactory 返回注册了全部内置 Node 的工厂。
func NewFactory(deps Deps) *pipeline.NodeFactory {
	factory := pipeline.NewNodeFactory()

	factory.Register("recall.spatial", buildSpatialNode(deps))
	factory.Register("recall.fanout", buildFanoutNode(deps))
	factory.Register("filter", buildFilterNode)
	factory.Register("rank.knn", buildKNNNode(deps))
	factory.Register("rerank.distance", buildDistanceSortNode)
	factory.Register("rerank.topn", buildTopNNode)

	return factory
}

// DefaultPipeline 返回标准推荐链，等价于默认 YAML 配置：
// 空间召回 -> 距离过滤 -> kNN 排序 -> 距离重排 -> TopN 截断。
func DefaultPipeline(deps Deps) *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&recall.Spatial{Index: deps.Index},
			&filter.Node{Filters: []filter.Filter{&filter.MaxDistance{}}},
			&rank.KNNNode{Engine: deps.Engine},
			&rerank.DistanceSort{},
			&rerank.TopN{},
		},
	}
}

func buildSpatialNode(deps Deps) pipeline.NodeBuilder {
	return func(_ map[string]any) (pipeline.Node, error) {
		if deps.Index == nil {
			return nil, fmt.Errorf("recall.spatial: spatial index not configured")
		}
		return &recall.Spatial{Index: deps.Index}, nil
	}
}

func buildFanoutNode(deps Deps) pipeline.NodeBuilder {
	return func(config map[string]any) (pipeline.Node, error) {
		if deps.Index == nil {
			return nil, fmt.Errorf("recall.fanout: spatial index not configured")
		}

		fanout := &recall.Fanout{
			Sources: []recall.Source{&recall.Spatial{Index: deps.Index}},
			Dedup:   conv.ConfigGet[bool](config, "dedup", true),
		}
		if sec := conv.ConfigGetInt(config, "timeout", 0); sec > 0 {
			fanout.Timeout = time.Duration(sec) * time.Second
		}
		if n := conv.ConfigGetInt(config, "max_concurrent", 0); n > 0 {
			fanout.MaxConcurrent = n
		}
		return fanout, nil
	}
}

func buildFilterNode(config map[string]any) (pipeline.Node, error) {
	node := &filter.Node{}

	if conv.ConfigGet[bool](config, "max_distance", true) {
		node.Filters = append(node.Filters, &filter.MaxDistance{})
	}

	if raw, ok := config["rules"].([]any); ok {
		for _, r := range raw {
			expr, ok := r.(string)
			if !ok {
				return nil, fmt.Errorf("filter: rule must be a string, got %T", r)
			}
			rule, err := filter.NewRule(expr)
			if err != nil {
				return nil, err
			}
			node.Filters = append(node.Filters, rule)
		}
	}

	return node, nil
}

func buildKNNNode(deps Deps) pipeline.NodeBuilder {
	return func(_ map[string]any) (pipeline.Node, error) {
		if deps.Engine == nil {
			return nil, fmt.Errorf("rank.knn: similarity engine not configured")
		}
		return &rank.KNNNode{Engine: deps.Engine}, nil
	}
}

func buildDistanceSortNode(_ map[string]any) (pipeline.Node, error) {
	return &rerank.DistanceSort{}, nil
}

func buildTopNNode(_ map[string]any) (pipeline.Node, error) {
	return &rerank.TopN{}, nil
}
