package filter

import (
	"context"
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/geteat/tablerec/core"
)

// Rule 是 CEL (Common Expression Language) 驱动的规则过滤器，
// 用于配置化的业务裁剪（黑名单标签、距离兜底等），不改代码即可调整。
// 表达式返回 true 表示过滤掉该候选。
//
// 可引用的变量：
//   - item:   id / score / distance_m
//   - label:  各 Label 的 value，例如 label.recall_source == "recall.spatial"
//   - params: 请求级扩展参数（RecommendContext.Params）
//
// 示例：
//   - `item.distance_m > 3000.0 && item.score > 10.0` → 又远又不像的候选
//   - `label.blocked == "true"` → 带屏蔽标签的候选
type Rule struct {
	expr string
	prg  cel.Program
}

// NewRule 编译规则表达式。表达式在构造时编译一次，
// cel.Program 线程安全，所有请求共享。
func NewRule(expr string) (*Rule, error) {
	env, err := cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("params", cel.DynType),
	)
	if err != nil {
		return nil, fmt.Errorf("rule: cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("rule: compile %q: %w", expr, issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("rule: program %q: %w", expr, err)
	}

	return &Rule{expr: expr, prg: prg}, nil
}

func (r *Rule) Name() string { return "filter.rule" }

func (r *Rule) ShouldFilter(_ context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error) {
	out, _, err := r.prg.Eval(r.buildInput(rctx, item))
	if err != nil {
		// 访问不存在的 key 等求值错误：表达式应使用 label.key != null 检查存在性
		return false, fmt.Errorf("rule: eval %q: %w", r.expr, err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("rule: expression %q must return boolean, got %T", r.expr, out.Value())
	}
	return result, nil
}

func (r *Rule) buildInput(rctx *core.RecommendContext, item *core.Item) map[string]any {
	labels := make(map[string]any, len(item.Labels))
	for k, v := range item.Labels {
		labels[k] = v.Value
	}

	var params map[string]any
	if rctx != nil {
		params = rctx.Params
	}
	if params == nil {
		params = map[string]any{}
	}

	return map[string]any{
		"item": map[string]any{
			"id":         item.ID,
			"score":      item.Score,
			"distance_m": item.DistanceM,
		},
		"label":  labels,
		"params": params,
	}
}

var _ Filter = (*Rule)(nil)
