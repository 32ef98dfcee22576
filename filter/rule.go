package filter

import (
	"context"

	"github.com/rushteam/jewelkit/core"
	"github.com/rushteam/jewelkit/pkg/dsl"
)

// RuleFilter 是基于 Label DSL（CEL 表达式）的业务规则过滤器。
// 表达式返回 true 时命中过滤。
//
// 示例：
//   - `item.score < 0.2` → 过滤相似度过低的候选
//   - `label.metal == "Gold" && item.meta.price > 200000.0` → 过滤高价金饰
//   - `label.recall_source.contains("popular")` → 过滤热门兜底结果
type RuleFilter struct {
	// Expr CEL 表达式，空表达式不过滤任何商品
	Expr string
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error) {
	if f.Expr == "" || item == nil {
		return false, nil
	}
	return dsl.NewEval(item, rctx).Evaluate(f.Expr)
}

var _ Filter = (*RuleFilter)(nil)
