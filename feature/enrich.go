// Package feature 提供 Pipeline 的特征补充节点。
package feature

import (
	"context"

	"github.com/rushteam/jewelkit/core"
	"github.com/rushteam/jewelkit/engine"
	"github.com/rushteam/jewelkit/pipeline"
	"github.com/rushteam/jewelkit/pkg/utils"
)

// EnrichNode 是特征注入节点：把特征索引中的商品属性补充到
// Pipeline Item 上（labels + meta + features）。
//
// 补充内容：
//   - Labels: category / metal / purity（供 Diversity、RuleFilter 使用）
//   - Meta: price / weight
//   - Features: price / weight（数值特征，供自定义 Rank 使用）
//
// 索引中不存在的商品原样透传（锚点解析由 recall 阶段负责）。
type EnrichNode struct {
	Engine *engine.Engine
}

func (n *EnrichNode) Name() string        { return "feature.enrich" }
func (n *EnrichNode) Kind() pipeline.Kind { return pipeline.KindPostProcess }

func (n *EnrichNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Engine == nil || len(items) == 0 {
		return items, nil
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		feat, ok := n.Engine.Features(it.ID)
		if !ok {
			continue
		}

		if feat.Category != "" {
			it.PutLabel("category", utils.Label{Value: feat.Category, Source: "feature"})
		}
		if feat.Metal != "" {
			it.PutLabel("metal", utils.Label{Value: feat.Metal, Source: "feature"})
		}
		if feat.Purity != "" {
			it.PutLabel("purity", utils.Label{Value: feat.Purity, Source: "feature"})
		}

		if it.Meta == nil {
			it.Meta = make(map[string]any)
		}
		it.Meta["price"] = feat.Price
		it.Meta["weight"] = feat.Weight

		if it.Features == nil {
			it.Features = make(map[string]float64)
		}
		it.Features["price"] = feat.Price
		it.Features["weight"] = feat.Weight
	}

	return items, nil
}
