package rank

import (
	"context"
	"sort"

	"github.com/rushteam/jewelkit/core"
	"github.com/rushteam/jewelkit/engine"
	"github.com/rushteam/jewelkit/pipeline"
	"github.com/rushteam/jewelkit/pkg/conv"
	"github.com/rushteam/jewelkit/pkg/utils"
)

// SimilarityNode 是排序节点：把候选商品和目标特征做加权相似度打分。
//
// 目标特征的解析优先级：
//  1. rctx.Params[AnchorParamKey] 指定的锚点商品（详情页场景）
//  2. Engine 的用户偏好画像（个性化场景）
//
// 两者都拿不到时不改分（冷启动候选保持召回顺序）。
// 典型用法是放在 Fanout 之后，对多来源合并的候选统一排序。
type SimilarityNode struct {
	Engine *engine.Engine

	// AnchorParamKey 是 rctx.Params 中锚点商品 ID 的 key，默认 "anchor_product_id"
	AnchorParamKey string
}

func (n *SimilarityNode) Name() string        { return "rank.similarity" }
func (n *SimilarityNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *SimilarityNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Engine == nil || len(items) == 0 {
		return items, nil
	}

	target, source := n.resolveTarget(ctx, rctx)
	if target == nil {
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
		it.Score = engine.Similarity(*target, feat)
		it.PutLabel("rank_model", utils.Label{Value: "similarity", Source: "rank"})
		it.PutLabel("rank_target", utils.Label{Value: source, Source: "rank"})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (n *SimilarityNode) resolveTarget(ctx context.Context, rctx *core.RecommendContext) (*core.ProductFeatures, string) {
	paramKey := n.AnchorParamKey
	if paramKey == "" {
		paramKey = "anchor_product_id"
	}
	if rctx != nil {
		if anchorID, _ := conv.ToString(rctx.Params[paramKey]); anchorID != "" {
			if feat, ok := n.Engine.Features(anchorID); ok {
				return &feat, "anchor"
			}
		}
	}
	if profile := n.Engine.BuildPreferenceProfile(); profile != nil {
		return profile, "profile"
	}
	return nil, ""
}
