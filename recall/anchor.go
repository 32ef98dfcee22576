package recall

import (
	"context"

	"github.com/rushteam/jewelkit/core"
	"github.com/rushteam/jewelkit/engine"
	"github.com/rushteam/jewelkit/pipeline"
	"github.com/rushteam/jewelkit/pkg/conv"
	"github.com/rushteam/jewelkit/pkg/utils"
)

// Anchor 是锚点商品召回源（商品详情页的“相似商品”）。
// 锚点 ID 从 rctx.Params 取；不在索引中的锚点由 Engine
// 向目录解析一次，解析不到则返回空。
type Anchor struct {
	Engine *engine.Engine

	// ParamKey 是 rctx.Params 中锚点商品 ID 的 key，默认 "anchor_product_id"
	ParamKey string

	// TopK 返回 TopK 个商品，默认 20
	TopK int
}

func (r *Anchor) Name() string        { return "recall.anchor" }
func (r *Anchor) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *Anchor) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *Anchor) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Engine == nil || rctx == nil {
		return nil, nil
	}

	paramKey := r.ParamKey
	if paramKey == "" {
		paramKey = "anchor_product_id"
	}
	anchorID, _ := conv.ToString(rctx.Params[paramKey])
	if anchorID == "" {
		return nil, nil
	}

	topK := r.TopK
	if topK <= 0 {
		topK = 20
	}

	recs := r.Engine.GetSimilarProducts(ctx, anchorID, topK)
	out := make([]*core.Item, 0, len(recs))
	for _, rec := range recs {
		it := recommendationToItem(rec)
		it.PutLabel("recall_source", utils.Label{Value: "anchor", Source: "recall"})
		it.PutLabel("anchor_id", utils.Label{Value: anchorID, Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
