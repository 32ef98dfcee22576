package recall

import (
	"context"

	"github.com/rushteam/jewelkit/core"
	"github.com/rushteam/jewelkit/engine"
	"github.com/rushteam/jewelkit/pipeline"
	"github.com/rushteam/jewelkit/pkg/utils"
)

// Profile 是画像驱动的个性化召回源：用 Engine 的偏好画像
// 对索引全量打分取 TopK。
// 冷启动（画像为空）时返回空，由 Fanout 中的 Popular 兜底。
// Profile 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Profile struct {
	Engine *engine.Engine

	// TopK 返回 TopK 个商品，默认 20
	TopK int
}

func (r *Profile) Name() string        { return "recall.profile" }
func (r *Profile) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *Profile) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *Profile) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Engine == nil {
		return nil, nil
	}

	profile := r.Engine.BuildPreferenceProfile()
	if profile == nil {
		return nil, nil
	}

	topK := r.TopK
	if topK <= 0 {
		topK = 20
	}

	recs := r.Engine.FindSimilarProducts(*profile, topK)
	out := make([]*core.Item, 0, len(recs))
	for _, rec := range recs {
		it := recommendationToItem(rec)
		it.PutLabel("recall_source", utils.Label{Value: "profile", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}

// recommendationToItem 把引擎输出转成 Pipeline Item，展示信息放 Meta。
func recommendationToItem(rec core.Recommendation) *core.Item {
	it := core.NewItem(rec.ProductID)
	it.Score = rec.Score
	if rec.Name != "" {
		it.Meta["name"] = rec.Name
	}
	if rec.Image != "" {
		it.Meta["image"] = rec.Image
	}
	if rec.Price > 0 {
		it.Meta["price"] = rec.Price
	}
	return it
}
