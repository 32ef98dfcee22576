package recall

import (
	"context"

	"github.com/rushteam/jewelkit/core"
	"github.com/rushteam/jewelkit/pipeline"
	"github.com/rushteam/jewelkit/pkg/utils"
)

// Popular 是热门/上新召回源，主要用于冷启动兜底。
// 数据来源优先级：
//   - Store（KeyValueStore）：ZRange 读有序榜单（例如按销量维护的 "popular:items"）
//   - Catalog：上架时间从新到旧的商品列表
//   - IDs：内存 fallback 列表
//
// Popular 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Popular struct {
	Store   core.KeyValueStore
	Catalog core.CatalogService

	// Key 榜单在 Store 中的 key，默认 "popular:items"
	Key string

	// TopK 返回 TopK 个商品，默认 20
	TopK int

	// IDs fallback 内存列表
	IDs []string
}

func (r *Popular) Name() string        { return "recall.popular" }
func (r *Popular) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *Popular) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *Popular) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	topK := r.TopK
	if topK <= 0 {
		topK = 20
	}

	// 优先从 Store 榜单读取
	if r.Store != nil {
		key := r.Key
		if key == "" {
			key = "popular:items"
		}
		members, err := r.Store.ZRange(ctx, key, 0, int64(topK)-1)
		if err == nil && len(members) > 0 {
			return r.wrap(members, "store"), nil
		}
	}

	// 其次走目录的上新列表
	if r.Catalog != nil {
		items, err := r.Catalog.ListProducts(ctx)
		if err == nil && len(items) > 0 {
			if len(items) > topK {
				items = items[:topK]
			}
			out := make([]*core.Item, 0, len(items))
			for _, ci := range items {
				it := core.NewItem(ci.ID)
				if ci.Name != "" {
					it.Meta["name"] = ci.Name
				}
				if ci.Price > 0 {
					it.Meta["price"] = ci.Price
				}
				it.PutLabel("recall_source", utils.Label{Value: "popular", Source: "recall"})
				out = append(out, it)
			}
			return out, nil
		}
	}

	// Fallback：内存 IDs
	ids := r.IDs
	if len(ids) > topK {
		ids = ids[:topK]
	}
	return r.wrap(ids, "static"), nil
}

func (r *Popular) wrap(ids []string, origin string) []*core.Item {
	out := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		it := core.NewItem(id)
		it.PutLabel("recall_source", utils.Label{Value: "popular", Source: "recall"})
		it.PutLabel("popular_origin", utils.Label{Value: origin, Source: "recall"})
		out = append(out, it)
	}
	return out
}
