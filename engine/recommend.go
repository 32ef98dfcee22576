package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/rushteam/jewelkit/core"
)

// GetRecommendations 返回个性化推荐（画像驱动）。
//
// 冷启动（日志为空、构建不出画像）时走热门兜底：
// 取目录协作方按上架时间排序的前 k 个商品，Score 为 0。
// 目录失败时记录日志并返回空结果，不向调用方抛错，
// 因此可以在每次页面曝光时放心地投机调用。
func (e *Engine) GetRecommendations(ctx context.Context, k int) []core.Recommendation {
	if k <= 0 {
		return []core.Recommendation{}
	}

	profile := e.BuildPreferenceProfile()
	if profile == nil {
		return e.popularProducts(ctx, k)
	}
	return e.FindSimilarProducts(*profile, k)
}

// GetSimilarProducts 返回锚点商品的相似推荐。
//
// 锚点不在索引中时，向目录协作方解析一次并灌入索引后重试；
// 仍解析不到（或目录失败）时返回空结果——空结果即“暂无推荐”。
func (e *Engine) GetSimilarProducts(ctx context.Context, productID string, k int) []core.Recommendation {
	if productID == "" || k <= 0 {
		return []core.Recommendation{}
	}

	feat, ok := e.Features(productID)
	if !ok {
		if e.catalog == nil {
			return []core.Recommendation{}
		}
		item, err := e.catalog.GetProduct(ctx, productID)
		if err != nil || item == nil {
			e.logger.Warn("anchor product unresolvable",
				zap.String("product_id", productID),
				zap.Error(err))
			return []core.Recommendation{}
		}
		e.UpdateProductFeatures([]core.CatalogItem{*item})

		feat, ok = e.Features(productID)
		if !ok {
			return []core.Recommendation{}
		}
	}

	return e.FindSimilarProducts(feat, k)
}

// popularProducts 是冷启动兜底：目录协作方的最新上架商品。
// 排序由协作方保证（上架时间从新到旧），引擎不重排。
func (e *Engine) popularProducts(ctx context.Context, k int) []core.Recommendation {
	if e.catalog == nil {
		return []core.Recommendation{}
	}

	items, err := e.catalog.ListProducts(ctx)
	if err != nil {
		e.logger.Warn("popular products fallback failed", zap.Error(err))
		return []core.Recommendation{}
	}

	if len(items) > k {
		items = items[:k]
	}
	recs := make([]core.Recommendation, 0, len(items))
	for _, it := range items {
		recs = append(recs, core.Recommendation{
			ProductID: it.ID,
			Score:     0,
			Name:      it.Name,
			Image:     it.Image,
			Price:     it.Price,
		})
	}
	return recs
}
