package engine

import (
	"math"
	"sort"

	"github.com/rushteam/jewelkit/core"
)

// 相似度分量权重，合计恰好为 1.0。
// 类目维度做精确匹配，数值维度按假定上限归一化后取接近度。
const (
	weightCategory = 0.30
	weightMetal    = 0.25
	weightPurity   = 0.20
	weightPrice    = 0.15
	weightWeight   = 0.10

	// 归一化上限：价格按 50 万、克重按 50g 假定的最大差值。
	priceCeiling  = 500000
	weightCeiling = 50
)

// Similarity 计算两个商品特征的加权相似度，纯函数、确定性。
//
// 价格/克重差超过归一化上限时分量为负，加权和可能为负，
// 因此结果在 0 处截断；当前公式在非负输入下不会超过 1.0，
// 修改上限常量时需要重新验证这一不变式。
func Similarity(a, b core.ProductFeatures) float64 {
	score := 0.0

	if a.Category == b.Category {
		score += weightCategory
	}
	if a.Metal == b.Metal {
		score += weightMetal
	}
	if a.Purity == b.Purity {
		score += weightPurity
	}

	score += weightPrice * (1 - math.Abs(a.Price-b.Price)/priceCeiling)
	score += weightWeight * (1 - math.Abs(a.Weight-b.Weight)/weightCeiling)

	if score < 0 {
		return 0
	}
	return score
}

// FindSimilarProducts 对索引中除 target 自身外的所有商品打分，
// 按相似度降序返回前 k 个（同分按商品 ID 升序，保证可复现）。
//
// 自排除只按 ProductID 比较：合成画像的哨兵 ID 不会命中任何
// 真实商品，因此画像模式下全部索引商品都是候选。
// k <= 0 或索引为空时返回空结果；k 超过候选数时返回全部候选。
func (e *Engine) FindSimilarProducts(target core.ProductFeatures, k int) []core.Recommendation {
	if k <= 0 {
		return []core.Recommendation{}
	}

	e.mu.RLock()
	recs := make([]core.Recommendation, 0, len(e.index))
	for id, entry := range e.index {
		if id == target.ProductID {
			continue
		}
		recs = append(recs, core.Recommendation{
			ProductID: id,
			Score:     Similarity(target, entry.features),
			Name:      entry.name,
			Image:     entry.image,
			Price:     entry.features.Price,
		})
	}
	e.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].ProductID < recs[j].ProductID
	})

	if len(recs) > k {
		recs = recs[:k]
	}
	return recs
}
