package engine

import (
	"math"
	"time"

	"github.com/rushteam/jewelkit/core"
)

const (
	// ProfileProductID 是偏好画像的哨兵 ID。
	// 不会与真实商品 ID 冲突，因此相似度扫描时画像不会触发自排除。
	ProfileProductID = "__user_profile__"

	// 窗口内没有任何行为能和索引 join 出价格/克重时的兜底值。
	defaultProfilePrice  = 50000
	defaultProfileWeight = 5

	// 衰减参数：24 小时内不衰减，之后按天数指数衰减，下限 0.1。
	decayFreshHours = 24
	decayRate       = 0.1
	decayFloor      = 0.1
)

// decayFactor 计算行为的时间衰减因子。
// 最近 24 小时内为 1.0；更早的按 max(0.1, exp(-0.1*days)) 衰减。
// 下限 0.1 保证很久以前但反复出现的信号不会完全消失。
func decayFactor(now, ts time.Time) float64 {
	hours := now.Sub(ts).Hours()
	if hours <= decayFreshHours {
		return 1.0
	}
	days := hours / 24
	return math.Max(decayFloor, math.Exp(-decayRate*days))
}

// BuildPreferenceProfile 从最近的行为构建合成的偏好画像。
//
// 算法：
//  1. 取最近 profileWindow 条行为
//  2. 每条行为权重 = 行为类型基础权重 × 时间衰减因子
//  3. 类目/材质/纯度按加权投票取胜者（快照字段，不回查索引）；
//     同分时取字典序更小的值，保证可复现
//  4. 价格/克重对能命中索引的行为做加权平均，无一命中则用兜底值
//
// 日志为空或总权重为 0 时返回 nil（冷启动，不是错误）。
func (e *Engine) BuildPreferenceProfile() *core.ProductFeatures {
	events := e.recentInteractions()
	if len(events) == 0 {
		return nil
	}

	now := e.now()

	categoryVotes := make(map[string]float64)
	metalVotes := make(map[string]float64)
	purityVotes := make(map[string]float64)

	var totalWeight float64
	var priceSum, priceWeight float64
	var weightSum, weightWeight float64

	for _, ev := range events {
		w := ev.Type.BaseWeight() * decayFactor(now, ev.Timestamp)
		totalWeight += w

		if ev.Category != "" {
			categoryVotes[ev.Category] += w
		}
		if ev.Metal != "" {
			metalVotes[ev.Metal] += w
		}
		if ev.Purity != "" {
			purityVotes[ev.Purity] += w
		}

		// 价格/克重不在行为快照里，顺带和索引 join
		if feat, ok := e.Features(ev.ProductID); ok {
			priceSum += feat.Price * w
			priceWeight += w
			weightSum += feat.Weight * w
			weightWeight += w
		}
	}

	// 衰减下限保证权重不会为 0，这里仍然兜底一次
	if totalWeight == 0 {
		return nil
	}

	price := float64(defaultProfilePrice)
	if priceWeight > 0 {
		price = priceSum / priceWeight
	}
	weight := float64(defaultProfileWeight)
	if weightWeight > 0 {
		weight = weightSum / weightWeight
	}

	return &core.ProductFeatures{
		ProductID: ProfileProductID,
		Category:  topVote(categoryVotes),
		Metal:     topVote(metalVotes),
		Purity:    topVote(purityVotes),
		Price:     price,
		Weight:    weight,
	}
}

// topVote 返回累计权重最高的取值；同分时取字典序更小的，保证确定性。
func topVote(votes map[string]float64) string {
	best := ""
	bestWeight := 0.0
	for v, w := range votes {
		if w > bestWeight || (w == bestWeight && (best == "" || v < best)) {
			best = v
			bestWeight = w
		}
	}
	return best
}
