package filter

import (
	"context"

	"github.com/rushteam/jewelkit/core"
	"github.com/rushteam/jewelkit/engine"
)

// PurchasedFilter 过滤用户已购买的商品（珠宝复购率低，详情页
// 和个性化位一般不再推已购款）。
//
// 判定来源（命中任意一个即过滤）：
//   - Engine 的行为日志中存在该商品的 purchase 事件（会话内）
//   - Store 有序集合 {KeyPrefix}:{UserID} 包含该商品（跨会话，
//     由订单系统回写）
type PurchasedFilter struct {
	Engine *engine.Engine
	Store  core.KeyValueStore

	// KeyPrefix Store 中已购集合的 key 前缀，默认 "purchased"
	KeyPrefix string
}

func (f *PurchasedFilter) Name() string {
	return "filter.purchased"
}

func (f *PurchasedFilter) ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error) {
	if item == nil {
		return false, nil
	}

	if f.Engine != nil && f.Engine.HasPurchased(item.ID) {
		return true, nil
	}

	if f.Store != nil && rctx != nil && rctx.UserID != "" {
		keyPrefix := f.KeyPrefix
		if keyPrefix == "" {
			keyPrefix = "purchased"
		}
		if _, err := f.Store.ZScore(ctx, keyPrefix+":"+rctx.UserID, item.ID); err == nil {
			return true, nil
		}
	}

	return false, nil
}

var _ Filter = (*PurchasedFilter)(nil)
