package core

import "time"

// InteractionType 是用户行为类型。强度递进但不是状态机：
// 购买后仍可继续浏览，行为之间没有迁移约束。
type InteractionType string

const (
	InteractionView     InteractionType = "view"
	InteractionWishlist InteractionType = "wishlist"
	InteractionCart     InteractionType = "cart"
	InteractionPurchase InteractionType = "purchase"
)

// BaseWeight 返回行为类型的基础权重。
// 未识别的类型不报错，按最低权重 1（等同 view）处理。
func (t InteractionType) BaseWeight() float64 {
	switch t {
	case InteractionPurchase:
		return 5
	case InteractionCart:
		return 4
	case InteractionWishlist:
		return 3
	case InteractionView:
		return 1
	default:
		return 1
	}
}

// InteractionEvent 是一次用户行为。
// Category/Metal/Purity 是事件发生时商品属性的冗余快照，
// 画像构建直接使用快照，不依赖特征索引中是否存在该商品
// （价格/克重会顺带尝试和索引 join）。
type InteractionEvent struct {
	ProductID string
	Type      InteractionType
	Timestamp time.Time
	Category  string
	Metal     string
	Purity    string
}
