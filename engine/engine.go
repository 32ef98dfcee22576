package engine

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rushteam/jewelkit/core"
)

const (
	// maxLogSize 是行为日志的保留上限，超出后淘汰最旧的事件（FIFO）。
	maxLogSize = 100

	// profileWindow 是画像构建的工作窗口：只看最近 50 条行为。
	// 窗口比保留上限短，保证画像偏向近期偏好。
	profileWindow = 50
)

// indexEntry 是特征索引中的一条记录：特征 + 展示信息。
type indexEntry struct {
	features core.ProductFeatures
	name     string
	image    string
}

// Engine 是推荐引擎：维护商品特征索引和有界行为日志，
// 基于用户偏好画像或锚点商品输出加权相似度 Top-K。
//
// 设计要点：
//   - 显式构造的服务对象，不使用包级单例，便于测试隔离与多实例
//   - RWMutex 保护索引与日志，并发安全
//   - 状态只在内存中，进程重启后由目录快照和新行为重建
//   - 目录协作方失败一律兜底为空结果，不向调用方抛错
type Engine struct {
	mu    sync.RWMutex
	index map[string]indexEntry
	log   []core.InteractionEvent

	catalog core.CatalogService
	logger  *zap.Logger
	now     func() time.Time
}

// Option 是 Engine 的构造配置。
type Option func(*Engine)

// WithCatalog 注入商品目录协作方（热门兜底 / 锚点解析依赖它）。
func WithCatalog(c core.CatalogService) Option {
	return func(e *Engine) { e.catalog = c }
}

// WithLogger 注入日志器，默认 zap.NewNop()。
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock 注入时钟（测试用，控制时间衰减）。
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New 创建一个推荐引擎实例。
func New(opts ...Option) *Engine {
	e := &Engine{
		index:  make(map[string]indexEntry),
		log:    make([]core.InteractionEvent, 0, maxLogSize),
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TrackInteraction 追加一条用户行为。
// 不校验行为类型：未识别的类型按默认权重 1 计入，不拒绝。
// 日志超过上限时淘汰最旧的事件。
func (e *Engine) TrackInteraction(ev core.InteractionEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.log = append(e.log, ev)
	if len(e.log) > maxLogSize {
		e.log = e.log[len(e.log)-maxLogSize:]
	}
}

// InteractionCount 返回当前日志长度（观测用）。
func (e *Engine) InteractionCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.log)
}

// HasPurchased 判断日志中是否存在该商品的购买行为（供过滤器使用）。
func (e *Engine) HasPurchased(productID string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, ev := range e.log {
		if ev.ProductID == productID && ev.Type == core.InteractionPurchase {
			return true
		}
	}
	return false
}

// UpdateProductFeatures 把目录快照灌入特征索引。
// 同一 ID 重复灌入时整条覆盖（last-write-wins，不做 merge）；
// 缺失的类目字段为空串、数值字段为 0，由 CatalogItem 零值保证。
// 幂等：同一份目录灌多少次，索引内容一致。
func (e *Engine) UpdateProductFeatures(items []core.CatalogItem) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, it := range items {
		if it.ID == "" {
			continue
		}
		e.index[it.ID] = indexEntry{
			features: it.Features(),
			name:     it.Name,
			image:    it.Image,
		}
	}
}

// Features 按 ID 查询索引中的特征记录。
func (e *Engine) Features(productID string) (core.ProductFeatures, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	entry, ok := e.index[productID]
	if !ok {
		return core.ProductFeatures{}, false
	}
	return entry.features, true
}

// IndexSize 返回特征索引的商品数（观测用）。
func (e *Engine) IndexSize() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.index)
}

// recentInteractions 返回画像窗口内的行为快照（最近 profileWindow 条）。
func (e *Engine) recentInteractions() []core.InteractionEvent {
	e.mu.RLock()
	defer e.mu.RUnlock()

	n := len(e.log)
	if n == 0 {
		return nil
	}
	start := 0
	if n > profileWindow {
		start = n - profileWindow
	}
	out := make([]core.InteractionEvent, n-start)
	copy(out, e.log[start:])
	return out
}
