package catalog

import (
	"context"
	"sync"

	"github.com/rushteam/jewelkit/core"
)

// MemoryCatalog 是内存实现的商品目录，用于测试/开发/原型。
// 商品顺序即“上架时间从新到旧”，热门兜底直接取前缀。
type MemoryCatalog struct {
	mu    sync.RWMutex
	items []core.CatalogItem
	byID  map[string]core.CatalogItem
}

func NewMemoryCatalog(items ...core.CatalogItem) *MemoryCatalog {
	c := &MemoryCatalog{
		byID: make(map[string]core.CatalogItem, len(items)),
	}
	c.SetProducts(items)
	return c
}

// SetProducts 整体替换目录内容（保持传入顺序）。
func (c *MemoryCatalog) SetProducts(items []core.CatalogItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make([]core.CatalogItem, len(items))
	copy(c.items, items)
	c.byID = make(map[string]core.CatalogItem, len(items))
	for _, it := range items {
		c.byID[it.ID] = it
	}
}

func (c *MemoryCatalog) ListProducts(ctx context.Context) ([]core.CatalogItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]core.CatalogItem, len(c.items))
	copy(out, c.items)
	return out, nil
}

func (c *MemoryCatalog) GetProduct(ctx context.Context, id string) (*core.CatalogItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, ok := c.byID[id]
	if !ok {
		return nil, core.ErrCatalogNotFound
	}
	return &it, nil
}

var _ core.CatalogService = (*MemoryCatalog)(nil)
