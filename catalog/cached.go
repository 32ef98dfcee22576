package catalog

import (
	"context"
	"encoding/json"

	"github.com/rushteam/jewelkit/core"
)

// CachedCatalog 是目录协作方的缓存装饰器：详情和列表先查 Store，
// 未命中再回源并写缓存。价格/库存时效性由 TTL 控制。
//
// 缓存 key：
//   - 详情：catalog:product:{id}
//   - 列表：catalog:listing
type CachedCatalog struct {
	next  core.CatalogService
	store core.Store

	// TTLSeconds 缓存过期时间（秒），默认 300。
	TTLSeconds int
}

func NewCachedCatalog(next core.CatalogService, store core.Store) *CachedCatalog {
	return &CachedCatalog{
		next:       next,
		store:      store,
		TTLSeconds: 300,
	}
}

func (c *CachedCatalog) ListProducts(ctx context.Context) ([]core.CatalogItem, error) {
	const key = "catalog:listing"

	if data, err := c.store.Get(ctx, key); err == nil {
		var items []core.CatalogItem
		if json.Unmarshal(data, &items) == nil {
			return items, nil
		}
		// 缓存坏数据：清掉回源
		_ = c.store.Delete(ctx, key)
	}

	items, err := c.next.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(items); err == nil {
		_ = c.store.Set(ctx, key, data, c.TTLSeconds)
	}
	return items, nil
}

func (c *CachedCatalog) GetProduct(ctx context.Context, id string) (*core.CatalogItem, error) {
	key := "catalog:product:" + id

	if data, err := c.store.Get(ctx, key); err == nil {
		var item core.CatalogItem
		if json.Unmarshal(data, &item) == nil && item.ID != "" {
			return &item, nil
		}
		_ = c.store.Delete(ctx, key)
	}

	item, err := c.next.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(item); err == nil {
		_ = c.store.Set(ctx, key, data, c.TTLSeconds)
	}
	return item, nil
}

var _ core.CatalogService = (*CachedCatalog)(nil)
