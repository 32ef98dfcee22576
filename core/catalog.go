package core

import "context"

// CatalogService 是商品目录协作方的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（catalog）实现
//   - 引擎把目录当外部协作者：目录超时/报错由引擎兜底为空结果
//
// 实现：
//   - catalog.HTTPCatalog：商城后端的 listing / detail 接口
//   - catalog.MemoryCatalog：测试与原型
//   - catalog.CachedCatalog：Store 缓存装饰器
//   - catalog.FeastCatalog：Feast 在线特征库
type CatalogService interface {
	// ListProducts 返回商品列表，按上架时间从新到旧排序
	// （冷启动热门兜底依赖该排序，排序由协作方保证，引擎不重排）
	ListProducts(ctx context.Context) ([]CatalogItem, error)

	// GetProduct 按 ID 解析单个商品，不存在时返回 NOT_FOUND
	GetProduct(ctx context.Context, id string) (*CatalogItem, error)
}
