package catalog

import (
	"context"
	"fmt"

	feastsdk "github.com/feast-dev/feast/sdk/go"

	"github.com/rushteam/jewelkit/core"
)

// Feast 特征视图中的商品特征名。
// 实体为 product_id，特征值类型：string × 4（含 name）、double × 2。
const (
	feastFeatureCategory = "jewellery_products:category"
	feastFeatureMetal    = "jewellery_products:metal"
	feastFeaturePurity   = "jewellery_products:purity"
	feastFeaturePrice    = "jewellery_products:price"
	feastFeatureWeight   = "jewellery_products:weight"
	feastFeatureName     = "jewellery_products:name"
	feastFeatureImage    = "jewellery_products:image"
)

// FeastCatalog 从 Feast 在线特征库解析商品特征（锚点解析场景）。
//
// Feast 在线库按实体查询，没有全量列表语义，因此 ListProducts
// 返回 NOT_SUPPORTED——热门兜底请换用 HTTPCatalog 或用
// CachedCatalog 组合两者。
type FeastCatalog struct {
	client  *feastsdk.GrpcClient
	project string
}

// NewFeastCatalog 连接 Feast Feature Server（gRPC，默认端口 6565）。
func NewFeastCatalog(host string, port int, project string) (*FeastCatalog, error) {
	if port == 0 {
		port = 6565
	}
	client, err := feastsdk.NewGrpcClient(host, port)
	if err != nil {
		return nil, fmt.Errorf("connect feast: %w", err)
	}
	return &FeastCatalog{client: client, project: project}, nil
}

func (c *FeastCatalog) ListProducts(ctx context.Context) ([]core.CatalogItem, error) {
	return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeNotSupported,
		"catalog: feast online store cannot list products")
}

func (c *FeastCatalog) GetProduct(ctx context.Context, id string) (*core.CatalogItem, error) {
	req := &feastsdk.OnlineFeaturesRequest{
		Features: []string{
			feastFeatureCategory,
			feastFeatureMetal,
			feastFeaturePurity,
			feastFeaturePrice,
			feastFeatureWeight,
			feastFeatureName,
			feastFeatureImage,
		},
		Entities: []feastsdk.Row{
			{"product_id": feastsdk.StrVal(id)},
		},
		Project: c.project,
	}

	resp, err := c.client.GetOnlineFeatures(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("feast get online features: %w", err)
	}

	rows := resp.Rows()
	if len(rows) == 0 {
		return nil, core.ErrCatalogNotFound
	}
	row := rows[0]

	item := core.CatalogItem{
		ID:       id,
		Category: row[feastFeatureCategory].GetStringVal(),
		Metal:    row[feastFeatureMetal].GetStringVal(),
		Purity:   row[feastFeaturePurity].GetStringVal(),
		Price:    row[feastFeaturePrice].GetDoubleVal(),
		Weight:   row[feastFeatureWeight].GetDoubleVal(),
		Name:     row[feastFeatureName].GetStringVal(),
		Image:    row[feastFeatureImage].GetStringVal(),
	}

	// 在线库查不到实体时特征全为零值，视为不存在
	if item.Category == "" && item.Metal == "" && item.Name == "" && item.Price == 0 {
		return nil, core.ErrCatalogNotFound
	}
	return &item, nil
}

var _ core.CatalogService = (*FeastCatalog)(nil)
