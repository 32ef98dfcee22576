package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rushteam/jewelkit/core"
)

// HTTPCatalog 是商城后端目录接口的客户端实现。
//
// 约定两个端点：
//   - GET {base}/products            → 商品列表（按上架时间从新到旧）
//   - GET {base}/products/{id}      → 单个商品详情，404 视为不存在
//
// 超时策略属于 HTTP Client（引擎本身不做超时/重试）；
// 请求失败返回错误，由引擎在边界兜底为空结果。
type HTTPCatalog struct {
	client  *http.Client
	baseURL string
}

// NewHTTPCatalog 创建目录客户端。
//
// 用法：
//
//	cat := catalog.NewHTTPCatalog("https://api.example.com/v1", 5*time.Second)
//	eng := engine.New(engine.WithCatalog(cat))
func NewHTTPCatalog(baseURL string, timeout time.Duration) *HTTPCatalog {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &HTTPCatalog{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// NewHTTPCatalogWithClient 使用自定义 HTTP 客户端创建目录客户端。
func NewHTTPCatalogWithClient(baseURL string, client *http.Client) *HTTPCatalog {
	return &HTTPCatalog{
		client:  client,
		baseURL: baseURL,
	}
}

func (c *HTTPCatalog) ListProducts(ctx context.Context) ([]core.CatalogItem, error) {
	var items []core.CatalogItem
	if err := c.getJSON(ctx, c.baseURL+"/products", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPCatalog) GetProduct(ctx context.Context, id string) (*core.CatalogItem, error) {
	var item core.CatalogItem
	u := c.baseURL + "/products/" + url.PathEscape(id)
	if err := c.getJSON(ctx, u, &item); err != nil {
		return nil, err
	}
	if item.ID == "" {
		return nil, core.ErrCatalogNotFound
	}
	return &item, nil
}

func (c *HTTPCatalog) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return core.ErrCatalogNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("catalog request: status=%d, body=%s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read catalog response: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse catalog response: %w", err)
	}
	return nil
}

var _ core.CatalogService = (*HTTPCatalog)(nil)
