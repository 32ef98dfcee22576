package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rushteam/jewelkit/core"
	"github.com/rushteam/jewelkit/store"
)

func TestMemoryCatalog(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCatalog(
		core.CatalogItem{ID: "p2", Name: "Newest"},
		core.CatalogItem{ID: "p1", Name: "Older"},
	)

	items, err := c.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	// 顺序即上架时间从新到旧
	if len(items) != 2 || items[0].ID != "p2" {
		t.Errorf("ListProducts() = %+v, want p2 first", items)
	}

	it, err := c.GetProduct(ctx, "p1")
	if err != nil || it.Name != "Older" {
		t.Errorf("GetProduct(p1) = (%+v, %v)", it, err)
	}

	if _, err := c.GetProduct(ctx, "nope"); !core.IsNotFound(err) {
		t.Errorf("GetProduct(nope) error = %v, want not found", err)
	}
}

func TestHTTPCatalog(t *testing.T) {
	products := []core.CatalogItem{
		{ID: "p1", Category: "Ring", Metal: "Gold", Purity: "22k", Price: 20000, Weight: 5, Name: "Gold Ring"},
		{ID: "p2", Category: "Necklace", Metal: "Silver", Purity: "92.5", Price: 8000, Weight: 15, Name: "Silver Chain"},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products":
			json.NewEncoder(w).Encode(products)
		case "/products/p1":
			json.NewEncoder(w).Encode(products[0])
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	c := NewHTTPCatalog(srv.URL, 0)

	items, err := c.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if len(items) != 2 || items[0].ID != "p1" {
		t.Errorf("ListProducts() = %+v", items)
	}

	it, err := c.GetProduct(ctx, "p1")
	if err != nil {
		t.Fatalf("GetProduct(p1) error = %v", err)
	}
	if it.Metal != "Gold" || it.Price != 20000 {
		t.Errorf("GetProduct(p1) = %+v", it)
	}

	if _, err := c.GetProduct(ctx, "missing"); !core.IsNotFound(err) {
		t.Errorf("GetProduct(missing) error = %v, want not found", err)
	}
}

func TestCachedCatalog(t *testing.T) {
	ctx := context.Background()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		switch r.URL.Path {
		case "/products":
			json.NewEncoder(w).Encode([]core.CatalogItem{{ID: "p1", Name: "Gold Ring"}})
		case "/products/p1":
			json.NewEncoder(w).Encode(core.CatalogItem{ID: "p1", Name: "Gold Ring"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	ms := store.NewMemoryStore()
	defer ms.Close()

	c := NewCachedCatalog(NewHTTPCatalog(srv.URL, 0), ms)

	// 第一次回源，第二次命中缓存
	for i := 0; i < 2; i++ {
		items, err := c.ListProducts(ctx)
		if err != nil {
			t.Fatalf("ListProducts() #%d error = %v", i, err)
		}
		if len(items) != 1 || items[0].ID != "p1" {
			t.Errorf("ListProducts() #%d = %+v", i, items)
		}
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("origin hits after cached listing = %d, want 1", got)
	}

	for i := 0; i < 2; i++ {
		it, err := c.GetProduct(ctx, "p1")
		if err != nil || it.ID != "p1" {
			t.Fatalf("GetProduct() #%d = (%+v, %v)", i, it, err)
		}
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Errorf("origin hits after cached detail = %d, want 2", got)
	}

	// 缓存坏数据：清掉回源
	if err := ms.Set(ctx, "catalog:product:p1", []byte("not json")); err != nil {
		t.Fatal(err)
	}
	it, err := c.GetProduct(ctx, "p1")
	if err != nil || it.ID != "p1" {
		t.Errorf("GetProduct() after cache corruption = (%+v, %v)", it, err)
	}
	if got := atomic.LoadInt32(&hits); got != 3 {
		t.Errorf("origin hits after corrupted cache = %d, want 3", got)
	}
}
