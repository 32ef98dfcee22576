package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rushteam/jewelkit/catalog"
	"github.com/rushteam/jewelkit/core"
)

// failingCatalog 模拟目录协作方故障。
type failingCatalog struct{}

func (failingCatalog) ListProducts(context.Context) ([]core.CatalogItem, error) {
	return nil, errors.New("catalog down")
}

func (failingCatalog) GetProduct(context.Context, string) (*core.CatalogItem, error) {
	return nil, errors.New("catalog down")
}

func demoCatalog() *catalog.MemoryCatalog {
	// 顺序即上架时间从新到旧
	return catalog.NewMemoryCatalog(
		core.CatalogItem{ID: "p4", Category: "Necklace", Metal: "Silver", Purity: "92.5", Price: 8000, Weight: 15, Name: "Silver Chain"},
		core.CatalogItem{ID: "p3", Category: "Ring", Metal: "Platinum", Purity: "95", Price: 60000, Weight: 6, Name: "Platinum Band"},
		core.CatalogItem{ID: "p2", Category: "Ring", Metal: "Gold", Purity: "22k", Price: 21000, Weight: 5.2, Name: "Gold Ring B"},
		core.CatalogItem{ID: "p1", Category: "Ring", Metal: "Gold", Purity: "22k", Price: 20000, Weight: 5, Name: "Gold Ring A"},
	)
}

func TestGetRecommendations_ColdStartFallsBackToPopular(t *testing.T) {
	ctx := context.Background()
	e := New(WithCatalog(demoCatalog()))

	recs := e.GetRecommendations(ctx, 2)
	if len(recs) != 2 {
		t.Fatalf("len(recs) = %d, want 2", len(recs))
	}
	// 兜底结果保持目录顺序（上架时间从新到旧），Score 为 0
	if recs[0].ProductID != "p4" || recs[1].ProductID != "p3" {
		t.Errorf("fallback order = [%s %s], want catalog order [p4 p3]", recs[0].ProductID, recs[1].ProductID)
	}
	for _, r := range recs {
		if r.Score != 0 {
			t.Errorf("fallback score = %v, want 0", r.Score)
		}
	}
}

func TestGetRecommendations_PersonalizedAfterInteractions(t *testing.T) {
	ctx := context.Background()
	cat := demoCatalog()
	e := New(WithCatalog(cat))

	items, _ := cat.ListProducts(ctx)
	e.UpdateProductFeatures(items)

	e.TrackInteraction(core.InteractionEvent{
		ProductID: "p1", Type: core.InteractionCart, Timestamp: time.Now(),
		Category: "Ring", Metal: "Gold", Purity: "22k",
	})

	recs := e.GetRecommendations(ctx, 3)
	if len(recs) != 3 {
		t.Fatalf("len(recs) = %d, want 3", len(recs))
	}
	// 画像 ≈ p1 自身特征：p1 相似度 1.0 排第一（已购过滤是
	// filter 层的职责，引擎不做排除），其次是另一只金戒
	if recs[0].ProductID != "p1" || recs[1].ProductID != "p2" {
		t.Errorf("top recs = [%s %s], want [p1 p2]", recs[0].ProductID, recs[1].ProductID)
	}
	if recs[0].Score <= 0 {
		t.Errorf("personalized rec should carry a positive score, got %v", recs[0].Score)
	}
}

func TestGetRecommendations_FailingCatalogYieldsEmpty(t *testing.T) {
	e := New(WithCatalog(failingCatalog{}))
	recs := e.GetRecommendations(context.Background(), 5)
	if recs == nil || len(recs) != 0 {
		t.Errorf("failing catalog should yield empty non-nil slice, got %v", recs)
	}
}

func TestGetRecommendations_NoCatalogColdStart(t *testing.T) {
	e := New()
	if recs := e.GetRecommendations(context.Background(), 5); len(recs) != 0 {
		t.Errorf("no catalog cold start should be empty, got %d", len(recs))
	}
}

func TestGetRecommendations_KZero(t *testing.T) {
	e := New(WithCatalog(demoCatalog()))
	if recs := e.GetRecommendations(context.Background(), 0); len(recs) != 0 {
		t.Errorf("k=0 should be empty, got %d", len(recs))
	}
}

func TestGetSimilarProducts(t *testing.T) {
	ctx := context.Background()
	cat := demoCatalog()
	e := New(WithCatalog(cat))
	items, _ := cat.ListProducts(ctx)
	e.UpdateProductFeatures(items)

	recs := e.GetSimilarProducts(ctx, "p1", 2)
	if len(recs) != 2 {
		t.Fatalf("len(recs) = %d, want 2", len(recs))
	}
	if recs[0].ProductID != "p2" {
		t.Errorf("top similar = %s, want p2", recs[0].ProductID)
	}
	for _, r := range recs {
		if r.ProductID == "p1" {
			t.Error("anchor must be excluded from its own recommendations")
		}
	}
}

func TestGetSimilarProducts_ResolvesUnknownAnchorOnce(t *testing.T) {
	ctx := context.Background()
	cat := demoCatalog()
	e := New(WithCatalog(cat))

	// 只灌入部分目录，锚点 p1 不在索引里
	e.UpdateProductFeatures([]core.CatalogItem{
		{ID: "p2", Category: "Ring", Metal: "Gold", Purity: "22k", Price: 21000, Weight: 5.2},
		{ID: "p3", Category: "Ring", Metal: "Platinum", Purity: "95", Price: 60000, Weight: 6},
	})

	recs := e.GetSimilarProducts(ctx, "p1", 5)
	if len(recs) == 0 {
		t.Fatal("anchor should be resolved via catalog and produce results")
	}
	if recs[0].ProductID != "p2" {
		t.Errorf("top similar = %s, want p2", recs[0].ProductID)
	}
	// 解析后的锚点应已灌入索引
	if _, ok := e.Features("p1"); !ok {
		t.Error("resolved anchor should be added to the index")
	}
}

func TestGetSimilarProducts_UnresolvableAnchor(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		e    *Engine
	}{
		{name: "no catalog", e: New()},
		{name: "catalog down", e: New(WithCatalog(failingCatalog{}))},
		{name: "unknown id", e: New(WithCatalog(demoCatalog()))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if recs := tt.e.GetSimilarProducts(ctx, "nope", 5); len(recs) != 0 {
				t.Errorf("unresolvable anchor should yield empty, got %d", len(recs))
			}
		})
	}
}

func TestGetSimilarProducts_EmptyAnchorID(t *testing.T) {
	e := New(WithCatalog(demoCatalog()))
	if recs := e.GetSimilarProducts(context.Background(), "", 5); len(recs) != 0 {
		t.Errorf("empty anchor id should yield empty, got %d", len(recs))
	}
}
