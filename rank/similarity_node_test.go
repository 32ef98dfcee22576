package rank

import (
	"context"
	"testing"
	"time"

	"github.com/rushteam/jewelkit/core"
	"github.com/rushteam/jewelkit/engine"
)

func indexedEngine() *engine.Engine {
	e := engine.New()
	e.UpdateProductFeatures([]core.CatalogItem{
		{ID: "p1", Category: "Ring", Metal: "Gold", Purity: "22k", Price: 20000, Weight: 5},
		{ID: "p2", Category: "Ring", Metal: "Gold", Purity: "22k", Price: 21000, Weight: 5.2},
		{ID: "p3", Category: "Necklace", Metal: "Silver", Purity: "92.5", Price: 8000, Weight: 15},
	})
	return e
}

func candidates(ids ...string) []*core.Item {
	out := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, core.NewItem(id))
	}
	return out
}

func TestSimilarityNode_AnchorMode(t *testing.T) {
	n := &SimilarityNode{Engine: indexedEngine()}
	rctx := &core.RecommendContext{
		UserID: "u1",
		Params: map[string]any{"anchor_product_id": "p1"},
	}

	items, err := n.Process(context.Background(), rctx, candidates("p3", "p2"))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if items[0].ID != "p2" || items[1].ID != "p3" {
		t.Errorf("order = [%s %s], want [p2 p3]", items[0].ID, items[1].ID)
	}
	if items[0].Score <= items[1].Score {
		t.Errorf("scores not descending: %v <= %v", items[0].Score, items[1].Score)
	}
	if got := items[0].Labels["rank_target"].Value; got != "anchor" {
		t.Errorf("rank_target = %q, want anchor", got)
	}
}

func TestSimilarityNode_ProfileMode(t *testing.T) {
	e := indexedEngine()
	e.TrackInteraction(core.InteractionEvent{
		ProductID: "p1", Type: core.InteractionCart, Timestamp: time.Now(),
		Category: "Ring", Metal: "Gold", Purity: "22k",
	})

	n := &SimilarityNode{Engine: e}
	items, err := n.Process(context.Background(), &core.RecommendContext{UserID: "u1"}, candidates("p3", "p2"))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if items[0].ID != "p2" {
		t.Errorf("top item = %s, want p2", items[0].ID)
	}
	if got := items[0].Labels["rank_target"].Value; got != "profile" {
		t.Errorf("rank_target = %q, want profile", got)
	}
}

func TestSimilarityNode_ColdStartKeepsOrder(t *testing.T) {
	// 无锚点、无画像：不改分，候选保持召回顺序
	n := &SimilarityNode{Engine: indexedEngine()}
	in := candidates("p3", "p2", "p1")

	items, err := n.Process(context.Background(), &core.RecommendContext{}, in)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	for i, want := range []string{"p3", "p2", "p1"} {
		if items[i].ID != want {
			t.Errorf("items[%d] = %s, want %s (recall order preserved)", i, items[i].ID, want)
		}
	}
}

func TestSimilarityNode_UnindexedCandidateUntouched(t *testing.T) {
	n := &SimilarityNode{Engine: indexedEngine()}
	rctx := &core.RecommendContext{Params: map[string]any{"anchor_product_id": "p1"}}

	ghost := core.NewItem("ghost")
	ghost.Score = 0.42

	items, err := n.Process(context.Background(), rctx, []*core.Item{ghost})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if items[0].Score != 0.42 {
		t.Errorf("unindexed candidate score changed: %v", items[0].Score)
	}
}
