package rerank

import (
	"context"
	"testing"

	"github.com/rushteam/jewelkit/core"
	"github.com/rushteam/jewelkit/pkg/utils"
)

func TestTopNNode(t *testing.T) {
	mk := func(ids ...string) []*core.Item {
		out := make([]*core.Item, 0, len(ids))
		for _, id := range ids {
			out = append(out, core.NewItem(id))
		}
		return out
	}

	tests := []struct {
		name    string
		n       int
		items   []*core.Item
		wantLen int
	}{
		{name: "truncate", n: 2, items: mk("a", "b", "c"), wantLen: 2},
		{name: "n larger than input", n: 10, items: mk("a", "b"), wantLen: 2},
		{name: "n zero keeps all", n: 0, items: mk("a", "b", "c"), wantLen: 3},
		{name: "empty input", n: 3, items: nil, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &TopNNode{N: tt.n}
			got, err := node.Process(context.Background(), &core.RecommendContext{}, tt.items)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if len(got) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestDiversity(t *testing.T) {
	mk := func(id, category string) *core.Item {
		it := core.NewItem(id)
		if category != "" {
			it.Labels["category"] = utils.Label{Value: category, Source: "feature"}
		}
		return it
	}

	items := []*core.Item{
		mk("r1", "Ring"),
		mk("r2", "Ring"), // 同品类，应被去掉
		mk("n1", "Necklace"),
		mk("x1", ""), // 无品类，原样透传
	}

	node := &Diversity{}
	got, err := node.Process(context.Background(), &core.RecommendContext{}, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	wantIDs := []string{"r1", "n1", "x1"}
	if len(got) != len(wantIDs) {
		t.Fatalf("len = %d, want %d", len(got), len(wantIDs))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("got[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestDiversity_MetaFallback(t *testing.T) {
	a := core.NewItem("a")
	a.Meta["category"] = "Ring"
	b := core.NewItem("b")
	b.Meta["category"] = "Ring"

	node := &Diversity{}
	got, err := node.Process(context.Background(), &core.RecommendContext{}, []*core.Item{a, b})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("meta fallback dedup failed: %+v", got)
	}
}
