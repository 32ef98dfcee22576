package store

import (
	"bytes"
	"context"
	"testing"

	"github.com/rushteam/jewelkit/core"
)

func TestMemoryStore_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore()
	defer ms.Close()

	if _, err := ms.Get(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("Get(missing) error = %v, want store not found", err)
	}

	if err := ms.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := ms.Get(ctx, "k")
	if err != nil || !bytes.Equal(got, []byte("v")) {
		t.Errorf("Get(k) = (%q, %v), want (v, nil)", got, err)
	}

	if err := ms.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := ms.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Errorf("Get after delete error = %v, want store not found", err)
	}
}

func TestMemoryStore_BatchGetSet(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore()
	defer ms.Close()

	kvs := map[string][]byte{"a": []byte("1"), "b": []byte("2")}
	if err := ms.BatchSet(ctx, kvs); err != nil {
		t.Fatalf("BatchSet() error = %v", err)
	}

	got, err := ms.BatchGet(ctx, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("BatchGet() error = %v", err)
	}
	if len(got) != 2 || string(got["a"]) != "1" || string(got["b"]) != "2" {
		t.Errorf("BatchGet() = %v, want a=1 b=2", got)
	}
}

func TestMemoryStore_ZSet(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore()
	defer ms.Close()

	// 热门榜单：score 降序
	ms.ZAdd(ctx, "popular:items", 80, "p3")
	ms.ZAdd(ctx, "popular:items", 100, "p1")
	ms.ZAdd(ctx, "popular:items", 95, "p2")

	members, err := ms.ZRange(ctx, "popular:items", 0, 1)
	if err != nil {
		t.Fatalf("ZRange() error = %v", err)
	}
	if len(members) != 2 || members[0] != "p1" || members[1] != "p2" {
		t.Errorf("ZRange() = %v, want [p1 p2]", members)
	}

	score, err := ms.ZScore(ctx, "popular:items", "p2")
	if err != nil || score != 95 {
		t.Errorf("ZScore(p2) = (%v, %v), want (95, nil)", score, err)
	}
	if _, err := ms.ZScore(ctx, "popular:items", "nope"); !core.IsStoreNotFound(err) {
		t.Errorf("ZScore(nope) error = %v, want store not found", err)
	}

	// score 覆盖
	ms.ZAdd(ctx, "popular:items", 200, "p3")
	members, _ = ms.ZRange(ctx, "popular:items", 0, 0)
	if len(members) != 1 || members[0] != "p3" {
		t.Errorf("after score update ZRange top = %v, want [p3]", members)
	}
}

func TestMemoryStore_Hash(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore()
	defer ms.Close()

	ms.HSet(ctx, "product:p1", "name", []byte("Gold Ring"))
	ms.HSet(ctx, "product:p1", "category", []byte("Ring"))

	v, err := ms.HGet(ctx, "product:p1", "name")
	if err != nil || string(v) != "Gold Ring" {
		t.Errorf("HGet(name) = (%q, %v), want (Gold Ring, nil)", v, err)
	}
	if _, err := ms.HGet(ctx, "product:p1", "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("HGet(missing) error = %v, want store not found", err)
	}

	all, err := ms.HGetAll(ctx, "product:p1")
	if err != nil {
		t.Fatalf("HGetAll() error = %v", err)
	}
	if len(all) != 2 || string(all["category"]) != "Ring" {
		t.Errorf("HGetAll() = %v", all)
	}
}
