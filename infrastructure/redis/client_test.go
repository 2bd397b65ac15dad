package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewClientFromRedis(rdb), mr
}

func TestJSONRoundtrip(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	if err := client.SetJSON(ctx, "k", payload{Name: "groceries", Count: 3}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got payload
	if err := client.GetJSON(ctx, "k", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "groceries" || got.Count != 3 {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
}

func TestGetJSONMiss(t *testing.T) {
	client, _ := newTestClient(t)

	var got map[string]any
	err := client.GetJSON(context.Background(), "absent", &got)
	if err == nil {
		t.Fatal("expected error for missing key")
	}
	if !IsCacheMiss(err) {
		t.Fatalf("expected cache miss, got %v", err)
	}
}

func TestExpiration(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	if err := client.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := client.Get(ctx, "k"); !IsCacheMiss(err) {
		t.Fatalf("expected miss after expiry, got %v", err)
	}
}

func TestScanAndDelete(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	for _, key := range []string{"tasks:list:1", "tasks:list:2", "tasks:list:3", "other:1"} {
		if err := client.Set(ctx, key, "v", 0); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}

	deleted, err := client.ScanAndDelete(ctx, "tasks:list:*")
	if err != nil {
		t.Fatalf("scan and delete: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("expected 3 deleted, got %d", deleted)
	}

	exists, err := client.Exists(ctx, "other:1")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Fatal("unmatched key must survive")
	}

	exists, err = client.Exists(ctx, "tasks:list:1")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Fatal("matched key must be gone")
	}
}
