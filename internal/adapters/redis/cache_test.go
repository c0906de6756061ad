package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	redisad "opera_mock/internal/adapters/redis"
)

type entry struct {
	Code string `json:"code"`
	N    int    `json:"n"`
}

func newCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisad.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_SetGetDel(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	var got entry
	ok, err := c.Get(ctx, "property:AMS1", &got)
	if err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := c.Set(ctx, "property:AMS1", entry{Code: "AMS1", N: 3}, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !mr.Exists("opera:property:AMS1") {
		t.Fatalf("expected namespaced key in redis, keys=%v", mr.Keys())
	}
	if ttl := mr.TTL("opera:property:AMS1"); ttl != 60*time.Second {
		t.Fatalf("ttl: %v", ttl)
	}

	ok, err = c.Get(ctx, "property:AMS1", &got)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got != (entry{Code: "AMS1", N: 3}) {
		t.Fatalf("unexpected value: %+v", got)
	}

	if err := c.Del(ctx, "property:AMS1"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, _ = c.Get(ctx, "property:AMS1", &got)
	if ok {
		t.Fatalf("expected miss after del")
	}
}

func TestCache_ExpiresWithTTL(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k", entry{Code: "X"}, 10); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(11 * time.Second)

	var got entry
	if ok, _ := c.Get(ctx, "k", &got); ok {
		t.Fatalf("expected expiry")
	}
}

func TestCache_UndecodableValueIsMiss(t *testing.T) {
	c, mr := newCache(t)
	if err := mr.Set("opera:k", "not json"); err != nil {
		t.Fatal(err)
	}
	var got entry
	ok, err := c.Get(context.Background(), "k", &got)
	if ok || err == nil {
		t.Fatalf("expected miss with decode error, got ok=%v err=%v", ok, err)
	}
}

func TestCache_Ping(t *testing.T) {
	c, _ := newCache(t)
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
