package ristretto

import (
	"context"
	"testing"
	"time"
)

func TestCacheSetGetDelete(t *testing.T) {
	c, err := New(1 << 20)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	c.c.Wait()

	data, ok, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if string(data) != "v" {
		t.Fatalf("expected v, got %s", data)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	c.c.Wait()

	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatal("expected miss after Delete")
	}
}

func TestCacheMiss(t *testing.T) {
	c, err := New(1 << 20)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, ok, _ := c.Get(context.Background(), "absent"); ok {
		t.Fatal("expected miss for absent key")
	}
}

func TestCacheTTL(t *testing.T) {
	c, err := New(1 << 20)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "short", []byte("x"), 10*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	c.c.Wait()
	time.Sleep(50 * time.Millisecond)

	if _, ok, _ := c.Get(ctx, "short"); ok {
		t.Fatal("expected expiry after TTL")
	}
}
