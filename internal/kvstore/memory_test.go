package kvstore

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestMemoryStore_GetSet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	if _, ok, err := store.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("Get(missing) = %v, %v; want absent", ok, err)
	}

	if err := store.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	value, ok, err := store.Get(ctx, "k")
	if err != nil || !ok || value != "v2" {
		t.Errorf("Get(k) = %q, %v, %v; want v2", value, ok, err)
	}

	// an empty value is present, not absent
	if err := store.Set(ctx, "empty", ""); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok, _ := store.Get(ctx, "empty"); !ok {
		t.Error("Get(empty) reported absent")
	}
}

func TestMemoryStore_QuotaKeepsOldValue(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(16)

	if err := store.Set(ctx, "key", "small"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	err := store.Set(ctx, "key", strings.Repeat("x", 32))
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("Set() error = %v, want ErrQuotaExceeded", err)
	}

	value, _, _ := store.Get(ctx, "key")
	if value != "small" {
		t.Errorf("Get() after rejected Set = %q, want small", value)
	}
	if store.Used() != len("key")+len("small") {
		t.Errorf("Used() = %d", store.Used())
	}
}

func TestMemoryStore_ReplaceFreesOldValue(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(20)

	// 3 + 15 bytes, then a same-size replacement must still fit
	if err := store.Set(ctx, "key", strings.Repeat("a", 15)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(ctx, "key", strings.Repeat("b", 15)); err != nil {
		t.Errorf("replacing with an equal-size value failed: %v", err)
	}
	if err := store.Set(ctx, "key", "c"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if store.Used() != 4 {
		t.Errorf("Used() = %d, want 4", store.Used())
	}
}

// Property: Used always equals the byte size of the stored entries
func TestProperty_MemoryStoreAccounting(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("used matches stored bytes and never exceeds capacity", prop.ForAll(
		func(keys []string, sizes []int) bool {
			ctx := context.Background()
			store := NewMemoryStore(64)

			for i, key := range keys {
				size := 0
				if i < len(sizes) {
					size = sizes[i]
				}
				_ = store.Set(ctx, key, strings.Repeat("v", size))
			}

			total := 0
			for k, v := range store.data {
				total += len(k) + len(v)
			}
			if total != store.Used() {
				t.Logf("FAIL: used %d, stored %d", store.Used(), total)
				return false
			}
			return store.Used() <= 64
		},
		gen.SliceOf(gen.RegexMatch(`[a-c]{1,2}`)),
		gen.SliceOf(gen.IntRange(0, 40)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
