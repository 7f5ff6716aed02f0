package console

import (
	"errors"
	"testing"
)

func TestQueryCacheDiscardsSupersededTicket(t *testing.T) {
	c := NewQueryCache()
	key := RecipeItemsKey(3)

	first := c.Begin(key)
	second := c.Begin(key)

	if !c.Resolve(second, "new") {
		t.Fatal("expected latest ticket to resolve")
	}
	if c.Resolve(first, "old") {
		t.Fatal("expected superseded ticket to be discarded")
	}
	if c.Fail(first, errors.New("boom")) {
		t.Fatal("expected superseded failure to be discarded")
	}

	e, ok := c.Get(key)
	if !ok || e.Data != "new" || e.Status != StatusSuccess {
		t.Fatalf("expected fresh entry with new data, got %+v", e)
	}
}

func TestQueryCacheKeepsDataWhileLoading(t *testing.T) {
	c := NewQueryCache()
	key := RecipesKey()

	c.Resolve(c.Begin(key), []string{"a"})
	c.Begin(key)

	e, _ := c.Get(key)
	if e.Status != StatusLoading || e.Data == nil {
		t.Fatalf("expected loading entry with previous data, got %+v", e)
	}
}

func TestQueryCacheInvalidateIsPerKey(t *testing.T) {
	c := NewQueryCache()
	c.Resolve(c.Begin(RecipeItemsKey(3)), "three")
	c.Resolve(c.Begin(RecipeItemsKey(5)), "five")

	c.Invalidate(RecipeItemsKey(3))

	three, _ := c.Get(RecipeItemsKey(3))
	five, _ := c.Get(RecipeItemsKey(5))
	if three.Status != StatusStale || three.Data != "three" {
		t.Fatalf("expected stale entry for 3, got %+v", three)
	}
	if !five.Fresh() || five.Data != "five" {
		t.Fatalf("expected entry for 5 untouched, got %+v", five)
	}
}

func TestQueryCacheDropDiscardsInFlight(t *testing.T) {
	c := NewQueryCache()
	key := RecipeItemsKey(7)

	ticket := c.Begin(key)
	c.Drop(key)

	if c.Resolve(ticket, "late") {
		t.Fatal("expected result for dropped key to be discarded")
	}
	if _, ok := c.Get(key); ok {
		t.Fatal("expected no entry after drop")
	}
}

func TestQueryCacheFail(t *testing.T) {
	c := NewQueryCache()
	key := InventoryKey()

	boom := errors.New("boom")
	if !c.Fail(c.Begin(key), boom) {
		t.Fatal("expected failure to be recorded")
	}
	e, _ := c.Get(key)
	if e.Status != StatusError || !errors.Is(e.Err, boom) || e.Fresh() {
		t.Fatalf("unexpected entry %+v", e)
	}
}
