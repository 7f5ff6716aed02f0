package console

import (
	"sync"
	"time"
)

type Resource string

const (
	ResourceRecipes     Resource = "recipes"
	ResourceInventory   Resource = "inventory"
	ResourceRecipeItems Resource = "recipe-items"
)

// Key identifies one cached query. RecipeID is zero for the list resources.
type Key struct {
	Resource Resource
	RecipeID int
}

func RecipesKey() Key   { return Key{Resource: ResourceRecipes} }
func InventoryKey() Key { return Key{Resource: ResourceInventory} }

func RecipeItemsKey(recipeID int) Key {
	return Key{Resource: ResourceRecipeItems, RecipeID: recipeID}
}

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusStale   Status = "stale"
)

type Entry struct {
	Data      any
	FetchedAt time.Time
	Status    Status
	Err       error
	seq       uint64
}

// Fresh reports whether the entry holds data that has not been invalidated
func (e Entry) Fresh() bool {
	return e.Status == StatusSuccess
}

// Ticket is issued when a fetch starts. Only the newest ticket of a key may
// store a result.
type Ticket struct {
	Key Key
	seq uint64
}

type QueryCache struct {
	mu      sync.Mutex
	entries map[Key]*Entry
	seq     uint64
	now     func() time.Time
}

func NewQueryCache() *QueryCache {
	return &QueryCache{
		entries: make(map[Key]*Entry),
		now:     time.Now,
	}
}

// Begin marks the key as loading and supersedes any fetch still in flight for it.
// Previously fetched data stays readable while loading.
func (c *QueryCache) Begin(key Key) Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	e, ok := c.entries[key]
	if !ok {
		e = &Entry{Status: StatusIdle}
		c.entries[key] = e
	}
	e.seq = c.seq
	e.Status = StatusLoading
	return Ticket{Key: key, seq: c.seq}
}

// Resolve stores data for the ticket's key. It returns false when the ticket
// was superseded or the entry dropped, in which case nothing changes.
func (c *QueryCache) Resolve(t Ticket, data any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.current(t)
	if !ok {
		return false
	}
	e.Data = data
	e.Err = nil
	e.Status = StatusSuccess
	e.FetchedAt = c.now()
	return true
}

// Fail records a fetch error under the same rules as Resolve
func (c *QueryCache) Fail(t Ticket, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.current(t)
	if !ok {
		return false
	}
	e.Err = err
	e.Status = StatusError
	return true
}

func (c *QueryCache) current(t Ticket) (*Entry, bool) {
	e, ok := c.entries[t.Key]
	if !ok || e.seq != t.seq {
		return nil, false
	}
	return e, true
}

// Invalidate marks a key stale. Other keys are untouched.
func (c *QueryCache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok && e.Status != StatusLoading {
		e.Status = StatusStale
	}
}

// Drop forgets a key; results of fetches still in flight for it are discarded
func (c *QueryCache) Drop(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

func (c *QueryCache) Get(key Key) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return Entry{Status: StatusIdle}, false
	}
	return *e, true
}
