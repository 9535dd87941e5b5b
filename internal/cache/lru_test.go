package cache

import "testing"

func TestLRUGetPut(t *testing.T) {
	c := NewLRU[string, int](2, nil)
	c.Put("a", 1)
	c.Put("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %v, %v; want 1, true", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) ok = true, want false")
	}
}

func TestLRUEvictsOldest(t *testing.T) {
	var evicted []string
	c := NewLRU[string, int](2, func(k string, _ int) {
		evicted = append(evicted, k)
	})
	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a") // "b" becomes the oldest
	c.Put("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b survived eviction")
	}
	if len(evicted) != 1 || evicted[0] != "b" {
		t.Errorf("evicted = %v, want [b]", evicted)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestLRUReplaceEvictsOldValue(t *testing.T) {
	var evicted []int
	c := NewLRU[string, int](2, func(_ string, v int) {
		evicted = append(evicted, v)
	})
	c.Put("a", 1)
	c.Put("a", 2)

	if v, _ := c.Get("a"); v != 2 {
		t.Errorf("Get(a) = %d, want 2", v)
	}
	if len(evicted) != 1 || evicted[0] != 1 {
		t.Errorf("evicted = %v, want [1]", evicted)
	}
}

func TestLRURemoveAndClear(t *testing.T) {
	evicted := 0
	c := NewLRU[string, int](4, func(string, int) { evicted++ })
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)

	c.Remove("b")
	c.Remove("b") // absent, no hook
	if evicted != 1 {
		t.Errorf("evicted = %d after Remove, want 1", evicted)
	}

	c.Clear()
	if evicted != 3 || c.Len() != 0 {
		t.Errorf("after Clear: evicted = %d, Len = %d; want 3, 0", evicted, c.Len())
	}
}
