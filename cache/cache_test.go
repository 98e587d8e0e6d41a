package cache

import (
	"errors"
	"sync"
	"testing"
)

func TestCache_Basic(t *testing.T) {
	c := New[string, int](3)

	c.Put("a", 1)
	c.Put("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v; want 1, true", v, ok)
	}
	if v, ok := c.Get("b"); !ok || v != 2 {
		t.Errorf("Get(b) = %d, %v; want 2, true", v, ok)
	}
	if _, ok := c.Get("c"); ok {
		t.Error("Get(c) should return false for missing key")
	}
}

func TestCache_Eviction(t *testing.T) {
	c := New[string, int](2)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)

	// Oldest insertion is evicted.
	if _, ok := c.Get("a"); ok {
		t.Error("'a' should have been evicted")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("'b' should still be cached")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("'c' should still be cached")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d; want 2", c.Len())
	}
}

func TestCache_Update(t *testing.T) {
	c := New[string, int](2)

	c.Put("a", 1)
	c.Put("a", 10)

	if v, ok := c.Get("a"); !ok || v != 10 {
		t.Errorf("Get(a) = %d, %v; want 10, true", v, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d; want 1", c.Len())
	}
}

func TestCache_Delete(t *testing.T) {
	c := New[string, int](3)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Delete("a")

	if _, ok := c.Get("a"); ok {
		t.Error("Get(a) should return false after delete")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d; want 1", c.Len())
	}

	// Deleting a missing key is a no-op.
	c.Delete("missing")
}

func TestCache_Clear(t *testing.T) {
	c := New[string, int](3)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len() = %d; want 0", c.Len())
	}

	// Cache remains usable after clearing.
	c.Put("c", 3)
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Errorf("Get(c) = %d, %v; want 3, true", v, ok)
	}
}

func TestCache_GetOrCompute(t *testing.T) {
	c := New[string, int](3)

	calls := 0
	compute := func() (int, error) {
		calls++
		return 42, nil
	}

	v, err := c.GetOrCompute("k", compute)
	if err != nil {
		t.Fatalf("GetOrCompute failed: %v", err)
	}
	if v != 42 {
		t.Errorf("GetOrCompute = %d; want 42", v)
	}

	// Second call must hit the cache.
	v, err = c.GetOrCompute("k", compute)
	if err != nil {
		t.Fatalf("GetOrCompute failed: %v", err)
	}
	if v != 42 || calls != 1 {
		t.Errorf("GetOrCompute = %d with %d compute calls; want 42 with 1", v, calls)
	}
}

func TestCache_GetOrCompute_ErrorNotCached(t *testing.T) {
	c := New[string, int](3)

	failing := errors.New("provider down")
	calls := 0

	_, err := c.GetOrCompute("k", func() (int, error) {
		calls++
		return 0, failing
	})
	if !errors.Is(err, failing) {
		t.Fatalf("GetOrCompute error = %v; want %v", err, failing)
	}

	// A later successful computation must run, not return a cached failure.
	v, err := c.GetOrCompute("k", func() (int, error) {
		calls++
		return 7, nil
	})
	if err != nil {
		t.Fatalf("GetOrCompute failed: %v", err)
	}
	if v != 7 || calls != 2 {
		t.Errorf("GetOrCompute = %d with %d calls; want 7 with 2", v, calls)
	}
}

func TestCache_Stats(t *testing.T) {
	c := New[string, int](10)

	c.Put("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	s := c.Stats()
	if s.Size != 1 {
		t.Errorf("Size = %d; want 1", s.Size)
	}
	if s.Capacity != 10 {
		t.Errorf("Capacity = %d; want 10", s.Capacity)
	}
	if s.Hits != 2 {
		t.Errorf("Hits = %d; want 2", s.Hits)
	}
	if s.Misses != 1 {
		t.Errorf("Misses = %d; want 1", s.Misses)
	}
}

func TestCache_DefaultCapacity(t *testing.T) {
	c := New[string, int](0)
	if c.Stats().Capacity != 256 {
		t.Errorf("Capacity = %d; want 256", c.Stats().Capacity)
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := New[int, int](64)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Put(base*100+j, j)
				c.Get(base*100 + j)
			}
		}(i)
	}
	wg.Wait()

	if c.Len() > 64 {
		t.Errorf("Len() = %d; want <= 64", c.Len())
	}
}

func TestKey(t *testing.T) {
	if Key("Patient") != "Patient" {
		t.Errorf("Key(Patient) = %q; want Patient", Key("Patient"))
	}
	if Key("Patient", "ctx") == Key("Patientctx") {
		t.Error("composite keys must not collide with plain keys")
	}
}
