package program

import "github.com/gogpu/fx/internal/cache"

// Cache is an opt-in LRU of compiled programs keyed by effect name,
// bound to one device. The baseline surface lifecycle tears a program
// down on every effect change; a Cache keeps recently used programs
// alive across repeated toggles of the same effect instead.
//
// Evicted programs are released. Not safe for concurrent use, matching
// the single-surface ownership of the device itself.
type Cache struct {
	device Device
	lru    *cache.LRU[string, *Program]
}

// NewCache creates a program cache holding at most capacity compiled
// programs for device.
func NewCache(device Device, capacity int) *Cache {
	return &Cache{
		device: device,
		lru: cache.NewLRU(capacity, func(_ string, p *Program) {
			p.Release()
		}),
	}
}

// Get returns the cached program for effectName, compiling it on miss.
func (c *Cache) Get(effectName string) (*Program, error) {
	if p, ok := c.lru.Get(effectName); ok {
		return p, nil
	}
	p, err := Compile(c.device, effectName)
	if err != nil {
		return nil, err
	}
	c.lru.Put(effectName, p)
	return p, nil
}

// Len returns the number of cached programs.
func (c *Cache) Len() int { return c.lru.Len() }

// Release frees every cached program.
func (c *Cache) Release() { c.lru.Clear() }
