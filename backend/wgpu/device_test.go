//go:build !nogpu

package wgpu

import (
	"sync"
	"testing"
)

func TestSharedProviderConcurrentSet(t *testing.T) {
	t.Cleanup(func() { SetSharedProvider(nil) })

	type host struct{ id int }
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			SetSharedProvider(&host{id: i})
			_ = SharedProvider()
		}(i)
	}
	wg.Wait()

	want := &host{id: 99}
	SetSharedProvider(want)
	if got := SharedProvider(); got != any(want) {
		t.Errorf("SharedProvider() = %v, want %v", got, want)
	}

	SetSharedProvider(nil)
	if got := SharedProvider(); got != nil {
		t.Errorf("SharedProvider() after reset = %v, want nil", got)
	}
}
