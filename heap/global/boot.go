package global

import (
	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/mmheap"
)

// Boot backs the heap window described by cfg and initializes a Global over
// it. The returned cleanup unmaps the window; a running kernel never calls it.
func Boot(cfg Config) (*Global, func() error, error) {
	mem, cleanup, err := mmheap.Map(cfg.HeapSize)
	if err != nil {
		return nil, nil, &MapError{Start: cfg.HeapStart, Size: cfg.HeapSize, Err: err}
	}

	arena, err := heap.NewArena(cfg.HeapStart, mem)
	if err != nil {
		_ = cleanup()
		return nil, nil, &MapError{Start: cfg.HeapStart, Size: cfg.HeapSize, Err: err}
	}

	g := New()
	if err := g.Init(arena, cfg); err != nil {
		_ = cleanup()
		return nil, nil, err
	}
	return g, cleanup, nil
}
