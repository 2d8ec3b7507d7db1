package raster

import "sync"

// fragmentBuf is a reusable per-goroutine scratch buffer drawn from a
// sync.Pool; fillTriangle acquires one per triangle and releases it when
// done, and no code reads or writes xs — the same sync.Pool idiom the
// teacher's object_pool.go uses for Triangle/Point/Matrix4x4 pooling,
// retargeted at the new data-oriented rasterizer's scratch state instead of
// the teacher's per-object pools (which no longer exist as distinct types).
type fragmentBuf struct {
	xs []int
}

var fragmentBufPool = sync.Pool{
	New: func() any { return &fragmentBuf{xs: make([]int, 0, 256)} },
}

func acquireFragmentBuf() *fragmentBuf {
	b := fragmentBufPool.Get().(*fragmentBuf)
	b.xs = b.xs[:0]
	return b
}

func releaseFragmentBuf(b *fragmentBuf) {
	fragmentBufPool.Put(b)
}
