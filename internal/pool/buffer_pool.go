package pool

import (
	"sync"
)

// maxRetainedRunes caps the capacity of buffers returned to the pool so a
// single very large text does not pin its memory for the life of the process.
const maxRetainedRunes = 1 << 20

// RuneBufferPool implements a pool of rune slices
type RuneBufferPool struct {
	pool sync.Pool
	size int
}

// NewRuneBufferPool creates a new pool of rune slices with the specified size
func NewRuneBufferPool(size int) *RuneBufferPool {
	return &RuneBufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buffer := make([]rune, 0, size)
				return &buffer
			},
		},
		size: size,
	}
}

// Get retrieves a rune buffer from the pool
func (rbp *RuneBufferPool) Get() *[]rune {
	return rbp.pool.Get().(*[]rune)
}

// Put returns a rune buffer to the pool
func (rbp *RuneBufferPool) Put(buffer *[]rune) {
	if cap(*buffer) > maxRetainedRunes {
		return
	}
	*buffer = (*buffer)[:0]
	rbp.pool.Put(buffer)
}

// Decode fills a pooled buffer with the code points of s.
// The caller must hand the buffer back with Put.
func (rbp *RuneBufferPool) Decode(s string) *[]rune {
	buffer := rbp.Get()
	for _, r := range s {
		*buffer = append(*buffer, r)
	}
	return buffer
}
