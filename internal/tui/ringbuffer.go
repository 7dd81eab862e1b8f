package tui

import "sync"

// RingBuffer is a thread-safe circular buffer keeping the most recent items
type RingBuffer[T any] struct {
	mu     sync.RWMutex
	buffer []T
	size   int
	head   int
	count  int
}

// NewRingBuffer creates a ring buffer with the specified capacity
func NewRingBuffer[T any](size int) *RingBuffer[T] {
	if size <= 0 {
		size = 100 // Default
	}
	return &RingBuffer[T]{
		buffer: make([]T, size),
		size:   size,
	}
}

// Push adds an item, overwriting the oldest one when full
func (rb *RingBuffer[T]) Push(item T) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.buffer[rb.head] = item
	rb.head = (rb.head + 1) % rb.size
	if rb.count < rb.size {
		rb.count++
	}
}

// GetAll returns all items in order (oldest first)
func (rb *RingBuffer[T]) GetAll() []T {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	result := make([]T, rb.count)
	if rb.count < rb.size {
		copy(result, rb.buffer[:rb.count])
	} else {
		// Full: oldest item sits at head
		copy(result, rb.buffer[rb.head:])
		copy(result[rb.size-rb.head:], rb.buffer[:rb.head])
	}
	return result
}

// GetLast returns the last n items (most recent)
func (rb *RingBuffer[T]) GetLast(n int) []T {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	if n > rb.count {
		n = rb.count
	}
	result := make([]T, n)
	start := (rb.head - n + rb.size) % rb.size
	for i := 0; i < n; i++ {
		result[i] = rb.buffer[(start+i)%rb.size]
	}
	return result
}

// Count returns the number of items in the buffer
func (rb *RingBuffer[T]) Count() int {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.count
}

// Clear empties the buffer
func (rb *RingBuffer[T]) Clear() {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	var zero T
	for i := range rb.buffer {
		rb.buffer[i] = zero
	}
	rb.head = 0
	rb.count = 0
}
