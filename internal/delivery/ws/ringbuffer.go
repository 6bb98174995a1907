package ws

// RingBuffer is a fixed-size circular buffer. When full, Add overwrites the
// oldest element.
type RingBuffer[T any] struct {
	data []T
	head int // next write position
	size int
}

// NewRingBuffer creates a buffer holding at most capacity elements
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &RingBuffer[T]{data: make([]T, capacity)}
}

// Add appends v, dropping the oldest element if the buffer is full
func (rb *RingBuffer[T]) Add(v T) {
	rb.data[rb.head] = v
	rb.head = (rb.head + 1) % len(rb.data)
	if rb.size < len(rb.data) {
		rb.size++
	}
}

// Items returns the elements oldest first
func (rb *RingBuffer[T]) Items() []T {
	if rb.size == 0 {
		return nil
	}
	out := make([]T, 0, rb.size)
	start := (rb.head - rb.size + len(rb.data)) % len(rb.data)
	for i := 0; i < rb.size; i++ {
		out = append(out, rb.data[(start+i)%len(rb.data)])
	}
	return out
}

// Drain returns the elements oldest first and empties the buffer
func (rb *RingBuffer[T]) Drain() []T {
	out := rb.Items()
	var zero T
	for i := range rb.data {
		rb.data[i] = zero
	}
	rb.head, rb.size = 0, 0
	return out
}

// Len returns the current number of elements
func (rb *RingBuffer[T]) Len() int {
	return rb.size
}
