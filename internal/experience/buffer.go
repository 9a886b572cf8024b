package experience

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

var (
	// ErrBufferClosed is returned when operations are attempted on a closed buffer
	ErrBufferClosed = errors.New("experience buffer is closed")
)

// Buffer is a thread-safe circular buffer of experiences. When full, the oldest entry is dropped.
// Parallel episodes may share one Buffer; it holds no simulation state.
type Buffer struct {
	mu       sync.Mutex
	buffer   []*Experience
	capacity int
	size     int
	head     int // Write position
	tail     int // Read position
	closed   bool

	totalAdded   int64
	totalDropped int64

	logger zerolog.Logger
}

// NewBuffer creates a new experience buffer with the specified capacity
func NewBuffer(capacity int, logger zerolog.Logger) *Buffer {
	if capacity <= 0 {
		capacity = 10000
	}
	return &Buffer{
		buffer:   make([]*Experience, capacity),
		capacity: capacity,
		logger:   logger.With().Str("component", "experience_buffer").Logger(),
	}
}

// Add adds an experience to the buffer
func (b *Buffer) Add(exp *Experience) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBufferClosed
	}
	b.push(exp)
	return nil
}

// AddBatch adds multiple experiences to the buffer
func (b *Buffer) AddBatch(experiences []*Experience) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBufferClosed
	}
	for _, exp := range experiences {
		b.push(exp)
	}
	if len(experiences) > 0 {
		b.logger.Debug().
			Int("batch_size", len(experiences)).
			Int64("total_added", b.totalAdded).
			Msg("Added batch of experiences")
	}
	return nil
}

func (b *Buffer) push(exp *Experience) {
	if b.size >= b.capacity {
		b.tail = (b.tail + 1) % b.capacity
		b.totalDropped++
	} else {
		b.size++
	}
	b.buffer[b.head] = exp
	b.head = (b.head + 1) % b.capacity
	b.totalAdded++
}

// Get removes and returns up to n experiences, oldest first.
func (b *Buffer) Get(n int) []*Experience {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n > b.size {
		n = b.size
	}
	out := make([]*Experience, n)
	for i := 0; i < n; i++ {
		out[i] = b.buffer[b.tail]
		b.buffer[b.tail] = nil
		b.tail = (b.tail + 1) % b.capacity
	}
	b.size -= n
	return out
}

// Size returns the number of buffered experiences
func (b *Buffer) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// Stats returns totals added and dropped since creation.
func (b *Buffer) Stats() (added, dropped int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.totalAdded, b.totalDropped
}

// Close rejects further writes. Buffered experiences remain readable.
func (b *Buffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}
