package experience

import (
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_AddAndGet(t *testing.T) {
	b := NewBuffer(4, zerolog.Nop())
	for i := 0; i < 3; i++ {
		require.NoError(t, b.Add(&Experience{Tick: i}))
	}
	assert.Equal(t, 3, b.Size())

	got := b.Get(2)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Tick)
	assert.Equal(t, 1, got[1].Tick)
	assert.Equal(t, 1, b.Size())
}

func TestBuffer_DropsOldestWhenFull(t *testing.T) {
	b := NewBuffer(3, zerolog.Nop())
	batch := make([]*Experience, 5)
	for i := range batch {
		batch[i] = &Experience{Tick: i}
	}
	require.NoError(t, b.AddBatch(batch))

	got := b.Get(10)
	require.Len(t, got, 3)
	assert.Equal(t, 2, got[0].Tick)
	assert.Equal(t, 4, got[2].Tick)

	added, dropped := b.Stats()
	assert.EqualValues(t, 5, added)
	assert.EqualValues(t, 2, dropped)
}

func TestBuffer_Closed(t *testing.T) {
	b := NewBuffer(2, zerolog.Nop())
	require.NoError(t, b.Add(&Experience{}))
	b.Close()
	assert.ErrorIs(t, b.Add(&Experience{}), ErrBufferClosed)
	assert.ErrorIs(t, b.AddBatch([]*Experience{{}}), ErrBufferClosed)
	assert.Len(t, b.Get(5), 1)
}

func TestBuffer_DefaultCapacity(t *testing.T) {
	b := NewBuffer(0, zerolog.Nop())
	assert.Equal(t, 10000, b.capacity)
}

func TestBuffer_ConcurrentWriters(t *testing.T) {
	b := NewBuffer(1000, zerolog.Nop())
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_ = b.Add(&Experience{Tick: i})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800, b.Size())
}
