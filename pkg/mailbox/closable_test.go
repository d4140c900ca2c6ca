package mailbox

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClosable_NegativeCapacity(t *testing.T) {
	ch, err := NewClosable[int](-1)
	require.ErrorIs(t, err, ErrNegativeCapacity)
	assert.Nil(t, ch)
}

func TestClosable_DrainAfterClose(t *testing.T) {
	ch, err := NewClosable[int](5)
	require.NoError(t, err)

	ch.Send(1)
	ch.Send(2)
	ch.Send(3)
	ch.Close()

	// Buffered messages survive the close, in order.
	for want := 1; want <= 3; want++ {
		v, ok := ch.Receive()
		require.True(t, ok)
		assert.Equal(t, want, v)
	}

	// Then end of stream, with the zero value.
	v, ok := ch.Receive()
	assert.False(t, ok)
	assert.Equal(t, 0, v)
}

func TestClosable_EndOfStreamPersists(t *testing.T) {
	ch, err := NewClosable[int](2)
	require.NoError(t, err)
	ch.Close()

	// Every receive after close-and-drain returns promptly.
	for i := 0; i < 5; i++ {
		done := make(chan bool, 1)
		go func() {
			_, ok := ch.Receive()
			done <- ok
		}()
		select {
		case ok := <-done:
			assert.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("receive after close should not block")
		}
	}
}

func TestClosable_CloseWakesBlockedReceiver(t *testing.T) {
	ch, err := NewClosable[int](3)
	require.NoError(t, err)

	done := make(chan bool, 1)
	go func() {
		_, ok := ch.Receive()
		done <- ok
	}()

	select {
	case <-done:
		t.Fatal("receive on open empty channel should block")
	case <-time.After(50 * time.Millisecond):
	}

	ch.Close()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("close should wake the blocked receiver")
	}
}

func TestClosable_CloseUnblocksAllReceivers(t *testing.T) {
	ch, err := NewClosable[int](0)
	require.NoError(t, err)

	const receivers = 3
	var wg sync.WaitGroup
	results := make(chan bool, receivers)
	for i := 0; i < receivers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := ch.Receive()
			results <- ok
		}()
	}

	ch.Close()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("close should unblock every waiting receiver")
	}

	close(results)
	for ok := range results {
		assert.False(t, ok)
	}
}

func TestClosable_CloseIdempotent(t *testing.T) {
	ch, err := NewClosable[int](1)
	require.NoError(t, err)

	ch.Send(7)
	ch.Close()
	ch.Close()
	ch.Close()

	assert.True(t, ch.Closed())

	v, ok := ch.Receive()
	require.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok = ch.Receive()
	assert.False(t, ok)
}

func TestClosable_CloseConcurrent(t *testing.T) {
	ch, err := NewClosable[int](1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch.Close()
		}()
	}
	wg.Wait()

	_, ok := ch.Receive()
	assert.False(t, ok)
}

func TestClosable_AllDrainsToEndOfStream(t *testing.T) {
	ch, err := NewClosable[int](4)
	require.NoError(t, err)

	const n = 20
	go func() {
		for i := 0; i < n; i++ {
			ch.Send(i)
		}
		ch.Close()
	}()

	var got []int
	for v := range ch.All() {
		got = append(got, v)
	}

	require.Len(t, got, n)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestClosable_AllEarlyBreakLeavesRemainder(t *testing.T) {
	ch, err := NewClosable[int](10)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		ch.Send(i)
	}
	ch.Close()

	var first []int
	for v := range ch.All() {
		first = append(first, v)
		if len(first) == 3 {
			break
		}
	}
	assert.Equal(t, []int{0, 1, 2}, first)

	// Iteration is single-pass over the channel, not restartable: a second
	// range picks up where consumption stopped.
	var rest []int
	for v := range ch.All() {
		rest = append(rest, v)
	}
	assert.Equal(t, []int{3, 4, 5, 6, 7, 8, 9}, rest)
}

func TestClosable_ZeroCapacityCloseAfterHandOff(t *testing.T) {
	ch, err := NewClosable[string](0)
	require.NoError(t, err)

	go func() {
		ch.Send("only")
		ch.Close()
	}()

	v, ok := ch.Receive()
	require.True(t, ok)
	assert.Equal(t, "only", v)

	_, ok = ch.Receive()
	assert.False(t, ok)
}

func TestClosable_ConcurrentConsumersSeeEachMessageOnce(t *testing.T) {
	ch, err := NewClosable[int](4)
	require.NoError(t, err)

	const n = 200
	go func() {
		for i := 0; i < n; i++ {
			ch.Send(i)
		}
		ch.Close()
	}()

	var mu sync.Mutex
	seen := make(map[int]int, n)

	var wg sync.WaitGroup
	for c := 0; c < 4; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for v := range ch.All() {
				mu.Lock()
				seen[v]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, n)
	for v, count := range seen {
		assert.Equal(t, 1, count, "value %d delivered %d times", v, count)
	}
}

func TestClosable_LenAndCap(t *testing.T) {
	ch, err := NewClosable[int](5)
	require.NoError(t, err)

	assert.Equal(t, 5, ch.Cap())
	assert.Equal(t, 0, ch.Len())
	ch.Send(1)
	assert.Equal(t, 1, ch.Len())
}
