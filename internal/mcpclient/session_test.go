package mcpclient

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocateRequestIDStartsAtOne(t *testing.T) {
	s := NewSessionState()
	assert.Equal(t, int64(1), s.AllocateRequestID())
	assert.Equal(t, int64(2), s.AllocateRequestID())
	assert.Equal(t, int64(3), s.AllocateRequestID())
}

func TestAllocateRequestIDConcurrent(t *testing.T) {
	s := NewSessionState()

	const n = 100
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- s.AllocateRequestID()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "id %d allocated twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.True(t, seen[1])
	assert.True(t, seen[n])
}

func TestResetRestartsCounterAndClearsToken(t *testing.T) {
	s := NewSessionState()
	s.SetToken("session-abc")
	s.AllocateRequestID()
	s.AllocateRequestID()

	s.Reset()

	assert.Empty(t, s.Token())
	assert.Equal(t, int64(1), s.AllocateRequestID(), "reset restarts the id sequence")
}

func TestClearTokenKeepsCounterRunning(t *testing.T) {
	s := NewSessionState()
	s.SetToken("session-abc")
	s.AllocateRequestID()

	s.ClearToken()

	assert.Empty(t, s.Token())
	assert.Equal(t, int64(2), s.AllocateRequestID(), "clearing the token does not restart the id sequence")
}

func TestSetTokenAtRejectsStaleEpoch(t *testing.T) {
	s := NewSessionState()
	epoch := s.Epoch()

	s.Reset()

	assert.False(t, s.SetTokenAt("stale-token", epoch))
	assert.Empty(t, s.Token())

	assert.True(t, s.SetTokenAt("fresh-token", s.Epoch()))
	assert.Equal(t, "fresh-token", s.Token())
}

func TestEpochAdvancesPerReset(t *testing.T) {
	s := NewSessionState()
	first := s.Epoch()
	s.Reset()
	second := s.Epoch()
	s.Reset()
	third := s.Epoch()

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, second, third)
}
