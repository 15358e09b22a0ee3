package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBeginEnd(t *testing.T) {
	s := New()

	assert.False(t, s.InFlight())
	assert.True(t, s.Begin())
	assert.True(t, s.InFlight())

	// Second request is dropped, not queued
	assert.False(t, s.Begin())
	assert.True(t, s.InFlight())

	s.End()
	assert.False(t, s.InFlight())
	assert.True(t, s.Begin())
}

func TestBeginSingleWinner(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Begin() {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
}
