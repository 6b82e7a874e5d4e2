package notify_test

import (
	"sync"
	"testing"
	"time"

	"pizzeria/internal/pkg/notify"

	"github.com/stretchr/testify/assert"
)

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestSignal_Broadcast(t *testing.T) {
	t.Run("should close the channel handed out before the broadcast", func(t *testing.T) {
		var s notify.Signal
		ch := s.Changed()

		assert.False(t, isClosed(ch))
		s.Broadcast()
		assert.True(t, isClosed(ch))
	})

	t.Run("should hand out a fresh channel after the broadcast", func(t *testing.T) {
		var s notify.Signal
		s.Broadcast()
		first := s.Changed()
		s.Broadcast()
		second := s.Changed()

		assert.True(t, isClosed(first))
		assert.False(t, isClosed(second))
	})

	t.Run("should return the same channel until the next broadcast", func(t *testing.T) {
		var s notify.Signal

		assert.Equal(t, s.Changed(), s.Changed())
	})

	t.Run("should wake every waiter", func(t *testing.T) {
		var s notify.Signal
		var wg sync.WaitGroup
		ch := s.Changed()

		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-ch
			}()
		}

		s.Broadcast()

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("waiters were not woken")
		}
	})
}
