package workers_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wakostech/blog-backend/domain"
	"github.com/wakostech/blog-backend/internal/workers"
)

type recordingUserRepo struct {
	domain.UserRepository

	mu        sync.Mutex
	refreshed []int64
}

func (r *recordingUserRepo) RefreshStats(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refreshed = append(r.refreshed, userID)
	return nil
}

func (r *recordingUserRepo) snapshot() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.refreshed...)
}

func TestFlushOnShutdown(t *testing.T) {
	repo := &recordingUserRepo{}
	w := workers.NewStatsRefresher(repo)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	w.Touch(1)
	w.Touch(2)
	w.Touch(1)

	// give Start a moment to drain the channel, then shut down
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}

	got := repo.snapshot()
	assert.ElementsMatch(t, []int64{1, 2}, got, "each touched user refreshed once")
}

func TestTouchNeverBlocks(t *testing.T) {
	repo := &recordingUserRepo{}
	w := workers.NewStatsRefresher(repo)

	// no Start running; fill well past the channel capacity
	finished := make(chan struct{})
	go func() {
		for i := 0; i < 3000; i++ {
			w.Touch(int64(i))
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Touch blocked on a full channel")
	}
}
