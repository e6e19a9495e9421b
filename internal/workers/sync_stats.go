package workers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wakostech/blog-backend/domain"
)

type statsRefresher struct {
	UserRepo domain.UserRepository
	ch       chan int64
}

var _ domain.StatsRefresher = (*statsRefresher)(nil)

func NewStatsRefresher(ur domain.UserRepository) *statsRefresher {
	return &statsRefresher{
		UserRepo: ur,
		ch:       make(chan int64, 1024),
	}
}

// Touch marks a user's aggregate stats as dirty. Never blocks.
func (s statsRefresher) Touch(userID int64) {
	select {
	case s.ch <- userID:
	default:
		logrus.Info("StatsRefresher's channel is full, task dropped")
	}
}

func (s statsRefresher) Start(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	const batchSize = 100
	batch := make([]int64, 0, batchSize)
	for {
		select {
		case userID := <-s.ch:
			batch = append(batch, userID)
			if len(batch) == batchSize {
				s.flush(ctx, batch)
				batch = make([]int64, 0, batchSize)
			}
		case <-ticker.C:
			s.flush(ctx, batch)
			batch = make([]int64, 0)
		case <-ctx.Done():
			logrus.Info("shutting down StatsRefresher, flushing remaining tasks...")
			s.flush(context.WithoutCancel(ctx), batch)
			return
		}
	}
}

// flush recomputes stats once per distinct user in the batch.
func (s statsRefresher) flush(ctx context.Context, batch []int64) {
	seen := make(map[int64]struct{}, len(batch))
	for _, userID := range batch {
		if _, ok := seen[userID]; ok {
			continue
		}
		seen[userID] = struct{}{}
		if err := s.UserRepo.RefreshStats(ctx, userID); err != nil {
			logrus.Errorf("failed to refresh stats for user %d: %v", userID, err)
		}
	}
}
