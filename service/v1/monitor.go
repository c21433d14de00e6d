package service

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/threading"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"

	"github.com/streakbeast/beastcore/logger/xzap"
	"github.com/streakbeast/beastcore/metrics"
	"github.com/streakbeast/beastcore/service/svc"
)

// StartPoolMonitor runs the auto-distribution loop: every interval it
// sweeps for ended, undistributed pools and settles them as the configured
// agent. A small random jitter keeps replicas from sweeping in lockstep.
func StartPoolMonitor(s *svc.ServerCtx) {
	if !s.C.Monitor.Enabled {
		return
	}
	interval := time.Duration(s.C.Monitor.IntervalSecs) * time.Second

	threading.GoSafe(func() {
		xzap.WithContext(context.Background()).Info("pool monitor started",
			zap.Duration("interval", interval))

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			time.Sleep(time.Duration(rand.Int63n(int64(interval / 10))))
			sweepPools(context.Background(), s)
		}
	})
}

func sweepPools(ctx context.Context, s *svc.ServerCtx) {
	agent := s.Ledger.Agent()
	for _, poolID := range s.Ledger.UndistributedPools() {
		if err := s.Ledger.Distribute(agent, poolID); err != nil {
			xzap.WithContext(ctx).Error("auto distribution failed",
				zap.Uint64("pool_id", poolID), zap.Error(err))
			continue
		}
		metrics.DistributionCount.WithLabelValues("monitor").Inc()

		if p, perr := s.Ledger.Pool(poolID); perr == nil {
			mirrorPool(ctx, s, p)
		}
		mirrorRewards(ctx, s, poolID)
		invalidatePool(ctx, s, poolID)

		xzap.WithContext(ctx).Info("pool distributed",
			zap.Uint64("pool_id", poolID), zap.String("trigger", "monitor"))
	}
}
