package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/streakbeast/beastcore/engine"
	"github.com/streakbeast/beastcore/logger/xzap"
	"github.com/streakbeast/beastcore/service/svc"
	"github.com/streakbeast/beastcore/stores/gdb/streak"
)

// The ledger commit is the source of truth; mirror writes that fail are
// logged and dropped, never bubbled back to the caller, so a flaky database
// cannot fail an operation the ledger already accepted.

func mirrorHabit(ctx context.Context, s *svc.ServerCtx, h engine.Habit) {
	rec := &streak.HabitRecord{
		HabitID:       h.ID,
		Owner:         h.Owner.Hex(),
		HabitType:     uint8(h.Type),
		StakeAmount:   h.StakeAmount.String(),
		StartTime:     h.StartTime,
		Duration:      h.Duration,
		LastCheckIn:   h.LastCheckIn,
		CurrentStreak: h.CurrentStreak,
		LongestStreak: h.LongestStreak,
		Active:        h.Active,
		Claimed:       h.Claimed,
		PoolID:        h.PoolID,
	}
	if err := s.Dao.UpsertHabit(ctx, rec); err != nil {
		xzap.WithContext(ctx).Error("mirror habit failed",
			zap.Uint64("habit_id", h.ID), zap.Error(err))
	}
}

func mirrorPool(ctx context.Context, s *svc.ServerCtx, p engine.Pool) {
	rec := &streak.PoolRecord{
		PoolID:                 p.ID,
		HabitType:              uint8(p.Type),
		StartTime:              p.StartTime,
		Duration:               p.Duration,
		TotalStaked:            p.TotalStaked.String(),
		TotalSuccessfulStreaks: p.TotalSuccessfulStreaks,
		Distributed:            p.Distributed,
	}
	if p.Residual != nil {
		rec.Residual = p.Residual.String()
	}
	if err := s.Dao.UpsertPool(ctx, rec); err != nil {
		xzap.WithContext(ctx).Error("mirror pool failed",
			zap.Uint64("pool_id", p.ID), zap.Error(err))
		return
	}
	for i, user := range p.Participants {
		srec := &streak.PoolStreakRecord{
			PoolID:    p.ID,
			User:      user.Hex(),
			Streak:    s.Ledger.PoolStreak(p.ID, user),
			JoinOrder: i,
		}
		if err := s.Dao.UpsertPoolStreak(ctx, srec); err != nil {
			xzap.WithContext(ctx).Error("mirror pool streak failed",
				zap.Uint64("pool_id", p.ID), zap.String("user", user.Hex()), zap.Error(err))
		}
	}
}

func mirrorMeta(ctx context.Context, s *svc.ServerCtx) {
	nextHabit, nextPool := s.Ledger.Counters()
	pairs := [][2]string{
		{streak.MetaKeyOwner, s.Ledger.Owner().Hex()},
		{streak.MetaKeyAgent, s.Ledger.Agent().Hex()},
		{streak.MetaKeyNextHabitID, strconv.FormatUint(nextHabit, 10)},
		{streak.MetaKeyNextPoolID, strconv.FormatUint(nextPool, 10)},
	}
	for _, kv := range pairs {
		if err := s.Dao.SetMeta(ctx, kv[0], kv[1]); err != nil {
			xzap.WithContext(ctx).Error("mirror meta failed",
				zap.String("key", kv[0]), zap.Error(err))
		}
	}
}

func mirrorRewards(ctx context.Context, s *svc.ServerCtx, poolID uint64) {
	p, err := s.Ledger.Pool(poolID)
	if err != nil {
		return
	}
	for _, user := range p.Participants {
		amt := s.Ledger.RewardBalance(poolID, user)
		if amt.Sign() == 0 {
			continue
		}
		rec := &streak.RewardRecord{
			PoolID: poolID,
			User:   user.Hex(),
			Amount: amt.String(),
		}
		if err := s.Dao.UpsertReward(ctx, rec); err != nil {
			xzap.WithContext(ctx).Error("mirror reward failed",
				zap.Uint64("pool_id", poolID), zap.String("user", user.Hex()), zap.Error(err))
		}
	}
}

func invalidatePool(ctx context.Context, s *svc.ServerCtx, poolID uint64) {
	id := strconv.FormatUint(poolID, 10)
	if err := s.Cache.Delete(ctx, "beastcore:pool:"+id, "beastcore:leaderboard:"+id); err != nil {
		xzap.WithContext(ctx).Warn("cache invalidate failed",
			zap.Uint64("pool_id", poolID), zap.Error(err))
	}
}
