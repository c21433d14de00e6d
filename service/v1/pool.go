package service

import (
	"context"
	"strconv"
	"time"

	"github.com/streakbeast/beastcore/engine"
	"github.com/streakbeast/beastcore/metrics"
	"github.com/streakbeast/beastcore/service/svc"
	"github.com/streakbeast/beastcore/stores/gdb/streak"
	types "github.com/streakbeast/beastcore/types/v1"
)

const leaderboardTTL = 30 * time.Second

// Distribute settles an ended pool: every participant's share is credited
// to their claimable balance and the pool is sealed.
func Distribute(ctx context.Context, s *svc.ServerCtx, poolID uint64, req types.DistributeReq) (*types.DistributeResp, error) {
	agent, err := svc.ParseAddress(req.Agent)
	if err != nil {
		return nil, err
	}
	if err := s.Ledger.Distribute(agent, poolID); err != nil {
		return nil, err
	}
	metrics.DistributionCount.WithLabelValues("api").Inc()

	p, err := s.Ledger.Pool(poolID)
	if err != nil {
		return nil, err
	}
	mirrorPool(ctx, s, p)
	mirrorRewards(ctx, s, poolID)
	invalidatePool(ctx, s, poolID)

	resp := &types.DistributeResp{PoolID: poolID}
	if p.Residual != nil {
		resp.ResidualWei = p.Residual.String()
	}
	return resp, nil
}

func GetPool(ctx context.Context, s *svc.ServerCtx, poolID uint64) (*types.PoolResp, error) {
	key := "beastcore:pool:" + strconv.FormatUint(poolID, 10)
	var cached types.PoolResp
	if err := s.Cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	p, err := s.Ledger.Pool(poolID)
	if err != nil {
		return nil, err
	}
	resp := poolResp(p)
	_ = s.Cache.Set(ctx, key, resp, leaderboardTTL)
	return &resp, nil
}

func GetLeaderboard(ctx context.Context, s *svc.ServerCtx, poolID uint64) (*types.LeaderboardResp, error) {
	key := "beastcore:leaderboard:" + strconv.FormatUint(poolID, 10)
	var cached types.LeaderboardResp
	if err := s.Cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	if _, err := s.Ledger.Pool(poolID); err != nil {
		return nil, err
	}
	users, streaks := s.Ledger.Leaderboard(poolID)
	resp := &types.LeaderboardResp{PoolID: poolID, Entries: []types.LeaderboardEntry{}}
	for i, u := range users {
		resp.Entries = append(resp.Entries, types.LeaderboardEntry{
			Rank:   i + 1,
			User:   u.Hex(),
			Streak: streaks[i],
		})
	}
	_ = s.Cache.Set(ctx, key, resp, leaderboardTTL)
	return resp, nil
}

// GetUserPayouts lists a user's claim history from the payout journal.
func GetUserPayouts(ctx context.Context, s *svc.ServerCtx, user string) ([]streak.PayoutRecord, error) {
	addr, err := svc.ParseAddress(user)
	if err != nil {
		return nil, err
	}
	return s.Dao.ListUserPayouts(ctx, addr.Hex())
}

func poolResp(p engine.Pool) types.PoolResp {
	resp := types.PoolResp{
		PoolID:                 p.ID,
		HabitType:              uint8(p.Type),
		HabitTypeName:          p.Type.String(),
		StartTime:              p.StartTime,
		EndTime:                p.StartTime + p.Duration,
		DurationDays:           uint64(p.Duration) / 86400,
		TotalStaked:            types.WeiToBNB(p.TotalStaked),
		TotalStakedWei:         p.TotalStaked.String(),
		TotalSuccessfulStreaks: p.TotalSuccessfulStreaks,
		Participants:           len(p.Participants),
		Distributed:            p.Distributed,
	}
	if p.Residual != nil {
		resp.ResidualWei = p.Residual.String()
	}
	return resp
}
