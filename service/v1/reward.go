package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/streakbeast/beastcore/logger/xzap"
	"github.com/streakbeast/beastcore/service/svc"
	"github.com/streakbeast/beastcore/stores/gdb/streak"
	types "github.com/streakbeast/beastcore/types/v1"
)

// ClaimReward zeroes the caller's claimable balance and journals the payout.
// The balance is consumed the moment the ledger commits; if on-chain
// settlement then fails the journal row goes to failed for manual replay,
// the claim itself is never re-opened.
func ClaimReward(ctx context.Context, s *svc.ServerCtx, poolID uint64, req types.ClaimReq) (*types.ClaimResp, error) {
	caller, err := svc.ParseAddress(req.Caller)
	if err != nil {
		return nil, err
	}

	amount, err := s.Ledger.ClaimReward(caller, poolID)
	if err != nil {
		return nil, err
	}

	if derr := s.Dao.DeleteReward(ctx, poolID, caller.Hex()); derr != nil {
		xzap.WithContext(ctx).Error("mirror reward delete failed",
			zap.Uint64("pool_id", poolID), zap.String("user", caller.Hex()), zap.Error(derr))
	}
	for _, id := range s.Ledger.UserHabits(caller) {
		if h, herr := s.Ledger.Habit(id); herr == nil && h.PoolID == poolID {
			mirrorHabit(ctx, s, h)
		}
	}

	payout := &streak.PayoutRecord{
		PoolID: poolID,
		User:   caller.Hex(),
		Amount: amount.String(),
		Status: streak.PayoutStatusPending,
	}
	if perr := s.Dao.CreatePayout(ctx, payout); perr != nil {
		xzap.WithContext(ctx).Error("payout journal failed",
			zap.Uint64("pool_id", poolID), zap.String("user", caller.Hex()), zap.Error(perr))
	}

	resp := &types.ClaimResp{
		PoolID:    poolID,
		Amount:    types.WeiToBNB(amount),
		AmountWei: amount.String(),
	}

	if s.Treasury == nil {
		if payout.ID != 0 {
			_ = s.Dao.UpdatePayoutStatus(ctx, payout.ID, streak.PayoutStatusPaid, "")
		}
		return resp, nil
	}

	result, terr := s.Treasury.Payout(caller, amount, poolID)
	if terr != nil {
		xzap.WithContext(ctx).Error("treasury payout failed",
			zap.Uint64("pool_id", poolID), zap.String("user", caller.Hex()), zap.Error(terr))
		if payout.ID != 0 {
			txHash := ""
			if result != nil {
				txHash = result.TxHash
			}
			_ = s.Dao.UpdatePayoutStatus(ctx, payout.ID, streak.PayoutStatusFailed, txHash)
		}
		return resp, nil
	}

	resp.TxHash = result.TxHash
	if payout.ID != 0 {
		_ = s.Dao.UpdatePayoutStatus(ctx, payout.ID, streak.PayoutStatusPaid, result.TxHash)
	}
	return resp, nil
}

func GetRewardBalance(ctx context.Context, s *svc.ServerCtx, poolID uint64, user string) (*types.RewardBalanceResp, error) {
	addr, err := svc.ParseAddress(user)
	if err != nil {
		return nil, err
	}
	amount := s.Ledger.RewardBalance(poolID, addr)
	return &types.RewardBalanceResp{
		PoolID:    poolID,
		User:      addr.Hex(),
		Amount:    types.WeiToBNB(amount),
		AmountWei: amount.String(),
	}, nil
}
