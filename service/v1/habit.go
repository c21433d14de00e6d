package service

import (
	"context"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/streakbeast/beastcore/engine"
	"github.com/streakbeast/beastcore/service/svc"
	types "github.com/streakbeast/beastcore/types/v1"
)

// Stake opens a habit commitment: parses the BNB amount, commits to the
// ledger, then mirrors the habit and its pool.
func Stake(ctx context.Context, s *svc.ServerCtx, req types.StakeReq) (*types.StakeResp, error) {
	caller, err := svc.ParseAddress(req.Caller)
	if err != nil {
		return nil, err
	}
	amount, err := types.BNBToWei(req.Amount)
	if err != nil {
		return nil, errors.Wrap(engine.ErrInvalidStake, err.Error())
	}

	habitID, err := s.Ledger.Stake(caller, engine.HabitType(req.HabitType), req.DurationDays, amount)
	if err != nil {
		return nil, err
	}

	h, _ := s.Ledger.Habit(habitID)
	mirrorHabit(ctx, s, h)
	if p, perr := s.Ledger.Pool(h.PoolID); perr == nil {
		mirrorPool(ctx, s, p)
	}
	mirrorMeta(ctx, s)
	invalidatePool(ctx, s, h.PoolID)

	return &types.StakeResp{HabitID: habitID, PoolID: h.PoolID}, nil
}

// CheckIn records a verified daily check-in on behalf of the habit owner.
// The proof is opaque here; the agent verified it off-chain before calling.
func CheckIn(ctx context.Context, s *svc.ServerCtx, habitID uint64, req types.CheckInReq) (*types.CheckInResp, error) {
	agent, err := svc.ParseAddress(req.Agent)
	if err != nil {
		return nil, err
	}
	var proof []byte
	if req.Proof != "" {
		proof, err = hexutil.Decode(req.Proof)
		if err != nil {
			return nil, errors.Wrap(err, "decode proof")
		}
	}

	if err := s.Ledger.CheckIn(agent, habitID, proof); err != nil {
		return nil, err
	}

	h, err := s.Ledger.Habit(habitID)
	if err != nil {
		return nil, err
	}
	mirrorHabit(ctx, s, h)
	if p, perr := s.Ledger.Pool(h.PoolID); perr == nil {
		mirrorPool(ctx, s, p)
	}
	invalidatePool(ctx, s, h.PoolID)

	return &types.CheckInResp{
		HabitID:       habitID,
		CurrentStreak: h.CurrentStreak,
		LongestStreak: h.LongestStreak,
		Active:        h.Active,
	}, nil
}

func GetHabit(ctx context.Context, s *svc.ServerCtx, habitID uint64) (*types.HabitResp, error) {
	h, err := s.Ledger.Habit(habitID)
	if err != nil {
		return nil, err
	}
	resp := habitResp(h)
	return &resp, nil
}

func GetStreak(ctx context.Context, s *svc.ServerCtx, habitID uint64) (uint64, error) {
	return s.Ledger.Streak(habitID)
}

func GetUserHabits(ctx context.Context, s *svc.ServerCtx, owner string) (*types.UserHabitsResp, error) {
	addr, err := svc.ParseAddress(owner)
	if err != nil {
		return nil, err
	}
	resp := &types.UserHabitsResp{Owner: addr.Hex(), Habits: []types.HabitResp{}}
	for _, id := range s.Ledger.UserHabits(addr) {
		if h, herr := s.Ledger.Habit(id); herr == nil {
			resp.Habits = append(resp.Habits, habitResp(h))
		}
	}
	return resp, nil
}

func habitResp(h engine.Habit) types.HabitResp {
	return types.HabitResp{
		HabitID:       h.ID,
		Owner:         h.Owner.Hex(),
		HabitType:     uint8(h.Type),
		HabitTypeName: h.Type.String(),
		StakeAmount:   types.WeiToBNB(h.StakeAmount),
		StakeWei:      h.StakeAmount.String(),
		StartTime:     h.StartTime,
		DurationDays:  uint64(h.Duration) / 86400,
		LastCheckIn:   h.LastCheckIn,
		CurrentStreak: h.CurrentStreak,
		LongestStreak: h.LongestStreak,
		Active:        h.Active,
		Claimed:       h.Claimed,
		PoolID:        h.PoolID,
	}
}
