package dao

import (
	"context"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/streakbeast/beastcore/engine"
	"github.com/streakbeast/beastcore/stores/gdb/streak"
)

// BuildSnapshot reassembles a ledger snapshot from the mirror tables.
// Returns ok=false on a fresh database (no meta rows yet), in which case the
// caller boots an empty ledger from config instead.
func (d *Dao) BuildSnapshot(c context.Context) (engine.Snapshot, bool, error) {
	var snap engine.Snapshot

	owner, err := d.GetMeta(c, streak.MetaKeyOwner)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return snap, false, nil
	}
	if err != nil {
		return snap, false, errors.Wrap(err, "read owner meta")
	}
	agent, err := d.GetMeta(c, streak.MetaKeyAgent)
	if err != nil {
		return snap, false, errors.Wrap(err, "read agent meta")
	}
	nextHabit, err := d.metaUint(c, streak.MetaKeyNextHabitID)
	if err != nil {
		return snap, false, err
	}
	nextPool, err := d.metaUint(c, streak.MetaKeyNextPoolID)
	if err != nil {
		return snap, false, err
	}

	snap.Owner = common.HexToAddress(owner)
	snap.Agent = common.HexToAddress(agent)
	snap.NextHabitID = nextHabit
	snap.NextPoolID = nextPool

	habits, err := d.ListHabits(c)
	if err != nil {
		return snap, false, errors.Wrap(err, "list habits")
	}
	for _, rec := range habits {
		stake, perr := parseWei(rec.StakeAmount)
		if perr != nil {
			return snap, false, errors.Wrapf(perr, "habit %d stake", rec.HabitID)
		}
		snap.Habits = append(snap.Habits, engine.Habit{
			ID:            rec.HabitID,
			Owner:         common.HexToAddress(rec.Owner),
			Type:          engine.HabitType(rec.HabitType),
			StakeAmount:   stake,
			StartTime:     rec.StartTime,
			Duration:      rec.Duration,
			LastCheckIn:   rec.LastCheckIn,
			CurrentStreak: rec.CurrentStreak,
			LongestStreak: rec.LongestStreak,
			Active:        rec.Active,
			Claimed:       rec.Claimed,
			PoolID:        rec.PoolID,
		})
	}

	pools, err := d.ListPools(c)
	if err != nil {
		return snap, false, errors.Wrap(err, "list pools")
	}
	memberships, err := d.ListAllPoolStreaks(c)
	if err != nil {
		return snap, false, errors.Wrap(err, "list pool streaks")
	}
	byPool := make(map[uint64][]streak.PoolStreakRecord)
	for _, m := range memberships {
		byPool[m.PoolID] = append(byPool[m.PoolID], m)
	}
	for _, rec := range pools {
		total, perr := parseWei(rec.TotalStaked)
		if perr != nil {
			return snap, false, errors.Wrapf(perr, "pool %d total staked", rec.PoolID)
		}
		p := engine.Pool{
			ID:                     rec.PoolID,
			Type:                   engine.HabitType(rec.HabitType),
			StartTime:              rec.StartTime,
			Duration:               rec.Duration,
			TotalStaked:            total,
			TotalSuccessfulStreaks: rec.TotalSuccessfulStreaks,
			Distributed:            rec.Distributed,
		}
		if rec.Residual != "" {
			residual, perr := parseWei(rec.Residual)
			if perr != nil {
				return snap, false, errors.Wrapf(perr, "pool %d residual", rec.PoolID)
			}
			p.Residual = residual
		}
		streaks := make(map[common.Address]uint64)
		for _, m := range byPool[rec.PoolID] {
			addr := common.HexToAddress(m.User)
			p.Participants = append(p.Participants, addr)
			streaks[addr] = m.Streak
		}
		snap.Pools = append(snap.Pools, engine.PoolState{Pool: p, UserStreaks: streaks})
	}

	rewards, err := d.ListRewards(c)
	if err != nil {
		return snap, false, errors.Wrap(err, "list rewards")
	}
	for _, rec := range rewards {
		amt, perr := parseWei(rec.Amount)
		if perr != nil {
			return snap, false, errors.Wrapf(perr, "reward pool %d user %s", rec.PoolID, rec.User)
		}
		snap.Rewards = append(snap.Rewards, engine.RewardState{
			PoolID: rec.PoolID,
			User:   common.HexToAddress(rec.User),
			Amount: amt,
		})
	}
	return snap, true, nil
}

func (d *Dao) metaUint(c context.Context, key string) (uint64, error) {
	raw, err := d.GetMeta(c, key)
	if err != nil {
		return 0, errors.Wrapf(err, "read meta %s", key)
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse meta %s", key)
	}
	return v, nil
}

func parseWei(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Errorf("bad wei amount %q", s)
	}
	return v, nil
}
