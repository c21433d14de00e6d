package engine

import (
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// Snapshot is a deep copy of the full ledger state. The dao mirror persists
// one row per entry here and rebuilds the ledger from it after a restart;
// the on-chain original gets this from chain state for free.
type Snapshot struct {
	Owner       common.Address
	Agent       common.Address
	NextHabitID uint64
	NextPoolID  uint64
	Habits      []Habit
	Pools       []PoolState
	Rewards     []RewardState
}

// PoolState is a pool plus its per-participant streak tallies.
type PoolState struct {
	Pool        Pool
	UserStreaks map[common.Address]uint64
}

// RewardState is one unclaimed (pool, user) balance.
type RewardState struct {
	PoolID uint64
	User   common.Address
	Amount *big.Int
}

// Snapshot exports the current state.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := Snapshot{
		Owner:       l.owner,
		Agent:       l.agent,
		NextHabitID: l.nextHabitID,
		NextPoolID:  l.nextPoolID,
	}

	for _, h := range l.habits {
		snap.Habits = append(snap.Habits, h.clone())
	}
	sort.Slice(snap.Habits, func(i, j int) bool { return snap.Habits[i].ID < snap.Habits[j].ID })

	for _, p := range l.pools {
		streaks := make(map[common.Address]uint64, len(p.streaks))
		for u, s := range p.streaks {
			streaks[u] = s
		}
		snap.Pools = append(snap.Pools, PoolState{Pool: p.clone(), UserStreaks: streaks})
	}
	sort.Slice(snap.Pools, func(i, j int) bool { return snap.Pools[i].Pool.ID < snap.Pools[j].Pool.ID })

	for poolID, bucket := range l.rewards {
		for u, amt := range bucket {
			snap.Rewards = append(snap.Rewards, RewardState{
				PoolID: poolID,
				User:   u,
				Amount: new(big.Int).Set(amt),
			})
		}
	}
	sort.Slice(snap.Rewards, func(i, j int) bool {
		if snap.Rewards[i].PoolID != snap.Rewards[j].PoolID {
			return snap.Rewards[i].PoolID < snap.Rewards[j].PoolID
		}
		return snap.Rewards[i].User.Hex() < snap.Rewards[j].User.Hex()
	})
	return snap
}

// Restore replaces ledger state wholesale. Only meant for a freshly
// constructed ledger during boot recovery.
func (l *Ledger) Restore(snap Snapshot) error {
	if snap.Agent == (common.Address{}) {
		return ErrInvalidAgent
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	habits := make(map[uint64]*Habit, len(snap.Habits))
	userHabits := make(map[common.Address][]uint64)
	ordered := append([]Habit(nil), snap.Habits...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })
	for i := range ordered {
		h := ordered[i].clone()
		if h.ID == 0 || h.ID >= snap.NextHabitID {
			return errors.Errorf("restore: habit id %d out of range", h.ID)
		}
		habits[h.ID] = &h
		userHabits[h.Owner] = append(userHabits[h.Owner], h.ID)
	}

	pools := make(map[uint64]*Pool, len(snap.Pools))
	poolByKey := make(map[poolKey]uint64, len(snap.Pools))
	for _, ps := range snap.Pools {
		p := ps.Pool.clone()
		if p.ID == 0 || p.ID >= snap.NextPoolID {
			return errors.Errorf("restore: pool id %d out of range", p.ID)
		}
		p.streaks = make(map[common.Address]uint64, len(ps.UserStreaks))
		for u, s := range ps.UserStreaks {
			p.streaks[u] = s
		}
		for _, u := range p.Participants {
			if _, ok := p.streaks[u]; !ok {
				p.streaks[u] = 0
			}
		}
		pools[p.ID] = &p
		poolByKey[poolKey{typ: p.Type, start: p.StartTime, duration: p.Duration}] = p.ID
	}

	rewards := make(map[uint64]map[common.Address]*big.Int)
	for _, r := range snap.Rewards {
		if _, ok := pools[r.PoolID]; !ok {
			return errors.Errorf("restore: reward references unknown pool %d", r.PoolID)
		}
		bucket := rewards[r.PoolID]
		if bucket == nil {
			bucket = make(map[common.Address]*big.Int)
			rewards[r.PoolID] = bucket
		}
		bucket[r.User] = new(big.Int).Set(r.Amount)
	}

	l.owner = snap.Owner
	l.agent = snap.Agent
	l.nextHabitID = snap.NextHabitID
	l.nextPoolID = snap.NextPoolID
	l.habits = habits
	l.pools = pools
	l.poolByKey = poolByKey
	l.userHabits = userHabits
	l.rewards = rewards
	return nil
}
