package engine

import (
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
)

// Distribute converts an ended pool's total stake into claimable balances,
// exactly once. Each participant's base share is an integer-division
// proportional split weighted by accumulated successful check-ins, plus a
// 10% bonus per completed week of streak on top of the base share.
//
// Floor rounding leaves a residual of at most len(participants)-1 wei
// unallocated from the base split; it is recorded on the pool rather than
// silently stranded. With zero successful check-ins the distribution still
// succeeds and credits nothing.
func (l *Ledger) Distribute(caller common.Address, poolID uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.agent {
		return ErrUnauthorized
	}
	p, ok := l.pools[poolID]
	if !ok {
		return ErrPoolNotFound
	}
	if l.clock.Now().Unix() < p.endTime() {
		return ErrPoolNotEnded
	}
	if p.Distributed {
		return ErrAlreadyDistributed
	}

	credited := new(big.Int)
	if p.TotalSuccessfulStreaks > 0 {
		totalStreaks := new(big.Int).SetUint64(p.TotalSuccessfulStreaks)
		bucket := l.rewards[poolID]
		if bucket == nil {
			bucket = make(map[common.Address]*big.Int)
			l.rewards[poolID] = bucket
		}

		for _, u := range p.Participants {
			streaks := p.streaks[u]
			if streaks == 0 {
				continue
			}

			base := new(big.Int).SetUint64(streaks)
			base.Mul(base, p.TotalStaked)
			base.Div(base, totalStreaks)

			weeks := streaks / streaksPerWeek
			bonus := new(big.Int).Mul(base, new(big.Int).SetUint64(weeks*weeklyBonusPercent))
			bonus.Div(bonus, big.NewInt(100))

			reward := new(big.Int).Add(base, bonus)
			if cur, exists := bucket[u]; exists {
				cur.Add(cur, reward)
			} else {
				bucket[u] = reward
			}
			credited.Add(credited, base)
		}
	}

	p.Residual = new(big.Int).Sub(p.TotalStaked, credited)
	p.Distributed = true

	l.emit(Event{
		Kind:   EventDistributed,
		PoolID: p.ID,
		Amount: new(big.Int).Set(p.TotalStaked),
	})
	return nil
}

// ClaimReward zeroes and returns the caller's claimable balance for a pool.
// The balance is zeroed before the returned amount is handed to whatever
// performs the transfer, so a re-entrant claim observes nothing left.
// A claimed (pool, user) pair can never be claimed again.
func (l *Ledger) ClaimReward(caller common.Address, poolID uint64) (*big.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	bucket := l.rewards[poolID]
	amount, ok := bucket[caller]
	if !ok || amount.Sign() == 0 {
		return nil, ErrNoRewardToClaim
	}
	delete(bucket, caller)

	// Habit-level claimed flags exist for the UI; reward accounting itself
	// is pool-scoped.
	for _, hid := range l.userHabits[caller] {
		if h := l.habits[hid]; h.PoolID == poolID {
			h.Claimed = true
		}
	}

	out := new(big.Int).Set(amount)
	l.emit(Event{
		Kind:   EventRewardClaimed,
		PoolID: poolID,
		User:   caller,
		Amount: new(big.Int).Set(out),
	})
	return out, nil
}

// RewardBalance reads as zero before distribution and after a claim.
func (l *Ledger) RewardBalance(poolID uint64, user common.Address) *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if amt, ok := l.rewards[poolID][user]; ok {
		return new(big.Int).Set(amt)
	}
	return new(big.Int)
}

// Leaderboard returns a pool's participants ordered by accumulated pool
// streak, highest first, paired with each participant's streak count. Ties
// keep first-join order. Unknown pools yield empty slices.
func (l *Ledger) Leaderboard(poolID uint64) ([]common.Address, []uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.pools[poolID]
	if !ok {
		return []common.Address{}, []uint64{}
	}
	board := append([]common.Address(nil), p.Participants...)
	sort.SliceStable(board, func(i, j int) bool {
		return p.streaks[board[i]] > p.streaks[board[j]]
	})
	streaks := make([]uint64, len(board))
	for i, u := range board {
		streaks[i] = p.streaks[u]
	}
	return board, streaks
}

// UndistributedPools lists pools whose window has elapsed and that still
// await distribution, oldest end time first. Feeds the auto-distribution
// monitor.
func (l *Ledger) UndistributedPools() []uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now().Unix()
	var ids []uint64
	for id, p := range l.pools {
		if !p.Distributed && now >= p.endTime() {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := l.pools[ids[i]], l.pools[ids[j]]
		if a.endTime() != b.endTime() {
			return a.endTime() < b.endTime()
		}
		return ids[i] < ids[j]
	})
	return ids
}
