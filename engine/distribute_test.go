package engine

import (
	"errors"
	"math/big"
	"testing"
	"time"
)

func TestDistribute_NotAgent(t *testing.T) {
	l, clk, _ := newTestLedger(t)
	mustStake(t, l, user1, HabitCoding, 7, bnb(1))
	clk.advance(8 * 24 * time.Hour)

	if err := l.Distribute(user2, 1); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Distribute by non-agent: got %v, want ErrUnauthorized", err)
	}
}

func TestDistribute_UnknownPool(t *testing.T) {
	l, _, _ := newTestLedger(t)

	if err := l.Distribute(testAgent, 7); !errors.Is(err, ErrPoolNotFound) {
		t.Fatalf("Distribute(7): got %v, want ErrPoolNotFound", err)
	}
}

func TestDistribute_PoolNotEnded(t *testing.T) {
	// Scenario E, first half: distribution before startTime+duration fails.
	l, clk, _ := newTestLedger(t)
	mustStake(t, l, user1, HabitCoding, 7, bnb(1))

	if err := l.Distribute(testAgent, 1); !errors.Is(err, ErrPoolNotEnded) {
		t.Fatalf("early Distribute: got %v, want ErrPoolNotEnded", err)
	}

	clk.advance(7*24*time.Hour - time.Second)
	if err := l.Distribute(testAgent, 1); !errors.Is(err, ErrPoolNotEnded) {
		t.Fatalf("Distribute one second early: got %v, want ErrPoolNotEnded", err)
	}

	// now == startTime+duration is in bounds
	clk.advance(time.Second)
	if err := l.Distribute(testAgent, 1); err != nil {
		t.Fatalf("Distribute at exact end: %v", err)
	}
}

func TestDistribute_AlreadyDistributed(t *testing.T) {
	// Scenario E, second half: the distributed flag is one-way and a second
	// call must not move any balance.
	l, clk, _ := newTestLedger(t)
	mustStake(t, l, user1, HabitCoding, 7, bnb(1))
	mustCheckIn(t, l, 1)
	clk.advance(8 * 24 * time.Hour)

	if err := l.Distribute(testAgent, 1); err != nil {
		t.Fatalf("Distribute failed: %v", err)
	}
	before := l.RewardBalance(1, user1)

	if err := l.Distribute(testAgent, 1); !errors.Is(err, ErrAlreadyDistributed) {
		t.Fatalf("second Distribute: got %v, want ErrAlreadyDistributed", err)
	}
	after := l.RewardBalance(1, user1)
	if before.Cmp(after) != 0 {
		t.Errorf("repeat Distribute moved balance: %s -> %s", before, after)
	}
}

func TestDistribute_WeeklyBonusSplit(t *testing.T) {
	// Scenario D. Two users stake 1 BNB each into the same 14 day pool;
	// user1 accrues 7 check-ins (1 completed week), user2 accrues 14
	// (2 completed weeks). totalStreaks = 21.
	l, clk, _ := newTestLedger(t)
	id1 := mustStake(t, l, user1, HabitCoding, 14, bnb(1))
	id2 := mustStake(t, l, user2, HabitCoding, 14, bnb(1))

	for i := 0; i < 7; i++ {
		mustCheckIn(t, l, id1)
		clk.advance(24 * time.Hour)
	}
	for i := 0; i < 14; i++ {
		mustCheckIn(t, l, id2)
		clk.advance(24 * time.Hour)
	}

	if err := l.Distribute(testAgent, 1); err != nil {
		t.Fatalf("Distribute failed: %v", err)
	}

	total := bnb(2)
	totalStreaks := big.NewInt(21)

	base1 := new(big.Int).Mul(big.NewInt(7), total)
	base1.Div(base1, totalStreaks)
	want1 := new(big.Int).Add(base1, new(big.Int).Div(new(big.Int).Mul(base1, big.NewInt(10)), big.NewInt(100)))

	base2 := new(big.Int).Mul(big.NewInt(14), total)
	base2.Div(base2, totalStreaks)
	want2 := new(big.Int).Add(base2, new(big.Int).Div(new(big.Int).Mul(base2, big.NewInt(20)), big.NewInt(100)))

	if got := l.RewardBalance(1, user1); got.Cmp(want1) != 0 {
		t.Errorf("user1 reward = %s, want %s", got, want1)
	}
	if got := l.RewardBalance(1, user2); got.Cmp(want2) != 0 {
		t.Errorf("user2 reward = %s, want %s", got, want2)
	}

	// Pin the closed-form numbers so the formula cannot drift.
	if want1.String() != "733333333333333332" {
		t.Errorf("user1 closed form = %s, want 733333333333333332", want1)
	}
	if want2.String() != "1599999999999999999" {
		t.Errorf("user2 closed form = %s, want 1599999999999999999", want2)
	}

	// Base-share floor dust stays on the books.
	p, _ := l.Pool(1)
	if p.Residual == nil || p.Residual.String() != "1" {
		t.Errorf("residual = %v, want 1 wei", p.Residual)
	}
}

func TestDistribute_BaseSharesNeverExceedPool(t *testing.T) {
	l, clk, _ := newTestLedger(t)
	id1 := mustStake(t, l, user1, HabitCoding, 7, bnb(1))
	id2 := mustStake(t, l, user2, HabitCoding, 7, big.NewInt(999999999))
	id3 := mustStake(t, l, user3, HabitCoding, 7, big.NewInt(7))

	for i := 0; i < 5; i++ {
		mustCheckIn(t, l, id1)
		if i < 3 {
			mustCheckIn(t, l, id2)
		}
		if i < 1 {
			mustCheckIn(t, l, id3)
		}
		clk.advance(24 * time.Hour)
	}
	clk.advance(7 * 24 * time.Hour)

	p, _ := l.Pool(1)
	total := new(big.Int).Set(p.TotalStaked)

	if err := l.Distribute(testAgent, 1); err != nil {
		t.Fatalf("Distribute failed: %v", err)
	}

	p, _ = l.Pool(1)
	if p.Residual.Sign() < 0 {
		t.Errorf("residual negative: %s", p.Residual)
	}
	if p.Residual.Cmp(big.NewInt(int64(len(p.Participants)))) >= 0 {
		t.Errorf("residual %s not bounded by participant count %d", p.Residual, len(p.Participants))
	}

	// Sum of base shares = totalStaked - residual <= totalStaked.
	distributed := new(big.Int).Sub(total, p.Residual)
	if distributed.Cmp(total) > 0 {
		t.Errorf("base shares %s exceed pool %s", distributed, total)
	}
}

func TestDistribute_ZeroStreaks(t *testing.T) {
	// Nobody checked in: distribution still succeeds, credits nothing, and
	// the whole pool sits in the residual line.
	l, clk, _ := newTestLedger(t)
	mustStake(t, l, user1, HabitCoding, 7, bnb(1))
	clk.advance(8 * 24 * time.Hour)

	if err := l.Distribute(testAgent, 1); err != nil {
		t.Fatalf("Distribute with zero streaks failed: %v", err)
	}
	if got := l.RewardBalance(1, user1); got.Sign() != 0 {
		t.Errorf("reward = %s, want 0", got)
	}
	p, _ := l.Pool(1)
	if !p.Distributed {
		t.Error("pool not marked distributed")
	}
	if p.Residual.Cmp(bnb(1)) != 0 {
		t.Errorf("residual = %s, want full stake %s", p.Residual, bnb(1))
	}
}

func TestDistribute_EmitsDistributedEvent(t *testing.T) {
	l, clk, sink := newTestLedger(t)
	mustStake(t, l, user1, HabitCoding, 7, bnb(1))
	mustCheckIn(t, l, 1)
	clk.advance(8 * 24 * time.Hour)

	if err := l.Distribute(testAgent, 1); err != nil {
		t.Fatalf("Distribute failed: %v", err)
	}

	ev := sink.last()
	if ev.Kind != EventDistributed {
		t.Fatalf("event kind = %s, want Distributed", ev.Kind)
	}
	if ev.PoolID != 1 || ev.Amount.Cmp(bnb(1)) != 0 {
		t.Errorf("unexpected Distributed event: %+v", ev)
	}
}

func TestRewardBalance_ZeroBeforeDistribution(t *testing.T) {
	l, _, _ := newTestLedger(t)
	mustStake(t, l, user1, HabitCoding, 7, bnb(1))
	mustCheckIn(t, l, 1)

	if got := l.RewardBalance(1, user1); got.Sign() != 0 {
		t.Errorf("balance before distribution = %s, want 0", got)
	}
	if got := l.RewardBalance(99, user1); got.Sign() != 0 {
		t.Errorf("balance for unknown pool = %s, want 0", got)
	}
}

func TestClaimReward(t *testing.T) {
	l, clk, sink := newTestLedger(t)
	mustStake(t, l, user1, HabitCoding, 7, bnb(1))
	mustCheckIn(t, l, 1)
	clk.advance(8 * 24 * time.Hour)
	if err := l.Distribute(testAgent, 1); err != nil {
		t.Fatalf("Distribute failed: %v", err)
	}

	want := l.RewardBalance(1, user1)
	if want.Sign() == 0 {
		t.Fatal("expected non-zero reward after distribution")
	}

	got, err := l.ClaimReward(user1, 1)
	if err != nil {
		t.Fatalf("ClaimReward failed: %v", err)
	}
	if got.Cmp(want) != 0 {
		t.Errorf("claimed %s, want %s", got, want)
	}

	// Round-trip: balance reads zero immediately after the claim.
	if bal := l.RewardBalance(1, user1); bal.Sign() != 0 {
		t.Errorf("balance after claim = %s, want 0", bal)
	}

	ev := sink.last()
	if ev.Kind != EventRewardClaimed {
		t.Fatalf("event kind = %s, want RewardClaimed", ev.Kind)
	}
	if ev.User != user1 || ev.PoolID != 1 || ev.Amount.Cmp(want) != 0 {
		t.Errorf("unexpected RewardClaimed event: %+v", ev)
	}

	h, _ := l.Habit(1)
	if !h.Claimed {
		t.Error("habit claimed flag not set")
	}
}

func TestClaimReward_NoReward(t *testing.T) {
	l, _, _ := newTestLedger(t)

	if _, err := l.ClaimReward(user1, 1); !errors.Is(err, ErrNoRewardToClaim) {
		t.Fatalf("claim with no balance: got %v, want ErrNoRewardToClaim", err)
	}
}

func TestClaimReward_SecondClaimFails(t *testing.T) {
	l, clk, _ := newTestLedger(t)
	mustStake(t, l, user1, HabitCoding, 7, bnb(1))
	mustCheckIn(t, l, 1)
	clk.advance(8 * 24 * time.Hour)
	if err := l.Distribute(testAgent, 1); err != nil {
		t.Fatalf("Distribute failed: %v", err)
	}

	if _, err := l.ClaimReward(user1, 1); err != nil {
		t.Fatalf("first claim failed: %v", err)
	}
	if _, err := l.ClaimReward(user1, 1); !errors.Is(err, ErrNoRewardToClaim) {
		t.Fatalf("second claim: got %v, want ErrNoRewardToClaim", err)
	}
}

func TestUndistributedPools(t *testing.T) {
	l, clk, _ := newTestLedger(t)
	mustStake(t, l, user1, HabitCoding, 7, bnb(1))
	clk.advance(time.Second)
	mustStake(t, l, user2, HabitCoding, 14, bnb(1))

	if ids := l.UndistributedPools(); len(ids) != 0 {
		t.Fatalf("UndistributedPools before any end = %v, want none", ids)
	}

	clk.advance(8 * 24 * time.Hour)
	if ids := l.UndistributedPools(); len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("UndistributedPools = %v, want [1]", ids)
	}

	if err := l.Distribute(testAgent, 1); err != nil {
		t.Fatalf("Distribute failed: %v", err)
	}
	if ids := l.UndistributedPools(); len(ids) != 0 {
		t.Fatalf("UndistributedPools after distribution = %v, want none", ids)
	}

	clk.advance(7 * 24 * time.Hour)
	if ids := l.UndistributedPools(); len(ids) != 1 || ids[0] != 2 {
		t.Fatalf("UndistributedPools = %v, want [2]", ids)
	}
}
