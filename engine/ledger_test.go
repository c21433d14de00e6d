package engine

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

var (
	testOwner = common.HexToAddress("0x1000000000000000000000000000000000000001")
	testAgent = common.HexToAddress("0x2000000000000000000000000000000000000002")
	user1     = common.HexToAddress("0x3000000000000000000000000000000000000003")
	user2     = common.HexToAddress("0x4000000000000000000000000000000000000004")
	user3     = common.HexToAddress("0x5000000000000000000000000000000000000005")
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type captureSink struct {
	events []Event
}

func (s *captureSink) HandleEvent(ev Event) { s.events = append(s.events, ev) }

func (s *captureSink) last() Event {
	return s.events[len(s.events)-1]
}

func newTestLedger(t *testing.T) (*Ledger, *fakeClock, *captureSink) {
	t.Helper()
	clk := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	sink := &captureSink{}
	l, err := New(testOwner, testAgent, WithClock(clk), WithEventSink(sink))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return l, clk, sink
}

// bnb converts whole BNB to wei.
func bnb(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

func mustStake(t *testing.T, l *Ledger, user common.Address, typ HabitType, days uint64, amount *big.Int) uint64 {
	t.Helper()
	id, err := l.Stake(user, typ, days, amount)
	if err != nil {
		t.Fatalf("Stake failed: %v", err)
	}
	return id
}

func mustCheckIn(t *testing.T, l *Ledger, habitID uint64) {
	t.Helper()
	if err := l.CheckIn(testAgent, habitID, nil); err != nil {
		t.Fatalf("CheckIn(%d) failed: %v", habitID, err)
	}
}

func TestNew(t *testing.T) {
	l, _, _ := newTestLedger(t)

	if got := l.Owner(); got != testOwner {
		t.Errorf("Owner() = %s, want %s", got.Hex(), testOwner.Hex())
	}
	if got := l.Agent(); got != testAgent {
		t.Errorf("Agent() = %s, want %s", got.Hex(), testAgent.Hex())
	}
}

func TestNew_ZeroAgent(t *testing.T) {
	if _, err := New(testOwner, common.Address{}); !errors.Is(err, ErrInvalidAgent) {
		t.Fatalf("New with zero agent: got %v, want ErrInvalidAgent", err)
	}
}

func TestStake_IDsStartAtOne(t *testing.T) {
	l, _, _ := newTestLedger(t)

	id := mustStake(t, l, user1, HabitCoding, 7, bnb(1))
	if id != 1 {
		t.Errorf("first habit id = %d, want 1", id)
	}
	h, err := l.Habit(id)
	if err != nil {
		t.Fatalf("Habit(1) failed: %v", err)
	}
	if h.PoolID != 1 {
		t.Errorf("first pool id = %d, want 1", h.PoolID)
	}
}

func TestStake_ZeroAmount(t *testing.T) {
	l, _, _ := newTestLedger(t)

	if _, err := l.Stake(user1, HabitCoding, 7, big.NewInt(0)); !errors.Is(err, ErrInvalidStake) {
		t.Fatalf("Stake(0): got %v, want ErrInvalidStake", err)
	}
	if _, err := l.Stake(user1, HabitCoding, 7, nil); !errors.Is(err, ErrInvalidStake) {
		t.Fatalf("Stake(nil): got %v, want ErrInvalidStake", err)
	}
}

func TestStake_DurationTooShort(t *testing.T) {
	l, _, _ := newTestLedger(t)

	if _, err := l.Stake(user1, HabitCoding, 6, bnb(1)); !errors.Is(err, ErrDurationTooShort) {
		t.Fatalf("Stake(6 days): got %v, want ErrDurationTooShort", err)
	}
}

func TestStake_HabitFields(t *testing.T) {
	l, clk, _ := newTestLedger(t)

	id := mustStake(t, l, user1, HabitExercise, 14, bnb(1))
	h, err := l.Habit(id)
	if err != nil {
		t.Fatalf("Habit failed: %v", err)
	}

	if h.Owner != user1 {
		t.Errorf("Owner = %s, want %s", h.Owner.Hex(), user1.Hex())
	}
	if h.Type != HabitExercise {
		t.Errorf("Type = %d, want %d", h.Type, HabitExercise)
	}
	if h.StakeAmount.Cmp(bnb(1)) != 0 {
		t.Errorf("StakeAmount = %s, want %s", h.StakeAmount, bnb(1))
	}
	if h.StartTime != clk.now.Unix() {
		t.Errorf("StartTime = %d, want %d", h.StartTime, clk.now.Unix())
	}
	if h.Duration != 14*24*60*60 {
		t.Errorf("Duration = %d, want %d", h.Duration, 14*24*60*60)
	}
	if h.CurrentStreak != 0 || h.LongestStreak != 0 {
		t.Errorf("streaks = %d/%d, want 0/0", h.CurrentStreak, h.LongestStreak)
	}
	if h.LastCheckIn != 0 {
		t.Errorf("LastCheckIn = %d, want 0", h.LastCheckIn)
	}
	if !h.Active {
		t.Error("Active = false, want true")
	}
	if h.Claimed {
		t.Error("Claimed = true, want false")
	}
}

func TestStake_UserHabitList(t *testing.T) {
	l, _, _ := newTestLedger(t)

	mustStake(t, l, user1, HabitCoding, 7, bnb(1))
	mustStake(t, l, user1, HabitCoding, 7, bnb(1))
	mustStake(t, l, user1, HabitCoding, 7, bnb(1))

	got := l.UserHabits(user1)
	want := []uint64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("UserHabits = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("UserHabits = %v, want %v", got, want)
		}
	}

	if empty := l.UserHabits(user2); len(empty) != 0 {
		t.Errorf("UserHabits(user2) = %v, want empty", empty)
	}
}

func TestStake_SamePoolAggregation(t *testing.T) {
	l, _, _ := newTestLedger(t)

	mustStake(t, l, user1, HabitCoding, 7, bnb(1))
	mustStake(t, l, user2, HabitCoding, 7, bnb(2))

	p, err := l.Pool(1)
	if err != nil {
		t.Fatalf("Pool failed: %v", err)
	}
	if p.TotalStaked.Cmp(bnb(3)) != 0 {
		t.Errorf("TotalStaked = %s, want %s", p.TotalStaked, bnb(3))
	}
	if len(p.Participants) != 2 {
		t.Fatalf("participants = %d, want 2", len(p.Participants))
	}
	if p.Participants[0] != user1 || p.Participants[1] != user2 {
		t.Errorf("participants not in first-join order: %v", p.Participants)
	}
	if p.TotalSuccessfulStreaks != 0 {
		t.Errorf("TotalSuccessfulStreaks = %d, want 0", p.TotalSuccessfulStreaks)
	}
	if p.Distributed {
		t.Error("Distributed = true, want false")
	}
}

func TestStake_PoolFragmentation(t *testing.T) {
	l, clk, _ := newTestLedger(t)

	// Exact-match pool keying: a one second skew in start time must land
	// the second stake in a fresh pool.
	id1 := mustStake(t, l, user1, HabitCoding, 7, bnb(1))
	clk.advance(1 * time.Second)
	id2 := mustStake(t, l, user2, HabitCoding, 7, bnb(1))

	h1, _ := l.Habit(id1)
	h2, _ := l.Habit(id2)
	if h1.PoolID == h2.PoolID {
		t.Fatalf("stakes one second apart share pool %d", h1.PoolID)
	}

	// Different type or duration fragments too.
	id3 := mustStake(t, l, user3, HabitReading, 7, bnb(1))
	id4 := mustStake(t, l, user3, HabitCoding, 8, bnb(1))
	h3, _ := l.Habit(id3)
	h4, _ := l.Habit(id4)
	if h3.PoolID == h2.PoolID || h4.PoolID == h2.PoolID || h3.PoolID == h4.PoolID {
		t.Errorf("distinct triples must not pool together: %d %d %d", h2.PoolID, h3.PoolID, h4.PoolID)
	}
}

func TestStake_RepeatStakerNotDuplicatedInParticipants(t *testing.T) {
	l, _, _ := newTestLedger(t)

	mustStake(t, l, user1, HabitCoding, 7, bnb(1))
	mustStake(t, l, user1, HabitCoding, 7, bnb(1))

	p, _ := l.Pool(1)
	if len(p.Participants) != 1 {
		t.Fatalf("participants = %v, want just user1", p.Participants)
	}
	if p.TotalStaked.Cmp(bnb(2)) != 0 {
		t.Errorf("TotalStaked = %s, want %s", p.TotalStaked, bnb(2))
	}
}

func TestStake_EmitsStakedEvent(t *testing.T) {
	l, _, sink := newTestLedger(t)

	mustStake(t, l, user1, HabitCoding, 7, bnb(1))

	ev := sink.last()
	if ev.Kind != EventStaked {
		t.Fatalf("event kind = %s, want Staked", ev.Kind)
	}
	if ev.User != user1 || ev.HabitID != 1 || ev.HabitType != HabitCoding || ev.DurationDays != 7 {
		t.Errorf("unexpected Staked event: %+v", ev)
	}
	if ev.Amount.Cmp(bnb(1)) != 0 {
		t.Errorf("event amount = %s, want %s", ev.Amount, bnb(1))
	}
}

func TestSetAgent(t *testing.T) {
	l, _, _ := newTestLedger(t)

	if err := l.SetAgent(testOwner, user3); err != nil {
		t.Fatalf("SetAgent failed: %v", err)
	}
	if got := l.Agent(); got != user3 {
		t.Errorf("Agent() = %s, want %s", got.Hex(), user3.Hex())
	}

	// Rotation is immediate: the old agent is locked out, the new one in.
	mustStake(t, l, user1, HabitCoding, 7, bnb(1))
	if err := l.CheckIn(testAgent, 1, nil); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("old agent check-in: got %v, want ErrUnauthorized", err)
	}
	if err := l.CheckIn(user3, 1, nil); err != nil {
		t.Errorf("new agent check-in failed: %v", err)
	}
}

func TestSetAgent_NotOwner(t *testing.T) {
	l, _, _ := newTestLedger(t)

	if err := l.SetAgent(user1, user2); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("SetAgent by non-owner: got %v, want ErrUnauthorized", err)
	}
	if got := l.Agent(); got != testAgent {
		t.Errorf("agent changed by unauthorized caller to %s", got.Hex())
	}
}

func TestSetAgent_ZeroAddress(t *testing.T) {
	l, _, _ := newTestLedger(t)

	if err := l.SetAgent(testOwner, common.Address{}); !errors.Is(err, ErrInvalidAgent) {
		t.Fatalf("SetAgent(zero): got %v, want ErrInvalidAgent", err)
	}
}

func TestHabit_Unknown(t *testing.T) {
	l, _, _ := newTestLedger(t)

	if _, err := l.Habit(99); !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("Habit(99): got %v, want ErrHabitNotFound", err)
	}
	if _, err := l.Pool(99); !errors.Is(err, ErrPoolNotFound) {
		t.Errorf("Pool(99): got %v, want ErrPoolNotFound", err)
	}
	if _, err := l.Streak(99); !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("Streak(99): got %v, want ErrHabitNotFound", err)
	}
}

func TestHabit_ReturnsCopy(t *testing.T) {
	l, _, _ := newTestLedger(t)

	id := mustStake(t, l, user1, HabitCoding, 7, bnb(1))
	h, _ := l.Habit(id)
	h.StakeAmount.SetInt64(0)

	again, _ := l.Habit(id)
	if again.StakeAmount.Cmp(bnb(1)) != 0 {
		t.Error("mutating a returned habit leaked into ledger state")
	}
}
