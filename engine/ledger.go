// Package engine implements the staking, streak-tracking and reward
// distribution ledger behind StreakBeast. State lives in memory and every
// operation commits atomically under a single lock: a call either fully
// applies its state changes and emits its event, or returns an error having
// changed nothing. Durability is layered on top by the dao mirror.
package engine

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// MinDurationDays is the shortest commitment a stake may carry.
	MinDurationDays = 7

	secondsPerDay = 24 * 60 * 60

	// A habit may be checked in at most once per rolling day. The floor is
	// deliberately narrower than 24h so the daily cadence does not drift;
	// the ceiling grants one full day of slack beyond 24h before the
	// streak is void.
	minCheckInGapSeconds = 20 * 60 * 60
	maxCheckInGapSeconds = 48 * 60 * 60

	weeklyBonusPercent = 10
	streaksPerWeek     = 7
)

type poolKey struct {
	typ      HabitType
	start    int64
	duration int64
}

// Ledger is the single-writer habit/pool/reward ledger. Mutating operations
// take the caller address explicitly; privileged ones compare it against the
// stored agent or owner slot and fail with ErrUnauthorized on mismatch,
// touching nothing.
type Ledger struct {
	mu    sync.Mutex
	clock Clock

	owner common.Address
	agent common.Address

	nextHabitID uint64
	nextPoolID  uint64

	habits     map[uint64]*Habit
	pools      map[uint64]*Pool
	poolByKey  map[poolKey]uint64
	userHabits map[common.Address][]uint64
	rewards    map[uint64]map[common.Address]*big.Int

	sinks []EventSink
}

type Option func(*Ledger)

// WithClock overrides the system clock. Used by tests and replay tooling.
func WithClock(c Clock) Option {
	return func(l *Ledger) { l.clock = c }
}

// WithEventSink registers a sink that receives committed events in order.
func WithEventSink(s EventSink) Option {
	return func(l *Ledger) { l.sinks = append(l.sinks, s) }
}

// New creates an empty ledger. The owner governs agent rotation; the agent
// is the sole caller allowed to report check-ins and trigger distribution.
// Ids start at 1.
func New(owner, agent common.Address, opts ...Option) (*Ledger, error) {
	if agent == (common.Address{}) {
		return nil, ErrInvalidAgent
	}
	l := &Ledger{
		clock:       SystemClock(),
		owner:       owner,
		agent:       agent,
		nextHabitID: 1,
		nextPoolID:  1,
		habits:      make(map[uint64]*Habit),
		pools:       make(map[uint64]*Pool),
		poolByKey:   make(map[poolKey]uint64),
		userHabits:  make(map[common.Address][]uint64),
		rewards:     make(map[uint64]map[common.Address]*big.Int),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

func (l *Ledger) emit(ev Event) {
	for _, s := range l.sinks {
		s.HandleEvent(ev)
	}
}

func (l *Ledger) Owner() common.Address {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.owner
}

func (l *Ledger) Agent() common.Address {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.agent
}

// Counters reports the next habit and pool ids, for the durability mirror.
func (l *Ledger) Counters() (nextHabitID, nextPoolID uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.nextHabitID, l.nextPoolID
}

// SetAgent rotates the verification agent. Owner-gated; the new agent is
// effective for every subsequent call.
func (l *Ledger) SetAgent(caller, newAgent common.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.owner {
		return ErrUnauthorized
	}
	if newAgent == (common.Address{}) {
		return ErrInvalidAgent
	}
	l.agent = newAgent
	l.emit(Event{Kind: EventAgentChanged, User: newAgent})
	return nil
}

// Stake locks amount against a new habit commitment and joins the pool
// matching the (type, now, duration) triple, creating it when the triple is
// new. Returns the habit id.
func (l *Ledger) Stake(caller common.Address, habitType HabitType, durationDays uint64, amount *big.Int) (uint64, error) {
	if amount == nil || amount.Sign() <= 0 {
		return 0, ErrInvalidStake
	}
	if durationDays < MinDurationDays {
		return 0, ErrDurationTooShort
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now().Unix()
	h := &Habit{
		ID:          l.nextHabitID,
		Owner:       caller,
		Type:        habitType,
		StakeAmount: new(big.Int).Set(amount),
		StartTime:   now,
		Duration:    int64(durationDays) * secondsPerDay,
		Active:      true,
	}
	l.nextHabitID++

	p := l.joinPool(h)
	h.PoolID = p.ID

	l.habits[h.ID] = h
	l.userHabits[caller] = append(l.userHabits[caller], h.ID)

	l.emit(Event{
		Kind:         EventStaked,
		HabitID:      h.ID,
		PoolID:       p.ID,
		User:         caller,
		HabitType:    habitType,
		Amount:       new(big.Int).Set(amount),
		DurationDays: durationDays,
	})
	return h.ID, nil
}

func (l *Ledger) joinPool(h *Habit) *Pool {
	key := poolKey{typ: h.Type, start: h.StartTime, duration: h.Duration}
	if id, ok := l.poolByKey[key]; ok {
		p := l.pools[id]
		p.TotalStaked.Add(p.TotalStaked, h.StakeAmount)
		if _, seen := p.streaks[h.Owner]; !seen {
			p.Participants = append(p.Participants, h.Owner)
			p.streaks[h.Owner] = 0
		}
		return p
	}

	p := &Pool{
		ID:           l.nextPoolID,
		Type:         h.Type,
		StartTime:    h.StartTime,
		Duration:     h.Duration,
		TotalStaked:  new(big.Int).Set(h.StakeAmount),
		Participants: []common.Address{h.Owner},
		streaks:      map[common.Address]uint64{h.Owner: 0},
	}
	l.nextPoolID++
	l.pools[p.ID] = p
	l.poolByKey[key] = p.ID
	return p
}

// CheckIn records an agent-verified completion for a habit. The proof
// payload is opaque here: it is carried for auditability only and never
// parsed; authenticity rests entirely on the agent role check.
//
// First check-in is always eligible. Afterwards, a gap under 20h is
// rejected with ErrTooSoon, a gap over 48h permanently deactivates the
// habit (the call itself succeeds and emits StreakBroken), and anything in
// between extends the streak.
func (l *Ledger) CheckIn(caller common.Address, habitID uint64, proof []byte) error {
	_ = proof // uninterpreted, verified upstream by the oracle

	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.agent {
		return ErrUnauthorized
	}
	h, ok := l.habits[habitID]
	if !ok {
		return ErrHabitNotFound
	}
	if !h.Active {
		return ErrHabitInactive
	}

	now := l.clock.Now().Unix()
	if h.LastCheckIn != 0 {
		elapsed := now - h.LastCheckIn
		if elapsed < minCheckInGapSeconds {
			return ErrTooSoon
		}
		if elapsed > maxCheckInGapSeconds {
			// Missed by more than a day: terminal, no way back.
			h.Active = false
			l.emit(Event{
				Kind:    EventStreakBroken,
				HabitID: h.ID,
				PoolID:  h.PoolID,
				User:    h.Owner,
				Streak:  h.CurrentStreak,
			})
			return nil
		}
	}

	h.CurrentStreak++
	if h.CurrentStreak > h.LongestStreak {
		h.LongestStreak = h.CurrentStreak
	}
	h.LastCheckIn = now

	p := l.pools[h.PoolID]
	p.TotalSuccessfulStreaks++
	p.streaks[h.Owner]++

	l.emit(Event{
		Kind:    EventCheckedIn,
		HabitID: h.ID,
		PoolID:  h.PoolID,
		User:    h.Owner,
		Streak:  h.CurrentStreak,
	})
	return nil
}

// Habit returns a copy of the habit record.
func (l *Ledger) Habit(id uint64) (Habit, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	h, ok := l.habits[id]
	if !ok {
		return Habit{}, ErrHabitNotFound
	}
	return h.clone(), nil
}

// Pool returns a copy of the pool record.
func (l *Ledger) Pool(id uint64) (Pool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.pools[id]
	if !ok {
		return Pool{}, ErrPoolNotFound
	}
	return p.clone(), nil
}

// Streak returns a habit's current streak.
func (l *Ledger) Streak(habitID uint64) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	h, ok := l.habits[habitID]
	if !ok {
		return 0, ErrHabitNotFound
	}
	return h.CurrentStreak, nil
}

// UserHabits returns the ids of every habit the user has staked, in
// creation order. Empty slice for unknown users.
func (l *Ledger) UserHabits(user common.Address) []uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]uint64{}, l.userHabits[user]...)
}

// PoolStreak returns a participant's accumulated successful check-ins
// within a pool. Zero for unknown pools or non-participants.
func (l *Ledger) PoolStreak(poolID uint64, user common.Address) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.pools[poolID]
	if !ok {
		return 0
	}
	return p.streaks[user]
}
