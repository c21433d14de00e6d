package engine

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type EventKind string

const (
	EventStaked        EventKind = "Staked"
	EventCheckedIn     EventKind = "CheckedIn"
	EventStreakBroken  EventKind = "StreakBroken"
	EventDistributed   EventKind = "Distributed"
	EventRewardClaimed EventKind = "RewardClaimed"
	EventAgentChanged  EventKind = "AgentChanged"
)

// Event is a committed ledger observation. Fields not meaningful for a kind
// are zero; Amount is nil for kinds carrying no value.
type Event struct {
	Kind         EventKind
	HabitID      uint64
	PoolID       uint64
	User         common.Address
	HabitType    HabitType
	Amount       *big.Int
	Streak       uint64
	DurationDays uint64
}

// EventSink consumes committed events in commit order. Handlers run on the
// mutating goroutine and must not call back into the ledger.
type EventSink interface {
	HandleEvent(Event)
}
