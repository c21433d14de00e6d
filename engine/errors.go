package engine

import "errors"

// Failure conditions surfaced by ledger operations. Messages match the
// on-chain contract's revert strings so clients behave the same against
// either backend.
//
// Three kinds: input validation (ErrInvalidStake, ErrDurationTooShort,
// ErrInvalidAgent), authorization (ErrUnauthorized), and expected
// state/timing conflicts (everything else). Conflicts are steady-state
// outcomes, not bugs; callers should reflect them to users, not log them
// as errors.
var (
	ErrInvalidStake       = errors.New("stake amount must be greater than 0")
	ErrDurationTooShort   = errors.New("duration must be at least 7 days")
	ErrInvalidAgent       = errors.New("invalid agent address")
	ErrUnauthorized       = errors.New("caller not authorized")
	ErrHabitNotFound      = errors.New("habit not found")
	ErrPoolNotFound       = errors.New("pool not found")
	ErrHabitInactive      = errors.New("habit is not active")
	ErrTooSoon            = errors.New("already checked in today")
	ErrPoolNotEnded       = errors.New("pool period not ended")
	ErrAlreadyDistributed = errors.New("pool already distributed")
	ErrNoRewardToClaim    = errors.New("no reward to claim")
)
