package engine

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// HabitType tags a habit commitment. The numeric values are wire constants
// shared with the desktop client and the verification agent; do not reorder.
type HabitType uint8

const (
	HabitCoding HabitType = iota
	HabitExercise
	HabitReading
	HabitMeditation
	HabitLanguage
	HabitCustom
)

func (t HabitType) String() string {
	switch t {
	case HabitCoding:
		return "coding"
	case HabitExercise:
		return "exercise"
	case HabitReading:
		return "reading"
	case HabitMeditation:
		return "meditation"
	case HabitLanguage:
		return "language"
	case HabitCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Habit is one user's staked commitment to a habit type for a fixed
// duration. Created by Stake, mutated only by CheckIn; never deleted.
// LastCheckIn of 0 means the habit has never been checked in.
type Habit struct {
	ID            uint64
	Owner         common.Address
	Type          HabitType
	StakeAmount   *big.Int
	StartTime     int64 // unix seconds
	Duration      int64 // seconds
	CurrentStreak uint64
	LongestStreak uint64
	LastCheckIn   int64 // unix seconds, 0 = never
	Active        bool
	Claimed       bool
	PoolID        uint64
}

func (h *Habit) clone() Habit {
	c := *h
	c.StakeAmount = new(big.Int).Set(h.StakeAmount)
	return c
}

// Pool aggregates the stakes of every habit sharing the exact
// (type, startTime, duration) triple. Keying is literal equality: two stakes
// created one second apart never share a pool. That fragmentation is the
// documented product behavior, not something to bucket away.
type Pool struct {
	ID                     uint64
	Type                   HabitType
	StartTime              int64 // unix seconds
	Duration               int64 // seconds
	TotalStaked            *big.Int
	TotalSuccessfulStreaks uint64
	Distributed            bool
	Participants           []common.Address // first-join order
	// Residual is the floor-rounding dust left unallocated by distribution.
	// Kept on the books explicitly instead of silently stranding funds.
	// Nil until the pool is distributed.
	Residual *big.Int

	// accumulated successful check-ins per participant
	streaks map[common.Address]uint64
}

func (p *Pool) endTime() int64 { return p.StartTime + p.Duration }

func (p *Pool) clone() Pool {
	c := *p
	c.TotalStaked = new(big.Int).Set(p.TotalStaked)
	if p.Residual != nil {
		c.Residual = new(big.Int).Set(p.Residual)
	}
	c.Participants = append([]common.Address(nil), p.Participants...)
	c.streaks = nil
	return c
}
