package streak

import "time"

// HabitRecord mirrors one ledger habit. HabitID is the ledger id, not the
// auto-increment row id, so restarts upsert instead of duplicating rows.
type HabitRecord struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	HabitID       uint64    `gorm:"not null;uniqueIndex" json:"habit_id"`
	Owner         string    `gorm:"size:64;not null;index" json:"owner"`
	HabitType     uint8     `gorm:"not null" json:"habit_type"`
	StakeAmount   string    `gorm:"size:80;not null" json:"stake_amount"` // wei, decimal string
	StartTime     int64     `gorm:"not null" json:"start_time"`
	Duration      int64     `gorm:"not null" json:"duration"`
	LastCheckIn   int64     `json:"last_check_in"`
	CurrentStreak uint64    `json:"current_streak"`
	LongestStreak uint64    `json:"longest_streak"`
	Active        bool      `gorm:"default:true" json:"active"`
	Claimed       bool      `json:"claimed"`
	PoolID        uint64    `gorm:"not null;index" json:"pool_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func HabitTableName() string {
	return "streak_habit"
}

func (HabitRecord) TableName() string {
	return HabitTableName()
}
