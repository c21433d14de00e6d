package streak

import "time"

// PoolRecord mirrors one staking pool.
type PoolRecord struct {
	ID                     int64     `gorm:"primaryKey" json:"id"`
	PoolID                 uint64    `gorm:"not null;uniqueIndex" json:"pool_id"`
	HabitType              uint8     `gorm:"not null" json:"habit_type"`
	StartTime              int64     `gorm:"not null" json:"start_time"`
	Duration               int64     `gorm:"not null" json:"duration"`
	TotalStaked            string    `gorm:"size:80;not null" json:"total_staked"` // wei, decimal string
	TotalSuccessfulStreaks uint64    `json:"total_successful_streaks"`
	Distributed            bool      `json:"distributed"`
	Residual               string    `gorm:"size:80" json:"residual"` // empty until distributed
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

func PoolTableName() string {
	return "streak_pool"
}

func (PoolRecord) TableName() string {
	return PoolTableName()
}

// PoolStreakRecord is one participant's membership and accumulated streak
// inside a pool. JoinOrder preserves first-join order for leaderboard ties.
type PoolStreakRecord struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	PoolID    uint64    `gorm:"not null;uniqueIndex:idx_pool_user" json:"pool_id"`
	User      string    `gorm:"size:64;not null;uniqueIndex:idx_pool_user" json:"user"`
	Streak    uint64    `json:"streak"`
	JoinOrder int       `gorm:"not null" json:"join_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func PoolStreakTableName() string {
	return "streak_pool_user"
}

func (PoolStreakRecord) TableName() string {
	return PoolStreakTableName()
}
