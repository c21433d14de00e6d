package streak

import "time"

// MetaRecord is a small key/value table for ledger-level state that has no
// natural row elsewhere: owner, current agent, id counters.
type MetaRecord struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"size:64;not null;uniqueIndex;column:meta_key" json:"key"`
	Value     string    `gorm:"size:200;not null;column:meta_value" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	MetaKeyOwner       = "owner"
	MetaKeyAgent       = "agent"
	MetaKeyNextHabitID = "next_habit_id"
	MetaKeyNextPoolID  = "next_pool_id"
)

func MetaTableName() string {
	return "streak_meta"
}

func (MetaRecord) TableName() string {
	return MetaTableName()
}
