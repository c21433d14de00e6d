package streak

import "time"

// RewardRecord is one unclaimed (pool, user) balance. Claiming deletes the
// row, matching the ledger's zero-on-claim semantics.
type RewardRecord struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	PoolID    uint64    `gorm:"not null;uniqueIndex:idx_reward_pool_user" json:"pool_id"`
	User      string    `gorm:"size:64;not null;uniqueIndex:idx_reward_pool_user" json:"user"`
	Amount    string    `gorm:"size:80;not null" json:"amount"` // wei, decimal string
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func RewardTableName() string {
	return "streak_reward"
}

func (RewardRecord) TableName() string {
	return RewardTableName()
}

type PayoutStatus string

const (
	PayoutStatusPending PayoutStatus = "pending"
	PayoutStatusPaid    PayoutStatus = "paid"
	PayoutStatusFailed  PayoutStatus = "failed"
)

// PayoutRecord journals every claim. When the on-chain treasury is enabled
// the settlement tx hash lands here; without it rows go straight to paid.
type PayoutRecord struct {
	ID        int64        `gorm:"primaryKey" json:"id"`
	PoolID    uint64       `gorm:"not null;index" json:"pool_id"`
	User      string       `gorm:"size:64;not null;index" json:"user"`
	Amount    string       `gorm:"size:80;not null" json:"amount"` // wei, decimal string
	Status    PayoutStatus `gorm:"size:20;default:pending" json:"status"`
	TxHash    string       `gorm:"size:100" json:"tx_hash"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func PayoutTableName() string {
	return "streak_payout"
}

func (PayoutRecord) TableName() string {
	return PayoutTableName()
}
