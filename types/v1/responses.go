package types

type StakeResp struct {
	HabitID uint64 `json:"habit_id"`
	PoolID  uint64 `json:"pool_id"`
}

type CheckInResp struct {
	HabitID       uint64 `json:"habit_id"`
	CurrentStreak uint64 `json:"current_streak"`
	LongestStreak uint64 `json:"longest_streak"`
	Active        bool   `json:"active"`
}

type HabitResp struct {
	HabitID       uint64 `json:"habit_id"`
	Owner         string `json:"owner"`
	HabitType     uint8  `json:"habit_type"`
	HabitTypeName string `json:"habit_type_name"`
	StakeAmount   string `json:"stake_amount"` // BNB
	StakeWei      string `json:"stake_wei"`
	StartTime     int64  `json:"start_time"`
	DurationDays  uint64 `json:"duration_days"`
	LastCheckIn   int64  `json:"last_check_in"`
	CurrentStreak uint64 `json:"current_streak"`
	LongestStreak uint64 `json:"longest_streak"`
	Active        bool   `json:"active"`
	Claimed       bool   `json:"claimed"`
	PoolID        uint64 `json:"pool_id"`
}

type PoolResp struct {
	PoolID                 uint64 `json:"pool_id"`
	HabitType              uint8  `json:"habit_type"`
	HabitTypeName          string `json:"habit_type_name"`
	StartTime              int64  `json:"start_time"`
	EndTime                int64  `json:"end_time"`
	DurationDays           uint64 `json:"duration_days"`
	TotalStaked            string `json:"total_staked"` // BNB
	TotalStakedWei         string `json:"total_staked_wei"`
	TotalSuccessfulStreaks uint64 `json:"total_successful_streaks"`
	Participants           int    `json:"participants"`
	Distributed            bool   `json:"distributed"`
	ResidualWei            string `json:"residual_wei,omitempty"`
}

type DistributeResp struct {
	PoolID      uint64 `json:"pool_id"`
	ResidualWei string `json:"residual_wei"`
}

type ClaimResp struct {
	PoolID    uint64 `json:"pool_id"`
	Amount    string `json:"amount"` // BNB
	AmountWei string `json:"amount_wei"`
	TxHash    string `json:"tx_hash,omitempty"`
}

type RewardBalanceResp struct {
	PoolID    uint64 `json:"pool_id"`
	User      string `json:"user"`
	Amount    string `json:"amount"` // BNB
	AmountWei string `json:"amount_wei"`
}

type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	User   string `json:"user"`
	Streak uint64 `json:"streak"`
}

type LeaderboardResp struct {
	PoolID  uint64             `json:"pool_id"`
	Entries []LeaderboardEntry `json:"entries"`
}

type UserHabitsResp struct {
	Owner  string      `json:"owner"`
	Habits []HabitResp `json:"habits"`
}

type Badge struct {
	Threshold uint64 `json:"threshold"`
	Name      string `json:"name"`
	Earned    bool   `json:"earned"`
}

type BadgesResp struct {
	User          string  `json:"user"`
	LongestStreak uint64  `json:"longest_streak"`
	Badges        []Badge `json:"badges"`
}

type SetAgentResp struct {
	Agent string `json:"agent"`
}
