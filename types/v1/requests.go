package types

type StakeReq struct {
	Caller       string `json:"caller" binding:"required,hexaddr"`
	HabitType    uint8  `json:"habit_type" binding:"lte=5"`
	DurationDays uint64 `json:"duration_days" binding:"required"`
	Amount       string `json:"amount" binding:"required"` // BNB, decimal string
}

type CheckInReq struct {
	Agent string `json:"agent" binding:"required,hexaddr"`
	Proof string `json:"proof"` // hex encoded, optional
}

type DistributeReq struct {
	Agent string `json:"agent" binding:"required,hexaddr"`
}

type ClaimReq struct {
	Caller string `json:"caller" binding:"required,hexaddr"`
}

type SetAgentReq struct {
	Caller   string `json:"caller" binding:"required,hexaddr"`
	NewAgent string `json:"new_agent" binding:"required,hexaddr"`
}
