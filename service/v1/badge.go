package service

import (
	"context"

	"github.com/streakbeast/beastcore/service/svc"
	types "github.com/streakbeast/beastcore/types/v1"
)

// Badge tiers keyed by longest streak ever reached, in ascending order.
var badgeTiers = []types.Badge{
	{Threshold: 1, Name: "First Flame"},
	{Threshold: 7, Name: "Week Warrior"},
	{Threshold: 30, Name: "Monthly Master"},
	{Threshold: 100, Name: "Century Club"},
	{Threshold: 365, Name: "Iron Will"},
}

// BadgesFor evaluates the tier table against a longest streak.
func BadgesFor(longest uint64) []types.Badge {
	out := make([]types.Badge, len(badgeTiers))
	for i, b := range badgeTiers {
		b.Earned = longest >= b.Threshold
		out[i] = b
	}
	return out
}

// GetUserBadges derives badges from the user's best streak across all of
// their habits. Badges survive streak breaks: LongestStreak never drops.
func GetUserBadges(ctx context.Context, s *svc.ServerCtx, user string) (*types.BadgesResp, error) {
	addr, err := svc.ParseAddress(user)
	if err != nil {
		return nil, err
	}
	var longest uint64
	for _, id := range s.Ledger.UserHabits(addr) {
		if h, herr := s.Ledger.Habit(id); herr == nil && h.LongestStreak > longest {
			longest = h.LongestStreak
		}
	}
	return &types.BadgesResp{
		User:          addr.Hex(),
		LongestStreak: longest,
		Badges:        BadgesFor(longest),
	}, nil
}
