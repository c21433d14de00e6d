package service

import "testing"

func TestBadgesFor(t *testing.T) {
	cases := []struct {
		longest uint64
		earned  []string
	}{
		{0, nil},
		{1, []string{"First Flame"}},
		{6, []string{"First Flame"}},
		{7, []string{"First Flame", "Week Warrior"}},
		{30, []string{"First Flame", "Week Warrior", "Monthly Master"}},
		{100, []string{"First Flame", "Week Warrior", "Monthly Master", "Century Club"}},
		{365, []string{"First Flame", "Week Warrior", "Monthly Master", "Century Club", "Iron Will"}},
		{1000, []string{"First Flame", "Week Warrior", "Monthly Master", "Century Club", "Iron Will"}},
	}
	for _, tc := range cases {
		badges := BadgesFor(tc.longest)
		if len(badges) != 5 {
			t.Fatalf("BadgesFor(%d) returned %d tiers, want 5", tc.longest, len(badges))
		}
		var earned []string
		for _, b := range badges {
			if b.Earned {
				earned = append(earned, b.Name)
			}
		}
		if len(earned) != len(tc.earned) {
			t.Errorf("BadgesFor(%d) earned %v, want %v", tc.longest, earned, tc.earned)
			continue
		}
		for i := range earned {
			if earned[i] != tc.earned[i] {
				t.Errorf("BadgesFor(%d) earned %v, want %v", tc.longest, earned, tc.earned)
				break
			}
		}
	}
}

func TestBadgeTiersAscending(t *testing.T) {
	for i := 1; i < len(badgeTiers); i++ {
		if badgeTiers[i].Threshold <= badgeTiers[i-1].Threshold {
			t.Fatalf("tier %d threshold %d not above previous %d",
				i, badgeTiers[i].Threshold, badgeTiers[i-1].Threshold)
		}
	}
}
