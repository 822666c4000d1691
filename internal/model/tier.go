package model

import "time"

const (
	TierBronzeThreshold = 100
	TierSilverThreshold = 500
	TierGoldThreshold   = 1000
)

// TierForCredits maps a cumulative credit total to a service-leader tier,
// or nil below the bronze threshold.
func TierForCredits(credits int) *LeaderTier {
	var tier LeaderTier
	switch {
	case credits >= TierGoldThreshold:
		tier = TierGold
	case credits >= TierSilverThreshold:
		tier = TierSilver
	case credits >= TierBronzeThreshold:
		tier = TierBronze
	default:
		return nil
	}
	return &tier
}

// ApplyVerified folds one verified act into the stats row: credit and
// count increments, streak bookkeeping keyed on act date, and the tier
// projection recomputed from the new total.
func (s *UserStats) ApplyVerified(credits int, actDate time.Time) {
	s.TotalCredits += credits
	s.TotalActsVerified++

	day := actDate.Truncate(24 * time.Hour)
	switch {
	case s.LastVerifiedDate == nil:
		s.CurrentStreak = 1
	case day.Equal(s.LastVerifiedDate.Truncate(24 * time.Hour)):
		// Second verified act on the same day leaves the streak alone.
	case day.Sub(s.LastVerifiedDate.Truncate(24*time.Hour)) == 24*time.Hour:
		s.CurrentStreak++
	default:
		s.CurrentStreak = 1
	}
	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
	s.LastVerifiedDate = &day

	s.ServiceLeaderTier = TierForCredits(s.TotalCredits)
	s.ServiceLeader = s.ServiceLeaderTier != nil
}
