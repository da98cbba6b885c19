package service

import "github.com/Zio20687/mental-health-ai-app/internal/domain"

// Classify maps scores to a risk tier and its advisory copy. First match
// wins: the suicide override beats every total-score band. Pure and total
// over total ∈ [0,20], suicide ∈ [0,4].
func Classify(total, suicide int) (domain.RiskTier, string) {
	var tier domain.RiskTier
	switch {
	case suicide >= domain.SuicideOverrideScore:
		tier = domain.TierSuicideRisk
	case total <= domain.NormalMaxScore:
		tier = domain.TierNormal
	case total <= domain.MildMaxScore:
		tier = domain.TierMild
	case total <= domain.ModerateMaxScore:
		tier = domain.TierModerate
	default:
		tier = domain.TierSevere
	}
	return tier, domain.TierRecommendations[tier]
}
