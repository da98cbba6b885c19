package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Zio20687/mental-health-ai-app/internal/domain"
)

func TestClassifyBands(t *testing.T) {
	cases := []struct {
		name    string
		total   int
		suicide int
		want    domain.RiskTier
	}{
		{"zero", 0, 0, domain.TierNormal},
		{"normal upper bound", 5, 0, domain.TierNormal},
		{"mild lower bound", 6, 0, domain.TierMild},
		{"mild upper bound", 9, 1, domain.TierMild},
		{"moderate lower bound", 10, 0, domain.TierModerate},
		{"moderate upper bound", 14, 1, domain.TierModerate},
		{"severe", 15, 1, domain.TierSevere},
		{"severe max", 20, 1, domain.TierSevere},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tier, text := Classify(tc.total, tc.suicide)
			assert.Equal(t, tc.want, tier)
			assert.Equal(t, domain.TierRecommendations[tc.want], text)
		})
	}
}

// The suicide override wins over every band, even a minimal total.
func TestClassifySuicideOverride(t *testing.T) {
	for total := 0; total <= 20; total++ {
		for suicide := 2; suicide <= 4; suicide++ {
			tier, _ := Classify(total, suicide)
			if tier != domain.TierSuicideRisk {
				t.Fatalf("expected override at total=%d suicide=%d, got %s", total, suicide, tier)
			}
		}
	}
}

func TestClassifyDeterministic(t *testing.T) {
	tier1, text1 := Classify(13, 1)
	tier2, text2 := Classify(13, 1)
	assert.Equal(t, tier1, tier2)
	assert.Equal(t, text1, text2)
}
