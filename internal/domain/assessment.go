package domain

import "time"

// RiskTier is the discrete risk category derived from the questionnaire.
type RiskTier string

const (
	TierNormal      RiskTier = "NORMAL"
	TierMild        RiskTier = "MILD"
	TierModerate    RiskTier = "MODERATE"
	TierSevere      RiskTier = "SEVERE"
	TierSuicideRisk RiskTier = "SUICIDE_RISK"
)

// Shared thresholds. The classifier bands and the escalation policy must not
// drift apart, so both read from these constants.
const (
	// SuicideOverrideScore is the suicide-item weight at and above which the
	// SuicideRisk tier overrides every total-score band.
	SuicideOverrideScore = 2

	// NotifyTotalScore is the total score at and above which a counselor is
	// notified and the crisis route replaces music recommendation.
	NotifyTotalScore = 10

	// Total-score band upper bounds, inclusive.
	NormalMaxScore   = 5
	MildMaxScore     = 9
	ModerateMaxScore = 14
)

// TierRecommendations is the advisory copy shown for each tier.
var TierRecommendations = map[RiskTier]string{
	TierNormal:      "0~5分，一般正常範圍。",
	TierMild:        "6~9分，輕度情緒困擾: 建議找朋友或家人談談，抒發情緒。",
	TierModerate:    "10~14分，中度情緒困擾: 建議尋求紓壓管道或心理專業指導。",
	TierSevere:      "15分以上，重度情緒困擾: 建議諮詢輔導老師或精神科醫師。",
	TierSuicideRisk: "⚠️ 您在自殺想法的評分達到中等程度以上，建議立即尋求精神醫療專業諮詢。",
}

// CrisisResources is the hotline copy shown on the crisis route.
const CrisisResources = `❤️ 緊急心理資源建議
我很抱歉，你現在的情況我無法提供足夠的幫助。請撥打下列專線：

📞 台灣自殺防治中心：0800-788-995
📞 生命線協談專線：1995

請記得：你並不孤單，很多人願意幫助你。`

// AssessmentResult is one completed scoring pass. Immutable once computed;
// a new submission replaces it wholesale.
type AssessmentResult struct {
	ResultID       string    `json:"result_id"`
	TotalScore     int       `json:"total_score"`
	SuicideScore   int       `json:"suicide_score"`
	Tier           RiskTier  `json:"tier"`
	Recommendation string    `json:"recommendation"`
	ComputedAt     time.Time `json:"computed_at"`
}
