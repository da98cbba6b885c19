package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Zio20687/mental-health-ai-app/internal/domain"
)

// topicConstraint pins the assistant to mental-health support. The deflection
// sentence is fixed copy, not logic.
const topicConstraint = "你只能討論心理健康與情緒支持相關的話題。若使用者提出其他主題的要求（例如理財、娛樂、程式設計等），請禮貌地回覆：「抱歉，我只能陪你聊心理健康與情緒相關的話題，讓我們回到你的感受吧。」"

// autoIntroAdviceRequest is the synthetic user turn that closes the seeded
// exchange.
const autoIntroAdviceRequest = "這是我的評估結果，請根據這些內容，給我一些溫柔的建議。"

// BuildSystemContext assembles the per-call framing for the chat backend.
// It is prepended to the transcript on every completion call and never stored
// as a transcript entry.
func BuildSystemContext(session *domain.Session) string {
	var b strings.Builder
	b.WriteString("你是一位溫暖且專業的心理諮詢輔導員，請以繁體中文回答。\n")

	if session != nil && session.Scored() {
		b.WriteString("以下是這位使用者最近一次心理健康評估的結果：\n")
		b.WriteString(assessmentSummary(session))
		b.WriteString("請根據以上背景，以同理心陪伴使用者。\n")
	} else {
		b.WriteString("使用者尚未完成心理健康評估，請以一般性的情緒支持方式陪伴。\n")
	}

	b.WriteString(topicConstraint)
	return b.String()
}

// assessmentSummary renders demographics, scores and the full answer set.
func assessmentSummary(session *domain.Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "年齡範圍：%s\n", session.Demographics.AgeGroup)
	fmt.Fprintf(&b, "性別：%s\n", session.Demographics.Gender)
	fmt.Fprintf(&b, "總分：%d（滿分20）\n", session.Result.TotalScore)
	fmt.Fprintf(&b, "狀態建議：%s\n", session.Result.Recommendation)
	b.WriteString("填答內容：\n")
	for _, q := range domain.Questions {
		fmt.Fprintf(&b, "- %s：%s\n", q.Text, session.Answers[q.ID])
	}
	return b.String()
}

// buildAutoIntroExchange produces the one-time seeded pair: an assistant
// message restating the assessment and a synthetic user request for advice.
// Callers must gate it on the AutoIntroSent flag and the transcript marker.
func buildAutoIntroExchange(session *domain.Session, now time.Time) []*domain.Message {
	var b strings.Builder
	b.WriteString("我已經看過你剛完成的心理健康評估：\n")
	b.WriteString(assessmentSummary(session))
	b.WriteString("謝謝你願意分享這些，接下來我會陪著你。")

	return []*domain.Message{
		{
			MessageID: uuid.NewString(),
			Role:      domain.RoleAssistant,
			Content:   b.String(),
			AutoIntro: true,
			CreatedAt: now,
		},
		{
			MessageID: uuid.NewString(),
			Role:      domain.RoleUser,
			Content:   autoIntroAdviceRequest,
			AutoIntro: true,
			CreatedAt: now,
		},
	}
}
