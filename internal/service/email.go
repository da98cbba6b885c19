package service

import (
	"context"
	"fmt"
	netmail "net/mail"
	"strings"

	"go.uber.org/zap"

	"github.com/Zio20687/mental-health-ai-app/internal/domain"
)

// EmailResult mails the assessment result to a user-supplied address. The
// recipient is validated before the sink is touched; an invalid address is a
// validation error, not a notification failure.
func (s *Service) EmailResult(ctx context.Context, sessionID, recipient string) error {
	session, err := s.requireScoredSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if !s.validRecipient(recipient) {
		return ErrInvalidRecipient
	}

	subject, body := resultMail(session)
	if err := s.sink.Send(recipient, subject, body); err != nil {
		s.logger.Error("result email failed",
			zap.String("session_id", sessionID), zap.Error(err))
		return fmt.Errorf("failed to send result email: %w", err)
	}
	return nil
}

// EmailCounselor sends the assessment to a counselor address the user opted
// to supply. Same validation as the result email, counselor-style body.
func (s *Service) EmailCounselor(ctx context.Context, sessionID, recipient string) error {
	session, err := s.requireScoredSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if !s.validRecipient(recipient) {
		return ErrInvalidRecipient
	}

	subject, body := counselorAlertMail(session)
	if err := s.sink.Send(recipient, subject, body); err != nil {
		s.logger.Error("counselor email failed",
			zap.String("session_id", sessionID), zap.Error(err))
		return fmt.Errorf("failed to send counselor email: %w", err)
	}
	return nil
}

func (s *Service) requireScoredSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if !session.Scored() {
		return nil, ErrNoResult
	}
	return session, nil
}

// validRecipient accepts a syntactically plausible address on the configured
// webmail domain.
func (s *Service) validRecipient(recipient string) bool {
	addr, err := netmail.ParseAddress(recipient)
	if err != nil {
		return false
	}
	return strings.HasSuffix(addr.Address, "@"+s.cfg.RecipientDomain)
}

// resultMail renders the user-directed result mail.
func resultMail(session *domain.Session) (subject, body string) {
	var b strings.Builder
	b.WriteString("您好，\n\n這是您在心理健康評估系統中的結果：\n\n")
	fmt.Fprintf(&b, "年齡範圍：%s\n", session.Demographics.AgeGroup)
	fmt.Fprintf(&b, "性別：%s\n\n", session.Demographics.Gender)
	b.WriteString("填答內容：\n")
	for _, q := range domain.Questions {
		fmt.Fprintf(&b, "- %s：%s\n", q.Text, session.Answers[q.ID])
	}
	fmt.Fprintf(&b, "\n總分：%d\n結果及建議：%s\n\n", session.Result.TotalScore, session.Result.Recommendation)
	b.WriteString("---\n請記得，這個系統僅供輔助用途。如有急迫需求請聯繫心理專業人士。\n祝您平安。心理輔導 AI 系統 敬上")
	return "心理健康評估結果", b.String()
}

// counselorAlertMail renders the counselor escalation mail.
func counselorAlertMail(session *domain.Session) (subject, body string) {
	var b strings.Builder
	b.WriteString("您好，\n\n系統偵測到一位使用者的心理健康評估達到需要關注的程度：\n\n")
	fmt.Fprintf(&b, "年齡範圍：%s\n", session.Demographics.AgeGroup)
	fmt.Fprintf(&b, "性別：%s\n", session.Demographics.Gender)
	fmt.Fprintf(&b, "總分：%d\n", session.Result.TotalScore)
	fmt.Fprintf(&b, "自殺想法評分：%d\n", session.Result.SuicideScore)
	fmt.Fprintf(&b, "狀態建議：%s\n\n", session.Result.Recommendation)
	b.WriteString("填答內容：\n")
	for _, q := range domain.Questions {
		fmt.Fprintf(&b, "- %s：%s\n", q.Text, session.Answers[q.ID])
	}
	b.WriteString("\n請儘速與這位使用者聯繫。\n心理輔導 AI 系統")
	return "【需要關注】心理健康評估通知", b.String()
}
