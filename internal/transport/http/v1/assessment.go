package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Zio20687/mental-health-ai-app/internal/domain"
)

// GetQuestionnaire returns the fixed screen: questions, options and
// demographic choices.
// GET /v1/questionnaire
func (h *Handler) GetQuestionnaire(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"questions":  domain.Questions,
		"options":    append([]string{domain.AnswerSentinel}, domain.SeverityLabels...),
		"age_groups": domain.AgeGroups,
		"genders":    domain.Genders,
	})
}

// SubmitAssessment scores a submission.
// POST /v1/sessions/:session_id/assessment
func (h *Handler) SubmitAssessment(c echo.Context) error {
	var req domain.SubmitAssessmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	resp, err := h.service.SubmitAssessment(c.Request().Context(), c.Param("session_id"), &req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetRoute returns the support path for the current result.
// GET /v1/sessions/:session_id/route
func (h *Handler) GetRoute(c echo.Context) error {
	resp, err := h.service.Route(c.Request().Context(), c.Param("session_id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// RecommendMusic returns song recommendations for the non-crisis route.
// POST /v1/sessions/:session_id/music
func (h *Handler) RecommendMusic(c echo.Context) error {
	resp, err := h.service.RecommendMusic(c.Request().Context(), c.Param("session_id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// EmailResult mails the result to a user-supplied address.
// POST /v1/sessions/:session_id/email
func (h *Handler) EmailResult(c echo.Context) error {
	var req domain.EmailRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := h.service.EmailResult(c.Request().Context(), c.Param("session_id"), req.Recipient); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "✅ 結果已寄出！請到您的 Gmail 查收。"})
}

// EmailCounselor mails the result to a counselor the user chose.
// POST /v1/sessions/:session_id/counselor-email
func (h *Handler) EmailCounselor(c echo.Context) error {
	var req domain.EmailRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := h.service.EmailCounselor(c.Request().Context(), c.Param("session_id"), req.Recipient); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "已通知輔導老師。"})
}
