// Package v1 provides HTTP handlers for the triage service.
package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Zio20687/mental-health-ai-app/internal/domain"
	"github.com/Zio20687/mental-health-ai-app/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Session lifecycle
	e.POST("/v1/sessions", h.CreateSession)
	e.GET("/v1/sessions/:session_id", h.GetSession)
	e.POST("/v1/sessions/:session_id/reset", h.ResetSession)

	// Assessment and routing
	e.GET("/v1/questionnaire", h.GetQuestionnaire)
	e.POST("/v1/sessions/:session_id/assessment", h.SubmitAssessment)
	e.GET("/v1/sessions/:session_id/route", h.GetRoute)
	e.POST("/v1/sessions/:session_id/music", h.RecommendMusic)

	// Chat
	e.POST("/v1/sessions/:session_id/chat", h.Chat)
	e.GET("/v1/sessions/:session_id/messages", h.GetSessionMessages)

	// Mail
	e.POST("/v1/sessions/:session_id/email", h.EmailResult)
	e.POST("/v1/sessions/:session_id/counselor-email", h.EmailCounselor)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// errorJSON maps session-local errors onto HTTP status codes.
func errorJSON(c echo.Context, err error) error {
	var incomplete *domain.IncompleteInputError
	switch {
	case errors.As(err, &incomplete):
		resp := map[string]interface{}{"error": "請完整填寫所有問題與基本資料後再送出。"}
		if len(incomplete.MissingQuestions) > 0 {
			resp["missing_questions"] = incomplete.MissingQuestions
		}
		if incomplete.MissingDemographics {
			resp["missing_demographics"] = true
		}
		return c.JSON(http.StatusUnprocessableEntity, resp)
	case errors.Is(err, service.ErrSessionNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
	case errors.Is(err, service.ErrNoResult):
		return c.JSON(http.StatusConflict, map[string]string{"error": "請先完成心理健康評估。"})
	case errors.Is(err, service.ErrCrisisRoute):
		return c.JSON(http.StatusConflict, map[string]interface{}{
			"error":     "目前的評估結果需要優先關注，請查看心理資源建議。",
			"resources": domain.CrisisResources,
		})
	case errors.Is(err, service.ErrInvalidRecipient):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "請輸入正確的 Gmail 地址"})
	case errors.Is(err, service.ErrEmptyMessage):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "請輸入您的感受..."})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
