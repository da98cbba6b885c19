package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Zio20687/mental-health-ai-app/internal/domain"
	"github.com/Zio20687/mental-health-ai-app/internal/service"
)

// Chat runs one chat turn, streaming the reply as SSE delta events and
// closing with a done event carrying the turn's transcript rows. Input and
// session validation happen before the stream is committed, so those failures
// come back as plain JSON status codes.
// POST /v1/sessions/:session_id/chat
func (h *Handler) Chat(c echo.Context) error {
	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Content) == "" {
		return errorJSON(c, service.ErrEmptyMessage)
	}

	ctx := c.Request().Context()
	sessionID := c.Param("session_id")
	if _, err := h.service.GetSession(ctx, sessionID); err != nil {
		return errorJSON(c, err)
	}

	c.Response().Header().Set("Content-Type", "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")
	c.Response().WriteHeader(http.StatusOK)

	flusher, _ := c.Response().Writer.(http.Flusher)

	turn, err := h.service.SendChatMessage(ctx, sessionID, req.Content, func(text string) error {
		if err := writeSSE(c, domain.ChatEventDelta, domain.DeltaEventData{Text: text}); err != nil {
			return err
		}
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	})
	if err != nil {
		// Headers are already out; surface the failure as an SSE error event.
		writeErr := writeSSE(c, domain.ChatEventError, domain.ErrorEventData{
			Code:    "chat_failed",
			Message: err.Error(),
		})
		if flusher != nil {
			flusher.Flush()
		}
		return writeErr
	}

	if err := writeSSE(c, domain.ChatEventDone, domain.DoneEventData{Messages: turn}); err != nil {
		return err
	}
	if flusher != nil {
		flusher.Flush()
	}
	return nil
}

// GetSessionMessages retrieves the transcript.
// GET /v1/sessions/:session_id/messages
func (h *Handler) GetSessionMessages(c echo.Context) error {
	limit := 0
	if l := c.QueryParam("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil {
			limit = val
		}
	}

	messages, err := h.service.GetTranscript(c.Request().Context(), c.Param("session_id"), limit)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"messages": messages,
	})
}

func writeSSE(c echo.Context, event string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.Response().Writer, "event: %s\ndata: %s\n\n", event, payload)
	return err
}
