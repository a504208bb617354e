package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"campus-chatbot-be/internal/apperror"
	"campus-chatbot-be/internal/dto"
	"campus-chatbot-be/internal/pkg/serverutils"
	"campus-chatbot-be/pkg/nlu"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConversationService struct {
	response *dto.SendMessageResponse
	err      error
	info     *dto.SessionInfoResponse
	resets   []string
}

func (s *stubConversationService) SendMessage(ctx context.Context, userId, text string) (*dto.SendMessageResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperror.InvalidInput("message cannot be empty")
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func (s *stubConversationService) ResetConversation(ctx context.Context, userId string) error {
	s.resets = append(s.resets, userId)
	return nil
}

func (s *stubConversationService) SessionStatus(ctx context.Context, userId string) (*dto.SessionInfoResponse, error) {
	if s.info != nil {
		return s.info, nil
	}
	return &dto.SessionInfoResponse{Active: false}, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func newTestApp(svc *stubConversationService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(nopLogger{}))
	api := app.Group("/api")
	NewConversationController(svc).RegisterRoutes(api)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, int(5*time.Second/time.Millisecond))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp.StatusCode, parsed
}

func TestMessageEndpointReturnsEngineReply(t *testing.T) {
	svc := &stubConversationService{
		response: &dto.SendMessageResponse{
			Success:      true,
			Messages:     []nlu.Part{{Type: nlu.PartTypeText, Text: "hi-reply"}},
			Intent:       "greeting",
			Confidence:   0.9,
			SessionToken: "tok-1",
		},
	}
	app := newTestApp(svc)

	status, body := postJSON(t, app, "/api/conversation/message", `{"message":"hi","userId":"user-1"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "greeting", body["intent"])
	assert.Equal(t, "tok-1", body["sessionToken"])

	messages := body["messages"].([]interface{})
	require.Len(t, messages, 1)
	first := messages[0].(map[string]interface{})
	assert.Equal(t, "text", first["type"])
	assert.Equal(t, "hi-reply", first["text"])
}

func TestMessageEndpointRejectsEmptyMessage(t *testing.T) {
	app := newTestApp(&stubConversationService{})

	status, _ := postJSON(t, app, "/api/conversation/message", `{"message":"","userId":"user-1"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = postJSON(t, app, "/api/conversation/message", `{"message":"   ","userId":"user-1"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestMessageEndpointDegradesToFallbackOnUpstreamFailure(t *testing.T) {
	svc := &stubConversationService{
		err:  apperror.Upstream("failed to process message", assert.AnError),
		info: &dto.SessionInfoResponse{Active: true, SessionToken: "tok-live"},
	}
	app := newTestApp(svc)

	status, body := postJSON(t, app, "/api/conversation/message", `{"message":"hello","userId":"user-1"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "fallback", body["intent"])
	assert.Equal(t, "tok-live", body["sessionToken"])

	messages := body["messages"].([]interface{})
	require.Len(t, messages, 1)
	first := messages[0].(map[string]interface{})
	assert.Equal(t, FallbackReply, first["text"])
}

func TestResetEndpointAlwaysSucceeds(t *testing.T) {
	svc := &stubConversationService{}
	app := newTestApp(svc)

	status, body := postJSON(t, app, "/api/conversation/reset", `{"userId":"user-1"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []string{"user-1"}, svc.resets)
}

func TestSessionEndpointReportsInactive(t *testing.T) {
	app := newTestApp(&stubConversationService{})

	req := httptest.NewRequest("GET", "/api/conversation/session?userId=user-1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["active"])
}
