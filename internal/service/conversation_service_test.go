package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"campus-chatbot-be/internal/apperror"
	"campus-chatbot-be/internal/repository/memory"
	"campus-chatbot-be/pkg/nlu"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	result   *nlu.Result
	err      error
	lastText string
	lastSess string
	calls    int
}

func (s *stubProvider) DetectIntent(ctx context.Context, text, sessionId string) (*nlu.Result, error) {
	s.calls++
	s.lastText = text
	s.lastSess = sessionId
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func newTestConversationService(provider nlu.Provider) IConversationService {
	registry := memory.NewSessionRegistry(time.Hour)
	return NewConversationService(registry, provider, 5*time.Second, nopLogger{})
}

func TestSendMessageRejectsEmptyInput(t *testing.T) {
	provider := &stubProvider{}
	svc := newTestConversationService(provider)

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := svc.SendMessage(context.Background(), "user-1", text)
		assert.True(t, apperror.IsInvalidInput(err), "expected invalid input for %q", text)
	}
	assert.Equal(t, 0, provider.calls)
}

func TestSendMessageNormalizesSingleTextFragment(t *testing.T) {
	provider := &stubProvider{
		result: &nlu.Result{
			Parts:       []nlu.Part{{Type: nlu.PartTypeText, Text: "hi-reply"}},
			Intent:      "greeting",
			Confidence:  0.92,
			CurrentPage: "Start",
		},
	}
	svc := newTestConversationService(provider)

	res, err := svc.SendMessage(context.Background(), "user-1", "hi")
	require.NoError(t, err)

	require.Len(t, res.Messages, 1)
	assert.Equal(t, nlu.PartTypeText, res.Messages[0].Type)
	assert.Equal(t, "hi-reply", res.Messages[0].Text)
	assert.Equal(t, "greeting", res.Intent)
	assert.InDelta(t, 0.92, res.Confidence, 1e-9)
	assert.NotEmpty(t, res.SessionToken)
	assert.Equal(t, "hi", provider.lastText)
}

func TestSendMessageTrimsInput(t *testing.T) {
	provider := &stubProvider{result: &nlu.Result{}}
	svc := newTestConversationService(provider)

	_, err := svc.SendMessage(context.Background(), "user-1", "  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "hello", provider.lastText)
}

func TestSendMessageReusesSessionToken(t *testing.T) {
	provider := &stubProvider{result: &nlu.Result{}}
	svc := newTestConversationService(provider)

	first, err := svc.SendMessage(context.Background(), "user-1", "one")
	require.NoError(t, err)
	second, err := svc.SendMessage(context.Background(), "user-1", "two")
	require.NoError(t, err)

	assert.Equal(t, first.SessionToken, second.SessionToken)
	assert.Equal(t, first.SessionToken, provider.lastSess)
}

func TestResetMintsNewTokenOnNextSend(t *testing.T) {
	provider := &stubProvider{result: &nlu.Result{}}
	svc := newTestConversationService(provider)

	before, err := svc.SendMessage(context.Background(), "user-1", "one")
	require.NoError(t, err)

	require.NoError(t, svc.ResetConversation(context.Background(), "user-1"))

	after, err := svc.SendMessage(context.Background(), "user-1", "two")
	require.NoError(t, err)
	assert.NotEqual(t, before.SessionToken, after.SessionToken)
}

func TestSendMessageWrapsProviderFailure(t *testing.T) {
	provider := &stubProvider{err: errors.New("rpc: connection refused")}
	svc := newTestConversationService(provider)

	_, err := svc.SendMessage(context.Background(), "user-1", "hello")
	assert.True(t, apperror.IsUpstream(err))
}

func TestSessionStatus(t *testing.T) {
	provider := &stubProvider{result: &nlu.Result{}}
	svc := newTestConversationService(provider)

	info, err := svc.SessionStatus(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, info.Active)

	res, err := svc.SendMessage(context.Background(), "user-1", "hello")
	require.NoError(t, err)

	info, err = svc.SessionStatus(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, info.Active)
	assert.Equal(t, res.SessionToken, info.SessionToken)
	require.NotNil(t, info.CreatedAt)
}
