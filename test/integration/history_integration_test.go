package integration

import (
	"context"
	"log"
	"os"
	"strings"
	"testing"

	"campus-chatbot-be/internal/apperror"
	"campus-chatbot-be/internal/dto"
	"campus-chatbot-be/internal/entity"
	"campus-chatbot-be/internal/model"
	"campus-chatbot-be/internal/repository/unitofwork"
	"campus-chatbot-be/internal/service"
	"campus-chatbot-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHistoryService(t *testing.T) service.IHistoryService {
	t.Helper()

	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&model.UserProfile{}, &model.ChatSession{}, &model.Message{}))

	return service.NewHistoryService(unitofwork.NewRepositoryFactory(gormDB))
}

func testUserId() string {
	return "it-user-" + uuid.NewString()
}

func TestSessionLifecycle(t *testing.T) {
	svc := newHistoryService(t)
	ctx := context.Background()
	u1 := testUserId()
	u2 := testUserId()

	created, err := svc.CreateSession(ctx, u1, "T")
	require.NoError(t, err)
	assert.Equal(t, "T", created.Title)
	assert.True(t, created.IsActive)
	assert.NotEqual(t, uuid.Nil, created.Id)

	t.Run("recent sessions are owner scoped", func(t *testing.T) {
		mine, err := svc.GetRecentSessions(ctx, u1)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, "T", mine[0].Title)

		theirs, err := svc.GetRecentSessions(ctx, u2)
		require.NoError(t, err)
		assert.Empty(t, theirs)
	})

	t.Run("default title", func(t *testing.T) {
		session, err := svc.CreateSession(ctx, u1, "")
		require.NoError(t, err)
		assert.Equal(t, "New Conversation", session.Title)
	})

	t.Run("long titles are truncated", func(t *testing.T) {
		long := strings.Repeat("x", 60)
		session, err := svc.CreateSession(ctx, u1, long)
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("x", 50)+"...", session.Title)
	})

	t.Run("cross-user title update is a no-op", func(t *testing.T) {
		_, err := svc.UpdateSessionTitle(ctx, created.Id, u2, "X")
		assert.True(t, apperror.IsNotOwned(err))

		mine, err := svc.GetRecentSessions(ctx, u1)
		require.NoError(t, err)
		found := findSession(mine, created.Id)
		require.NotNil(t, found)
		assert.Equal(t, "T", found.Title)
	})

	t.Run("owner can rename", func(t *testing.T) {
		updated, err := svc.UpdateSessionTitle(ctx, created.Id, u1, "Renamed")
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
	})
}

func TestMessageRoundTrip(t *testing.T) {
	svc := newHistoryService(t)
	ctx := context.Background()
	u1 := testUserId()
	u2 := testUserId()

	session, err := svc.CreateSession(ctx, u1, "Round trip")
	require.NoError(t, err)

	saved, err := svc.SaveMessage(ctx, &dto.SaveMessageRequest{
		SessionId:   session.Id,
		UserId:      u1,
		MessageText: "hello",
		SenderType:  entity.SenderUser,
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", saved.MessageText)

	intent := "greeting"
	confidence := 0.87
	_, err = svc.SaveMessage(ctx, &dto.SaveMessageRequest{
		SessionId:      session.Id,
		UserId:         u1,
		MessageText:    "hi there",
		SenderType:     entity.SenderBot,
		IntentDetected: &intent,
		Confidence:     &confidence,
	})
	require.NoError(t, err)

	messages, err := svc.GetSessionMessages(ctx, session.Id, u1)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "hello", messages[0].MessageText)
	assert.Equal(t, entity.SenderUser, messages[0].SenderType)
	assert.Equal(t, entity.SenderBot, messages[1].SenderType)
	require.NotNil(t, messages[1].IntentDetected)
	assert.Equal(t, "greeting", *messages[1].IntentDetected)

	t.Run("other users see an empty list", func(t *testing.T) {
		messages, err := svc.GetSessionMessages(ctx, session.Id, u2)
		require.NoError(t, err)
		assert.Empty(t, messages)
	})

	t.Run("saving into a foreign session is refused", func(t *testing.T) {
		_, err := svc.SaveMessage(ctx, &dto.SaveMessageRequest{
			SessionId:   session.Id,
			UserId:      u2,
			MessageText: "sneaky",
			SenderType:  entity.SenderUser,
		})
		assert.True(t, apperror.IsNotOwned(err))
	})

	t.Run("message append bumps recency ordering", func(t *testing.T) {
		_, err := svc.CreateSession(ctx, u1, "Older")
		require.NoError(t, err)

		_, err = svc.SaveMessage(ctx, &dto.SaveMessageRequest{
			SessionId:   session.Id,
			UserId:      u1,
			MessageText: "bump",
			SenderType:  entity.SenderUser,
		})
		require.NoError(t, err)

		recent, err := svc.GetRecentSessions(ctx, u1)
		require.NoError(t, err)
		require.NotEmpty(t, recent)
		assert.Equal(t, session.Id, recent[0].Id)
	})
}

func TestDeleteSessionCascades(t *testing.T) {
	svc := newHistoryService(t)
	ctx := context.Background()
	u1 := testUserId()

	session, err := svc.CreateSession(ctx, u1, "Doomed")
	require.NoError(t, err)

	_, err = svc.SaveMessage(ctx, &dto.SaveMessageRequest{
		SessionId:   session.Id,
		UserId:      u1,
		MessageText: "goodbye",
		SenderType:  entity.SenderUser,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSession(ctx, session.Id, u1))

	messages, err := svc.GetSessionMessages(ctx, session.Id, u1)
	require.NoError(t, err)
	assert.Empty(t, messages)

	err = svc.DeleteSession(ctx, session.Id, u1)
	assert.True(t, apperror.IsNotOwned(err))
}

func TestGetUserProfileAbsenceIsNotAnError(t *testing.T) {
	svc := newHistoryService(t)

	profile, err := svc.GetUserProfile(context.Background(), "no-such-user-"+uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func findSession(sessions []*dto.SessionResponse, id uuid.UUID) *dto.SessionResponse {
	for _, s := range sessions {
		if s.Id == id {
			return s
		}
	}
	return nil
}
