package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodpulse/foodpulse/internal/chatbot"
	"github.com/foodpulse/foodpulse/internal/domain/entity"
	"github.com/foodpulse/foodpulse/internal/infrastructure/storage"
)

type chatFixture struct {
	uc       ChatUseCase
	sessions SessionUseCase
	client   *stubCompletion
}

func newChatFixture(t *testing.T, dailyLimit int) chatFixture {
	t.Helper()
	client := &stubCompletion{reply: entity.Completion{Outcome: entity.OutcomeSuccess, Text: "remote answer"}}
	sessions := NewSessionUseCase(memorySessions(t))
	opts := chatbot.DefaultOptions()
	opts.RateLimitDelay = time.Millisecond
	opts.DailyLimit = dailyLimit

	uc := NewChatUseCase(chatbot.DefaultFAQ(), client, sessions, storage.NewSQLiteExchangeLog(openDB(t), 0), opts)
	return chatFixture{uc: uc, sessions: sessions, client: client}
}

func TestProcessMessageFAQ(t *testing.T) {
	ctx := context.Background()
	f := newChatFixture(t, 10)

	reply, err := f.uc.ProcessMessage(ctx, "s1", "What is Food Pulse?")
	require.NoError(t, err)
	assert.Equal(t, chatbot.StateFAQ, reply.State)
	assert.Contains(t, reply.Text, "Food Pulse")

	sess, err := f.sessions.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, sess.Chat.History, 1)
	assert.Equal(t, "What is Food Pulse?", sess.Chat.History[0].UserText)

	history, err := f.uc.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "s1", history[0].SessionID)
	assert.Equal(t, reply.Exchange.Category, history[0].Category)
	assert.Zero(t, f.client.Calls())
}

func TestProcessMessageLogsGreetingsButNotEmptyInput(t *testing.T) {
	ctx := context.Background()
	f := newChatFixture(t, 10)

	reply, err := f.uc.ProcessMessage(ctx, "s1", "   ")
	require.NoError(t, err)
	assert.Equal(t, chatbot.StateEmpty, reply.State)
	assert.Equal(t, chatbot.AskPrompt, reply.Text)

	reply, err = f.uc.ProcessMessage(ctx, "s1", "hello there")
	require.NoError(t, err)
	assert.Equal(t, chatbot.GreetingReply, reply.Text)

	history, err := f.uc.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "greeting", history[0].Category)
	assert.Equal(t, chatbot.GreetingReply, history[0].Assistant)

	sess, err := f.sessions.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, sess.Chat.History)
}

func TestProcessMessageDailyLimitPersistsPerSession(t *testing.T) {
	ctx := context.Background()
	f := newChatFixture(t, 1)

	reply, err := f.uc.ProcessMessage(ctx, "s1", remoteQuery)
	require.NoError(t, err)
	assert.Equal(t, "remote answer", reply.Text)

	reply, err = f.uc.ProcessMessage(ctx, "s1", remoteQuery)
	require.NoError(t, err)
	assert.Equal(t, chatbot.DailyLimitMessage, reply.Text)

	reply, err = f.uc.ProcessMessage(ctx, "s2", remoteQuery)
	require.NoError(t, err)
	assert.Equal(t, "remote answer", reply.Text)
	assert.Equal(t, 2, f.client.Calls())
}

func TestResetSessionKeepsBudget(t *testing.T) {
	ctx := context.Background()
	f := newChatFixture(t, 1)

	_, err := f.uc.ProcessMessage(ctx, "s1", remoteQuery)
	require.NoError(t, err)
	require.NoError(t, f.uc.ResetSession(ctx, "s1"))

	history, err := f.uc.History(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, history)

	sess, err := f.sessions.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, sess.Chat.History)
	assert.Equal(t, 1, sess.Chat.Limiter.Count)

	reply, err := f.uc.ProcessMessage(ctx, "s1", remoteQuery)
	require.NoError(t, err)
	assert.Equal(t, chatbot.DailyLimitMessage, reply.Text)
}

func TestProcessMessageConcurrentSameSession(t *testing.T) {
	ctx := context.Background()
	f := newChatFixture(t, 10)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.ProcessMessage(ctx, "shared", "what is food pulse")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	sess, err := f.sessions.Get(ctx, "shared")
	require.NoError(t, err)
	assert.Len(t, sess.Chat.History, chatbot.DefaultHistorySize)

	history, err := f.uc.History(ctx, "shared")
	require.NoError(t, err)
	assert.Len(t, history, 10)
}

func TestHistoryWithoutLogFallsBackToMemory(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessionUseCase(memorySessions(t))
	uc := NewChatUseCase(chatbot.DefaultFAQ(), &stubCompletion{}, sessions, nil, chatbot.DefaultOptions())

	_, err := uc.ProcessMessage(ctx, "s1", "what is food pulse")
	require.NoError(t, err)

	history, err := uc.History(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
