package telegram

import (
	"context"
	"errors"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodpulse/foodpulse/internal/chatbot"
	"github.com/foodpulse/foodpulse/internal/domain/entity"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []tgbotapi.MessageConfig
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.sent))
	for i, m := range f.sent {
		out[i] = m.Text
	}
	return out
}

type fakeChat struct {
	sessions []string
	messages []string
	reset    []string
	history  []entity.Exchange
	err      error
}

func (f *fakeChat) ProcessMessage(_ context.Context, sessionID, text string) (chatbot.Reply, error) {
	f.sessions = append(f.sessions, sessionID)
	f.messages = append(f.messages, text)
	return chatbot.Reply{Text: "echo: " + text, State: chatbot.StateRemote}, f.err
}

func (f *fakeChat) ResetSession(_ context.Context, sessionID string) error {
	f.reset = append(f.reset, sessionID)
	return f.err
}

func (f *fakeChat) History(context.Context, string) ([]entity.Exchange, error) {
	return f.history, f.err
}

func command(chatID int64, cmd string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: chatID},
		Text:     cmd,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
	}
}

func text(chatID int64, body string) *tgbotapi.Message {
	return &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}, Text: body}
}

func newHandler(chat *fakeChat) (*BotHandler, *fakeSender) {
	out := &fakeSender{}
	return &BotHandler{out: out, chatUseCase: chat}, out
}

func TestTextMessageUsesChatSession(t *testing.T) {
	chat := &fakeChat{}
	h, out := newHandler(chat)

	h.handleMessage(context.Background(), text(42, "how do I donate food?"))
	h.handleMessage(context.Background(), text(42, "   "))

	assert.Equal(t, []string{"telegram:42"}, chat.sessions)
	assert.Equal(t, []string{"echo: how do I donate food?"}, out.texts())
}

func TestCommands(t *testing.T) {
	chat := &fakeChat{history: []entity.Exchange{{UserText: "what is food pulse", Assistant: "A platform."}}}
	h, out := newHandler(chat)
	ctx := context.Background()

	h.handleMessage(ctx, command(7, "/start"))
	h.handleMessage(ctx, command(7, "/reset"))
	h.handleMessage(ctx, command(7, "/history"))
	h.handleMessage(ctx, command(7, "/nope"))

	texts := out.texts()
	require.Len(t, texts, 4)
	assert.Equal(t, "echo: hello", texts[0])
	assert.Equal(t, []string{"hello"}, chat.messages)
	assert.Equal(t, []string{"telegram:7"}, chat.sessions)
	assert.Contains(t, texts[1], "Conversation cleared")
	assert.Equal(t, "1. what is food pulse\n-> A platform.", texts[2])
	assert.Contains(t, texts[3], "/help")
	assert.Equal(t, []string{"telegram:7"}, chat.reset)
}

func TestFailuresAreNotLeaked(t *testing.T) {
	chat := &fakeChat{err: errors.New("database is locked")}
	h, out := newHandler(chat)

	h.handleMessage(context.Background(), text(1, "food?"))
	h.handleMessage(context.Background(), command(1, "/history"))

	for _, msg := range out.texts() {
		assert.Equal(t, chatbot.APIErrorMessage, msg)
	}
}
