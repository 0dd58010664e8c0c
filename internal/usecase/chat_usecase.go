package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/foodpulse/foodpulse/internal/chatbot"
	"github.com/foodpulse/foodpulse/internal/domain/entity"
	"github.com/foodpulse/foodpulse/internal/domain/repository"
	"github.com/foodpulse/foodpulse/internal/metrics"
)

// processTimeout bounds one message including rate-limit waits and the remote call.
const processTimeout = 20 * time.Second

// ChatUseCase chatbot conversations keyed by session id
type ChatUseCase interface {
	ProcessMessage(ctx context.Context, sessionID, text string) (chatbot.Reply, error)
	ResetSession(ctx context.Context, sessionID string) error
	History(ctx context.Context, sessionID string) ([]entity.Exchange, error)
}

type chatUseCase struct {
	faq      *chatbot.FAQ
	client   repository.CompletionClient
	sessions SessionUseCase
	log      repository.ExchangeLog
	opts     chatbot.Options
}

// NewChatUseCase exchangeLog may be nil.
func NewChatUseCase(
	faq *chatbot.FAQ,
	client repository.CompletionClient,
	sessions SessionUseCase,
	exchangeLog repository.ExchangeLog,
	opts chatbot.Options,
) ChatUseCase {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &chatUseCase{
		faq:      faq,
		client:   client,
		sessions: sessions,
		log:      exchangeLog,
		opts:     opts,
	}
}

// ProcessMessage resumes the session's bot, answers text and persists the
// updated conversation.
func (u *chatUseCase) ProcessMessage(ctx context.Context, sessionID, text string) (chatbot.Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, processTimeout)
	defer cancel()

	var reply chatbot.Reply
	_, err := u.sessions.Update(ctx, sessionID, func(sess *entity.Session) error {
		bot := chatbot.New(u.faq, u.client, sess.Chat, u.opts)
		reply = bot.Respond(ctx, text)
		sess.Chat = bot.State()
		return nil
	})
	if err != nil {
		return chatbot.Reply{}, fmt.Errorf("failed to process message: %w", err)
	}

	metrics.ChatResponses.WithLabelValues(reply.State.String()).Inc()
	log.Debug().
		Str("session", sessionID).
		Str("state", reply.State.String()).
		Str("category", reply.Match.Category).
		Float64("confidence", reply.Match.Confidence).
		Msg("chat reply")

	if reply.State != chatbot.StateEmpty {
		u.record(ctx, sessionID, text, reply)
	}
	return reply, nil
}

// record appends the turn to the durable log. Failures only cost the log entry.
func (u *chatUseCase) record(ctx context.Context, sessionID, text string, reply chatbot.Reply) {
	if u.log == nil {
		return
	}

	var ex entity.Exchange
	if reply.Exchange != nil {
		ex = *reply.Exchange
	} else {
		ex = entity.Exchange{
			ID:        uuid.NewString(),
			UserText:  text,
			Assistant: reply.Text,
			Category:  reply.State.String(),
			Timestamp: u.opts.Clock(),
		}
	}
	ex.SessionID = sessionID

	if err := u.log.Save(context.WithoutCancel(ctx), ex); err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("failed to log chat exchange")
	}
}

// ResetSession forgets the conversation but keeps the remote call budget.
func (u *chatUseCase) ResetSession(ctx context.Context, sessionID string) error {
	_, err := u.sessions.Update(ctx, sessionID, func(sess *entity.Session) error {
		sess.Chat.History = nil
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to reset conversation: %w", err)
	}
	if u.log != nil {
		if err := u.log.ClearSession(ctx, sessionID); err != nil {
			return fmt.Errorf("failed to clear exchange log: %w", err)
		}
	}
	return nil
}

// History the logged turns of the session, oldest first. Without a log it
// falls back to the conversation memory.
func (u *chatUseCase) History(ctx context.Context, sessionID string) ([]entity.Exchange, error) {
	if u.log != nil {
		return u.log.ListBySession(ctx, sessionID, 0)
	}
	sess, err := u.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Chat.Clone().History, nil
}
