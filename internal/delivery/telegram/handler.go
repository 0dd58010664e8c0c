// Package telegram exposes the chatbot in Telegram chats. Every chat is its
// own session, keyed "telegram:<chat id>".
package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/foodpulse/foodpulse/internal/chatbot"
	"github.com/foodpulse/foodpulse/internal/usecase"
)

const helpMessage = `Ask me anything about Food Pulse: registration, listing surplus food, pickups, food safety or our impact.

/reset - start a new conversation
/history - show this conversation
/help - this message`

// sender the part of tgbotapi.BotAPI the handler needs.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type BotHandler struct {
	bot         *tgbotapi.BotAPI
	out         sender
	chatUseCase usecase.ChatUseCase
}

// NewBotHandler logs in with token.
func NewBotHandler(token string, chatUseCase usecase.ChatUseCase) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &BotHandler{bot: bot, out: bot, chatUseCase: chatUseCase}, nil
}

// Start long-polls for updates until ctx is cancelled.
func (h *BotHandler) Start(ctx context.Context) error {
	log.Info().Str("bot", h.bot.Self.UserName).Msg("telegram bot started")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("telegram bot stopping")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			go h.handleMessage(ctx, update.Message)
		}
	}
}

func sessionKey(chatID int64) string {
	return fmt.Sprintf("telegram:%d", chatID)
}

func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.Chat == nil {
		return
	}
	if message.IsCommand() {
		h.handleCommand(ctx, message)
		return
	}
	if strings.TrimSpace(message.Text) == "" {
		return
	}
	h.handleTextMessage(ctx, message.Chat.ID, message.Text)
}

func (h *BotHandler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	switch message.Command() {
	case "start":
		// through the bot so the greeting turn is logged like any other
		h.handleTextMessage(ctx, chatID, "hello")
	case "help":
		h.sendMessage(chatID, helpMessage)
	case "reset", "clear":
		if err := h.chatUseCase.ResetSession(ctx, sessionKey(chatID)); err != nil {
			log.Error().Err(err).Int64("chat", chatID).Msg("failed to reset conversation")
			h.sendMessage(chatID, chatbot.APIErrorMessage)
			return
		}
		h.sendMessage(chatID, "Conversation cleared. "+chatbot.FollowUpPrompt)
	case "history":
		h.handleHistoryCommand(ctx, chatID)
	default:
		h.sendMessage(chatID, "Unknown command. Try /help.")
	}
}

func (h *BotHandler) handleTextMessage(ctx context.Context, chatID int64, text string) {
	if _, err := h.out.Send(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		log.Debug().Err(err).Int64("chat", chatID).Msg("typing action failed")
	}

	reply, err := h.chatUseCase.ProcessMessage(ctx, sessionKey(chatID), text)
	if err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("failed to process message")
		h.sendMessage(chatID, chatbot.APIErrorMessage)
		return
	}
	h.sendMessage(chatID, reply.Text)
}

func (h *BotHandler) handleHistoryCommand(ctx context.Context, chatID int64) {
	history, err := h.chatUseCase.History(ctx, sessionKey(chatID))
	if err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("failed to load history")
		h.sendMessage(chatID, chatbot.APIErrorMessage)
		return
	}
	if len(history) == 0 {
		h.sendMessage(chatID, "No conversation yet. "+chatbot.AskPrompt)
		return
	}

	var sb strings.Builder
	for i, ex := range history {
		fmt.Fprintf(&sb, "%d. %s\n-> %s\n\n", i+1, ex.UserText, ex.Assistant)
	}
	h.sendMessage(chatID, strings.TrimSpace(sb.String()))
}

func (h *BotHandler) sendMessage(chatID int64, text string) {
	if _, err := h.out.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("failed to send message")
	}
}
