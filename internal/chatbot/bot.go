package chatbot

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/foodpulse/foodpulse/internal/domain/entity"
	"github.com/foodpulse/foodpulse/internal/domain/repository"
)

// State the terminal step Respond reached.
type State int

const (
	StateEmpty State = iota
	StateGreeting
	StateFarewell
	StateOffTopic
	StateFAQ
	StateRemote
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateGreeting:
		return "greeting"
	case StateFarewell:
		return "farewell"
	case StateOffTopic:
		return "off_topic"
	case StateFAQ:
		return "faq"
	case StateRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// Reply what Respond produced. Exchange is set only when the turn was
// recorded in the conversation memory.
type Reply struct {
	Text     string
	State    State
	Match    Match
	Outcome  entity.Outcome
	Exchange *entity.Exchange
}

// Options tunables of a Bot.
type Options struct {
	HistorySize    int
	RateLimitDelay time.Duration
	DailyLimit     int
	Clock          func() time.Time
}

// DefaultOptions 6 exchanges, 1s spacing, 100 remote calls.
func DefaultOptions() Options {
	return Options{
		HistorySize:    DefaultHistorySize,
		RateLimitDelay: DefaultRateLimitDelay,
		DailyLimit:     DefaultDailyLimit,
		Clock:          time.Now,
	}
}

// Bot one conversation. Not safe for concurrent use; callers serialise
// access per session.
type Bot struct {
	faq     *FAQ
	client  repository.CompletionClient
	memory  *Memory
	limits  entity.LimiterState
	limiter *RateLimiter
	now     func() time.Time
}

// New resumes a conversation from state.
func New(faq *FAQ, client repository.CompletionClient, state entity.ChatState, opts Options) *Bot {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	b := &Bot{
		faq:    faq,
		client: client,
		memory: NewMemory(state.History, opts.HistorySize),
		limits: state.Limiter,
		now:    opts.Clock,
	}
	b.limiter = NewRateLimiter(&b.limits, opts.RateLimitDelay, opts.DailyLimit, opts.Clock)
	return b
}

// State snapshot to persist after Respond.
func (b *Bot) State() entity.ChatState {
	return entity.ChatState{History: b.memory.Exchanges(), Limiter: b.limits}
}

// Respond resolves one user message. It always returns a user-presentable
// text; remote failures degrade to fixed messages.
func (b *Bot) Respond(ctx context.Context, input string) Reply {
	text := strings.TrimSpace(input)
	if text == "" {
		return Reply{Text: AskPrompt, State: StateEmpty}
	}

	lower := strings.ToLower(text)
	if isGreeting(lower) {
		return Reply{Text: GreetingReply, State: StateGreeting}
	}
	if isFarewell(lower) {
		return Reply{Text: FarewellMessage, State: StateFarewell}
	}
	if !IsRelated(text) {
		return Reply{Text: OffTopicMessage, State: StateOffTopic}
	}

	var reply Reply
	match := b.faq.Match(text)
	if match.Accepted() {
		answer := match.Answer
		if match.Hedged() {
			answer += ClarifyHint
		}
		reply = Reply{Text: answer, State: StateFAQ, Match: match}
	} else {
		answer, outcome := b.remote(ctx, text)
		reply = Reply{Text: answer, State: StateRemote, Match: match, Outcome: outcome}
	}

	// A fuzzy match too weak to answer still names the topic of a remote turn.
	category := match.Category
	if category == "" {
		category = entity.CategoryAPI
	}
	ex := entity.Exchange{
		ID:        uuid.NewString(),
		UserText:  text,
		Assistant: reply.Text,
		Category:  category,
		Timestamp: b.now(),
	}
	b.memory.Append(ex)
	reply.Exchange = &ex
	return reply
}

func (b *Bot) remote(ctx context.Context, text string) (string, entity.Outcome) {
	if err := b.limiter.Acquire(ctx); err != nil {
		if errors.Is(err, ErrDailyLimitExceeded) {
			return DailyLimitMessage, entity.OutcomeDailyLimit
		}
		log.Warn().Err(err).Msg("rate limiter wait aborted")
		return APIErrorMessage, entity.OutcomeAPIError
	}

	completion := b.client.Complete(ctx, text, b.memory.RenderContext())
	switch completion.Outcome {
	case entity.OutcomeSuccess:
		return completion.Text, entity.OutcomeSuccess
	case entity.OutcomeRateLimited:
		return RateLimitMessage, entity.OutcomeRateLimited
	default:
		return APIErrorMessage, entity.OutcomeAPIError
	}
}
