package chatbot

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodpulse/foodpulse/internal/domain/entity"
)

// remoteQuery is related to the platform but matches no FAQ entry.
const remoteQuery = "food qqqq zzzz wwww"

type stubClient struct {
	completion entity.Completion
	calls      []stubCall
}

type stubCall struct{ query, history string }

func (s *stubClient) Complete(_ context.Context, query, history string) entity.Completion {
	s.calls = append(s.calls, stubCall{query, history})
	return s.completion
}

func newTestBot(client *stubClient, state entity.ChatState) *Bot {
	opts := DefaultOptions()
	opts.RateLimitDelay = 0
	return New(DefaultFAQ(), client, state, opts)
}

func TestRespondExactFAQ(t *testing.T) {
	client := &stubClient{}
	bot := newTestBot(client, entity.ChatState{})

	reply := bot.Respond(context.Background(), "what is food pulse")
	assert.Equal(t, StateFAQ, reply.State)
	assert.Equal(t, MatchExact, reply.Match.Kind)
	assert.Equal(t, "platform_overview", reply.Match.Category)
	assert.Equal(t, 1.0, reply.Match.Confidence)
	assert.Equal(t, reply.Match.Answer, reply.Text)
	require.NotNil(t, reply.Exchange)
	assert.Equal(t, "platform_overview", reply.Exchange.Category)
	assert.Empty(t, client.calls)
	assert.Len(t, bot.State().History, 1)
}

func TestRespondHedgedFuzzyAnswer(t *testing.T) {
	faq, err := ParseFAQ([]byte(`
- category: letters
  entries: [{question: food abcdef, answer: letters}]
`))
	require.NoError(t, err)
	bot := New(faq, &stubClient{}, entity.ChatState{}, DefaultOptions())

	reply := bot.Respond(context.Background(), "food abcdxy")
	require.Equal(t, StateFAQ, reply.State)
	assert.Equal(t, MatchFuzzy, reply.Match.Kind)
	assert.Equal(t, "letters"+ClarifyHint, reply.Text)
}

func TestRespondGreeting(t *testing.T) {
	bot := newTestBot(&stubClient{}, entity.ChatState{})

	reply := bot.Respond(context.Background(), "hello")
	assert.Equal(t, StateGreeting, reply.State)
	assert.Equal(t, WelcomeMessage+" "+FollowUpPrompt, reply.Text)
	assert.Nil(t, reply.Exchange)

	reply = bot.Respond(context.Background(), "Hi, how do I donate food?")
	assert.Equal(t, StateGreeting, reply.State)
	assert.Empty(t, bot.State().History)
}

func TestRespondFarewell(t *testing.T) {
	bot := newTestBot(&stubClient{}, entity.ChatState{})

	reply := bot.Respond(context.Background(), "bye")
	assert.Equal(t, StateFarewell, reply.State)
	assert.Equal(t, FarewellMessage, reply.Text)

	reply = bot.Respond(context.Background(), " GOODBYE ")
	assert.Equal(t, FarewellMessage, reply.Text)

	// farewells must match exactly
	reply = bot.Respond(context.Background(), "bye now")
	assert.Equal(t, StateOffTopic, reply.State)
}

func TestRespondOffTopic(t *testing.T) {
	client := &stubClient{}
	bot := newTestBot(client, entity.ChatState{})

	reply := bot.Respond(context.Background(), "tell me a joke")
	assert.Equal(t, StateOffTopic, reply.State)
	assert.Equal(t, OffTopicMessage, reply.Text)
	assert.Empty(t, client.calls)
	assert.Empty(t, bot.State().History)
}

func TestRespondRemoteKeepsWeakMatchCategory(t *testing.T) {
	faq, err := ParseFAQ([]byte(`
- category: rules
  entries:
    - question: food pulse rules
      answer: Follow the rules.
      keywords: [rulebook]
`))
	require.NoError(t, err)
	client := &stubClient{completion: entity.Completion{Outcome: entity.OutcomeSuccess, Text: "Remote answer"}}
	opts := DefaultOptions()
	opts.RateLimitDelay = 0
	bot := New(faq, client, entity.ChatState{}, opts)

	// 11 shared characters out of 32: 0.6875, fuzzy but below the gate.
	reply := bot.Respond(context.Background(), "food pulse xyzqw")

	assert.Equal(t, StateRemote, reply.State)
	assert.Equal(t, MatchFuzzy, reply.Match.Kind)
	assert.InDelta(t, 0.6875, reply.Match.Confidence, 1e-9)
	assert.Equal(t, "Remote answer", reply.Text)
	require.NotNil(t, reply.Exchange)
	assert.Equal(t, "rules", reply.Exchange.Category)
}

func TestRespondRemoteEmptyTextIsVerbatim(t *testing.T) {
	client := &stubClient{completion: entity.Completion{Outcome: entity.OutcomeSuccess, Text: ""}}
	bot := newTestBot(client, entity.ChatState{})

	reply := bot.Respond(context.Background(), remoteQuery)

	assert.Equal(t, StateRemote, reply.State)
	assert.Equal(t, entity.OutcomeSuccess, reply.Outcome)
	assert.Empty(t, reply.Text)
	require.NotNil(t, reply.Exchange)
	assert.Empty(t, reply.Exchange.Assistant)
}

func TestRespondEmpty(t *testing.T) {
	state := entity.ChatState{History: []entity.Exchange{{UserText: "old", Assistant: "answer"}}}
	bot := newTestBot(&stubClient{}, state)

	for _, in := range []string{"", "   ", "\n\t"} {
		reply := bot.Respond(context.Background(), in)
		assert.Equal(t, StateEmpty, reply.State)
		assert.Equal(t, AskPrompt, reply.Text)
	}
	assert.Equal(t, state.History, bot.State().History)
}

func TestRespondRemote(t *testing.T) {
	client := &stubClient{completion: entity.Completion{Outcome: entity.OutcomeSuccess, Text: "Remote answer"}}
	bot := newTestBot(client, entity.ChatState{})

	bot.Respond(context.Background(), "what is food pulse")
	reply := bot.Respond(context.Background(), remoteQuery)

	assert.Equal(t, StateRemote, reply.State)
	assert.Equal(t, entity.OutcomeSuccess, reply.Outcome)
	assert.Equal(t, "Remote answer", reply.Text)
	require.NotNil(t, reply.Exchange)
	assert.Equal(t, entity.CategoryAPI, reply.Exchange.Category)

	require.Len(t, client.calls, 1)
	assert.Equal(t, remoteQuery, client.calls[0].query)
	assert.True(t, strings.HasPrefix(client.calls[0].history, "Previous conversation:\nUser: what is food pulse\nAssistant: Food Pulse is"))

	state := bot.State()
	assert.Len(t, state.History, 2)
	assert.Equal(t, 1, state.Limiter.Count)
}

func TestRespondRemoteFailures(t *testing.T) {
	cases := []struct {
		completion entity.Completion
		want       string
		outcome    entity.Outcome
	}{
		{entity.Completion{Outcome: entity.OutcomeRateLimited}, RateLimitMessage, entity.OutcomeRateLimited},
		{entity.Completion{Outcome: entity.OutcomeAPIError}, APIErrorMessage, entity.OutcomeAPIError},
	}
	for _, tc := range cases {
		t.Run(string(tc.outcome), func(t *testing.T) {
			bot := newTestBot(&stubClient{completion: tc.completion}, entity.ChatState{})
			reply := bot.Respond(context.Background(), remoteQuery)
			assert.Equal(t, tc.want, reply.Text)
			assert.Equal(t, tc.outcome, reply.Outcome)
			assert.Len(t, bot.State().History, 1)
		})
	}
}

func TestRespondDailyLimit(t *testing.T) {
	client := &stubClient{completion: entity.Completion{Outcome: entity.OutcomeSuccess, Text: "ok"}}
	opts := DefaultOptions()
	opts.RateLimitDelay = 0
	opts.DailyLimit = 1
	bot := New(DefaultFAQ(), client, entity.ChatState{}, opts)

	assert.Equal(t, "ok", bot.Respond(context.Background(), remoteQuery).Text)
	reply := bot.Respond(context.Background(), remoteQuery)
	assert.Equal(t, DailyLimitMessage, reply.Text)
	assert.Equal(t, entity.OutcomeDailyLimit, reply.Outcome)
	assert.Len(t, client.calls, 1)
}

func TestRespondResumesState(t *testing.T) {
	clock := newFakeClock()
	client := &stubClient{completion: entity.Completion{Outcome: entity.OutcomeSuccess, Text: "ok"}}
	opts := DefaultOptions()
	opts.Clock = clock.Now
	opts.DailyLimit = 2

	first := New(DefaultFAQ(), client, entity.ChatState{}, opts)
	first.Respond(context.Background(), remoteQuery)
	state := first.State()
	assert.Equal(t, clock.Now(), state.Limiter.LastRequest)

	clock.Advance(2 * time.Second)
	second := New(DefaultFAQ(), client, state, opts)
	second.Respond(context.Background(), remoteQuery)
	reply := second.Respond(context.Background(), remoteQuery)
	assert.Equal(t, DailyLimitMessage, reply.Text)
	assert.Len(t, second.State().History, 3)
}

func TestRespondMemoryIsBounded(t *testing.T) {
	bot := newTestBot(&stubClient{}, entity.ChatState{})
	for i := 0; i < 10; i++ {
		bot.Respond(context.Background(), "what is food pulse")
	}
	assert.Len(t, bot.State().History, DefaultHistorySize)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "off_topic", StateOffTopic.String())
	assert.Equal(t, "remote", StateRemote.String())
}
