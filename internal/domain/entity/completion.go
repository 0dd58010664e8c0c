package entity

// Outcome classifies a remote completion attempt.
type Outcome string

const (
	OutcomeSuccess     Outcome = "success"
	OutcomeRateLimited Outcome = "rate_limited"
	OutcomeAPIError    Outcome = "api_error"
	OutcomeDailyLimit  Outcome = "daily_limit"
)

// Completion result of a remote chat-completion call. Text is only set on success.
type Completion struct {
	Outcome Outcome
	Text    string
}
