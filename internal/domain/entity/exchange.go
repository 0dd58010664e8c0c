package entity

import "time"

// CategoryAPI marks an exchange answered by the remote model rather than the FAQ.
const CategoryAPI = "api"

// Exchange is one completed user/assistant turn.
type Exchange struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id,omitempty"`
	UserText  string    `json:"user"`
	Assistant string    `json:"assistant"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

// LimiterState remote-call bookkeeping of a single chat session.
type LimiterState struct {
	LastRequest time.Time `json:"last_request"`
	Count       int       `json:"count"`
}

// ChatState everything the chatbot needs to resume a conversation.
type ChatState struct {
	History []Exchange   `json:"history"`
	Limiter LimiterState `json:"limiter"`
}

// Clone returns a copy that shares no slices with s.
func (s ChatState) Clone() ChatState {
	out := ChatState{Limiter: s.Limiter}
	if s.History != nil {
		out.History = make([]Exchange, len(s.History))
		copy(out.History, s.History)
	}
	return out
}
