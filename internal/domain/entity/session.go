package entity

import "time"

// Session server-side state addressed by the session cookie (or a channel key
// such as a Telegram chat id). It owns the chatbot state of its visitor.
type Session struct {
	ID              string      `json:"id"`
	UserID          int64       `json:"user_id,omitempty"`
	Name            string      `json:"name,omitempty"`
	AccountType     AccountType `json:"account_type,omitempty"`
	ProfileComplete bool        `json:"profile_complete"`
	Chat            ChatState   `json:"chat"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// Authenticated reports whether a user is logged in on this session.
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != 0
}

// Clone deep copy.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Chat = s.Chat.Clone()
	return &out
}
