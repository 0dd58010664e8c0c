package chatbot

import (
	"fmt"
	"strings"

	"github.com/foodpulse/foodpulse/internal/domain/entity"
)

const (
	// DefaultHistorySize exchanges kept per conversation
	DefaultHistorySize = 6
	// contextWindow exchanges rendered into the remote prompt
	contextWindow = 3
)

// Memory FIFO window of recent exchanges.
type Memory struct {
	exchanges []entity.Exchange
	capacity  int
}

// NewMemory resumes from history, keeping only the newest capacity entries.
func NewMemory(history []entity.Exchange, capacity int) *Memory {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	if len(history) > capacity {
		history = history[len(history)-capacity:]
	}
	m := &Memory{capacity: capacity, exchanges: make([]entity.Exchange, len(history), capacity+1)}
	copy(m.exchanges, history)
	return m
}

// Append adds ex and evicts the oldest entries beyond capacity.
func (m *Memory) Append(ex entity.Exchange) {
	m.exchanges = append(m.exchanges, ex)
	for len(m.exchanges) > m.capacity {
		m.exchanges = m.exchanges[1:]
	}
}

// Len number of stored exchanges
func (m *Memory) Len() int {
	return len(m.exchanges)
}

// Exchanges oldest first, as a copy.
func (m *Memory) Exchanges() []entity.Exchange {
	out := make([]entity.Exchange, len(m.exchanges))
	copy(out, m.exchanges)
	return out
}

// RenderContext the last three exchanges as User/Assistant lines, or "" when empty.
func (m *Memory) RenderContext() string {
	if len(m.exchanges) == 0 {
		return ""
	}
	recent := m.exchanges
	if len(recent) > contextWindow {
		recent = recent[len(recent)-contextWindow:]
	}

	var sb strings.Builder
	sb.WriteString("Previous conversation:\n")
	for _, ex := range recent {
		sb.WriteString(fmt.Sprintf("User: %s\n", ex.UserText))
		sb.WriteString(fmt.Sprintf("Assistant: %s\n", ex.Assistant))
	}
	return sb.String()
}
