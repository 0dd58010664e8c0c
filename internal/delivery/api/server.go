// Package api is the JSON HTTP surface: the chat endpoint, the account and
// listing flows, health and metrics.
package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/foodpulse/foodpulse/internal/usecase"
)

// SessionCookie holds the visitor's session id.
const SessionCookie = "foodpulse_session"

const (
	maxJSONBody   = 64 << 10
	maxUploadBody = 10 << 20
)

type Server struct {
	chat         usecase.ChatUseCase
	accounts     usecase.AccountUseCase
	listings     usecase.ListingUseCase
	sessions     usecase.SessionUseCase
	secureCookie bool
}

// Option configures a Server.
type Option func(*Server)

// WithSecureCookie marks the session cookie Secure (HTTPS deployments).
func WithSecureCookie(secure bool) Option {
	return func(s *Server) { s.secureCookie = secure }
}

func NewServer(
	chat usecase.ChatUseCase,
	accounts usecase.AccountUseCase,
	listings usecase.ListingUseCase,
	sessions usecase.SessionUseCase,
	opts ...Option,
) *Server {
	s := &Server{
		chat:     chat,
		accounts: accounts,
		listings: listings,
		sessions: sessions,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router returns the full handler chain.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("DELETE /chat", s.handleChatReset)
	mux.HandleFunc("GET /chat/history", s.handleChatHistory)

	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)
	mux.HandleFunc("GET /profile", s.handleProfile)
	mux.HandleFunc("POST /profile", s.handleProfileUpdate)
	mux.HandleFunc("GET /dashboard", s.handleDashboard)

	mux.HandleFunc("POST /add_food", s.handleAddFood)
	mux.HandleFunc("POST /listings/import", s.handleImport)
	mux.HandleFunc("POST /claim_food/{id}", s.handleClaim)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	return recoverer(accessLog(s.withSession(mux)))
}
