package api

import (
	"errors"
	"net/http"

	"github.com/foodpulse/foodpulse/internal/domain/entity"
	"github.com/foodpulse/foodpulse/internal/domain/repository"
	"github.com/foodpulse/foodpulse/internal/usecase"
)

var errLoginRequired = errors.New("login required")

type loginResponse struct {
	User *entity.User `json:"user"`
	Next string       `json:"next"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	user, err := s.accounts.Register(r.Context(), usecase.RegisterInput{
		Name:            r.FormValue("signup-name"),
		Email:           r.FormValue("signup-email"),
		AccountType:     r.FormValue("signup-type"),
		Password:        r.FormValue("signup-password"),
		ConfirmPassword: r.FormValue("signup-confirm-password"),
	})
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"user": user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	user, err := s.accounts.Login(r.Context(), r.FormValue("login-email"), r.FormValue("login-password"))
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}

	id, err := s.rotateSession(w, r)
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	_, err = s.sessions.Update(r.Context(), id, func(sess *entity.Session) error {
		sess.UserID = user.ID
		sess.Name = user.Name
		sess.AccountType = user.AccountType
		sess.ProfileComplete = user.ProfileComplete
		return nil
	})
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}

	next := "/dashboard"
	if !user.ProfileComplete {
		next = "/profile"
	}
	writeJSON(w, http.StatusOK, loginResponse{User: user, Next: next})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if _, err := s.rotateSession(w, r); err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (s *Server) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	updated, err := s.accounts.CompleteProfile(r.Context(), user.ID, r.FormValue("address"), r.FormValue("phone_number"))
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	_, err = s.sessions.Update(r.Context(), sessionID(r), func(sess *entity.Session) error {
		sess.ProfileComplete = true
		return nil
	})
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": updated})
}

// requireUser loads the logged in user of the session, or answers 401.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (*entity.User, bool) {
	sess, err := s.sessions.Get(r.Context(), sessionID(r))
	if err != nil {
		writeUseCaseError(w, r, err)
		return nil, false
	}
	if !sess.Authenticated() {
		writeError(w, http.StatusUnauthorized, errLoginRequired.Error())
		return nil, false
	}

	user, err := s.accounts.GetUser(r.Context(), sess.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, errLoginRequired.Error())
		return nil, false
	}
	if err != nil {
		writeUseCaseError(w, r, err)
		return nil, false
	}
	return user, true
}
