package api

import (
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
)

const (
	msgNotJSON   = "Invalid request: must be JSON"
	msgNoMessage = "No message provided"
)

type chatResponse struct {
	Reply string `json:"reply"`
}

// isJSON accepts application/json and any +json media type.
func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mt == "application/json" || (strings.HasPrefix(mt, "application/") && strings.HasSuffix(mt, "+json"))
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if !isJSON(r) {
		writeError(w, http.StatusBadRequest, msgNotJSON)
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, msgNotJSON)
		return
	}
	var payload any
	if err := sonic.Unmarshal(body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, msgNotJSON)
		return
	}

	obj, _ := payload.(map[string]any)
	message, _ := obj["message"].(string)
	if message == "" {
		writeError(w, http.StatusBadRequest, msgNoMessage)
		return
	}

	reply, err := s.chat.ProcessMessage(r.Context(), sessionID(r), message)
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Reply: reply.Text})
}

func (s *Server) handleChatReset(w http.ResponseWriter, r *http.Request) {
	if err := s.chat.ResetSession(r.Context(), sessionID(r)); err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.chat.History(r.Context(), sessionID(r))
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": history})
}
