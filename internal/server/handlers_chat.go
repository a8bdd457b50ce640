package server

import (
	"encoding/json"
	"net/http"

	"github.com/gftan/agentic-recruiter/internal/types"
)

// handleGetEvaluationChat returns the buffered transcript, which is at
// least as fresh as what storage holds.
func (s *Server) handleGetEvaluationChat(w http.ResponseWriter, r *http.Request) {
	roleID, err := pathUUID(r, "role_id")
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	p, err := s.chats.Persister(r.Context(), roleID)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	messages := p.Messages()
	if messages == nil {
		messages = []types.Message{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

// handleSaveEvaluationChat replaces the transcript. The write is
// flushed before responding so the ack is durable.
func (s *Server) handleSaveEvaluationChat(w http.ResponseWriter, r *http.Request) {
	roleID, err := pathUUID(r, "role_id")
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	var req types.ChatSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := s.chats.Persister(r.Context(), roleID)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	p.SetMessages(req.Messages)
	if err := p.Flush(r.Context()); err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Chat saved", "messages": p.Messages()})
}

// handleClearEvaluationChat drops the transcript from memory and
// storage, bypassing the debounce.
func (s *Server) handleClearEvaluationChat(w http.ResponseWriter, r *http.Request) {
	roleID, err := pathUUID(r, "role_id")
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	p, err := s.chats.Persister(r.Context(), roleID)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	if err := p.Clear(r.Context()); err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Chat cleared"})
}
