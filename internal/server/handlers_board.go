package server

import (
	"encoding/json"
	"net/http"

	"github.com/gftan/agentic-recruiter/internal/board"
)

// resolveDropRequest is one frame of an in-progress drag: the dragged
// card's geometry plus every droppable currently on the board.
type resolveDropRequest struct {
	Drag    board.Drag     `json:"drag"`
	Targets []board.Target `json:"targets"`
}

// handleResolveDrop ranks drop targets for a drag frame and reports the
// column the drop would land in. An empty collision list means the drag
// resolves to nothing and the client should cancel the move.
func (s *Server) handleResolveDrop(w http.ResponseWriter, r *http.Request) {
	if _, err := pathUUID(r, "role_id"); err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	var req resolveDropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Drag.CandidateID == "" {
		writeError(w, http.StatusBadRequest, "drag.candidate_id is required")
		return
	}

	collisions := board.Resolve(req.Drag, req.Targets)
	if collisions == nil {
		writeJSON(w, http.StatusOK, map[string]any{"collisions": []board.Collision{}})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"collisions": collisions,
		"column":     board.EffectiveColumn(collisions[0]),
	})
}
