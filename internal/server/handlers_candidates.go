package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/gftan/agentic-recruiter/internal/eligibility"
	"github.com/gftan/agentic-recruiter/internal/pipeline"
	"github.com/gftan/agentic-recruiter/internal/types"
)

// handleListCandidates returns a role's candidates in board order.
func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	roleID, err := pathUUID(r, "role_id")
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	candidates, err := s.store.ListCandidates(r.Context(), roleID)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	if candidates == nil {
		candidates = []types.Candidate{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"candidates": candidates})
}

// handleCreateCandidate admits a candidate into the outreach column.
func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	roleID, err := pathUUID(r, "role_id")
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	var req types.CandidateCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	cand, err := s.store.CreateCandidate(r.Context(), roleID, req.Name, req.Summary, req.Skills, req.Experience)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, cand)
}

// handleGetCandidate returns one candidate.
func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	roleID, candidateID, err := candidatePath(r)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	cand, err := s.store.GetCandidate(r.Context(), roleID, candidateID)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	if cand == nil {
		writeError(w, http.StatusNotFound, "Candidate not found")
		return
	}
	writeJSON(w, http.StatusOK, cand)
}

// handleDeleteCandidate removes a candidate.
func (s *Server) handleDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	roleID, candidateID, err := candidatePath(r)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	if err := s.store.DeleteCandidate(r.Context(), roleID, candidateID); err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Candidate deleted"})
}

// handleUpdateCandidateStatus applies column moves, flag sets, and
// checklist updates through the board reducer so invariants hold no
// matter which combination the request carries.
func (s *Server) handleUpdateCandidateStatus(w http.ResponseWriter, r *http.Request) {
	roleID, candidateID, err := candidatePath(r)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	var req types.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Empty() {
		writeError(w, http.StatusBadRequest, "no status fields to update")
		return
	}

	board, err := s.loadBoard(r, roleID)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	var cand *types.Candidate
	for _, cmd := range statusCommands(candidateID, req) {
		cand, _, err = board.Apply(r.Context(), cmd)
		if err != nil {
			writeError(w, HTTPStatus(err), err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, cand)
}

// handleMarkOutreachSent records that the outreach message went out.
func (s *Server) handleMarkOutreachSent(w http.ResponseWriter, r *http.Request) {
	roleID, candidateID, err := candidatePath(r)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	board, err := s.loadBoard(r, roleID)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	cand, _, err := board.Apply(r.Context(), pipeline.MarkOutreachSent{
		CandidateID: candidateID,
		Message:     req.Message,
	})
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cand)
}

// handleChecklistView reports requirement-field collection status for
// one candidate, in the role's declared field order.
func (s *Server) handleChecklistView(w http.ResponseWriter, r *http.Request) {
	roleID, candidateID, err := candidatePath(r)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	role, err := s.store.GetRole(r.Context(), roleID)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	if role == nil {
		writeError(w, http.StatusNotFound, "Role not found")
		return
	}

	iv, err := s.store.GetInterview(r.Context(), roleID, candidateID)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items":               eligibility.ChecklistView(*role, iv),
		"interview_completed": eligibility.InterviewComplete(iv),
	})
}

// loadBoard builds the in-memory transition board from the stored
// candidate list.
func (s *Server) loadBoard(r *http.Request, roleID uuid.UUID) (*pipeline.Board, error) {
	candidates, err := s.store.ListCandidates(r.Context(), roleID)
	if err != nil {
		return nil, err
	}
	return pipeline.New(roleID, s.store, s.logger, candidates), nil
}

// statusCommands translates a status request into board commands,
// moves first so flag and checklist writes see the final column.
func statusCommands(candidateID uuid.UUID, req types.StatusUpdateRequest) []pipeline.Command {
	var cmds []pipeline.Command
	if req.Column != nil {
		cmds = append(cmds, pipeline.Move{CandidateID: candidateID, To: types.Column(*req.Column)})
	}
	if req.NotPushingForward != nil && *req.NotPushingForward {
		cmds = append(cmds, pipeline.SetFlag{CandidateID: candidateID, Flag: pipeline.FlagNotPushingForward})
	}
	if req.SentToClient != nil && *req.SentToClient {
		cmds = append(cmds, pipeline.SetFlag{CandidateID: candidateID, Flag: pipeline.FlagSentToClient})
	}
	if req.Checklist != nil {
		cmds = append(cmds, pipeline.SetChecklist{CandidateID: candidateID, Items: req.Checklist})
	}
	if req.OutreachSent != nil && *req.OutreachSent {
		msg := ""
		if req.OutreachMessage != nil {
			msg = *req.OutreachMessage
		}
		cmds = append(cmds, pipeline.MarkOutreachSent{CandidateID: candidateID, Message: msg})
	}
	return cmds
}

func candidatePath(r *http.Request) (roleID, candidateID uuid.UUID, err error) {
	roleID, err = pathUUID(r, "role_id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	candidateID, err = pathUUID(r, "candidate_id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return roleID, candidateID, nil
}
