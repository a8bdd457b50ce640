package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gftan/agentic-recruiter/internal/pipeline"
	"github.com/gftan/agentic-recruiter/internal/types"
)

// handleGetInterview returns a candidate's interview record, or a null
// interview when none has been saved yet.
func (s *Server) handleGetInterview(w http.ResponseWriter, r *http.Request) {
	roleID, candidateID, err := candidatePath(r)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	iv, err := s.store.GetInterview(r.Context(), roleID, candidateID)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"interview": iv})
}

// handleSaveInterview merges a partial interview update into the stored
// record. A completed interview promotes the candidate to evaluation.
func (s *Server) handleSaveInterview(w http.ResponseWriter, r *http.Request) {
	roleID, candidateID, err := candidatePath(r)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	var req types.InterviewUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
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

	existing, err := s.store.GetInterview(r.Context(), roleID, candidateID)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	iv := mergeInterview(existing, req)
	iv.RoleID = roleID
	iv.CandidateID = candidateID

	if err := s.store.SaveInterview(r.Context(), iv); err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	// A completed interview moves the candidate into evaluation.
	if iv.Completed && cand.Column != types.ColumnEvaluation {
		board := pipeline.New(roleID, s.store, s.logger, []types.Candidate{*cand})
		if _, _, err := board.Apply(r.Context(), pipeline.Move{
			CandidateID: candidateID,
			To:          types.ColumnEvaluation,
		}); err != nil {
			writeError(w, HTTPStatus(err), err.Error())
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Interview saved", "interview": iv})
}

// mergeInterview overlays non-nil request fields onto the stored
// record. Absent fields keep their stored values; the completed flag
// defaults to true so a plain save marks the interview done.
func mergeInterview(existing *types.Interview, req types.InterviewUpdateRequest) *types.Interview {
	iv := &types.Interview{CreatedAt: time.Now()}
	if existing != nil {
		cp := *existing
		iv = &cp
	}

	if req.Summary != nil {
		iv.Summary = *req.Summary
	}
	if req.Transcription != nil {
		iv.Transcription = *req.Transcription
	}
	if req.Responses != nil {
		if iv.Responses == nil {
			iv.Responses = make(map[string]string, len(req.Responses))
		}
		for k, v := range req.Responses {
			iv.Responses[k] = v
		}
	}
	if req.FitScore != nil {
		iv.FitScore = req.FitScore
	}
	if req.Strengths != nil {
		iv.Strengths = req.Strengths
	}
	if req.Concerns != nil {
		iv.Concerns = req.Concerns
	}
	if req.Recommendation != nil {
		iv.Recommendation = types.NormalizeRecommendation(*req.Recommendation)
	} else if iv.Recommendation != "" {
		iv.Recommendation = types.NormalizeRecommendation(iv.Recommendation)
	}
	if req.Completed != nil {
		iv.Completed = *req.Completed
	} else {
		iv.Completed = true
	}
	iv.UpdatedAt = time.Now()
	return iv
}
