package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gftan/agentic-recruiter/internal/eligibility"
	"github.com/gftan/agentic-recruiter/internal/evaluation"
	"github.com/gftan/agentic-recruiter/internal/types"
)

// handleEvaluate answers an evaluation-chat question over the role's
// eligible candidates. The exchange is appended to the role's
// transcript: the question on the debounce, the reply with an
// immediate flush.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	roleID, err := pathUUID(r, "role_id")
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	var req types.EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
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

	candidates, err := s.eligibleCandidates(r, roleID)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	answer, evalErr := s.agent.Evaluate(r.Context(), evaluation.Input{
		Question:   req.Question,
		Role:       *role,
		Candidates: candidates,
		History:    req.ConversationHistory,
	})
	if evalErr != nil {
		// The transcript still records the failed exchange so the user
		// sees what happened on reload.
		s.logger.Error("evaluation failed", zap.String("role_id", roleID.String()), zap.Error(evalErr))
		answer = fmt.Sprintf("Evaluation failed: %v. Please try again.", evalErr)
	}

	s.recordExchange(r, roleID, req.Question, answer)
	writeJSON(w, http.StatusOK, map[string]string{"response": answer})
}

// eligibleCandidates computes the active evaluation set, fetching the
// candidates' interviews concurrently.
func (s *Server) eligibleCandidates(r *http.Request, roleID uuid.UUID) ([]evaluation.CandidateContext, error) {
	all, err := s.store.ListCandidates(r.Context(), roleID)
	if err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(8)

	var mu sync.Mutex
	interviews := make(eligibility.Interviews, len(all))
	for _, cand := range all {
		if cand.Column != types.ColumnEvaluation {
			continue
		}
		g.Go(func() error {
			iv, err := s.store.GetInterview(ctx, roleID, cand.ID)
			if err != nil {
				return err
			}
			mu.Lock()
			interviews[cand.ID] = iv
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	eligible := eligibility.ActiveEvaluationSet(all, interviews)
	out := make([]evaluation.CandidateContext, 0, len(eligible))
	for _, cand := range eligible {
		out = append(out, evaluation.CandidateContext{
			Candidate: cand,
			Interview: interviews[cand.ID],
		})
	}
	return out, nil
}

// recordExchange appends the question and reply to the role's
// transcript. Persistence failures are logged, not surfaced: the
// answer was already produced.
func (s *Server) recordExchange(r *http.Request, roleID uuid.UUID, question, answer string) {
	p, err := s.chats.Persister(r.Context(), roleID)
	if err != nil {
		s.logger.Error("failed to load chat persister",
			zap.String("role_id", roleID.String()), zap.Error(err))
		return
	}

	if err := p.Append(r.Context(), types.Message{Role: types.MessageRoleUser, Content: question}); err != nil {
		s.logger.Error("failed to record question",
			zap.String("role_id", roleID.String()), zap.Error(err))
	}
	if err := p.Append(r.Context(), types.Message{Role: types.MessageRoleAssistant, Content: answer}); err != nil {
		s.logger.Error("failed to record answer",
			zap.String("role_id", roleID.String()), zap.Error(err))
	}
}
