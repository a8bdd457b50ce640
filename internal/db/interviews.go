package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gftan/agentic-recruiter/internal/types"
)

// GetInterview retrieves the interview for a (role, candidate) pair.
// Returns (nil, nil) when no interview has been recorded.
func (db *DB) GetInterview(ctx context.Context, roleID, candidateID uuid.UUID) (*types.Interview, error) {
	var iv types.Interview
	var responsesJSON, strengthsJSON, concernsJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT role_id, candidate_id, summary, transcription, candidate_responses,
			fit_score, strengths, concerns, recommendation, interview_completed,
			created_at, updated_at
		 FROM interviews WHERE role_id = $1 AND candidate_id = $2`,
		roleID, candidateID,
	).Scan(&iv.RoleID, &iv.CandidateID, &iv.Summary, &iv.Transcription, &responsesJSON,
		&iv.FitScore, &strengthsJSON, &concernsJSON, &iv.Recommendation, &iv.Completed,
		&iv.CreatedAt, &iv.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get interview: %w", err)
	}

	if len(responsesJSON) > 0 {
		if err := json.Unmarshal(responsesJSON, &iv.Responses); err != nil {
			return nil, fmt.Errorf("failed to unmarshal responses: %w", err)
		}
	}
	if len(strengthsJSON) > 0 {
		if err := json.Unmarshal(strengthsJSON, &iv.Strengths); err != nil {
			return nil, fmt.Errorf("failed to unmarshal strengths: %w", err)
		}
	}
	if len(concernsJSON) > 0 {
		if err := json.Unmarshal(concernsJSON, &iv.Concerns); err != nil {
			return nil, fmt.Errorf("failed to unmarshal concerns: %w", err)
		}
	}
	return &iv, nil
}

// SaveInterview upserts the interview record for a (role, candidate)
// pair. The caller is responsible for having merged partial input with
// the stored record first.
func (db *DB) SaveInterview(ctx context.Context, iv *types.Interview) error {
	responsesJSON, err := json.Marshal(orEmptyMap(iv.Responses))
	if err != nil {
		return fmt.Errorf("failed to marshal responses: %w", err)
	}
	strengthsJSON, err := json.Marshal(orEmptySlice(iv.Strengths))
	if err != nil {
		return fmt.Errorf("failed to marshal strengths: %w", err)
	}
	concernsJSON, err := json.Marshal(orEmptySlice(iv.Concerns))
	if err != nil {
		return fmt.Errorf("failed to marshal concerns: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO interviews (role_id, candidate_id, summary, transcription,
			candidate_responses, fit_score, strengths, concerns, recommendation,
			interview_completed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (role_id, candidate_id) DO UPDATE SET
			summary = $3, transcription = $4, candidate_responses = $5,
			fit_score = $6, strengths = $7, concerns = $8, recommendation = $9,
			interview_completed = $10, updated_at = NOW()`,
		iv.RoleID, iv.CandidateID, iv.Summary, iv.Transcription, responsesJSON,
		iv.FitScore, strengthsJSON, concernsJSON, iv.Recommendation, iv.Completed,
	)
	if err != nil {
		return fmt.Errorf("failed to save interview: %w", err)
	}
	return nil
}

func orEmptyMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func orEmptySlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
