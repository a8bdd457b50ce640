// Package types provides type definitions for structured data used throughout the recruiting pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// Interview holds the screening-interview record for one candidate. At most
// one interview exists per (role, candidate) pair.
type Interview struct {
	RoleID         uuid.UUID         `json:"role_id"`
	CandidateID    uuid.UUID         `json:"candidate_id"`
	Summary        string            `json:"summary,omitempty"`
	Transcription  string            `json:"transcription,omitempty"`
	Responses      map[string]string `json:"candidate_responses,omitempty"`
	FitScore       *int              `json:"fit_score,omitempty"`
	Strengths      []string          `json:"strengths,omitempty"`
	Concerns       []string          `json:"concerns,omitempty"`
	Recommendation string            `json:"recommendation,omitempty"`
	Completed      bool              `json:"interview_completed"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// Complete reports whether the interview counts as done for evaluation
// gating: the completed flag, a transcription, or a summary is enough.
// Safe to call on a nil interview (no interview yet means not complete).
func (iv *Interview) Complete() bool {
	if iv == nil {
		return false
	}
	return iv.Completed || iv.Transcription != "" || iv.Summary != ""
}

// Response returns the recorded answer for a requirement field, with a
// presence flag. Empty answers count as absent.
func (iv *Interview) Response(field string) (string, bool) {
	if iv == nil || iv.Responses == nil {
		return "", false
	}
	v, ok := iv.Responses[field]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// NormalizeRecommendation clamps a free-form recommendation to one of
// yes, no, or maybe. Anything else becomes maybe.
func NormalizeRecommendation(s string) string {
	switch s {
	case "yes", "no", "maybe":
		return s
	default:
		return "maybe"
	}
}
