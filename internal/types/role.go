// Package types provides type definitions for structured data used throughout the recruiting pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// Role represents an open position whose pipeline the board tracks.
// CandidateRequirementFields and EvaluationCriteria are ordered free-text
// lists maintained by CRUD editing; their order is significant.
type Role struct {
	ID                         uuid.UUID `json:"id"`
	Title                      string    `json:"title"`
	Status                     string    `json:"status"`
	HiringBudget               *float64  `json:"hiring_budget,omitempty"`
	Vacancies                  *int      `json:"vacancies,omitempty"`
	Urgency                    string    `json:"urgency,omitempty"`
	Timeline                   string    `json:"timeline,omitempty"`
	CandidateRequirementFields []string  `json:"candidate_requirement_fields"`
	EvaluationCriteria         []string  `json:"evaluation_criteria"`
	CreatedBy                  string    `json:"created_by_user_id,omitempty"`
	CreatedAt                  time.Time `json:"created_at"`
	UpdatedAt                  time.Time `json:"updated_at"`
}

// RoleCounts summarizes a role's pipeline for list views.
type RoleCounts struct {
	Outreach          int `json:"outreach_count"`
	FollowUp          int `json:"follow_up_count"`
	Evaluation        int `json:"evaluation_count"`
	SentToClient      int `json:"sent_to_client_count"`
	NotPushingForward int `json:"not_pushing_forward_count"`
}
