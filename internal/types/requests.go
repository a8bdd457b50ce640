// Package types provides type definitions for structured data used throughout the recruiting pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// StatusUpdateRequest is the partial candidate-status update accepted over
// HTTP. Color is deliberately not accepted: it is derived server-side from
// the column and flags. Flags only move false -> true; there is no unset path.
type StatusUpdateRequest struct {
	Column            *string   `json:"column,omitempty" validate:"omitempty,oneof=outreach follow-up evaluation"`
	OutreachSent      *bool     `json:"outreach_sent,omitempty"`
	OutreachMessage   *string   `json:"outreach_message,omitempty"`
	NotPushingForward *bool     `json:"not_pushing_forward,omitempty"`
	SentToClient      *bool     `json:"sent_to_client,omitempty"`
	Checklist         Checklist `json:"checklist,omitempty"`
}

// Validate checks the request before any state is touched.
func (r *StatusUpdateRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return err
	}
	if err := r.Checklist.Validate(); err != nil {
		return err
	}
	if r.NotPushingForward != nil && !*r.NotPushingForward {
		return fmt.Errorf("not_pushing_forward cannot be unset")
	}
	if r.SentToClient != nil && !*r.SentToClient {
		return fmt.Errorf("sent_to_client cannot be unset")
	}
	return nil
}

// Empty reports whether the request carries no changes at all.
func (r *StatusUpdateRequest) Empty() bool {
	return r.Column == nil && r.OutreachSent == nil && r.OutreachMessage == nil &&
		r.NotPushingForward == nil && r.SentToClient == nil && len(r.Checklist) == 0
}

// CandidateCreateRequest admits a candidate into a role's pipeline.
type CandidateCreateRequest struct {
	Name       string   `json:"name" validate:"required,min=1"`
	Summary    string   `json:"summary,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Experience string   `json:"experience,omitempty"`
}

// Validate validates the CandidateCreateRequest using the validator.
func (r *CandidateCreateRequest) Validate() error {
	return validator.New().Struct(r)
}

// RoleCreateRequest creates a new role.
type RoleCreateRequest struct {
	Title  string `json:"title" validate:"required,min=1"`
	Status string `json:"status,omitempty"`
}

// Validate validates the RoleCreateRequest using the validator.
func (r *RoleCreateRequest) Validate() error {
	return validator.New().Struct(r)
}

// RoleUpdateRequest updates role details. Nil fields are left untouched.
type RoleUpdateRequest struct {
	Title                      *string  `json:"title,omitempty"`
	Status                     *string  `json:"status,omitempty"`
	HiringBudget               *float64 `json:"hiring_budget,omitempty"`
	Vacancies                  *int     `json:"vacancies,omitempty"`
	Urgency                    *string  `json:"urgency,omitempty"`
	Timeline                   *string  `json:"timeline,omitempty"`
	CandidateRequirementFields []string `json:"candidate_requirement_fields,omitempty"`
	EvaluationCriteria         []string `json:"evaluation_criteria,omitempty"`
}

// InterviewUpdateRequest saves or updates interview details manually, with
// no audio upload. Nil fields keep their stored values.
type InterviewUpdateRequest struct {
	Summary        *string           `json:"summary,omitempty"`
	Transcription  *string           `json:"transcription,omitempty"`
	Responses      map[string]string `json:"candidate_responses,omitempty"`
	FitScore       *int              `json:"fit_score,omitempty" validate:"omitempty,min=0,max=100"`
	Strengths      []string          `json:"strengths,omitempty"`
	Concerns       []string          `json:"concerns,omitempty"`
	Recommendation *string           `json:"recommendation,omitempty"`
	Completed      *bool             `json:"interview_completed,omitempty"`
}

// Validate validates the InterviewUpdateRequest using the validator.
func (r *InterviewUpdateRequest) Validate() error {
	return validator.New().Struct(r)
}

// EvaluateRequest asks the evaluation agent a question about the role's
// eligible candidates, with optional prior conversation for context.
type EvaluateRequest struct {
	Question            string    `json:"question" validate:"required,min=1"`
	ConversationHistory []Message `json:"conversation_history,omitempty"`
}

// Validate validates the EvaluateRequest using the validator.
func (r *EvaluateRequest) Validate() error {
	return validator.New().Struct(r)
}

// ChatSaveRequest replaces a role's saved evaluation conversation.
type ChatSaveRequest struct {
	Messages []Message `json:"messages"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	return validator.New().Struct(r)
}

// SetupRequest creates the first admin user when no users exist yet.
type SetupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Validate validates the SetupRequest using the validator.
func (r *SetupRequest) Validate() error {
	return validator.New().Struct(r)
}
