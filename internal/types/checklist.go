// Package types provides type definitions for structured data used throughout the recruiting pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// ChecklistKeys are the fixed follow-up items tracked per candidate. The key
// set is closed: unknown keys are rejected, never silently added.
var ChecklistKeys = []string{
	"consent_form_sent",
	"consent_form_received",
	"updated_cv_received",
	"screening_interview_scheduled",
	"screening_interview_completed",
}

// KeyScreeningInterviewCompleted is the checklist item that, once true,
// moves the candidate to the evaluation column.
const KeyScreeningInterviewCompleted = "screening_interview_completed"

// Checklist maps the fixed checklist keys to completion booleans.
type Checklist map[string]bool

// NewChecklist returns a checklist with every known key set to false.
func NewChecklist() Checklist {
	c := make(Checklist, len(ChecklistKeys))
	for _, k := range ChecklistKeys {
		c[k] = false
	}
	return c
}

// KnownChecklistKey reports whether k is one of the fixed checklist keys.
func KnownChecklistKey(k string) bool {
	for _, known := range ChecklistKeys {
		if k == known {
			return true
		}
	}
	return false
}

// Validate rejects checklists containing keys outside the fixed set.
func (c Checklist) Validate() error {
	for k := range c {
		if !KnownChecklistKey(k) {
			return fmt.Errorf("unknown checklist key: %q", k)
		}
	}
	return nil
}

// Clone returns a copy of the checklist.
func (c Checklist) Clone() Checklist {
	if c == nil {
		return nil
	}
	cp := make(Checklist, len(c))
	for k, v := range c {
		cp[k] = v
	}
	return cp
}

// Merge applies patch entries onto c, rejecting unknown keys before any
// entry is applied.
func (c Checklist) Merge(patch Checklist) error {
	if err := patch.Validate(); err != nil {
		return err
	}
	for k, v := range patch {
		c[k] = v
	}
	return nil
}
