package eligibility

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gftan/agentic-recruiter/internal/types"
)

func evalCandidate() types.Candidate {
	return types.Candidate{
		ID:     uuid.New(),
		Name:   "Ana",
		Column: types.ColumnEvaluation,
	}
}

func completedInterview() *types.Interview {
	return &types.Interview{Completed: true}
}

func TestEligible(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*types.Candidate)
		interview *types.Interview
		want      bool
	}{
		{
			name:      "completed interview in evaluation",
			mutate:    func(*types.Candidate) {},
			interview: completedInterview(),
			want:      true,
		},
		{
			name:      "transcription alone counts as complete",
			mutate:    func(*types.Candidate) {},
			interview: &types.Interview{Transcription: "full transcript"},
			want:      true,
		},
		{
			name:      "summary alone counts as complete",
			mutate:    func(*types.Candidate) {},
			interview: &types.Interview{Summary: "strong communicator"},
			want:      true,
		},
		{
			name:      "not pushing forward excludes",
			mutate:    func(c *types.Candidate) { c.NotPushingForward = true },
			interview: completedInterview(),
			want:      false,
		},
		{
			name:      "sent to client excludes regardless of other fields",
			mutate:    func(c *types.Candidate) { c.SentToClient = true },
			interview: completedInterview(),
			want:      false,
		},
		{
			name:      "wrong column excludes",
			mutate:    func(c *types.Candidate) { c.Column = types.ColumnFollowUp },
			interview: completedInterview(),
			want:      false,
		},
		{
			name:      "no interview excludes",
			mutate:    func(*types.Candidate) {},
			interview: nil,
			want:      false,
		},
		{
			name:      "empty interview excludes",
			mutate:    func(*types.Candidate) {},
			interview: &types.Interview{},
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := evalCandidate()
			tt.mutate(&c)
			assert.Equal(t, tt.want, Eligible(c, tt.interview))
		})
	}
}

func TestActiveEvaluationSetPreservesOrder(t *testing.T) {
	a := evalCandidate()
	a.Name = "Ana"
	b := evalCandidate()
	b.Name = "Ben"
	b.NotPushingForward = true
	c := evalCandidate()
	c.Name = "Cleo"

	interviews := Interviews{
		a.ID: completedInterview(),
		b.ID: completedInterview(),
		c.ID: {Summary: "summary"},
	}

	got := ActiveEvaluationSet([]types.Candidate{a, b, c}, interviews)
	require.Len(t, got, 2)
	assert.Equal(t, "Ana", got[0].Name)
	assert.Equal(t, "Cleo", got[1].Name)
}

func TestReferenceSet(t *testing.T) {
	a := evalCandidate()
	b := evalCandidate()
	b.SentToClient = true

	got := ReferenceSet([]types.Candidate{a, b})
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)

	// Reference candidates never appear in the active set.
	active := ActiveEvaluationSet([]types.Candidate{a, b}, Interviews{
		a.ID: completedInterview(),
		b.ID: completedInterview(),
	})
	for _, c := range active {
		assert.NotEqual(t, b.ID, c.ID)
	}
}

func TestChecklistViewOrderAndCollection(t *testing.T) {
	role := types.Role{
		CandidateRequirementFields: []string{"visa_status", "salary_expectation", "notice_period"},
	}
	iv := &types.Interview{Responses: map[string]string{
		"salary_expectation": "90k",
		"notice_period":      "",
		"unrelated":          "ignored",
	}}

	items := ChecklistView(role, iv)
	require.Len(t, items, 3)

	assert.Equal(t, "visa_status", items[0].Field)
	assert.False(t, items[0].Collected)
	assert.Nil(t, items[0].Value)

	assert.Equal(t, "salary_expectation", items[1].Field)
	assert.True(t, items[1].Collected)
	require.NotNil(t, items[1].Value)
	assert.Equal(t, "90k", *items[1].Value)

	// Empty responses report not collected.
	assert.Equal(t, "notice_period", items[2].Field)
	assert.False(t, items[2].Collected)
	assert.Nil(t, items[2].Value)
}

func TestChecklistViewNilInterview(t *testing.T) {
	role := types.Role{CandidateRequirementFields: []string{"visa_status"}}
	items := ChecklistView(role, nil)
	require.Len(t, items, 1)
	assert.False(t, items[0].Collected)
}
