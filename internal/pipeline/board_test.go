package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gftan/agentic-recruiter/internal/types"
)

// fakeStore records every patch it receives and can be told to fail.
type fakeStore struct {
	patches []types.StatusPatch
	failErr error
}

func (s *fakeStore) UpdateCandidateStatus(_ context.Context, _, _ uuid.UUID, patch types.StatusPatch) error {
	if s.failErr != nil {
		return s.failErr
	}
	s.patches = append(s.patches, patch)
	return nil
}

func newTestBoard(store Store, cands ...types.Candidate) *Board {
	return New(uuid.New(), store, nil, cands)
}

func outreachCandidate() types.Candidate {
	return types.Candidate{
		ID:        uuid.New(),
		Name:      "Ana",
		Column:    types.ColumnOutreach,
		Color:     types.ColorOutreach,
		Checklist: types.NewChecklist(),
	}
}

func TestMoveRecomputesColor(t *testing.T) {
	store := &fakeStore{}
	cand := outreachCandidate()
	b := newTestBoard(store, cand)

	rec, changed, err := b.Apply(context.Background(), Move{CandidateID: cand.ID, To: types.ColumnFollowUp})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, types.ColumnFollowUp, rec.Column)
	assert.Equal(t, types.ColorActive, rec.Color)

	require.Len(t, store.patches, 1)
	require.NotNil(t, store.patches[0].Column)
	assert.Equal(t, types.ColumnFollowUp, *store.patches[0].Column)
	require.NotNil(t, store.patches[0].Color)
	assert.Equal(t, types.ColorActive, *store.patches[0].Color)
}

func TestMoveToCurrentColumnIsNoOp(t *testing.T) {
	store := &fakeStore{}
	cand := outreachCandidate()
	b := newTestBoard(store, cand)

	rec, changed, err := b.Apply(context.Background(), Move{CandidateID: cand.ID, To: types.ColumnOutreach})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, types.ColumnOutreach, rec.Column)
	assert.Empty(t, store.patches, "no request may be issued for a same-column move")
}

func TestMoveUnsetColumnTreatedAsOutreach(t *testing.T) {
	store := &fakeStore{}
	cand := outreachCandidate()
	cand.Column = ""
	b := newTestBoard(store, cand)

	_, changed, err := b.Apply(context.Background(), Move{CandidateID: cand.ID, To: types.ColumnOutreach})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, store.patches)
}

func TestMoveInvalidColumnRejectedLocally(t *testing.T) {
	store := &fakeStore{}
	cand := outreachCandidate()
	b := newTestBoard(store, cand)

	_, _, err := b.Apply(context.Background(), Move{CandidateID: cand.ID, To: "archived"})
	require.Error(t, err)
	var invalid *ErrInvalidColumn
	assert.True(t, errors.As(err, &invalid))
	assert.True(t, IsValidation(err))
	assert.Empty(t, store.patches)
	assert.Equal(t, types.ColumnOutreach, b.Candidate(cand.ID).Column)
}

func TestMoveRevertsOnStoreFailure(t *testing.T) {
	store := &fakeStore{failErr: errors.New("connection reset")}
	cand := outreachCandidate()
	b := newTestBoard(store, cand)

	_, _, err := b.Apply(context.Background(), Move{CandidateID: cand.ID, To: types.ColumnEvaluation})
	require.Error(t, err)

	rec := b.Candidate(cand.ID)
	assert.Equal(t, types.ColumnOutreach, rec.Column)
	assert.Equal(t, types.ColorOutreach, rec.Color)
}

func TestMoveToFollowUpSeedsMissingChecklist(t *testing.T) {
	store := &fakeStore{}
	cand := outreachCandidate()
	cand.Checklist = nil
	b := newTestBoard(store, cand)

	rec, _, err := b.Apply(context.Background(), Move{CandidateID: cand.ID, To: types.ColumnFollowUp})
	require.NoError(t, err)
	require.Len(t, rec.Checklist, len(types.ChecklistKeys))
	for _, k := range types.ChecklistKeys {
		assert.False(t, rec.Checklist[k])
	}
	require.Len(t, store.patches, 1)
	assert.Len(t, store.patches[0].Checklist, len(types.ChecklistKeys))
}

func TestSetFlagIsWriteOnce(t *testing.T) {
	store := &fakeStore{}
	cand := outreachCandidate()
	b := newTestBoard(store, cand)

	rec, changed, err := b.Apply(context.Background(), SetFlag{CandidateID: cand.ID, Flag: FlagNotPushingForward})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, rec.NotPushingForward)
	assert.Equal(t, types.ColorNotPushing, rec.Color)
	assert.Equal(t, types.ColumnOutreach, rec.Column, "flags never alter the column")

	// Second set is a no-op.
	_, changed, err = b.Apply(context.Background(), SetFlag{CandidateID: cand.ID, Flag: FlagNotPushingForward})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Len(t, store.patches, 1)
}

func TestSetFlagRevertsOnStoreFailure(t *testing.T) {
	store := &fakeStore{failErr: errors.New("boom")}
	cand := outreachCandidate()
	b := newTestBoard(store, cand)

	_, _, err := b.Apply(context.Background(), SetFlag{CandidateID: cand.ID, Flag: FlagSentToClient})
	require.Error(t, err)
	assert.False(t, b.Candidate(cand.ID).SentToClient)
}

func TestToggleChecklistFlipsAndPersistsWholeMapping(t *testing.T) {
	store := &fakeStore{}
	cand := outreachCandidate()
	b := newTestBoard(store, cand)

	rec, changed, err := b.Apply(context.Background(), ToggleChecklist{CandidateID: cand.ID, Key: "updated_cv_received"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, rec.Checklist["updated_cv_received"])

	require.Len(t, store.patches, 1)
	assert.Len(t, store.patches[0].Checklist, len(types.ChecklistKeys), "the entire checklist mapping is persisted")

	// Toggle back.
	rec, _, err = b.Apply(context.Background(), ToggleChecklist{CandidateID: cand.ID, Key: "updated_cv_received"})
	require.NoError(t, err)
	assert.False(t, rec.Checklist["updated_cv_received"])
}

func TestToggleChecklistUnknownKeyRejected(t *testing.T) {
	store := &fakeStore{}
	cand := outreachCandidate()
	b := newTestBoard(store, cand)

	_, _, err := b.Apply(context.Background(), ToggleChecklist{CandidateID: cand.ID, Key: "reference_check_done"})
	require.Error(t, err)
	var unknown *ErrUnknownChecklistKey
	assert.True(t, errors.As(err, &unknown))
	assert.True(t, IsValidation(err))
	assert.Empty(t, store.patches)
}

func TestToggleChecklistRollsBackOnStoreFailure(t *testing.T) {
	store := &fakeStore{failErr: errors.New("timeout")}
	cand := outreachCandidate()
	b := newTestBoard(store, cand)

	_, _, err := b.Apply(context.Background(), ToggleChecklist{CandidateID: cand.ID, Key: "consent_form_sent"})
	require.Error(t, err)
	assert.False(t, b.Candidate(cand.ID).Checklist["consent_form_sent"])
}

func TestScreeningInterviewCompletedPromotesToEvaluation(t *testing.T) {
	store := &fakeStore{}
	cand := outreachCandidate()
	cand.Column = types.ColumnFollowUp
	cand.Color = types.ColorActive
	b := newTestBoard(store, cand)

	rec, _, err := b.Apply(context.Background(), ToggleChecklist{CandidateID: cand.ID, Key: types.KeyScreeningInterviewCompleted})
	require.NoError(t, err)
	assert.True(t, rec.Checklist[types.KeyScreeningInterviewCompleted])
	assert.Equal(t, types.ColumnEvaluation, rec.Column)

	require.Len(t, store.patches, 1)
	require.NotNil(t, store.patches[0].Column)
	assert.Equal(t, types.ColumnEvaluation, *store.patches[0].Column)
}

func TestSetChecklistNoChangeIsNoOp(t *testing.T) {
	store := &fakeStore{}
	cand := outreachCandidate()
	b := newTestBoard(store, cand)

	_, changed, err := b.Apply(context.Background(), SetChecklist{
		CandidateID: cand.ID,
		Items:       types.Checklist{"consent_form_sent": false},
	})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, store.patches)
}

func TestMarkOutreachSent(t *testing.T) {
	store := &fakeStore{}
	cand := outreachCandidate()
	b := newTestBoard(store, cand)

	rec, changed, err := b.Apply(context.Background(), MarkOutreachSent{CandidateID: cand.ID, Message: "Hi Ana"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, rec.OutreachSent)
	assert.Equal(t, "Hi Ana", rec.OutreachMessage)

	// Identical resend is a no-op.
	_, changed, err = b.Apply(context.Background(), MarkOutreachSent{CandidateID: cand.ID, Message: "Hi Ana"})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Len(t, store.patches, 1)
}

func TestApplyUnknownCandidate(t *testing.T) {
	b := newTestBoard(&fakeStore{})
	_, _, err := b.Apply(context.Background(), Move{CandidateID: uuid.New(), To: types.ColumnFollowUp})
	var notFound *ErrCandidateNotFound
	assert.True(t, errors.As(err, &notFound))
}

func TestCandidatesSorted(t *testing.T) {
	store := &fakeStore{}
	a := types.Candidate{ID: uuid.New(), Name: "Zoe", Column: types.ColumnOutreach}
	c := types.Candidate{ID: uuid.New(), Name: "Ben", Column: types.ColumnEvaluation}
	d := types.Candidate{ID: uuid.New(), Name: "Ana", Column: types.ColumnOutreach}
	b := newTestBoard(store, a, c, d)

	got := b.Candidates()
	require.Len(t, got, 3)
	assert.Equal(t, "Ana", got[0].Name)
	assert.Equal(t, "Zoe", got[1].Name)
	assert.Equal(t, "Ben", got[2].Name)
}
