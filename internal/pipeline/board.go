package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gftan/agentic-recruiter/internal/types"
)

// Store is the persistence surface the board writes through. The payload is
// always a partial status patch; the store is expected to apply it
// atomically for one candidate.
type Store interface {
	UpdateCandidateStatus(ctx context.Context, roleID, candidateID uuid.UUID, patch types.StatusPatch) error
}

// Board holds the authoritative in-memory candidate table for one role and
// applies transitions through a single entry point. All derived attributes
// (color, checklist seeding, auto-moves) are recomputed here, never trusted
// from input. On persistence failure the in-memory record reverts to its
// pre-command value.
type Board struct {
	roleID uuid.UUID
	store  Store
	logger *zap.Logger

	mu      sync.Mutex
	records map[uuid.UUID]*types.Candidate
}

// New builds a board over the given candidates. Unset columns are
// normalized to outreach on load.
func New(roleID uuid.UUID, store Store, logger *zap.Logger, candidates []types.Candidate) *Board {
	if logger == nil {
		logger = zap.NewNop()
	}
	records := make(map[uuid.UUID]*types.Candidate, len(candidates))
	for i := range candidates {
		rec := candidates[i].Clone()
		rec.Column = types.NormalizeColumn(rec.Column)
		records[rec.ID] = rec
	}
	return &Board{roleID: roleID, store: store, logger: logger, records: records}
}

// Candidate returns a copy of one record, or nil when absent.
func (b *Board) Candidate(id uuid.UUID) *types.Candidate {
	b.mu.Lock()
	defer b.mu.Unlock()
	rec, ok := b.records[id]
	if !ok {
		return nil
	}
	return rec.Clone()
}

// Candidates returns copies of all records in display order.
func (b *Board) Candidates() []types.Candidate {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]types.Candidate, 0, len(b.records))
	for _, rec := range b.records {
		out = append(out, *rec.Clone())
	}
	types.SortCandidates(out)
	return out
}

// Apply runs one command against the board. It returns the resulting
// record and whether anything changed. Validation rejections and no-ops
// never reach the store.
func (b *Board) Apply(ctx context.Context, cmd Command) (*types.Candidate, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	rec, ok := b.records[cmd.Candidate()]
	if !ok {
		return nil, false, &ErrCandidateNotFound{CandidateID: cmd.Candidate()}
	}

	switch c := cmd.(type) {
	case Move:
		return b.applyMove(ctx, rec, c)
	case SetFlag:
		return b.applySetFlag(ctx, rec, c)
	case ToggleChecklist:
		items := types.Checklist{c.Key: !rec.Checklist[c.Key]}
		return b.applySetChecklist(ctx, rec, SetChecklist{CandidateID: c.CandidateID, Items: items})
	case SetChecklist:
		return b.applySetChecklist(ctx, rec, c)
	case MarkOutreachSent:
		return b.applyMarkOutreachSent(ctx, rec, c)
	default:
		return nil, false, fmt.Errorf("unsupported command %T", cmd)
	}
}

func (b *Board) applyMove(ctx context.Context, rec *types.Candidate, cmd Move) (*types.Candidate, bool, error) {
	if !cmd.To.Valid() {
		return nil, false, &ErrInvalidColumn{Column: cmd.To}
	}
	if cmd.To == types.NormalizeColumn(rec.Column) {
		// Idempotent short-circuit: no request, no color recompute.
		return rec.Clone(), false, nil
	}

	prev := rec.Clone()
	rec.Column = cmd.To
	rec.Color = types.DeriveColor(rec.Column, rec.SentToClient, rec.NotPushingForward)

	patch := types.StatusPatch{Column: &rec.Column, Color: &rec.Color}
	if cmd.To == types.ColumnFollowUp && len(rec.Checklist) == 0 {
		// First arrival in follow-up seeds the checklist.
		rec.Checklist = types.NewChecklist()
		patch.Checklist = rec.Checklist.Clone()
	}

	if err := b.store.UpdateCandidateStatus(ctx, b.roleID, rec.ID, patch); err != nil {
		b.revert(rec.ID, prev)
		return nil, false, fmt.Errorf("move to %s not applied: %w", cmd.To, err)
	}
	b.logger.Info("candidate moved",
		zap.String("candidate_id", rec.ID.String()),
		zap.String("from", string(prev.Column)),
		zap.String("to", string(cmd.To)))
	return rec.Clone(), true, nil
}

func (b *Board) applySetFlag(ctx context.Context, rec *types.Candidate, cmd SetFlag) (*types.Candidate, bool, error) {
	already := (cmd.Flag == FlagNotPushingForward && rec.NotPushingForward) ||
		(cmd.Flag == FlagSentToClient && rec.SentToClient)
	if already {
		return rec.Clone(), false, nil
	}

	prev := rec.Clone()
	truth := true
	patch := types.StatusPatch{}
	switch cmd.Flag {
	case FlagNotPushingForward:
		rec.NotPushingForward = true
		patch.NotPushingForward = &truth
	case FlagSentToClient:
		rec.SentToClient = true
		patch.SentToClient = &truth
	default:
		return nil, false, fmt.Errorf("unsupported flag %q", cmd.Flag)
	}
	rec.Color = types.DeriveColor(rec.Column, rec.SentToClient, rec.NotPushingForward)
	patch.Color = &rec.Color

	if err := b.store.UpdateCandidateStatus(ctx, b.roleID, rec.ID, patch); err != nil {
		b.revert(rec.ID, prev)
		return nil, false, fmt.Errorf("flag %s not applied: %w", cmd.Flag, err)
	}
	b.logger.Info("candidate flagged",
		zap.String("candidate_id", rec.ID.String()),
		zap.String("flag", string(cmd.Flag)))
	return rec.Clone(), true, nil
}

func (b *Board) applySetChecklist(ctx context.Context, rec *types.Candidate, cmd SetChecklist) (*types.Candidate, bool, error) {
	for k := range cmd.Items {
		if !types.KnownChecklistKey(k) {
			return nil, false, &ErrUnknownChecklistKey{Key: k}
		}
	}

	prev := rec.Clone()
	if rec.Checklist == nil {
		rec.Checklist = types.NewChecklist()
	}
	changed := false
	for k, v := range cmd.Items {
		if rec.Checklist[k] != v {
			rec.Checklist[k] = v
			changed = true
		}
	}
	if !changed {
		return rec.Clone(), false, nil
	}

	// Completing the screening interview promotes the candidate to the
	// evaluation column.
	patch := types.StatusPatch{Checklist: rec.Checklist.Clone()}
	if rec.Checklist[types.KeyScreeningInterviewCompleted] && rec.Column != types.ColumnEvaluation {
		rec.Column = types.ColumnEvaluation
		rec.Color = types.DeriveColor(rec.Column, rec.SentToClient, rec.NotPushingForward)
		patch.Column = &rec.Column
		patch.Color = &rec.Color
	}

	if err := b.store.UpdateCandidateStatus(ctx, b.roleID, rec.ID, patch); err != nil {
		// Optimistic update: roll the toggle back to its prior value.
		b.revert(rec.ID, prev)
		return nil, false, fmt.Errorf("checklist change not applied: %w", err)
	}
	return rec.Clone(), true, nil
}

func (b *Board) applyMarkOutreachSent(ctx context.Context, rec *types.Candidate, cmd MarkOutreachSent) (*types.Candidate, bool, error) {
	if rec.OutreachSent && rec.OutreachMessage == cmd.Message {
		return rec.Clone(), false, nil
	}

	prev := rec.Clone()
	rec.OutreachSent = true
	rec.OutreachMessage = cmd.Message
	truth := true
	patch := types.StatusPatch{OutreachSent: &truth, OutreachMessage: &rec.OutreachMessage}

	if err := b.store.UpdateCandidateStatus(ctx, b.roleID, rec.ID, patch); err != nil {
		b.revert(rec.ID, prev)
		return nil, false, fmt.Errorf("outreach mark not applied: %w", err)
	}
	return rec.Clone(), true, nil
}

// revert restores a record to its pre-command value after a failed persist.
func (b *Board) revert(id uuid.UUID, prev *types.Candidate) {
	b.records[id] = prev
}
