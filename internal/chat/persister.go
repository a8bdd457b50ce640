// Package chat buffers evaluation-chat transcripts in memory and writes
// them to storage on a trailing debounce, so that rapid message edits do
// not hammer the database while no message is ever lost to a missed
// flush.
package chat

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gftan/agentic-recruiter/internal/types"
)

// DefaultFlushDelay is the trailing debounce window for transcript
// writes. Mutations arriving within the window collapse into one flush.
const DefaultFlushDelay = 400 * time.Millisecond

// Store is the persistence surface the persister writes through.
type Store interface {
	SaveEvaluationChat(ctx context.Context, roleID uuid.UUID, messages []types.Message) error
	DeleteEvaluationChat(ctx context.Context, roleID uuid.UUID) error
}

// Persister owns the in-memory transcript for one role and schedules
// its writes. All methods are safe for concurrent use.
type Persister struct {
	store  Store
	logger *zap.Logger
	delay  time.Duration

	mu       sync.Mutex
	roleID   uuid.UUID
	messages []types.Message
	timer    *time.Timer
	gen      uint64
}

// NewPersister creates a persister for one role's transcript. A delay
// of zero means DefaultFlushDelay.
func NewPersister(store Store, roleID uuid.UUID, logger *zap.Logger, delay time.Duration) *Persister {
	if logger == nil {
		logger = zap.NewNop()
	}
	if delay <= 0 {
		delay = DefaultFlushDelay
	}
	return &Persister{store: store, logger: logger, delay: delay, roleID: roleID}
}

// Messages returns a copy of the buffered transcript.
func (p *Persister) Messages() []types.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return types.CloneMessages(p.messages)
}

// Append adds one message to the transcript. User messages flush on the
// debounce; an assistant message flushes immediately so a generated
// reply is never lost to a pending timer.
func (p *Persister) Append(ctx context.Context, msg types.Message) error {
	p.mu.Lock()
	p.messages = append(p.messages, msg)
	if msg.Role == types.MessageRoleAssistant {
		snapshot := types.CloneMessages(p.messages)
		p.cancelPendingLocked()
		p.mu.Unlock()
		return p.write(ctx, snapshot)
	}
	p.scheduleLocked()
	p.mu.Unlock()
	return nil
}

// SetMessages replaces the transcript wholesale and schedules a flush.
func (p *Persister) SetMessages(msgs []types.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = types.CloneMessages(msgs)
	p.scheduleLocked()
}

// Flush writes the current transcript now, cancelling any pending
// debounced write.
func (p *Persister) Flush(ctx context.Context) error {
	p.mu.Lock()
	snapshot := types.CloneMessages(p.messages)
	p.cancelPendingLocked()
	p.mu.Unlock()
	return p.write(ctx, snapshot)
}

// Clear drops the transcript from memory and storage. The delete is
// synchronous and bypasses the debounce.
func (p *Persister) Clear(ctx context.Context) error {
	p.mu.Lock()
	p.messages = nil
	p.cancelPendingLocked()
	roleID := p.roleID
	p.mu.Unlock()
	return p.store.DeleteEvaluationChat(ctx, roleID)
}

// Stop cancels any pending flush without writing. Buffered messages
// not yet flushed are discarded; call Flush first for a durable stop.
func (p *Persister) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelPendingLocked()
}

// scheduleLocked arms the trailing debounce timer. The generation
// counter makes a superseded timer a no-op even if it already fired
// and is waiting on the mutex.
func (p *Persister) scheduleLocked() {
	p.cancelPendingLocked()
	p.gen++
	gen := p.gen
	p.timer = time.AfterFunc(p.delay, func() {
		p.mu.Lock()
		if gen != p.gen {
			p.mu.Unlock()
			return
		}
		snapshot := types.CloneMessages(p.messages)
		p.timer = nil
		p.mu.Unlock()
		if err := p.write(context.Background(), snapshot); err != nil {
			p.logger.Error("debounced chat flush failed",
				zap.String("role_id", p.roleID.String()),
				zap.Error(err))
		}
	})
}

func (p *Persister) cancelPendingLocked() {
	p.gen++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

func (p *Persister) write(ctx context.Context, msgs []types.Message) error {
	return p.store.SaveEvaluationChat(ctx, p.roleID, msgs)
}
