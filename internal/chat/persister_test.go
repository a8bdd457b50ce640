package chat

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gftan/agentic-recruiter/internal/types"
)

type fakeChatStore struct {
	mu      sync.Mutex
	saves   [][]types.Message
	deletes int
	saved   map[uuid.UUID][]types.Message
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{saved: make(map[uuid.UUID][]types.Message)}
}

func (s *fakeChatStore) SaveEvaluationChat(_ context.Context, roleID uuid.UUID, msgs []types.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves = append(s.saves, types.CloneMessages(msgs))
	s.saved[roleID] = types.CloneMessages(msgs)
	return nil
}

func (s *fakeChatStore) DeleteEvaluationChat(_ context.Context, roleID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes++
	delete(s.saved, roleID)
	return nil
}

func (s *fakeChatStore) GetEvaluationChat(_ context.Context, roleID uuid.UUID) ([]types.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return types.CloneMessages(s.saved[roleID]), nil
}

func (s *fakeChatStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saves)
}

func (s *fakeChatStore) lastSave() []types.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.saves) == 0 {
		return nil
	}
	return s.saves[len(s.saves)-1]
}

func userMsg(content string) types.Message {
	return types.Message{Role: types.MessageRoleUser, Content: content}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestRapidMutationsCollapseToOneFlush(t *testing.T) {
	store := newFakeChatStore()
	p := NewPersister(store, uuid.New(), nil, 50*time.Millisecond)
	defer p.Stop()

	for _, content := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, p.Append(context.Background(), userMsg(content)))
	}

	waitFor(t, func() bool { return store.saveCount() > 0 })
	// Allow a grace period for any stray extra timer.
	time.Sleep(120 * time.Millisecond)

	assert.Equal(t, 1, store.saveCount(), "five rapid mutations must collapse to one flush")
	last := store.lastSave()
	require.Len(t, last, 5)
	assert.Equal(t, "e", last[4].Content)
}

func TestAssistantMessageFlushesImmediately(t *testing.T) {
	store := newFakeChatStore()
	p := NewPersister(store, uuid.New(), nil, time.Hour)
	defer p.Stop()

	require.NoError(t, p.Append(context.Background(), userMsg("question")))
	assert.Equal(t, 0, store.saveCount(), "user message alone must wait for the debounce")

	reply := types.Message{Role: types.MessageRoleAssistant, Content: "answer"}
	require.NoError(t, p.Append(context.Background(), reply))

	require.Equal(t, 1, store.saveCount())
	last := store.lastSave()
	require.Len(t, last, 2)
	assert.Equal(t, "question", last[0].Content)
	assert.Equal(t, "answer", last[1].Content)
}

func TestFlushCancelsPendingTimer(t *testing.T) {
	store := newFakeChatStore()
	p := NewPersister(store, uuid.New(), nil, 50*time.Millisecond)
	defer p.Stop()

	require.NoError(t, p.Append(context.Background(), userMsg("a")))
	require.NoError(t, p.Flush(context.Background()))
	assert.Equal(t, 1, store.saveCount())

	// The debounced write superseded by Flush must never fire.
	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, 1, store.saveCount())
}

func TestStopDiscardsPendingFlush(t *testing.T) {
	store := newFakeChatStore()
	p := NewPersister(store, uuid.New(), nil, 50*time.Millisecond)

	require.NoError(t, p.Append(context.Background(), userMsg("a")))
	p.Stop()

	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, 0, store.saveCount())
}

func TestClearBypassesDebounce(t *testing.T) {
	store := newFakeChatStore()
	roleID := uuid.New()
	p := NewPersister(store, roleID, nil, 50*time.Millisecond)
	defer p.Stop()

	require.NoError(t, p.Append(context.Background(), userMsg("a")))
	require.NoError(t, p.Clear(context.Background()))

	assert.Equal(t, 1, store.deletes)
	assert.Empty(t, p.Messages())

	// Pending save from before the clear must not resurrect the chat.
	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, 0, store.saveCount())
}

func TestSetMessagesReplacesTranscript(t *testing.T) {
	store := newFakeChatStore()
	p := NewPersister(store, uuid.New(), nil, 20*time.Millisecond)
	defer p.Stop()

	require.NoError(t, p.Append(context.Background(), userMsg("old")))
	p.SetMessages([]types.Message{userMsg("new")})

	waitFor(t, func() bool { return store.saveCount() > 0 })
	last := store.lastSave()
	require.Len(t, last, 1)
	assert.Equal(t, "new", last[0].Content)
}

func TestManagerSeedsFromStorage(t *testing.T) {
	store := newFakeChatStore()
	roleID := uuid.New()
	store.saved[roleID] = []types.Message{userMsg("saved earlier")}

	m := NewManager(store, nil, time.Hour)
	defer m.Stop()

	p, err := m.Persister(context.Background(), roleID)
	require.NoError(t, err)
	msgs := p.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "saved earlier", msgs[0].Content)

	// Same role returns the same persister.
	p2, err := m.Persister(context.Background(), roleID)
	require.NoError(t, err)
	assert.Same(t, p, p2)
}

func TestManagerReleaseFlushes(t *testing.T) {
	store := newFakeChatStore()
	roleID := uuid.New()
	m := NewManager(store, nil, time.Hour)

	p, err := m.Persister(context.Background(), roleID)
	require.NoError(t, err)
	require.NoError(t, p.Append(context.Background(), userMsg("pending")))

	require.NoError(t, m.Release(context.Background(), roleID))
	require.Equal(t, 1, store.saveCount())
	assert.Equal(t, "pending", store.lastSave()[0].Content)
}
