// Package store holds the in-memory conversation state.
//
// All mutations go through a single mutex and are written through to the
// repository as a full snapshot before the lock is released, so the stored
// blob always reflects the latest mutation. Operations addressing a thread or
// message that no longer exists are no-ops: streaming callbacks may arrive
// after the user deleted the thread they target.
package store

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"kenotrix/backend/internal/metrics"
	"kenotrix/backend/internal/model"
	"kenotrix/backend/internal/repository"
)

type Store struct {
	mu      sync.Mutex
	repo    repository.ThreadRepository
	threads []*model.Thread // newest first
	active  string

	// streaming holds the ids of model messages that are still receiving chunks.
	streaming map[string]struct{}

	now   func() time.Time
	newID func() string
}

// Option customises a Store.
type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the UUIDv7 generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

func New(repo repository.ThreadRepository, opts ...Option) *Store {
	s := &Store{
		repo:      repo,
		streaming: make(map[string]struct{}),
		now:       time.Now,
		newID:     newID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newID returns a time-ordered unique id.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Load replaces the in-memory state with the repository contents.
func (s *Store) Load(ctx context.Context) error {
	threads, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.threads = make([]*model.Thread, 0, len(threads))
	for i := range threads {
		t := threads[i].Clone()
		s.threads = append(s.threads, &t)
	}
	s.active = ""
	s.streaming = make(map[string]struct{})
	return nil
}

// Threads returns a snapshot of all threads, newest first.
func (s *Store) Threads() []model.Thread {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Thread returns a snapshot of one thread.
func (s *Store) Thread(threadID string) (model.Thread, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, t := s.find(threadID)
	if t == nil {
		return model.Thread{}, false
	}
	return t.Clone(), true
}

// ActiveThreadID returns the selected thread, or "" when nothing is selected.
func (s *Store) ActiveThreadID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// SetActiveThread selects an existing thread; "" clears the selection.
// It reports whether the selection changed to the requested value.
func (s *Store) SetActiveThread(threadID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if threadID != "" {
		if _, t := s.find(threadID); t == nil {
			return false
		}
	}
	s.active = threadID
	return true
}

// IsStreaming reports whether a model message is still receiving chunks.
func (s *Store) IsStreaming(messageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.streaming[messageID]
	return ok
}

// CreateThread inserts an empty thread at the front and selects it.
func (s *Store) CreateThread() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &model.Thread{
		ID:        s.newID(),
		Title:     model.DefaultThreadTitle,
		Messages:  []model.Message{},
		UpdatedAt: s.now().UnixMilli(),
	}
	s.threads = append([]*model.Thread{t}, s.threads...)
	s.active = t.ID
	s.persist()
	return t.ID
}

// AppendUserMessage appends a user turn. Blank text or an unknown thread
// yields "" and leaves the state untouched.
func (s *Store) AppendUserMessage(threadID, text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, t := s.find(threadID)
	if t == nil {
		return ""
	}
	now := s.now().UnixMilli()
	msg := model.Message{ID: s.newID(), Role: model.RoleUser, Content: text, Timestamp: now}
	t.Messages = append(t.Messages, msg)
	t.UpdatedAt = now
	s.persist()
	return msg.ID
}

// BeginAssistantReply appends an empty model message that becomes the target
// of AppendChunk until FinishReply is called.
func (s *Store) BeginAssistantReply(threadID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, t := s.find(threadID)
	if t == nil {
		return ""
	}
	now := s.now().UnixMilli()
	msg := model.Message{ID: s.newID(), Role: model.RoleModel, Content: "", Timestamp: now}
	t.Messages = append(t.Messages, msg)
	t.UpdatedAt = now
	s.streaming[msg.ID] = struct{}{}
	s.persist()
	return msg.ID
}

// AppendChunk concatenates text onto a model message that is still streaming.
func (s *Store) AppendChunk(threadID, messageID, text string) {
	if text == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.streaming[messageID]; !ok {
		return
	}
	t, m := s.findMessage(threadID, messageID)
	if m == nil || m.Role != model.RoleModel {
		return
	}
	m.Content += text
	t.UpdatedAt = s.now().UnixMilli()
	s.persist()
}

// FinishReply freezes the content of a model message.
func (s *Store) FinishReply(threadID, messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.streaming, messageID)
}

// AttachSources sets the citation list of a model message. Entries without a
// URI are dropped and URIs are deduplicated keeping the first occurrence. A
// later call replaces the list.
func (s *Store) AttachSources(threadID, messageID string, sources []model.Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, m := s.findMessage(threadID, messageID)
	if m == nil || m.Role != model.RoleModel {
		return
	}
	m.Sources = DedupSources(sources)
	t.UpdatedAt = s.now().UnixMilli()
	s.persist()
}

// SetTitle overwrites the display title of a thread.
func (s *Store) SetTitle(threadID, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, t := s.find(threadID)
	if t == nil {
		return
	}
	t.Title = title
	t.UpdatedAt = s.now().UnixMilli()
	s.persist()
}

// DeleteThread removes a thread. Deleting the active thread clears the
// selection; it is not moved to another thread.
func (s *Store) DeleteThread(threadID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, t := s.find(threadID)
	if t == nil {
		return
	}
	for _, m := range t.Messages {
		delete(s.streaming, m.ID)
	}
	s.threads = append(s.threads[:i], s.threads[i+1:]...)
	if s.active == threadID {
		s.active = ""
	}
	s.persist()
}

// DedupSources drops sources without a URI and repeated URIs, keeping first occurrences.
func DedupSources(sources []model.Source) []model.Source {
	if len(sources) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(sources))
	out := make([]model.Source, 0, len(sources))
	for _, src := range sources {
		if src.URI == "" {
			continue
		}
		if _, dup := seen[src.URI]; dup {
			continue
		}
		seen[src.URI] = struct{}{}
		if src.Title == "" {
			src.Title = model.DefaultSourceTitle
		}
		out = append(out, src)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (s *Store) find(threadID string) (int, *model.Thread) {
	for i, t := range s.threads {
		if t.ID == threadID {
			return i, t
		}
	}
	return -1, nil
}

func (s *Store) findMessage(threadID, messageID string) (*model.Thread, *model.Message) {
	_, t := s.find(threadID)
	if t == nil {
		return nil, nil
	}
	for i := range t.Messages {
		if t.Messages[i].ID == messageID {
			return t, &t.Messages[i]
		}
	}
	return nil, nil
}

func (s *Store) snapshot() []model.Thread {
	out := make([]model.Thread, len(s.threads))
	for i, t := range s.threads {
		out[i] = t.Clone()
	}
	return out
}

// persist writes the whole collection through to the repository. Callers hold s.mu.
func (s *Store) persist() {
	if err := s.repo.Save(context.Background(), s.snapshot()); err != nil {
		metrics.SnapshotWrites.WithLabelValues(metrics.OutcomeFailed).Inc()
		slog.Warn("Failed to persist threads", "error", err)
		return
	}
	metrics.SnapshotWrites.WithLabelValues(metrics.OutcomeOK).Inc()
}
