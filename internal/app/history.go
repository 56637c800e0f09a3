package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HistoryMessage is one persisted conversation turn.
type HistoryMessage struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	Time    time.Time `json:"time"`
}

// SessionRecord is one conversation on disk.
type SessionRecord struct {
	ID        string           `json:"id"`
	WorkDir   string           `json:"work_dir"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Messages  []HistoryMessage `json:"messages"`
}

// HistoryStore persists conversations as one JSON file per session under
// <root>/sessions/<id>.json.
type HistoryStore struct {
	Root string
}

// DefaultDataRoot prefers the XDG data dir, then ~/.local/share, then the
// temp dir.
func DefaultDataRoot() string {
	if base := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); base != "" {
		return filepath.Join(base, "sara")
	}
	if base, err := os.UserHomeDir(); err == nil && base != "" {
		return filepath.Join(base, ".local", "share", "sara")
	}
	return filepath.Join(os.TempDir(), "sara")
}

func NewHistoryStore(root string) *HistoryStore {
	if strings.TrimSpace(root) == "" {
		root = DefaultDataRoot()
	}
	return &HistoryStore{Root: root}
}

func (s *HistoryStore) sessionsDir() string {
	return filepath.Join(s.Root, "sessions")
}

func (s *HistoryStore) sessionPath(id string) string {
	return filepath.Join(s.sessionsDir(), id+".json")
}

// Create starts a new session record for workDir.
func (s *HistoryStore) Create(workDir string) (*SessionRecord, error) {
	if err := os.MkdirAll(s.sessionsDir(), 0o755); err != nil {
		return nil, err
	}
	now := time.Now()
	rec := &SessionRecord{
		ID:        uuid.NewString(),
		WorkDir:   workDir,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Save(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Append records one turn and persists the whole session file.
func (s *HistoryStore) Append(rec *SessionRecord, role, content string) error {
	rec.Messages = append(rec.Messages, HistoryMessage{
		Role:    role,
		Content: content,
		Time:    time.Now(),
	})
	rec.UpdatedAt = time.Now()
	return s.Save(rec)
}

func (s *HistoryStore) Save(rec *SessionRecord) error {
	if err := os.MkdirAll(s.sessionsDir(), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.sessionPath(rec.ID), data, 0o644)
}

func (s *HistoryStore) Load(id string) (*SessionRecord, error) {
	data, err := os.ReadFile(s.sessionPath(id))
	if err != nil {
		return nil, err
	}
	var rec SessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns all stored sessions, most recently updated first.
func (s *HistoryStore) List() ([]*SessionRecord, error) {
	entries, err := os.ReadDir(s.sessionsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []*SessionRecord
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		rec, err := s.Load(strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}
