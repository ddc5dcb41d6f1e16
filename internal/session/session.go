package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const maxHistory = 100

// FileState stores the last known position within a single file.
type FileState struct {
	CursorRow int `json:"cursor_row"`
	CursorCol int `json:"cursor_col"`
	ScrollRow int `json:"scroll_row"`
}

// State is the persisted editor session: per-file positions and the
// command-prompt history, most recent entry last.
type State struct {
	Files     map[string]FileState `json:"files"`
	History   []string             `json:"history,omitempty"`
	LastSaved time.Time            `json:"last_saved"`
}

// Store handles session persistence. Everything is best-effort: a
// missing or corrupt state file just means starting fresh.
type Store struct {
	state State
	path  string
	dirty bool
}

func Open() (*Store, error) {
	path, err := statePath()
	if err != nil {
		return nil, err
	}
	s := &Store{
		state: State{Files: make(map[string]FileState)},
		path:  path,
	}
	s.load()
	return s, nil
}

func statePath() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	dir := filepath.Join(stateDir, "quecto")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.json"), nil
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return
	}
	if state.Files == nil {
		state.Files = make(map[string]FileState)
	}
	s.state = state
}

// Save persists the session to disk if anything changed.
func (s *Store) Save() error {
	if !s.dirty {
		return nil
	}
	s.state.LastSaved = time.Now()
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// FileState looks up the stored position for path. Paths are keyed in
// absolute form so the same file matches regardless of the cwd.
func (s *Store) FileState(path string) (FileState, bool) {
	fs, ok := s.state.Files[canonical(path)]
	return fs, ok
}

func (s *Store) SetFileState(path string, fs FileState) {
	s.state.Files[canonical(path)] = fs
	s.dirty = true
}

// History returns the persisted command history, oldest first.
func (s *Store) History() []string {
	return s.state.History
}

// SetHistory replaces the command history, keeping only the most
// recent maxHistory entries.
func (s *Store) SetHistory(history []string) {
	if len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}
	s.state.History = append([]string(nil), history...)
	s.dirty = true
}

func canonical(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
