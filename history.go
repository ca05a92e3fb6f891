package shell

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// HistoryConfig holds history persistence settings.
//
// History always lives in memory for the duration of a session. When File is
// set, entries are loaded from it when the shell is created and written back
// by Close. File path supports multiple formats:
//   - Empty string: memory-only history (no persistence)
//   - Absolute path: "/home/user/.app_history"
//   - Home directory: "~/.app_history"
//   - Relative path: "./app_history" (converted to absolute)
//   - XDG compliant: use GetDefaultHistoryFile() for "~/.config/shell/history"
type HistoryConfig struct {
	Enabled     bool   // Enable/disable persistence
	File        string // File path for history persistence (empty = memory only)
	MaxFileSize int64  // Size cap in bytes for the file and each backup (default: 1MB)
	MaxBackups  int    // Maximum number of backup files to keep (default: 3)
}

// DefaultHistoryConfig returns a memory-only history configuration.
func DefaultHistoryConfig() *HistoryConfig {
	return &HistoryConfig{
		Enabled:     true,
		File:        "",
		MaxFileSize: 1024 * 1024, // 1MB
		MaxBackups:  3,
	}
}

// GetDefaultHistoryFile returns the default history file path following XDG Base Directory Specification.
// Returns ~/.config/shell/history or $XDG_CONFIG_HOME/shell/history if XDG_CONFIG_HOME is set.
func GetDefaultHistoryFile() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "shell", "history")
}

// History is the append-only list of completed lines plus the position of
// the current history browse.
//
// index ranges over [0, Len()]; Len() means no entry is being browsed.
// Entries never shrink or reorder.
type History struct {
	entries []string
	index   int
}

// NewHistory creates a history pre-populated with entries, oldest first.
func NewHistory(entries ...string) *History {
	h := &History{entries: append([]string{}, entries...)}
	h.index = len(h.entries)
	return h
}

// Append records line as the newest entry and resets the browse position.
func (h *History) Append(line string) {
	h.entries = append(h.entries, line)
	h.index = len(h.entries)
}

// Up moves one entry back and returns it. It reports false at the oldest entry.
func (h *History) Up() (string, bool) {
	if h.index == 0 {
		return "", false
	}
	h.index--
	return h.entries[h.index], true
}

// Down moves one entry forward and returns it. It reports false when already
// at the newest entry; it never moves onto the fresh-line position.
func (h *History) Down() (string, bool) {
	if len(h.entries) == 0 || h.index >= len(h.entries)-1 {
		return "", false
	}
	h.index++
	return h.entries[h.index], true
}

// Index returns the current browse position.
func (h *History) Index() int {
	return h.index
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []string {
	return append([]string{}, h.entries...)
}

// historyStore persists history entries to a file with size-based rotation.
//
// The file is written like a log: each save appends only the entries added
// since the last load or save. When an append would push the file past
// MaxFileSize the file is rotated into numbered backups first, so saving never
// grows the file past MaxFileSize. Rotation never touches the in-memory
// history.
type historyStore struct {
	config *HistoryConfig
	saved  int // number of leading entries already in the file
}

// newHistoryStore applies defaults to config and expands its file path.
func newHistoryStore(historyConfig *HistoryConfig) *historyStore {
	if historyConfig == nil {
		historyConfig = DefaultHistoryConfig()
	}
	config := *historyConfig
	if config.MaxFileSize <= 0 {
		config.MaxFileSize = 1024 * 1024 // 1MB default
	}
	if config.MaxBackups < 0 {
		config.MaxBackups = 3
	}

	// Expand and convert file path to absolute path if specified
	if config.File != "" {
		if absPath, err := expandHistoryPath(config.File); err == nil {
			config.File = absPath
		}
	}

	return &historyStore{config: &config}
}

func (s *historyStore) persistent() bool {
	return s.config.Enabled && s.config.File != ""
}

// load reads entries from the configured file. A missing file is not an error.
// Every line is one entry; empty lines are entries too.
func (s *historyStore) load() ([]string, error) {
	if !s.persistent() {
		return nil, nil
	}

	file, err := os.Open(s.config.File)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	var entries []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		entries = append(entries, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}
	s.saved = len(entries)
	return entries, nil
}

// save appends the entries not yet written to the configured file, rotating
// it first when the append would exceed MaxFileSize.
func (s *historyStore) save(entries []string) error {
	if !s.persistent() || s.saved >= len(entries) {
		return nil
	}

	pending := tailWithin(entries[s.saved:], s.config.MaxFileSize)

	size, err := fileSize(s.config.File)
	if err != nil {
		return fmt.Errorf("failed to stat history file: %w", err)
	}
	if size > 0 && size+encodedSize(pending) > s.config.MaxFileSize {
		if err := s.rotate(); err != nil {
			return fmt.Errorf("failed to rotate history file: %w", err)
		}
	}

	dir := filepath.Dir(s.config.File)
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	if err := appendEntries(s.config.File, pending); err != nil {
		return err
	}
	s.saved = len(entries)
	return nil
}

// rotate moves the history file into the numbered backups, dropping the
// oldest one. Without backups the file is simply removed.
func (s *historyStore) rotate() error {
	if s.config.MaxBackups <= 0 {
		return os.Remove(s.config.File)
	}

	// Remove the oldest backup if it exists
	oldestBackup := s.config.File + "." + strconv.Itoa(s.config.MaxBackups)
	if _, err := os.Stat(oldestBackup); err == nil {
		if err := os.Remove(oldestBackup); err != nil {
			return fmt.Errorf("failed to remove oldest backup: %w", err)
		}
	}

	// Shift existing backups
	for i := s.config.MaxBackups - 1; i >= 1; i-- {
		oldFile := s.config.File + "." + strconv.Itoa(i)
		newFile := s.config.File + "." + strconv.Itoa(i+1)

		if _, err := os.Stat(oldFile); err == nil {
			if err := os.Rename(oldFile, newFile); err != nil {
				return fmt.Errorf("failed to rotate backup %d: %w", i, err)
			}
		}
	}

	if err := os.Rename(s.config.File, s.config.File+".1"); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}
	return nil
}

// fileSize returns the size of path, or 0 when it does not exist.
func fileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	return info.Size(), nil
}

// encodedSize is the number of bytes entries take in the file.
func encodedSize(entries []string) int64 {
	var size int64
	for _, entry := range entries {
		size += int64(len(entry)) + 1
	}
	return size
}

// tailWithin returns the newest entries whose encoded size fits in limit.
func tailWithin(entries []string, limit int64) []string {
	for len(entries) > 0 && encodedSize(entries) > limit {
		entries = entries[1:]
	}
	return entries
}

func appendEntries(path string, entries []string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, entry := range entries {
		if _, err := fmt.Fprintln(w, entry); err != nil {
			return fmt.Errorf("failed to write history entry: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return nil
}

// expandHistoryPath expands and validates the history file path
// Supports:
// - Absolute paths: /home/user/.history
// - Home directory expansion: ~/.history or ~/config/.history
// - Relative paths: ./.history or config/.history (converted to absolute)
func expandHistoryPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to convert to absolute path: %w", err)
	}

	return absPath, nil
}
