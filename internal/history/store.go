package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"treescope/internal/domain"
)

const (
	storeVersion = 1
	maxSummaries = 50
	dirName      = "treescope"
	fileName     = "history.json"
)

// Summary is what survives a scan for the history view: totals only, never
// the tree itself.
type Summary struct {
	RootPath     string              `json:"rootPath"`
	Strategy     domain.SizeStrategy `json:"strategy"`
	TotalBytes   int64               `json:"totalBytes"`
	ItemCount    int64               `json:"itemCount"`
	SkippedCount int64               `json:"skippedCount"`
	DurationMS   int64               `json:"durationMs"`
	CompletedAt  time.Time           `json:"completedAt"`
}

type storeFile struct {
	Version int       `json:"version"`
	Entries []Summary `json:"entries"`
}

type Store struct {
	path string
}

func NewStore() (*Store, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}
	return &Store{path: filepath.Join(base, dirName, fileName)}, nil
}

// NewStoreAt uses an explicit file path instead of the user cache dir.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

func (store *Store) List() ([]Summary, error) {
	data, err := os.ReadFile(store.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var stored storeFile
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}
	if stored.Version != storeVersion {
		return nil, nil
	}
	return stored.Entries, nil
}

// Append adds a summary, newest first, keeping at most maxSummaries.
func (store *Store) Append(summary Summary) error {
	entries, err := store.List()
	if err != nil {
		return err
	}
	entries = append([]Summary{summary}, entries...)
	if len(entries) > maxSummaries {
		entries = entries[:maxSummaries]
	}
	data, err := json.Marshal(storeFile{Version: storeVersion, Entries: entries})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(store.path, data, 0o600)
}
