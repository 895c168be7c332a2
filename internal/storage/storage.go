// Package storage keeps a local snapshot of the last successfully loaded
// board, so a signed-in user who starts offline still sees their sounds.
// The remote store stays authoritative; the snapshot is never synced back.
package storage

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"

	"soundeck/internal/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const snapshotName = "board.json.gz"

// Snapshot is the persisted board state.
type Snapshot struct {
	Settings types.Settings `json:"settings"`
	Clips    []types.Clip   `json:"clips"`
	SavedAt  time.Time      `json:"savedAt"`
}

// Save writes the snapshot into dir, creating it if needed.
func Save(dir string, settings types.Settings, clips []types.Clip) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(dir, snapshotName))
	if err != nil {
		return err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	snap := Snapshot{Settings: settings, Clips: clips, SavedAt: time.Now()}
	if err := json.NewEncoder(gz).Encode(&snap); err != nil {
		gz.Close()
		return err
	}
	return gz.Close()
}

// Load reads the snapshot from dir.
func Load(dir string) (*Snapshot, error) {
	f, err := os.Open(filepath.Join(dir, snapshotName))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer gz.Close()

	var snap Snapshot
	if err := json.NewDecoder(gz).Decode(&snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
