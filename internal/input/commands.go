// Package input turns terminal events into model mutations and schedules
// the asynchronous work (loads, uploads, remote deletes) as bubbletea
// commands.
package input

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"soundeck/internal/analytics"
	"soundeck/internal/api"
	"soundeck/internal/audio"
	"soundeck/internal/defaults"
	"soundeck/internal/logger"
	"soundeck/internal/model"
	"soundeck/internal/registry"
	"soundeck/internal/storage"
	syncengine "soundeck/internal/sync"
	"soundeck/internal/trim"
	"soundeck/internal/types"
)

// tickInterval drives playback progress sampling while anything plays.
const tickInterval = 50 * time.Millisecond

// TickMsg advances playback progress.
type TickMsg time.Time

// SyncSignalMsg is a cross-instance "remote state may have changed" signal,
// forwarded from the broadcast listener onto the event loop.
type SyncSignalMsg struct{}

// SessionExpiredMsg is sent once when the server rejects the credential.
type SessionExpiredMsg struct{}

// LoadedMsg carries a remote snapshot. Initial distinguishes startup from
// silent reloads triggered by sync signals.
type LoadedMsg struct {
	Settings types.Settings
	Clips    []types.Clip
	Initial  bool
	Err      error
}

// EnvelopesMsg carries decoded card envelopes, keyed by clip ID.
type EnvelopesMsg map[string][]float64

// EditorReadyMsg carries a decoded trim editor.
type EditorReadyMsg struct {
	ClipID string
	Editor *trim.Editor
}

// UploadListMsg carries the audio files found in the data directory.
type UploadListMsg struct {
	Files []string
	Err   error
}

// UploadedMsg carries the outcome of an upload.
type UploadedMsg struct {
	Clip types.Clip
	Err  error
}

// RemoteDeletedMsg carries the outcome of a remote sound deletion.
type RemoteDeletedMsg struct {
	ID  string
	Err error
}

// ResetDoneMsg carries the outcome of a reset to defaults.
type ResetDoneMsg struct{ Err error }

// AccountDeletedMsg carries the outcome of an account deletion.
type AccountDeletedMsg struct{ Err error }

// UsageMsg carries a storage quota snapshot.
type UsageMsg struct {
	Usage types.StorageUsage
	Err   error
}

// Tick schedules the next playback progress sample.
func Tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// HandleTick samples playback progress and keeps the loop alive only while
// something is actually playing.
func HandleTick(m *model.Model) tea.Cmd {
	m.Pool.Tick()
	if m.Pool.AnyPlaying() {
		return Tick()
	}
	return nil
}

// Load fetches the remote snapshot. Guest mode never gets here; the caller
// seeds defaults directly.
func Load(m *model.Model, initial bool) tea.Cmd {
	eng := m.Sync
	if eng == nil {
		return nil
	}
	dir := m.DataDir
	return func() tea.Msg {
		settings, clips, err := eng.Load()
		if err == nil {
			if serr := storage.Save(dir, settings, clips); serr != nil {
				logger.Debug("snapshot save failed", logger.ErrorField(serr))
			}
		}
		return LoadedMsg{Settings: settings, Clips: clips, Initial: initial, Err: err}
	}
}

// Envelopes decodes card envelopes for the given clips in the background.
// Clips whose audio cannot be decoded keep their placeholder.
func Envelopes(clips []types.Clip) tea.Cmd {
	snapshot := make([]types.Clip, len(clips))
	copy(snapshot, clips)
	return func() tea.Msg {
		out := make(map[string][]float64, len(snapshot))
		for _, clip := range snapshot {
			data, err := audio.Fetch(clip.SourceRef)
			if err != nil {
				logger.Debug("envelope fetch failed", logger.String("clip", clip.ID), logger.ErrorField(err))
				continue
			}
			env, err := audio.EnvelopeFromBytes(decodeName(clip), data, audio.CardBars)
			if err != nil {
				logger.Debug("envelope decode failed", logger.String("clip", clip.ID), logger.ErrorField(err))
				continue
			}
			out[clip.ID] = env
		}
		return EnvelopesMsg(out)
	}
}

// OpenEditor switches to the trim view and builds the editor off the event
// loop: the audio has to be fetched and decoded before editing can start.
func OpenEditor(m *model.Model, clip types.Clip) tea.Cmd {
	m.OpenEditor(clip.ID)
	return func() tea.Msg {
		data, err := audio.Fetch(clip.SourceRef)
		if err != nil {
			return EditorReadyMsg{
				ClipID: clip.ID,
				Editor: trim.NewEditor(clip, clip.DurationSeconds, nil, err),
			}
		}
		duration, err := audio.ProbeDuration(decodeName(clip), data)
		if err != nil || duration <= 0 {
			duration = clip.DurationSeconds
		}
		var env []float64
		var envErr error
		if localSource(clip.SourceRef) {
			// local files get the cheap min/max view data path
			env, envErr = audio.EnvelopeFromFile(clip.SourceRef, duration, audio.EditorSamples)
		}
		if env == nil {
			env, envErr = audio.EnvelopeFromBytes(decodeName(clip), data, audio.EditorSamples)
		}
		return EditorReadyMsg{
			ClipID: clip.ID,
			Editor: trim.NewEditor(clip, duration, env, envErr),
		}
	}
}

// ScanUploads lists the audio files in the data directory.
func ScanUploads(dir string) tea.Cmd {
	return func() tea.Msg {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return UploadListMsg{Err: err}
		}
		var files []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			switch strings.ToLower(filepath.Ext(e.Name())) {
			case ".wav", ".mp3", ".ogg", ".flac":
				files = append(files, e.Name())
			}
		}
		sort.Strings(files)
		return UploadListMsg{Files: files}
	}
}

// Upload reads, compresses, and uploads one file, then builds the new clip.
// In guest mode the file is used in place instead of being uploaded.
func Upload(m *model.Model, path string) tea.Cmd {
	client := m.Client
	return func() tea.Msg {
		name := filepath.Base(path)
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
		data, err := os.ReadFile(path)
		if err != nil {
			return UploadedMsg{Err: err}
		}

		data = audio.Compress(name, data)
		size := int64(len(data))

		clip := types.Clip{
			ID:        uuid.NewString(),
			Title:     strings.TrimSuffix(name, filepath.Ext(name)),
			SourceRef: path,
			Volume:    0.5,
		}
		if d, err := audio.ProbeDuration(name, data); err == nil {
			clip.DurationSeconds = d
		}

		if client == nil {
			return UploadedMsg{Clip: clip}
		}

		if size > api.MaxUploadBytes {
			logRecord(m, analytics.UploadFailed(ext, "file_too_large", size))
			return UploadedMsg{Err: api.ErrFileTooLarge}
		}
		result, err := client.Upload(name, data)
		if err != nil {
			logRecord(m, analytics.UploadFailed(ext, uploadErrorCode(err), size))
			return UploadedMsg{Err: err}
		}
		if result.ID != "" {
			clip.ID = result.ID
		}
		clip.SourceRef = result.FileURL
		clip.StorageKey = result.FileName
		logRecord(m, analytics.UploadSound(ext, size))
		return UploadedMsg{Clip: clip}
	}
}

// DeleteSelected removes the card under the cursor. User uploads are
// deleted remotely first; built-ins and guest clips come straight off the
// board.
func DeleteSelected(m *model.Model) tea.Cmd {
	clip, ok := m.SelectedClip()
	if !ok {
		return nil
	}
	if m.Client == nil || clip.IsBuiltIn || clip.StorageKey == "" {
		m.RemoveClip(clip.ID)
		return nil
	}
	client := m.Client
	id := clip.ID
	return func() tea.Msg {
		return RemoteDeletedMsg{ID: id, Err: client.DeleteSound(id)}
	}
}

// Reset restores the built-in board remotely, then locally.
func Reset(m *model.Model) tea.Cmd {
	if m.Client == nil {
		m.ApplyReset()
		return nil
	}
	client := m.Client
	return func() tea.Msg {
		return ResetDoneMsg{Err: client.ResetToDefaults()}
	}
}

// DeleteAccount removes the account and all its uploads.
func DeleteAccount(m *model.Model) tea.Cmd {
	if m.Client == nil {
		return nil
	}
	client := m.Client
	return func() tea.Msg {
		return AccountDeletedMsg{Err: client.DeleteAccount()}
	}
}

// FetchUsage refreshes the storage quota snapshot.
func FetchUsage(m *model.Model) tea.Cmd {
	if m.Client == nil {
		return nil
	}
	client := m.Client
	return func() tea.Msg {
		usage, err := client.GetStorageUsage()
		return UsageMsg{Usage: usage, Err: err}
	}
}

// Apply routes the asynchronous outcome messages back into the model.
func Apply(m *model.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case LoadedMsg:
		return applyLoaded(m, msg)

	case EnvelopesMsg:
		for id, env := range msg {
			m.SetEnvelope(id, env)
		}
		return nil

	case EditorReadyMsg:
		m.InstallEditor(msg.ClipID, msg.Editor)
		return nil

	case UploadListMsg:
		if msg.Err != nil {
			m.SetStatus(fmt.Sprintf("Cannot read %s: %v", m.DataDir, msg.Err))
			m.SwitchView(types.GridView)
			return nil
		}
		m.UploadFiles = msg.Files
		m.UploadCursor = 0
		return nil

	case UploadedMsg:
		return applyUploaded(m, msg)

	case RemoteDeletedMsg:
		if msg.Err != nil {
			m.SetStatus(fmt.Sprintf("Delete failed: %v", msg.Err))
			return nil
		}
		m.RemoveClip(msg.ID)
		m.SetStatus("Sound deleted")
		return FetchUsage(m)

	case ResetDoneMsg:
		if msg.Err != nil {
			m.SetStatus(fmt.Sprintf("Reset failed: %v", msg.Err))
			return nil
		}
		m.ApplyReset()
		if m.Sync != nil {
			m.Sync.Broadcast()
		}
		m.SetStatus("Restored default sounds")
		return tea.Batch(Envelopes(m.Clips()), FetchUsage(m))

	case AccountDeletedMsg:
		if msg.Err != nil {
			m.SetStatus(fmt.Sprintf("Account deletion failed: %v", msg.Err))
			return nil
		}
		m.Sessions.SignOut()
		m.Client = nil
		m.Sync = nil
		m.Guest = true
		m.Usage = nil
		m.LoadGuestDefaults()
		m.SwitchView(types.GridView)
		m.SetStatus("Account deleted")
		return Envelopes(m.Clips())

	case UsageMsg:
		if msg.Err == nil {
			usage := msg.Usage
			m.Usage = &usage
		}
		return nil

	case SessionExpiredMsg:
		if !m.SessionExpired {
			m.SessionExpired = true
			if m.Sessions != nil {
				m.Sessions.SignOut()
			}
			m.SetStatus("Session expired, sign in again")
		}
		return nil

	case SyncSignalMsg:
		if m.Sync == nil || !m.Sync.ShouldReload() {
			return nil
		}
		return Load(m, false)
	}

	return nil
}

func applyLoaded(m *model.Model, msg LoadedMsg) tea.Cmd {
	if msg.Err != nil {
		if errors.Is(msg.Err, syncengine.ErrNoSession) {
			if msg.Initial {
				m.Guest = true
				m.LoadGuestDefaults()
				return Envelopes(m.Clips())
			}
			return nil
		}
		logger.Warn("load failed", logger.ErrorField(msg.Err))
		if msg.Initial {
			// server unreachable: fall back to the last synced snapshot
			if snap, err := storage.Load(m.DataDir); err == nil {
				m.ApplyLoad(snap.Settings, snap.Clips)
				m.SetStatus("Offline, showing the last synced board")
				return Envelopes(m.Clips())
			}
			m.LoadGuestDefaults()
			m.SetStatus("Offline, using local defaults")
			return Envelopes(m.Clips())
		}
		return nil
	}

	clips := msg.Clips
	if len(clips) == 0 {
		clips = defaults.Clips(m.Lang)
	} else {
		clips = registry.RelocalizeDefaults(clips, defaults.Clips(m.Lang))
	}
	m.ApplyLoad(msg.Settings, clips)
	return tea.Batch(Envelopes(clips), FetchUsage(m))
}

func applyUploaded(m *model.Model, msg UploadedMsg) tea.Cmd {
	if msg.Err != nil {
		switch {
		case errors.Is(msg.Err, api.ErrFileTooLarge):
			m.SetStatus("File too large (max 5 MB)")
		case errors.Is(msg.Err, api.ErrStorageLimit):
			m.SetStatus("Storage limit reached, delete a sound first")
		default:
			m.SetStatus(fmt.Sprintf("Upload failed: %v", msg.Err))
		}
		return nil
	}
	m.AppendClip(msg.Clip)
	m.SwitchView(types.GridView)
	m.SetStatus(fmt.Sprintf("Added %q", msg.Clip.Title))
	return tea.Batch(Envelopes([]types.Clip{msg.Clip}), FetchUsage(m))
}

func uploadErrorCode(err error) string {
	switch {
	case errors.Is(err, api.ErrFileTooLarge):
		return "file_too_large"
	case errors.Is(err, api.ErrStorageLimit):
		return "storage_limit"
	case errors.Is(err, api.ErrSessionExpired):
		return "session_expired"
	default:
		return "upload_error"
	}
}

func logRecord(m *model.Model, e analytics.Event) {
	if m.Recorder != nil {
		m.Recorder.Record(e)
	}
}

func localSource(sourceRef string) bool {
	return !strings.HasPrefix(sourceRef, "http://") && !strings.HasPrefix(sourceRef, "https://")
}

func decodeName(clip types.Clip) string {
	if clip.StorageKey != "" {
		return clip.StorageKey
	}
	return filepath.Base(clip.SourceRef)
}
