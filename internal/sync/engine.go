// Package sync keeps a signed-in user's remote copy of settings and clips
// eventually consistent with local state, across running instances, without
// update loops.
//
// Each save target runs an explicit state machine:
//
//	Clean(snapshot) -> Dirty -> Saving -> Clean(snapshot')
//
// Settings snapshots compare by value; clip snapshots compare by board
// revision, which every genuine mutation bumps. A change equal to the clean
// snapshot is an echo of a load and schedules nothing.
package sync

import (
	"errors"
	"sync"
	"time"

	"soundeck/internal/broadcast"
	"soundeck/internal/logger"
	"soundeck/internal/session"
	"soundeck/internal/types"
)

// ErrNoSession means a load was attempted while signed out. Callers drop it
// silently; this path is reached opportunistically.
var ErrNoSession = errors.New("sync: no active session")

// DefaultDebounce is the quiet period before a save fires.
const DefaultDebounce = time.Second

// Store is the remote persistence surface the engine saves through.
type Store interface {
	GetSettings() (types.Settings, error)
	SaveSettings(types.Settings) error
	GetSounds() ([]types.Clip, error)
	SaveSounds([]types.Clip) error
}

// State is one save target's position in the machine.
type State int

const (
	Clean State = iota
	Dirty
	Saving
)

type settingsTrack struct {
	state   State
	clean   types.Settings
	pending types.Settings
	timer   *time.Timer
}

type clipsTrack struct {
	state State
	// rev is the board revision of the clean snapshot while Clean, and the
	// revision that becomes clean on save success otherwise.
	rev     uint64
	pending []types.Clip
	timer   *time.Timer
}

// Engine debounces saves for the two independent targets and handles the
// cross-instance reload protocol. Timer callbacks run on their own
// goroutines; all state is guarded by mu.
type Engine struct {
	mu       sync.Mutex
	store    Store
	sessions session.Source
	channel  broadcast.Channel
	debounce time.Duration

	settings settingsTrack
	clips    clipsTrack

	// OnSaveError surfaces a failed save once; the operation is considered
	// terminated and retries only on the next local mutation.
	OnSaveError func(target string, err error)
}

func NewEngine(store Store, sessions session.Source, channel broadcast.Channel, debounce time.Duration) *Engine {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Engine{
		store:    store,
		sessions: sessions,
		channel:  channel,
		debounce: debounce,
	}
}

// Load fetches remote settings and clips. It is gated on an active session:
// without one it returns ErrNoSession and the caller abandons silently.
func (e *Engine) Load() (types.Settings, []types.Clip, error) {
	if _, ok := e.sessions.Current(); !ok {
		logger.Debug("load skipped, no session")
		return types.Settings{}, nil, ErrNoSession
	}

	settings, err := e.store.GetSettings()
	if err != nil {
		return types.Settings{}, nil, err
	}
	clips, err := e.store.GetSounds()
	if err != nil {
		return types.Settings{}, nil, err
	}
	return settings, clips, nil
}

// MarkLoaded records the just-applied remote snapshot as the clean state for
// both targets. Called after the host stores loaded clips on its board;
// boardRev is the board revision produced by that load.
func (e *Engine) MarkLoaded(settings types.Settings, boardRev uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopTimerLocked(&e.settings.timer)
	e.stopTimerLocked(&e.clips.timer)
	e.settings = settingsTrack{state: Clean, clean: settings}
	e.clips = clipsTrack{state: Clean, rev: boardRev}
}

// SettingsChanged reports a local settings value. An echo of the clean
// snapshot schedules nothing; anything else (re)starts the debounce timer.
func (e *Engine) SettingsChanged(s types.Settings) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.settings.state == Clean && s == e.settings.clean {
		return
	}
	e.settings.pending = s
	e.settings.state = Dirty
	e.restartTimerLocked(&e.settings.timer, e.saveSettings)
}

// ClipsChanged reports a local clip sequence at a board revision. A revision
// equal to the clean snapshot's is an echo of the load.
func (e *Engine) ClipsChanged(clips []types.Clip, rev uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.clips.state == Clean && rev == e.clips.rev {
		return
	}
	e.clips.pending = clips
	e.clips.rev = rev
	e.clips.state = Dirty
	e.restartTimerLocked(&e.clips.timer, e.saveClips)
}

// HasPendingWork reports whether either target has an unfired timer or an
// in-flight save. A received sync signal is dropped while this holds, so a
// reload cannot clobber unsaved local work.
func (e *Engine) HasPendingWork() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings.state != Clean || e.clips.state != Clean
}

// ShouldReload decides what to do with a received sync signal: reload when
// both targets are clean, drop otherwise. Duplicate signals are harmless.
func (e *Engine) ShouldReload() bool {
	if e.HasPendingWork() {
		logger.Debug("sync signal dropped, local work pending")
		return false
	}
	return true
}

// Broadcast notifies other instances after a direct save path (deletion,
// reset) that bypasses the debounced targets.
func (e *Engine) Broadcast() {
	if e.channel != nil {
		e.channel.Notify()
	}
}

// Close cancels pending timers. In-flight saves finish on their own.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopTimerLocked(&e.settings.timer)
	e.stopTimerLocked(&e.clips.timer)
}

func (e *Engine) saveSettings() {
	e.mu.Lock()
	if e.settings.state != Dirty {
		e.mu.Unlock()
		return
	}
	payload := e.settings.pending
	e.settings.state = Saving
	e.mu.Unlock()

	err := e.store.SaveSettings(payload)

	e.mu.Lock()
	if err != nil {
		logger.Error("saving settings", logger.ErrorField(err))
		// stay dirty with no timer; the next mutation reschedules
		e.settings.state = Dirty
		e.mu.Unlock()
		if e.OnSaveError != nil {
			e.OnSaveError("settings", err)
		}
		return
	}
	if e.settings.state == Saving {
		e.settings.state = Clean
		e.settings.clean = payload
	}
	e.mu.Unlock()

	logger.Debug("settings saved")
	e.Broadcast()
}

func (e *Engine) saveClips() {
	e.mu.Lock()
	if e.clips.state != Dirty {
		e.mu.Unlock()
		return
	}
	payload := e.clips.pending
	rev := e.clips.rev
	e.clips.state = Saving
	e.mu.Unlock()

	err := e.store.SaveSounds(payload)

	e.mu.Lock()
	if err != nil {
		logger.Error("saving clips", logger.ErrorField(err))
		e.clips.state = Dirty
		e.mu.Unlock()
		if e.OnSaveError != nil {
			e.OnSaveError("clips", err)
		}
		return
	}
	if e.clips.state == Saving {
		e.clips.state = Clean
		e.clips.rev = rev
	}
	e.mu.Unlock()

	logger.Debug("clips saved", logger.Int("count", len(payload)))
	e.Broadcast()
}

// restartTimerLocked implements the trailing-edge debounce: a new request
// cancels and replaces any pending one for the same target.
func (e *Engine) restartTimerLocked(timer **time.Timer, fire func()) {
	if *timer != nil {
		(*timer).Stop()
	}
	*timer = time.AfterFunc(e.debounce, fire)
}

func (e *Engine) stopTimerLocked(timer **time.Timer) {
	if *timer != nil {
		(*timer).Stop()
		*timer = nil
	}
}
