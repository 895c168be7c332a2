package types

// Clip is one soundboard entry: playable audio plus its board metadata.
// JSON tags match the remote store's wire format.
type Clip struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	SourceRef       string   `json:"fileUrl"`
	DurationSeconds float64  `json:"duration"`
	Volume          float64  `json:"volume"`
	Hotkey          string   `json:"hotkey,omitempty"`
	TrimStart       *float64 `json:"trimStart,omitempty"`
	TrimEnd         *float64 `json:"trimEnd,omitempty"`
	Emoji           string   `json:"emoji,omitempty"`
	IsBuiltIn       bool     `json:"isDefault"`
	StorageKey      string   `json:"fileName,omitempty"`
}

// HasTrim reports whether the clip carries a trim window. TrimStart and
// TrimEnd are always both present or both absent.
func (c Clip) HasTrim() bool {
	return c.TrimStart != nil && c.TrimEnd != nil
}

// StartTime is where playback of this clip begins: the trim start when a
// trim window is set, otherwise zero.
func (c Clip) StartTime() float64 {
	if c.TrimStart != nil {
		return *c.TrimStart
	}
	return 0
}

// EndTime is where playback of this clip stops: the trim end when a trim
// window is set, otherwise full duration.
func (c Clip) EndTime() float64 {
	if c.TrimEnd != nil {
		return *c.TrimEnd
	}
	return c.DurationSeconds
}

// Float returns a pointer to v, for building optional trim values.
func Float(v float64) *float64 {
	return &v
}

// Settings holds the process-wide persisted preferences.
type Settings struct {
	MasterVolume float64 `json:"masterVolume"`
	DarkMode     bool    `json:"isDarkMode"`
}

// DefaultSettings are used when the remote store has nothing saved yet.
func DefaultSettings() Settings {
	return Settings{MasterVolume: 0.5, DarkMode: true}
}

// StorageUsage mirrors the remote quota accounting. It is always fetched,
// never computed locally.
type StorageUsage struct {
	CurrentBytes int64   `json:"currentUsage"`
	MaxBytes     int64   `json:"maxStorage"`
	UsagePercent float64 `json:"usagePercent"`
}

// PlayTrigger tags how a playback was started, for analytics.
type PlayTrigger int

const (
	TriggerClick PlayTrigger = iota
	TriggerHotkey
)

func (t PlayTrigger) String() string {
	if t == TriggerHotkey {
		return "hotkey"
	}
	return "click"
}

// PlayState is the per-clip ephemeral playback state.
type PlayState int

const (
	Idle PlayState = iota
	Playing
	Paused
)

func (s PlayState) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "idle"
	}
}

// ViewMode selects which top-level screen the application renders.
type ViewMode int

const (
	GridView ViewMode = iota
	TrimView
	SettingsView
	UploadView
	HelpView
)
