package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soundeck/internal/analytics"
	"soundeck/internal/hotkeys"
	"soundeck/internal/model"
	"soundeck/internal/player"
	"soundeck/internal/registry"
	"soundeck/internal/trim"
	"soundeck/internal/types"
)

type stubBackend struct{ dur float64 }

func (b *stubBackend) Play()              {}
func (b *stubBackend) Pause()             {}
func (b *stubBackend) Seek(float64) error { return nil }
func (b *stubBackend) Position() float64  { return 0 }
func (b *stubBackend) Duration() float64  { return b.dur }
func (b *stubBackend) SetGain(float64)    {}
func (b *stubBackend) Close() error       { return nil }

type nopRecorder struct{}

func (nopRecorder) Record(analytics.Event) {}

func testModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.New(model.Options{
		Board: registry.NewBoard(nil),
		Pool: player.NewPool(func(clip types.Clip) (player.Backend, error) {
			return &stubBackend{dur: clip.DurationSeconds}, nil
		}, 0.5, nopRecorder{}),
		Router:   hotkeys.NewRouter(),
		Recorder: nopRecorder{},
		Guest:    true,
		Lang:     "en",
	})
	m.TermWidth = 100
	m.TermHeight = 30
	m.ApplyLoad(types.DefaultSettings(), []types.Clip{
		{ID: "a", Title: "Airhorn", Emoji: "📣", Volume: 0.5, DurationSeconds: 3, Hotkey: "KeyA"},
		{ID: "b", Title: "A very long clip title that will not fit", Volume: 0.5, DurationSeconds: 5},
	})
	return m
}

func TestPadCell(t *testing.T) {
	t.Run("pads short strings", func(t *testing.T) {
		out := padCell("abc", 10)
		assert.Equal(t, 10, lipgloss.Width(out))
		assert.True(t, strings.HasPrefix(out, "abc"))
	})

	t.Run("truncates long strings with an ellipsis", func(t *testing.T) {
		out := padCell("abcdefghijklmnop", 8)
		assert.Equal(t, 8, lipgloss.Width(out))
		assert.True(t, strings.HasSuffix(strings.TrimRight(out, " "), "…"))
	})

	t.Run("handles wide runes", func(t *testing.T) {
		out := padCell("📣 horn", 10)
		assert.Equal(t, 10, lipgloss.Width(out))
	})
}

func TestRenderGridView(t *testing.T) {
	m := testModel(t)
	out := RenderGridView(m)

	assert.Contains(t, out, "Soundeck")
	assert.Contains(t, out, "Airhorn")
	assert.Contains(t, out, "guest")
	assert.Contains(t, out, "A")

	t.Run("cards keep their geometry", func(t *testing.T) {
		// the first card's head line must start at the configured column
		lines := strings.Split(out, "\n")
		require.True(t, len(lines) > 4)
	})

	t.Run("empty board invites an upload", func(t *testing.T) {
		m := testModel(t)
		m.Board.Load(nil)
		out := RenderGridView(m)
		assert.Contains(t, out, "Press u to add one")
	})
}

func TestRenderTrimView(t *testing.T) {
	m := testModel(t)
	clip := m.Clips()[0]
	m.OpenEditor(clip.ID)

	t.Run("loading state before the editor lands", func(t *testing.T) {
		out := RenderTrimView(m)
		assert.Contains(t, out, "Loading audio")
	})

	t.Run("renders waveform and ruler", func(t *testing.T) {
		env := make([]float64, 100)
		for i := range env {
			env[i] = 0.5
		}
		m.InstallEditor(clip.ID, trim.NewEditor(clip, 3.0, env, nil))
		out := RenderTrimView(m)
		assert.Contains(t, out, "Trim: Airhorn")
		assert.Contains(t, out, "Duration: 3.00s")
		assert.Contains(t, out, "0.00")
		assert.True(t, m.EditorCols > 0, "pointer mapping geometry recorded")
	})
}

func TestRenderSettingsView(t *testing.T) {
	m := testModel(t)
	m.SwitchView(types.SettingsView)
	out := RenderSettingsView(m)

	assert.Contains(t, out, "Master volume")
	assert.Contains(t, out, "Dark")
	assert.Contains(t, out, "Restore defaults")
	assert.Contains(t, out, "sign in first")
}

func TestRenderUploadView(t *testing.T) {
	m := testModel(t)
	m.SwitchView(types.UploadView)

	t.Run("empty directory", func(t *testing.T) {
		out := RenderUploadView(m)
		assert.Contains(t, out, "No audio files found")
	})

	t.Run("lists files", func(t *testing.T) {
		m.UploadFiles = []string{"horn.wav", "laugh.mp3"}
		out := RenderUploadView(m)
		assert.Contains(t, out, "horn.wav")
		assert.Contains(t, out, "laugh.mp3")
	})
}

func TestTimestampRuler(t *testing.T) {
	out := timestampRuler(60, 0, 3.0)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Len(t, []rune(lines[0]), 60)
	assert.Len(t, []rune(lines[1]), 60)
	assert.Contains(t, lines[0], "|")
	assert.Contains(t, lines[1], "0.00")

	t.Run("degenerate input", func(t *testing.T) {
		assert.Empty(t, timestampRuler(60, 1, 1))
	})
}

func TestBlockChars(t *testing.T) {
	grid := make([][]bool, 16)
	for i := range grid {
		grid[i] = make([]bool, 1)
	}

	t.Run("empty cell is blank", func(t *testing.T) {
		assert.Equal(t, " ", upperBlockChar(grid, 0, 0))
		assert.Equal(t, " ", lowerBlockChar(grid, 0, 1))
	})

	t.Run("full cell is solid", func(t *testing.T) {
		for y := 0; y < 16; y++ {
			grid[y][0] = true
		}
		assert.Equal(t, "█", upperBlockChar(grid, 0, 0))
		assert.Equal(t, "█", lowerBlockChar(grid, 0, 1))
	})

	t.Run("partial fill picks a fractional block", func(t *testing.T) {
		grid := make([][]bool, 16)
		for i := range grid {
			grid[i] = make([]bool, 1)
		}
		// bottom eighth of the lower cell
		grid[15][0] = true
		assert.Equal(t, "▁", lowerBlockChar(grid, 0, 1))
	})
}
