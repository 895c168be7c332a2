package input

import (
	"errors"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"soundeck/internal/hotkeys"
	"soundeck/internal/keycode"
	"soundeck/internal/model"
	"soundeck/internal/registry"
	"soundeck/internal/types"
)

const volumeStep = 0.05

// HandleKey routes a keypress. Hotkey dispatch and capture outrank the
// per-view command keys, so a bound key plays its clip from any view.
func HandleKey(m *model.Model, msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}

	if m.Renaming {
		return handleRename(m, msg)
	}

	outcome := m.Router.HandleKey(msg, m.Clips())
	switch outcome.Kind {
	case hotkeys.Play:
		if c, ok := m.Pool.Get(outcome.ClipID); ok {
			c.TogglePlayStop(types.TriggerHotkey)
		}
		return Tick()

	case hotkeys.Captured:
		if err := m.CommitHotkey(outcome.ClipID, outcome.Code); err != nil {
			m.SetStatus(err.Error())
		} else {
			m.SetStatus("Hotkey set: " + keycode.Format(outcome.Code))
		}
		return nil

	case hotkeys.Invalid:
		m.SetStatus("That key cannot be a hotkey, try another")
		return nil

	case hotkeys.Conflict:
		var conflict *registry.HotkeyConflictError
		if errors.As(outcome.Err, &conflict) {
			m.SetStatus(fmt.Sprintf("%s is taken by %q", keycode.Format(conflict.Code), conflict.ClipTitle))
		} else {
			m.SetStatus("That key is already taken")
		}
		return nil

	case hotkeys.Cancelled:
		m.SetStatus("Hotkey capture cancelled")
		return nil
	}

	switch m.ViewMode {
	case types.TrimView:
		return handleTrimKey(m, msg)
	case types.SettingsView:
		return handleSettingsKey(m, msg)
	case types.UploadView:
		return handleUploadKey(m, msg)
	case types.HelpView:
		m.SwitchView(m.PreviousView)
		return nil
	default:
		return handleGridKey(m, msg)
	}
}

func handleGridKey(m *model.Model, msg tea.KeyMsg) tea.Cmd {
	cols := m.GridColumns()

	switch msg.Type {
	case tea.KeyLeft:
		if m.Cursor > 0 {
			m.Cursor--
		}
		return nil
	case tea.KeyRight:
		if m.Cursor < m.Board.Len()-1 {
			m.Cursor++
		}
		return nil
	case tea.KeyUp:
		if m.Cursor-cols >= 0 {
			m.Cursor -= cols
		}
		return nil
	case tea.KeyDown:
		if m.Cursor+cols < m.Board.Len() {
			m.Cursor += cols
		}
		return nil
	case tea.KeyEnter, tea.KeySpace:
		m.ToggleSelected()
		return Tick()
	case tea.KeyEsc:
		m.Pool.StopAll()
		m.SetStatus("All playback stopped")
		return nil
	}

	switch msg.String() {
	case "x":
		m.StopSelected()
	case "h":
		if clip, ok := m.SelectedClip(); ok {
			m.Router.BeginCapture(clip.ID)
			m.SetStatus("Press a key to bind, Esc to cancel")
		}
	case "t":
		if clip, ok := m.SelectedClip(); ok {
			return OpenEditor(m, clip)
		}
	case "r":
		m.BeginRename()
	case "d":
		return DeleteSelected(m)
	case "u":
		m.SwitchView(types.UploadView)
		return ScanUploads(m.DataDir)
	case "s":
		m.SwitchView(types.SettingsView)
	case "?":
		m.SwitchView(types.HelpView)
	case "+", "=":
		m.AdjustMasterVolume(volumeStep)
	case "-", "_":
		m.AdjustMasterVolume(-volumeStep)
	case "]":
		m.AdjustSelectedVolume(volumeStep)
	case "[":
		m.AdjustSelectedVolume(-volumeStep)
	case "q":
		return tea.Quit
	}
	return nil
}

func handleRename(m *model.Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.RenameSelected()
		m.Router.InputFocused = false
		return nil
	case tea.KeyEsc:
		m.CancelRename()
		return nil
	}
	var cmd tea.Cmd
	m.RenameInput, cmd = m.RenameInput.Update(msg)
	return cmd
}

func handleTrimKey(m *model.Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.CloseEditor(false)
		return nil
	case tea.KeyEnter:
		m.CloseEditor(true)
		return nil
	case tea.KeySpace:
		c, ok := m.Pool.Get(m.EditorClipID)
		if !ok {
			return nil
		}
		// space toggles: pause in place while playing, resume while paused,
		// and only a fresh start auditions the selection from its beginning
		if c.State() == types.Playing {
			c.TogglePlayPause()
			return nil
		}
		if c.State() == types.Idle && m.Editor != nil {
			if sel := m.Editor.Selection(); sel != nil {
				m.PreviewSelection(*sel)
				return Tick()
			}
		}
		c.TogglePlayPause()
		return Tick()
	}

	switch msg.String() {
	case "s":
		m.CloseEditor(true)
	case "c":
		if m.Editor != nil {
			m.Editor.Clear()
		}
	}
	return nil
}

// settings view rows
const (
	settingMasterVolume = iota
	settingDarkMode
	settingReset
	settingDeleteAccount
	settingCount
)

func handleSettingsKey(m *model.Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.ConfirmAction = ""
		m.SwitchView(types.GridView)
		return nil
	case tea.KeyUp:
		if m.SettingsCursor > 0 {
			m.SettingsCursor--
		}
		m.ConfirmAction = ""
		return nil
	case tea.KeyDown:
		if m.SettingsCursor < settingCount-1 {
			m.SettingsCursor++
		}
		m.ConfirmAction = ""
		return nil
	case tea.KeyLeft:
		switch m.SettingsCursor {
		case settingMasterVolume:
			m.AdjustMasterVolume(-volumeStep)
		case settingDarkMode:
			m.ToggleDarkMode()
		}
		return nil
	case tea.KeyRight:
		switch m.SettingsCursor {
		case settingMasterVolume:
			m.AdjustMasterVolume(volumeStep)
		case settingDarkMode:
			m.ToggleDarkMode()
		}
		return nil
	case tea.KeyEnter:
		return handleSettingsEnter(m)
	}

	if msg.String() == "s" {
		m.ConfirmAction = ""
		m.SwitchView(types.GridView)
	}
	return nil
}

// handleSettingsEnter arms destructive actions on the first press and runs
// them on the second.
func handleSettingsEnter(m *model.Model) tea.Cmd {
	switch m.SettingsCursor {
	case settingDarkMode:
		m.ToggleDarkMode()

	case settingReset:
		if m.ConfirmAction != "reset" {
			m.ConfirmAction = "reset"
			m.SetStatus("Press enter again to restore the default sounds")
			return nil
		}
		m.ConfirmAction = ""
		return Reset(m)

	case settingDeleteAccount:
		if m.Guest {
			return nil
		}
		if m.ConfirmAction != "delete-account" {
			m.ConfirmAction = "delete-account"
			m.SetStatus("Press enter again to delete your account and all uploads")
			return nil
		}
		m.ConfirmAction = ""
		return DeleteAccount(m)
	}
	return nil
}

func handleUploadKey(m *model.Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.SwitchView(types.GridView)
		return nil
	case tea.KeyUp:
		if m.UploadCursor > 0 {
			m.UploadCursor--
		}
		return nil
	case tea.KeyDown:
		if m.UploadCursor < len(m.UploadFiles)-1 {
			m.UploadCursor++
		}
		return nil
	case tea.KeyEnter:
		if m.UploadCursor >= 0 && m.UploadCursor < len(m.UploadFiles) {
			name := m.UploadFiles[m.UploadCursor]
			m.SetStatus("Uploading " + name)
			return Upload(m, filepath.Join(m.DataDir, name))
		}
	}
	if msg.String() == "u" {
		m.SwitchView(types.GridView)
	}
	return nil
}
