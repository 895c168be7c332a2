// Package analytics records usage events. Events are structured the same
// way regardless of sink; the default sink is the application log.
package analytics

import (
	"soundeck/internal/logger"
	"soundeck/internal/types"
)

// Event is one recorded usage event.
type Event struct {
	Name   string
	Params map[string]interface{}
}

// Recorder accepts events. The zero value is unusable; use NewRecorder or
// provide a capture implementation in tests.
type Recorder interface {
	Record(Event)
}

type logRecorder struct{}

// NewRecorder returns a recorder that writes events to the application log.
func NewRecorder() Recorder {
	return logRecorder{}
}

func (logRecorder) Record(e Event) {
	logger.Info("analytics: "+e.Name, logger.Any("params", e.Params))
}

// PlaySound tags how a playback started and whether the clip is built-in.
func PlaySound(trigger types.PlayTrigger, builtIn bool) Event {
	source := "user_upload"
	if builtIn {
		source = "demo"
	}
	return Event{Name: "event_play_sound", Params: map[string]interface{}{
		"method":      trigger.String(),
		"source_type": source,
	}}
}

func SetHotkey(clipID, code string) Event {
	return Event{Name: "event_set_hotkey", Params: map[string]interface{}{
		"key_combo": code,
		"sound_id":  clipID,
	}}
}

func TrimSound(clipID string) Event {
	return Event{Name: "event_trim_sound", Params: map[string]interface{}{
		"sound_id": clipID,
	}}
}

func ReorderSound(clipID string) Event {
	return Event{Name: "event_reorder_sound", Params: map[string]interface{}{
		"sound_id": clipID,
	}}
}

func EditSound(clipID string) Event {
	return Event{Name: "event_edit_sound", Params: map[string]interface{}{
		"sound_id": clipID,
	}}
}

func DeleteSound(clipID string) Event {
	return Event{Name: "event_delete_sound", Params: map[string]interface{}{
		"sound_id": clipID,
	}}
}

func UploadSound(ext string, size int64) Event {
	return Event{Name: "event_upload_sound", Params: map[string]interface{}{
		"file_ext":  ext,
		"file_size": size,
	}}
}

func UploadFailed(ext, errorCode string, size int64) Event {
	return Event{Name: "event_fail_upload_sound", Params: map[string]interface{}{
		"file_ext":   ext,
		"error_code": errorCode,
		"file_size":  size,
	}}
}

func ResetDefaults(userID string) Event {
	return Event{Name: "event_restore_default_setting", Params: map[string]interface{}{
		"user_id": userID,
	}}
}
