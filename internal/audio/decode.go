package audio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

// Decode turns raw audio bytes into a seekable sample stream. The name is
// only used for its extension; unknown extensions are tried as mp3 first
// since that is what uploads overwhelmingly are.
func Decode(name string, data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".wav":
		return wav.Decode(newReader(data))
	case ".flac":
		return flac.Decode(newReader(data))
	case ".ogg":
		return vorbis.Decode(newReader(data))
	case ".mp3":
		return mp3.Decode(newReader(data))
	}

	if s, format, err := mp3.Decode(newReader(data)); err == nil {
		return s, format, nil
	}
	if s, format, err := wav.Decode(newReader(data)); err == nil {
		return s, format, nil
	}
	return nil, beep.Format{}, fmt.Errorf("decoding %s: unsupported format", name)
}

// Duration computes the decoded length of a stream in seconds.
func Duration(streamer beep.StreamSeeker, format beep.Format) float64 {
	if format.SampleRate == 0 {
		return 0
	}
	return float64(streamer.Len()) / float64(format.SampleRate)
}

// ProbeDuration decodes just enough of the audio to learn its length.
// The duration stored on a clip is advisory; the decoded value is
// authoritative once available.
func ProbeDuration(name string, data []byte) (float64, error) {
	s, format, err := Decode(name, data)
	if err != nil {
		return 0, err
	}
	defer s.Close()
	return Duration(s, format), nil
}
