package audio

import (
	"bytes"
	"os"
	"strings"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

// Compress shrinks audio before upload, best effort. Stereo WAV input is
// downmixed to mono 16-bit WAV; anything the downmix cannot handle passes
// through unchanged. Compression never fails an upload.
func Compress(name string, data []byte) []byte {
	if !strings.HasSuffix(strings.ToLower(name), ".wav") {
		return data
	}

	decoder := gowav.NewDecoder(bytes.NewReader(data))
	buf, err := decoder.FullPCMBuffer()
	if err != nil || buf == nil || buf.Format == nil {
		return data
	}
	if buf.Format.NumChannels < 2 {
		return data
	}

	channels := buf.Format.NumChannels
	frames := len(buf.Data) / channels
	mono := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: buf.Format.SampleRate},
		SourceBitDepth: 16,
		Data:           make([]int, frames),
	}

	// Average channels per frame, rescaling to 16-bit if the source is wider.
	shift := 0
	if decoder.BitDepth > 16 {
		shift = int(decoder.BitDepth) - 16
	}
	for i := 0; i < frames; i++ {
		sum := 0
		for ch := 0; ch < channels; ch++ {
			sum += buf.Data[i*channels+ch]
		}
		mono.Data[i] = (sum / channels) >> shift
	}

	out, err := encodeWAV(mono)
	if err != nil || len(out) >= len(data) {
		return data
	}
	return out
}

// encodeWAV writes a PCM buffer as a 16-bit WAV file. The wav encoder needs
// a write-seeker, so it goes through a temp file.
func encodeWAV(buf *goaudio.IntBuffer) ([]byte, error) {
	f, err := os.CreateTemp("", "soundeck-*.wav")
	if err != nil {
		return nil, err
	}
	defer os.Remove(f.Name())
	defer f.Close()

	enc := gowav.NewEncoder(f, buf.Format.SampleRate, 16, buf.Format.NumChannels, 1)
	if err := enc.Write(buf); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return os.ReadFile(f.Name())
}
