package audio

import (
	"bytes"
	"testing"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stereoWAV(t *testing.T, frames int) []byte {
	t.Helper()
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 2, SampleRate: 44100},
		SourceBitDepth: 16,
		Data:           make([]int, frames*2),
	}
	for i := 0; i < frames; i++ {
		buf.Data[i*2] = 1000
		buf.Data[i*2+1] = 3000
	}
	data, err := encodeWAV(buf)
	require.NoError(t, err)
	return data
}

func TestCompress(t *testing.T) {
	t.Run("DownmixesStereoToMono", func(t *testing.T) {
		data := stereoWAV(t, 4410)
		out := Compress("clip.wav", data)
		require.Less(t, len(out), len(data))

		decoder := gowav.NewDecoder(bytes.NewReader(out))
		pcm, err := decoder.FullPCMBuffer()
		require.NoError(t, err)
		assert.Equal(t, 1, pcm.Format.NumChannels)
		// Each mono frame is the channel average.
		assert.Equal(t, 2000, pcm.Data[0])
	})

	t.Run("NonWAVPassesThrough", func(t *testing.T) {
		data := []byte("not really audio")
		assert.Equal(t, data, Compress("clip.mp3", data))
	})

	t.Run("CorruptWAVPassesThrough", func(t *testing.T) {
		data := []byte("RIFFgarbage")
		assert.Equal(t, data, Compress("clip.wav", data))
	})

	t.Run("MonoWAVPassesThrough", func(t *testing.T) {
		buf := &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: 1, SampleRate: 44100},
			SourceBitDepth: 16,
			Data:           make([]int, 4410),
		}
		data, err := encodeWAV(buf)
		require.NoError(t, err)
		assert.Equal(t, data, Compress("clip.wav", data))
	})
}
