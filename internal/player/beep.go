package player

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"

	"soundeck/internal/audio"
	"soundeck/internal/types"
)

// mixRate is the speaker's fixed sample rate; clip streams at other rates
// are resampled on the way out.
const mixRate = beep.SampleRate(44100)

// InitSpeaker opens the audio device. Called once at startup.
func InitSpeaker() error {
	return speaker.Init(mixRate, mixRate.N(time.Second/20))
}

// CloseSpeaker releases the audio device.
func CloseSpeaker() {
	speaker.Close()
}

// BeepFactory prepares a playable backend for a clip by fetching and
// decoding its source. Used as the pool's factory in production; tests
// substitute a fake.
func BeepFactory(clip types.Clip) (Backend, error) {
	data, err := audio.Fetch(clip.SourceRef)
	if err != nil {
		return nil, fmt.Errorf("fetching clip %s: %w", clip.ID, err)
	}
	stream, format, err := audio.Decode(clip.SourceRef, data)
	if err != nil {
		return nil, fmt.Errorf("decoding clip %s: %w", clip.ID, err)
	}

	ctrl := &beep.Ctrl{Streamer: stream, Paused: true}
	vol := &effects.Volume{Streamer: ctrl, Base: 2}
	return &beepBackend{
		stream: stream,
		format: format,
		ctrl:   ctrl,
		volume: vol,
	}, nil
}

// beepBackend plays one decoded stream through the shared speaker mixer.
// The stream chain is stream -> ctrl (pause gate) -> volume -> resampler.
// attached tracks whether the chain is currently in the mixer; the mixer
// drops it when the stream drains, so replay re-attaches.
type beepBackend struct {
	stream   beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	attached atomic.Bool
}

func (b *beepBackend) Play() {
	if b.attached.CompareAndSwap(false, true) {
		var out beep.Streamer = b.volume
		if b.format.SampleRate != mixRate {
			out = beep.Resample(4, b.format.SampleRate, mixRate, b.volume)
		}
		speaker.Play(beep.Seq(out, beep.Callback(func() {
			b.attached.Store(false)
		})))
	}
	speaker.Lock()
	b.ctrl.Paused = false
	speaker.Unlock()
}

func (b *beepBackend) Pause() {
	speaker.Lock()
	b.ctrl.Paused = true
	speaker.Unlock()
}

func (b *beepBackend) Seek(seconds float64) error {
	n := int(seconds * float64(b.format.SampleRate))
	if n < 0 {
		n = 0
	}
	if max := b.stream.Len(); n > max {
		n = max
	}
	speaker.Lock()
	defer speaker.Unlock()
	return b.stream.Seek(n)
}

func (b *beepBackend) Position() float64 {
	speaker.Lock()
	pos := b.stream.Position()
	speaker.Unlock()
	return float64(pos) / float64(b.format.SampleRate)
}

func (b *beepBackend) Duration() float64 {
	return float64(b.stream.Len()) / float64(b.format.SampleRate)
}

func (b *beepBackend) SetGain(gain float64) {
	speaker.Lock()
	if gain <= 0 {
		b.volume.Silent = true
	} else {
		b.volume.Silent = false
		b.volume.Volume = math.Log2(gain)
	}
	speaker.Unlock()
}

func (b *beepBackend) Close() error {
	// Detach from the mixer by letting the chain drain, then release the
	// decoder.
	speaker.Lock()
	b.ctrl.Streamer = nil
	b.ctrl.Paused = false
	speaker.Unlock()
	return b.stream.Close()
}
