package audio

import (
	"errors"
	"math"
	"math/rand"

	"github.com/faiface/beep"
	"github.com/schollz/gowaveform"
)

const (
	// EditorSamples is the envelope resolution used by the trim editor.
	EditorSamples = 500
	// CardBars is the envelope resolution used by clip cards in the grid.
	CardBars = 80
)

// Envelope reduces a decoded stream to n amplitude samples by block-averaging
// absolute sample magnitude across the full buffer, then normalizing so the
// loudest block maps to 1.0. A silent stream yields all zeros.
func Envelope(s beep.StreamSeeker, n int) []float64 {
	if n <= 0 {
		return nil
	}
	total := s.Len()
	if total <= 0 {
		return make([]float64, n)
	}

	sums := make([]float64, n)
	counts := make([]int, n)

	buf := make([][2]float64, 512)
	pos := 0
	for {
		read, ok := s.Stream(buf)
		for i := 0; i < read; i++ {
			block := (pos + i) * n / total
			if block >= n {
				block = n - 1
			}
			mono := (buf[i][0] + buf[i][1]) / 2
			sums[block] += math.Abs(mono)
			counts[block]++
		}
		pos += read
		if !ok || read == 0 {
			break
		}
	}

	out := make([]float64, n)
	var max float64
	for i := range out {
		if counts[i] > 0 {
			out[i] = sums[i] / float64(counts[i])
		}
		if out[i] > max {
			max = out[i]
		}
	}
	if max > 0 {
		for i := range out {
			out[i] /= max
		}
	}
	return out
}

// EnvelopeFromBytes decodes audio and computes its envelope in one step.
func EnvelopeFromBytes(name string, data []byte, n int) ([]float64, error) {
	s, _, err := Decode(name, data)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return Envelope(s, n), nil
}

// EnvelopeFromFile computes an envelope from a local file's min/max view
// data instead of a full PCM pass. Each column's value is the larger
// absolute excursion of its min/max pair, normalized against the loudest
// column.
func EnvelopeFromFile(path string, duration float64, n int) ([]float64, error) {
	if n <= 0 || duration <= 0 {
		return nil, errors.New("invalid envelope request")
	}
	wf, err := gowaveform.LoadWaveform(path)
	if err != nil {
		return nil, err
	}
	view, err := wf.GenerateView(gowaveform.WaveformOptions{
		Start: 0,
		End:   duration,
		Width: n,
	})
	if err != nil {
		return nil, err
	}
	if view == nil || len(view.Data) < 2 {
		return nil, errors.New("no waveform data")
	}

	cols := len(view.Data) / 2
	raw := make([]float64, cols)
	var max float64
	for i := 0; i < cols; i++ {
		lo := math.Abs(float64(view.Data[i*2]))
		hi := math.Abs(float64(view.Data[i*2+1]))
		if lo > hi {
			raw[i] = lo
		} else {
			raw[i] = hi
		}
		if raw[i] > max {
			max = raw[i]
		}
	}

	out := make([]float64, n)
	for i := range out {
		v := raw[i*cols/n]
		if max > 0 {
			v /= max
		}
		out[i] = v
	}
	return out, nil
}

// RandomEnvelope generates placeholder bars for clips whose audio could not
// be fetched or decoded. The grid never blocks on visualization failure;
// the trim editor reports such failures instead of using this.
func RandomEnvelope(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.2 + 0.6*rand.Float64()
	}
	return out
}
