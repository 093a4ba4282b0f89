package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

type wave int

const (
	waveSine wave = iota
	waveSquare
	waveNoise
)

// tone is a fixed-length oscillator whose frequency glides linearly from
// freq to endFreq.
type tone struct {
	freq, endFreq float64
	phase         float64
	total, pos    int
	wave          wave
	rate          beep.SampleRate
}

func newTone(freq, endFreq float64, d time.Duration, w wave, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, endFreq: endFreq, total: rate.N(d), wave: w, rate: rate}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}

		var val float64
		switch t.wave {
		case waveSine:
			val = math.Sin(2 * math.Pi * t.phase)
		case waveSquare:
			if t.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case waveNoise:
			val = rand.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		progress := float64(t.pos) / float64(t.total)
		freq := t.freq + (t.endFreq-t.freq)*progress
		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// fade applies a linear attack and an exponential tail to s.
type fade struct {
	s       beep.Streamer
	attack  int
	total   int
	pos     int
	decayed float64
}

func newFade(s beep.Streamer, attack, total time.Duration, rate beep.SampleRate) beep.Streamer {
	return &fade{s: s, attack: rate.N(attack), total: rate.N(total), decayed: 5}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.s.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if f.pos < f.attack && f.attack > 0 {
			vol = float64(f.pos) / float64(f.attack)
		} else if f.total > f.attack {
			rel := float64(f.pos-f.attack) / float64(f.total-f.attack)
			vol = math.Exp(-f.decayed * rel)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.s.Err() }

// withVolume scales a streamer by a linear gain in [0, 1].
func withVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}
