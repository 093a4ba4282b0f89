package audio

import (
	"time"

	"github.com/gopxl/beep"
)

type Cue int

const (
	Shot Cue = iota
	Water
	Boom
	Mayday
	Hammer
	Error
	Sonar
	Intro
	Win
	Lose
)

var cueNames = map[Cue]string{
	Shot:   "shot",
	Water:  "water",
	Boom:   "boom",
	Mayday: "mayday",
	Hammer: "hammer",
	Error:  "error",
	Sonar:  "sonar",
	Intro:  "intro",
	Win:    "win",
	Lose:   "lose",
}

func (c Cue) String() string {
	if n, ok := cueNames[c]; ok {
		return n
	}
	return "unknown"
}

// volumes are linear gains per cue.
var volumes = map[Cue]float64{
	Shot:   1,
	Water:  1,
	Boom:   0.35,
	Mayday: 0.7,
	Hammer: 0.6,
	Error:  0.85,
	Sonar:  0.8,
	Intro:  0.30,
	Win:    0.4,
	Lose:   0.7,
}

// music cues loop until stopped; everything else is a one-shot effect.
func (c Cue) music() bool {
	return c == Intro || c == Win || c == Lose
}

// streamer builds the raw (unlooped) sound for a cue.
func streamer(c Cue, rate beep.SampleRate) beep.Streamer {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }

	switch c {
	case Shot:
		return newFade(newTone(0, 0, ms(120), waveNoise, rate), ms(2), ms(120), rate)
	case Water:
		return newFade(newTone(1200, 300, ms(180), waveSine, rate), ms(5), ms(180), rate)
	case Boom:
		return beep.Mix(
			withVolume(newFade(newTone(0, 0, ms(600), waveNoise, rate), ms(5), ms(600), rate), 0.5),
			withVolume(newFade(newTone(90, 40, ms(600), waveSine, rate), ms(5), ms(600), rate), 0.5),
		)
	case Mayday:
		return beep.Seq(
			newFade(newTone(880, 880, ms(250), waveSquare, rate), ms(10), ms(250), rate),
			newFade(newTone(660, 660, ms(250), waveSquare, rate), ms(10), ms(250), rate),
			newFade(newTone(880, 880, ms(250), waveSquare, rate), ms(10), ms(250), rate),
			newFade(newTone(660, 660, ms(250), waveSquare, rate), ms(10), ms(250), rate),
		)
	case Hammer:
		return beep.Seq(
			newFade(newTone(0, 0, ms(60), waveNoise, rate), ms(1), ms(60), rate),
			newFade(newTone(220, 180, ms(90), waveSquare, rate), ms(1), ms(90), rate),
		)
	case Error:
		return newFade(newTone(140, 120, ms(300), waveSquare, rate), ms(5), ms(300), rate)
	case Sonar:
		return newFade(newTone(1400, 1350, ms(900), waveSine, rate), ms(10), ms(900), rate)
	case Intro:
		return arpeggio(rate, ms(220), 220, 261.63, 329.63, 261.63, 196, 246.94, 293.66, 246.94)
	case Win:
		return arpeggio(rate, ms(160), 523.25, 659.25, 783.99, 1046.5, 783.99, 1046.5)
	case Lose:
		return arpeggio(rate, ms(400), 392, 369.99, 349.23, 329.63)
	}
	return newTone(0, 0, 0, waveSine, rate)
}

func arpeggio(rate beep.SampleRate, step time.Duration, freqs ...float64) beep.Streamer {
	notes := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		notes = append(notes, newFade(newTone(f, f, step, waveSine, rate), step/20, step, rate))
	}
	return beep.Seq(notes...)
}
