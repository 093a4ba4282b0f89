package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Manager plays the game's audio cues. A Manager that is disabled or whose
// speaker failed to initialise stays silent; callers never need to check.
type Manager struct {
	mu          sync.Mutex
	enabled     bool
	initialized bool
	mixer       *beep.Mixer
	music       map[Cue]*beep.Ctrl
	buffers     map[Cue]*beep.Buffer
}

func NewManager(enabled bool) *Manager {
	return &Manager{
		enabled: enabled,
		mixer:   &beep.Mixer{},
		music:   make(map[Cue]*beep.Ctrl),
		buffers: make(map[Cue]*beep.Buffer),
	}
}

// Init opens the speaker. A failure is logged and leaves the manager silent.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.enabled || m.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		log.Error("audio [Init]", "err", err)
		m.enabled = false
		return err
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	for _, ctrl := range m.music {
		ctrl.Paused = true
	}
	m.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	m.initialized = false
}

func (m *Manager) active() bool {
	return m.enabled && m.initialized
}

// Play fires a one-shot effect from the start.
func (m *Manager) Play(c Cue) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.active() {
		return false
	}
	if c.music() {
		return m.startMusic(c, false)
	}

	log.Debug("audio [Play]", "cue", c)
	s := withVolume(streamer(c, sampleRate), volumes[c])
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
	return true
}

// PlayIntro starts the intro loop unless it is already playing.
func (m *Manager) PlayIntro() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.active() {
		return false
	}
	return m.startMusic(Intro, true)
}

func (m *Manager) StopIntro() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopMusic(Intro)
}

func (m *Manager) PlayWin() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.active() {
		return false
	}
	return m.startMusic(Win, false)
}

func (m *Manager) PlayLose() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.active() {
		return false
	}
	return m.startMusic(Lose, false)
}

// StopAllMusic silences the result music. The intro keeps going.
func (m *Manager) StopAllMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopMusic(Win)
	m.stopMusic(Lose)
}

func (m *Manager) startMusic(c Cue, keepIfPlaying bool) bool {
	if ctrl, ok := m.music[c]; ok {
		if keepIfPlaying && !ctrl.Paused {
			return true
		}
		m.stopMusic(c)
	}

	buf := m.buffer(c)
	var s beep.Streamer = buf.Streamer(0, buf.Len())
	if c != Win {
		s = beep.Loop(-1, buf.Streamer(0, buf.Len()))
	}
	ctrl := &beep.Ctrl{Streamer: withVolume(s, volumes[c])}
	m.music[c] = ctrl

	log.Debug("audio [startMusic]", "cue", c)
	speaker.Lock()
	m.mixer.Add(ctrl)
	speaker.Unlock()
	return true
}

func (m *Manager) stopMusic(c Cue) {
	ctrl, ok := m.music[c]
	if !ok {
		return
	}
	if m.initialized {
		speaker.Lock()
		ctrl.Paused = true
		ctrl.Streamer = nil
		speaker.Unlock()
	}
	delete(m.music, c)
}

func (m *Manager) buffer(c Cue) *beep.Buffer {
	if buf, ok := m.buffers[c]; ok {
		return buf
	}
	buf := render(c)
	m.buffers[c] = buf
	return buf
}

func render(c Cue) *beep.Buffer {
	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(streamer(c, sampleRate))
	return buf
}
