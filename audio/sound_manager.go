// Package audio plays the engine hum and the bonus, crash and segment
// whoosh effects. Every call is a no-op until Initialize succeeds, so the
// game runs unchanged without an audio device.
package audio

import (
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/into-the-hole/event"
	"github.com/lixenwraith/into-the-hole/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// SoundManager manages all game audio
type SoundManager struct {
	mu          sync.Mutex
	humStreamer *beep.Ctrl
	mixer       *beep.Mixer
	volume      *effects.Volume
	initialized bool

	// level is the requested volume in [0,1]; output is silent when it is 0 or muted is set
	level float64
	muted bool
}

// NewSoundManager creates a sound manager at volume in [0,1]
func NewSoundManager(volume float64) *SoundManager {
	mixer := &beep.Mixer{}
	sm := &SoundManager{
		mixer:  mixer,
		volume: &effects.Volume{Streamer: mixer, Base: 2},
	}
	sm.setVolume(volume)
	return sm
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration))
	if err != nil {
		return err
	}

	speaker.Play(sm.volume)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	if sm.humStreamer != nil {
		sm.humStreamer.Paused = true
		sm.humStreamer = nil
	}
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

func (sm *SoundManager) setVolume(v float64) {
	sm.level = math.Max(0, math.Min(1, v))
	if sm.level > 0 {
		// Base 2: each unit halves or doubles perceived loudness
		sm.volume.Volume = math.Log2(sm.level)
	}
	sm.apply()
}

// apply derives the streamer state; Volume keeps the last audible gain
func (sm *SoundManager) apply() {
	sm.volume.Silent = sm.muted || sm.level == 0
}

// SetVolume changes the master volume, 0 silences output
func (sm *SoundManager) SetVolume(v float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	sm.setVolume(v)
}

// Volume returns the requested master volume in [0,1]
func (sm *SoundManager) Volume() float64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.level
}

// ToggleMute flips the mute switch and returns whether output is now silent
// Unmuting at zero volume stays silent
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	sm.muted = !sm.muted
	sm.apply()
	return sm.volume.Silent
}

// Muted reports whether output is silenced
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.volume.Silent
}

func (sm *SoundManager) add(s beep.Streamer) {
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// StartHum starts the looping engine drone
func (sm *SoundManager) StartHum() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	if sm.humStreamer != nil && !sm.humStreamer.Paused {
		return
	}
	ctrl := &beep.Ctrl{Streamer: NewHumGenerator(sampleRate)}
	sm.humStreamer = ctrl
	sm.add(ctrl)
}

// StopHum stops the engine drone
func (sm *SoundManager) StopHum() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.humStreamer != nil {
		speaker.Lock()
		sm.humStreamer.Paused = true
		speaker.Unlock()
	}
}

// PlayBonus plays the coin chime
func (sm *SoundManager) PlayBonus() {
	sm.play(beep.Take(sampleRate.N(parameter.BonusSoundDuration), NewChimeGenerator(sampleRate)))
}

// PlayCrash plays the obstacle impact
func (sm *SoundManager) PlayCrash() {
	sm.play(beep.Take(sampleRate.N(parameter.CrashSoundDuration), NewCrashGenerator(sampleRate, 1)))
}

// PlayWhoosh plays the segment advance sweep
func (sm *SoundManager) PlayWhoosh() {
	sm.play(beep.Take(sampleRate.N(parameter.WhooshSoundDuration), NewWhooshGenerator(sampleRate, parameter.WhooshSoundDuration.Seconds())))
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.add(s)
}

// EventTypes implements event.Handler
func (sm *SoundManager) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventGameStart,
		event.EventGameEnd,
		event.EventSegmentAdvanced,
		event.EventBonusCollected,
		event.EventObstacleHit,
	}
}

// HandleEvent maps game events to sounds
func (sm *SoundManager) HandleEvent(ev event.Event) {
	switch ev.Type {
	case event.EventGameStart:
		sm.StartHum()
	case event.EventGameEnd:
		sm.StopHum()
	case event.EventSegmentAdvanced:
		sm.PlayWhoosh()
	case event.EventBonusCollected:
		sm.PlayBonus()
	case event.EventObstacleHit:
		sm.PlayCrash()
	}
}
