package parameter

import "time"

// Audio hardware settings
const (
	AudioSampleRate     = 44100
	AudioBufferDuration = 100 * time.Millisecond

	// VolumeStep is the change per volume key press
	VolumeStep = 0.1
)

// Effect durations
const (
	BonusSoundDuration  = 180 * time.Millisecond
	CrashSoundDuration  = 400 * time.Millisecond
	WhooshSoundDuration = 250 * time.Millisecond
)
