package parameter

// Audio
const (
	// AudioSampleRate in Hz
	AudioSampleRate = 44100

	// AudioBufferMillis is the speaker buffer length
	AudioBufferMillis = 100

	// EngineIdleHz and EngineHzPerSpeed shape the engine drone pitch
	EngineIdleHz     = 55.0
	EngineHzPerSpeed = 4.0
	EngineMaxHz      = 220.0

	// DefaultMasterVolume is the initial volume (0..1)
	DefaultMasterVolume = 0.5
)
