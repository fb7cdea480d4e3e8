package audio

import (
	"time"

	"github.com/lixenwraith/pricerider/parameter"
)

// Config holds audio output settings
type Config struct {
	Enabled      bool
	MasterVolume float64 // 0.0-1.0
	SampleRate   int
	Buffer       time.Duration
}

// DefaultConfig returns the default audio configuration
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		MasterVolume: parameter.DefaultMasterVolume,
		SampleRate:   parameter.AudioSampleRate,
		Buffer:       parameter.AudioBufferMillis * time.Millisecond,
	}
}
