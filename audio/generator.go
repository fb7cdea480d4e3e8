package audio

import (
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/pricerider/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// wave returns the sample for phase in [0,1)
func wave(w WaveType, phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1.0
		}
		return -1.0
	case WaveSaw:
		return 2.0 * (phase - 0.5)
	case WaveNoise:
		return rand.Float64()*2 - 1
	}
	return math.Sin(2 * math.Pi * phase)
}

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite oscillator
func NewOscillator(freq float64, duration time.Duration, w WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     w,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}
		val := wave(o.wave, o.phase)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a finite stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps s with attack/release shaping over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) gain() float64 {
	vol := 1.0
	if e.position < e.attackSamples {
		vol = float64(e.position) / float64(e.attackSamples)
	}
	if releaseStart := e.totalSamples - e.releaseSamples; e.releaseSamples > 0 && e.position >= releaseStart {
		vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
	}
	return vol
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}
		vol := e.gain()
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; math.Log2(0) is -Inf so zero is silent
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// EngineHz maps forward speed to the engine drone pitch
func EngineHz(speed float64) float64 {
	hz := parameter.EngineIdleHz + math.Abs(speed)*parameter.EngineHzPerSpeed
	if math.IsNaN(hz) || hz > parameter.EngineMaxHz {
		return parameter.EngineMaxHz
	}
	return hz
}

// Drone is an endless engine tone whose pitch can change while playing
// Frequency and level are read atomically from the speaker goroutine
type Drone struct {
	rate  beep.SampleRate
	phase float64
	sub   float64

	freq  atomic.Uint64 // float64 bits
	level atomic.Uint64 // float64 bits, target gain
	gain  float64       // smoothed gain, speaker goroutine only
}

// NewDrone creates a silent drone at idle pitch
func NewDrone(rate beep.SampleRate) *Drone {
	d := &Drone{rate: rate}
	d.SetFrequency(parameter.EngineIdleHz)
	return d
}

// SetFrequency changes pitch without restarting the wave
func (d *Drone) SetFrequency(hz float64) {
	d.freq.Store(math.Float64bits(hz))
}

// Frequency returns the current pitch
func (d *Drone) Frequency() float64 {
	return math.Float64frombits(d.freq.Load())
}

// SetLevel sets the target gain; changes ramp in to avoid clicks
func (d *Drone) SetLevel(level float64) {
	d.level.Store(math.Float64bits(math.Max(0, math.Min(1, level))))
}

// Level returns the target gain
func (d *Drone) Level() float64 {
	return math.Float64frombits(d.level.Load())
}

func (d *Drone) Stream(samples [][2]float64) (n int, ok bool) {
	freq := d.Frequency()
	target := d.Level()
	step := freq / float64(d.rate)
	ramp := 1.0 / float64(d.rate.N(20*time.Millisecond))

	for i := range samples {
		switch {
		case d.gain < target:
			d.gain = math.Min(target, d.gain+ramp)
		case d.gain > target:
			d.gain = math.Max(target, d.gain-ramp)
		}

		// Saw with a sine sub-octave for body
		val := 0.12*wave(WaveSaw, d.phase) + 0.2*math.Sin(2*math.Pi*d.sub)
		val *= d.gain
		samples[i][0] = val
		samples[i][1] = val

		d.phase += step
		d.phase -= math.Floor(d.phase)
		d.sub += step / 2
		d.sub -= math.Floor(d.sub)
	}
	return len(samples), true
}

func (d *Drone) Err() error { return nil }

// Sound effect lengths
const (
	whooshDuration   = 450 * time.Millisecond
	gameOverDuration = 700 * time.Millisecond
)

// CreateWhooshSound generates the turbo ignition noise burst
func CreateWhooshSound(rate beep.SampleRate) beep.Streamer {
	noise := NewOscillator(0, whooshDuration, WaveNoise, rate)
	shaped := NewEnvelope(noise, whooshDuration, 30*time.Millisecond, 380*time.Millisecond, rate)
	return newVolume(shaped, 0.35)
}

// CreateGameOverSound generates a falling two-note buzz
func CreateGameOverSound(rate beep.SampleRate) beep.Streamer {
	half := gameOverDuration / 2
	n1 := NewEnvelope(NewOscillator(220, half, WaveSquare, rate), half, 10*time.Millisecond, 80*time.Millisecond, rate)
	n2 := NewEnvelope(NewOscillator(110, half, WaveSquare, rate), half, 10*time.Millisecond, 250*time.Millisecond, rate)
	return newVolume(beep.Seq(n1, n2), 0.25)
}
