package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/pricerider/parameter"
)

const testRate = beep.SampleRate(44100)

// drain reads s to completion and returns the sample count and peak amplitude
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		total += n
		if !ok {
			break
		}
	}
	return total, peak
}

func TestOscillatorLength(t *testing.T) {
	want := testRate.N(100 * time.Millisecond)
	n, peak := drain(NewOscillator(440, 100*time.Millisecond, WaveSine, testRate))
	if n != want {
		t.Errorf("oscillator produced %d samples, want %d", n, want)
	}
	if peak > 1.0001 || peak < 0.9 {
		t.Errorf("sine peak = %.3f", peak)
	}
	t.Logf("✓ %d samples, peak %.3f", n, peak)
}

func TestEnvelopeShape(t *testing.T) {
	dur := 100 * time.Millisecond
	s := NewEnvelope(NewOscillator(0, dur, WaveSquare, testRate), dur, 10*time.Millisecond, 10*time.Millisecond, testRate)

	buf := make([][2]float64, testRate.N(dur))
	n, _ := s.Stream(buf)
	if n != len(buf) {
		t.Fatalf("streamed %d, want %d", n, len(buf))
	}
	// Phase-0 square at 0 Hz is constant +1, so samples equal the envelope
	if buf[0][0] != 0 {
		t.Errorf("attack start = %v, want 0", buf[0][0])
	}
	if mid := buf[n/2][0]; mid != 1 {
		t.Errorf("sustain = %v, want 1", mid)
	}
	if last := buf[n-1][0]; last > 0.01 {
		t.Errorf("release end = %v, want ~0", last)
	}
}

func TestEngineHz(t *testing.T) {
	tests := []struct {
		speed float64
		want  float64
	}{
		{0, parameter.EngineIdleHz},
		{10, parameter.EngineIdleHz + 10*parameter.EngineHzPerSpeed},
		{-10, parameter.EngineIdleHz + 10*parameter.EngineHzPerSpeed},
		{1000, parameter.EngineMaxHz},
		{math.NaN(), parameter.EngineMaxHz},
	}
	for _, tt := range tests {
		if got := EngineHz(tt.speed); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("EngineHz(%v) = %v, want %v", tt.speed, got, tt.want)
		}
	}
}

func TestDroneRampsToLevel(t *testing.T) {
	d := NewDrone(testRate)
	buf := make([][2]float64, testRate.N(50*time.Millisecond))

	d.Stream(buf)
	for _, s := range buf {
		if s[0] != 0 {
			t.Fatal("drone should be silent at level 0")
		}
	}

	d.SetLevel(1)
	d.SetFrequency(110)
	d.Stream(buf)
	if buf[0][0] == buf[len(buf)-1][0] && buf[len(buf)-1][0] == 0 {
		t.Error("drone stayed silent after SetLevel")
	}
	if math.Abs(buf[1][0]) > 0.01 {
		t.Errorf("first samples should ramp in, got %.4f", buf[1][0])
	}
	if d.Frequency() != 110 {
		t.Errorf("Frequency = %v", d.Frequency())
	}

	d.SetLevel(5)
	if d.Level() != 1 {
		t.Errorf("level not clamped: %v", d.Level())
	}
	t.Logf("✓ drone ramps without clicks")
}

func TestEffectsTerminate(t *testing.T) {
	tests := []struct {
		name string
		s    beep.Streamer
		dur  time.Duration
	}{
		{"whoosh", CreateWhooshSound(testRate), whooshDuration},
		{"game over", CreateGameOverSound(testRate), gameOverDuration},
	}
	for _, tt := range tests {
		n, peak := drain(tt.s)
		if want := testRate.N(tt.dur); n < want-2 || n > want+2 {
			t.Errorf("%s: %d samples, want ~%d", tt.name, n, want)
		}
		if peak == 0 || peak > 1 {
			t.Errorf("%s: peak %.3f", tt.name, peak)
		}
	}
}

func TestSoundManagerGracefulDegradation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	sm := NewSoundManager(cfg)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("sound operations panicked without a device: %v", r)
		}
	}()

	if err := sm.Initialize(); err != nil {
		t.Errorf("disabled Initialize returned %v", err)
	}
	if sm.Initialized() {
		t.Error("disabled manager should not open the device")
	}
	sm.SetEngine(100, 1)
	sm.PlayWhoosh()
	sm.PlayGameOver()
	sm.SetVolume(2)
	if sm.Volume() != 1 {
		t.Errorf("volume = %v, want clamped 1", sm.Volume())
	}
	sm.Cleanup()
}
