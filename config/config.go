// Package config loads the game configuration from YAML with environment overrides
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/pricerider/camera"
	"github.com/lixenwraith/pricerider/engine"
	"github.com/lixenwraith/pricerider/input"
	"github.com/lixenwraith/pricerider/parameter"
	"github.com/lixenwraith/pricerider/track"
	"github.com/lixenwraith/pricerider/vehicle"
	"github.com/lixenwraith/pricerider/vmath"
)

// Environment variable names
const (
	EnvAudioEnabled  = "PRICERIDER_AUDIO_ENABLED"
	EnvMasterVolume  = "PRICERIDER_MASTER_VOLUME" // 0-100
	EnvTelemetryAddr = "PRICERIDER_TELEMETRY_ADDR"
	EnvTracks        = "PRICERIDER_TRACKS"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("config: invalid value")

// Config is the complete host configuration
type Config struct {
	Tracks     string `yaml:"tracks"` // external catalog file; empty uses the built-in catalog
	Track      string `yaml:"track"`  // initial track id
	RescueMode string `yaml:"rescue_mode"`

	Vehicle   VehicleConfig   `yaml:"vehicle"`
	Turbo     TurboConfig     `yaml:"turbo"`
	Camera    CameraConfig    `yaml:"camera"`
	Portfolio PortfolioConfig `yaml:"portfolio"`
	Audio     AudioConfig     `yaml:"audio"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	Keys input.Overrides `yaml:"keys"`
}

// VehicleConfig is the tunable subset of the chassis setup
type VehicleConfig struct {
	Mass            float64 `yaml:"mass"`
	EngineForce     float64 `yaml:"engine_force"`
	TiltTorque      float64 `yaml:"tilt_torque"`
	RocketForce     float64 `yaml:"rocket_force"`
	Stiffness       float64 `yaml:"stiffness"`
	Damping         float64 `yaml:"damping"`
	RestLength      float64 `yaml:"rest_length"`
	Travel          float64 `yaml:"travel"`
	LateralFriction float64 `yaml:"lateral_friction"`
}

type TurboConfig struct {
	MaxFuel      float64 `yaml:"max_fuel"`
	DrainRate    float64 `yaml:"drain_rate"`
	RechargeRate float64 `yaml:"recharge_rate"`
}

type CameraConfig struct {
	Offset    [3]float64 `yaml:"offset"`
	Lookahead float64    `yaml:"lookahead"`
	Smoothing float64    `yaml:"smoothing"`
}

// PortfolioConfig holds decimal values as text to keep them exact
type PortfolioConfig struct {
	Initial     string  `yaml:"initial"`
	Liquidation float64 `yaml:"liquidation"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0..1
}

type TelemetryConfig struct {
	Addr         string        `yaml:"addr"` // empty disables the server
	PushInterval time.Duration `yaml:"push_interval"`
}

// Default returns the configuration built from parameter defaults
func Default() *Config {
	return &Config{
		RescueMode: "snap",
		Vehicle: VehicleConfig{
			Mass:            parameter.ChassisMass,
			EngineForce:     parameter.EngineForce,
			TiltTorque:      parameter.TiltTorque,
			RocketForce:     parameter.TurboRocketForce,
			Stiffness:       parameter.SuspensionStiffness,
			Damping:         parameter.SuspensionDamping,
			RestLength:      parameter.SuspensionRestLength,
			Travel:          parameter.SuspensionTravel,
			LateralFriction: parameter.LateralFriction,
		},
		Turbo: TurboConfig{
			MaxFuel:      parameter.TurboMaxFuel,
			DrainRate:    parameter.TurboDrainRate,
			RechargeRate: parameter.TurboRechargeRate,
		},
		Camera: CameraConfig{
			Offset:    [3]float64{parameter.CameraOffsetX, parameter.CameraOffsetY, parameter.CameraOffsetZ},
			Lookahead: parameter.CameraLookahead,
			Smoothing: parameter.CameraSmoothing,
		},
		Portfolio: PortfolioConfig{
			Initial:     strconv.Itoa(parameter.InitialPortfolio),
			Liquidation: parameter.LiquidationFraction,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  parameter.DefaultMasterVolume,
		},
		Telemetry: TelemetryConfig{
			PushInterval: parameter.TelemetryPushInterval,
		},
	}
}

// Load reads path (optional) over the defaults, then applies environment overrides
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := cfg.Decode(data); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode overlays YAML data on cfg; absent fields keep their values
func (c *Config) Decode(data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config parse: %w", err)
	}
	return nil
}

// ApplyEnv overlays environment values; malformed values are ignored
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvAudioEnabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Audio.Enabled = b
		}
	}

	// 0-100 converted to 0.0-1.0
	if v := getenv(EnvMasterVolume); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Audio.Volume = vmath.Clamp(float64(n)/100.0, 0, 1)
		}
	}

	if v := getenv(EnvTelemetryAddr); v != "" {
		c.Telemetry.Addr = v
	}
	if v := getenv(EnvTracks); v != "" {
		c.Tracks = v
	}
}

// Validate rejects values the simulation cannot run with
func (c *Config) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"vehicle.mass", c.Vehicle.Mass},
		{"vehicle.stiffness", c.Vehicle.Stiffness},
		{"vehicle.rest_length", c.Vehicle.RestLength},
		{"turbo.max_fuel", c.Turbo.MaxFuel},
	}
	for _, p := range positive {
		if !(p.v > 0) || !vmath.IsFinite(p.v) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, p.name, p.v)
		}
	}

	if c.Vehicle.Travel < 0 || c.Vehicle.Damping < 0 || c.Turbo.DrainRate < 0 || c.Turbo.RechargeRate < 0 {
		return fmt.Errorf("%w: rates and travel must not be negative", ErrInvalid)
	}
	if c.Camera.Smoothing <= 0 || c.Camera.Smoothing > 1 {
		return fmt.Errorf("%w: camera.smoothing must be in (0,1], got %v", ErrInvalid, c.Camera.Smoothing)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume must be in [0,1], got %v", ErrInvalid, c.Audio.Volume)
	}
	if c.Telemetry.PushInterval <= 0 {
		return fmt.Errorf("%w: telemetry.push_interval must be positive", ErrInvalid)
	}
	if c.Portfolio.Liquidation < 0 || c.Portfolio.Liquidation >= 1 {
		return fmt.Errorf("%w: portfolio.liquidation must be in [0,1), got %v", ErrInvalid, c.Portfolio.Liquidation)
	}
	if _, err := c.initialPortfolio(); err != nil {
		return err
	}
	if _, err := c.rescueMode(); err != nil {
		return err
	}
	if _, err := input.ParseOverrides(c.Keys); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func (c *Config) initialPortfolio() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(c.Portfolio.Initial))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: portfolio.initial: %v", ErrInvalid, err)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: portfolio.initial must be positive", ErrInvalid)
	}
	return d, nil
}

func (c *Config) rescueMode() (vehicle.RescueMode, error) {
	switch strings.ToLower(c.RescueMode) {
	case "", "snap":
		return vehicle.RescueSnap, nil
	case "lift":
		return vehicle.RescueLift, nil
	}
	return vehicle.RescueSnap, fmt.Errorf("%w: rescue_mode %q (want snap or lift)", ErrInvalid, c.RescueMode)
}

// VehicleConfig returns the stock chassis setup with the configured tuning applied
func (c *Config) VehicleConfig() vehicle.Config {
	vc := vehicle.DefaultConfig()
	vc.Mass = c.Vehicle.Mass
	vc.EngineForce = c.Vehicle.EngineForce
	vc.TiltTorque = c.Vehicle.TiltTorque
	vc.RocketForce = c.Vehicle.RocketForce
	vc.Stiffness = c.Vehicle.Stiffness
	vc.Damping = c.Vehicle.Damping
	vc.RestLength = c.Vehicle.RestLength
	vc.Travel = c.Vehicle.Travel
	vc.LateralFriction = c.Vehicle.LateralFriction
	return vc
}

// NewCamera returns a follow camera with the configured rig
func (c *Config) NewCamera() *camera.Follow {
	f := camera.NewFollow()
	f.Offset = vmath.Vec3F{X: c.Camera.Offset[0], Y: c.Camera.Offset[1], Z: c.Camera.Offset[2]}
	f.Lookahead = c.Camera.Lookahead
	f.Smoothing = c.Camera.Smoothing
	return f
}

// GameOptions maps the configuration onto engine options; c must be validated
func (c *Config) GameOptions() engine.Options {
	opts := engine.DefaultOptions()
	opts.Vehicle = c.VehicleConfig()
	opts.Turbo.MaxFuel = c.Turbo.MaxFuel
	opts.Turbo.DrainRate = c.Turbo.DrainRate
	opts.Turbo.RechargeRate = c.Turbo.RechargeRate
	opts.Camera = c.NewCamera()
	opts.LiquidationFraction = decimal.NewFromFloat(c.Portfolio.Liquidation)
	if d, err := c.initialPortfolio(); err == nil {
		opts.InitialPortfolio = d
	}
	if m, err := c.rescueMode(); err == nil {
		opts.RescueMode = m
	}
	return opts
}

// KeyTable returns the default bindings merged with the configured overrides
func (c *Config) KeyTable() (*input.KeyTable, error) {
	base := input.DefaultKeyTable()
	if len(c.Keys) == 0 {
		return base, nil
	}
	override, err := input.ParseOverrides(c.Keys)
	if err != nil {
		return nil, err
	}
	return input.MergeKeyTable(base, override), nil
}

// Catalog loads the configured track catalog, or the built-in one
func (c *Config) Catalog() (*track.Catalog, error) {
	if c.Tracks == "" {
		return track.DefaultCatalog()
	}
	return track.LoadCatalog(c.Tracks, track.DefaultBuildOptions())
}
