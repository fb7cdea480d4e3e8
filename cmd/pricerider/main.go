package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pricerider/audio"
	"github.com/lixenwraith/pricerider/config"
	"github.com/lixenwraith/pricerider/engine"
	"github.com/lixenwraith/pricerider/parameter"
	"github.com/lixenwraith/pricerider/render"
	"github.com/lixenwraith/pricerider/status"
	"github.com/lixenwraith/pricerider/telemetry"
)

var (
	configFlag    = flag.String("config", "", "YAML configuration file")
	debugFlag     = flag.Bool("debug", false, "Write logs to logs/pricerider.log")
	trackFlag     = flag.String("track", "", "Initial track id (e.g. BTC)")
	telemetryFlag = flag.String("telemetry", "", "Telemetry listen address (e.g. :8090); empty disables")
)

func main() {
	var screen tcell.Screen

	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			if screen != nil {
				screen.Fini()
			}
			fmt.Fprintf(os.Stderr, "\n\x1b[31mPRICERIDER CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	if *telemetryFlag != "" {
		cfg.Telemetry.Addr = *telemetryFlag
	}
	if *trackFlag != "" {
		cfg.Track = *trackFlag
	}

	catalog, err := cfg.Catalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Track catalog error: %v\n", err)
		os.Exit(1)
	}
	keys, err := cfg.KeyTable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Key configuration error: %v\n", err)
		os.Exit(1)
	}

	registry := status.NewRegistry()
	opts := cfg.GameOptions()
	opts.Registry = registry
	game, err := engine.NewGame(catalog, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Game setup failed: %v\n", err)
		os.Exit(1)
	}
	if cfg.Track != "" {
		if err := game.SelectTrack(cfg.Track); err != nil {
			fmt.Fprintf(os.Stderr, "Track %q: %v\n", cfg.Track, err)
			os.Exit(1)
		}
	}

	// Audio is optional; the game runs silent without a device
	audioCfg := audio.DefaultConfig()
	audioCfg.Enabled = cfg.Audio.Enabled
	audioCfg.MasterVolume = cfg.Audio.Volume
	sound := audio.NewSoundManager(audioCfg)
	if err := sound.Initialize(); err != nil {
		log.Printf("Audio initialization failed: %v (continuing without audio)", err)
	}
	defer sound.Cleanup()

	stopAudio := make(chan struct{})
	defer close(stopAudio)
	go audio.NewMonitor(registry, sound).Run(stopAudio, parameter.FrameUpdateInterval)

	if cfg.Telemetry.Addr != "" {
		srv := telemetry.NewServer(registry, catalog, cfg.Telemetry.PushInterval)
		if _, err := srv.Start(cfg.Telemetry.Addr); err != nil {
			fmt.Fprintf(os.Stderr, "Telemetry: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	screen, err = tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableFocus()
	screen.HideCursor()

	renderer := render.NewTerminalRenderer(screen)
	h := newHost(game, keys)

	eventChan := make(chan tcell.Event, 256)
	go func() {
		// Panic recovery for input polling goroutine to ensure terminal cleanup
		defer func() {
			if r := recover(); r != nil {
				screen.Fini()
				fmt.Fprintf(os.Stderr, "\r\n\x1b[31mEVENT POLLER CRASHED: %v\x1b[0m\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(1)
			}
		}()
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	frameTicker := time.NewTicker(parameter.FrameUpdateInterval)
	defer frameTicker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-eventChan:
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
			}
			h.handleEvent(ev, time.Now())

		case now := <-frameTicker.C:
			dt := now.Sub(last).Seconds()
			last = now

			h.frame(now, dt)
			if h.quit {
				log.Printf("[HOST] quit")
				return
			}
			renderer.RenderFrame(render.FrameFromGame(game, h.menu()))
		}
	}
}
