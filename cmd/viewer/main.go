package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/krisvanner/doorscope/internal/config"
	"github.com/krisvanner/doorscope/internal/display"
	"github.com/krisvanner/doorscope/internal/frame"
	"github.com/krisvanner/doorscope/internal/log"
	"github.com/krisvanner/doorscope/internal/transport"
	"github.com/krisvanner/doorscope/internal/viewer"
	"github.com/krisvanner/doorscope/internal/web"
)

func main() {
	cfg := config.ParseViewerFlags()
	log.Init(cfg.LogLevel)

	if cfg.Port == "" && !cfg.Demo {
		log.Error("no serial port given; use -port (or -demo for a synthetic feed)")
		os.Exit(1)
	}

	frameCfg := frame.DefaultConfig()
	frameCfg.Width = cfg.Width
	frameCfg.Height = cfg.Height

	src, err := openSource(cfg, frameCfg)
	if err != nil {
		log.Error("open source", "err", err)
		log.Info("check the -port value and make sure the IDE serial monitor is closed")
		os.Exit(1)
	}
	defer src.Close()

	reader, err := frame.NewReader(src, frameCfg)
	if err != nil {
		log.Error("configure reader", "err", err)
		os.Exit(1)
	}

	log.Info("viewer starting",
		"port", cfg.Port, "baud", cfg.Baud,
		"width", cfg.Width, "height", cfg.Height, "demo", cfg.Demo)

	win := display.NewWindow(cfg.Width, cfg.Height)
	sinks := []viewer.Sink{win}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.HTTPAddr != "" {
		feed := web.NewServer(cfg.HTTPAddr, reader.Stats)
		sinks = append(sinks, feed)
		go func() {
			if err := feed.Run(ctx); err != nil {
				log.Error("web feed", "err", err)
			}
		}()
	}

	loop := &viewer.Loop{
		Decoder:  reader,
		Sinks:    sinks,
		Interval: cfg.Interval,
	}
	go func() {
		err := loop.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error("decode loop stopped", "err", err)
		}
		win.RequestClose()
	}()

	// Ebitengine RunGame must be on the main goroutine.
	if err := win.Run(); err != nil {
		log.Error("display", "err", err)
	}
	cancel()

	stats := reader.Stats()
	log.Info("exiting viewer",
		"frames", stats.Frames,
		"timeouts", stats.Timeouts,
		"size_mismatches", stats.SizeMismatches,
		"tokens_dropped", stats.TokensDropped)
}

// openSource opens the configured byte stream: the serial port, or the
// synthetic pattern generator in demo mode.
func openSource(cfg *config.ViewerConfig, frameCfg frame.Config) (transport.Source, error) {
	if cfg.Demo {
		return transport.NewSynth(func(seq int) []byte {
			return frameCfg.Encode(frame.Pattern(frameCfg.Width, frameCfg.Height, seq))
		}), nil
	}
	return transport.OpenSerial(transport.SerialConfig{
		Port:        cfg.Port,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
}
