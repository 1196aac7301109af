// Command keyframes samples keyframe timelines. It either prints the dense
// samples of one track or serves every track live over WebSocket.
//
//	keyframes -script star.yaml -sample 100 -track scale
//	keyframes -config stream.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/phanxgames/keyframe"
	"github.com/phanxgames/keyframe/stream"
)

func main() {
	defaults := stream.DefaultConfig()
	var (
		configPath = flag.String("config", "", "path to a stream config YAML file")
		scriptPath = flag.String("script", "", "path to a keyframe script (YAML or JSON)")
		addr       = flag.String("addr", defaults.Addr, "HTTP listen address")
		fps        = flag.Int("fps", defaults.FPS, "live sampling rate")
		loop       = flag.Bool("loop", defaults.Loop, "restart tracks when they end")
		sample     = flag.Int("sample", 0, "print this many intervals of dense samples and exit")
		track      = flag.String("track", "", "track to print with -sample (default: first)")
		bpm        = flag.Float64("bpm", 70, "heartbeat rate of the built-in demo tracks")
		debug      = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	// Config file values override flags.
	cfg := stream.Config{Addr: *addr, FPS: *fps, Loop: *loop, Script: *scriptPath}
	if *configPath != "" {
		c, err := stream.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("load config")
		}
		cfg = *c
		if cfg.Script == "" {
			cfg.Script = *scriptPath
		}
	}

	names, tracks, err := loadTracks(cfg.Script, *bpm)
	if err != nil {
		log.Fatal().Err(err).Str("script", cfg.Script).Msg("load tracks")
	}
	log.Info().Strs("tracks", names).Msg("tracks ready")

	if *sample > 0 {
		name := *track
		if name == "" {
			name = names[0]
		}
		if err := printSamples(tracks, name, *sample); err != nil {
			log.Fatal().Err(err).Msg("sample")
		}
		return
	}

	if err := serve(cfg, stream.NewHub(names, tracks, cfg.Loop)); err != nil {
		log.Fatal().Err(err).Msg("serve")
	}
}

// loadTracks builds the script's tracks, or the built-in demo tracks when no
// script is given.
func loadTracks(path string, bpm float64) ([]string, map[string]*keyframe.Timeline, error) {
	if path == "" {
		return demoTracks(bpm)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	script, err := keyframe.LoadScript(data)
	if err != nil {
		return nil, nil, err
	}
	tracks, err := script.Build()
	if err != nil {
		return nil, nil, err
	}
	return script.Names(), tracks, nil
}

func demoTracks(bpm float64) ([]string, map[string]*keyframe.Timeline, error) {
	tracks := map[string]*keyframe.Timeline{}
	var err error
	if tracks["heartbeat"], err = keyframe.Heartbeat(bpm); err != nil {
		return nil, nil, err
	}
	if tracks["star_scale"], err = keyframe.StarScale(); err != nil {
		return nil, nil, err
	}
	if tracks["star_rotation"], err = keyframe.StarRotation(1); err != nil {
		return nil, nil, err
	}
	if tracks["graph"], err = (keyframe.Keyframes{
		keyframe.SpringKeyframe(keyframe.DefaultSpring),
		keyframe.SpringKeyframe(keyframe.DefaultSpring),
	}).Timeline(1, 2); err != nil {
		return nil, nil, err
	}
	return []string{"heartbeat", "star_scale", "star_rotation", "graph"}, tracks, nil
}

func printSamples(tracks map[string]*keyframe.Timeline, name string, n int) error {
	tl, ok := tracks[name]
	if !ok {
		return fmt.Errorf("no track %q", name)
	}
	for _, s := range tl.Sample(n) {
		fmt.Printf("%.4f\t%.4f\t%.6f\n", s.Progress, s.Time, s.Value)
	}
	return nil
}

func serve(cfg stream.Config, hub *stream.Hub) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Addr: cfg.Addr, Handler: hub.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		if err := hub.Run(ctx, cfg.FPS); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("sampling loop")
		}
	}()

	log.Info().Str("addr", cfg.Addr).Int("fps", cfg.FPS).Bool("loop", cfg.Loop).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info().Msg("stopped")
	return nil
}
