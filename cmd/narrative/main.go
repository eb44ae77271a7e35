package main

import (
	"context"
	"embed"
	"errors"
	"flag"
	"io/fs"
	"math/rand/v2"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	ebitenaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/younwookim/descent/internal/application/ambient"
	"github.com/younwookim/descent/internal/application/assets"
	"github.com/younwookim/descent/internal/application/game"
	"github.com/younwookim/descent/internal/application/narrative"
	"github.com/younwookim/descent/internal/application/replay"
	"github.com/younwookim/descent/internal/application/scene"
	"github.com/younwookim/descent/internal/domain/animator"
	"github.com/younwookim/descent/internal/infrastructure/asset"
	"github.com/younwookim/descent/internal/infrastructure/audio"
	"github.com/younwookim/descent/internal/infrastructure/config"
	"github.com/younwookim/descent/internal/infrastructure/display"
	"github.com/younwookim/descent/internal/infrastructure/input"
	"github.com/younwookim/descent/internal/infrastructure/tween"
)

//go:embed configs
var configFS embed.FS

func main() {
	configDir := flag.String("config", "", "Config directory (default: embedded configs)")
	assetsDir := flag.String("assets", "assets", "Directory holding images and audio")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Replay input from file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := loadConfig(*configDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	var source game.InputSource = game.NewLiveInput()
	seed := uint64(time.Now().UnixNano())
	if *replayFlag != "" {
		data, err := replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Fatal().Err(err).Str("file", *replayFlag).Msg("failed to load replay")
		}
		source = replay.NewReplayer(*data)
		seed = data.Seed
		log.Info().Str("file", *replayFlag).Int("frames", len(data.Frames)).Msg("replaying input")
	}
	var recorder *replay.Recorder
	if *recordFlag != "" {
		recorder = replay.NewRecorder(seed)
		log.Info().Str("file", *recordFlag).Uint64("seed", seed).Msg("recording enabled")
	}

	w, h := cfg.Display.ScreenWidth, cfg.Display.ScreenHeight
	tweens := tween.NewRunner()
	hub := input.NewHub(float64(w)/2, float64(h)/2)
	stage := display.NewContainer("stage")
	overlay := game.NewOverlay(float64(w), float64(h), tweens, cfg.Transitions.OverlayFade)

	assetFS := os.DirFS(*assetsDir)
	gate := assets.NewGate(asset.NewFSResolver(assetFS), overlay)
	gate.Load(context.Background(), cfg.Assets.URIs())

	env := &scene.Env{
		Screen:   animator.Vec2{X: float64(w), Y: float64(h)},
		Config:   *cfg,
		Textures: gate,
		Input:    hub,
		Tweens:   tweens,
		Rand:     rand.New(rand.NewPCG(seed, seed>>1|1)),
	}

	fader := ambient.New(loadTrack(assetFS, cfg.Audio), tweens, ambient.Config{
		Volume:  cfg.Audio.Volume,
		FadeIn:  cfg.Audio.FadeIn,
		FadeOut: cfg.Audio.FadeOut,
	})

	n := narrative.New(narrative.Options{
		Env:     env,
		Stage:   stage,
		Gate:    gate,
		Fader:   fader,
		Overlay: overlay,
	})
	defer n.Close()

	g := game.New(game.Options{
		Narrative: n,
		Hub:       hub,
		Stage:     stage,
		Overlay:   overlay,
		Source:    source,
		Recorder:  recorder,
		ScreenW:   w,
		ScreenH:   h,
		TPS:       cfg.Display.TPS,
	})

	ebiten.SetWindowSize(int(float64(w)*cfg.Display.Scale), int(float64(h)*cfg.Display.Scale))
	ebiten.SetWindowTitle(cfg.Display.Title)
	ebiten.SetTPS(cfg.Display.TPS)

	runErr := ebiten.RunGame(g)
	if recorder != nil {
		if err := recorder.Save(*recordFlag); err != nil {
			log.Error().Err(err).Msg("failed to save recording")
		} else {
			log.Info().Str("file", *recordFlag).Int("frames", recorder.FrameCount()).Msg("recording saved")
		}
	}
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		log.Fatal().Err(runErr).Msg("game loop failed")
	}
}

func loadConfig(dir string) (*config.NarrativeConfig, error) {
	if dir != "" {
		return config.NewLoader(dir).LoadNarrative()
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, err
	}
	return config.NewFSLoader(fsys, "configs").LoadNarrative()
}

// loadTrack falls back to a silent track so the narrative runs without
// audio.
func loadTrack(fsys fs.FS, cfg config.AudioConfig) audio.Track {
	ctx := ebitenaudio.NewContext(cfg.SampleRate)
	track, err := audio.LoadMP3(ctx, fsys, cfg.Path)
	if err != nil {
		log.Warn().Err(err).Str("uri", cfg.Path).Msg("ambient track unavailable")
		return &audio.Silent{}
	}
	return track
}
