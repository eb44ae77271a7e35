package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// NarrativeFile is the config file name inside the config directory.
const NarrativeFile = "narrative.yaml"

// Loader loads narrative configuration from YAML files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadNarrative loads narrative.yaml on top of the defaults and validates it.
func (l *Loader) LoadNarrative() (*NarrativeConfig, error) {
	data, err := fs.ReadFile(l.fsys, NarrativeFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", NarrativeFile, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", NarrativeFile, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", NarrativeFile, err)
	}

	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *NarrativeConfig {
	return &NarrativeConfig{
		Display: DisplayConfig{
			ScreenWidth:  1280,
			ScreenHeight: 720,
			Scale:        1,
			TPS:          60,
			Title:        "Descent",
			BarHeight:    100,
		},
		Assets: AssetsConfig{
			Background:    "/bg.jpg",
			BackgroundAlt: "/bg2.jpg",
			Subject:       "/char.png",
			SubjectAlt:    "/char02.png",
		},
		Audio: AudioConfig{
			Path:       "/bgm.mp3",
			SampleRate: 44100,
			Volume:     0.6,
			FadeIn:     3.0,
			FadeOut:    1.0,
		},
		Transitions: TransitionsConfig{
			EntryDelay:  0.5,
			OverlayFade: 1.0,
			Crossfade:   CrossfadeConfig{Duration: 1.2, OutgoingAlpha: 0.5},
			Slide:       SlideConfig{Duration: 1.5},
			Restart:     RestartConfig{FadeOut: 1.0, FadeIn: 1.5},
		},
		Gestures: GesturesConfig{
			Hold: HoldConfig{
				RiseRate:    0.9,
				DecayRate:   1.8,
				Threshold:   1.0,
				Radius:      120,
				SettleDelay: 1.5,
			},
			Click: ClickConfig{
				Increment:   0.30,
				DecayRate:   0.05,
				Threshold:   1.0,
				SettleDelay: 2.0,
			},
			WheelThreshold: 50,
		},
		Scenes: ScenesConfig{
			Intro: IntroConfig{
				ParallaxStrength: 0.05,
				ShakeIntensity:   0.1,
				RGBSplit:         3.0,
				LightAlpha:       0.3,
				LightAngle:       0.5,
				LightMoveSpeed:   0.5,
				WindSpeedX:       90,
				WindSpeedY:       -12,
				Petals:           80,
				Bokehs:           10,
				Beams:            3,
				SubjectScale:     0.52,
				BackgroundScale:  2.13,
			},
			Descent: DescentConfig{
				FallSpeed:    1.2,
				SubjectScale: 0.6,
				Motes:        40,
				Ripples:      3,
			},
			Resolution: ResolutionConfig{
				Text:        "MEMORY RESTORED",
				CharSpacing: 45,
			},
		},
	}
}

// Validate reports every setting that cannot drive the narrative.
func (c *NarrativeConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Display.ScreenWidth > 0 && c.Display.ScreenHeight > 0,
		"display size must be positive, got %dx%d", c.Display.ScreenWidth, c.Display.ScreenHeight)
	check(c.Display.TPS > 0, "display.tps must be positive, got %d", c.Display.TPS)
	check(len(c.Assets.URIs()) > 0, "at least one asset is required")
	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume must be in [0,1], got %v", c.Audio.Volume)
	check(c.Audio.FadeIn > 0 && c.Audio.FadeOut > 0, "audio fades must be positive")
	check(c.Transitions.Crossfade.Duration > 0, "transitions.crossfade.duration must be positive")
	check(c.Transitions.Slide.Duration > 0, "transitions.slide.duration must be positive")
	check(c.Transitions.Restart.FadeOut > 0 && c.Transitions.Restart.FadeIn > 0, "transitions.restart fades must be positive")
	check(c.Transitions.EntryDelay >= 0, "transitions.entryDelay must not be negative")
	check(c.Gestures.Hold.RiseRate > 0 && c.Gestures.Hold.DecayRate >= 0, "gestures.hold rates are invalid")
	check(c.Gestures.Click.Increment > 0 && c.Gestures.Click.DecayRate >= 0, "gestures.click rates are invalid")
	check(c.Gestures.Hold.Threshold > 0 && c.Gestures.Hold.Threshold <= 1, "gestures.hold.threshold must be in (0,1]")
	check(c.Gestures.Click.Threshold > 0 && c.Gestures.Click.Threshold <= 1, "gestures.click.threshold must be in (0,1]")

	return errors.Join(errs...)
}
