package config

// NarrativeConfig is the root config for narrative.yaml
type NarrativeConfig struct {
	Display     DisplayConfig     `yaml:"display"`
	Assets      AssetsConfig      `yaml:"assets"`
	Audio       AudioConfig       `yaml:"audio"`
	Transitions TransitionsConfig `yaml:"transitions"`
	Gestures    GesturesConfig    `yaml:"gestures"`
	Scenes      ScenesConfig      `yaml:"scenes"`
}

type DisplayConfig struct {
	ScreenWidth  int     `yaml:"screenWidth"`
	ScreenHeight int     `yaml:"screenHeight"`
	Scale        float64 `yaml:"scale"`
	TPS          int     `yaml:"tps"`
	Title        string  `yaml:"title"`
	BarHeight    float64 `yaml:"barHeight"` // letterbox bar height (pixels)
}

// AssetsConfig names every texture the narrative needs before entry.
type AssetsConfig struct {
	Background    string `yaml:"background"`
	BackgroundAlt string `yaml:"backgroundAlt"`
	Subject       string `yaml:"subject"`
	SubjectAlt    string `yaml:"subjectAlt"`
}

// URIs returns every configured asset URI in a stable order.
func (a AssetsConfig) URIs() []string {
	out := make([]string, 0, 4)
	for _, u := range []string{a.Background, a.BackgroundAlt, a.Subject, a.SubjectAlt} {
		if u != "" {
			out = append(out, u)
		}
	}
	return out
}

type AudioConfig struct {
	Path       string  `yaml:"path"`
	SampleRate int     `yaml:"sampleRate"`
	Volume     float64 `yaml:"volume"`  // target volume after fade-in
	FadeIn     float64 `yaml:"fadeIn"`  // seconds
	FadeOut    float64 `yaml:"fadeOut"` // seconds
}

type TransitionsConfig struct {
	EntryDelay  float64         `yaml:"entryDelay"`  // seconds between entry gesture and first scene
	OverlayFade float64         `yaml:"overlayFade"` // seconds
	Crossfade   CrossfadeConfig `yaml:"crossfade"`
	Slide       SlideConfig     `yaml:"slide"`
	Restart     RestartConfig   `yaml:"restart"`
}

type CrossfadeConfig struct {
	Duration      float64 `yaml:"duration"`
	OutgoingAlpha float64 `yaml:"outgoingAlpha"`
}

type SlideConfig struct {
	Duration float64 `yaml:"duration"`
}

type RestartConfig struct {
	FadeOut float64 `yaml:"fadeOut"`
	FadeIn  float64 `yaml:"fadeIn"`
}

type GesturesConfig struct {
	Hold           HoldConfig  `yaml:"hold"`
	Click          ClickConfig `yaml:"click"`
	WheelThreshold float64     `yaml:"wheelThreshold"` // wheel delta that advances the descent
}

// HoldConfig tunes the press-and-hold tracking mechanic. Rates are progress
// per second.
type HoldConfig struct {
	RiseRate    float64 `yaml:"riseRate"`
	DecayRate   float64 `yaml:"decayRate"`
	Threshold   float64 `yaml:"threshold"`
	Radius      float64 `yaml:"radius"`      // pointer distance that counts as on target
	SettleDelay float64 `yaml:"settleDelay"` // seconds from completion to advance
}

// ClickConfig tunes the click-accumulation mechanic.
type ClickConfig struct {
	Increment   float64 `yaml:"increment"`
	DecayRate   float64 `yaml:"decayRate"`
	Threshold   float64 `yaml:"threshold"`
	SettleDelay float64 `yaml:"settleDelay"`
}

type ScenesConfig struct {
	Intro      IntroConfig      `yaml:"intro"`
	Descent    DescentConfig    `yaml:"descent"`
	Resolution ResolutionConfig `yaml:"resolution"`
}

type IntroConfig struct {
	ParallaxStrength float64 `yaml:"parallaxStrength"`
	ShakeIntensity   float64 `yaml:"shakeIntensity"`
	RGBSplit         float64 `yaml:"rgbSplit"`
	LightAlpha       float64 `yaml:"lightAlpha"`
	LightAngle       float64 `yaml:"lightAngle"`
	LightMoveSpeed   float64 `yaml:"lightMoveSpeed"`
	WindSpeedX       float64 `yaml:"windSpeedX"` // pixels per second
	WindSpeedY       float64 `yaml:"windSpeedY"`
	Petals           int     `yaml:"petals"`
	Bokehs           int     `yaml:"bokehs"`
	Beams            int     `yaml:"beams"`
	SubjectScale     float64 `yaml:"subjectScale"`
	BackgroundScale  float64 `yaml:"backgroundScale"`
}

type DescentConfig struct {
	FallSpeed    float64 `yaml:"fallSpeed"` // pixels per second
	SubjectScale float64 `yaml:"subjectScale"`
	Motes        int     `yaml:"motes"`
	Ripples      int     `yaml:"ripples"`
}

type ResolutionConfig struct {
	Text        string  `yaml:"text"`
	CharSpacing float64 `yaml:"charSpacing"`
}
