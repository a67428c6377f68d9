package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/raydist/go-sdf-raytracer/pkg/core"
	"github.com/raydist/go-sdf-raytracer/pkg/renderer"
	"github.com/raydist/go-sdf-raytracer/pkg/sdf"
	"github.com/raydist/go-sdf-raytracer/pkg/shading"
)

// Config is the TOML-facing render configuration. Zero values in a loaded
// file fall back to the defaults, so config files only need to name the
// settings they change.
type Config struct {
	Render RenderSettings `toml:"render"`
	March  MarchSettings  `toml:"march"`
	Light  LightSettings  `toml:"light"`
	Camera CameraSettings `toml:"camera"`
}

// RenderSettings controls image size and pipeline parallelism
type RenderSettings struct {
	Width       int `toml:"width"`
	Height      int `toml:"height"`
	TileSize    int `toml:"tile_size"`
	Workers     int `toml:"workers"`
	Supersample int `toml:"supersample"`
	MaxBounces  int `toml:"max_bounces"`
}

// MarchSettings bounds the sphere-tracing loops
type MarchSettings struct {
	MaxSteps    int     `toml:"max_steps"`
	ShadowSteps int     `toml:"shadow_steps"`
	MaxDistance float64 `toml:"max_distance"`
	Epsilon     float64 `toml:"epsilon"`
}

// LightSettings describes the directional light, ambient term, and
// background/environment
type LightSettings struct {
	Direction            [3]float64 `toml:"direction"`
	Color                [3]float64 `toml:"color"`
	Ambient              [3]float64 `toml:"ambient"`
	Background           [3]float64 `toml:"background"`
	ShadowSoftness       float64    `toml:"shadow_softness"`
	Environment          bool       `toml:"environment"`
	EnvironmentIntensity float64    `toml:"environment_intensity"`
}

// CameraSettings places the camera
type CameraSettings struct {
	Position [3]float64 `toml:"position"`
	LookAt   [3]float64 `toml:"look_at"`
	Up       [3]float64 `toml:"up"`
	VFov     float64    `toml:"vfov"`
}

// Default returns the configuration matching renderer.DefaultOptions
func Default() Config {
	opts := renderer.DefaultOptions()
	return Config{
		Render: RenderSettings{
			Width:       opts.Width,
			Height:      opts.Height,
			TileSize:    opts.TileSize,
			Supersample: opts.Supersample,
			MaxBounces:  opts.MaxBounces,
		},
		March: MarchSettings{
			MaxSteps:    opts.March.MaxSteps,
			ShadowSteps: opts.March.ShadowSteps,
			MaxDistance: opts.March.MaxDistance,
			Epsilon:     opts.March.Epsilon,
		},
		Light: LightSettings{
			Direction:            toArray(opts.Frame.LightDirection),
			Color:                toArray(opts.Frame.LightColor),
			Ambient:              toArray(opts.Frame.AmbientColor),
			Background:           toArray(opts.Frame.BackgroundColor),
			ShadowSoftness:       opts.Frame.ShadowSoftness,
			Environment:          opts.Frame.EnvironmentEnabled,
			EnvironmentIntensity: opts.Frame.EnvironmentIntensity,
		},
		Camera: CameraSettings{
			Position: toArray(opts.Camera.Center),
			LookAt:   toArray(opts.Camera.LookAt),
			Up:       toArray(opts.Camera.Up),
			VFov:     opts.Camera.VFov,
		},
	}
}

// Load reads a TOML config file over the defaults
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Options converts the configuration into renderer options
func (c Config) Options() renderer.Options {
	return renderer.Options{
		Width:       c.Render.Width,
		Height:      c.Render.Height,
		TileSize:    c.Render.TileSize,
		Workers:     c.Render.Workers,
		Supersample: c.Render.Supersample,
		MaxBounces:  c.Render.MaxBounces,
		March: sdf.Config{
			MaxSteps:    c.March.MaxSteps,
			ShadowSteps: c.March.ShadowSteps,
			MaxDistance: c.March.MaxDistance,
			Epsilon:     c.March.Epsilon,
		},
		Frame: shadingParams(c.Light),
		Camera: renderer.CameraConfig{
			Center: toVec(c.Camera.Position),
			LookAt: toVec(c.Camera.LookAt),
			Up:     toVec(c.Camera.Up),
			VFov:   c.Camera.VFov,
		},
	}
}

func shadingParams(l LightSettings) shading.FrameParams {
	return shading.FrameParams{
		LightDirection:       toVec(l.Direction).Normalize(),
		LightColor:           toVec(l.Color),
		AmbientColor:         toVec(l.Ambient),
		BackgroundColor:      toVec(l.Background),
		ShadowSoftness:       l.ShadowSoftness,
		EnvironmentEnabled:   l.Environment,
		EnvironmentIntensity: l.EnvironmentIntensity,
	}
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func toVec(a [3]float64) core.Vec3 {
	return core.NewVec3(a[0], a[1], a[2])
}
