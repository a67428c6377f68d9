package renderer

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/raydist/go-sdf-raytracer/pkg/core"
	"github.com/raydist/go-sdf-raytracer/pkg/encoder"
	"github.com/raydist/go-sdf-raytracer/pkg/scene"
	"github.com/raydist/go-sdf-raytracer/pkg/sdf"
	"github.com/raydist/go-sdf-raytracer/pkg/shading"
)

// Options configures the frame pipeline
type Options struct {
	Width       int
	Height      int
	TileSize    int
	Workers     int // <= 0 means one per CPU
	Supersample int // render at N x resolution, downscale on output
	MaxBounces  int
	March       sdf.Config
	Frame       shading.FrameParams
	Camera      CameraConfig
}

// DefaultOptions returns a 720p single-sample configuration with the
// default marching bounds
func DefaultOptions() Options {
	return Options{
		Width:       1280,
		Height:      720,
		TileSize:    32,
		Supersample: 1,
		MaxBounces:  3,
		March:       sdf.DefaultConfig(),
		Frame:       shading.DefaultFrameParams(),
		Camera:      DefaultCameraConfig(),
	}
}

// Renderer drives the per-frame pipeline: snapshot the scene through the
// encoder, build the distance field, then fan pixel work out to tiles.
type Renderer struct {
	scene     *scene.Scene
	opts      Options
	encoder   *encoder.Encoder
	snapshots encoder.SnapshotContainer
	logger    core.Logger
}

// NewRenderer creates a renderer for the given scene
func NewRenderer(sc *scene.Scene, opts Options, logger core.Logger) (*Renderer, error) {
	if sc == nil {
		return nil, fmt.Errorf("renderer: scene must not be nil")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("renderer: invalid image size %dx%d", opts.Width, opts.Height)
	}
	if opts.TileSize <= 0 {
		opts.TileSize = 32
	}
	if opts.Supersample <= 0 {
		opts.Supersample = 1
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Renderer{
		scene:   sc,
		opts:    opts,
		encoder: encoder.NewEncoder(logger),
		logger:  logger,
	}, nil
}

// Snapshot returns the scene buffer published for the most recent frame
func (r *Renderer) Snapshot() *encoder.SceneBuffer {
	return r.snapshots.Latest()
}

// RenderFrame renders one frame at the given elapsed time. The scene is
// advanced and encoded exactly once, before any pixel work starts; pixel
// tasks read only the immutable snapshot, so the output is identical
// regardless of worker count.
func (r *Renderer) RenderFrame(elapsed float64) (image.Image, error) {
	r.scene.Advance(elapsed)

	buf := r.encoder.Encode(r.scene.Shapes(), r.scene.Materials())
	r.snapshots.Publish(buf)

	params := r.opts.Frame
	params.Time = elapsed

	field := sdf.NewFieldFromBuffer(buf)
	marcher := sdf.NewMarcher(field, r.opts.March)
	shader := shading.NewShader(marcher, buf, params, r.opts.MaxBounces)

	width := r.opts.Width * r.opts.Supersample
	height := r.opts.Height * r.opts.Supersample

	cameraConfig := r.opts.Camera
	cameraConfig.AspectRatio = float64(r.opts.Width) / float64(r.opts.Height)
	camera := NewCamera(cameraConfig)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	renderTile := func(tile *Tile) int {
		return renderTileBounds(img, tile.Bounds, width, height, camera, shader)
	}

	tiles := NewTileGrid(width, height, r.opts.TileSize)
	pool := NewWorkerPool(r.opts.Workers, len(tiles), renderTile)
	pool.Start()
	for _, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: tile.ID})
	}
	pool.Stop()

	totalPixels := 0
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		totalPixels += result.Pixels
	}
	r.logger.Printf("frame t=%.2fs: %d shapes, %d tiles, %d pixels",
		elapsed, buf.ActiveShapes, len(tiles), totalPixels)

	if r.opts.Supersample > 1 {
		return downscale(img, r.opts.Width, r.opts.Height), nil
	}
	return img, nil
}

// renderTileBounds shades every pixel within bounds and returns the pixel
// count. Pixel centers map to [0,1] screen coordinates with t flipped so
// image row 0 is the top of the viewport.
func renderTileBounds(img *image.RGBA, bounds image.Rectangle, width, height int, camera *Camera, shader *shading.Shader) int {
	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			s := (float64(i) + 0.5) / float64(width)
			t := 1 - (float64(j)+0.5)/float64(height)

			radiance := shader.Shade(camera.GetRay(s, t))
			img.SetRGBA(i, j, toRGBA(shading.ToneMap(radiance)))
		}
	}
	return bounds.Dx() * bounds.Dy()
}

// toRGBA converts a tone-mapped [0,1] color to an 8-bit pixel
func toRGBA(c core.Vec3) color.RGBA {
	return color.RGBA{
		R: uint8(c.X*255 + 0.5),
		G: uint8(c.Y*255 + 0.5),
		B: uint8(c.Z*255 + 0.5),
		A: 255,
	}
}

// downscale resamples a supersampled frame to the output resolution with
// a Catmull-Rom kernel
func downscale(src *image.RGBA, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
