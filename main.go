package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/raydist/go-sdf-raytracer/pkg/config"
	"github.com/raydist/go-sdf-raytracer/pkg/renderer"
	"github.com/raydist/go-sdf-raytracer/pkg/scene"
)

func main() {
	// Parse command line flags
	sceneFlag := flag.String("scene", "default", "Scene: 'default', 'mirror', or a path to a .toml scene file")
	configPath := flag.String("config", "", "Path to a TOML render config file")
	elapsed := flag.Float64("time", 0, "Elapsed scene time in seconds (drives animation)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("SDF Sphere-Tracing Renderer")
		fmt.Println("Usage: sdf-raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		fmt.Println("  default      - Showcase scene with all primitive kinds")
		fmt.Println("  mirror       - Mirror sphere facing a colored sphere")
		fmt.Println("  <path>.toml  - Scene loaded from a TOML description")
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
		return
	}

	fmt.Println("Starting SDF sphere-tracing renderer...")

	selectedScene, sceneName, err := selectScene(*sceneFlag)
	if err != nil {
		fmt.Printf("Error loading scene: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	r, err := renderer.NewRenderer(selectedScene, cfg.Options(), logger)
	if err != nil {
		fmt.Printf("Error creating renderer: %v\n", err)
		os.Exit(1)
	}

	// Create output directory for this scene
	outputDir := filepath.Join("output", sceneName)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	// Render one frame
	startTime := time.Now()
	img, err := r.RenderFrame(*elapsed)
	if err != nil {
		fmt.Printf("Error rendering frame: %v\n", err)
		os.Exit(1)
	}
	renderTime := time.Since(startTime)

	opts := cfg.Options()
	fmt.Printf("Render completed in %v\n", renderTime)
	fmt.Printf("Image: %dx%d, supersample x%d, max bounces %d\n",
		opts.Width, opts.Height, opts.Supersample, opts.MaxBounces)

	// Create timestamped filename
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		fmt.Printf("Error creating file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		fmt.Printf("Error encoding PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Saved %s\n", filename)
}

// selectScene resolves the scene flag into a scene and a directory name
func selectScene(name string) (*scene.Scene, string, error) {
	switch {
	case name == "default":
		return scene.NewDefaultScene(), "default", nil
	case name == "mirror":
		return scene.NewMirrorScene(), "mirror", nil
	case strings.HasSuffix(name, ".toml"):
		s, err := config.LoadScene(name)
		if err != nil {
			return nil, "", err
		}
		base := strings.TrimSuffix(filepath.Base(name), ".toml")
		return s, base, nil
	default:
		return nil, "", fmt.Errorf("unknown scene %q", name)
	}
}
