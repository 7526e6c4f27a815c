package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"log"
	"os"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"

	// Extra decoders beyond the stdlib PNG/JPEG/GIF set.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/ironsheep/keypoint-detect/internal/render"
	"github.com/ironsheep/keypoint-detect/pkg/keypoint"
	"github.com/ironsheep/keypoint-detect/pkg/plane"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// result is the JSON document printed to stdout.
type result struct {
	Count  int                      `json:"count"`
	Points []keypoint.InterestPoint `json:"points"`
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("keypoint-detect %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	var (
		input       = flag.String("input", "", "path to the input image (png, jpeg, gif, bmp, tiff, webp)")
		operator    = flag.String("operator", "harris", "interest operator: harris or log")
		threshold   = flag.Float64("threshold", -1, "interest threshold (negative = operator default)")
		harrisK     = flag.Float64("k", -1, "Harris k; negative selects the Noble measure")
		octaves     = flag.Int("octaves", keypoint.DefaultOctaves, "number of pyramid octaves")
		scales      = flag.Int("scales", keypoint.DefaultScalesPerOctave, "scales per octave")
		maxPoints   = flag.Int("max-points", keypoint.DefaultMaxPoints, "culling budget per octave (0 = unlimited)")
		tileDim     = flag.Int("tile", 0, "max tile dimension for large images (0 = no tiling)")
		singleScale = flag.Bool("single-scale", false, "skip the pyramid and detect at the input scale only")
		preblur     = flag.Float64("preblur", 0, "Gaussian pre-blur radius applied before detection (0 = off)")
		overlay     = flag.String("overlay", "", "write a marked-up copy of the input to this path")
		debugDir    = flag.String("debug-dir", "", "dump normalized intermediate planes as PNGs into this directory")
	)
	flag.Parse()

	// Logging goes to stderr; stdout carries the JSON result.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime)

	if os.Getenv("KEYPOINT_DETECT_LOG_LEVEL") == "debug" {
		log.Printf("keypoint-detect v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*input, *operator, *threshold, *harrisK,
		*octaves, *scales, *maxPoints, *tileDim, *singleScale, *preblur, *overlay, *debugDir); err != nil {
		log.Fatalf("keypoint-detect: %v", err)
	}
}

func run(input, operator string, threshold, harrisK float64,
	octaves, scales, maxPoints, tileDim int, singleScale bool, preblur float64, overlay, debugDir string) error {

	img, err := imaging.Open(input)
	if err != nil {
		return fmt.Errorf("opening %s: %w", input, err)
	}

	var src image.Image = img
	if preblur > 0 {
		src = blur.Gaussian(src, preblur)
	}

	op, err := buildOperator(operator, threshold, harrisK)
	if err != nil {
		return err
	}

	var driver keypoint.Driver
	if singleScale {
		driver, err = keypoint.NewDetector(op, maxPoints)
	} else {
		driver, err = keypoint.NewScaledDetector(op, scales, octaves, maxPoints)
	}
	if err != nil {
		return err
	}

	points, err := keypoint.Detect(driver, src, tileDim)
	if err != nil {
		return err
	}
	log.Printf("%d interest points found", len(points))

	if overlay != "" {
		if err := imaging.Save(render.Overlay(img, points), overlay); err != nil {
			return fmt.Errorf("writing overlay: %w", err)
		}
	}

	if debugDir != "" {
		if err := dumpPlanes(src, op, debugDir); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result{Count: len(points), Points: points})
}

// dumpPlanes recomputes the derived planes for the input at its base scale
// and writes them to dir.
func dumpPlanes(src image.Image, op keypoint.Operator, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	p, err := plane.FromImage(src)
	if err != nil {
		return err
	}
	data := keypoint.NewImageData(p)
	op.Compute(data, 1)
	return keypoint.WriteDebugImages(data, dir, "")
}

// buildOperator constructs the configured interest operator, applying
// defaults for unset threshold/k values.
func buildOperator(name string, threshold, harrisK float64) (keypoint.Operator, error) {
	switch name {
	case "harris":
		op := keypoint.NewHarris()
		if threshold >= 0 {
			op.MinScore = threshold
		}
		op.K = harrisK
		return op, nil
	case "log":
		op := keypoint.NewLoG()
		if threshold >= 0 {
			op.MinScore = threshold
		}
		return op, nil
	default:
		return nil, fmt.Errorf("unknown operator %q (want harris or log)", name)
	}
}
