// ostnplot renders the OSTN shift field as an image, one pixel per kilometre
// lattice node. The east shift drives the red channel and the north shift
// the blue channel, each scaled over its observed range; unpublished nodes
// come out dark grey. Output is WebP or PNG by file extension.
//
//	ostnplot -o shifts.webp ostn15.grid
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"os"
	"strings"

	"github.com/gen2brain/webp"
	"github.com/joho/godotenv"

	"github.com/osgrid/osgb/ostn"
)

func main() {
	var (
		output  string
		quality int
	)
	flag.StringVar(&output, "o", "shifts.webp", "Output image (.webp or .png)")
	flag.IntVar(&quality, "quality", 90, "WebP quality 1-100")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ostnplot [flags] [packed grid file]\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	_ = godotenv.Load() // optional .env

	path := os.Getenv("OSTN_GRID_FILE")
	if flag.NArg() == 1 {
		path = flag.Arg(0)
	}
	if path == "" {
		log.Fatal("No grid file given and OSTN_GRID_FILE not set")
	}

	grid, err := ostn.LoadFile(path)
	if err != nil {
		log.Fatalf("Shift grid: %v", err)
	}

	img := render(grid)

	data, err := encode(img, output, quality)
	if err != nil {
		log.Fatalf("Encoding: %v", err)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		log.Fatalf("Writing %s: %v", output, err)
	}
	fmt.Printf("Wrote %s (%dx%d, %d bytes)\n", output, ostn.Cols, ostn.Rows, len(data))
}

// render maps each lattice node to a pixel, north up.
func render(grid *ostn.Grid) *image.NRGBA {
	minE, maxE := math.Inf(1), math.Inf(-1)
	minN, maxN := math.Inf(1), math.Inf(-1)
	for j := 0; j < ostn.Rows; j++ {
		for i := 0; i < ostn.Cols; i++ {
			node := grid.Node(i, j)
			if node.Flag == 0 {
				continue
			}
			minE = math.Min(minE, node.East)
			maxE = math.Max(maxE, node.East)
			minN = math.Min(minN, node.North)
			maxN = math.Max(maxN, node.North)
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, ostn.Cols, ostn.Rows))
	for j := 0; j < ostn.Rows; j++ {
		for i := 0; i < ostn.Cols; i++ {
			node := grid.Node(i, j)
			px := color.NRGBA{R: 40, G: 40, B: 40, A: 255}
			if node.Flag != 0 {
				px = color.NRGBA{
					R: ramp(node.East, minE, maxE),
					G: 90,
					B: ramp(node.North, minN, maxN),
					A: 255,
				}
			}
			img.SetNRGBA(i, ostn.Rows-1-j, px)
		}
	}
	return img
}

func ramp(v, lo, hi float64) uint8 {
	if hi <= lo {
		return 0
	}
	return uint8(math.Round(255 * (v - lo) / (hi - lo)))
}

func encode(img image.Image, path string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if strings.HasSuffix(strings.ToLower(path), ".png") {
		enc := &png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	if err := webp.Encode(&buf, img, webp.Options{Lossless: true, Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
