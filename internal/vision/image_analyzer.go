package vision

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/effect"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/a11ytools/alt-text-mcp/internal/imaging"
)

// Thresholds for the pixel-derived analysis. Tuned on screenshots and
// product photography; see the analyzer tests for the reference images.
const (
	// decorativeSpread is the mean Lab distance from the average color
	// below which an image is considered a flat decorative fill.
	decorativeSpread = 0.04

	// simpleEdgeDensity and complexEdgeDensity bound the "moderate" band
	// of visual detail (0-1), taken as the larger of mean Sobel magnitude
	// and mean neighbor contrast.
	simpleEdgeDensity  = 0.02
	complexEdgeDensity = 0.15

	// sampleStride controls pixel sampling; full scans are unnecessary for
	// these aggregate statistics. Odd so sampling never locks onto one
	// parity of a pixel-alternating pattern.
	sampleStride = 3
)

// ImageAnalyzer derives the accessibility analysis from pixel data.
//
// Decorative detection uses perceptual color spread, complexity uses Sobel
// edge density combined with neighbor contrast, and text detection uses OCR
// when the binary is built with cgo on Linux (a stub reports no text
// elsewhere).
type ImageAnalyzer struct{}

// NewImageAnalyzer creates an ImageAnalyzer.
func NewImageAnalyzer() *ImageAnalyzer {
	return &ImageAnalyzer{}
}

// Analyze decodes the image and computes the analysis fields.
func (a *ImageAnalyzer) Analyze(ctx context.Context, img *imaging.Input) (*Accessibility, error) {
	if img == nil || len(img.Data) == 0 {
		return nil, fmt.Errorf("no image data to analyze")
	}

	decoded, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image for analysis: %w", err)
	}

	spread := colorSpread(decoded)
	density := math.Max(edgeDensity(decoded), localContrast(decoded))

	containsText, err := detectText(decoded)
	if err != nil {
		return nil, fmt.Errorf("text detection failed: %w", err)
	}

	decorative := spread < decorativeSpread && !containsText

	complexity := "moderate"
	switch {
	case density < simpleEdgeDensity:
		complexity = "simple"
	case density > complexEdgeDensity:
		complexity = "complex"
	}

	approach := "descriptive"
	if decorative {
		approach = "decorative"
	}

	return &Accessibility{
		IsDecorative:        decorative,
		ContainsText:        containsText,
		ComplexityLevel:     complexity,
		RecommendedApproach: approach,
		WCAGConsiderations:  append([]string(nil), wcagConsiderations...),
	}, nil
}

// colorSpread returns the mean perceptual (Lab) distance of sampled pixels
// from the image's average color. Near-zero means a flat fill.
func colorSpread(img image.Image) float64 {
	bounds := img.Bounds()

	var sumR, sumG, sumB float64
	var count int
	for y := bounds.Min.Y; y < bounds.Max.Y; y += sampleStride {
		for x := bounds.Min.X; x < bounds.Max.X; x += sampleStride {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			sumR += c.R
			sumG += c.G
			sumB += c.B
			count++
		}
	}
	if count == 0 {
		return 0
	}

	mean := colorful.Color{R: sumR / float64(count), G: sumG / float64(count), B: sumB / float64(count)}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y += sampleStride {
		for x := bounds.Min.X; x < bounds.Max.X; x += sampleStride {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			total += mean.DistanceLab(c)
		}
	}
	return total / float64(count)
}

// localContrast returns the mean absolute luminance difference between
// adjacent pixels, normalized to 0-1. Period-one texture is invisible to a
// Sobel window (the x-1 and x+1 columns match, so the gradients cancel);
// neighbor contrast catches it.
func localContrast(img image.Image) float64 {
	bounds := img.Bounds()

	var total float64
	var count int
	for y := bounds.Min.Y; y < bounds.Max.Y-1; y += sampleStride {
		for x := bounds.Min.X; x < bounds.Max.X-1; x += sampleStride {
			l := luminance(img.At(x, y))
			total += math.Abs(l - luminance(img.At(x+1, y)))
			total += math.Abs(l - luminance(img.At(x, y+1)))
			count += 2
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

func luminance(c color.Color) float64 {
	r, g, b, _ := c.RGBA()
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 65535
}

// edgeDensity returns the mean Sobel gradient magnitude normalized to 0-1.
func edgeDensity(img image.Image) float64 {
	edges := effect.Sobel(img)
	bounds := edges.Bounds()

	var total float64
	var count int
	for y := bounds.Min.Y; y < bounds.Max.Y; y += sampleStride {
		for x := bounds.Min.X; x < bounds.Max.X; x += sampleStride {
			r, g, b, _ := edges.At(x, y).RGBA()
			total += float64(r+g+b) / (3 * 65535)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}
