//go:build cgo && linux

package vision

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// detectText runs OCR over the image and reports whether any word was
// recognized. Requires Tesseract native libraries at build and run time.
func detectText(img image.Image) (bool, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return false, fmt.Errorf("failed to encode image for OCR: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return false, fmt.Errorf("failed to set OCR image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return false, fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text) != "", nil
}
