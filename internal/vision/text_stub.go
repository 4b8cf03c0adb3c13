//go:build !cgo || !linux

package vision

import "image"

// detectText is a stub for builds without Tesseract support. It reports no
// text rather than failing the whole analysis.
func detectText(img image.Image) (bool, error) {
	return false, nil
}
