package imaging

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// MaxImageBytes is the largest image payload accepted, fetched or inline.
const MaxImageBytes = 5 * 1024 * 1024

// FetchTimeout bounds a single image download.
const FetchTimeout = 10 * time.Second

// supportedFormats are the media-type fragments accepted for fetched images.
var supportedFormats = []string{"jpeg", "jpg", "png", "gif", "webp"}

// Input is a normalized image reference. Exactly one of the two views is
// meaningful for a URL that was not fetched; both are set after a fetch.
type Input struct {
	// URL is the remote location, set when image_data was an HTTP(S) URL.
	URL string

	// Data holds the decoded image bytes, set for inline payloads and for
	// fetched URLs.
	Data []byte
}

// Resolver turns a raw image_data string into an Input.
type Resolver interface {
	Resolve(ctx context.Context, imageData string) (*Input, error)
}

// Source resolves image inputs by fetching URLs and decoding inline data.
type Source struct {
	client *http.Client
}

// NewSource creates a Source with the default fetch timeout.
func NewSource() *Source {
	return &Source{
		client: &http.Client{Timeout: FetchTimeout},
	}
}

// NewSourceWithClient creates a Source using the given HTTP client.
// The caller owns the client's timeout configuration.
func NewSourceWithClient(client *http.Client) *Source {
	return &Source{client: client}
}

// Resolve fetches or decodes imageData and returns the prepared bytes.
// Fetched and inline images are both decoded and downscaled to the
// dimension bound before being returned.
func (s *Source) Resolve(ctx context.Context, imageData string) (*Input, error) {
	if isURL(imageData) {
		data, err := s.fetch(ctx, imageData)
		if err != nil {
			return nil, err
		}
		prepared, err := Prepare(data)
		if err != nil {
			return nil, err
		}
		return &Input{URL: imageData, Data: prepared}, nil
	}

	data, err := decodeInline(imageData)
	if err != nil {
		return nil, err
	}
	prepared, err := Prepare(data)
	if err != nil {
		return nil, err
	}
	return &Input{Data: prepared}, nil
}

// fetch downloads a remote image, enforcing the content-type allow-list and
// the size cap.
func (s *Source) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid image URL: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !isSupportedType(contentType) {
		return nil, fmt.Errorf("unsupported image content type: %q", contentType)
	}

	// Read one byte past the cap so oversized bodies are detected without
	// buffering the whole payload.
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("image exceeds %d byte limit", MaxImageBytes)
	}

	return data, nil
}

// LocalSource resolves image inputs without network or pixel access.
// URLs pass through unfetched; inline data is base64-decoded and size
// checked but never pixel-decoded.
type LocalSource struct{}

// NewLocalSource creates a LocalSource.
func NewLocalSource() *LocalSource {
	return &LocalSource{}
}

// Resolve normalizes imageData syntactically.
func (s *LocalSource) Resolve(ctx context.Context, imageData string) (*Input, error) {
	if isURL(imageData) {
		return &Input{URL: imageData}, nil
	}

	data, err := decodeInline(imageData)
	if err != nil {
		return nil, err
	}
	return &Input{Data: data}, nil
}

// decodeInline strips any data-URL prefix, base64-decodes the payload, and
// enforces the size cap.
func decodeInline(imageData string) ([]byte, error) {
	payload := imageData
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ",")
		if idx < 0 {
			return nil, fmt.Errorf("malformed data URL: missing comma separator")
		}
		payload = payload[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image data: %w", err)
	}
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("image exceeds %d byte limit", MaxImageBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image data")
	}

	return data, nil
}

func isURL(imageData string) bool {
	return strings.HasPrefix(imageData, "http://") || strings.HasPrefix(imageData, "https://")
}

func isSupportedType(contentType string) bool {
	ct := strings.ToLower(contentType)
	for _, format := range supportedFormats {
		if strings.Contains(ct, format) {
			return true
		}
	}
	return false
}
