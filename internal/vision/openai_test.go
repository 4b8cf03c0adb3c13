package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a11ytools/alt-text-mcp/internal/imaging"
)

func TestOpenAICaptioner_Caption(t *testing.T) {
	var gotAuth string
	var gotBody chatRequest

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"A cat\nA tabby cat on a windowsill\nA tabby cat sleeping on a sunlit windowsill beside a plant"}}]}`))
	}))
	defer ts.Close()

	c := NewOpenAICaptioner("test-key", ts.URL, "test-model")

	captions, err := c.Caption(context.Background(),
		&imaging.Input{URL: "https://example.com/cat.jpg"}, "Page topic: pets")
	if err != nil {
		t.Fatalf("Caption: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization: got %q", gotAuth)
	}
	if gotBody.Model != "test-model" {
		t.Errorf("model: got %q", gotBody.Model)
	}
	if len(gotBody.Messages) != 2 {
		t.Fatalf("messages: got %d, want 2", len(gotBody.Messages))
	}
	user := gotBody.Messages[1]
	if user.Content[1].ImageURL == nil || user.Content[1].ImageURL.URL != "https://example.com/cat.jpg" {
		t.Errorf("image_url not forwarded: %+v", user.Content[1])
	}

	if len(captions) != 3 {
		t.Fatalf("captions: got %d, want 3", len(captions))
	}
	if captions[0].Text != "A cat" {
		t.Errorf("first caption: got %q", captions[0].Text)
	}
}

func TestOpenAICaptioner_InlineDataBecomesDataURL(t *testing.T) {
	var gotURL string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body chatRequest
		json.NewDecoder(r.Body).Decode(&body)
		gotURL = body.Messages[1].Content[1].ImageURL.URL
		w.Write([]byte(`{"choices":[{"message":{"content":"A thing"}}]}`))
	}))
	defer ts.Close()

	c := NewOpenAICaptioner("k", ts.URL, "")
	if _, err := c.Caption(context.Background(), &imaging.Input{Data: []byte{1, 2, 3}}, ""); err != nil {
		t.Fatalf("Caption: %v", err)
	}
	if !strings.HasPrefix(gotURL, "data:image/png;base64,") {
		t.Errorf("inline data should be sent as data URL, got %q", gotURL)
	}
}

func TestOpenAICaptioner_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer ts.Close()

	c := NewOpenAICaptioner("bad", ts.URL, "")
	_, err := c.Caption(context.Background(), &imaging.Input{URL: "https://example.com/a.jpg"}, "")
	if err == nil || !strings.Contains(err.Error(), "invalid api key") {
		t.Errorf("expected API error, got %v", err)
	}
}

func TestOpenAICaptioner_NoImage(t *testing.T) {
	c := NewOpenAICaptioner("k", "http://unused", "")
	if _, err := c.Caption(context.Background(), nil, ""); err == nil {
		t.Error("expected error for nil input")
	}
	if _, err := c.Caption(context.Background(), &imaging.Input{}, ""); err == nil {
		t.Error("expected error for empty input")
	}
}
