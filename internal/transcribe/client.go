// Package transcribe submits recorded call audio to a Whisper-compatible
// speech-to-text endpoint and returns the raw transcription text. The
// service does no speaker diarization; labeling happens downstream.
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Defaults follow the hosted Whisper service used for these test calls.
const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "whisper-large-v3-turbo"
)

// Client submits audio to the transcription service.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// Opts holds parameters for creating a Client. BaseURL, Model, and
// HTTPClient are overridable for tests.
type Opts struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// New creates a transcription client.
func New(opts Opts) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("transcribe: API key is required")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 2 * time.Minute}
	}
	return &Client{
		apiKey:     opts.APIKey,
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		model:      opts.Model,
		httpClient: opts.HTTPClient,
	}, nil
}

// Result is the transcription service response. Timing segments arrive with
// verbose_json but only the text is consumed downstream.
type Result struct {
	Text     string  `json:"text"`
	Duration float64 `json:"duration"`
}

// Transcribe uploads audio bytes as a multipart form and returns the
// transcription. filename hints the audio container format to the service.
func (c *Client) Transcribe(ctx context.Context, filename string, audio []byte) (*Result, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("transcribe: build request: %w", err)
	}
	if _, err := fw.Write(audio); err != nil {
		return nil, fmt.Errorf("transcribe: build request: %w", err)
	}
	if err := mw.WriteField("model", c.model); err != nil {
		return nil, fmt.Errorf("transcribe: build request: %w", err)
	}
	if err := mw.WriteField("response_format", "verbose_json"); err != nil {
		return nil, fmt.Errorf("transcribe: build request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("transcribe: build request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return nil, fmt.Errorf("transcribe: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("transcribe: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transcribe: status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("transcribe: decode response: %w", err)
	}
	return &result, nil
}
