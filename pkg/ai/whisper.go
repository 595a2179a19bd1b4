package ai

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"context"

	"github.com/johnquangdev/meeting-reporter/pkg/config"
)

// TranscriptionSegment is a time-bounded span of recognized speech
type TranscriptionSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// TranscriptionResult is the engine-agnostic transcription output
type TranscriptionResult struct {
	Language string                 `json:"language"`
	Text     string                 `json:"text"`
	Segments []TranscriptionSegment `json:"segments"`
}

// WhisperClient is a minimal client for a whisper-compatible transcription server
type WhisperClient struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewWhisperClient creates a transcription client using values from the provided config.
func NewWhisperClient(cfg *config.WhisperConfig) *WhisperClient {
	base := "http://localhost:9000"
	model := "base"
	if cfg != nil {
		if cfg.BaseURL != "" {
			base = cfg.BaseURL
		}
		if cfg.Model != "" {
			model = cfg.Model
		}
	}

	return &WhisperClient{
		baseURL: base,
		model:   model,
		// No client-level timeout: transcription of long recordings is slow,
		// the per-call context bounds the request instead.
		client: &http.Client{},
	}
}

// Transcribe uploads the audio file and returns time-aligned segments plus
// the detected language.
func (c *WhisperClient) Transcribe(ctx context.Context, audioPath string) (*TranscriptionResult, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	// Stream the multipart body so large uploads are not buffered in memory
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		var werr error
		defer func() { pw.CloseWithError(werr) }()

		if werr = mw.WriteField("model", c.model); werr != nil {
			return
		}
		if werr = mw.WriteField("response_format", "verbose_json"); werr != nil {
			return
		}
		part, err := mw.CreateFormFile("file", filepath.Base(audioPath))
		if err != nil {
			werr = err
			return
		}
		if _, werr = io.Copy(part, f); werr != nil {
			return
		}
		werr = mw.Close()
	}()

	endpoint := c.baseURL + "/v1/transcribe"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("transcription server returned status %d", resp.StatusCode)
	}

	var result TranscriptionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode transcription response: %w", err)
	}
	return &result, nil
}

// Ping checks that the transcription server is reachable
func (c *WhisperClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("transcription server returned status %d", resp.StatusCode)
	}
	return nil
}
