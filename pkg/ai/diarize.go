package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/johnquangdev/meeting-reporter/pkg/config"
)

// SpeakerTurn is a time interval attributed to one anonymous voice.
// Labels are unique per audio file, not globally meaningful.
type SpeakerTurn struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
}

// DiarizationClient is a minimal client for a pyannote-style diarization server
type DiarizationClient struct {
	baseURL string
	client  *http.Client
}

// NewDiarizationClient creates a diarization client. An empty base URL
// leaves the client unavailable and the pipeline degrades gracefully.
func NewDiarizationClient(cfg *config.DiarizationConfig) *DiarizationClient {
	var base string
	if cfg != nil {
		base = cfg.BaseURL
	}
	return &DiarizationClient{
		baseURL: base,
		client:  &http.Client{},
	}
}

// Available reports whether a diarization server is configured
func (c *DiarizationClient) Available() bool {
	return c != nil && c.baseURL != ""
}

// Diarize uploads the audio file and returns speaker turns
func (c *DiarizationClient) Diarize(ctx context.Context, audioPath string) ([]SpeakerTurn, error) {
	if !c.Available() {
		return nil, fmt.Errorf("diarization server not configured")
	}

	f, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		var werr error
		defer func() { pw.CloseWithError(werr) }()

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

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/diarize", pr)
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
		return nil, fmt.Errorf("diarization server returned status %d", resp.StatusCode)
	}

	var result struct {
		Turns []SpeakerTurn `json:"turns"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode diarization response: %w", err)
	}
	return result.Turns, nil
}

// Ping checks that the diarization server is reachable
func (c *DiarizationClient) Ping(ctx context.Context) error {
	if !c.Available() {
		return fmt.Errorf("diarization server not configured")
	}

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
		return fmt.Errorf("diarization server returned status %d", resp.StatusCode)
	}
	return nil
}
