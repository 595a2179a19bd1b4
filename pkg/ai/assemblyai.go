package ai

import (
	"context"
	"fmt"
	"os"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/johnquangdev/meeting-reporter/pkg/config"
)

// AssemblyAIProvider is an alternate transcription backend built on the
// official AssemblyAI SDK. It uploads the file, waits for processing, and
// maps utterances onto the engine-agnostic segment shape.
type AssemblyAIProvider struct {
	apiKey string
	client *aai.Client
}

// NewAssemblyAIProvider creates an AssemblyAI-backed transcription provider.
// If cfg is nil, falls back to environment variables.
func NewAssemblyAIProvider(cfg *config.AssemblyAIConfig) *AssemblyAIProvider {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}
	return &AssemblyAIProvider{
		apiKey: apiKey,
		client: aai.NewClient(apiKey),
	}
}

// Transcribe uploads the audio file and blocks until AssemblyAI finishes
func (p *AssemblyAIProvider) Transcribe(ctx context.Context, audioPath string) (*TranscriptionResult, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("assemblyai API key not configured")
	}

	f, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	params := &aai.TranscriptOptionalParams{
		LanguageDetection: aai.Bool(true),
		SpeakerLabels:     aai.Bool(true),
	}

	transcript, err := p.client.Transcripts.TranscribeFromReader(ctx, f, params)
	if err != nil {
		return nil, fmt.Errorf("assemblyai transcription failed: %w", err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		msg := "unknown error"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return nil, fmt.Errorf("assemblyai reported error: %s", msg)
	}

	result := &TranscriptionResult{
		Language: string(transcript.LanguageCode),
	}
	if transcript.Text != nil {
		result.Text = *transcript.Text
	}

	// Utterance boundaries in milliseconds; the diarization merge expects seconds.
	// Speaker labels from AssemblyAI are dropped here: speaker attribution is the
	// merger's job, fed by the separate diarization engine.
	for _, u := range transcript.Utterances {
		seg := TranscriptionSegment{}
		if u.Start != nil {
			seg.Start = float64(*u.Start) / 1000.0
		}
		if u.End != nil {
			seg.End = float64(*u.End) / 1000.0
		}
		if u.Text != nil {
			seg.Text = *u.Text
		}
		result.Segments = append(result.Segments, seg)
	}

	// Some short recordings come back with text but no utterances
	if len(result.Segments) == 0 && result.Text != "" {
		var end float64
		if transcript.AudioDuration != nil {
			end = *transcript.AudioDuration
		}
		result.Segments = append(result.Segments, TranscriptionSegment{
			Start: 0,
			End:   end,
			Text:  result.Text,
		})
	}

	return result, nil
}

// Ping reports whether the provider is configured. AssemblyAI has no cheap
// health endpoint; a missing key is the only startup-detectable failure.
func (p *AssemblyAIProvider) Ping(ctx context.Context) error {
	if p.apiKey == "" {
		return fmt.Errorf("assemblyai API key not configured")
	}
	return nil
}
