package analyze

import (
	"context"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-reporter/errors"
	"github.com/johnquangdev/meeting-reporter/internal/domain/entities"
	"github.com/johnquangdev/meeting-reporter/pkg/ai"
)

// Transcriber converts an audio file into timestamped text segments
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*ai.TranscriptionResult, error)
}

// Diarizer splits an audio file into per-speaker turns. Diarization is an
// optional engine: Available reports whether one is configured at all.
type Diarizer interface {
	Available() bool
	Diarize(ctx context.Context, audioPath string) ([]ai.SpeakerTurn, error)
}

// Service produces a speaker-attributed transcript from an audio file
type Service struct {
	transcriber Transcriber
	diarizer    Diarizer
	logger      *zap.Logger
}

func NewService(transcriber Transcriber, diarizer Diarizer, logger *zap.Logger) *Service {
	return &Service{
		transcriber: transcriber,
		diarizer:    diarizer,
		logger:      logger,
	}
}

// AnalyzeMeeting transcribes the audio and attributes each segment to a
// speaker. Transcription failures abort the analysis; diarization failures
// degrade to alternating generic speaker labels so the pipeline still
// produces a usable transcript.
func (s *Service) AnalyzeMeeting(ctx context.Context, audioPath string) (*entities.MeetingTranscript, error) {
	result, err := s.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, apperrors.ErrEngineCallFailed("transcription", err)
	}

	segments := make([]entities.TranscriptSegment, 0, len(result.Segments))
	for _, seg := range result.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		segments = append(segments, entities.TranscriptSegment{
			Start: seg.Start,
			End:   seg.End,
			Text:  text,
		})
	}

	AssignSpeakers(segments, s.diarize(ctx, audioPath))

	fullText := strings.TrimSpace(result.Text)
	if fullText == "" {
		parts := make([]string, 0, len(segments))
		for _, seg := range segments {
			parts = append(parts, seg.Text)
		}
		fullText = strings.Join(parts, " ")
	}

	return &entities.MeetingTranscript{
		Language: result.Language,
		Segments: segments,
		FullText: fullText,
	}, nil
}

// diarize returns speaker turns, or nil when diarization is unconfigured
// or fails. Callers treat nil turns as "no speaker information".
func (s *Service) diarize(ctx context.Context, audioPath string) []entities.DiarizationTurn {
	if s.diarizer == nil || !s.diarizer.Available() {
		return nil
	}

	speakerTurns, err := s.diarizer.Diarize(ctx, audioPath)
	if err != nil {
		s.logger.Warn("Diarization failed, falling back to generic speaker labels",
			zap.String("audio_path", audioPath),
			zap.Error(err))
		return nil
	}

	turns := make([]entities.DiarizationTurn, 0, len(speakerTurns))
	for _, turn := range speakerTurns {
		turns = append(turns, entities.DiarizationTurn{
			Start:        turn.Start,
			End:          turn.End,
			SpeakerLabel: turn.Speaker,
		})
	}
	return turns
}
