package analyze

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-reporter/pkg/ai"
)

type stubTranscriber struct {
	result *ai.TranscriptionResult
	err    error
}

func (s *stubTranscriber) Transcribe(ctx context.Context, audioPath string) (*ai.TranscriptionResult, error) {
	return s.result, s.err
}

type stubDiarizer struct {
	available bool
	turns     []ai.SpeakerTurn
	err       error
}

func (s *stubDiarizer) Available() bool { return s.available }

func (s *stubDiarizer) Diarize(ctx context.Context, audioPath string) ([]ai.SpeakerTurn, error) {
	return s.turns, s.err
}

func transcription() *ai.TranscriptionResult {
	return &ai.TranscriptionResult{
		Language: "en",
		Text:     "first second",
		Segments: []ai.TranscriptionSegment{
			{Start: 0, End: 5, Text: "first"},
			{Start: 5, End: 10, Text: "  "},
			{Start: 10, End: 15, Text: "second"},
		},
	}
}

func TestAnalyzeMeetingMergesSpeakers(t *testing.T) {
	diarizer := &stubDiarizer{
		available: true,
		turns: []ai.SpeakerTurn{
			{Start: 0, End: 5, Speaker: "SPEAKER_00"},
			{Start: 10, End: 15, Speaker: "SPEAKER_01"},
		},
	}
	svc := NewService(&stubTranscriber{result: transcription()}, diarizer, zap.NewNop())

	transcript, err := svc.AnalyzeMeeting(context.Background(), "/tmp/a.wav")
	require.NoError(t, err)

	assert.Equal(t, "en", transcript.Language)
	// blank segments are dropped before merging
	require.Len(t, transcript.Segments, 2)
	assert.Equal(t, "SPEAKER_00", transcript.Segments[0].Speaker)
	assert.Equal(t, "SPEAKER_01", transcript.Segments[1].Speaker)
	assert.Equal(t, "first second", transcript.FullText)
}

func TestAnalyzeMeetingWithoutDiarizerAlternates(t *testing.T) {
	svc := NewService(&stubTranscriber{result: transcription()}, &stubDiarizer{available: false}, zap.NewNop())

	transcript, err := svc.AnalyzeMeeting(context.Background(), "/tmp/a.wav")
	require.NoError(t, err)

	require.Len(t, transcript.Segments, 2)
	assert.Equal(t, "Speaker 1", transcript.Segments[0].Speaker)
	assert.Equal(t, "Speaker 2", transcript.Segments[1].Speaker)
}

func TestAnalyzeMeetingDiarizationFailureDegrades(t *testing.T) {
	diarizer := &stubDiarizer{available: true, err: errors.New("engine down")}
	svc := NewService(&stubTranscriber{result: transcription()}, diarizer, zap.NewNop())

	transcript, err := svc.AnalyzeMeeting(context.Background(), "/tmp/a.wav")
	require.NoError(t, err, "diarization failure must not fail the analysis")

	assert.Equal(t, "Speaker 1", transcript.Segments[0].Speaker)
}

func TestAnalyzeMeetingTranscriptionFailure(t *testing.T) {
	svc := NewService(&stubTranscriber{err: errors.New("timeout")}, &stubDiarizer{}, zap.NewNop())

	_, err := svc.AnalyzeMeeting(context.Background(), "/tmp/a.wav")
	assert.Error(t, err)
}

func TestAnalyzeMeetingJoinsTextWhenMissing(t *testing.T) {
	result := transcription()
	result.Text = ""
	svc := NewService(&stubTranscriber{result: result}, &stubDiarizer{}, zap.NewNop())

	transcript, err := svc.AnalyzeMeeting(context.Background(), "/tmp/a.wav")
	require.NoError(t, err)

	assert.Equal(t, "first second", transcript.FullText)
}

func TestAnalyzeMeetingEmptyTurnsFallBack(t *testing.T) {
	diarizer := &stubDiarizer{available: true, turns: nil}
	svc := NewService(&stubTranscriber{result: transcription()}, diarizer, zap.NewNop())

	transcript, err := svc.AnalyzeMeeting(context.Background(), "/tmp/a.wav")
	require.NoError(t, err)

	assert.Equal(t, "Speaker 1", transcript.Segments[0].Speaker)
	assert.Equal(t, "Speaker 2", transcript.Segments[1].Speaker)
}

var _ Transcriber = (*stubTranscriber)(nil)
var _ Diarizer = (*stubDiarizer)(nil)
