package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-reporter/errors"
	"github.com/johnquangdev/meeting-reporter/internal/domain/entities"
	"github.com/johnquangdev/meeting-reporter/internal/infrastructure/render"
	"github.com/johnquangdev/meeting-reporter/internal/usecase/summarize"
)

type stubValidator struct {
	ok    bool
	calls int
}

func (v *stubValidator) Validate(path string) bool {
	v.calls++
	return v.ok
}

type stubAnalyzer struct {
	transcript *entities.MeetingTranscript
	err        error
	calls      int
}

func (a *stubAnalyzer) AnalyzeMeeting(ctx context.Context, audioPath string) (*entities.MeetingTranscript, error) {
	a.calls++
	return a.transcript, a.err
}

type stubSummarizer struct {
	summary *entities.MeetingSummary
	err     error
	calls   int
}

func (s *stubSummarizer) GenerateSummary(ctx context.Context, transcript *entities.MeetingTranscript, info summarize.MeetingInfo) (*entities.MeetingSummary, error) {
	s.calls++
	return s.summary, s.err
}

func testTranscript() *entities.MeetingTranscript {
	return &entities.MeetingTranscript{
		Language: "en",
		Segments: []entities.TranscriptSegment{
			{Start: 0, End: 4, Text: "Let's get started.", Speaker: "Speaker 1"},
			{Start: 4, End: 9, Text: "Agreed, first the budget.", Speaker: "Speaker 2"},
		},
		FullText: "Let's get started. Agreed, first the budget.",
	}
}

func testSummary() *entities.MeetingSummary {
	summary := entities.NewMeetingSummary()
	summary.ExecutiveSummary = "Budget review meeting."
	summary.KeyDecisions = []string{"Approve Q3 budget"}
	summary.Metadata = entities.SummaryMetadata{
		GeneratedAt: time.Now().UTC(),
		Model:       "test-model",
		Title:       "Budget review",
		Date:        "2026-08-31",
	}
	summary.ComputeQualityMetrics()
	return summary
}

func newTestService(t *testing.T, validator *stubValidator, analyzer *stubAnalyzer, summarizer *stubSummarizer) *Service {
	t.Helper()

	availability := &Availability{}
	availability.SetTranscription(true)
	availability.SetSummarization(true)

	return NewService(Options{
		Validator:     validator,
		Analyzer:      analyzer,
		Summarizer:    summarizer,
		PDFRenderer:   render.NewPDFRenderer(),
		MDRenderer:    render.NewMarkdownRenderer(),
		CacheCapacity: 4,
		Availability:  availability,
		MaxConcurrent: 2,
		StageTimeout:  time.Minute,
		OutputDir:     t.TempDir(),
		Logger:        zap.NewNop(),
	})
}

func TestProcessProducesBothReports(t *testing.T) {
	validator := &stubValidator{ok: true}
	analyzer := &stubAnalyzer{transcript: testTranscript()}
	summarizer := &stubSummarizer{summary: testSummary()}
	svc := newTestService(t, validator, analyzer, summarizer)

	result, err := svc.Process(context.Background(), "/tmp/meeting.wav", summarize.MeetingInfo{})
	require.NoError(t, err)

	assert.False(t, result.FromCache)
	assert.FileExists(t, result.PDFPath)
	assert.FileExists(t, result.MarkdownPath)
	assert.Equal(t, 1, analyzer.calls)
	assert.Equal(t, 1, summarizer.calls)

	content, err := os.ReadFile(result.MarkdownPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Budget review meeting.")
	assert.Contains(t, string(content), "**Speaker 1**: Let's get started.")
}

func TestProcessCacheHitSkipsEngines(t *testing.T) {
	validator := &stubValidator{ok: true}
	analyzer := &stubAnalyzer{transcript: testTranscript()}
	summarizer := &stubSummarizer{summary: testSummary()}
	svc := newTestService(t, validator, analyzer, summarizer)

	first, err := svc.Process(context.Background(), "/tmp/meeting.wav", summarize.MeetingInfo{})
	require.NoError(t, err)
	svc.Cleanup(first.PDFPath, first.MarkdownPath)

	second, err := svc.Process(context.Background(), "/tmp/meeting.wav", summarize.MeetingInfo{})
	require.NoError(t, err)

	assert.True(t, second.FromCache)
	assert.Equal(t, 1, analyzer.calls, "cached run must not call the engines again")
	assert.Equal(t, 1, summarizer.calls)
	assert.FileExists(t, second.PDFPath, "cache hit still renders fresh files")
}

func TestProcessDistinctPathsAreDistinctEntries(t *testing.T) {
	validator := &stubValidator{ok: true}
	analyzer := &stubAnalyzer{transcript: testTranscript()}
	summarizer := &stubSummarizer{summary: testSummary()}
	svc := newTestService(t, validator, analyzer, summarizer)

	_, err := svc.Process(context.Background(), "/tmp/a.wav", summarize.MeetingInfo{})
	require.NoError(t, err)
	_, err = svc.Process(context.Background(), "/tmp/b.wav", summarize.MeetingInfo{})
	require.NoError(t, err)

	assert.Equal(t, 2, analyzer.calls)
}

func TestProcessRejectsInvalidAudio(t *testing.T) {
	validator := &stubValidator{ok: false}
	analyzer := &stubAnalyzer{transcript: testTranscript()}
	summarizer := &stubSummarizer{summary: testSummary()}
	svc := newTestService(t, validator, analyzer, summarizer)

	_, err := svc.Process(context.Background(), "/tmp/broken.wav", summarize.MeetingInfo{})

	require.Error(t, err)
	var appErr apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrorCode_AUDIO_VALIDATION_FAILED, appErr.Code)
	assert.Equal(t, 0, analyzer.calls)
}

func TestProcessTranscriptionFailureLeavesNoFiles(t *testing.T) {
	validator := &stubValidator{ok: true}
	analyzer := &stubAnalyzer{err: errors.New("engine exploded")}
	summarizer := &stubSummarizer{summary: testSummary()}
	svc := newTestService(t, validator, analyzer, summarizer)

	_, err := svc.Process(context.Background(), "/tmp/meeting.wav", summarize.MeetingInfo{})
	require.Error(t, err)

	entries, readErr := os.ReadDir(svc.outputDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "failed runs must not leave report files behind")
	assert.Equal(t, 0, summarizer.calls)
}

func TestProcessEngineUnavailable(t *testing.T) {
	validator := &stubValidator{ok: true}
	analyzer := &stubAnalyzer{transcript: testTranscript()}
	summarizer := &stubSummarizer{summary: testSummary()}
	svc := newTestService(t, validator, analyzer, summarizer)
	svc.Availability().SetTranscription(false)

	_, err := svc.Process(context.Background(), "/tmp/meeting.wav", summarize.MeetingInfo{})

	require.Error(t, err)
	var appErr apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrorCode_ENGINE_UNAVAILABLE, appErr.Code)
	assert.Equal(t, 0, analyzer.calls)
}

func TestCleanupRemovesFiles(t *testing.T) {
	validator := &stubValidator{ok: true}
	analyzer := &stubAnalyzer{transcript: testTranscript()}
	summarizer := &stubSummarizer{summary: testSummary()}
	svc := newTestService(t, validator, analyzer, summarizer)

	result, err := svc.Process(context.Background(), "/tmp/meeting.wav", summarize.MeetingInfo{})
	require.NoError(t, err)

	svc.Cleanup(result.PDFPath, result.MarkdownPath, filepath.Join(svc.outputDir, "never-existed.pdf"))

	assert.NoFileExists(t, result.PDFPath)
	assert.NoFileExists(t, result.MarkdownPath)
}
