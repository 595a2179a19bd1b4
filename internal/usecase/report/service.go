package report

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-reporter/errors"
	"github.com/johnquangdev/meeting-reporter/internal/domain/entities"
	"github.com/johnquangdev/meeting-reporter/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-reporter/internal/infrastructure/render"
	"github.com/johnquangdev/meeting-reporter/internal/usecase/summarize"
)

// Analyzer produces a speaker-attributed transcript from an audio file
type Analyzer interface {
	AnalyzeMeeting(ctx context.Context, audioPath string) (*entities.MeetingTranscript, error)
}

// Summarizer produces a structured summary from a transcript
type Summarizer interface {
	GenerateSummary(ctx context.Context, transcript *entities.MeetingTranscript, info summarize.MeetingInfo) (*entities.MeetingSummary, error)
}

// AudioValidator gates the pipeline on whether a file is processable audio
type AudioValidator interface {
	Validate(path string) bool
}

// Archiver stores a rendered report in long-term storage
type Archiver interface {
	ArchiveReport(ctx context.Context, localPath string) error
}

// Availability reports which engines answered their startup probe. Flags
// are written during startup before the server accepts traffic and only
// read afterwards.
type Availability struct {
	mu            sync.RWMutex
	transcription bool
	diarization   bool
	summarization bool
}

func (a *Availability) SetTranscription(ok bool) { a.mu.Lock(); a.transcription = ok; a.mu.Unlock() }
func (a *Availability) SetDiarization(ok bool)   { a.mu.Lock(); a.diarization = ok; a.mu.Unlock() }
func (a *Availability) SetSummarization(ok bool) { a.mu.Lock(); a.summarization = ok; a.mu.Unlock() }

func (a *Availability) Transcription() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.transcription
}

func (a *Availability) Diarization() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.diarization
}

func (a *Availability) Summarization() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.summarization
}

// Result is the outcome of one pipeline run. PDFPath and MarkdownPath
// point at files under the configured output directory; the caller owns
// their lifetime.
type Result struct {
	Transcript   *entities.MeetingTranscript
	Summary      *entities.MeetingSummary
	PDFPath      string
	MarkdownPath string
	FromCache    bool
}

// analysis is what the result cache holds: the expensive engine output,
// not the rendered files, which are deleted after each response.
type analysis struct {
	transcript *entities.MeetingTranscript
	summary    *entities.MeetingSummary
}

// Service runs the full pipeline: validate, transcribe, diarize,
// summarize, render. Engine output is cached so a repeated request skips
// the engines and only re-renders.
type Service struct {
	validator    AudioValidator
	analyzer     Analyzer
	summarizer   Summarizer
	pdfRenderer  render.Renderer
	mdRenderer   render.Renderer
	cache        *cache.LRU
	archiver     Archiver
	availability *Availability
	sem          chan struct{}
	stageTimeout time.Duration
	outputDir    string
	logger       *zap.Logger
}

type Options struct {
	Validator     AudioValidator
	Analyzer      Analyzer
	Summarizer    Summarizer
	PDFRenderer   render.Renderer
	MDRenderer    render.Renderer
	CacheCapacity int
	Archiver      Archiver
	Availability  *Availability
	MaxConcurrent int
	StageTimeout  time.Duration
	OutputDir     string
	Logger        *zap.Logger
}

func NewService(opts Options) *Service {
	if opts.MaxConcurrent < 1 {
		opts.MaxConcurrent = 2
	}
	if opts.StageTimeout <= 0 {
		opts.StageTimeout = 5 * time.Minute
	}
	if opts.Availability == nil {
		opts.Availability = &Availability{}
	}
	return &Service{
		validator:    opts.Validator,
		analyzer:     opts.Analyzer,
		summarizer:   opts.Summarizer,
		pdfRenderer:  opts.PDFRenderer,
		mdRenderer:   opts.MDRenderer,
		cache:        cache.NewLRU(opts.CacheCapacity),
		archiver:     opts.Archiver,
		availability: opts.Availability,
		sem:          make(chan struct{}, opts.MaxConcurrent),
		stageTimeout: opts.StageTimeout,
		outputDir:    opts.OutputDir,
		logger:       opts.Logger,
	}
}

// Availability exposes the engine flags for the health endpoint
func (s *Service) Availability() *Availability {
	return s.availability
}

// Process runs the pipeline for one audio file and returns the rendered
// report paths. The audio path doubles as the cache key; upload handling
// writes each request to a fresh temp path, so in practice every upload
// is a cache miss and the cache only pays off for direct re-processing of
// the same file on disk.
func (s *Service) Process(ctx context.Context, audioPath string, info summarize.MeetingInfo) (*Result, error) {
	if !s.validator.Validate(audioPath) {
		return nil, apperrors.ErrInvalidAudio("file is missing, too small, or not decodable audio")
	}

	if cached, ok := s.cache.Get(audioPath); ok {
		a := cached.(*analysis)
		s.logger.Info("Result cache hit, skipping engines",
			zap.String("audio_path", audioPath))
		return s.renderResult(ctx, a, true)
	}

	a, err := s.runEngines(ctx, audioPath, info)
	if err != nil {
		return nil, err
	}

	s.cache.Put(audioPath, a)

	return s.renderResult(ctx, a, false)
}

func (s *Service) runEngines(ctx context.Context, audioPath string, info summarize.MeetingInfo) (*analysis, error) {
	if !s.availability.Transcription() {
		return nil, apperrors.ErrEngineUnavailable("transcription")
	}
	if !s.availability.Summarization() {
		return nil, apperrors.ErrEngineUnavailable("summarization")
	}

	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, apperrors.ErrProcessingFailed(ctx.Err())
	}
	defer func() { <-s.sem }()

	analyzeCtx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	defer cancel()
	transcript, err := s.analyzer.AnalyzeMeeting(analyzeCtx, audioPath)
	if err != nil {
		return nil, err
	}

	summarizeCtx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	defer cancel()
	summary, err := s.summarizer.GenerateSummary(summarizeCtx, transcript, info)
	if err != nil {
		return nil, err
	}

	return &analysis{transcript: transcript, summary: summary}, nil
}

// renderResult writes both report formats. If either write fails the
// other's partial output is removed so no orphan files accumulate.
func (s *Service) renderResult(ctx context.Context, a *analysis, fromCache bool) (*Result, error) {
	pdfPath, err := s.pdfRenderer.Render(a.summary, a.transcript, s.outputDir)
	if err != nil {
		return nil, apperrors.ErrReportGenerationFailed(err)
	}

	mdPath, err := s.mdRenderer.Render(a.summary, a.transcript, s.outputDir)
	if err != nil {
		s.Cleanup(pdfPath)
		return nil, apperrors.ErrReportGenerationFailed(err)
	}

	if s.archiver != nil {
		if err := s.archiver.ArchiveReport(ctx, pdfPath); err != nil {
			s.logger.Warn("Failed to archive report", zap.Error(err))
		}
	}

	return &Result{
		Transcript:   a.transcript,
		Summary:      a.summary,
		PDFPath:      pdfPath,
		MarkdownPath: mdPath,
		FromCache:    fromCache,
	}, nil
}

// Cleanup removes generated files, ignoring ones already gone
func (s *Service) Cleanup(paths ...string) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("Failed to remove generated file",
				zap.String("path", path),
				zap.Error(err))
		}
	}
}
