package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-reporter/errors"
	"github.com/johnquangdev/meeting-reporter/internal/usecase/report"
	"github.com/johnquangdev/meeting-reporter/internal/usecase/summarize"
	"github.com/johnquangdev/meeting-reporter/pkg/config"
)

// Report handles audio upload and report download
type Report struct {
	cfg           *config.Config
	reportService *report.Service
	logger        *zap.Logger
}

// NewReport creates a new report handler
func NewReport(cfg *config.Config, reportService *report.Service, logger *zap.Logger) *Report {
	return &Report{
		cfg:           cfg,
		reportService: reportService,
		logger:        logger,
	}
}

// Upload accepts a meeting recording, runs the pipeline and streams the
// PDF report back. All files created for the request, the uploaded temp
// copy and both rendered reports, are removed once the response is sent.
// POST /v1/reports/upload
func (h *Report) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return respondError(c, errors.ErrInvalidArgument("missing file field in multipart form"))
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !h.extensionAllowed(ext) {
		return respondError(c, errors.ErrUnsupportedAudioFormat(ext))
	}

	maxBytes := int64(h.cfg.Audio.MaxUploadMB) << 20
	if fileHeader.Size > maxBytes {
		return respondError(c, errors.ErrUploadTooLarge(h.cfg.Audio.MaxUploadMB))
	}

	tempPath, err := h.saveUpload(fileHeader, ext)
	if err != nil {
		h.logger.Error("Failed to save upload", zap.Error(err))
		return respondError(c, errors.ErrInternal(err))
	}
	defer func() {
		if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
			h.logger.Warn("Failed to remove uploaded temp file",
				zap.String("path", tempPath),
				zap.Error(err))
		}
	}()

	info := summarize.MeetingInfo{
		Title:        c.FormValue("title"),
		Date:         c.FormValue("date"),
		Participants: splitParticipants(c.FormValue("participants")),
	}

	result, err := h.reportService.Process(c.Request().Context(), tempPath, info)
	if err != nil {
		h.logger.Error("Pipeline failed",
			zap.String("filename", fileHeader.Filename),
			zap.Error(err))
		return respondError(c, err)
	}
	defer h.reportService.Cleanup(result.PDFPath, result.MarkdownPath)

	base := strings.TrimSuffix(filepath.Base(fileHeader.Filename), ext)
	downloadName := fmt.Sprintf("report_%s.pdf", base)

	c.Response().Header().Set("X-Cache", cacheHeader(result.FromCache))
	return c.Attachment(result.PDFPath, downloadName)
}

func (h *Report) extensionAllowed(ext string) bool {
	for _, allowed := range h.cfg.Audio.AllowedExtensions {
		if ext == strings.ToLower(strings.TrimSpace(allowed)) {
			return true
		}
	}
	return false
}

// saveUpload copies the multipart file into the temp dir under a
// collision-free name
func (h *Report) saveUpload(fileHeader *multipart.FileHeader, ext string) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(h.cfg.Audio.TempDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}

	tempPath := filepath.Join(h.cfg.Audio.TempDir, uuid.New().String()+ext)
	dst, err := os.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	return tempPath, nil
}

func cacheHeader(fromCache bool) string {
	if fromCache {
		return "HIT"
	}
	return "MISS"
}

// Health reports service liveness and per-engine availability
// GET /health
func (h *Report) Health(c echo.Context) error {
	availability := h.reportService.Availability()

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": h.cfg.Server.Environment,
		"engines": map[string]bool{
			"transcription": availability.Transcription(),
			"diarization":   availability.Diarization(),
			"summarization": availability.Summarization(),
		},
	})
}
