package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/johnquangdev/meeting-reporter/internal/domain/entities"
)

// MarkdownRenderer produces a plain Markdown report
type MarkdownRenderer struct{}

func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

func (r *MarkdownRenderer) Render(summary *entities.MeetingSummary, transcript *entities.MeetingTranscript, outputDir string) (string, error) {
	var lines []string

	meta := summary.Metadata
	lines = append(lines,
		"# Meeting Report",
		"",
		fmt.Sprintf("**Title:** %s  ", meta.Title),
		fmt.Sprintf("**Date:** %s  ", meta.Date),
	)
	if len(meta.Participants) > 0 {
		lines = append(lines, fmt.Sprintf("**Participants:** %s  ", strings.Join(meta.Participants, ", ")))
	}
	lines = append(lines,
		fmt.Sprintf("**Language:** %s  ", meta.Language),
		fmt.Sprintf("**Generated:** %s by %s", meta.GeneratedAt.Format("2006-01-02 15:04 MST"), meta.Model),
		"",
		"## Executive Summary",
		"",
	)

	if summary.ExecutiveSummary != "" {
		lines = append(lines, summary.ExecutiveSummary)
	} else {
		lines = append(lines, "No summary available.")
	}

	for _, sec := range sections(summary) {
		if len(sec.items) == 0 {
			continue
		}
		lines = append(lines, "", "## "+sec.title, "")
		for _, item := range sec.items {
			lines = append(lines, "- "+item)
		}
	}

	metrics := summary.QualityMetrics
	lines = append(lines,
		"",
		"## Quality Metrics",
		"",
		fmt.Sprintf("- Decisions: %d", metrics.DecisionCount),
		fmt.Sprintf("- Action items: %d", metrics.ActionItemCount),
		fmt.Sprintf("- Deadlines mentioned: %s", yesNo(metrics.HasDeadlines)),
		fmt.Sprintf("- Assignees mentioned: %s", yesNo(metrics.HasAssignees)),
	)

	if transcript != nil && len(transcript.Segments) > 0 {
		lines = append(lines, "", "## Full Transcript", "")
		for _, seg := range transcript.Segments {
			lines = append(lines, fmt.Sprintf("**%s**: %s", seg.Speaker, seg.Text), "")
		}
	}

	outputPath := filepath.Join(outputDir, reportFilename("md"))
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write markdown report: %w", err)
	}
	return outputPath, nil
}
