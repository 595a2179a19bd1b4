package render

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-reporter/internal/domain/entities"
)

func sampleSummary() *entities.MeetingSummary {
	summary := entities.NewMeetingSummary()
	summary.ExecutiveSummary = "Release planning for Q3."
	summary.KeyDecisions = []string{"Ship on Friday"}
	summary.ActionItems = []string{"Bob owns the release notes"}
	summary.Metadata = entities.SummaryMetadata{
		GeneratedAt:  time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
		Model:        "test-model",
		Title:        "Release sync",
		Date:         "2026-08-31",
		Participants: []string{"Alice", "Bob"},
		Language:     "en",
	}
	summary.ComputeQualityMetrics()
	return summary
}

func sampleTranscript() *entities.MeetingTranscript {
	return &entities.MeetingTranscript{
		Language: "en",
		Segments: []entities.TranscriptSegment{
			{Start: 0, End: 4, Text: "We ship Friday.", Speaker: "Speaker 1"},
		},
	}
}

func TestMarkdownRendererIncludesMetadata(t *testing.T) {
	dir := t.TempDir()

	path, err := NewMarkdownRenderer().Render(sampleSummary(), sampleTranscript(), dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)

	assert.Contains(t, body, "**Title:** Release sync")
	assert.Contains(t, body, "**Language:** en")
	assert.Contains(t, body, "**Participants:** Alice, Bob")
	assert.Contains(t, body, "## Key Decisions")
	assert.Contains(t, body, "- Ship on Friday")
	assert.Contains(t, body, "**Speaker 1**: We ship Friday.")
}

func TestMarkdownRendererEmptySummary(t *testing.T) {
	dir := t.TempDir()

	summary := entities.NewMeetingSummary()
	summary.Metadata.Language = "unknown"
	path, err := NewMarkdownRenderer().Render(summary, nil, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)

	assert.Contains(t, body, "No summary available.")
	assert.Contains(t, body, "**Language:** unknown")
	assert.NotContains(t, body, "## Full Transcript")
}

func TestPDFRendererWritesFile(t *testing.T) {
	dir := t.TempDir()

	path, err := NewPDFRenderer().Render(sampleSummary(), sampleTranscript(), dir)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.Equal(t, ".pdf", path[len(path)-4:])
}
