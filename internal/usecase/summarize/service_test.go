package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-reporter/internal/domain/entities"
)

type stubChat struct {
	response   string
	err        error
	lastSystem string
	lastUser   string
}

func (s *stubChat) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	s.lastSystem = systemPrompt
	s.lastUser = userPrompt
	return s.response, s.err
}

func (s *stubChat) Model() string { return "stub-model" }

func transcript() *entities.MeetingTranscript {
	return &entities.MeetingTranscript{
		Language: "en",
		Segments: []entities.TranscriptSegment{
			{Start: 0, End: 5, Text: "We should ship Friday.", Speaker: "SPEAKER_00"},
			{Start: 5, End: 9, Text: "Agreed, Bob is assigned the release.", Speaker: "SPEAKER_01"},
		},
		FullText: "We should ship Friday. Agreed, Bob is assigned the release.",
	}
}

func TestGenerateSummary(t *testing.T) {
	chat := &stubChat{response: `{
		"executive_summary": "Release planning.",
		"key_decisions": ["Ship Friday"],
		"action_items": ["Bob is assigned the release, deadline Friday"]
	}`}
	svc := NewService(chat, zap.NewNop())

	summary, err := svc.GenerateSummary(context.Background(), transcript(), MeetingInfo{
		Title:        "Release sync",
		Date:         "2026-08-31",
		Participants: []string{"Alice", "Bob"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Release planning.", summary.ExecutiveSummary)
	assert.Equal(t, "stub-model", summary.Metadata.Model)
	assert.Equal(t, "Release sync", summary.Metadata.Title)
	assert.Equal(t, "en", summary.Metadata.Language)
	assert.False(t, summary.Metadata.GeneratedAt.IsZero())

	// metrics derive from the parsed sections
	assert.Equal(t, 1, summary.QualityMetrics.DecisionCount)
	assert.Equal(t, 1, summary.QualityMetrics.ActionItemCount)
	assert.True(t, summary.QualityMetrics.HasDeadlines)
	assert.True(t, summary.QualityMetrics.HasAssignees)
}

func TestGenerateSummaryPromptContainsTranscript(t *testing.T) {
	chat := &stubChat{response: `{"executive_summary":"ok"}`}
	svc := NewService(chat, zap.NewNop())

	_, err := svc.GenerateSummary(context.Background(), transcript(), MeetingInfo{})
	require.NoError(t, err)

	assert.Contains(t, chat.lastUser, "SPEAKER_00: We should ship Friday.")
	assert.Contains(t, chat.lastUser, "Meeting title: unknown")
	assert.Contains(t, strings.ToLower(chat.lastSystem), "json")
}

func TestGenerateSummaryMetadataDefaults(t *testing.T) {
	chat := &stubChat{response: `{"executive_summary":"ok"}`}
	svc := NewService(chat, zap.NewNop())

	tr := transcript()
	tr.Language = ""
	summary, err := svc.GenerateSummary(context.Background(), tr, MeetingInfo{})
	require.NoError(t, err)

	assert.Equal(t, "unknown", summary.Metadata.Title)
	assert.Equal(t, "unknown", summary.Metadata.Language)
	assert.NotEmpty(t, summary.Metadata.Date)
}

func TestGenerateSummaryEmptyTranscript(t *testing.T) {
	chat := &stubChat{}
	svc := NewService(chat, zap.NewNop())

	summary, err := svc.GenerateSummary(context.Background(), &entities.MeetingTranscript{}, MeetingInfo{})
	require.NoError(t, err)

	// the model is never consulted for a silent recording
	assert.Empty(t, chat.lastUser)

	assert.Empty(t, summary.ExecutiveSummary)
	assert.Empty(t, summary.KeyDecisions)
	assert.Empty(t, summary.ActionItems)
	assert.Empty(t, summary.TopicsDiscussed)
	assert.Empty(t, summary.FollowUpItems)
	assert.Empty(t, summary.RisksIssues)
	assert.Empty(t, summary.NextSteps)

	assert.Equal(t, "unknown", summary.Metadata.Language)
	assert.Equal(t, "stub-model", summary.Metadata.Model)
	assert.Equal(t, 0, summary.QualityMetrics.ActionItemCount)
}

func TestGenerateSummaryNilTranscript(t *testing.T) {
	svc := NewService(&stubChat{}, zap.NewNop())

	summary, err := svc.GenerateSummary(context.Background(), nil, MeetingInfo{})
	require.NoError(t, err)
	assert.Empty(t, summary.ExecutiveSummary)
	assert.Equal(t, "unknown", summary.Metadata.Language)
}

func TestGenerateSummaryEngineFailure(t *testing.T) {
	chat := &stubChat{err: errors.New("rate limit")}
	svc := NewService(chat, zap.NewNop())

	_, err := svc.GenerateSummary(context.Background(), transcript(), MeetingInfo{})
	assert.Error(t, err)
}

func TestGenerateSummaryTextFallbackStillStructured(t *testing.T) {
	chat := &stubChat{response: "The team met.\n\nAction Items:\n- Bob to send notes"}
	svc := NewService(chat, zap.NewNop())

	summary, err := svc.GenerateSummary(context.Background(), transcript(), MeetingInfo{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Bob to send notes"}, summary.ActionItems)
	assert.Equal(t, 1, summary.QualityMetrics.ActionItemCount)
}
