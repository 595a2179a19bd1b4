package summarize

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-reporter/errors"
	"github.com/johnquangdev/meeting-reporter/internal/domain/entities"
)

const systemPrompt = `You are an expert meeting analyst. Analyze the meeting transcript and respond with a single JSON object containing exactly these keys:
"executive_summary" (string), "key_decisions", "action_items", "topics_discussed", "follow_up_items", "risks_issues", "next_steps" (each an array of strings).
Action items should name an owner and a deadline when the transcript mentions them. Respond with JSON only, no commentary.`

// ChatClient completes a chat prompt against an LLM
type ChatClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Model() string
}

// MeetingInfo is caller-supplied context about the meeting. All fields are
// optional; missing values default to "unknown" or the current date.
type MeetingInfo struct {
	Title        string
	Date         string
	Participants []string
}

// Service generates a structured summary from a speaker-attributed transcript
type Service struct {
	chat   ChatClient
	parser *Parser
	logger *zap.Logger
}

func NewService(chat ChatClient, logger *zap.Logger) *Service {
	return &Service{
		chat:   chat,
		parser: NewParser(),
		logger: logger,
	}
}

// GenerateSummary prompts the model with the transcript and parses the
// response into the seven summary sections. The quality metrics are always
// recomputed from the parsed sections rather than trusted from the model.
// An empty transcript skips the model call and yields a summary whose
// sections are all empty.
func (s *Service) GenerateSummary(ctx context.Context, transcript *entities.MeetingTranscript, info MeetingInfo) (*entities.MeetingSummary, error) {
	if transcript == nil || transcript.IsEmpty() {
		s.logger.Warn("Transcript contains no usable speech, producing empty summary")
		summary := entities.NewMeetingSummary()
		s.finalize(summary, transcript, info)
		return summary, nil
	}

	content, err := s.chat.Complete(ctx, systemPrompt, buildPrompt(transcript, info))
	if err != nil {
		return nil, apperrors.ErrEngineCallFailed("summarization", err)
	}

	summary := s.parser.Parse(content)
	if summary.ExecutiveSummary == "" && len(summary.KeyDecisions) == 0 && len(summary.ActionItems) == 0 {
		s.logger.Warn("Model response yielded an empty summary",
			zap.Int("response_length", len(content)))
	}

	s.finalize(summary, transcript, info)

	return summary, nil
}

func (s *Service) finalize(summary *entities.MeetingSummary, transcript *entities.MeetingTranscript, info MeetingInfo) {
	language := ""
	if transcript != nil {
		language = transcript.Language
	}
	summary.Metadata = entities.SummaryMetadata{
		GeneratedAt:  time.Now().UTC(),
		Model:        s.chat.Model(),
		Title:        defaultString(info.Title, "unknown"),
		Date:         defaultString(info.Date, time.Now().Format("2006-01-02")),
		Participants: info.Participants,
		Language:     defaultString(language, "unknown"),
	}
	summary.Normalize()
	summary.ComputeQualityMetrics()
}

func buildPrompt(transcript *entities.MeetingTranscript, info MeetingInfo) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Meeting title: %s\n", defaultString(info.Title, "unknown"))
	fmt.Fprintf(&b, "Meeting date: %s\n", defaultString(info.Date, "unknown"))
	if len(info.Participants) > 0 {
		fmt.Fprintf(&b, "Participants: %s\n", strings.Join(info.Participants, ", "))
	}
	b.WriteString("\nTranscript:\n")
	b.WriteString(transcript.SpeakerText())

	return b.String()
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
