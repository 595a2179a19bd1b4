package render

import (
	"fmt"
	"time"

	"github.com/johnquangdev/meeting-reporter/internal/domain/entities"
)

// Renderer writes a meeting report to a file under outputDir and returns
// the path of the file it produced.
type Renderer interface {
	Render(summary *entities.MeetingSummary, transcript *entities.MeetingTranscript, outputDir string) (string, error)
}

// section pairs a display heading with its items so both renderers walk
// the summary in the same order.
type section struct {
	title string
	items []string
}

func sections(summary *entities.MeetingSummary) []section {
	return []section{
		{title: "Key Decisions", items: summary.KeyDecisions},
		{title: "Action Items", items: summary.ActionItems},
		{title: "Topics Discussed", items: summary.TopicsDiscussed},
		{title: "Follow-up Items", items: summary.FollowUpItems},
		{title: "Risks and Issues", items: summary.RisksIssues},
		{title: "Next Steps", items: summary.NextSteps},
	}
}

func reportFilename(ext string) string {
	return fmt.Sprintf("meeting_report_%s.%s", time.Now().Format("20060102_150405"), ext)
}
