package entities

import (
	"strings"
	"time"
)

// SummaryMetadata describes how and for what meeting a summary was generated.
// All meeting fields are optional and default to empty/unknown.
type SummaryMetadata struct {
	GeneratedAt  time.Time `json:"generated_at"`
	Model        string    `json:"model"`
	Title        string    `json:"meeting_title"`
	Date         string    `json:"meeting_date"`
	Participants []string  `json:"participants"`
	Language     string    `json:"language"`
}

// QualityMetrics are derived counts over the summary sections. They are
// always computed from the final section contents, never taken from the
// model, so a model that omits metrics cannot corrupt them.
type QualityMetrics struct {
	DecisionCount   int  `json:"decision_count"`
	ActionItemCount int  `json:"action_item_count"`
	HasDeadlines    bool `json:"has_deadlines"`
	HasAssignees    bool `json:"has_assignees"`
}

// MeetingSummary is the canonical structured summary. The seven section
// fields are always present, possibly empty, regardless of what the
// upstream model supplied.
type MeetingSummary struct {
	Metadata         SummaryMetadata `json:"metadata"`
	ExecutiveSummary string          `json:"executive_summary"`
	KeyDecisions     []string        `json:"key_decisions"`
	ActionItems      []string        `json:"action_items"`
	TopicsDiscussed  []string        `json:"topics_discussed"`
	FollowUpItems    []string        `json:"follow_up_items"`
	RisksIssues      []string        `json:"risks_issues"`
	NextSteps        []string        `json:"next_steps"`
	QualityMetrics   QualityMetrics  `json:"quality_metrics"`
}

// NewMeetingSummary creates an empty summary with all sections initialized
func NewMeetingSummary() *MeetingSummary {
	return &MeetingSummary{
		KeyDecisions:    make([]string, 0),
		ActionItems:     make([]string, 0),
		TopicsDiscussed: make([]string, 0),
		FollowUpItems:   make([]string, 0),
		RisksIssues:     make([]string, 0),
		NextSteps:       make([]string, 0),
	}
}

// Normalize ensures no section slice is nil
func (s *MeetingSummary) Normalize() {
	if s.KeyDecisions == nil {
		s.KeyDecisions = make([]string, 0)
	}
	if s.ActionItems == nil {
		s.ActionItems = make([]string, 0)
	}
	if s.TopicsDiscussed == nil {
		s.TopicsDiscussed = make([]string, 0)
	}
	if s.FollowUpItems == nil {
		s.FollowUpItems = make([]string, 0)
	}
	if s.RisksIssues == nil {
		s.RisksIssues = make([]string, 0)
	}
	if s.NextSteps == nil {
		s.NextSteps = make([]string, 0)
	}
}

// ComputeQualityMetrics recomputes the derived metrics from section contents
func (s *MeetingSummary) ComputeQualityMetrics() {
	metrics := QualityMetrics{
		DecisionCount:   len(s.KeyDecisions),
		ActionItemCount: len(s.ActionItems),
	}

	for _, item := range s.ActionItems {
		lower := strings.ToLower(item)
		if strings.Contains(lower, "deadline") || strings.Contains(lower, "due") {
			metrics.HasDeadlines = true
		}
		if strings.Contains(lower, "assigned") || strings.Contains(lower, "assignee") || strings.Contains(lower, "owner") {
			metrics.HasAssignees = true
		}
	}

	s.QualityMetrics = metrics
}
