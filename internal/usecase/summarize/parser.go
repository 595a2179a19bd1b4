package summarize

import (
	"encoding/json"
	"strings"

	"github.com/johnquangdev/meeting-reporter/internal/domain/entities"
)

// Parser turns raw model output into a MeetingSummary. Parsing never fails:
// well-formed JSON is decoded strictly, anything else goes through a
// keyword heuristic over the plain text, and the worst case is a summary
// whose sections are all empty.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// rawSummary tolerates models that emit section items as objects instead
// of strings. Each section is decoded leniently after the envelope parses.
type rawSummary struct {
	ExecutiveSummary json.RawMessage   `json:"executive_summary"`
	KeyDecisions     []json.RawMessage `json:"key_decisions"`
	ActionItems      []json.RawMessage `json:"action_items"`
	TopicsDiscussed  []json.RawMessage `json:"topics_discussed"`
	FollowUpItems    []json.RawMessage `json:"follow_up_items"`
	RisksIssues      []json.RawMessage `json:"risks_issues"`
	NextSteps        []json.RawMessage `json:"next_steps"`
}

// Parse converts model output into a structured summary
func (p *Parser) Parse(content string) *entities.MeetingSummary {
	trimmed := extractJSON(content)

	var raw rawSummary
	if err := json.Unmarshal([]byte(trimmed), &raw); err == nil && strings.HasPrefix(trimmed, "{") {
		return fromRaw(&raw)
	}

	return parseText(content)
}

func fromRaw(raw *rawSummary) *entities.MeetingSummary {
	summary := entities.NewMeetingSummary()
	summary.ExecutiveSummary = decodeString(raw.ExecutiveSummary)
	summary.KeyDecisions = decodeItems(raw.KeyDecisions)
	summary.ActionItems = decodeItems(raw.ActionItems)
	summary.TopicsDiscussed = decodeItems(raw.TopicsDiscussed)
	summary.FollowUpItems = decodeItems(raw.FollowUpItems)
	summary.RisksIssues = decodeItems(raw.RisksIssues)
	summary.NextSteps = decodeItems(raw.NextSteps)
	return summary
}

func decodeItems(items []json.RawMessage) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if text := decodeString(item); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// decodeString flattens a JSON value to display text. Strings are used
// as-is; objects are reduced to their best descriptive field, or to their
// compact JSON form when no such field exists.
func decodeString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err == nil {
		for _, key := range []string{"description", "item", "text", "title", "task", "summary"} {
			if value, ok := obj[key].(string); ok && strings.TrimSpace(value) != "" {
				return strings.TrimSpace(value)
			}
		}
		if compact, err := json.Marshal(obj); err == nil {
			return string(compact)
		}
	}

	return strings.Trim(strings.TrimSpace(string(raw)), `"`)
}

// sectionRule maps heading keywords to a summary section. Rules are checked
// in order and the first match wins, so the more specific patterns come
// first.
type sectionRule struct {
	keywords   []string
	requireAll bool
	assign     func(*entities.MeetingSummary, string)
}

var sectionRules = []sectionRule{
	{keywords: []string{"action", "item"}, requireAll: true, assign: func(s *entities.MeetingSummary, line string) {
		s.ActionItems = append(s.ActionItems, line)
	}},
	{keywords: []string{"executive", "summary"}, assign: func(s *entities.MeetingSummary, line string) {
		if s.ExecutiveSummary == "" {
			s.ExecutiveSummary = line
		} else {
			s.ExecutiveSummary += " " + line
		}
	}},
	{keywords: []string{"decision"}, assign: func(s *entities.MeetingSummary, line string) {
		s.KeyDecisions = append(s.KeyDecisions, line)
	}},
	{keywords: []string{"topic", "discuss"}, assign: func(s *entities.MeetingSummary, line string) {
		s.TopicsDiscussed = append(s.TopicsDiscussed, line)
	}},
	{keywords: []string{"follow", "future"}, assign: func(s *entities.MeetingSummary, line string) {
		s.FollowUpItems = append(s.FollowUpItems, line)
	}},
	{keywords: []string{"risk", "issue"}, assign: func(s *entities.MeetingSummary, line string) {
		s.RisksIssues = append(s.RisksIssues, line)
	}},
	{keywords: []string{"next", "step"}, assign: func(s *entities.MeetingSummary, line string) {
		s.NextSteps = append(s.NextSteps, line)
	}},
}

func matchRule(heading string) *sectionRule {
	lower := strings.ToLower(heading)
	for i := range sectionRules {
		rule := &sectionRules[i]
		if rule.requireAll {
			all := true
			for _, kw := range rule.keywords {
				if !strings.Contains(lower, kw) {
					all = false
					break
				}
			}
			if all {
				return rule
			}
			continue
		}
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule
			}
		}
	}
	return nil
}

// parseText salvages a summary from free-form model output. Section
// headings are recognized by keyword, bullet lines below a heading fill
// that section, and prose before any heading lands in the executive
// summary.
func parseText(content string) *entities.MeetingSummary {
	summary := entities.NewMeetingSummary()
	var current *sectionRule

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if isHeading(line) {
			if rule := matchRule(line); rule != nil {
				current = rule
			}
			continue
		}

		text := stripBullet(line)
		if len(text) < 4 {
			continue
		}

		if current != nil {
			current.assign(summary, text)
		} else if summary.ExecutiveSummary == "" {
			summary.ExecutiveSummary = text
		} else {
			summary.ExecutiveSummary += " " + text
		}
	}

	return summary
}

// isHeading identifies lines that name a section rather than carry
// content. Headings either carry markdown header markers or end with a
// colon; plain prose never switches sections.
func isHeading(line string) bool {
	if strings.HasPrefix(line, "#") {
		return true
	}
	trimmed := strings.TrimRight(strings.TrimLeft(line, "*- "), "* ")
	return strings.HasSuffix(trimmed, ":")
}

// stripBullet removes list markers and numeric enumerators from a line
func stripBullet(line string) string {
	line = strings.TrimLeft(line, "-*•> \t")

	// "1." / "2)" style enumerators
	for i, r := range line {
		if r >= '0' && r <= '9' {
			continue
		}
		if (r == '.' || r == ')') && i > 0 {
			line = line[i+1:]
		}
		break
	}

	return strings.TrimSpace(line)
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
