package entities

import "strings"

// UnknownSpeaker is the sentinel label for segments no diarization turn covers
const UnknownSpeaker = "Unknown Speaker"

// TranscriptSegment is a time-bounded span of recognized speech with an
// attributed speaker. Start and End are seconds; segments may overlap
// (overlapping speech is possible).
type TranscriptSegment struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
	Speaker string  `json:"speaker"`
}

// MeetingTranscript is the speaker-labeled transcription of one recording.
// Segments are ordered by start time. FullText is a denormalized
// convenience field, derivable from the segments.
type MeetingTranscript struct {
	Language string              `json:"language"`
	Segments []TranscriptSegment `json:"segments"`
	FullText string              `json:"full_text"`
}

// DiarizationTurn is a time interval attributed to one anonymous voice,
// as produced by the diarization engine. Labels are unique per detected
// voice within one audio file, not globally meaningful.
type DiarizationTurn struct {
	Start        float64 `json:"start"`
	End          float64 `json:"end"`
	SpeakerLabel string  `json:"speaker_label"`
}

// SpeakerText renders the transcript as "Speaker: text" lines for prompting
func (t *MeetingTranscript) SpeakerText() string {
	lines := make([]string, 0, len(t.Segments))
	for _, seg := range t.Segments {
		lines = append(lines, seg.Speaker+": "+seg.Text)
	}
	return strings.Join(lines, "\n")
}

// IsEmpty reports whether the transcript carries no usable speech
func (t *MeetingTranscript) IsEmpty() bool {
	return t == nil || len(t.Segments) == 0
}
