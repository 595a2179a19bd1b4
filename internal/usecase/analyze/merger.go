package analyze

import (
	"fmt"

	"github.com/johnquangdev/meeting-reporter/internal/domain/entities"
)

// AssignSpeakers labels every transcript segment in place. With diarization
// turns present each segment gets the speaker whose turns overlap it the
// most; without turns the segments fall back to alternating generic labels.
func AssignSpeakers(segments []entities.TranscriptSegment, turns []entities.DiarizationTurn) {
	if len(turns) == 0 {
		for i := range segments {
			segments[i].Speaker = fmt.Sprintf("Speaker %d", i%2+1)
		}
		return
	}

	for i := range segments {
		segments[i].Speaker = dominantSpeaker(segments[i], turns)
	}
}

// dominantSpeaker picks the label with the largest accumulated overlap
// against the segment. Ties go to the lexicographically smallest label.
// A segment no turn touches gets the unknown sentinel.
func dominantSpeaker(seg entities.TranscriptSegment, turns []entities.DiarizationTurn) string {
	overlaps := make(map[string]float64)

	for _, turn := range turns {
		start := seg.Start
		if turn.Start > start {
			start = turn.Start
		}
		end := seg.End
		if turn.End < end {
			end = turn.End
		}
		if end-start > 0 {
			overlaps[turn.SpeakerLabel] += end - start
		}
	}

	if len(overlaps) == 0 {
		return entities.UnknownSpeaker
	}

	best := ""
	bestOverlap := 0.0
	for label, overlap := range overlaps {
		if overlap > bestOverlap || (overlap == bestOverlap && (best == "" || label < best)) {
			best = label
			bestOverlap = overlap
		}
	}
	return best
}
