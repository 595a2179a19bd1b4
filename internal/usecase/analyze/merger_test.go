package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/johnquangdev/meeting-reporter/internal/domain/entities"
)

func segs(bounds ...float64) []entities.TranscriptSegment {
	out := make([]entities.TranscriptSegment, 0, len(bounds)/2)
	for i := 0; i+1 < len(bounds); i += 2 {
		out = append(out, entities.TranscriptSegment{
			Start: bounds[i],
			End:   bounds[i+1],
			Text:  "text",
		})
	}
	return out
}

func TestAssignSpeakersAlternatesWithoutTurns(t *testing.T) {
	segments := segs(0, 5, 5, 10, 10, 15, 15, 20)

	AssignSpeakers(segments, nil)

	assert.Equal(t, "Speaker 1", segments[0].Speaker)
	assert.Equal(t, "Speaker 2", segments[1].Speaker)
	assert.Equal(t, "Speaker 1", segments[2].Speaker)
	assert.Equal(t, "Speaker 2", segments[3].Speaker)
}

func TestAssignSpeakersSingleTurnCoversAll(t *testing.T) {
	segments := segs(0, 5, 5, 10)
	turns := []entities.DiarizationTurn{
		{Start: 0, End: 10, SpeakerLabel: "SPEAKER_00"},
	}

	AssignSpeakers(segments, turns)

	assert.Equal(t, "SPEAKER_00", segments[0].Speaker)
	assert.Equal(t, "SPEAKER_00", segments[1].Speaker)
}

func TestAssignSpeakersLargestOverlapWins(t *testing.T) {
	segments := segs(0, 10)
	turns := []entities.DiarizationTurn{
		{Start: 0, End: 3, SpeakerLabel: "SPEAKER_00"},
		{Start: 3, End: 10, SpeakerLabel: "SPEAKER_01"},
	}

	AssignSpeakers(segments, turns)

	assert.Equal(t, "SPEAKER_01", segments[0].Speaker)
}

func TestAssignSpeakersAccumulatesSplitTurns(t *testing.T) {
	// SPEAKER_00 holds 6 seconds across two turns, SPEAKER_01 holds 4
	segments := segs(0, 10)
	turns := []entities.DiarizationTurn{
		{Start: 0, End: 3, SpeakerLabel: "SPEAKER_00"},
		{Start: 3, End: 7, SpeakerLabel: "SPEAKER_01"},
		{Start: 7, End: 10, SpeakerLabel: "SPEAKER_00"},
	}

	AssignSpeakers(segments, turns)

	assert.Equal(t, "SPEAKER_00", segments[0].Speaker)
}

func TestAssignSpeakersTieBreaksLexicographically(t *testing.T) {
	segments := segs(0, 10)
	turns := []entities.DiarizationTurn{
		{Start: 0, End: 5, SpeakerLabel: "SPEAKER_01"},
		{Start: 5, End: 10, SpeakerLabel: "SPEAKER_00"},
	}

	AssignSpeakers(segments, turns)

	assert.Equal(t, "SPEAKER_00", segments[0].Speaker)
}

func TestAssignSpeakersNoOverlapIsUnknown(t *testing.T) {
	segments := segs(0, 5, 20, 25)
	turns := []entities.DiarizationTurn{
		{Start: 0, End: 5, SpeakerLabel: "SPEAKER_00"},
	}

	AssignSpeakers(segments, turns)

	assert.Equal(t, "SPEAKER_00", segments[0].Speaker)
	assert.Equal(t, entities.UnknownSpeaker, segments[1].Speaker)
}

func TestAssignSpeakersTouchingBoundaryIsNotOverlap(t *testing.T) {
	segments := segs(5, 10)
	turns := []entities.DiarizationTurn{
		{Start: 0, End: 5, SpeakerLabel: "SPEAKER_00"},
	}

	AssignSpeakers(segments, turns)

	assert.Equal(t, entities.UnknownSpeaker, segments[0].Speaker)
}
