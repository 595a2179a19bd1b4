package audio

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-audio/wav"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-reporter/pkg/executor"
)

const (
	// minFileBytes rejects empty or truncated uploads
	minFileBytes = 1024
	// minDurationSeconds rejects recordings too short to carry speech
	minDurationSeconds = 0.1

	probeTimeout  = 10 * time.Second
	decodeTimeout = 2 * time.Minute
)

// Info holds the metadata needed to decide whether a file is processable
type Info struct {
	SampleRate int
	Frames     int64
	Channels   int
}

// Duration returns the playback length in seconds
func (i Info) Duration() float64 {
	if i.SampleRate <= 0 {
		return 0
	}
	return float64(i.Frames) / float64(i.SampleRate)
}

// Validator checks that an audio file can be processed before expensive
// engine work begins. Validate never returns an error; failures are logged
// and reported as false.
type Validator struct {
	exec   executor.Executor
	logger *zap.Logger
}

// NewValidator creates a new audio validator
func NewValidator(exec executor.Executor, logger *zap.Logger) *Validator {
	return &Validator{
		exec:   exec,
		logger: logger,
	}
}

// Validate reports whether the file at path is a processable audio recording.
// Checks run in order and short-circuit on the first failure:
// existence, minimum size, metadata (probe then full-decode fallback),
// minimum duration.
func (v *Validator) Validate(path string) bool {
	stat, err := os.Stat(path)
	if err != nil {
		v.logger.Error("audio file does not exist", zap.String("path", path), zap.Error(err))
		return false
	}

	if stat.Size() < minFileBytes {
		v.logger.Error("audio file too small",
			zap.String("path", path),
			zap.Int64("size_bytes", stat.Size()),
		)
		return false
	}

	info, ok := v.probe(path)
	if !ok {
		// Metadata probing failed; fall back to a full decode solely to
		// recover sample rate and frame count.
		info, ok = v.decode(path)
	}
	if !ok {
		v.logger.Error("could not read audio metadata", zap.String("path", path))
		return false
	}

	duration := info.Duration()
	if duration < minDurationSeconds {
		v.logger.Error("audio file too short",
			zap.String("path", path),
			zap.Float64("duration_seconds", duration),
		)
		return false
	}

	v.logger.Info("audio file validated",
		zap.String("path", path),
		zap.Float64("duration_seconds", duration),
		zap.Int("sample_rate", info.SampleRate),
	)
	return true
}

// probe reads container metadata without decoding the audio payload
func (v *Validator) probe(path string) (Info, bool) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		return v.probeWAV(path)
	}
	return v.ffprobe(path, false)
}

// decode is the slow tier: decode the stream to recover sample rate and
// frame count when header metadata is missing or damaged
func (v *Validator) decode(path string) (Info, bool) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		return v.decodeWAV(path)
	}
	return v.ffprobe(path, true)
}

func (v *Validator) probeWAV(path string) (Info, bool) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, false
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	d.ReadInfo()
	if d.Err() != nil || d.SampleRate == 0 {
		return Info{}, false
	}

	dur, err := d.Duration()
	if err != nil {
		return Info{}, false
	}

	return Info{
		SampleRate: int(d.SampleRate),
		Frames:     int64(dur.Seconds() * float64(d.SampleRate)),
		Channels:   int(d.NumChans),
	}, true
}

func (v *Validator) decodeWAV(path string) (Info, bool) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, false
	}
	defer f.Close()

	buf, err := wav.NewDecoder(f).FullPCMBuffer()
	if err != nil || buf == nil || buf.Format == nil || buf.Format.SampleRate <= 0 {
		return Info{}, false
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}
	return Info{
		SampleRate: buf.Format.SampleRate,
		Frames:     int64(len(buf.Data) / channels),
		Channels:   channels,
	}, true
}

// ffprobe shells out for containers the in-process decoder cannot open
// (MP3, M4A, FLAC, OGG). countSamples forces a full decode.
func (v *Validator) ffprobe(path string, countSamples bool) (Info, bool) {
	timeout := probeTimeout
	args := []string{
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "stream=sample_rate,channels,duration,nb_samples",
		"-of", "json",
	}
	if countSamples {
		timeout = decodeTimeout
		args = append([]string{"-count_samples"}, args...)
	}
	args = append(args, path)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out, err := v.exec.Execute(ctx, "ffprobe", args...)
	if err != nil {
		v.logger.Warn("ffprobe failed", zap.String("path", path), zap.Error(err))
		return Info{}, false
	}

	var result struct {
		Streams []struct {
			SampleRate string `json:"sample_rate"`
			Channels   int    `json:"channels"`
			Duration   string `json:"duration"`
			NbSamples  string `json:"nb_samples"`
		} `json:"streams"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil || len(result.Streams) == 0 {
		return Info{}, false
	}

	stream := result.Streams[0]
	rate, err := strconv.Atoi(stream.SampleRate)
	if err != nil || rate <= 0 {
		return Info{}, false
	}

	var frames int64
	if stream.NbSamples != "" {
		frames, _ = strconv.ParseInt(stream.NbSamples, 10, 64)
	}
	if frames == 0 && stream.Duration != "" {
		if dur, err := strconv.ParseFloat(stream.Duration, 64); err == nil {
			frames = int64(dur * float64(rate))
		}
	}
	if frames == 0 {
		return Info{}, false
	}

	return Info{SampleRate: rate, Frames: frames, Channels: stream.Channels}, true
}
