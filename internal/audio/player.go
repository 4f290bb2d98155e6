// Package audio plays an optional soundtrack and reports its loudness so
// the wave band can breathe with it.
package audio

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// Patterns are the file types Load understands.
var Patterns = []string{"*.wav", "*.mp3", "*.flac"}

// ErrUnsupported is returned for files with an unknown extension.
var ErrUnsupported = errors.New("unsupported file type")

const levelWindow = 2048

// Speaker hooks, swapped out in tests.
var (
	speakerInit  = speaker.Init
	speakerClear = speaker.Clear
)

// Player owns at most one playing track.
type Player struct {
	ringSize  int
	smoothing float64

	currentFile *os.File
	streamer    beep.StreamSeekCloser
	format      beep.Format
	ctrl        *beep.Ctrl
	tap         *visualTap
	name        string

	duration time.Duration
	position time.Duration
	level    float64

	ended    atomic.Bool
	paused   bool
	initDone bool
}

// NewPlayer returns an idle player. ringSize is the sample history kept for
// loudness; smoothing in [0, 1) damps frame-to-frame level changes.
func NewPlayer(ringSize int, smoothing float64) *Player {
	return &Player{ringSize: ringSize, smoothing: smoothing}
}

// Load decodes path and starts playing it, replacing any current track.
func (p *Player) Load(path string) error {
	decode, err := decoderFor(path)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open soundtrack: %w", err)
	}

	streamer, format, err := decode(f)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}

	// Prepare audio chain: streamer -> tap -> ctrl
	t := newVisualTap(streamer, p.ringSize)
	ctrl := &beep.Ctrl{Streamer: t, Paused: false}

	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !p.initDone:
		if err := speakerInit(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("failed to init speaker: %w", err)
		}
		p.initDone = true
	case p.format.SampleRate != format.SampleRate:
		// Re-init when sample rate changes. Clear takes the speaker lock itself.
		speakerClear()
		p.release()
		if err := speakerInit(format.SampleRate, bufferSize); err != nil {
			p.initDone = false
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("failed to init speaker: %w", err)
		}
	default:
		speakerClear()
	}
	p.release()

	p.currentFile = f
	p.streamer = streamer
	p.format = format
	p.ctrl = ctrl
	p.tap = t
	p.name = filepath.Base(path)
	p.paused = false
	p.ended.Store(false)
	p.duration = format.SampleRate.D(streamer.Len())
	p.position = 0

	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		p.ended.Store(true)
	})))

	log.Printf("[Audio] Playing %s (%s)", p.name, formatDuration(p.duration))
	return nil
}

// decoderFor picks the beep decoder by file extension.
func decoderFor(path string) (func(f *os.File) (beep.StreamSeekCloser, beep.Format, error), error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav":
		return func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) }, nil
	case ".mp3":
		return func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) }, nil
	case ".flac":
		return func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return flac.Decode(f) }, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
}

// Update advances the playback clock by dt and refreshes the loudness level.
// Call it once per frame.
func (p *Player) Update(dt time.Duration) {
	if p.ended.Load() {
		log.Printf("[Audio] Finished %s", p.name)
		p.ended.Store(false)
		p.release()
	}

	target := 0.0
	if p.tap != nil && !p.paused {
		target = math.Pow(p.tap.rms(levelWindow), 0.3)
		p.position = min(p.position+dt, p.duration)
	}
	p.level = clamp01(p.smoothing*p.level + (1-p.smoothing)*target)
}

// Level is the smoothed, compressed loudness in [0, 1].
func (p *Player) Level() float64 {
	return p.level
}

// TogglePause pauses or resumes the current track.
func (p *Player) TogglePause() {
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.paused = !p.paused
	p.ctrl.Paused = p.paused
	speaker.Unlock()
}

func (p *Player) Playing() bool { return p.streamer != nil }
func (p *Player) Paused() bool  { return p.paused }

// Status is a short line for the overlay, empty when idle.
func (p *Player) Status() string {
	if !p.Playing() {
		return ""
	}
	state := "playing"
	if p.paused {
		state = "paused"
	}
	return fmt.Sprintf("%s %s %s/%s", state, p.name, formatDuration(p.position), formatDuration(p.duration))
}

// Close stops playback and releases the file.
func (p *Player) Close() {
	if p.initDone {
		speaker.Clear()
	}
	p.release()
}

func (p *Player) release() {
	if p.streamer != nil {
		_ = p.streamer.Close()
		p.streamer = nil
	}
	if p.currentFile != nil {
		_ = p.currentFile.Close()
		p.currentFile = nil
	}
	p.ctrl = nil
	p.tap = nil
	p.name = ""
	p.paused = false
	p.duration = 0
	p.position = 0
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
