// Package audio turns engine sound cues into short synthesized effects and
// streams them to a system playback tool. When no tool is available the
// player degrades to silence instead of failing the game.
package audio

import (
	"errors"
	"os/exec"
)

// Sentinel errors
var (
	ErrNoAudioBackend = errors.New("audio: no playback backend found")
	ErrPipeClosed     = errors.New("audio: output pipe closed")
)

// Backend describes a command-line tool that plays raw PCM from stdin.
type Backend struct {
	Name string
	Path string
	Args []string
}

// candidates lists playback tools in order of preference. Every entry reads
// 44.1kHz stereo signed 16-bit little-endian samples from stdin.
var candidates = []Backend{
	{Name: "pacat", Args: []string{"--raw", "--format=s16le", "--rate=44100", "--channels=2", "--latency-msec=50", "--playback"}},
	{Name: "pw-cat", Args: []string{"--playback", "--format=s16", "--rate=44100", "--channels=2", "--latency=50ms", "-"}},
	{Name: "aplay", Args: []string{"-t", "raw", "-f", "S16_LE", "-r", "44100", "-c", "2", "-q"}},
	{Name: "play", Args: []string{"-t", "raw", "-e", "signed", "-b", "16", "-c", "2", "-r", "44100", "-", "-d", "-q"}},
	{Name: "ffplay", Args: []string{"-nodisp", "-autoexit", "-f", "s16le", "-ac", "2", "-ar", "44100", "-i", "pipe:0", "-loglevel", "quiet"}},
}

// DetectBackend returns the first playback tool found on PATH.
func DetectBackend() (*Backend, error) {
	return detect(exec.LookPath)
}

func detect(lookPath func(string) (string, error)) (*Backend, error) {
	for _, c := range candidates {
		path, err := lookPath(c.Name)
		if err != nil {
			continue
		}
		b := c
		b.Path = path
		return &b, nil
	}
	return nil, ErrNoAudioBackend
}

// Capability reports whether the host can play sound at all.
type Capability interface {
	CanPlayAudio() bool
}

// System probes the host for a playback backend.
type System struct{}

// CanPlayAudio implements Capability.
func (System) CanPlayAudio() bool {
	_, err := DetectBackend()
	return err == nil
}

// Muted is a Capability that never allows playback.
type Muted struct{}

// CanPlayAudio implements Capability.
func (Muted) CanPlayAudio() bool { return false }
