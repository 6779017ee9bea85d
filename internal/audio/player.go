package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

const (
	chunkDuration = 10 * time.Millisecond
	bytesPerFrame = 4 // Stereo s16le
	queueSize     = 16
)

// voice is one effect being mixed.
type voice struct {
	samples []float64
	pos     int
}

// Player mixes engine cues and streams them to a playback backend.
// Play never blocks the caller; cues that arrive while the queue is full are
// dropped. A Player that cannot reach a backend stays silent.
type Player struct {
	cfg        config.AudioConfig
	capability Capability
	logger     *log.Logger

	cache [core.SoundCount][]float64
	queue chan core.Sound

	silent  atomic.Bool
	started atomic.Bool
	played  atomic.Uint64
	dropped atomic.Uint64

	cmd      *exec.Cmd
	out      io.WriteCloser
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewPlayer renders every effect up front at the configured volume.
// A nil capability means the host is assumed able to play audio.
func NewPlayer(cfg config.AudioConfig, capability Capability, logger *log.Logger) *Player {
	p := &Player{
		cfg:        cfg,
		capability: capability,
		logger:     logger,
		queue:      make(chan core.Sound, queueSize),
		stop:       make(chan struct{}),
	}
	for s := core.Sound(0); s < core.SoundCount; s++ {
		p.cache[s] = Render(Effect(s, cfg.Volume))
	}
	p.silent.Store(true)
	return p
}

// Start launches the backend process and the mixing loop. If audio is
// disabled or no backend exists the player stays silent and Start returns
// nil; an error means a backend was found but could not be started.
func (p *Player) Start() error {
	if !p.started.CompareAndSwap(false, true) {
		return nil
	}
	if !p.cfg.Enabled {
		p.logger.Debug("audio disabled by config")
		return nil
	}
	if p.capability != nil && !p.capability.CanPlayAudio() {
		p.logger.Info("audio unavailable on this host")
		return nil
	}

	backend, err := DetectBackend()
	if err != nil {
		p.logger.Warn("audio disabled", "error", err)
		return nil
	}

	cmd := exec.Command(backend.Path, backend.Args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("audio: pipe to %s: %w", backend.Name, err)
	}
	if err := cmd.Start(); err != nil {
		stdin.Close()
		return fmt.Errorf("audio: start %s: %w", backend.Name, err)
	}
	p.cmd = cmd
	p.logger.Debug("audio backend started", "backend", backend.Name, "path", backend.Path)

	p.run(stdin)
	return nil
}

// run starts the mixing loop writing to out.
func (p *Player) run(out io.WriteCloser) {
	p.out = out
	p.silent.Store(false)
	p.wg.Add(1)
	go p.loop()
}

// Play queues a cue. It reports whether the cue was accepted.
func (p *Player) Play(s core.Sound) bool {
	if p.silent.Load() || s < 0 || s >= core.SoundCount {
		return false
	}
	select {
	case p.queue <- s:
		return true
	default:
		p.dropped.Add(1)
		return false
	}
}

// Silent reports whether cues are currently being discarded.
func (p *Player) Silent() bool {
	return p.silent.Load()
}

// Stats returns how many cues were mixed and how many were dropped.
func (p *Player) Stats() (played, dropped uint64) {
	return p.played.Load(), p.dropped.Load()
}

// Close stops mixing and shuts the backend down. Safe to call more than once.
func (p *Player) Close() error {
	p.stopOnce.Do(func() {
		p.silent.Store(true)
		close(p.stop)
	})
	p.wg.Wait()

	var err error
	if p.out != nil {
		err = p.out.Close()
		p.out = nil
	}
	if p.cmd != nil && p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
		_ = p.cmd.Wait()
		p.cmd = nil
	}
	return err
}

// Sink adapts the player to the engine's fire-and-forget interface.
func (p *Player) Sink() core.SoundPlayer {
	return sink{p}
}

type sink struct{ p *Player }

func (s sink) Play(snd core.Sound) { s.p.Play(snd) }

func (p *Player) loop() {
	defer p.wg.Done()

	frames := SampleRate.N(chunkDuration)
	mix := make([]float64, frames)
	buf := make([]byte, frames*bytesPerFrame)
	var active []voice

	ticker := time.NewTicker(chunkDuration)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case s := <-p.queue:
			if len(p.cache[s]) > 0 {
				active = append(active, voice{samples: p.cache[s]})
				p.played.Add(1)
			}
		case <-ticker.C:
			clear(mix)
			active = mixVoices(active, mix)
			encode(mix, buf)
			// Silence keeps the pipe open between cues.
			if _, err := p.out.Write(buf); err != nil {
				p.silent.Store(true)
				p.logger.Warn("audio output lost", "error", fmt.Errorf("%w: %v", ErrPipeClosed, err))
				return
			}
		}
	}
}

// mixVoices adds active voices into mix and returns those still playing.
func mixVoices(active []voice, mix []float64) []voice {
	remaining := active[:0]
	for _, v := range active {
		for i := range mix {
			if v.pos >= len(v.samples) {
				break
			}
			mix[i] += v.samples[v.pos]
			v.pos++
		}
		if v.pos < len(v.samples) {
			remaining = append(remaining, v)
		}
	}
	return remaining
}

// encode writes mono samples as interleaved stereo s16le, clipping at full scale.
func encode(mix []float64, out []byte) {
	for i, v := range mix {
		v = max(-1, min(1, v))
		s := uint16(int16(v * 32767))
		binary.LittleEndian.PutUint16(out[i*4:], s)
		binary.LittleEndian.PutUint16(out[i*4+2:], s)
	}
}
