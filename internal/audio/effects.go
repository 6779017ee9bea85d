package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// SampleRate is the output rate expected by every backend.
const SampleRate = beep.SampleRate(44100)

// Wave selects an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator is a fixed-length tone. With a non-zero sweep the frequency
// moves linearly towards freq+sweep over the tone's length.
type oscillator struct {
	freq     float64
	sweep    float64
	phase    float64
	position int
	length   int
	wave     Wave
	rng      *rand.Rand
}

// NewOscillator creates a tone generator of the given length.
func NewOscillator(freq, sweep float64, d time.Duration, wave Wave) beep.Streamer {
	return &oscillator{
		freq:   freq,
		sweep:  sweep,
		length: SampleRate.N(d),
		wave:   wave,
		rng:    rand.New(rand.NewSource(1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				v = 1
			} else {
				v = -1
			}
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		case WaveNoise:
			v = o.rng.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		freq := o.freq + o.sweep*float64(o.position)/float64(o.length)
		o.phase += freq / float64(SampleRate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s, which should last exactly d.
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   SampleRate.N(attack),
		release:  SampleRate.N(release),
		total:    SampleRate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.total - e.release
	for i := 0; i < n; i++ {
		gain := 1.0
		if e.attack > 0 && e.position < e.attack {
			gain = float64(e.position) / float64(e.attack)
		}
		if e.release > 0 && e.position >= releaseStart {
			gain = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales s linearly. Zero mutes it.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func tone(freq, sweep float64, d time.Duration, wave Wave, attack, release time.Duration) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, sweep, d, wave), d, attack, release)
}

// Effect builds the streamer for one cue at the given master volume.
// Unknown cues yield nil.
func Effect(s core.Sound, vol float64) beep.Streamer {
	var fx beep.Streamer
	switch s {
	case core.SoundJump:
		// Short upward chirp
		fx = withVolume(tone(420, 380, 90*time.Millisecond, WaveSquare, 5*time.Millisecond, 40*time.Millisecond), 0.35)
	case core.SoundScore:
		// Two-note chime
		fx = beep.Seq(
			withVolume(tone(987.77, 0, 70*time.Millisecond, WaveSine, 2*time.Millisecond, 30*time.Millisecond), 0.6),
			withVolume(tone(1318.51, 0, 140*time.Millisecond, WaveSine, 2*time.Millisecond, 100*time.Millisecond), 0.6),
		)
	case core.SoundGround:
		// Low thud with a noisy edge
		fx = beep.Take(SampleRate.N(220*time.Millisecond), beep.Mix(
			withVolume(tone(110, -60, 220*time.Millisecond, WaveSaw, 2*time.Millisecond, 180*time.Millisecond), 0.6),
			withVolume(tone(0, 0, 80*time.Millisecond, WaveNoise, time.Millisecond, 70*time.Millisecond), 0.3),
		))
	case core.SoundCrash:
		// Noise burst
		fx = withVolume(tone(0, 0, 150*time.Millisecond, WaveNoise, time.Millisecond, 120*time.Millisecond), 0.5)
	default:
		return nil
	}
	return withVolume(fx, vol)
}

// maxEffect caps rendering so a streamer that never ends cannot hang.
const maxEffect = 2 * time.Second

// Render drains a streamer into a mono sample buffer.
func Render(s beep.Streamer) []float64 {
	if s == nil {
		return nil
	}
	var out []float64
	chunk := make([][2]float64, 512)
	for limit := SampleRate.N(maxEffect); len(out) < limit; {
		n, ok := s.Stream(chunk)
		for i := 0; i < n; i++ {
			out = append(out, (chunk[i][0]+chunk[i][1])/2)
		}
		if !ok {
			break
		}
	}
	return out
}
