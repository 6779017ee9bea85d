package core

// Sound identifies a fire-and-forget audio cue emitted by the engine.
type Sound int

const (
	SoundJump   Sound = iota // Flap
	SoundScore               // Gate passed
	SoundGround              // Ground hit, game over
	SoundCrash               // Gate hit
	SoundCount
)

// String returns a human-readable name for the sound.
func (s Sound) String() string {
	switch s {
	case SoundJump:
		return "jump"
	case SoundScore:
		return "score"
	case SoundGround:
		return "ground"
	case SoundCrash:
		return "crash"
	default:
		return "unknown"
	}
}

// SoundPlayer receives audio cues. Implementations must not block the caller
// and must tolerate having no audio device.
type SoundPlayer interface {
	Play(s Sound)
}

// NopSound discards every cue.
type NopSound struct{}

// Play implements SoundPlayer.
func (NopSound) Play(Sound) {}
