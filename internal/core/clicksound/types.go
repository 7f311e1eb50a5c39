package clicksound

const (
	EventTypeSyn uint16 = 0x00
	EventTypeKey uint16 = 0x01

	PressValue   int32 = 1
	ReleaseValue int32 = 0
	RepeatValue  int32 = 2
)

type Event struct {
	Type  uint16
	Code  uint16
	Value int32
}

type Config struct {
	Triggers     map[uint16]struct{}
	Sound        string
	Volume       float64
	StartEnabled bool
}

// Player is fire-and-forget; implementations must not block the caller on
// playback and must swallow (log) their own errors.
type Player interface {
	Play(sound string, volume float64)
}

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
