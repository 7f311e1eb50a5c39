package sound

import (
	"os"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/SludgePhD/clickd/internal/core/clicksound"
)

// maxConcurrentPlays caps simultaneous playback processes; rapid clicking
// beyond the cap drops plays instead of queueing them.
const maxConcurrentPlays = 4

type clipKey struct {
	sound  string
	volume float64
}

type clip struct {
	path string
	err  error
}

// Player plays prepared clips through paplay or aplay. Play never blocks on
// playback and never returns errors; failures are logged and dropped.
type Player struct {
	logger  clicksound.Logger
	command string
	args    []string

	mu    sync.Mutex
	clips map[clipKey]*clip

	playing atomic.Int32
}

func NewPlayer(logger clicksound.Logger) *Player {
	command, args := detectAudioCommand()
	if command == "" {
		logger.Warn("No audio playback command found (need paplay or aplay); clicks will be silent")
	}
	return &Player{
		logger:  logger,
		command: command,
		args:    args,
		clips:   make(map[clipKey]*clip),
	}
}

// Preload prepares the clip for the configured sound so decode errors
// surface at startup instead of on the first click.
func (p *Player) Preload(sound string, volume float64) {
	p.prepare(sound, volume)
}

func (p *Player) Play(sound string, volume float64) {
	if p.command == "" {
		return
	}
	c := p.prepare(sound, volume)
	if c.err != nil {
		return
	}

	if p.playing.Add(1) > maxConcurrentPlays {
		p.playing.Add(-1)
		p.logger.Debug("Concurrent playback limit reached", "sound", clipName(sound))
		return
	}
	go p.playAsync(c.path)
}

// Close removes the prepared clip files.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, c := range p.clips {
		if c.err == nil && c.path != "" {
			_ = os.Remove(c.path)
		}
	}
	p.clips = make(map[clipKey]*clip)
}

func (p *Player) prepare(sound string, volume float64) *clip {
	key := clipKey{sound: sound, volume: volume}

	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.clips[key]; ok {
		return c
	}

	c := &clip{}
	c.path, c.err = prepareClip(sound, volume)
	if c.err != nil {
		p.logger.Error("Failed to prepare sound clip", "sound", clipName(sound), "err", c.err)
		if sound != "" {
			p.logger.Warn("Falling back to built-in click sound")
			c.path, c.err = prepareClip("", volume)
			if c.err != nil {
				p.logger.Error("Failed to prepare built-in clip", "err", c.err)
			}
		}
	}
	p.clips[key] = c
	return c
}

func (p *Player) playAsync(path string) {
	defer p.playing.Add(-1)

	args := make([]string, 0, len(p.args)+1)
	args = append(args, p.args...)
	args = append(args, path)
	if err := exec.Command(p.command, args...).Run(); err != nil {
		p.logger.Error("Playback failed", "path", path, "err", err)
	}
}

// detectAudioCommand prefers paplay (PulseAudio/PipeWire) and falls back to
// aplay (ALSA). Returns an empty command when neither is installed.
func detectAudioCommand() (string, []string) {
	if path, err := exec.LookPath("paplay"); err == nil {
		return path, nil
	}
	if path, err := exec.LookPath("aplay"); err == nil {
		return path, []string{"-q"}
	}
	return "", nil
}
