// Package sound prepares the configured click sound and plays it through the
// system audio commands.
package sound

import _ "embed"

// defaultClick is played when the config does not name a sound file, and as
// a fallback when the configured file cannot be loaded.
//
//go:embed assets/click.wav
var defaultClick []byte
