package sound

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// prepareClip decodes a WAV, scales every sample by volume, and writes the
// result to a temp file that the playback commands can consume. Scaling once
// at load time keeps volume handling identical between paplay and aplay.
func prepareClip(soundPath string, volume float64) (string, error) {
	data := defaultClick
	if soundPath != "" {
		var err error
		data, err = os.ReadFile(soundPath)
		if err != nil {
			return "", fmt.Errorf("read sound file: %w", err)
		}
	}

	decoder := wav.NewDecoder(bytes.NewReader(data))
	if !decoder.IsValidFile() {
		return "", fmt.Errorf("%s is not a valid WAV file", clipName(soundPath))
	}
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", clipName(soundPath), err)
	}

	bitDepth := int(decoder.BitDepth)
	scaleSamples(buf.Data, volume, bitDepth)

	out, err := os.CreateTemp("", "clickd-*.wav")
	if err != nil {
		return "", fmt.Errorf("create clip file: %w", err)
	}

	if err := encodeClip(out, buf, bitDepth, int(decoder.WavAudioFormat)); err != nil {
		_ = out.Close()
		_ = os.Remove(out.Name())
		return "", err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(out.Name())
		return "", fmt.Errorf("close clip file: %w", err)
	}
	return out.Name(), nil
}

func encodeClip(out *os.File, buf *audio.IntBuffer, bitDepth, audioFormat int) error {
	encoder := wav.NewEncoder(out, buf.Format.SampleRate, bitDepth, buf.Format.NumChannels, audioFormat)
	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("encode clip: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("finalize clip: %w", err)
	}
	return nil
}

func scaleSamples(samples []int, volume float64, bitDepth int) {
	if bitDepth <= 0 {
		bitDepth = 16
	}
	max := 1<<(bitDepth-1) - 1
	min := -(1 << (bitDepth - 1))
	for i, sample := range samples {
		scaled := int(math.Round(float64(sample) * volume))
		if scaled > max {
			scaled = max
		}
		if scaled < min {
			scaled = min
		}
		samples[i] = scaled
	}
}

func clipName(soundPath string) string {
	if soundPath == "" {
		return "built-in click"
	}
	return soundPath
}
