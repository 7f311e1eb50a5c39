package sound

import (
	"os"
	"testing"

	"github.com/go-audio/wav"
)

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

func TestScaleSamples(t *testing.T) {
	samples := []int{1000, -1000, 0, 32767, -32768}
	scaleSamples(samples, 0.5, 16)

	expected := []int{500, -500, 0, 16384, -16384}
	for i, want := range expected {
		if samples[i] != want {
			t.Fatalf("samples[%d]=%d, want %d", i, samples[i], want)
		}
	}
}

func TestScaleSamplesFullVolumeClampsToBitDepth(t *testing.T) {
	// A sample already at the positive limit must not overflow it after
	// rounding.
	samples := []int{32767, -32768}
	scaleSamples(samples, 1.0, 16)
	if samples[0] != 32767 || samples[1] != -32768 {
		t.Fatalf("samples=%v, want [32767 -32768]", samples)
	}
}

func TestPrepareClipScalesEmbeddedDefault(t *testing.T) {
	fullPath, err := prepareClip("", 1.0)
	if err != nil {
		t.Fatalf("prepareClip(full) error = %v", err)
	}
	defer os.Remove(fullPath)

	halfPath, err := prepareClip("", 0.5)
	if err != nil {
		t.Fatalf("prepareClip(half) error = %v", err)
	}
	defer os.Remove(halfPath)

	full := decodeSamples(t, fullPath)
	half := decodeSamples(t, halfPath)
	if len(full) == 0 || len(full) != len(half) {
		t.Fatalf("sample counts differ: full=%d half=%d", len(full), len(half))
	}

	var peak int
	for i := range full {
		if full[i] > peak {
			peak = full[i]
		}
		want := full[i] / 2
		if diff := half[i] - want; diff < -1 || diff > 1 {
			t.Fatalf("sample %d: half=%d, want ~%d", i, half[i], want)
		}
	}
	if peak == 0 {
		t.Fatalf("embedded clip is silent")
	}
}

func TestPrepareClipMissingFileFails(t *testing.T) {
	if _, err := prepareClip("/nonexistent/click.wav", 1.0); err == nil {
		t.Fatalf("expected error for missing sound file")
	}
}

func TestPrepareClipRejectsNonWAVData(t *testing.T) {
	path := t.TempDir() + "/not-a-wav.wav"
	if err := os.WriteFile(path, []byte("definitely not RIFF"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := prepareClip(path, 1.0); err == nil {
		t.Fatalf("expected error for invalid WAV data")
	}
}

func TestPlayerFallsBackToBuiltinClip(t *testing.T) {
	player := NewPlayer(noopLogger{})
	defer player.Close()

	c := player.prepare("/nonexistent/click.wav", 0.8)
	if c.err != nil {
		t.Fatalf("expected fallback to built-in clip, got error %v", c.err)
	}
	if _, err := os.Stat(c.path); err != nil {
		t.Fatalf("prepared clip file missing: %v", err)
	}

	if again := player.prepare("/nonexistent/click.wav", 0.8); again != c {
		t.Fatalf("expected cached clip on second prepare")
	}
}

func TestPlayerCloseRemovesClipFiles(t *testing.T) {
	player := NewPlayer(noopLogger{})

	c := player.prepare("", 1.0)
	if c.err != nil {
		t.Fatalf("prepare error = %v", c.err)
	}
	player.Close()

	if _, err := os.Stat(c.path); !os.IsNotExist(err) {
		t.Fatalf("expected clip file removed, stat err = %v", err)
	}
}

func decodeSamples(t *testing.T, path string) []int {
	t.Helper()
	f, openErr := os.Open(path)
	if openErr != nil {
		t.Fatalf("open %s: %v", path, openErr)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		t.Fatalf("%s is not a valid WAV file", path)
	}
	buf, decodeErr := decoder.FullPCMBuffer()
	if decodeErr != nil {
		t.Fatalf("decode %s: %v", path, decodeErr)
	}
	return buf.Data
}
