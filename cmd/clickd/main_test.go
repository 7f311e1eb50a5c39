package main

import (
	"log/slog"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		raw      string
		expected slog.Level
	}{
		{raw: "debug", expected: slog.LevelDebug},
		{raw: "info", expected: slog.LevelInfo},
		{raw: "warning", expected: slog.LevelWarn},
		{raw: "warn", expected: slog.LevelWarn},
		{raw: "ERROR", expected: slog.LevelError},
		{raw: " info ", expected: slog.LevelInfo},
	}
	for _, tc := range tests {
		got, err := parseLogLevel(tc.raw)
		if err != nil {
			t.Fatalf("parseLogLevel(%q) returned error: %v", tc.raw, err)
		}
		if got != tc.expected {
			t.Fatalf("parseLogLevel(%q)=%v, want %v", tc.raw, got, tc.expected)
		}
	}

	if _, err := parseLogLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown log level")
	}
}

func TestParseOptionsConfigPath(t *testing.T) {
	opts, err := parseOptions([]string{"/etc/clickd/config.toml"})
	if err != nil {
		t.Fatalf("parseOptions() error = %v", err)
	}
	if opts.configPath != "/etc/clickd/config.toml" {
		t.Fatalf("configPath = %q", opts.configPath)
	}

	opts, err = parseOptions(nil)
	if err != nil {
		t.Fatalf("parseOptions(nil) error = %v", err)
	}
	if opts.configPath != "" {
		t.Fatalf("configPath = %q, want empty", opts.configPath)
	}
	if opts.logLevel != slog.LevelInfo {
		t.Fatalf("logLevel = %v, want info", opts.logLevel)
	}
}

func TestParseOptionsRejectsExtraArguments(t *testing.T) {
	if _, err := parseOptions([]string{"a.toml", "b.toml"}); err == nil {
		t.Fatalf("expected usage error for extra positional arguments")
	}
}

func TestParseOptionsFlags(t *testing.T) {
	opts, err := parseOptions([]string{"-list-devices", "-log-level", "debug"})
	if err != nil {
		t.Fatalf("parseOptions() error = %v", err)
	}
	if !opts.listDevices {
		t.Fatalf("listDevices = false, want true")
	}
	if opts.logLevel != slog.LevelDebug {
		t.Fatalf("logLevel = %v, want debug", opts.logLevel)
	}
}
