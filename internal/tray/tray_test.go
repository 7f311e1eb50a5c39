package tray

import "testing"

func TestRunRequiresController(t *testing.T) {
	if err := Run(Options{}); err == nil {
		t.Fatalf("expected error for nil controller")
	}
}

func TestStateLabels(t *testing.T) {
	if got := stateTitle(true); got != "clickd - enabled (click to disable)" {
		t.Fatalf("stateTitle(true)=%q", got)
	}
	if got := stateTitle(false); got != "clickd - disabled (click to enable)" {
		t.Fatalf("stateTitle(false)=%q", got)
	}
	if got := toggleLabel(true); got != "Disable clicking" {
		t.Fatalf("toggleLabel(true)=%q", got)
	}
	if got := toggleLabel(false); got != "Enable clicking" {
		t.Fatalf("toggleLabel(false)=%q", got)
	}
}

func TestEmbeddedIconsPresent(t *testing.T) {
	if len(iconEnabled) == 0 || len(iconDisabled) == 0 {
		t.Fatalf("embedded tray icons are empty")
	}
}
