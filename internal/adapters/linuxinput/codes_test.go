package linuxinput

import "testing"

func TestParseButtonNames(t *testing.T) {
	tests := []struct {
		raw      string
		expected uint16
	}{
		{raw: "left", expected: 0x110},
		{raw: "Right", expected: 0x111},
		{raw: "middle", expected: 0x112},
		{raw: "side", expected: 0x113},
		{raw: "side1", expected: 0x113},
		{raw: "extra", expected: 0x114},
		{raw: "side2", expected: 0x114},
		{raw: "BTN_LEFT", expected: 0x110},
		{raw: "btn_extra", expected: 0x114},
		{raw: "KEY_F8", expected: 66},
		{raw: "0x113", expected: 0x113},
		{raw: "274", expected: 0x112},
	}

	for _, tc := range tests {
		got, err := ParseButton(tc.raw)
		if err != nil {
			t.Fatalf("ParseButton(%q) returned error: %v", tc.raw, err)
		}
		if got != tc.expected {
			t.Fatalf("ParseButton(%q)=%d, want %d", tc.raw, got, tc.expected)
		}
	}
}

func TestParseButtonRejectsUnknownNames(t *testing.T) {
	for _, raw := range []string{"", "nope", "BTN_NOPE", "-1", "70000"} {
		if _, err := ParseButton(raw); err == nil {
			t.Fatalf("ParseButton(%q) succeeded, want error", raw)
		}
	}
}

func TestParseButtonsBuildsTriggerSet(t *testing.T) {
	triggers, err := ParseButtons([]string{"left", "right", "BTN_RIGHT"})
	if err != nil {
		t.Fatalf("ParseButtons() error = %v", err)
	}
	if len(triggers) != 2 {
		t.Fatalf("len(triggers)=%d, want 2 (duplicates collapse)", len(triggers))
	}
	for _, code := range []uint16{0x110, 0x111} {
		if _, ok := triggers[code]; !ok {
			t.Fatalf("trigger set missing code %#x", code)
		}
	}

	if _, err := ParseButtons(nil); err == nil {
		t.Fatalf("ParseButtons(nil) succeeded, want error")
	}
	if _, err := ParseButtons([]string{"left", "bogus"}); err == nil {
		t.Fatalf("ParseButtons with bogus name succeeded, want error")
	}
}

func TestFormatCodeName(t *testing.T) {
	if name := FormatCodeName(0x110); name != "BTN_LEFT" {
		t.Fatalf("FormatCodeName(0x110)=%q, want BTN_LEFT", name)
	}
	if name := FormatCodeName(0x114); name != "BTN_EXTRA" {
		t.Fatalf("FormatCodeName(0x114)=%q, want BTN_EXTRA", name)
	}
}

func TestMatchesNameFilter(t *testing.T) {
	if !matchesNameFilter("Any Device", nil) {
		t.Fatalf("empty filter should match everything")
	}
	filter := []string{"Logitech G Pro", "Kensington Slimblade"}
	if !matchesNameFilter("Logitech G Pro", filter) {
		t.Fatalf("expected exact name to match")
	}
	if matchesNameFilter("Logitech G Pro X", filter) {
		t.Fatalf("expected non-listed name to be rejected")
	}
}
