package linuxinput

import (
	"fmt"
	"strconv"
	"strings"

	evdev "github.com/holoplot/go-evdev"
)

// buttonAliases maps the friendly names accepted in config files to evdev
// codes. side1/side2 mirror the common hardware labels for BTN_SIDE and
// BTN_EXTRA.
var buttonAliases = map[string]evdev.EvCode{
	"left":    evdev.BTN_LEFT,
	"right":   evdev.BTN_RIGHT,
	"middle":  evdev.BTN_MIDDLE,
	"side":    evdev.BTN_SIDE,
	"side1":   evdev.BTN_SIDE,
	"extra":   evdev.BTN_EXTRA,
	"side2":   evdev.BTN_EXTRA,
	"forward": evdev.BTN_FORWARD,
	"back":    evdev.BTN_BACK,
	"task":    evdev.BTN_TASK,
}

// ParseButton resolves a configured button name to an evdev key code. It
// accepts the friendly aliases, full evdev names like BTN_SIDE or KEY_F8,
// and bare numeric codes.
func ParseButton(value string) (uint16, error) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return 0, fmt.Errorf("button name is empty")
	}
	if code, ok := buttonAliases[strings.ToLower(raw)]; ok {
		return uint16(code), nil
	}
	if code, ok := evdev.KEYFromString[strings.ToUpper(raw)]; ok {
		return uint16(code), nil
	}

	parsed, err := strconv.ParseInt(raw, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("unknown button %q: use left/right/middle/side/extra, names like BTN_SIDE/KEY_F8, or a numeric code", value)
	}
	if parsed < 0 || parsed > 0xFFFF {
		return 0, fmt.Errorf("button code out of range: %d", parsed)
	}
	return uint16(parsed), nil
}

// ParseButtons resolves a configured button list into the trigger set.
func ParseButtons(names []string) (map[uint16]struct{}, error) {
	triggers := make(map[uint16]struct{}, len(names))
	for _, name := range names {
		code, err := ParseButton(name)
		if err != nil {
			return nil, err
		}
		triggers[code] = struct{}{}
	}
	if len(triggers) == 0 {
		return nil, fmt.Errorf("button set is empty")
	}
	return triggers, nil
}

func FormatCodeName(code uint16) string {
	name := evdev.CodeName(evdev.EV_KEY, evdev.EvCode(code))
	if name != "" {
		return name
	}
	return strconv.Itoa(int(code))
}
