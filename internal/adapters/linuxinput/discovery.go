//go:build linux

package linuxinput

import (
	"fmt"
	"os"
	"sort"
	"strings"

	evdev "github.com/holoplot/go-evdev"
)

type DeviceInfo struct {
	Path      string
	Name      string
	IsVirtual bool
	IsPointer bool
}

type SourceSelection struct {
	Devices []*evdev.InputDevice
}

func ListInputDevices() ([]DeviceInfo, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, err
	}

	sort.Slice(paths, func(i, j int) bool {
		return paths[i].Path < paths[j].Path
	})

	devices := make([]DeviceInfo, 0, len(paths))
	for _, path := range paths {
		dev, err := openInputDevice(path.Path)
		if err != nil {
			continue
		}

		name := path.Name
		if actualName, err := dev.Name(); err == nil && actualName != "" {
			name = actualName
		}

		devices = append(devices, DeviceInfo{
			Path:      path.Path,
			Name:      name,
			IsVirtual: deviceIsVirtual(dev, name),
			IsPointer: deviceIsPointer(dev),
		})
		_ = dev.Close()
	}

	return devices, nil
}

// OpenSourceSelection opens every input device that exposes at least one of
// the configured trigger codes. nameFilter, when non-empty, restricts the
// scan to devices whose reported name matches exactly. An empty selection is
// not an error; the caller decides whether to idle.
func OpenSourceSelection(triggers map[uint16]struct{}, nameFilter []string) (*SourceSelection, error) {
	if len(triggers) == 0 {
		return nil, fmt.Errorf("trigger set is empty")
	}

	matches, err := findDevicesByCodes(triggers, nameFilter)
	if err != nil {
		return nil, err
	}

	devices := make([]*evdev.InputDevice, 0, len(matches))
	var firstOpenErr error
	for _, match := range matches {
		dev, err := openInputDevice(match.Path)
		if err != nil {
			if firstOpenErr == nil {
				firstOpenErr = err
			}
			continue
		}
		devices = append(devices, dev)
	}

	if len(matches) > 0 && len(devices) == 0 {
		return nil, fmt.Errorf("found %d matching input devices, but failed to open any: %w", len(matches), firstOpenErr)
	}

	return &SourceSelection{Devices: devices}, nil
}

func (s *SourceSelection) Close() {
	for _, dev := range s.Devices {
		_ = dev.Close()
	}
}

func openInputDevice(path string) (*evdev.InputDevice, error) {
	return evdev.OpenWithFlags(path, os.O_RDONLY)
}

func deviceSupportsAnyCode(device *evdev.InputDevice, codes map[uint16]struct{}) bool {
	for _, c := range device.CapableEvents(evdev.EV_KEY) {
		if _, ok := codes[uint16(c)]; ok {
			return true
		}
	}
	return false
}

func deviceIsVirtual(device *evdev.InputDevice, name string) bool {
	id, err := device.InputID()
	if err == nil && id.BusType == uint16(evdev.BUS_VIRTUAL) {
		return true
	}
	lower := strings.ToLower(name)
	for _, token := range []string{"virtual", "uinput", "ydotool", "autoclicker"} {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

func deviceIsPointer(device *evdev.InputDevice) bool {
	var hasRelX, hasRelY bool
	for _, code := range device.CapableEvents(evdev.EV_REL) {
		if code == evdev.REL_X {
			hasRelX = true
		}
		if code == evdev.REL_Y {
			hasRelY = true
		}
	}
	if hasRelX && hasRelY {
		return true
	}
	return len(device.CapableEvents(evdev.EV_ABS)) > 0
}

func anyCodeIsMouseButton(codes map[uint16]struct{}) bool {
	for code := range codes {
		c := evdev.EvCode(code)
		if c >= evdev.BTN_MOUSE && c <= evdev.BTN_TASK {
			return true
		}
	}
	return false
}

func matchesNameFilter(name string, nameFilter []string) bool {
	if len(nameFilter) == 0 {
		return true
	}
	for _, want := range nameFilter {
		if name == want {
			return true
		}
	}
	return false
}

func findDevicesByCodes(codes map[uint16]struct{}, nameFilter []string) ([]DeviceInfo, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, err
	}

	matches := make([]DeviceInfo, 0)
	for _, path := range paths {
		dev, err := openInputDevice(path.Path)
		if err != nil {
			continue
		}

		name := path.Name
		if actualName, err := dev.Name(); err == nil && actualName != "" {
			name = actualName
		}
		if matchesNameFilter(name, nameFilter) && deviceSupportsAnyCode(dev, codes) {
			matches = append(matches, DeviceInfo{
				Path:      path.Path,
				Name:      name,
				IsVirtual: deviceIsVirtual(dev, name),
				IsPointer: deviceIsPointer(dev),
			})
		}
		_ = dev.Close()
	}

	if len(matches) == 0 {
		return matches, nil
	}

	pool := make([]DeviceInfo, 0, len(matches))
	for _, match := range matches {
		if !match.IsVirtual {
			pool = append(pool, match)
		}
	}
	if len(pool) == 0 {
		pool = matches
	}

	if anyCodeIsMouseButton(codes) {
		pointerPool := make([]DeviceInfo, 0, len(pool))
		for _, match := range pool {
			if match.IsPointer {
				pointerPool = append(pointerPool, match)
			}
		}
		if len(pointerPool) > 0 {
			pool = pointerPool
		}
	}

	sort.Slice(pool, func(i, j int) bool {
		return pool[i].Path < pool[j].Path
	})
	return pool, nil
}
