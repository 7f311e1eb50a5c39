package linuxinput

import (
	"errors"
	"fmt"
	"sync"
	"syscall"
	"time"

	"github.com/SludgePhD/clickd/internal/core/clicksound"

	evdev "github.com/holoplot/go-evdev"
)

// Runtime owns the per-device reader goroutines feeding the dispatcher.
type Runtime struct {
	sourceDevices []*evdev.InputDevice
	service       *clicksound.Service
	logger        clicksound.Logger

	stopCh    chan struct{}
	stopOnce  sync.Once
	readersWG sync.WaitGroup
}

func NewRuntime(selection *SourceSelection, service *clicksound.Service, logger clicksound.Logger) (*Runtime, error) {
	if selection == nil {
		return nil, fmt.Errorf("source selection is nil")
	}
	if service == nil {
		return nil, fmt.Errorf("service is nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	return &Runtime{
		sourceDevices: selection.Devices,
		service:       service,
		logger:        logger,
		stopCh:        make(chan struct{}),
	}, nil
}

func (r *Runtime) Start() error {
	for _, dev := range r.sourceDevices {
		if err := dev.NonBlock(); err != nil {
			return fmt.Errorf("failed to set nonblocking mode for %s: %w", dev.Path(), err)
		}
	}

	r.service.Start()
	for _, dev := range r.sourceDevices {
		r.readersWG.Add(1)
		go r.readLoop(dev)
	}
	return nil
}

func (r *Runtime) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopCh)
		for _, dev := range r.sourceDevices {
			_ = dev.Close()
		}
		r.readersWG.Wait()
		r.service.Stop()
	})
}

func (r *Runtime) readLoop(dev *evdev.InputDevice) {
	defer r.readersWG.Done()

	path := dev.Path()
	for {
		events, err := dev.ReadSlice(64)
		if err != nil {
			if r.stopped() {
				return
			}
			if isDeviceGoneError(err) {
				// Device was unplugged; the remaining readers keep
				// running.
				r.logger.Info("Input device removed", "path", path)
				return
			}
			if isWouldBlockError(err) {
				if !r.sleepWithStop(10 * time.Millisecond) {
					return
				}
				continue
			}
			r.logger.Warn("Read failed", "path", path, "err", err)
			if !r.sleepWithStop(100 * time.Millisecond) {
				return
			}
			continue
		}

		for _, event := range events {
			if !r.service.SubmitEvent(path, clicksound.Event{
				Type:  uint16(event.Type),
				Code:  uint16(event.Code),
				Value: event.Value,
			}) {
				return
			}
		}
	}
}

func (r *Runtime) stopped() bool {
	select {
	case <-r.stopCh:
		return true
	default:
		return false
	}
}

func (r *Runtime) sleepWithStop(duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-r.stopCh:
		return false
	case <-timer.C:
		return true
	}
}

func isDeviceGoneError(err error) bool {
	return errors.Is(err, syscall.EBADF) || errors.Is(err, syscall.ENODEV)
}

func isWouldBlockError(err error) bool {
	return errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK)
}
