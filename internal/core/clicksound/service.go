// Package clicksound holds the dispatch logic that turns qualifying button
// presses into playback requests, gated by the shared enabled flag.
package clicksound

import (
	"fmt"
	"sync"
	"sync/atomic"
)

const eventBuffer = 64

type sourcedEvent struct {
	source string
	event  Event
}

type Service struct {
	cfg    Config
	player Player
	logger Logger

	enabled atomic.Bool

	eventCh   chan sourcedEvent
	stopCh    chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
}

func NewService(cfg Config, player Player, logger Logger) (*Service, error) {
	if len(cfg.Triggers) == 0 {
		return nil, fmt.Errorf("trigger set is empty")
	}
	if cfg.Volume < 0 || cfg.Volume > 1 {
		return nil, fmt.Errorf("volume out of range [0,1]: %v", cfg.Volume)
	}
	if player == nil {
		return nil, fmt.Errorf("player is nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	service := &Service{
		cfg:     cfg,
		player:  player,
		logger:  logger,
		eventCh: make(chan sourcedEvent, eventBuffer),
		stopCh:  make(chan struct{}),
	}
	service.enabled.Store(cfg.StartEnabled)
	return service, nil
}

func (s *Service) Start() {
	s.startOnce.Do(func() {
		go s.dispatchLoop()
	})
}

func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

// SubmitEvent feeds one raw event from a source device into the dispatcher.
// It returns false once the service has been stopped so readers can exit.
func (s *Service) SubmitEvent(source string, event Event) bool {
	select {
	case <-s.stopCh:
		return false
	case s.eventCh <- sourcedEvent{source: source, event: event}:
		return true
	}
}

func (s *Service) SetEnabled(enabled bool) {
	if s.enabled.Swap(enabled) != enabled {
		s.logger.Info("Clicking toggled", "enabled", enabled)
	}
}

func (s *Service) IsEnabled() bool {
	return s.enabled.Load()
}

// Toggle flips the enabled flag and returns the new state. The tray menu
// callback is the only writer; readers tolerate a one-event race at the flip.
func (s *Service) Toggle() bool {
	next := !s.enabled.Load()
	s.SetEnabled(next)
	return next
}

func (s *Service) dispatchLoop() {
	for {
		select {
		case <-s.stopCh:
			return
		case ev := <-s.eventCh:
			s.handleEvent(ev.source, ev.event)
		}
	}
}

func (s *Service) handleEvent(source string, event Event) {
	if event.Type != EventTypeKey {
		return
	}
	if event.Value != PressValue {
		// The click fires once per physical press; releases and
		// auto-repeat are dropped.
		return
	}
	if _, ok := s.cfg.Triggers[event.Code]; !ok {
		return
	}
	if !s.enabled.Load() {
		s.logger.Debug("Press ignored while disabled", "source", source, "code", event.Code)
		return
	}

	s.logger.Debug("Trigger press", "source", source, "code", event.Code)
	s.player.Play(s.cfg.Sound, s.cfg.Volume)
}
