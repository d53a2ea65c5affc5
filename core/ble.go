package core

import (
	"errors"
	"sync/atomic"
)

// LinkStreamer is the best-effort framed sender over the wireless link.
// Transient congestion is retried transparently; link events fan out to
// an ordered list of registered listeners.
type LinkStreamer struct {
	driver    LinkDriver
	listeners []LinkListener
	connected uint32
	retries   uint32 // Congestion retries, diagnostics only
}

// NewLinkStreamer creates a streamer on the given driver.
func NewLinkStreamer(driver LinkDriver) *LinkStreamer {
	return &LinkStreamer{driver: driver}
}

// AddListener registers a link listener. Capacity-checked; registration
// happens during initialization.
func (s *LinkStreamer) AddListener(l LinkListener) error {
	if len(s.listeners) >= BLEMaxConnHandlers {
		return ErrTooManyListeners
	}

	state := disableInterrupts()
	s.listeners = append(s.listeners, l)
	restoreInterrupts(state)

	DebugPrintln("link: added listener " + itoa(len(s.listeners)) + "/" + itoa(BLEMaxConnHandlers))
	return nil
}

// Send transmits one framed payload. While the transport reports
// congestion the same payload is retried without returning to the
// caller; the caller observes a single send. Non-transient errors end
// the send and are returned. Only legal from the main loop context
// since it may spin.
func (s *LinkStreamer) Send(payload []byte) error {
	for {
		err := s.driver.Send(payload)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrCongested) {
			atomic.AddUint32(&s.retries, 1)
			continue
		}
		return err
	}
}

// NotifyConnection is invoked by the link driver on every connect or
// disconnect. Fans out to the registered listeners.
func (s *LinkStreamer) NotifyConnection(connected bool) {
	if connected {
		atomic.StoreUint32(&s.connected, 1)
	} else {
		atomic.StoreUint32(&s.connected, 0)
	}

	for _, l := range s.listeners {
		l.OnConnection(connected)
	}
}

// NotifyData is invoked by the link driver with each inbound payload.
func (s *LinkStreamer) NotifyData(payload []byte) {
	for _, l := range s.listeners {
		l.OnData(payload)
	}
}

// Connected reports the last observed link state.
func (s *LinkStreamer) Connected() bool {
	return atomic.LoadUint32(&s.connected) != 0
}

// Retries returns the number of congestion retries performed so far.
func (s *LinkStreamer) Retries() uint32 {
	return atomic.LoadUint32(&s.retries)
}
