package core

import "errors"

// Link transport errors. Drivers map their stack's error codes onto
// these sentinels so the core can tell transient congestion from real
// failures.
var (
	// ErrCongested means the transport has no buffer for the send right
	// now. Transient; the same payload can be retried.
	ErrCongested = errors.New("link congested")

	// ErrInvalidState means the link is not in a state that accepts
	// sends (not connected, notifications not enabled).
	ErrInvalidState = errors.New("link in invalid state")

	// ErrNotFound means the link endpoint is gone.
	ErrNotFound = errors.New("link endpoint not found")
)

// LinkDriver is the "send bytes, maybe refused" primitive over the
// wireless stack. Stack bring-up, advertising parameters and security
// negotiation live entirely in the driver; the core sees connect and
// disconnect notifications and nothing else.
type LinkDriver interface {
	// Send attempts one framed send of payload.
	Send(payload []byte) error

	// StartAdvertising makes the device discoverable again.
	StartAdvertising() error
}

// LinkListener receives link events. Callbacks run in the link stack's
// event context and must not block.
type LinkListener interface {
	// OnConnection is invoked on every connect/disconnect transition.
	OnConnection(connected bool)

	// OnData is invoked with each inbound payload. The payload is only
	// valid for the duration of the call.
	OnData(payload []byte)
}
