package core

import (
	"errors"
	"sync/atomic"
)

var ErrTooManyListeners = errors.New("listener capacity exceeded")

// TriggerState is the acquisition trigger state machine.
type TriggerState uint32

const (
	TriggerIdle TriggerState = iota
	TriggerArmed
	TriggerRunning
	TriggerCompleted
)

// TriggerController turns "start" into an autonomous repeating sequence
// of XfersPerFrame bus transfers at a fixed interval, driven entirely by
// the event router. Firmware involvement is one completion notification
// per frame instead of one interrupt per sub-transfer.
type TriggerController struct {
	driver    EventRouterDriver
	state     uint32 // TriggerState, atomic: written from loop and notification contexts
	listeners []func()
}

// NewTriggerController creates a controller on the given driver.
func NewTriggerController(driver EventRouterDriver) *TriggerController {
	return &TriggerController{driver: driver}
}

// Init wires the hardware signal routes. Fatal on failure.
func (t *TriggerController) Init() error {
	return t.driver.Configure(SPIPacketIntervalMicros, XfersPerFrame, t.handleComplete)
}

// AddCompletionListener registers a callback fired once per completed
// frame, from the hardware notification context. Capacity-checked;
// registration happens during initialization.
func (t *TriggerController) AddCompletionListener(fn func()) error {
	if len(t.listeners) >= MaxEndHandlers {
		return ErrTooManyListeners
	}

	state := disableInterrupts()
	t.listeners = append(t.listeners, fn)
	restoreInterrupts(state)

	DebugPrintln("trigger: added completion listener " + itoa(len(t.listeners)) + "/" + itoa(MaxEndHandlers))
	return nil
}

// Start zeroes both counters and enables them, beginning a new session.
func (t *TriggerController) Start() {
	t.driver.ClearTimers()
	atomic.StoreUint32(&t.state, uint32(TriggerArmed))

	t.driver.EnableTimers()
	atomic.StoreUint32(&t.state, uint32(TriggerRunning))
}

// Stop disables both counters without clearing their counts and forces
// the controller to Idle. Callable from any state; spurious calls are
// harmless. An explicit Start is required before the next session.
//
// A transfer already triggered by the hardware may still complete after
// Stop returns. That is benign: the destination slot is not considered
// valid until the completion notification fires.
func (t *TriggerController) Stop() {
	t.driver.DisableTimers()
	atomic.StoreUint32(&t.state, uint32(TriggerIdle))
}

// State returns the current trigger state.
func (t *TriggerController) State() TriggerState {
	return TriggerState(atomic.LoadUint32(&t.state))
}

// handleComplete runs after exactly XfersPerFrame transfer-end events.
// The hardware compare has already stopped the cadence; the transition
// to Completed is compare-and-swap so the notification fires at most
// once per session even if Stop races with it.
func (t *TriggerController) handleComplete() {
	t.driver.DisableTimers()

	if !atomic.CompareAndSwapUint32(&t.state, uint32(TriggerRunning), uint32(TriggerCompleted)) {
		return
	}

	for _, fn := range t.listeners {
		fn()
	}
}
