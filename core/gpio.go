package core

import "sync/atomic"

// EdgeDispatcher watches the external data-ready line. A valid rising
// edge begins a new acquisition session through the registered listeners;
// the opposite transition is ignored. A second edge while a session is
// running is an explicit no-op: the busy flag is set on the accepted edge
// and cleared by the session controller when the session ends, so a
// mid-session edge can never re-arm the transfer chain.
type EdgeDispatcher struct {
	driver    PinDriver
	listeners []func()
	busy      uint32 // 1 while a session is active
}

// NewEdgeDispatcher creates a dispatcher on the given driver.
func NewEdgeDispatcher(driver PinDriver) *EdgeDispatcher {
	return &EdgeDispatcher{driver: driver}
}

// Init configures the status outputs and the data-ready input. Fatal on
// failure.
func (d *EdgeDispatcher) Init() error {
	if err := d.driver.ConfigureOutput(GPIONumLED); err != nil {
		return err
	}
	d.SetLED(false)

	if err := d.driver.ConfigureOutput(GPIONumLinkConn); err != nil {
		return err
	}
	if err := d.driver.SetPin(GPIONumLinkConn, false); err != nil {
		return err
	}

	return d.driver.ConfigureDataReadyInput(GPIONumDataReady, d.handleEdge)
}

// AddEdgeListener registers a callback invoked on each accepted edge,
// from the hardware notification context. Capacity-checked.
func (d *EdgeDispatcher) AddEdgeListener(fn func()) error {
	if len(d.listeners) >= GPIOMaxEdgeHandlers {
		return ErrTooManyListeners
	}

	state := disableInterrupts()
	d.listeners = append(d.listeners, fn)
	restoreInterrupts(state)

	DebugPrintln("gpio: added edge listener " + itoa(len(d.listeners)) + "/" + itoa(GPIOMaxEdgeHandlers))
	return nil
}

// handleEdge filters by polarity and session state, then runs the
// registered listeners.
func (d *EdgeDispatcher) handleEdge(rising bool) {
	if !rising {
		return
	}

	if !atomic.CompareAndSwapUint32(&d.busy, 0, 1) {
		RecordEvent(EvtEdgeBusy, 0)
		return
	}
	RecordEvent(EvtEdge, 0)

	for _, fn := range d.listeners {
		fn()
	}
}

// Busy reports whether a session is currently active.
func (d *EdgeDispatcher) Busy() bool {
	return atomic.LoadUint32(&d.busy) != 0
}

// ClearBusy re-enables edge acceptance. Called by the session controller
// when a session completes or is aborted.
func (d *EdgeDispatcher) ClearBusy() {
	atomic.StoreUint32(&d.busy, 0)
}

// SetLED drives the on-board LED, honoring the board's polarity.
func (d *EdgeDispatcher) SetLED(on bool) {
	if GPIOLEDInvert {
		on = !on
	}
	d.driver.SetPin(GPIONumLED, on)
}

// SetLinkIndicator drives the link-connected indicator output.
func (d *EdgeDispatcher) SetLinkIndicator(connected bool) {
	d.driver.SetPin(GPIONumLinkConn, connected)
}
