package core

import (
	"context"
	"sync/atomic"

	"wulpus/protocol"
)

// IdleWaiter abstracts the platform's low-power wait. Wait blocks until
// the next hardware event and may return spuriously.
type IdleWaiter interface {
	Wait()
}

// SessionController owns the acquisition pipeline state and wires the
// components together. The main loop alternates between draining
// completed frames into the link and sleeping; everything else happens
// in hardware notification contexts that run to completion.
type SessionController struct {
	ring       *FrameRing
	engine     *TransferEngine
	trigger    *TriggerController
	dispatcher *EdgeDispatcher
	streamer   *LinkStreamer
	idle       IdleWaiter

	framesStreamed uint32
}

// NewSessionController creates the controller. All components must be
// constructed but not yet initialized; Init wires and initializes them
// in dependency order.
func NewSessionController(ring *FrameRing, engine *TransferEngine, trigger *TriggerController,
	dispatcher *EdgeDispatcher, streamer *LinkStreamer, idle IdleWaiter) *SessionController {
	return &SessionController{
		ring:       ring,
		engine:     engine,
		trigger:    trigger,
		dispatcher: dispatcher,
		streamer:   streamer,
		idle:       idle,
	}
}

// Init initializes the hardware-facing components and registers the
// controller's handlers. Any error here is fatal: the firmware has no
// safe degraded mode without its peripherals.
func (c *SessionController) Init() error {
	if err := c.dispatcher.Init(); err != nil {
		return err
	}
	if err := c.engine.Init(); err != nil {
		return err
	}
	if err := c.trigger.Init(); err != nil {
		return err
	}

	if err := c.dispatcher.AddEdgeListener(c.onDataReady); err != nil {
		return err
	}
	if err := c.trigger.AddCompletionListener(c.onFrameComplete); err != nil {
		return err
	}
	return c.streamer.AddListener(c)
}

// onDataReady begins a new acquisition session: the head slot becomes
// the transfer destination and the autonomous cadence starts. Runs in
// the edge notification context.
func (c *SessionController) onDataReady() {
	c.engine.Arm(c.ring.HeadSlot())
	c.trigger.Start()
}

// onFrameComplete runs once per completed frame, in the completion
// notification context.
func (c *SessionController) onFrameComplete() {
	if c.ring.PushComplete() {
		RecordEvent(EvtOverflow, c.ring.Overflows())
		DebugPrintln("session: rx buffer overflow, oldest frame lost")
	} else {
		RecordEvent(EvtFrameDone, 0)
	}
	c.dispatcher.ClearBusy()
}

// OnConnection implements LinkListener. A lost link must not leave a
// session running: transfers stop, and the armed slot stays invalid
// because its completion notification never fires.
func (c *SessionController) OnConnection(connected bool) {
	c.dispatcher.SetLinkIndicator(connected)

	if !connected {
		RecordEvent(EvtDisconnect, 0)
		c.trigger.Stop()
		c.engine.Abort()
		c.dispatcher.ClearBusy()
		DebugPrintln("session: link lost, session aborted")
	}
}

// OnData implements LinkListener: an inbound configuration command is
// authoritative over any active session. The sequence mirrors the
// acquisition teardown order: stop the cadence, abort the bus, forward
// the payload, discard buffered frames.
//
// Runs in the link event context and can preempt the main loop in the
// middle of a drain. PopReady masks interrupts across its
// check-and-advance, so the ring reset always lands between drain
// steps, never inside one.
func (c *SessionController) OnData(payload []byte) {
	RecordEvent(EvtCommand, uint32(len(payload)))

	c.trigger.Stop()
	c.engine.Abort()

	if err := c.engine.SendBlocking(payload); err != nil {
		DebugPrintln("session: config write failed: " + err.Error())
	}

	c.ring.Reset()
	c.dispatcher.ClearBusy()
}

// RunOnce performs one main loop iteration: drain one completed frame
// into the link as its fixed chunk sequence. Returns false when there
// was nothing to do.
func (c *SessionController) RunOnce() bool {
	frame, ok := c.ring.PopReady()
	if !ok {
		return false
	}

	for i := 0; i < protocol.ChunkCount; i++ {
		if err := c.streamer.Send(protocol.Chunk(frame, i)); err != nil {
			// Non-transient link error: the rest of this frame is
			// dropped. Best-effort stream, no retransmission.
			DebugPrintln("session: frame dropped: " + err.Error())
			return true
		}
	}

	atomic.AddUint32(&c.framesStreamed, 1)
	return true
}

// Run is the cooperative main loop: drain pending frames, otherwise
// sleep until the next hardware event.
func (c *SessionController) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !c.RunOnce() {
			c.idle.Wait()
		}
	}
}

// FramesStreamed returns the number of frames fully sent to the host.
func (c *SessionController) FramesStreamed() uint32 {
	return atomic.LoadUint32(&c.framesStreamed)
}
