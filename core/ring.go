package core

import "sync/atomic"

// FrameRing is a fixed-capacity circular store of acquisition frames
// shared between the transfer-completion context (producer) and the main
// loop (consumer). All storage is allocated once at construction.
//
// head and tail are free-running counters; the slot index is the counter
// modulo capacity and the ring is full when head-tail equals capacity.
// head is written only by the completion path. tail is written by the
// drain path and, on an overrun, by the completion path dropping the
// oldest frame; PopReady masks interrupts around its check-and-advance
// so the two writers never interleave. Each side reads the other counter
// through sync/atomic. Reset reassigns both counters and is only legal
// while no session is in flight.
type FrameRing struct {
	slots []byte // capacity * FrameSize, frames stored in place
	head  uint32 // Count of completed frames (completion path)
	tail  uint32 // Count of drained frames (main loop)
	size  uint32 // Number of frame slots

	overflows uint32 // Count of overwritten frames, diagnostics only
}

// NewFrameRing creates a ring of capacity frame slots.
func NewFrameRing(capacity int) *FrameRing {
	return &FrameRing{
		slots: make([]byte, capacity*FrameSize),
		size:  uint32(capacity),
	}
}

func (r *FrameRing) slot(counter uint32) []byte {
	i := counter % r.size
	return r.slots[i*FrameSize : (i+1)*FrameSize]
}

// HeadSlot returns the slot the next acquisition is armed into. When the
// ring is full this aliases the oldest unread frame, which the session
// then overwrites in place. The slot contents are undefined until
// PushComplete is called for it.
func (r *FrameRing) HeadSlot() []byte {
	return r.slot(atomic.LoadUint32(&r.head))
}

// PushComplete marks the head slot as a completed frame and advances
// head. Pushing into a full ring reports true and drops exactly the
// oldest frame: its slot was the one the session just overwrote, so tail
// advances with head and the remaining frames stay drainable. Overflow
// is reported, not fatal.
func (r *FrameRing) PushComplete() bool {
	head := atomic.LoadUint32(&r.head)
	tail := atomic.LoadUint32(&r.tail)

	overflow := head-tail == r.size
	if overflow {
		atomic.StoreUint32(&r.tail, tail+1)
		atomic.AddUint32(&r.overflows, 1)
	}
	atomic.StoreUint32(&r.head, head+1)
	return overflow
}

// PopReady returns the oldest completed frame and advances tail, or
// (nil, false) when the ring is empty. The returned slice aliases ring
// storage and stays valid until the producer wraps back onto its slot.
// Interrupts are masked across the check-and-advance so a reset or an
// overflow drop from a notification context cannot interleave with it.
func (r *FrameRing) PopReady() ([]byte, bool) {
	mask := disableInterrupts()

	tail := atomic.LoadUint32(&r.tail)
	if tail == atomic.LoadUint32(&r.head) {
		restoreInterrupts(mask)
		return nil, false
	}

	frame := r.slot(tail)
	atomic.StoreUint32(&r.tail, tail+1)

	restoreInterrupts(mask)
	return frame, true
}

// IsEmpty returns true when no completed frame is waiting.
func (r *FrameRing) IsEmpty() bool {
	return atomic.LoadUint32(&r.head) == atomic.LoadUint32(&r.tail)
}

// Reset discards all buffered frames. Used on reconfiguration, after the
// in-flight session has been stopped.
func (r *FrameRing) Reset() {
	atomic.StoreUint32(&r.head, 0)
	atomic.StoreUint32(&r.tail, 0)
}

// Overflows returns the number of frames lost to overruns.
func (r *FrameRing) Overflows() uint32 {
	return atomic.LoadUint32(&r.overflows)
}
