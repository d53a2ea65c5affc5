package protocol

// Chunk boundaries for streaming one frame over the link.
//
// Message 0 starts one byte into the frame and carries one extra byte, so
// its first byte is the StartOfFrame marker. Messages 1..XfersPerFrame-1
// carry one raw transfer region each. The receiving application depends on
// these exact lengths and offsets to detect frame starts.
//
// For the default geometry the message lengths are [202, 201, 201, 201].

// ChunkCount returns the number of link messages per frame
const ChunkCount = XfersPerFrame

// Chunk returns the idx'th link message of a completed frame as a
// subslice of frame. frame must be FrameSize bytes; idx must be in
// [0, ChunkCount). No data is copied.
func Chunk(frame []byte, idx int) []byte {
	if idx == 0 {
		return frame[1 : BytesPerXfer+2]
	}
	return frame[idx*BytesPerXfer : (idx+1)*BytesPerXfer]
}

// ChunkFrame returns all link messages of a frame in send order.
func ChunkFrame(frame []byte) [][]byte {
	chunks := make([][]byte, ChunkCount)
	for i := range chunks {
		chunks[i] = Chunk(frame, i)
	}
	return chunks
}

// Reassembler rebuilds acquisition records from the stream of link
// messages on the host side. A message of length BytesPerXfer+1 starting
// with StartOfFrame begins a new record; the marker byte itself is not
// part of the record. Messages that fit neither pattern (wrong length,
// or a continuation with no record in progress) are discarded, which
// resynchronizes the stream after a dropped message.
type Reassembler struct {
	record  [FrameSize]byte
	filled  int
	chunks  int
	dropped uint32
}

// Feed consumes one link message. It returns the completed record and
// true when msg was the last message of a frame. The returned slice
// aliases internal storage and is only valid until the next Feed.
func (r *Reassembler) Feed(msg []byte) ([]byte, bool) {
	if len(msg) == BytesPerXfer+1 && msg[0] == StartOfFrame {
		// New frame: the payload after the marker covers the first
		// transfer region plus one byte of the second.
		r.filled = copy(r.record[:], msg[1:])
		r.chunks = 1
		return nil, false
	}

	if len(msg) == BytesPerXfer && r.chunks > 0 {
		r.filled += copy(r.record[r.filled:], msg)
		r.chunks++
		if r.chunks == ChunkCount {
			r.chunks = 0
			return r.record[:r.filled], true
		}
		return nil, false
	}

	// Not a valid frame message in this state
	r.dropped++
	r.chunks = 0
	return nil, false
}

// Dropped returns the number of messages discarded so far.
func (r *Reassembler) Dropped() uint32 {
	return r.dropped
}
