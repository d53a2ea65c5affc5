package protocol

import "testing"

// makeFrame builds a test frame with the start marker at offset 1 and a
// counting pattern elsewhere, matching what the sensor controller produces.
func makeFrame() []byte {
	frame := make([]byte, FrameSize)
	for i := range frame {
		frame[i] = byte(i)
	}
	frame[1] = StartOfFrame
	return frame
}

func TestChunkLengths(t *testing.T) {
	chunks := ChunkFrame(makeFrame())

	if len(chunks) != 4 {
		t.Fatalf("Expected 4 chunks, got %d", len(chunks))
	}

	expected := []int{202, 201, 201, 201}
	for i, want := range expected {
		if len(chunks[i]) != want {
			t.Errorf("Chunk %d: expected length %d, got %d", i, want, len(chunks[i]))
		}
	}

	if chunks[0][0] != StartOfFrame {
		t.Errorf("Chunk 0 must start with the frame marker, got %#x", chunks[0][0])
	}
}

func TestChunkOffsets(t *testing.T) {
	frame := makeFrame()
	chunks := ChunkFrame(frame)

	// Message 0 is offset by one byte; later messages are raw transfer regions
	if &chunks[0][0] != &frame[1] {
		t.Error("Chunk 0 should alias frame data at offset 1")
	}
	for i := 1; i < ChunkCount; i++ {
		if &chunks[i][0] != &frame[i*BytesPerXfer] {
			t.Errorf("Chunk %d should alias frame data at offset %d", i, i*BytesPerXfer)
		}
	}
}

func TestReassembleFrame(t *testing.T) {
	frame := makeFrame()
	var r Reassembler

	var record []byte
	var done bool
	for _, chunk := range ChunkFrame(frame) {
		if done {
			t.Fatal("Record completed before last chunk")
		}
		record, done = r.Feed(chunk)
	}

	if !done {
		t.Fatal("Record not completed after all chunks")
	}
	if len(record) != FrameSize {
		t.Fatalf("Expected %d byte record, got %d", FrameSize, len(record))
	}

	// The record starts one byte past the marker
	if record[0] != frame[2] {
		t.Errorf("Record byte 0: expected %#x, got %#x", frame[2], record[0])
	}
	if r.Dropped() != 0 {
		t.Errorf("Expected no dropped messages, got %d", r.Dropped())
	}
}

func TestReassemblerResync(t *testing.T) {
	frame := makeFrame()
	chunks := ChunkFrame(frame)
	var r Reassembler

	// Start a frame, then lose one continuation chunk. The next frame
	// start must discard the partial record and complete cleanly.
	r.Feed(chunks[0])
	r.Feed(chunks[1])
	// chunks[2] lost

	var done bool
	for _, chunk := range chunks {
		_, done = r.Feed(chunk)
	}
	if !done {
		t.Error("Reassembler did not recover after a lost chunk")
	}
}

func TestReassemblerDiscardsOrphans(t *testing.T) {
	var r Reassembler

	// A continuation chunk with no frame in progress is dropped
	orphan := make([]byte, BytesPerXfer)
	if _, done := r.Feed(orphan); done {
		t.Error("Orphan chunk should not complete a record")
	}
	if r.Dropped() != 1 {
		t.Errorf("Expected 1 dropped message, got %d", r.Dropped())
	}

	// A message of unexpected length is dropped as well
	if _, done := r.Feed(make([]byte, 10)); done {
		t.Error("Short message should not complete a record")
	}
	if r.Dropped() != 2 {
		t.Errorf("Expected 2 dropped messages, got %d", r.Dropped())
	}
}
