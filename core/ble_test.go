package core

import (
	"bytes"
	"testing"
)

// fakeLink simulates the wireless transport, including scripted
// congestion: the first refusals sends are refused with ErrCongested.
type fakeLink struct {
	refusals    int
	failWith    error
	sent        [][]byte
	advertising int
}

func (f *fakeLink) Send(payload []byte) error {
	if f.failWith != nil {
		return f.failWith
	}
	if f.refusals > 0 {
		f.refusals--
		return ErrCongested
	}
	sent := make([]byte, len(payload))
	copy(sent, payload)
	f.sent = append(f.sent, sent)
	return nil
}

func (f *fakeLink) StartAdvertising() error {
	f.advertising++
	return nil
}

// recordingListener collects link events for inspection.
type recordingListener struct {
	connections []bool
	payloads    [][]byte
}

func (r *recordingListener) OnConnection(connected bool) {
	r.connections = append(r.connections, connected)
}

func (r *recordingListener) OnData(payload []byte) {
	p := make([]byte, len(payload))
	copy(p, payload)
	r.payloads = append(r.payloads, p)
}

func TestStreamerSend(t *testing.T) {
	link := &fakeLink{}
	streamer := NewLinkStreamer(link)

	payload := []byte{1, 2, 3}
	if err := streamer.Send(payload); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(link.sent) != 1 || !bytes.Equal(link.sent[0], payload) {
		t.Error("Payload not delivered")
	}
}

func TestStreamerRetriesCongestion(t *testing.T) {
	link := &fakeLink{refusals: 7}
	streamer := NewLinkStreamer(link)

	payload := []byte{0xAA, 0xBB, 0xCC}
	if err := streamer.Send(payload); err != nil {
		t.Fatalf("Congested send should eventually succeed: %v", err)
	}

	if len(link.sent) != 1 {
		t.Fatalf("Caller must observe a single send, transport saw %d", len(link.sent))
	}
	if !bytes.Equal(link.sent[0], payload) {
		t.Error("Payload modified across retries")
	}
	if streamer.Retries() != 7 {
		t.Errorf("Expected 7 retries, got %d", streamer.Retries())
	}
}

func TestStreamerNonTransientErrors(t *testing.T) {
	for _, fatal := range []error{ErrInvalidState, ErrNotFound} {
		link := &fakeLink{failWith: fatal}
		streamer := NewLinkStreamer(link)

		if err := streamer.Send([]byte{1}); err != fatal {
			t.Errorf("Expected %v returned, got %v", fatal, err)
		}
	}
}

func TestStreamerConnectionFanout(t *testing.T) {
	streamer := NewLinkStreamer(&fakeLink{})

	first := &recordingListener{}
	second := &recordingListener{}
	streamer.AddListener(first)
	streamer.AddListener(second)

	streamer.NotifyConnection(true)
	if !streamer.Connected() {
		t.Error("Streamer should report connected")
	}
	streamer.NotifyConnection(false)
	if streamer.Connected() {
		t.Error("Streamer should report disconnected")
	}

	for _, l := range []*recordingListener{first, second} {
		if len(l.connections) != 2 || !l.connections[0] || l.connections[1] {
			t.Errorf("Listener saw %v, expected [true false]", l.connections)
		}
	}
}

func TestStreamerDataFanout(t *testing.T) {
	streamer := NewLinkStreamer(&fakeLink{})

	listener := &recordingListener{}
	streamer.AddListener(listener)

	streamer.NotifyData([]byte{5, 6, 7})
	if len(listener.payloads) != 1 || !bytes.Equal(listener.payloads[0], []byte{5, 6, 7}) {
		t.Error("Inbound payload not delivered to listener")
	}
}

func TestStreamerListenerCapacity(t *testing.T) {
	streamer := NewLinkStreamer(&fakeLink{})

	for i := 0; i < BLEMaxConnHandlers; i++ {
		if err := streamer.AddListener(&recordingListener{}); err != nil {
			t.Fatalf("Listener %d rejected: %v", i, err)
		}
	}
	if err := streamer.AddListener(&recordingListener{}); err != ErrTooManyListeners {
		t.Errorf("Expected ErrTooManyListeners, got %v", err)
	}
}
