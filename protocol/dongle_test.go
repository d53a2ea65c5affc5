package protocol

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func buildDonglePacket(txRxID uint8, acqNr uint16, samples []int16) []byte {
	packet := make([]byte, DongleHeaderSize+2*len(samples))
	packet[donglePosTxRxID] = txRxID
	binary.LittleEndian.PutUint16(packet[donglePosAcqNr:], acqNr)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(packet[DongleHeaderSize+2*i:], uint16(s))
	}
	return packet
}

func TestDecodeDongleRecord(t *testing.T) {
	samples := []int16{0, 1, -1, 32767, -32768}
	packet := buildDonglePacket(3, 517, samples)

	rec, err := DecodeDongleRecord(packet)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if rec.TxRxID != 3 {
		t.Errorf("Expected TxRxID 3, got %d", rec.TxRxID)
	}
	if rec.AcqNumber != 517 {
		t.Errorf("Expected AcqNumber 517, got %d", rec.AcqNumber)
	}
	if len(rec.Samples) != len(samples) {
		t.Fatalf("Expected %d samples, got %d", len(samples), len(rec.Samples))
	}
	for i, want := range samples {
		if rec.Samples[i] != want {
			t.Errorf("Sample %d: expected %d, got %d", i, want, rec.Samples[i])
		}
	}
}

func TestDecodeDongleRecordShort(t *testing.T) {
	if _, err := DecodeDongleRecord(make([]byte, DongleHeaderSize-1)); err != ErrShortPacket {
		t.Errorf("Expected ErrShortPacket, got %v", err)
	}
}

func TestDongleReader(t *testing.T) {
	samples := []int16{10, -20, 30, -40}

	var stream bytes.Buffer
	stream.WriteString("dongle boot v1\n") // Noise before the marker is skipped
	stream.WriteString("START\n")
	stream.Write(buildDonglePacket(1, 42, samples))
	stream.WriteString("START\n")
	stream.Write(buildDonglePacket(1, 43, samples))

	reader := NewDongleReader(&stream, len(samples))

	for _, wantAcq := range []uint16{42, 43} {
		rec, err := reader.ReadRecord()
		if err != nil {
			t.Fatalf("ReadRecord: %v", err)
		}
		if rec.AcqNumber != wantAcq {
			t.Errorf("Expected acquisition %d, got %d", wantAcq, rec.AcqNumber)
		}
	}

	if _, err := reader.ReadRecord(); err == nil {
		t.Error("Expected error at end of stream")
	}
}
