package protocol

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
)

// Dongle serial stream format. The USB receiver dongle forwards each
// reassembled acquisition as a text preamble terminated by "START\n",
// followed by a fixed binary header and the RF samples as little-endian
// signed 16-bit values.
const (
	DongleHeaderSize = 7 // Header bytes preceding the sample data

	donglePosTxRxID = 4 // TX/RX configuration id
	donglePosAcqNr  = 5 // Acquisition counter, little-endian uint16
)

// DongleStartMarker terminates the preamble of each dongle packet
var DongleStartMarker = []byte("START\n")

var ErrShortPacket = errors.New("dongle packet shorter than header")

// DongleRecord is one acquisition as delivered by the dongle.
type DongleRecord struct {
	TxRxID    uint8  // Active TX/RX channel configuration
	AcqNumber uint16 // Rolling acquisition counter
	Samples   []int16
}

// DecodeDongleRecord parses a dongle packet (header plus sample data).
func DecodeDongleRecord(packet []byte) (DongleRecord, error) {
	if len(packet) < DongleHeaderSize {
		return DongleRecord{}, ErrShortPacket
	}

	rec := DongleRecord{
		TxRxID:    packet[donglePosTxRxID],
		AcqNumber: binary.LittleEndian.Uint16(packet[donglePosAcqNr : donglePosAcqNr+2]),
	}

	data := packet[DongleHeaderSize:]
	rec.Samples = make([]int16, len(data)/2)
	for i := range rec.Samples {
		rec.Samples[i] = int16(binary.LittleEndian.Uint16(data[2*i:]))
	}

	return rec, nil
}

// DongleReader reads acquisition records from a dongle byte stream.
type DongleReader struct {
	br        *bufio.Reader
	acqLength int // Samples per acquisition
}

// NewDongleReader wraps r for reading records of acqLength samples each.
func NewDongleReader(r io.Reader, acqLength int) *DongleReader {
	return &DongleReader{
		br:        bufio.NewReader(r),
		acqLength: acqLength,
	}
}

// ReadRecord blocks until the next start marker, then reads and decodes
// one record. Preamble lines without the marker are skipped, so the
// reader can join the stream mid-acquisition.
func (d *DongleReader) ReadRecord() (DongleRecord, error) {
	for {
		line, err := d.br.ReadBytes('\n')
		if err != nil {
			return DongleRecord{}, err
		}
		if len(line) >= len(DongleStartMarker) &&
			string(line[len(line)-len(DongleStartMarker):]) == string(DongleStartMarker) {
			break
		}
	}

	packet := make([]byte, DongleHeaderSize+2*d.acqLength)
	if _, err := io.ReadFull(d.br, packet); err != nil {
		return DongleRecord{}, err
	}

	return DecodeDongleRecord(packet)
}
