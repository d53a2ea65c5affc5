package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"wulpus/host/dongle"
	"wulpus/protocol"
)

var (
	device     = flag.String("device", "/dev/ttyACM0", "Dongle serial device path")
	baud       = flag.Int("baud", 0, "Baud rate (0 = dongle default)")
	configPath = flag.String("config", "", "Configuration payload file to send before acquiring")
	outPath    = flag.String("out", "acquisition.bin", "Output data file")
	count      = flag.Int("count", 0, "Number of acquisitions to capture (0 = until interrupted)")
	acqLength  = flag.Int("acq-length", 400, "RF samples per acquisition")
	verbose    = flag.Bool("verbose", false, "Print each received record")
)

func main() {
	flag.Parse()

	fmt.Printf("Probe host %s - ultrasound acquisition bridge\n", protocol.Version)

	conn, err := dongle.Open(*device, *baud, *acqLength)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()
	fmt.Printf("Connected to dongle on %s\n", *device)

	if *configPath != "" {
		payload, err := os.ReadFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to read config: %v\n", err)
			os.Exit(1)
		}
		if len(payload) > protocol.BytesPerXfer {
			fmt.Fprintf(os.Stderr, "Error: config payload exceeds %d bytes\n", protocol.BytesPerXfer)
			os.Exit(1)
		}
		if err := conn.SendConfig(payload); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Sent %d byte configuration\n", len(payload))
	}

	out, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create output file: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	// Capture until the requested count or Ctrl-C
	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, os.Interrupt)

	received := 0
	for *count == 0 || received < *count {
		select {
		case <-interrupted:
			fmt.Println("\nInterrupted")
			summarize(received, *outPath)
			return
		default:
		}

		rec, err := conn.ReceiveRecord()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := writeRecord(out, rec); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to write record: %v\n", err)
			os.Exit(1)
		}
		received++

		if *verbose {
			fmt.Printf("acq=%d txrx=%d samples=%d\n", rec.AcqNumber, rec.TxRxID, len(rec.Samples))
		}
	}

	summarize(received, *outPath)
}

// writeRecord appends one record: acquisition number, TX/RX id, then the
// samples, all little-endian.
func writeRecord(out *os.File, rec protocol.DongleRecord) error {
	header := make([]byte, 4)
	binary.LittleEndian.PutUint16(header[0:], rec.AcqNumber)
	header[2] = rec.TxRxID
	header[3] = 0
	if _, err := out.Write(header); err != nil {
		return err
	}

	data := make([]byte, 2*len(rec.Samples))
	for i, s := range rec.Samples {
		binary.LittleEndian.PutUint16(data[2*i:], uint16(s))
	}
	_, err := out.Write(data)
	return err
}

func summarize(received int, path string) {
	fmt.Printf("Captured %d acquisitions to %s\n", received, path)
}
