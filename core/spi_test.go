package core

import (
	"bytes"
	"testing"
)

// fakeSPI records driver calls for inspection.
type fakeSPI struct {
	config  SPIConfig
	tx      []byte
	xferLen int
	rxBuf   []byte
	sent    [][]byte
	aborts  int
}

func (f *fakeSPI) Configure(config SPIConfig) error {
	f.config = config
	return nil
}

func (f *fakeSPI) SetupTransfer(tx []byte, xferLen int) error {
	f.tx = tx
	f.xferLen = xferLen
	return nil
}

func (f *fakeSPI) SetRxBuffer(buf []byte) {
	f.rxBuf = buf
}

func (f *fakeSPI) SendBlocking(tx []byte) error {
	sent := make([]byte, len(tx))
	copy(sent, tx)
	f.sent = append(f.sent, sent)
	return nil
}

func (f *fakeSPI) Abort() {
	f.aborts++
}

func newTestEngine(t *testing.T) (*TransferEngine, *fakeSPI) {
	t.Helper()
	driver := &fakeSPI{}
	engine := NewTransferEngine(driver)
	if err := engine.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return engine, driver
}

func TestEngineFixedBusParameters(t *testing.T) {
	_, driver := newTestEngine(t)

	if driver.config.Rate != 8000000 {
		t.Errorf("Expected 8 MHz clock, got %d", driver.config.Rate)
	}
	if driver.config.Mode != 1 {
		t.Errorf("Expected SPI mode 1, got %d", driver.config.Mode)
	}
	if !driver.config.MSBFirst {
		t.Error("Expected MSB-first bit order")
	}
	if driver.xferLen != BytesPerXfer {
		t.Errorf("Expected transfer width %d, got %d", BytesPerXfer, driver.xferLen)
	}
}

func TestEngineArm(t *testing.T) {
	engine, driver := newTestEngine(t)

	slot := make([]byte, FrameSize)
	engine.Arm(slot)

	if &driver.rxBuf[0] != &slot[0] {
		t.Error("Arm should point reception at the given slot")
	}

	// Re-arming replaces the previous destination
	other := make([]byte, FrameSize)
	engine.Arm(other)
	if &driver.rxBuf[0] != &other[0] {
		t.Error("Second Arm should replace the destination")
	}
}

func TestEngineSendBlockingPadsPayload(t *testing.T) {
	engine, driver := newTestEngine(t)

	payload := []byte{1, 2, 3, 4, 5}
	if err := engine.SendBlocking(payload); err != nil {
		t.Fatalf("SendBlocking: %v", err)
	}

	if len(driver.sent) != 1 {
		t.Fatalf("Expected 1 bus write, got %d", len(driver.sent))
	}
	sent := driver.sent[0]
	if len(sent) != BytesPerXfer {
		t.Fatalf("Expected fixed width %d, got %d", BytesPerXfer, len(sent))
	}
	if !bytes.Equal(sent[:len(payload)], payload) {
		t.Error("Payload bytes not preserved")
	}
	for i := len(payload); i < len(sent); i++ {
		if sent[i] != 0 {
			t.Fatalf("Byte %d not zero-padded: %#x", i, sent[i])
		}
	}
}

func TestEngineSendBlockingClearsStaleBytes(t *testing.T) {
	engine, driver := newTestEngine(t)

	long := make([]byte, BytesPerXfer)
	for i := range long {
		long[i] = 0xEE
	}
	engine.SendBlocking(long)

	short := []byte{9}
	engine.SendBlocking(short)

	sent := driver.sent[1]
	if sent[0] != 9 {
		t.Errorf("Expected payload byte, got %#x", sent[0])
	}
	for i := 1; i < len(sent); i++ {
		if sent[i] != 0 {
			t.Fatalf("Stale byte %d survived: %#x", i, sent[i])
		}
	}
}

func TestEngineSendBlockingRejectsOversize(t *testing.T) {
	engine, driver := newTestEngine(t)

	oversize := make([]byte, BytesPerXfer+1)
	if err := engine.SendBlocking(oversize); err != ErrPayloadTooLarge {
		t.Errorf("Expected ErrPayloadTooLarge, got %v", err)
	}
	if len(driver.sent) != 0 {
		t.Error("Oversize payload must not reach the bus")
	}
}

func TestEngineAbortIdempotent(t *testing.T) {
	engine, driver := newTestEngine(t)

	engine.Abort()
	engine.Abort()
	engine.Abort()

	if driver.aborts != 3 {
		t.Errorf("Expected 3 abort calls, got %d", driver.aborts)
	}
}
