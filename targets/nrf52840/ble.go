//go:build nrf52840

package main

import (
	"errors"

	"tinygo.org/x/bluetooth"

	"wulpus/core"
)

// SoftDevice error codes surfaced through bluetooth.Error.
const (
	sdErrNotFound     = 5
	sdErrInvalidState = 8
	sdErrResources    = 19
)

// NUSDriver exposes the Nordic UART Service. Outbound frames leave as
// notifications on the TX characteristic, inbound configuration writes
// arrive on the RX characteristic and are handed straight to the
// streamer's fanout.
type NUSDriver struct {
	adapter  *bluetooth.Adapter
	adv      *bluetooth.Advertisement
	tx       bluetooth.Characteristic
	streamer *core.LinkStreamer
}

func NewNUSDriver() *NUSDriver {
	return &NUSDriver{adapter: bluetooth.DefaultAdapter}
}

// Bind attaches the streamer whose notification fanout this driver
// feeds. Must happen before Enable.
func (d *NUSDriver) Bind(streamer *core.LinkStreamer) {
	d.streamer = streamer
}

func (d *NUSDriver) Enable() error {
	if d.streamer == nil {
		return errors.New("nus: no streamer bound")
	}
	if err := d.adapter.Enable(); err != nil {
		return err
	}

	d.adapter.SetConnectHandler(func(device bluetooth.Device, connected bool) {
		d.streamer.NotifyConnection(connected)
		if !connected {
			// Advertising stops with the connection; restart so the
			// host can come back without a power cycle.
			if d.adv != nil {
				d.adv.Start()
			}
		}
	})

	svc := bluetooth.Service{
		UUID: bluetooth.ServiceUUIDNordicUART,
		Characteristics: []bluetooth.CharacteristicConfig{
			{
				Handle: &d.tx,
				UUID:   bluetooth.CharacteristicUUIDUARTTX,
				Flags:  bluetooth.CharacteristicNotifyPermission,
			},
			{
				UUID:  bluetooth.CharacteristicUUIDUARTRX,
				Flags: bluetooth.CharacteristicWritePermission | bluetooth.CharacteristicWriteWithoutResponsePermission,
				WriteEvent: func(client bluetooth.Connection, offset int, value []byte) {
					d.streamer.NotifyData(value)
				},
			},
		},
	}
	return d.adapter.AddService(&svc)
}

func (d *NUSDriver) StartAdvertising() error {
	adv := d.adapter.DefaultAdvertisement()
	err := adv.Configure(bluetooth.AdvertisementOptions{
		LocalName:    core.BLEDeviceName,
		ServiceUUIDs: []bluetooth.UUID{bluetooth.ServiceUUIDNordicUART},
		Interval:     bluetooth.Duration(core.BLEAdvInterval),
	})
	if err != nil {
		return err
	}
	d.adv = adv
	return adv.Start()
}

func (d *NUSDriver) Send(payload []byte) error {
	_, err := d.tx.Write(payload)
	return mapStackError(err)
}

// mapStackError translates SoftDevice error codes into the sentinel
// errors the core retries or aborts on.
func mapStackError(err error) error {
	if err == nil {
		return nil
	}
	var code bluetooth.Error
	if errors.As(err, &code) {
		switch uint32(code) {
		case sdErrResources:
			return core.ErrCongested
		case sdErrInvalidState:
			return core.ErrInvalidState
		case sdErrNotFound:
			return core.ErrNotFound
		}
	}
	return err
}
