package i2cbus

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

var hostInitialized atomic.Bool

/* PeriphDevice reaches the bus through the periph.io host drivers
 * instead of raw /dev/i2c-* ioctls. */
type PeriphDevice struct {
	bus i2c.BusCloser
	dev i2c.Dev
}

func OpenPeriph(bus int, addr uint8) (*PeriphDevice, error) {
	if hostInitialized.CompareAndSwap(false, true) {
		if _, err := host.Init(); err != nil {
			return nil, fmt.Errorf("host initialization failed: %w", err)
		}
	}

	b, err := i2creg.Open(strconv.Itoa(bus))
	if err != nil {
		return nil, err
	}

	return &PeriphDevice{
		bus: b,
		dev: i2c.Dev{Bus: b, Addr: uint16(addr)},
	}, nil
}

func (d *PeriphDevice) Write(p []byte) (int, error) {
	if err := d.dev.Tx(p, nil); err != nil {
		return 0, err
	}

	return len(p), nil
}

func (d *PeriphDevice) Read(p []byte) (int, error) {
	if err := d.dev.Tx(nil, p); err != nil {
		return 0, err
	}

	return len(p), nil
}

func (d *PeriphDevice) Close() error {
	if d.bus == nil {
		return nil
	}

	bus := d.bus
	d.bus = nil

	return bus.Close()
}
