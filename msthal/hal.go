// Package msthal drives the SPI flash behind a Realtek RTD2141B/RTD2142
// MST controller. The flash is not reachable directly: every operation is
// expressed as register writes and reads on the controller MCU, carried
// over a register-oriented I2C side channel.
package msthal

import "errors"

var (
	ErrorInvalidArgument = errors.New("invalid argument")
	ErrorTransport       = errors.New("bus transaction incomplete")
	ErrorTimeout         = errors.New("time out on sending command")
	ErrorUnsupported     = errors.New("operation not supported")
)

/* Bus is the raw side channel to the controller. A transfer that moves
 * fewer bytes than requested without returning an error is reported
 * through the count. */
type Bus interface {
	Write(p []byte) (int, error)
	Read(p []byte) (int, error)
	Close() error
}

type MSTHal struct {
	bus    Bus
	closed bool

	/* Byte-granular implementations used when a bulk request does not
	 * start on a page boundary. Left nil, such requests fail. */
	FallbackRead  func(start uint32, buf []byte) error
	FallbackWrite func(start uint32, data []byte) error

	LogFunc func(format string, params ...any)
}

func (d *MSTHal) log(format string, params ...any) {
	if d.LogFunc != nil {
		d.LogFunc(format, params...)
	}
}

func New(bus Bus) (*MSTHal, error) {
	d := &MSTHal{
		bus: bus,
	}

	/* Force the MCU into a known state before switching it to ISP mode */
	if err := d.ResetMCU(); err != nil {
		return nil, err
	}

	if err := d.EnterISP(); err != nil {
		return nil, err
	}

	return d, nil
}

/* Close resets the MCU so it resumes normal operation and releases the
 * bus. Calling it more than once is harmless, only the first call does
 * anything. */
func (d *MSTHal) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	err := d.ResetMCU()
	if cerr := d.bus.Close(); err == nil {
		err = cerr
	}

	return err
}
