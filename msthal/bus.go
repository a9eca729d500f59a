package msthal

import "fmt"

/* Register setup sequences are attempted in full even after a failure,
 * only the first error is kept for reporting. */
type errAccum struct {
	err error
}

func (a *errAccum) or(err error) {
	if a.err == nil {
		a.err = err
	}
}

func (d *MSTHal) writeRegister(reg uint8, value uint8) error {
	cmd := [2]byte{reg, value}

	n, err := d.bus.Write(cmd[:])
	if err == nil && n != len(cmd) {
		err = ErrorTransport
	}
	if err != nil {
		return fmt.Errorf("register %#02x write: %w", reg, err)
	}

	return nil
}

func (d *MSTHal) readRegister(reg uint8) (uint8, error) {
	sel := [1]byte{reg}
	var val [1]byte

	/* Select and data phase are both attempted, a failure in either
	 * means the returned value cannot be trusted. */
	n, err := d.bus.Write(sel[:])
	if err == nil && n != len(sel) {
		err = ErrorTransport
	}

	rn, rerr := d.bus.Read(val[:])
	if rerr == nil && rn != len(val) {
		rerr = ErrorTransport
	}
	if err == nil {
		err = rerr
	}

	if err != nil {
		return 0, fmt.Errorf("register %#02x read: %w", reg, err)
	}

	return val[0], nil
}
