package msthal

import "fmt"

/* mapPage programs the flash address the next paged transfer starts at,
 * split over the three map registers, high byte first. */
func (d *MSTHal) mapPage(blockIdx, pageIdx, byteIdx uint8) error {
	var acc errAccum

	acc.or(d.writeRegister(regMapPageByte2, blockIdx))
	acc.or(d.writeRegister(regMapPageByte1, pageIdx))
	acc.or(d.writeRegister(regMapPageByte0, byteIdx))

	return acc.err
}

/* writePage pushes one page of data into the MCU buffer. The data port
 * register and the payload go out in a single bus frame. */
func (d *MSTHal) writePage(data []byte) error {
	if len(data) > PageSize {
		return fmt.Errorf("%w: page write of %d bytes", ErrorInvalidArgument, len(data))
	}

	buf := make([]byte, 0, PageSize+1)
	buf = append(buf, regDataPort)
	buf = append(buf, data...)

	n, err := d.bus.Write(buf)
	if err == nil && n != len(buf) {
		err = ErrorTransport
	}

	return err
}

/* Read fills buf from the flash starting at start. The paged engine can
 * only begin at a page boundary, other offsets are delegated to the
 * byte-granular fallback. */
func (d *MSTHal) Read(start uint32, buf []byte) error {
	if start&0xFF != 0 {
		return d.fallbackRead(start, buf)
	}

	/* The MCU streams a filler byte before the real data. Back the
	 * window up by one and discard that byte below. */
	start--

	var acc errAccum
	acc.or(d.writeRegister(regSPICtrl, ctrlPagedRead))
	acc.or(d.writeRegister(regSPIOpcode, opRead))
	acc.or(d.mapPage(uint8(start>>16), uint8(start>>8), uint8(start)))
	acc.or(d.writeRegister(regReadMode, 0x03))
	acc.or(d.writeRegister(regSPICtrl, ctrlPagedRead|ctrlStart))
	if acc.err != nil {
		return acc.err
	}

	if err := d.waitRegister(regSPICtrl, ctrlStart, 0, 1); err != nil {
		return err
	}

	d.readRegister(regDataPort)

	for len(buf) > 0 {
		chunk := buf
		if len(chunk) > PageSize {
			chunk = chunk[:PageSize]
		}

		n, err := d.bus.Read(chunk)
		if err == nil && n != len(chunk) {
			err = ErrorTransport
		}
		if err != nil {
			return err
		}

		buf = buf[len(chunk):]
	}

	return nil
}

/* Write256 programs data into the flash starting at start, one page per
 * MCU cycle. Like Read it requires a page-aligned start and hands
 * anything else to the fallback. Write protection is lifted before the
 * first page. */
func (d *MSTHal) Write256(start uint32, data []byte) error {
	if start&0xFF != 0 {
		return d.fallbackWrite(start, data)
	}

	if err := d.disableProtection(); err != nil {
		return err
	}

	var acc errAccum
	acc.or(d.writeRegister(regWriteOpcode, opPageProgram))
	acc.or(d.writeRegister(regPageLength, PageSize-1))

	for i := uint32(0); i < uint32(len(data)); i += PageSize {
		page := data[i:]
		if len(page) > PageSize {
			page = page[:PageSize]
		}
		if len(page) < PageSize {
			acc.or(d.writeRegister(regPageLength, uint8(len(page)-1)))
		}

		addr := start + i
		acc.or(d.mapPage(uint8(addr>>16), uint8(addr>>8), 0))
		if acc.err != nil {
			break
		}

		/* Wait until the MCU page buffer is free */
		acc.or(d.waitRegister(regMCUMode, mcuWriteBufEmpty, mcuWriteBufEmpty, 1))
		if acc.err != nil {
			break
		}

		acc.or(d.writePage(page))
		if acc.err != nil {
			break
		}

		acc.or(d.executeWrite())
		if acc.err != nil {
			break
		}
	}

	/* TODO: re-enable the write protection? */

	return acc.err
}

/* WriteAAI exists for symmetry with other flash masters. The MCU has no
 * auto-address-increment mode. */
func (d *MSTHal) WriteAAI(start uint32, data []byte) error {
	d.log("AAI write function is not supported")
	return fmt.Errorf("AAI write: %w", ErrorUnsupported)
}

func (d *MSTHal) fallbackRead(start uint32, buf []byte) error {
	if d.FallbackRead == nil {
		return fmt.Errorf("%w: read from unaligned offset %#x without a fallback", ErrorUnsupported, start)
	}
	return d.FallbackRead(start, buf)
}

func (d *MSTHal) fallbackWrite(start uint32, data []byte) error {
	if d.FallbackWrite == nil {
		return fmt.Errorf("%w: write to unaligned offset %#x without a fallback", ErrorUnsupported, start)
	}
	return d.FallbackWrite(start, data)
}
