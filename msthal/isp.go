package msthal

/* Registers outside the directly mapped window are reached through the
 * 0xF4/0xF5 address/data pair: writing 0x9F to 0xF4 latches the high
 * address byte from the next 0xF5 write, the following 0xF4 write
 * selects the low byte. Reads and writes of 0xF5 then access the
 * selected location. */
func (d *MSTHal) indirectSelect(acc *errAccum, hi, lo uint8) {
	acc.or(d.writeRegister(regIndirectAddr, 0x9F))
	acc.or(d.writeRegister(regIndirectData, hi))
	acc.or(d.writeRegister(regIndirectAddr, lo))
}

/* EnterISP switches the MCU into in-system-programming mode. Normal
 * display operation stops until the next reset. */
func (d *MSTHal) EnterISP() error {
	var acc errAccum

	acc.or(d.writeRegister(regMCUMode, mcuEnterISPMode))

	/* Restore the internal oscillator divider (0x06A0 = 0x74) so the
	 * MCU runs at full speed while programming */
	d.indirectSelect(&acc, 0x06, 0xA0)
	acc.or(d.writeRegister(regIndirectData, 0x74))

	return acc.err
}

/* ResetMCU restarts the controller firmware, leaving ISP mode. */
func (d *MSTHal) ResetMCU() error {
	var acc errAccum

	val, err := d.readRegister(regReset)
	acc.or(err)
	acc.or(d.writeRegister(regReset, (val&0xFD)|0x02))

	return acc.err
}

/* disableProtection clears the internal write protection bits
 * (0x10AB[2:0] = b001) and drives the WP pin high. Protection is not
 * re-enabled anywhere, a reset restores the power-on state. */
func (d *MSTHal) disableProtection() error {
	var acc errAccum

	d.indirectSelect(&acc, 0x10, 0xAB)
	val, err := d.readRegister(regIndirectData)
	acc.or(err)

	d.indirectSelect(&acc, 0x10, 0xAB)
	acc.or(d.writeRegister(regIndirectData, (val&0xF8)|0x01))

	val, err = d.readRegister(regWPPin)
	acc.or(err)
	acc.or(d.writeRegister(regWPPin, (val&0xFE)|0x01))

	return acc.err
}

/* executeWrite tells the MCU to program the page buffer and waits for
 * the transfer status to clear. */
func (d *MSTHal) executeWrite() error {
	var acc errAccum

	acc.or(d.writeRegister(regMCUMode, mcuStartWriteXfer))
	acc.or(d.waitRegister(regMCUMode, mcuWriteXferStatus, 0, 1))

	return acc.err
}
