package msthal

import "fmt"

/* SendCommand runs a small SPI command through the MCU command engine:
 * the opcode and up to three payload bytes go out, up to three result
 * bytes come back. Larger transactions cannot be expressed in the
 * control word and are rejected before any bus traffic. */
func (d *MSTHal) SendCommand(write []byte, readCnt int) ([]byte, error) {
	if len(write) == 0 || len(write) > MaxCommandWrite || readCnt < 0 || readCnt > MaxCommandRead {
		return nil, fmt.Errorf("%w: command with %d write and %d read bytes", ErrorInvalidArgument, len(write), readCnt)
	}

	opcode := write[0]
	payload := write[1:]

	/* Control word: bit 0 starts the transfer, bits 1..4 carry the
	 * counts, bits 5..7 select the command class. */
	ctrl := uint8(len(payload))<<3 | uint8(readCnt)<<1

	multiplier := 1
	switch opcode {
	case opWriteEnable:
		/* The MCU manages write enable internally, there is nothing to
		 * send. Report success. */
		return make([]byte, readCnt), nil
	case opWriteStatus:
		ctrl |= ctrlClassStatus
	case opChipEraseC7:
		/* Erasing the whole array takes much longer than any other
		 * command */
		multiplier *= 20
		ctrl |= ctrlClassErase
	case opChipErase60, opBlockErase52, opBlockEraseD8, opBlockEraseD7, opSectorErase:
		ctrl |= ctrlClassErase
	default:
		ctrl |= ctrlClassRead
	}

	var acc errAccum
	acc.or(d.writeRegister(regSPICtrl, ctrl))
	acc.or(d.writeRegister(regSPIOpcode, opcode))
	for i, b := range payload {
		acc.or(d.writeRegister(regSPIPayload+uint8(i), b))
	}
	acc.or(d.writeRegister(regSPICtrl, ctrl|ctrlStart))
	if acc.err != nil {
		return nil, acc.err
	}

	if err := d.waitRegister(regSPICtrl, ctrlStart, 0, multiplier); err != nil {
		return nil, err
	}

	/* A failed result read does not stop the remaining reads, partial
	 * data is still worth returning to the caller. */
	out := make([]byte, readCnt)
	for i := range out {
		val, err := d.readRegister(regSPIResult + uint8(i))
		acc.or(err)
		out[i] = val
	}

	return out, acc.err
}
