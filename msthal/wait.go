package msthal

/* waitRegister polls reg until value&mask == target. The poll is a tight
 * loop without sleeping, pacing comes from the bus transactions
 * themselves. The retry budget scales with multiplier for commands that
 * are known to be slow, after 1000*multiplier mismatched reads the wait
 * gives up. A failed read aborts the wait immediately since the register
 * state is unknown at that point. */
func (d *MSTHal) waitRegister(reg uint8, mask, target uint8, multiplier int) error {
	for tried := 0; tried < baseWaitRetries*multiplier; tried++ {
		val, err := d.readRegister(reg)
		if err != nil {
			return err
		}
		if val&mask == target {
			return nil
		}
	}

	d.log("wait for register %#02x (mask %#02x): %v", reg, mask, ErrorTimeout)
	return ErrorTimeout
}
