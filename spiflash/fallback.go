package spiflash

import "encoding/binary"

/* The byte-granular paths below serve the requests the paged engine
 * cannot start on. Reads fall back to plain READ commands carrying a
 * few data bytes each. Writes cannot do the same, opcode and address
 * already fill the command write budget, so an unaligned write is
 * rewritten as an aligned one padded with 0xFF, which programs nothing
 * on freshly erased flash. */

func (f *Flash) readCmd(offset uint32, buf []byte) (int, error) {
	n := len(buf)
	if n > f.maxCmdRead {
		n = f.maxCmdRead
	}

	var cmd [4]byte
	binary.BigEndian.PutUint32(cmd[:], offset)
	cmd[0] = 0x3

	data, err := f.m.SendCommand(cmd[:], n)
	if err != nil {
		return 0, err
	}

	return copy(buf[:n], data), nil
}

func (f *Flash) CommandRead(start uint32, buf []byte) error {
	_, err := completeIO(start, buf, f.readCmd)
	return err
}

func (f *Flash) AlignedWrite(start uint32, data []byte) error {
	pad := start & (f.device.pageSize - 1)

	buf := make([]byte, int(pad)+len(data))
	for i := range buf[:pad] {
		buf[i] = 0xFF
	}
	copy(buf[pad:], data)

	return f.m.Write256(start-pad, buf)
}
