package fwimage

import (
	"encoding/binary"

	"github.com/snksoft/crc"
)

var crcTable *crc.Table

func init() {
	params := crc.CRC32
	params.FinalXor = 0
	params.ReflectOut = false
	crcTable = crc.NewTable(params)
}

func crcCalculate(data []byte) uint32 {
	h := crc.NewHashWithTable(crcTable)
	h.Update(data)
	return h.CRC32()
}

func crcWriteCheck(slice []byte, value uint32, valid bool, doWrite bool) bool {
	if len(slice) < 4 {
		panic("slice length invalid")
	}

	orig := binary.BigEndian.Uint32(slice)
	if doWrite {
		binary.BigEndian.PutUint32(slice, value)
	}
	return orig == value && valid
}

/* crcCalculateAndWriteCheck treats the last 4 bytes of block as the BE
 * checksum of everything before them. */
func crcCalculateAndWriteCheck(block []byte, valid bool, doWrite bool) bool {
	value := crcCalculate(block[:len(block)-4])

	return crcWriteCheck(block[len(block)-4:], value, valid, doWrite)
}
