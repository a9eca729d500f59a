package spiflash

type flashDevice struct {
	deviceID uint32
	name     string

	opcodeChipErase   uint8
	opcodeBlockErase  uint8
	opcodeSectorErase uint8

	blockSize  uint32
	sectorSize uint32
	pageSize   uint32
	chipSize   uint32
}

/* Parts commonly found next to RTD21xx MST controllers, all small
 * uniform-sector NOR devices. */
var devices = []flashDevice{
	{deviceID: 0xc22013, name: "Macronix MX25L4005", opcodeChipErase: 0xC7, opcodeBlockErase: 0xD8, opcodeSectorErase: 0x20, blockSize: 65536, sectorSize: 4096, pageSize: 256, chipSize: 512 * 1024},
	{deviceID: 0xc22014, name: "Macronix MX25L8005", opcodeChipErase: 0xC7, opcodeBlockErase: 0xD8, opcodeSectorErase: 0x20, blockSize: 65536, sectorSize: 4096, pageSize: 256, chipSize: 1024 * 1024},
	{deviceID: 0xef3013, name: "Winbond W25X40", opcodeChipErase: 0xC7, opcodeBlockErase: 0xD8, opcodeSectorErase: 0x20, blockSize: 65536, sectorSize: 4096, pageSize: 256, chipSize: 512 * 1024},
	{deviceID: 0xef4013, name: "Winbond W25Q40", opcodeChipErase: 0xC7, opcodeBlockErase: 0xD8, opcodeSectorErase: 0x20, blockSize: 65536, sectorSize: 4096, pageSize: 256, chipSize: 512 * 1024},
	{deviceID: 0xef4014, name: "Winbond W25Q80", opcodeChipErase: 0xC7, opcodeBlockErase: 0xD8, opcodeSectorErase: 0x20, blockSize: 65536, sectorSize: 4096, pageSize: 256, chipSize: 1024 * 1024},
	{deviceID: 0xc84013, name: "GigaDevice GD25Q40", opcodeChipErase: 0xC7, opcodeBlockErase: 0xD8, opcodeSectorErase: 0x20, blockSize: 65536, sectorSize: 4096, pageSize: 256, chipSize: 512 * 1024},
	{deviceID: 0x1c3113, name: "EON EN25F40", opcodeChipErase: 0xC7, opcodeBlockErase: 0xD8, opcodeSectorErase: 0x20, blockSize: 65536, sectorSize: 4096, pageSize: 256, chipSize: 512 * 1024},
}

func rightAlign(in uint32) (uint32, uint32) {
	mask := uint32(0)

	for (in >> 24) == 0 {
		in <<= 8
		mask <<= 8
		mask |= 0xFF
	}
	return in, ^mask
}

func deviceLookup(id uint32) (flashDevice, bool) {
	for _, m := range devices {
		compare, mask := rightAlign(m.deviceID)

		if id&mask == compare {
			return m, true
		}
	}
	return devices[0], false
}
