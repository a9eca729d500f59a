package msthal

/* The controller answers on I2C slave address 0x94 (8-bit convention),
 * so the 7-bit address the kernel wants is 0x4A. */
const DeviceAddr = 0x94 >> 1

const (
	/* The MCU moves flash data one page at a time */
	PageSize = 256

	/* Command/response sizes the small-command engine can express */
	MaxCommandWrite = 4
	MaxCommandRead  = 3

	baseWaitRetries = 1000
)

/* MCU registers reachable over the side channel. The payload registers
 * 0x64..0x66 double as the page map registers during bulk transfers. */
const (
	regSPICtrl      = 0x60
	regSPIOpcode    = 0x61
	regSPIPayload   = 0x64
	regMapPageByte2 = 0x64
	regMapPageByte1 = 0x65
	regMapPageByte0 = 0x66
	regSPIResult    = 0x67
	regReadMode     = 0x6A
	regWriteOpcode  = 0x6D
	regMCUMode      = 0x6F
	regDataPort     = 0x70
	regPageLength   = 0x71 /* holds length-1 */
	regWPPin        = 0xD7
	regReset        = 0xEE
	regIndirectAddr = 0xF4
	regIndirectData = 0xF5
)

/* regMCUMode values and status bits */
const (
	mcuEnterISPMode    = 0x80
	mcuStartWriteXfer  = 0xA0
	mcuWriteXferStatus = 0x20
	mcuWriteBufEmpty   = 0x10
)

/* regSPICtrl layout: bit 0 starts the transfer, bits 1..4 hold the
 * transfer counts, bits 5..7 select the command class. */
const (
	ctrlStart       = 0x01
	ctrlClassRead   = 2 << 5
	ctrlClassStatus = 3 << 5
	ctrlClassErase  = 5 << 5

	/* Value the vendor tool programs for paged reads */
	ctrlPagedRead = 0x46
)

/* JEDEC opcodes the command dispatch has to recognize */
const (
	opWriteStatus  = 0x01
	opPageProgram  = 0x02
	opRead         = 0x03
	opWriteEnable  = 0x06
	opSectorErase  = 0x20
	opBlockErase52 = 0x52
	opChipErase60  = 0x60
	opBlockEraseD7 = 0xD7
	opBlockEraseD8 = 0xD8
	opChipEraseC7  = 0xC7
)
