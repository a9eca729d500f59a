package spiflash

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

/* Master is the command interface of an indirect SPI controller.
 * SendCommand carries small command/response pairs, Read and Write256
 * move page data through the controller's bulk engine. */
type Master interface {
	SendCommand(write []byte, readCnt int) ([]byte, error)
	Read(start uint32, buf []byte) error
	Write256(start uint32, data []byte) error
}

type Flash struct {
	m Master

	deviceID [3]byte
	device   flashDevice

	maxCmdRead int
}

func New(m Master, maxCmdRead int) (*Flash, error) {
	f := &Flash{
		m: m,

		maxCmdRead: maxCmdRead,
	}

	if err := f.readDeviceID(); err != nil {
		if err := f.readDeviceID(); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func (f *Flash) readDeviceID() error {
	id, err := f.m.SendCommand([]byte{0x9F}, 3)
	if err != nil {
		return err
	}
	copy(f.deviceID[:], id)

	t := uint32(f.deviceID[0])<<24 | uint32(f.deviceID[1])<<16 | uint32(f.deviceID[2])<<8
	var ok bool
	f.device, ok = deviceLookup(t)
	if !ok {
		return fmt.Errorf("unsupported flash type: %06x", t>>8)
	}

	return nil
}

func (f *Flash) DeviceID() [3]byte {
	return f.deviceID
}

func (f *Flash) Name() string {
	return f.device.name
}

func (f *Flash) ChipSize() uint32 {
	return f.device.chipSize
}

func (f *Flash) SectorSize() uint32 {
	return f.device.sectorSize
}

func (f *Flash) BlockSize() uint32 {
	return f.device.blockSize
}

func (f *Flash) writeEnable() error {
	_, err := f.m.SendCommand([]byte{0x6}, 0)
	return err
}

func (f *Flash) StatusRead() (uint8, error) {
	result, err := f.m.SendCommand([]byte{0x5}, 1)
	if err != nil {
		return 0, err
	}
	return result[0], nil
}

func (f *Flash) waitIdle(maxDuration time.Duration) error {
	timeout := time.Now().Add(maxDuration)
	for time.Now().Before(timeout) {
		status, err := f.StatusRead()
		if err != nil {
			return err
		}
		if status&1 == 0 {
			return nil
		}
	}
	return errors.New("timeout waiting for flash idle")
}

func (f *Flash) EraseChip() error {
	if err := f.writeEnable(); err != nil {
		return err
	}

	if _, err := f.m.SendCommand([]byte{f.device.opcodeChipErase}, 0); err != nil {
		return err
	}

	return f.waitIdle(30 * time.Second)
}

func (f *Flash) eraseRange(opcode uint8, address uint32) error {
	if err := f.writeEnable(); err != nil {
		return err
	}

	var cmd [4]byte
	binary.BigEndian.PutUint32(cmd[:], address)
	cmd[0] = opcode

	if _, err := f.m.SendCommand(cmd[:], 0); err != nil {
		return err
	}

	return f.waitIdle(5 * time.Second)
}

func (f *Flash) EraseSector(address uint32) error {
	return f.eraseRange(f.device.opcodeSectorErase, address)
}

func (f *Flash) EraseBlock(address uint32) error {
	return f.eraseRange(f.device.opcodeBlockErase, address)
}

func (f *Flash) Read(offset uint32, buf []byte) error {
	return f.m.Read(offset, buf)
}

func (f *Flash) Write(offset uint32, data []byte) error {
	return f.m.Write256(offset, data)
}
