package msttasks

import (
	"bytes"
	"errors"

	"github.com/BertoldVdb/rtd2142flash/msthal"
	"github.com/BertoldVdb/rtd2142flash/spiflash"
)

type MSTTasks struct {
	hal   *msthal.MSTHal
	flash *spiflash.Flash

	/* ProgressFunc, when set, is called while long operations run */
	ProgressFunc func(stage string, done int, total int)
}

type FlashInfo struct {
	DeviceID [3]byte
	Name     string
	ChipSize uint32
}

/* Transfers run one sector at a time so progress stays responsive */
const ioStride = 4096

func New(hal *msthal.MSTHal) (*MSTTasks, error) {
	flash, err := spiflash.New(hal, msthal.MaxCommandRead)
	if err != nil {
		return nil, err
	}

	/* Requests the paged engine cannot start on drop down to small
	 * plain commands */
	hal.FallbackRead = flash.CommandRead
	hal.FallbackWrite = flash.AlignedWrite

	return &MSTTasks{
		hal:   hal,
		flash: flash,
	}, nil
}

func (t *MSTTasks) progress(stage string, done, total int) {
	if t.ProgressFunc != nil {
		t.ProgressFunc(stage, done, total)
	}
}

func (t *MSTTasks) Probe() FlashInfo {
	return FlashInfo{
		DeviceID: t.flash.DeviceID(),
		Name:     t.flash.Name(),
		ChipSize: t.flash.ChipSize(),
	}
}

func (t *MSTTasks) readRange(stage string, buf []byte) error {
	for done := 0; done < len(buf); done += ioStride {
		end := done + ioStride
		if end > len(buf) {
			end = len(buf)
		}

		if err := t.flash.Read(uint32(done), buf[done:end]); err != nil {
			return err
		}

		t.progress(stage, end, len(buf))
	}

	return nil
}

/* FirmwareRead dumps the whole flash. */
func (t *MSTTasks) FirmwareRead() ([]byte, error) {
	fw := make([]byte, t.flash.ChipSize())

	if err := t.readRange("read", fw); err != nil {
		return nil, err
	}

	return fw, nil
}

/* FirmwareWrite erases the chip and programs fw from offset 0. With
 * verify set the data is read back and compared afterwards. */
func (t *MSTTasks) FirmwareWrite(fw []byte, verify bool) error {
	if len(fw) == 0 {
		return errors.New("firmware file is empty")
	}
	if len(fw) > int(t.flash.ChipSize()) {
		return errors.New("firmware file larger than the flash")
	}

	if err := t.EraseChip(); err != nil {
		return err
	}

	for done := 0; done < len(fw); done += ioStride {
		end := done + ioStride
		if end > len(fw) {
			end = len(fw)
		}

		if err := t.flash.Write(uint32(done), fw[done:end]); err != nil {
			return err
		}

		t.progress("write", end, len(fw))
	}

	if !verify {
		return nil
	}

	readback := make([]byte, len(fw))
	if err := t.readRange("verify", readback); err != nil {
		return err
	}

	if !bytes.Equal(readback, fw) {
		return errors.New("verify failed")
	}

	return nil
}

func (t *MSTTasks) EraseChip() error {
	if err := t.flash.EraseChip(); err != nil {
		return err
	}

	t.progress("erase", 1, 1)
	return nil
}
