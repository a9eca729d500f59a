// Package fwimage reads and writes the firmware container used for MST
// flash dumps. The container records the flash device id and protects
// header and payload with separate checksums, bare page-multiple dumps
// are accepted as well.
package fwimage

import (
	"bytes"
	"encoding/binary"
	"errors"
)

var (
	ErrorInvalidLength = errors.New("image length not valid")
	ErrorInvalidHeader = errors.New("header is not valid")
	ErrorInvalidCRC    = errors.New("CRC is not valid")
)

/* Container layout:
 *   0x00 magic "MSTF"
 *   0x04 format version
 *   0x05 reserved
 *   0x08 flash device id (3 bytes)
 *   0x0C payload length
 *   0x10 payload CRC
 *   0x1C header CRC over 0x00..0x1B
 *   0x20 payload
 * All fields big endian. */
const (
	headerLength  = 0x20
	formatVersion = 1

	/* Bare dumps must cover whole flash pages */
	pageSize = 256
)

var magic = []byte("MSTF")

func makeHeader(fw []byte, deviceID [3]byte, payloadLen uint32) {
	copy(fw, magic)
	fw[4] = formatVersion
	copy(fw[8:], deviceID[:])
	binary.BigEndian.PutUint32(fw[0x0C:], payloadLen)
}

func checksumInternal(image []byte, doWrite bool) bool {
	wasValid := true

	/* The payload CRC lives inside the header, so it is fixed first
	 * and the header CRC then covers it */
	wasValid = crcWriteCheck(image[0x10:], crcCalculate(image[headerLength:]), wasValid, doWrite)
	wasValid = crcCalculateAndWriteCheck(image[:headerLength], wasValid, doWrite)

	return wasValid
}

/* ChecksumUpdate rewrites both checksums and reports whether the image
 * was already valid. */
func ChecksumUpdate(image []byte) bool {
	return checksumInternal(image, true)
}

func Validate(image []byte) error {
	if len(image) < headerLength {
		return ErrorInvalidLength
	}

	var hdr [8]byte
	copy(hdr[:], magic)
	hdr[4] = formatVersion

	if !bytes.Equal(hdr[:], image[:len(hdr)]) {
		return ErrorInvalidHeader
	}

	if binary.BigEndian.Uint32(image[0x0C:]) != uint32(len(image)-headerLength) {
		return ErrorInvalidLength
	}

	if !checksumInternal(image, false) {
		return ErrorInvalidCRC
	}

	return nil
}

func Build(payload []byte, deviceID [3]byte) []byte {
	fw := make([]byte, headerLength+len(payload))

	makeHeader(fw, deviceID, uint32(len(payload)))
	copy(fw[headerLength:], payload)

	ChecksumUpdate(fw)

	return fw
}

/* IsContainer reports whether image starts with the container magic. */
func IsContainer(image []byte) bool {
	return len(image) >= len(magic) && bytes.Equal(image[:len(magic)], magic)
}

/* Extract returns the flash payload and the device id it was dumped
 * from. Images without a container pass through unchanged with a zero
 * device id, as long as they cover whole pages. */
func Extract(image []byte) ([]byte, [3]byte, error) {
	var deviceID [3]byte

	if IsContainer(image) {
		if err := Validate(image); err != nil {
			return nil, deviceID, err
		}

		copy(deviceID[:], image[8:])
		return image[headerLength:], deviceID, nil
	}

	if len(image) == 0 || len(image)%pageSize != 0 {
		return nil, deviceID, ErrorInvalidLength
	}

	return image, deviceID, nil
}
