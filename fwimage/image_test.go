package fwimage

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func getRandomBuf(length int) []byte {
	out := make([]byte, length)
	rand.Read(out)
	return out
}

func TestCRC(t *testing.T) {
	data := getRandomBuf(64)

	a := crcCalculate(data)
	if a != crcCalculate(data) {
		t.Error("CRC is not deterministic")
	}

	data[10] ^= 0x01
	if a == crcCalculate(data) {
		t.Error("CRC did not change with the data")
	}
}

func TestImage(t *testing.T) {
	payload := getRandomBuf(4096)
	buf := Build(payload, [3]byte{0xC2, 0x20, 0x13})

	c := make([]byte, len(buf))
	copy(c, buf)

	if err := Validate(buf); err != nil {
		t.Error("Valid image rejected:", err)
	}

	if err := Validate(buf[:0x10]); err != ErrorInvalidLength {
		t.Error("Truncated header accepted:", err)
	}

	if err := Validate(buf[:1312]); err != ErrorInvalidLength {
		t.Error("Truncated image accepted:", err)
	}

	buf[4]++
	if err := Validate(buf); err != ErrorInvalidHeader {
		t.Error("Image with invalid header:", err)
	}
	buf[4]--

	buf[0x500]++
	if err := Validate(buf); err != ErrorInvalidCRC {
		t.Error("Image with invalid payload crc:", err)
	}
	buf[0x500]--

	buf[0x09]++
	if err := Validate(buf); err != ErrorInvalidCRC {
		t.Error("Image with invalid header crc:", err)
	}
	buf[0x09]--

	if !bytes.Equal(c, buf) {
		t.Error("Buffer was modified during test")
	}
}

func TestBuildExtract(t *testing.T) {
	payload := getRandomBuf(0x2000)
	id := [3]byte{0xEF, 0x40, 0x13}

	output := Build(payload, id)

	payload2, id2, err := Extract(output)
	if err != nil {
		t.Error("Failed to extract data from image:", err)
		return
	}

	if id != id2 {
		t.Error("Wrong device id extracted")
	}

	if !bytes.Equal(payload, payload2) {
		t.Error("Regenerated payload is not equal to the input")
	}
}

func TestExtractBare(t *testing.T) {
	payload := getRandomBuf(512)
	payload[0] = 0 /* make sure it cannot look like a container */

	payload2, id, err := Extract(payload)
	if err != nil {
		t.Error("Bare dump rejected:", err)
	}
	if id != ([3]byte{}) {
		t.Error("Bare dump has no device id")
	}
	if !bytes.Equal(payload, payload2) {
		t.Error("Bare dump modified")
	}

	if _, _, err := Extract(getRandomBuf(100)); err != ErrorInvalidLength {
		t.Error("Partial page dump accepted:", err)
	}
}

func TestChecksumUpdate(t *testing.T) {
	buf := Build(getRandomBuf(1024), [3]byte{1, 2, 3})

	if !ChecksumUpdate(buf) {
		t.Error("Fresh image should already be valid")
	}

	buf[0x40] ^= 0xFF
	if ChecksumUpdate(buf) {
		t.Error("Modified image reported as valid")
	}

	if err := Validate(buf); err != nil {
		t.Error("Image not repaired:", err)
	}
}
