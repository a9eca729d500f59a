package spiflash

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestCommandReadChunksAndAdvances(t *testing.T) {
	f, m := newTestFlash(t)
	m.responses = [][]byte{{1, 2, 3}, {4, 5, 6}, {7}}

	buf := make([]byte, 7)
	assert.NoError(t, f.CommandRead(0x1234, buf))
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7}, buf)

	want := [][]byte{
		{0x03, 0x00, 0x12, 0x34},
		{0x03, 0x00, 0x12, 0x37},
		{0x03, 0x00, 0x12, 0x3A},
	}
	assert.Equal(t, want, m.commands)
	assert.Equal(t, []int{3, 3, 1}, m.readCnts)
}

func TestCommandReadStopsOnError(t *testing.T) {
	f, m := newTestFlash(t)
	fail := errors.New("nack")
	m.responses = [][]byte{{1, 2, 3}, nil}
	m.errs = []error{nil, fail}

	err := f.CommandRead(0, make([]byte, 9))
	assert.True(t, errors.Is(err, fail))
	assert.Equal(t, 2, len(m.commands))
}

func TestAlignedWritePadsToPageBoundary(t *testing.T) {
	f, m := newTestFlash(t)

	data := []byte{1, 2, 3, 4, 5}
	assert.NoError(t, f.AlignedWrite(0x105, data))

	assert.Equal(t, 1, len(m.bulkWrites))
	assert.Equal(t, uint32(0x100), m.bulkWrites[0].start)

	want := append(bytes.Repeat([]byte{0xFF}, 5), data...)
	assert.Equal(t, want, m.bulkWrites[0].data)
}

func TestAlignedWriteKeepsAlignedRequests(t *testing.T) {
	f, m := newTestFlash(t)

	data := []byte{9, 8, 7}
	assert.NoError(t, f.AlignedWrite(0x300, data))

	assert.Equal(t, uint32(0x300), m.bulkWrites[0].start)
	assert.Equal(t, data, m.bulkWrites[0].data)
}
