package msthal

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

/* mockBus is a scripted register-file double for the MCU side of the
 * channel. A single byte write selects a register for the next read, a
 * two byte write sets a register, longer writes are page data. Reads
 * serve the selected register, or the bulk stream when nothing is
 * selected. */
type mockBus struct {
	regs [256]byte

	selected   int
	writes     [][]byte
	reads      int
	writeCount int
	closeCalls int

	/* optional scripted behaviors */
	stuck        map[byte]byte   /* reads pinned to a fixed value */
	readValues   map[byte][]byte /* queued reads, consumed first */
	readErr      map[byte]error  /* reads of a register fail */
	shortRead    map[byte]bool   /* reads of a register move no data */
	stream       []byte          /* bulk read data */
	writeHook    func(frame []byte) error
	shortWriteAt int /* the Nth write moves one byte too few */
}

func newMockBus() *mockBus {
	return &mockBus{
		selected:   -1,
		stuck:      map[byte]byte{},
		readValues: map[byte][]byte{},
		readErr:    map[byte]error{},
		shortRead:  map[byte]bool{},
	}
}

func (m *mockBus) Write(p []byte) (int, error) {
	m.writeCount++
	m.writes = append(m.writes, append([]byte(nil), p...))

	if m.writeHook != nil {
		if err := m.writeHook(p); err != nil {
			return 0, err
		}
	}
	if m.writeCount == m.shortWriteAt {
		return len(p) - 1, nil
	}

	switch {
	case len(p) == 1:
		m.selected = int(p[0])
	case len(p) == 2:
		m.regs[p[0]] = p[1]
	}

	return len(p), nil
}

func (m *mockBus) Read(p []byte) (int, error) {
	m.reads++

	if m.selected >= 0 {
		reg := byte(m.selected)
		m.selected = -1

		if err := m.readErr[reg]; err != nil {
			return 0, err
		}
		if m.shortRead[reg] {
			return 0, nil
		}

		p[0] = m.registerValue(reg)
		return 1, nil
	}

	n := copy(p, m.stream)
	m.stream = m.stream[n:]
	return n, nil
}

func (m *mockBus) registerValue(reg byte) byte {
	if v, ok := m.stuck[reg]; ok {
		return v
	}
	if q := m.readValues[reg]; len(q) > 0 {
		m.readValues[reg] = q[1:]
		return q[0]
	}

	/* Behave like an idle MCU: commands complete instantly and the
	 * page buffer is always free. */
	val := m.regs[reg]
	switch reg {
	case regSPICtrl:
		val &^= ctrlStart
	case regMCUMode:
		val = (val | mcuWriteBufEmpty) &^ mcuWriteXferStatus
	}
	return val
}

func (m *mockBus) Close() error {
	m.closeCalls++
	return nil
}

/* registerWrites returns the values written to reg, in order. */
func (m *mockBus) registerWrites(reg byte) []byte {
	var out []byte
	for _, f := range m.writes {
		if len(f) == 2 && f[0] == reg {
			out = append(out, f[1])
		}
	}
	return out
}

/* pageFrames returns the payloads pushed through the data port. */
func (m *mockBus) pageFrames() [][]byte {
	var out [][]byte
	for _, f := range m.writes {
		if len(f) > 2 && f[0] == regDataPort {
			out = append(out, f[1:])
		}
	}
	return out
}

func newTestHal(t *testing.T) (*MSTHal, *mockBus) {
	t.Helper()

	bus := newMockBus()
	hal, err := New(bus)
	assert.NoError(t, err)

	/* Drop the init traffic, tests only care about their own */
	bus.writes = nil
	bus.reads = 0
	bus.writeCount = 0

	return hal, bus
}
