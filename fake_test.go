package pcf8563

import (
	"errors"

	"tinygo.org/x/drivers"

	"github.com/cgxeiji/pcf8563/bcd"
)

// Compile-time check.
var _ drivers.I2C = (*fakeRTC)(nil)

var errNACK = errors.New("fake: NACK")

// fakeRTC is a register-file PCF8563. Each read transaction first loads the
// next scripted snapshot, if any; the last snapshot stays loaded.
type fakeRTC struct {
	regs      [16]byte
	snapshots [][16]byte
	writes    [][]byte
	reads     int
	baud      []uint32
	err       error

	// register calls made through the drivers.I2C methods
	regCalls int
}

func (f *fakeRTC) Tx(addr uint16, w, r []byte) error {
	if f.err != nil {
		return f.err
	}
	if addr != Addr || len(w) == 0 {
		return errNACK
	}
	reg := int(w[0])
	if len(r) == 0 {
		f.writes = append(f.writes, append([]byte(nil), w...))
		copy(f.regs[reg:], w[1:])
		return nil
	}

	f.reads++
	if len(f.snapshots) > 0 {
		f.regs = f.snapshots[0]
		if len(f.snapshots) > 1 {
			f.snapshots = f.snapshots[1:]
		}
	}
	copy(r, f.regs[reg:])
	return nil
}

func (f *fakeRTC) ReadRegister(addr uint8, r uint8, buf []byte) error {
	f.regCalls++
	return f.Tx(uint16(addr), []byte{r}, buf)
}

func (f *fakeRTC) WriteRegister(addr uint8, r uint8, buf []byte) error {
	f.regCalls++
	return f.Tx(uint16(addr), append([]byte{r}, buf...), nil)
}

func (f *fakeRTC) SetBaudRate(br uint32) error {
	f.baud = append(f.baud, br)
	return nil
}

// snapshot returns a register file holding the given status and time.
func snapshot(cs1, cs2 byte, dt bcd.DateTime) [16]byte {
	var regs [16]byte
	regs[regCS1] = cs1
	regs[regCS2] = cs2
	clk := encodeClock(dt)
	copy(regs[regSeconds:], clk[:])
	return regs
}
