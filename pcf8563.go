// Package pcf8563 implements a driver for the NXP PCF8563 (and the register
// compatible PCF8583) real-time clock over I²C.
//
// The driver reads and writes the wall-clock time, manages the alarm and
// countdown timer and configures the CLKOUT pin. Date and time values keep the
// chip's BCD layout, see package bcd.
//
// A Device is not safe for concurrent use. Every method performs one blocking
// bus transaction (Now may perform several) and reports a failed transaction
// once, without retrying.
//
// Datasheet: https://www.nxp.com/docs/en/data-sheet/PCF8563.pdf
package pcf8563

import (
	"errors"
	"fmt"
	"io"
	"time"

	"periph.io/x/periph/conn/physic"

	"github.com/cgxeiji/pcf8563/bcd"
)

// ErrStopped is returned when an operation needs the clock to be running and
// the STOP bit is set.
var ErrStopped = errors.New("pcf8563: clock is stopped")

// Device defines a PCF8563 device.
type Device struct {
	bus    Bus
	closer io.Closer
	addr   uint16
	speed  physic.Frequency

	// last read status registers
	cs1, cs2, cs3 byte
	wday          byte

	w [8]byte
}

// New returns a PCF8563 device on the given bus. It does not touch the
// device; call Begin before use.
func New(bus Bus, opts ...Option) *Device {
	d := &Device{
		bus:  bus,
		addr: Addr,
	}
	d.Options(opts...)
	return d
}

// Begin prepares the bus and reports whether the clock is running.
//
// A non-zero speed is applied to the bus when it differs from the current
// one. A zero speed keeps the current bus clock, or selects StandardSpeed
// without touching the bus on the first call. A zero addr keeps the current
// address, Addr unless changed with OnAddr.
func (d *Device) Begin(speed physic.Frequency, addr uint16) (bool, error) {
	switch {
	case speed != 0 && speed != d.speed:
		if err := d.SetClock(speed); err != nil {
			return false, err
		}
	case d.speed == 0:
		d.speed = StandardSpeed
	}
	if addr != 0 {
		d.addr = addr
	}

	return d.IsRunning()
}

// SetClock changes the bus clock used to talk to the device.
func (d *Device) SetClock(speed physic.Frequency) error {
	if err := applySpeed(d.bus, speed); err != nil {
		return fmt.Errorf("pcf8563: could not set bus speed: %w", err)
	}
	d.speed = speed
	return nil
}

// Speed returns the configured bus clock.
func (d *Device) Speed() physic.Frequency { return d.speed }

// Address returns the I²C address of the device.
func (d *Device) Address() uint16 { return d.addr }

// Reset clears both control/status registers. This starts the clock and
// disables the alarm and timer interrupts.
func (d *Device) Reset() error {
	if err := d.write(regCS1, 0, 0); err != nil {
		return fmt.Errorf("pcf8563: could not reset: %w", err)
	}
	return nil
}

// Status reads the control/status registers and returns CS2. CS1 and CS2
// are kept for the flag accessors.
func (d *Device) Status() (byte, error) {
	var buf [2]byte
	if err := d.read(regCS1, buf[:]); err != nil {
		return 0, fmt.Errorf("pcf8563: could not read status: %w", err)
	}
	d.cs1 = buf[0]
	d.cs2 = buf[1]
	return d.cs2, nil
}

// IsRunning reports whether the clock is running, that is, the STOP bit of
// CS1 is clear.
func (d *Device) IsRunning() (bool, error) {
	if _, err := d.Status(); err != nil {
		return false, err
	}
	return d.cs1&CtrlStop == 0, nil
}

// IsAlarm reports whether the alarm flag is set.
func (d *Device) IsAlarm() (bool, error) {
	cs2, err := d.Status()
	if err != nil {
		return false, err
	}
	return cs2&CtrlAF != 0, nil
}

// IsTimer reports whether the timer flag is set.
func (d *Device) IsTimer() (bool, error) {
	cs2, err := d.Status()
	if err != nil {
		return false, err
	}
	return cs2&CtrlTF != 0, nil
}

// LowVoltage reports whether the VL flag was set on the last Now. A set flag
// means the clock integrity is no longer guaranteed.
func (d *Device) LowVoltage() bool { return d.cs3&voltageLow != 0 }

// Weekday returns the weekday register as read on the last Now.
func (d *Device) Weekday() byte { return d.wday }

// Now reads the current date and time.
//
// The registers are read in one transaction, but the chip may still tick
// between the date and the time registers. With twice set, Now reads again
// until two consecutive reads agree.
func (d *Device) Now(twice bool) (bcd.DateTime, error) {
	var prev bcd.DateTime
	for first := true; ; first = false {
		dt, err := d.readClock()
		if err != nil {
			return bcd.DateTime{}, fmt.Errorf("pcf8563: could not read time: %w", err)
		}
		if !twice || (!first && dt == prev) {
			return dt, nil
		}
		prev = dt
	}
}

func (d *Device) readClock() (bcd.DateTime, error) {
	var buf [9]byte
	if err := d.read(regCS1, buf[:]); err != nil {
		return bcd.DateTime{}, err
	}
	d.cs1 = buf[0]
	d.cs2 = buf[1]
	d.cs3 = buf[2]
	d.wday = buf[6]

	var regs [7]byte
	copy(regs[:], buf[2:])
	return decodeClock(regs), nil
}

// Epoch returns the current time as seconds since 1970-01-01 UTC.
func (d *Device) Epoch(twice bool) (int64, error) {
	dt, err := d.Now(twice)
	if err != nil {
		return 0, err
	}
	return dt.Epoch(), nil
}

// Adjust sets the clock. The weekday and the century flag are derived from
// the date.
//
// Only years bcd.FirstYear..bcd.LastYear (2000-2199) read back unchanged.
// Other years are written with the flag of their century and read back
// shifted into that window; 1999 reads back as 2199.
func (d *Device) Adjust(dt bcd.DateTime) error {
	regs := encodeClock(dt)
	if err := d.write(regSeconds, regs[:]...); err != nil {
		return fmt.Errorf("pcf8563: could not set time: %w", err)
	}
	return nil
}

// AdjustEpoch sets the clock to sec seconds after 1970-01-01 UTC.
func (d *Device) AdjustEpoch(sec int64) error {
	return d.Adjust(bcd.FromEpoch(sec))
}

// SetTime sets the clock to t, converted to UTC.
func (d *Device) SetTime(t time.Time) error {
	return d.Adjust(bcd.FromTime(t))
}
