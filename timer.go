package pcf8563

import "fmt"

// SetTimer writes the timer control (high byte) and countdown value (low
// byte).
func (d *Device) SetTimer(v uint16) error {
	if err := d.write(regTimer, byte(v>>8), byte(v)); err != nil {
		return fmt.Errorf("pcf8563: could not set timer: %w", err)
	}
	return nil
}

// Timer reads the timer control and countdown value.
func (d *Device) Timer() (uint16, error) {
	var buf [2]byte
	if err := d.read(regTimer, buf[:]); err != nil {
		return 0, fmt.Errorf("pcf8563: could not read timer: %w", err)
	}
	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

// SetClockOut writes the CLKOUT control register.
func (d *Device) SetClockOut(b byte) error {
	if err := d.write(regClockOut, b); err != nil {
		return fmt.Errorf("pcf8563: could not set clock out: %w", err)
	}
	return nil
}

// ClockOut reads the CLKOUT control register.
func (d *Device) ClockOut() (byte, error) {
	var buf [1]byte
	if err := d.read(regClockOut, buf[:]); err != nil {
		return 0, fmt.Errorf("pcf8563: could not read clock out: %w", err)
	}
	return buf[0], nil
}
