package pcf8563

import (
	"fmt"

	"github.com/cgxeiji/pcf8563/bcd"
)

// Alarm is a packed alarm setting, 0xDDHHmmWW: day, hour, minute and weekday
// bytes in BCD. Bit 7 of each byte (AlarmDisabled) removes that field from the
// match.
type Alarm uint32

// PackAlarm packs raw alarm register bytes.
func PackAlarm(minute, hour, day, weekday byte) Alarm {
	return Alarm(uint32(day)<<24 | uint32(hour)<<16 | uint32(minute)<<8 | uint32(weekday))
}

// AlarmAt returns an alarm that fires every day at hour:minute.
func AlarmAt(hour, minute int) Alarm {
	return PackAlarm(bcd.Encode(minute), bcd.Encode(hour), AlarmDisabled, AlarmDisabled)
}

func (a Alarm) Minute() byte  { return byte(a >> 8) }
func (a Alarm) Hour() byte    { return byte(a >> 16) }
func (a Alarm) Day() byte     { return byte(a >> 24) }
func (a Alarm) Weekday() byte { return byte(a) }

func (a Alarm) String() string {
	field := func(b byte) string {
		if b&AlarmDisabled != 0 {
			return "--"
		}
		return fmt.Sprintf("%02d", bcd.Decode(b))
	}
	return fmt.Sprintf("day %s %s:%s weekday %s",
		field(a.Day()), field(a.Hour()), field(a.Minute()), field(a.Weekday()))
}

// SetAlarm writes the alarm registers.
//
// The weekday byte is written masked with 0xF7, which clears bit 3 and keeps
// the disable bit.
func (d *Device) SetAlarm(a Alarm) error {
	if err := d.write(regAlarm, a.Minute(), a.Hour(), a.Day(), a.Weekday()&0xF7); err != nil {
		return fmt.Errorf("pcf8563: could not set alarm: %w", err)
	}
	return nil
}

// Alarm reads the alarm registers.
func (d *Device) Alarm() (Alarm, error) {
	var buf [4]byte
	if err := d.read(regAlarm, buf[:]); err != nil {
		return 0, fmt.Errorf("pcf8563: could not read alarm: %w", err)
	}
	return PackAlarm(buf[0], buf[1], buf[2], buf[3]), nil
}

// ActiveAlarm enables or disables the alarm interrupt and clears the alarm
// flag. It returns ErrStopped, without writing, if the clock is stopped.
func (d *Device) ActiveAlarm(enable bool) error {
	if err := d.activate(CtrlAF, CtrlAIE, enable); err != nil {
		return fmt.Errorf("pcf8563: could not configure alarm: %w", err)
	}
	return nil
}

// ActiveTimer enables or disables the timer interrupt and clears the timer
// flag. It returns ErrStopped, without writing, if the clock is stopped.
func (d *Device) ActiveTimer(enable bool) error {
	if err := d.activate(CtrlTF, CtrlTIE, enable); err != nil {
		return fmt.Errorf("pcf8563: could not configure timer: %w", err)
	}
	return nil
}

// activate clears flag and sets or clears ie in CS2.
func (d *Device) activate(flag, ie byte, enable bool) error {
	running, err := d.IsRunning()
	if err != nil {
		return err
	}
	if !running {
		return ErrStopped
	}

	cs2 := d.cs2 &^ flag
	if enable {
		cs2 |= ie
	} else {
		cs2 &^= ie
	}
	d.cs2 = cs2

	return d.write(regCS2, cs2)
}
