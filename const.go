package pcf8563

import "periph.io/x/periph/conn/physic"

// Device constants
const (
	// Addr is the 7-bit I²C address of the PCF8563 (0xA2 write, 0xA3 read).
	Addr = 0x51

	StandardSpeed = 100 * physic.KiloHertz
	DoubleSpeed   = 200 * physic.KiloHertz
)

// Register addresses
const (
	regCS1      = 0x00
	regCS2      = 0x01
	regSeconds  = 0x02 // CS3: seconds and the VL flag
	regAlarm    = 0x09 // minute, hour, day, weekday
	regClockOut = 0x0D
	regTimer    = 0x0E // control, countdown value
)

// Control and status bits. CtrlStop and CtrlTITP live in CS1, the rest in
// CS2.
const (
	CtrlStop byte = 0x20
	CtrlTITP byte = 0x10
	CtrlAF   byte = 0x08
	CtrlTF   byte = 0x04
	CtrlAIE  byte = 0x02
	CtrlTIE  byte = 0x01

	voltageLow byte = 0x80
)

// CLKOUT settings
const (
	ClockOutDisable byte = 0x00
	ClockOut32kHz   byte = 0x80
	ClockOut1kHz    byte = 0x81
	ClockOut32Hz    byte = 0x82
	ClockOut1Hz     byte = 0x83
)

// Timer settings. The high byte is the timer control register, the low byte
// the countdown value.
const (
	TimerDisable uint16 = 0x0000
	Timer4kHz    uint16 = 0x8000
	Timer64Hz    uint16 = 0x8100
	Timer1s      uint16 = 0x8200
	Timer60s     uint16 = 0x8300
)

// AlarmDisabled is bit 7 of each alarm field. A field with it set does not
// take part in the match.
const AlarmDisabled byte = 0x80
