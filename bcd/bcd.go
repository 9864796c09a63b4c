// Package bcd implements the binary-coded decimal layout used by the PCF8563
// family of real-time clocks.
//
// A byte holds two decimal digits, one per nibble. A year is kept as a 16-bit
// word of four digits (0x2023). Dates and times are packed into a uint32 each,
// see Date and Time.
package bcd

import "errors"

// ErrInvalid is returned when a value does not fit its BCD field.
var ErrInvalid = errors.New("bcd: invalid value")

// Encode converts a value in 0..99 to a BCD byte. Values outside that range
// are reduced modulo 100.
func Encode(v int) byte {
	if v < 0 {
		v = -v
	}
	v %= 100
	return byte(v/10<<4 | v%10)
}

// Decode converts a BCD byte to its decimal value.
func Decode(b byte) int {
	return int(b>>4)*10 + int(b&0x0F)
}

// EncodeWord converts a value in 0..9999 to a 16-bit BCD word.
func EncodeWord(v int) uint16 {
	if v < 0 {
		v = -v
	}
	v %= 10000
	return uint16(Encode(v/100))<<8 | uint16(Encode(v%100))
}

// DecodeWord converts a 16-bit BCD word to its decimal value.
func DecodeWord(w uint16) int {
	return Decode(byte(w>>8))*100 + Decode(byte(w))
}

// Valid reports whether both nibbles of b are decimal digits.
func Valid(b byte) bool {
	return b>>4 <= 9 && b&0x0F <= 9
}

// ValidWord reports whether all four nibbles of w are decimal digits.
func ValidWord(w uint16) bool {
	return Valid(byte(w>>8)) && Valid(byte(w))
}
