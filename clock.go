package pcf8563

import "github.com/cgxeiji/pcf8563/bcd"

// Time register layout, starting at regSeconds.
const (
	clkSecond = iota
	clkMinute
	clkHour
	clkDay
	clkWeekday
	clkMonth
	clkYear
)

// decodeClock converts the seven time registers into a DateTime. Bits the
// datasheet leaves undefined are dropped, as is the VL flag on the seconds.
func decodeClock(r [7]byte) bcd.DateTime {
	year := bcd.DecodeYear(r[clkYear], r[clkMonth]&bcd.CenturyFlag != 0)
	return bcd.DateTime{
		Date: bcd.Date(uint32(bcd.EncodeWord(year))<<16 |
			uint32(r[clkMonth]&0x1F)<<8 |
			uint32(r[clkDay]&0x3F)),
		Time: bcd.Time(uint32(r[clkHour]&0x3F)<<16 |
			uint32(r[clkMinute]&0x7F)<<8 |
			uint32(r[clkSecond]&^voltageLow)),
	}
}

// encodeClock converts a DateTime into the seven time registers.
func encodeClock(dt bcd.DateTime) [7]byte {
	year := dt.Date.Year()
	return [7]byte{
		clkSecond:  byte(dt.Time) & 0x7F,
		clkMinute:  byte(dt.Time>>8) & 0x7F,
		clkHour:    byte(dt.Time>>16) & 0x3F,
		clkDay:     byte(dt.Date) & 0x3F,
		clkWeekday: byte(dt.Date.Weekday()),
		clkMonth:   byte(dt.Date>>8)&0x1F | bcd.CenturyBit(year),
		clkYear:    bcd.Encode(year % 100),
	}
}
