package pcf8563

// An Option configures a device. It returns an Option that restores the
// previous value.
type Option func(d *Device) Option

// OnAddr can be used to specify an alternative I²C address.
// By default, the address is 0x51.
func OnAddr(addr uint16) Option {
	return func(d *Device) Option {
		old := d.addr
		d.addr = addr
		return OnAddr(old)
	}
}

// Options applies options to the device and returns the undo of the last one.
func (d *Device) Options(options ...Option) Option {
	var old Option
	for _, opt := range options {
		old = opt(d)
	}
	return old
}
