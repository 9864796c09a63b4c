package pcf8563

import (
	"fmt"
	"io"

	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/conn/physic"
	"periph.io/x/periph/host"
	"tinygo.org/x/drivers"
)

// Bus is the I²C transport used by the driver. When both w and r are given,
// Tx must write w and then issue a repeated-start read into r without
// releasing the bus.
//
// periph.io's i2c.Bus and TinyGo's drivers.I2C both satisfy Bus.
type Bus interface {
	Tx(addr uint16, w, r []byte) error
}

var (
	_ Bus = i2c.Bus(nil)
	_ Bus = drivers.I2C(nil)
)

// speedSetter is implemented by periph.io buses.
type speedSetter interface {
	SetSpeed(f physic.Frequency) error
}

// baudRateSetter is implemented by TinyGo's machine.I2C.
type baudRateSetter interface {
	SetBaudRate(br uint32) error
}

// Open initializes the host drivers and opens the named I²C bus ("/dev/i2c-1",
// "I2C1", "1"). An empty name selects the first available bus. The returned
// Device owns the bus; call Close to release it.
func Open(busName string, opts ...Option) (*Device, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("pcf8563: could not initialize host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("pcf8563: could not open I2C bus: %w", err)
	}

	d := New(bus, opts...)
	d.closer = bus
	return d, nil
}

// Close releases the bus if the Device was created with Open.
func (d *Device) Close() error {
	if d.closer == nil {
		return nil
	}
	c := d.closer
	d.closer = nil
	return c.Close()
}

var _ io.Closer = (*Device)(nil)

func applySpeed(bus Bus, f physic.Frequency) error {
	switch b := bus.(type) {
	case speedSetter:
		return b.SetSpeed(f)
	case baudRateSetter:
		return b.SetBaudRate(uint32(f / physic.Hertz))
	}
	return nil
}

// read fills r starting at register reg. TinyGo buses use their own
// register access.
func (d *Device) read(reg byte, r []byte) error {
	if b, ok := d.bus.(drivers.I2C); ok {
		return b.ReadRegister(uint8(d.addr), reg, r)
	}
	d.w[0] = reg
	return d.bus.Tx(d.addr, d.w[:1], r)
}

// write sends data starting at register reg.
func (d *Device) write(reg byte, data ...byte) error {
	if b, ok := d.bus.(drivers.I2C); ok {
		return b.WriteRegister(uint8(d.addr), reg, data)
	}
	w := append(d.w[:0], reg)
	w = append(w, data...)
	return d.bus.Tx(d.addr, w, nil)
}
