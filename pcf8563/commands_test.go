package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"periph.io/x/periph/conn/i2c/i2ctest"

	"github.com/cgxeiji/pcf8563"
	"github.com/cgxeiji/pcf8563/bcd"
)

// 2023-09-15 12:30:45, a Friday.
var clockRead = i2ctest.IO{
	Addr: pcf8563.Addr,
	W:    []byte{0x00},
	R:    []byte{0x00, 0x00, 0x45, 0x30, 0x12, 0x15, 0x05, 0x09, 0x23},
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		ops  []i2ctest.IO
		out  string
	}{{
		name: "now",
		args: []string{"now"},
		ops:  []i2ctest.IO{clockRead, clockRead},
		out:  "2023-09-15 12:30:45 Friday\n",
	}, {
		name: "epoch",
		args: []string{"epoch"},
		ops:  []i2ctest.IO{clockRead, clockRead},
		out:  "1694781045\n",
	}, {
		name: "status",
		args: []string{"status"},
		ops: []i2ctest.IO{
			{Addr: pcf8563.Addr, W: []byte{0x00}, R: []byte{0x00, pcf8563.CtrlAF}},
			{Addr: pcf8563.Addr, W: []byte{0x00}, R: []byte{0x00, pcf8563.CtrlAF}},
			{Addr: pcf8563.Addr, W: []byte{0x00}, R: []byte{0x00, pcf8563.CtrlAF}},
			{Addr: pcf8563.Addr, W: []byte{0x00}, R: []byte{0x00, 0x00, 0x80, 0x00, 0x00, 0x01, 0x06, 0x01, 0x00}},
		},
		out: "running: true\nalarm: true\ntimer: false\nvoltage-low: true\n",
	}, {
		name: "set unix",
		args: []string{"set", "1694781045"},
		ops:  []i2ctest.IO{{Addr: pcf8563.Addr, W: []byte{0x02, 0x45, 0x30, 0x12, 0x15, 0x05, 0x09, 0x23}}},
		out:  "set 2023-09-15 12:30:45\n",
	}, {
		name: "set RFC3339",
		args: []string{"set", "2023-09-15T21:30:45+09:00"},
		ops:  []i2ctest.IO{{Addr: pcf8563.Addr, W: []byte{0x02, 0x45, 0x30, 0x12, 0x15, 0x05, 0x09, 0x23}}},
		out:  "set 2023-09-15 12:30:45\n",
	}, {
		name: "set last year",
		args: []string{"set", "2199-12-31 23:59:59"},
		ops:  []i2ctest.IO{{Addr: pcf8563.Addr, W: []byte{0x02, 0x59, 0x59, 0x23, 0x31, 0x02, 0x92, 0x99}}},
		out:  "set 2199-12-31 23:59:59\n",
	}, {
		name: "set layout",
		args: []string{"set", "2023-09-15 12:30:45"},
		ops:  []i2ctest.IO{{Addr: pcf8563.Addr, W: []byte{0x02, 0x45, 0x30, 0x12, 0x15, 0x05, 0x09, 0x23}}},
		out:  "set 2023-09-15 12:30:45\n",
	}, {
		name: "reset",
		args: []string{"reset"},
		ops:  []i2ctest.IO{{Addr: pcf8563.Addr, W: []byte{0x00, 0x00, 0x00}}},
	}, {
		name: "alarm set",
		args: []string{"alarm", "set", "06:30"},
		ops:  []i2ctest.IO{{Addr: pcf8563.Addr, W: []byte{0x09, 0x30, 0x06, 0x80, 0x80}}},
	}, {
		name: "alarm get",
		args: []string{"alarm"},
		ops:  []i2ctest.IO{{Addr: pcf8563.Addr, W: []byte{0x09}, R: []byte{0x30, 0x06, 0x80, 0x80}}},
		out:  "day -- 06:30 weekday --\n",
	}, {
		name: "alarm on",
		args: []string{"alarm", "on"},
		ops: []i2ctest.IO{
			{Addr: pcf8563.Addr, W: []byte{0x00}, R: []byte{0x00, pcf8563.CtrlAF}},
			{Addr: pcf8563.Addr, W: []byte{0x01, pcf8563.CtrlAIE}},
		},
	}, {
		name: "timer set",
		args: []string{"timer", "set", "60s", "5"},
		ops:  []i2ctest.IO{{Addr: pcf8563.Addr, W: []byte{0x0E, 0x83, 0x05}}},
	}, {
		name: "timer get",
		args: []string{"timer", "get"},
		ops:  []i2ctest.IO{{Addr: pcf8563.Addr, W: []byte{0x0E}, R: []byte{0x82, 0x0A}}},
		out:  "control 0x82 count 10\n",
	}, {
		name: "clkout set",
		args: []string{"clkout", "set", "32kHz"},
		ops:  []i2ctest.IO{{Addr: pcf8563.Addr, W: []byte{0x0D, 0x80}}},
	}, {
		name: "clkout get",
		args: []string{"clkout"},
		ops:  []i2ctest.IO{{Addr: pcf8563.Addr, W: []byte{0x0D}, R: []byte{0x83}}},
		out:  "0x83\n",
	}, {
		name: "wait timer",
		args: []string{"wait", "timer"},
		ops:  []i2ctest.IO{{Addr: pcf8563.Addr, W: []byte{0x00}, R: []byte{0x00, pcf8563.CtrlTF}}},
		out:  "timer flag raised\n",
	}}

	c := qt.New(t)
	for _, test := range tests {
		c.Run(test.name, func(c *qt.C) {
			bus := &i2ctest.Playback{Ops: test.ops}
			var out bytes.Buffer
			err := run(pcf8563.New(bus), defaultConfig(), &out, test.args)
			c.Assert(err, qt.IsNil)
			c.Assert(out.String(), qt.Equals, test.out)
			c.Assert(bus.Close(), qt.IsNil)
		})
	}
}

func TestSetHost(t *testing.T) {
	c := qt.New(t)
	c.Patch(&now, func() time.Time {
		return time.Date(2023, time.September, 15, 12, 30, 45, 0, time.UTC)
	})
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{{Addr: pcf8563.Addr, W: []byte{0x02, 0x45, 0x30, 0x12, 0x15, 0x05, 0x09, 0x23}}},
	}
	var out bytes.Buffer
	c.Assert(run(pcf8563.New(bus), defaultConfig(), &out, []string{"set", "host"}), qt.IsNil)
	c.Assert(bus.Close(), qt.IsNil)
}

func TestSkewCommand(t *testing.T) {
	c := qt.New(t)
	c.Patch(&now, func() time.Time {
		return time.Date(2023, time.September, 15, 12, 30, 43, 0, time.UTC)
	})
	bus := &i2ctest.Playback{Ops: []i2ctest.IO{clockRead, clockRead}}
	var out bytes.Buffer
	c.Assert(run(pcf8563.New(bus), defaultConfig(), &out, []string{"skew"}), qt.IsNil)
	c.Assert(out.String(), qt.Equals, "offset 2s over 1 samples\n")
	c.Assert(bus.Close(), qt.IsNil)
}

func TestCommandErrors(t *testing.T) {
	c := qt.New(t)
	d := pcf8563.New(&i2ctest.Playback{})
	cfg := defaultConfig()
	var out bytes.Buffer

	c.Assert(run(d, cfg, &out, nil), qt.ErrorMatches, "invalid arguments")
	c.Assert(run(d, cfg, &out, []string{"fly"}), qt.ErrorMatches, `unknown command "fly"`)
	c.Assert(errors.Is(run(d, cfg, &out, []string{"set"}), errUsage), qt.Equals, true)
	c.Assert(errors.Is(run(d, cfg, &out, []string{"wait", "forever"}), errUsage), qt.Equals, true)
	c.Assert(errors.Is(run(d, cfg, &out, []string{"set", "2023-02-30 00:00:00"}), bcd.ErrInvalid), qt.Equals, true)
	c.Assert(run(d, cfg, &out, []string{"set", "1999-12-31 23:59:59"}), qt.ErrorMatches, `set: bcd: invalid value: year 1999 outside 2000-2199`)
	c.Assert(errors.Is(run(d, cfg, &out, []string{"set", "2200-01-01T00:00:00Z"}), bcd.ErrInvalid), qt.Equals, true)
	c.Assert(errors.Is(run(d, cfg, &out, []string{"set", "0"}), bcd.ErrInvalid), qt.Equals, true)
	c.Assert(run(d, cfg, &out, []string{"timer", "set", "2s", "1"}), qt.ErrorMatches, `timer: unknown timer setting "2s"`)
	c.Assert(out.Len(), qt.Equals, 0)
}

func TestConsole(t *testing.T) {
	c := qt.New(t)
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: pcf8563.Addr, W: []byte{0x0D, 0x83}},
			{Addr: pcf8563.Addr, W: []byte{0x0D}, R: []byte{0x83}},
		},
	}
	in := strings.NewReader("clkout set 1hz\n\n'clkout' get\nbogus\nconsole\nquit\nreset\n")
	var out bytes.Buffer

	c.Assert(console(pcf8563.New(bus), defaultConfig(), in, &out), qt.IsNil)
	c.Assert(out.String(), qt.Equals, strings.Join([]string{
		prompt,
		prompt,
		prompt + "0x83\n",
		prompt + "error: unknown command \"bogus\"\n",
		prompt + "error: already in console\n",
		prompt,
	}, ""))
	c.Assert(bus.Close(), qt.IsNil)
}
