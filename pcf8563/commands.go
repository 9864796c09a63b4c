package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/cgxeiji/pcf8563"
	"github.com/cgxeiji/pcf8563/bcd"
)

const usage = `commands:
  status                          running, alarm and timer flags, voltage-low
  now                             current date and time
  epoch                           current Unix seconds
  set <RFC3339|unix|host|"Y-M-D h:m:s">
                                  set the clock (UTC)
  reset                           clear the control/status registers
  alarm [get|set HH:MM|on|off]    daily alarm
  timer [get|set <freq> <n>|on|off]
                                  countdown timer (freq: 4khz, 64hz, 1s, 60s, off)
  clkout [get|set <freq>]         CLKOUT pin (freq: 32khz, 1khz, 32hz, 1hz, off)
  wait <alarm|timer>              block until the flag is raised
  skew <samples>                  offset against the host clock
`

var errUsage = errors.New("invalid arguments")

// now is replaced in tests.
var now = time.Now

type command func(d *pcf8563.Device, cfg *Config, out io.Writer, args []string) error

var commands = map[string]command{
	"status": cmdStatus,
	"now":    cmdNow,
	"epoch":  cmdEpoch,
	"set":    cmdSet,
	"reset":  cmdReset,
	"alarm":  cmdAlarm,
	"timer":  cmdTimer,
	"clkout": cmdClockOut,
	"wait":   cmdWait,
	"skew":   cmdSkew,
	"help": func(_ *pcf8563.Device, _ *Config, out io.Writer, _ []string) error {
		fmt.Fprint(out, usage)
		return nil
	},
}

func run(d *pcf8563.Device, cfg *Config, out io.Writer, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q", args[0])
	}
	if err := cmd(d, cfg, out, args[1:]); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return nil
}

func cmdStatus(d *pcf8563.Device, _ *Config, out io.Writer, _ []string) error {
	running, err := d.IsRunning()
	if err != nil {
		return err
	}
	alarm, err := d.IsAlarm()
	if err != nil {
		return err
	}
	timer, err := d.IsTimer()
	if err != nil {
		return err
	}
	if _, err := d.Now(false); err != nil {
		return err
	}
	fmt.Fprintf(out, "running: %v\nalarm: %v\ntimer: %v\nvoltage-low: %v\n",
		running, alarm, timer, d.LowVoltage())
	return nil
}

func cmdNow(d *pcf8563.Device, _ *Config, out io.Writer, _ []string) error {
	dt, err := d.Now(true)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%v %v\n", dt, dt.Date.Weekday())
	return nil
}

func cmdEpoch(d *pcf8563.Device, _ *Config, out io.Writer, _ []string) error {
	sec, err := d.Epoch(true)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, sec)
	return nil
}

func cmdSet(d *pcf8563.Device, _ *Config, out io.Writer, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	var dt bcd.DateTime
	if args[0] == "host" {
		dt = bcd.FromTime(now())
	} else if sec, err := strconv.ParseInt(args[0], 10, 64); err == nil {
		dt = bcd.FromEpoch(sec)
	} else if t, err := time.Parse(time.RFC3339, args[0]); err == nil {
		dt = bcd.FromTime(t)
	} else if dt, err = bcd.Parse(args[0]); err != nil {
		return err
	}
	if !dt.Date.InRange() {
		return fmt.Errorf("%w: year %d outside %d-%d", bcd.ErrInvalid, dt.Date.Year(), bcd.FirstYear, bcd.LastYear)
	}

	if err := d.Adjust(dt); err != nil {
		return err
	}
	fmt.Fprintf(out, "set %v\n", dt)
	return nil
}

func cmdReset(d *pcf8563.Device, _ *Config, _ io.Writer, _ []string) error {
	return d.Reset()
}

func cmdAlarm(d *pcf8563.Device, _ *Config, out io.Writer, args []string) error {
	if len(args) == 0 {
		args = []string{"get"}
	}
	switch args[0] {
	case "get":
		a, err := d.Alarm()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, a)
		return nil
	case "set":
		if len(args) != 2 {
			return errUsage
		}
		t, err := time.Parse("15:04", args[1])
		if err != nil {
			return err
		}
		return d.SetAlarm(pcf8563.AlarmAt(t.Hour(), t.Minute()))
	case "on":
		return d.ActiveAlarm(true)
	case "off":
		return d.ActiveAlarm(false)
	}
	return errUsage
}

func cmdTimer(d *pcf8563.Device, _ *Config, out io.Writer, args []string) error {
	if len(args) == 0 {
		args = []string{"get"}
	}
	switch args[0] {
	case "get":
		v, err := d.Timer()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "control %#02x count %d\n", v>>8, v&0xFF)
		return nil
	case "set":
		if len(args) != 3 {
			return errUsage
		}
		ctrl, err := timerSetting(args[1])
		if err != nil {
			return err
		}
		n, err := strconv.ParseUint(args[2], 10, 8)
		if err != nil {
			return err
		}
		return d.SetTimer(ctrl | uint16(n))
	case "on":
		return d.ActiveTimer(true)
	case "off":
		return d.ActiveTimer(false)
	}
	return errUsage
}

func cmdClockOut(d *pcf8563.Device, _ *Config, out io.Writer, args []string) error {
	if len(args) == 0 {
		args = []string{"get"}
	}
	switch args[0] {
	case "get":
		v, err := d.ClockOut()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%#02x\n", v)
		return nil
	case "set":
		if len(args) != 2 {
			return errUsage
		}
		v, err := clockOutSetting(args[1])
		if err != nil {
			return err
		}
		return d.SetClockOut(v)
	}
	return errUsage
}

func cmdWait(d *pcf8563.Device, cfg *Config, out io.Writer, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.WaitTimeout())
	defer cancel()

	var err error
	switch args[0] {
	case "alarm":
		err = d.WaitAlarm(ctx, cfg.PollInterval())
	case "timer":
		err = d.WaitTimer(ctx, cfg.PollInterval())
	default:
		return errUsage
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s flag raised\n", args[0])
	return nil
}

func cmdSkew(d *pcf8563.Device, cfg *Config, out io.Writer, args []string) error {
	samples := 1
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return errUsage
		}
		samples = n
	}

	var s pcf8563.Skew
	for i := 0; i < samples; i++ {
		if i > 0 {
			time.Sleep(cfg.PollInterval())
		}
		off, err := d.Offset(now())
		if err != nil {
			return err
		}
		s.Add(off)
	}
	fmt.Fprintf(out, "offset %v over %d samples\n", s.Offset(), s.Samples())
	return nil
}
