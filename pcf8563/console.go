package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/google/shlex"

	"github.com/cgxeiji/pcf8563"
)

const prompt = "rtc> "

// console reads commands from in until EOF or "quit". Command errors are
// printed and do not end the session.
func console(d *pcf8563.Device, cfg *Config, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	fmt.Fprint(out, prompt)
	for sc.Scan() {
		args, err := shlex.Split(sc.Text())
		switch {
		case err != nil:
			fmt.Fprintf(out, "error: %v\n", err)
		case len(args) == 0:
		case args[0] == "quit" || args[0] == "exit":
			return nil
		case args[0] == "console":
			fmt.Fprintln(out, "error: already in console")
		default:
			if err := run(d, cfg, out, args); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		}
		fmt.Fprint(out, prompt)
	}
	return sc.Err()
}
