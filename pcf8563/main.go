package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cgxeiji/pcf8563"
)

func main() {
	cfgPath := flag.String("config", "", "YAML config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: pcf8563 [-config file.yaml] <command> [args]\n\n%sconsole                         interactive mode\n", usage)
	}
	flag.Parse()

	cfg, err := Load(*cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	rtc, err := pcf8563.Open(cfg.Bus, pcf8563.OnAddr(cfg.Address))
	if err != nil {
		log.Fatal(err)
	}
	defer rtc.Close()

	running, err := rtc.Begin(cfg.Speed(), cfg.Address)
	if err != nil {
		log.Fatal(err)
	}
	if !running {
		log.Printf("pcf8563: clock is stopped, run \"reset\" to start it")
	}

	if cfg.ClockOut != "" {
		v, _ := clockOutSetting(cfg.ClockOut)
		if err := rtc.SetClockOut(v); err != nil {
			log.Fatal(err)
		}
	}

	args := flag.Args()
	if len(args) == 0 {
		args = []string{"now"}
	}

	if args[0] == "console" {
		err = console(rtc, cfg, os.Stdin, os.Stdout)
	} else {
		err = run(rtc, cfg, os.Stdout, args)
	}
	if err != nil {
		rtc.Close()
		log.Fatal(err)
	}
}
