package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"
)

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}

func fatalUsage(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(2)
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
	rtd2142flash <command> [arguments]

Commands:
	probe	 identify the flash chip behind the bridge
	read	 read the flash into a firmware image file
	write	 write a firmware image to the flash
	erase	 erase the whole flash chip
	buses	 list the available i2c adapters
`)
	os.Exit(2)
}

func createLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
	}

	switch cmd := flag.Arg(0); cmd {
	case "probe":
		probeCommand(flag.Args()[1:])
	case "read":
		readCommand(flag.Args()[1:])
	case "write":
		writeCommand(flag.Args()[1:])
	case "erase":
		eraseCommand(flag.Args()[1:])
	case "buses":
		busesCommand(flag.Args()[1:])
	case "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %q\n", cmd)
		usage()
	}
}
