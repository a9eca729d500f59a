package main

import (
	"flag"
	"fmt"

	"github.com/BertoldVdb/rtd2142flash/i2cbus"
)

func probeCommand(args []string) {
	fs := flag.NewFlagSet("probe", flag.ExitOnError)
	opts := registerCommonFlags(fs)
	fs.Parse(args)

	logger := createLogger(opts.debug, opts.quiet)

	tasks, hal := openTasks(logger, opts)
	info := tasks.Probe()
	hal.Close()

	fmt.Printf("%X\t%s\t%d kB\n", info.DeviceID, info.Name, info.ChipSize/1024)
}

func busesCommand(args []string) {
	fs := flag.NewFlagSet("buses", flag.ExitOnError)
	fs.Parse(args)

	buses, err := i2cbus.List()
	if err != nil {
		fatalf("%v", err)
	}

	for _, b := range buses {
		fmt.Printf("%d\t%s\n", b.Number, b.Name)
	}
}
