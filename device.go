package main

import (
	"flag"
	"fmt"

	"github.com/BertoldVdb/rtd2142flash/i2cbus"
	"github.com/BertoldVdb/rtd2142flash/msthal"
	"github.com/BertoldVdb/rtd2142flash/msttasks"
	"github.com/retroenv/retrogolib/log"
)

type commonFlags struct {
	bus    string
	periph bool
	debug  bool
	quiet  bool
}

func registerCommonFlags(fs *flag.FlagSet) *commonFlags {
	c := &commonFlags{}
	fs.StringVar(&c.bus, "bus", "", "number of the i2c bus the bridge is attached to")
	fs.BoolVar(&c.periph, "periph", false, "access the bus through the periph.io host drivers")
	fs.BoolVar(&c.debug, "debug", false, "log register level traffic")
	fs.BoolVar(&c.quiet, "q", false, "perform operations quietly")
	return c
}

func openTasks(logger *log.Logger, c *commonFlags) (*msttasks.MSTTasks, *msthal.MSTHal) {
	bus, err := msthal.ParseBus(c.bus)
	if err != nil {
		fatalUsage("%v", err)
	}

	var dev msthal.Bus
	if c.periph {
		dev, err = i2cbus.OpenPeriph(bus, msthal.DeviceAddr)
	} else {
		dev, err = i2cbus.Open(bus, msthal.DeviceAddr)
	}
	if err != nil {
		logger.Fatal("could not open i2c bus", log.Int("bus", bus), log.Err(err))
	}

	logger.Info("Using i2c bus", log.Int("bus", bus))

	hal, err := msthal.New(dev)
	if err != nil {
		dev.Close()
		logger.Fatal("could not enter programming mode", log.Err(err))
	}

	if c.debug {
		hal.LogFunc = func(format string, params ...any) {
			logger.Debug(fmt.Sprintf(format, params...))
		}
	}

	tasks, err := msttasks.New(hal)
	if err != nil {
		hal.Close()
		logger.Fatal("could not identify flash chip", log.Err(err))
	}

	if !c.quiet {
		tasks.ProgressFunc = printProgress
	}

	return tasks, hal
}

func printProgress(stage string, done, total int) {
	fmt.Printf("\r%s: %d/%d", stage, done, total)
	if done >= total {
		fmt.Println()
	}
}
