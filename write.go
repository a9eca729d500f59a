package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/BertoldVdb/rtd2142flash/fwimage"
	"github.com/retroenv/retrogolib/log"
)

func writeCommand(args []string) {
	fs := flag.NewFlagSet("write", flag.ExitOnError)
	opts := registerCommonFlags(fs)
	var (
		inFile string
		verify bool
	)
	fs.StringVar(&inFile, "f", "", "input file")
	fs.BoolVar(&verify, "verify", true, "read back the flash contents after writing")
	fs.Parse(args)

	if inFile == "" {
		fatalUsage("input file is required")
	}

	image, err := os.ReadFile(inFile)
	if err != nil {
		fatalf("failed to open file: %v", err)
	}

	fw, id, err := fwimage.Extract(image)
	if err != nil {
		fatalf("invalid firmware image: %v", err)
	}

	logger := createLogger(opts.debug, opts.quiet)

	tasks, hal := openTasks(logger, opts)
	info := tasks.Probe()

	var zero [3]byte
	if id != zero && id != info.DeviceID {
		hal.Close()
		logger.Fatal("firmware image is for a different flash type",
			log.String("image", fmt.Sprintf("%X", id)),
			log.String("chip", fmt.Sprintf("%X", info.DeviceID)))
	}

	err = tasks.FirmwareWrite(fw, verify)

	if closeErr := hal.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		logger.Fatal("writing flash failed", log.Err(err))
	}
}

func eraseCommand(args []string) {
	fs := flag.NewFlagSet("erase", flag.ExitOnError)
	opts := registerCommonFlags(fs)
	fs.Parse(args)

	logger := createLogger(opts.debug, opts.quiet)

	tasks, hal := openTasks(logger, opts)

	err := tasks.EraseChip()

	if closeErr := hal.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		logger.Fatal("erasing flash failed", log.Err(err))
	}
}
