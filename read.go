package main

import (
	"flag"
	"os"

	"github.com/BertoldVdb/rtd2142flash/fwimage"
	"github.com/retroenv/retrogolib/log"
)

func readCommand(args []string) {
	fs := flag.NewFlagSet("read", flag.ExitOnError)
	opts := registerCommonFlags(fs)
	var (
		outFile string
		raw     bool
	)
	fs.StringVar(&outFile, "o", "", "output file")
	fs.BoolVar(&raw, "raw", false, "store the bare flash contents without container header")
	fs.Parse(args)

	if outFile == "" {
		fatalUsage("output file is required")
	}

	logger := createLogger(opts.debug, opts.quiet)

	tasks, hal := openTasks(logger, opts)
	info := tasks.Probe()

	fw, err := tasks.FirmwareRead()

	if closeErr := hal.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		logger.Fatal("reading flash failed", log.Err(err))
	}

	if !raw {
		fw = fwimage.Build(fw, info.DeviceID)
	}

	if err := os.WriteFile(outFile, fw, 0644); err != nil {
		logger.Fatal("writing output file failed", log.Err(err))
	}
}
