// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/tebeka/atexit"

	"github.com/ezrec/minivm/emulator"
	"github.com/ezrec/minivm/internal/config"
	"github.com/ezrec/minivm/monitor"
	"github.com/ezrec/minivm/translate"
)

var f = translate.From

var (
	ErrSource = errors.New(f("exactly one of -c or -b is required"))
	ErrFill   = errors.New(f("fill must be a byte value"))
)

// options are the command line settings that are not in the configuration.
type options struct {
	compile string // Assembly source to run.
	binary  string // Binary image to run.
	monitor bool   // Run under the monitor.
}

// parseArgs parses the command line, and merges it over the configuration
// file named by -config. Flags set on the command line take precedence.
func parseArgs(name string, args []string) (opts options, cfg *config.Config, err error) {
	var configPath string
	var input string
	var output string
	var verbose bool
	var registers bool
	var fill uint
	var maxTicks int

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&opts.compile, "c", "", ".asm file to assemble and run")
	fs.StringVar(&opts.binary, "b", "", ".bin image to run")
	fs.BoolVar(&opts.monitor, "m", false, "Run under the monitor")
	fs.StringVar(&configPath, "config", "", ".toml configuration file")
	fs.StringVar(&input, "i", "-", "Console input")
	fs.StringVar(&output, "o", "-", "Console output")
	fs.BoolVar(&verbose, "v", false, "Verbose mode")
	fs.BoolVar(&registers, "r", false, "Print the registers on exit")
	fs.UintVar(&fill, "fill", 0, "Memory fill byte")
	fs.IntVar(&maxTicks, "max-ticks", 0, "Tick limit, 0 is unlimited")

	err = fs.Parse(args)
	if err != nil {
		return
	}

	if fs.NArg() != 0 {
		err = errors.Errorf("unknown arguments: %v", fs.Args())
		return
	}

	if (len(opts.compile) == 0) == (len(opts.binary) == 0) {
		err = ErrSource
		return
	}

	cfg = config.Default()
	if len(configPath) != 0 {
		cfg, err = config.Load(configPath)
		if err != nil {
			return
		}
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "i":
			cfg.Input = input
		case "o":
			cfg.Output = output
		case "v":
			cfg.Verbose = verbose
		case "r":
			cfg.Registers = registers
		case "max-ticks":
			cfg.MaxTicks = maxTicks
		case "fill":
			if fill > 0xff {
				err = errors.Wrapf(ErrFill, "-fill %v", fill)
			}
			cfg.Fill = uint8(fill)
		}
	})

	return
}

// closers closes files at exit, since atexit.Exit skips deferred calls.
type closers []io.Closer

func (cl *closers) add(c io.Closer) {
	*cl = append(*cl, c)
}

// Close closes everything added, most recent first.
func (cl *closers) Close() {
	for n := len(*cl) - 1; n >= 0; n-- {
		(*cl)[n].Close()
	}
	*cl = nil
}

// reportLoad prints the size of the loaded image.
func reportLoad(w io.Writer, size int) {
	fmt.Fprintf(w, "loaded %d bytes into memory\n", size)
}

func fatal(err error) {
	log.Printf("%v: %v", os.Args[0], err)
	atexit.Exit(1)
}

func main() {
	opts, cfg, err := parseArgs(os.Args[0], os.Args[1:])
	if err == flag.ErrHelp {
		atexit.Exit(0)
	}
	if err != nil {
		fatal(err)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = cfg.Verbose
	emu.Cpu.Fill = cfg.Fill
	emu.MaxTicks = cfg.MaxTicks

	// Load a program or an image.
	if len(opts.compile) != 0 {
		inf, err := os.Open(opts.compile)
		if err != nil {
			fatal(err)
		}
		err = emu.Assemble(inf)
		inf.Close()
		if err != nil {
			fatal(errors.Wrap(err, opts.compile))
		}
	} else {
		emu.Image, err = os.ReadFile(opts.binary)
		if err != nil {
			fatal(err)
		}
	}

	var files closers
	atexit.Register(files.Close)

	var stdout io.Writer = os.Stdout

	switch {
	case cfg.Input != "-":
		inf, err := os.Open(cfg.Input)
		if err != nil {
			fatal(err)
		}
		files.add(inf)
		emu.Console.Input = inf
	case opts.monitor:
		// Standard input belongs to the monitor.
	default:
		rt, err := openRawTerminal(os.Stdin)
		if err != nil {
			fatal(err)
		}
		if rt != nil {
			emu.Console.Input = &keyReader{Reader: os.Stdin}
			stdout = crlfWriter{Writer: os.Stdout}
		} else {
			emu.Console.Input = os.Stdin
		}
	}

	if cfg.Output == "-" {
		emu.Console.Output = stdout
	} else {
		ouf, err := os.Create(cfg.Output)
		if err != nil {
			fatal(err)
		}
		files.add(ouf)
		emu.Console.Output = ouf
	}

	err = emu.Reset()
	if err != nil {
		fatal(err)
	}
	reportLoad(os.Stderr, emu.Loaded)

	if opts.monitor {
		mon := monitor.NewMonitor(emu, os.Stdout)
		mon.HistoryFile = monitor.HistoryPath()
		err = mon.Run()
	} else {
		err = emu.Run()
	}

	if cfg.Registers {
		fmt.Fprintln(os.Stderr, monitor.RegisterTable(emu.Cpu))
	}

	if err != nil {
		fatal(err)
	}

	atexit.Exit(0)
}
