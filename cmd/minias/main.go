// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/tebeka/atexit"

	"github.com/ezrec/minivm/cpu"
)

func fatal(err error) {
	log.Printf("%v: %v", os.Args[0], err)
	atexit.Exit(1)
}

func main() {
	var verbose bool

	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %v [-v] input.asm output.bin\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		atexit.Exit(2)
	}

	source := flag.Arg(0)
	target := flag.Arg(1)

	inf, err := os.Open(source)
	if err != nil {
		fatal(err)
	}

	asm := &cpu.Assembler{Verbose: verbose}
	prog, err := asm.Parse(inf)
	inf.Close()
	if err != nil {
		fatal(errors.Wrap(err, source))
	}

	image := prog.Binary()
	err = os.WriteFile(target, image, 0o644)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("%d bytes written to %v\n", len(image), target)

	atexit.Exit(0)
}
