// stackvm - stack bytecode interpreter
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/reend/vm-stack/config"
	"github.com/reend/vm-stack/pkg/bytecode"
)

var log = commonlog.GetLogger("stackvm")

var (
	configPath = flag.String("c", "", "path to a stackvm.toml (default: ./stackvm.toml if present)")
	memWords   = flag.Int("mem", 0, "memory size in words (overrides configuration)")
	verbose    = flag.Bool("v", false, "verbose output")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "stackvm - stack bytecode interpreter\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  stackvm [options] program.bin\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verbose {
		commonlog.Configure(1, nil)
	} else {
		commonlog.Configure(0, nil)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	programPath := flag.Arg(0)

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	memory := cfg.Machine.MemoryWords
	if *memWords > 0 {
		memory = *memWords
	}

	// The whole file is read before any machine state is constructed.
	data, err := os.ReadFile(programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	machine, err := bytecode.LoadWithMemory(data, memory)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", programPath, err)
		os.Exit(1)
	}
	if cfg.Machine.Trace {
		machine.Trace = os.Stdout
	}

	log.Infof("loaded %d instructions at origin %d (memory %d words)",
		len(data)/bytecode.WordSize, bytecode.Origin, memory)

	if err := machine.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Without the trace the final value would otherwise be unobservable.
	if machine.Trace == nil {
		if v, ok := machine.Result(); ok {
			fmt.Printf("tos: %d\n", v)
		} else {
			fmt.Println("tos: <empty>")
		}
	}
}
