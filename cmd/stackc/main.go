// stackc - postfix expression to stack bytecode translator
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/reend/vm-stack/compiler"
	"github.com/reend/vm-stack/config"
	"github.com/reend/vm-stack/pkg/bytecode"
)

var log = commonlog.GetLogger("stackc")

var (
	output  = flag.String("o", "", "output bytecode path (default: build.output from stackvm.toml, else out.bin)")
	listing = flag.Bool("S", false, "print a disassembly listing to stdout instead of writing bytecode")
	verbose = flag.Bool("v", false, "verbose output")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "stackc - postfix expression to stack bytecode translator\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  stackc [options] source\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  stackc expr.sv              # translate to out.bin\n")
		fmt.Fprintf(os.Stderr, "  stackc -o prog.bin expr.sv  # translate to prog.bin\n")
		fmt.Fprintf(os.Stderr, "  stackc -S expr.sv           # print disassembly, write nothing\n")
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
	sourcePath := flag.Arg(0)

	cfg, err := config.Load(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	source, err := os.ReadFile(sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The whole stream is translated into memory first; on any error no
	// output file is written, not even partially.
	data, err := compiler.Compile(string(source))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", sourcePath, err)
		os.Exit(1)
	}

	if *listing {
		text, err := bytecode.DisassembleBytes(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(text)
		return
	}

	outPath := *output
	if outPath == "" {
		outPath = cfg.Build.Output
	}

	if err := os.WriteFile(outPath, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log.Infof("wrote %d bytes (%d instructions) to %s", len(data), len(data)/bytecode.WordSize, outPath)
}
