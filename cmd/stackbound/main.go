// Copyright © 2019 mg
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package main

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/urfave/cli.v2"

	"github.com/haldorsen/stackbound/internal/analyzer"
	"github.com/haldorsen/stackbound/internal/arch"
	"github.com/haldorsen/stackbound/internal/disasm"
	"github.com/haldorsen/stackbound/internal/elfinfo"
	"github.com/haldorsen/stackbound/internal/logging"
)

type stderrLogger struct{}

func (stderrLogger) Log(msg string) { fmt.Fprintln(os.Stderr, "stackbound:", msg) }

func main() {
	app := &cli.App{
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "arch",
				Aliases: []string{"a"},
				Usage:   "architecture to decode as: arm, aarch64, x86, x86_64 (default: detected from the ELF header)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "report format: table or json",
				Value:   "table",
			},
			&cli.BoolFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "colorize the table report",
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "browse the call graph in a terminal UI instead of printing a report",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log progress to stderr",
			},
		},
		Name:    "stackbound",
		Usage:   "compute a worst-case stack usage bound for every function in an ELF binary",
		Version: "v0.1.0",
		Action:  run,
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	if err := app.Run(os.Args); err != nil {
		if ec, ok := err.(cli.ExitCoder); ok {
			os.Exit(ec.ExitCode())
		}
		fmt.Fprintln(os.Stderr, "stackbound:", err)
		os.Exit(exitInternalError)
	}
}

func run(c *cli.Context) error {
	if c.Bool("verbose") {
		logging.SetLogger(stderrLogger{})
		logging.SetLogEnable(true)
	}

	path := c.Args().First()
	if path == "" {
		cli.ShowAppHelp(c)
		return cli.Exit("a binary path is required", exitUsage)
	}

	bin, err := elfinfo.Open(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("opening %s: %v", path, err), exitInternalError)
	}
	defer bin.Close()

	isa, err := resolveISA(c, bin)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	logging.Logf("analyzing %s as %s", path, isa)

	text, textAddr, err := bin.Text()
	if err != nil {
		return cli.Exit(err.Error(), exitInternalError)
	}
	symbols, err := bin.Symbols()
	if err != nil {
		return cli.Exit(err.Error(), exitInternalError)
	}
	logging.Logf("%d function symbols, %d bytes of .text", symbols.Len(), len(text))

	sections, err := disasm.Disassemble(isa, text, textAddr, symbols)
	if err != nil {
		return cli.Exit(err.Error(), exitInternalError)
	}

	result, err := analyzer.Analyze(analyzer.Input{ISA: isa, Sections: sections, Symbols: symbols})
	if err != nil {
		return cli.Exit(err.Error(), exitInternalError)
	}

	if c.Bool("interactive") {
		return runInteractive(result)
	}

	switch c.String("format") {
	case "json":
		if err := writeJSON(os.Stdout, result); err != nil {
			return cli.Exit(err.Error(), exitInternalError)
		}
	default:
		writeTable(os.Stdout, result, c.Bool("color"))
	}

	return cli.Exit("", exitCodeFor(result.Diagnostics))
}

func resolveISA(c *cli.Context, bin *elfinfo.Binary) (arch.ISA, error) {
	if tag := c.String("arch"); tag != "" {
		return arch.ParseISA(tag)
	}
	return bin.ISA()
}
