package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"chip8asm/pkg/asm"
	"chip8asm/pkg/config"
	"chip8asm/pkg/utils"
)

var version = "0.4.0"

func main() {
	cmd, err := newRootCmd(os.Stdout, os.Stderr)
	if err == nil {
		err = cmd.Execute()
	}
	if err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func newRootCmd(stdout, stderr io.Writer) (*cobra.Command, error) {
	opts, err := config.FromEnvironment()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return nil, err
	}

	var quiet, verbose, debug, showLicense bool
	cmd := &cobra.Command{
		Use:   "chip8asm [flags] FILE [-]",
		Short: "Assemble CHIP-8 source into a binary image",
		Long: `chip8asm assembles one CHIP-8 source file into a raw image meant to be
loaded at 0x200. Pass "-" after the file name (or --hex) to print the
image as hex on standard output instead of writing a file.`,
		Version:      version,
		Args:         cobra.MaximumNArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showLicense {
				fmt.Fprint(stdout, licenseText)
				return nil
			}
			for _, arg := range args {
				if arg == config.HexStdout {
					opts.HexOutput = true
					continue
				}
				if opts.InputPath != "" {
					return errors.New("multiple input files specified")
				}
				opts.InputPath = arg
			}
			switch {
			case debug:
				opts.Verbosity = config.Debug
			case verbose:
				opts.Verbosity = config.Verbose
			case quiet:
				opts.Verbosity = config.Quiet
			}
			if err := opts.Validate(); err != nil {
				return err
			}
			return run(opts, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVarP(&opts.OutputPath, "output", "o", opts.OutputPath, "write output to the specified file")
	f.BoolVar(&opts.HexOutput, "hex", false, "print the image to stdout in hexadecimal")
	f.BoolVarP(&quiet, "quiet", "q", false, "only report warnings and errors (default)")
	f.BoolVarP(&verbose, "verbose", "V", false, "be verbose")
	f.BoolVarP(&debug, "debug", "d", false, "print debug messages")
	f.BoolVar(&opts.Symbols, "symbols", false, "print the symbol table")
	f.StringVar(&opts.SymbolsFile, "symbols-file", "", "write the symbol table to a YAML file")
	f.BoolVar(&opts.Listing, "listing", false, "print an assembly listing")
	f.BoolVar(&opts.Dump, "dump", false, "dump the parsed instruction stream")
	f.BoolVarP(&showLicense, "license", "l", false, "print the license and exit")
	f.StringVar((*string)(&opts.LogFormat), "log-format", string(opts.LogFormat), "log format: text or json")
	cmd.SetVersionTemplate("chip8asm version {{.Version}}\n\nUse the --license option to see the license.\n")
	return cmd, nil
}

func run(opts config.Options, stdout, stderr io.Writer) error {
	logger := opts.NewLogger(stderr)

	fullPath, _, err := utils.GetPathInfo(opts.InputPath)
	if err != nil {
		return report(logger, err)
	}
	source, err := utils.ReadSource(fullPath)
	if err != nil {
		return report(logger, err)
	}
	logger.Info("assembling", "input", fullPath)
	finished := false

	res, err := asm.NewAssembler().
		WithFile(opts.InputPath).
		WithLogger(logger).
		WithReporter(asm.NewDiagnostics(logger)).
		Assemble(source)
	if err != nil {
		return report(logger, err)
	}

	if opts.Dump {
		printer := pp.New()
		printer.SetOutput(stderr)
		printer.SetColoringEnabled(false)
		printer.Println(res.Program.Instructions)
	}

	if opts.HexOutput {
		if err := utils.HexDump(stdout, res.Image); err != nil {
			return report(logger, err)
		}
	} else {
		if err := utils.WriteImage(opts.OutputPath, res.Image); err != nil {
			return report(logger, err)
		}
		// A failure after this point must not leave a stale image behind.
		written := opts.OutputPath
		atexit.Register(func() {
			if !finished {
				logger.Warn("removing incomplete output", "path", written)
				os.Remove(written)
			}
		})
		fmt.Fprintf(stdout, "assembled %d bytes -> %s\n", len(res.Image), opts.OutputPath)
	}

	if opts.Listing {
		fmt.Fprintln(stdout, asm.Listing(res, source))
	}
	if opts.Symbols {
		fmt.Fprintln(stdout, asm.SymbolTable(res.Labels))
	}
	if opts.SymbolsFile != "" {
		if err := writeSymbolsFile(opts.SymbolsFile, res.Labels); err != nil {
			return report(logger, err)
		}
	}

	finished = true
	logger.Info("done", "bytes", len(res.Image), "warnings", len(res.Warnings))
	return nil
}

func writeSymbolsFile(path string, labels *asm.LabelTable) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create symbols file %q: %w", path, err)
	}
	if err := utils.WriteSymbols(f, labels.Map()); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// report logs err with its fault kind. Printing is left to cobra.
func report(logger *slog.Logger, err error) error {
	var fault *asm.Fault
	if errors.As(err, &fault) {
		logger.Debug("assembly failed", "kind", fault.Kind.String(), "file", fault.File, "line", fault.Line)
	}
	return err
}
