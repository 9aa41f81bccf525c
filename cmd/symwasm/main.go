// Package main provides the symwasm command line interface: it hosts the
// engine wasm binary and dispatches one entry point per invocation.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/symwasm/symwasm/calc"
	"github.com/symwasm/symwasm/config"
	engine "github.com/symwasm/symwasm/infrastructure/wazero"
	"github.com/symwasm/symwasm/log"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "symwasm:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("symwasm", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to the YAML configuration file")
	wasmPath := fs.String("wasm", "", "path to the engine wasm binary (overrides config)")
	logLevel := fs.String("log-level", "", "debug, info, warn or error (overrides config)")
	list := fs.Bool("list", false, "list entry points and exit")
	manifest := fs.Bool("manifest", false, "print the entry point manifest as JSON and exit")
	schema := fs.Bool("schema", false, "print the manifest JSON schema and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: symwasm [flags] <op> [arg ...]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *schema {
		out, err := calc.ManifestSchema()
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, string(out))
		return nil
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			return err
		}
	}
	if *wasmPath != "" {
		cfg.Engine.WasmPath = *wasmPath
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	level, err := log.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	logger := log.New(
		log.WithLevel(level),
		log.WithFormat(log.Format(cfg.Logging.Format)),
		log.WithSource(cfg.Logging.Source),
		log.WithWriter(stderr),
	)

	// Listing and the manifest describe the surface only; no engine needed.
	if *list || *manifest {
		reg, err := calc.NewRegistry(nil, calc.WithEvalBits(cfg.Calc.EvalBits))
		if err != nil {
			return err
		}
		if *manifest {
			out, err := reg.ManifestJSON()
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, string(out))
			return nil
		}
		for _, name := range reg.Names() {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return fmt.Errorf("no entry point named; try -list")
	}
	if cfg.Engine.WasmPath == "" {
		return fmt.Errorf("no engine binary; pass -wasm or set engine.wasm_path")
	}

	wasm, err := os.ReadFile(cfg.Engine.WasmPath)
	if err != nil {
		return fmt.Errorf("reading engine binary: %w", err)
	}

	eng, err := engine.NewEngine(ctx, wasm,
		engine.WithModuleName(cfg.Engine.ModuleName),
		engine.WithStartFunction(cfg.Engine.StartFunction),
		engine.WithMaxHeapBytes(cfg.Engine.MaxHeapBytes),
		engine.WithMemoryLimitPages(cfg.Engine.MemoryLimitPages),
		engine.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer eng.Close(ctx)

	reg, err := calc.NewRegistry(eng,
		calc.WithEvalBits(cfg.Calc.EvalBits),
		calc.WithMiddleware(calc.PanicRecoveryMiddleware(), calc.LoggingMiddleware(logger)),
	)
	if err != nil {
		return err
	}

	out, err := reg.Call(ctx, rest[0], rest[1:]...)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, out)
	return nil
}
