// Entry point for the golox interpreter.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/loxlang/lox/golox/ansi"
	"github.com/loxlang/lox/golox/ast"
	"github.com/loxlang/lox/golox/config"
	"github.com/loxlang/lox/golox/interpreter"
	"github.com/loxlang/lox/golox/lox"
	"github.com/loxlang/lox/golox/loxerr"
)

var (
	cmd         = flag.String("c", "", "Program passed in as string")
	printAST    = flag.Bool("p", false, "Print the AST only")
	printTokens = flag.Bool("t", false, "Print the tokens only")
	debug       = flag.Bool("debug", false, "Log each phase of execution to stderr")
	configPath  = flag.String("config", "", "Path to the configuration file (default $XDG_CONFIG_HOME/golox/config.yml)")

	cpuProfile = flag.String("cpuprofile", "", "Write a CPU profile to the specified file before exiting.")
	memProfile = flag.String("memprofile", "", "Write an allocation profile to the file before exiting.")
	traceFile  = flag.String("trace", "", "Write an execution trace to the specified file before exiting.")
)

// nolint:revive
func Usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: golox [options] [script]\n")
	fmt.Fprintf(flag.CommandLine.Output(), "\n")
	fmt.Fprintf(flag.CommandLine.Output(), "Options:\n")
	flag.PrintDefaults()
}

func main() {
	log.SetFlags(0)

	flag.Usage = Usage
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	configure(cfg)

	stopProfiling := startProfiling()
	code := runMain(cfg)
	stopProfiling()
	os.Exit(code)
}

func configure(cfg *config.Config) {
	configureColour(cfg.Colour, ansi.IsTerminal())

	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(cfg.Level())
	if *debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.WithField("config", *cfg).Debug("Loaded configuration")
}

// configureColour enables coloured output for both the REPL and error excerpts according to colour. isTerminal
// reports whether stdout and stderr are both terminals.
func configureColour(colour config.Colour, isTerminal bool) {
	switch colour {
	case config.ColourAlways:
		ansi.Enabled = true
	case config.ColourNever:
		ansi.Enabled = false
	case config.ColourAuto:
		ansi.Enabled = isTerminal
	}
	color.NoColor = !ansi.Enabled
}

func runMain(cfg *config.Config) int {
	if *cmd != "" {
		return runSource(cfg, []byte(*cmd), interpreter.New())
	}

	switch len(flag.Args()) {
	case 0:
		if err := runREPL(cfg); err != nil {
			log.Print(err)
			return 1
		}
		return 0
	case 1:
		src, err := os.ReadFile(flag.Arg(0))
		if err != nil {
			log.Print(err)
			return 1
		}
		return runSource(cfg, src, interpreter.New())
	default:
		flag.Usage()
		return 2
	}
}

// runSource runs src with interp, or prints its tokens or AST if requested, and returns the exit code.
func runSource(cfg *config.Config, src []byte, interp *interpreter.Interpreter) int {
	if err := run(src, interp); err != nil {
		printError(cfg, err, src)
		return 1
	}
	return 0
}

func run(src []byte, interp *interpreter.Interpreter) error {
	switch {
	case *printTokens:
		tokens, err := lox.Tokens(src)
		if err != nil {
			return err
		}
		for _, tok := range tokens {
			fmt.Println(tok)
		}
		return nil
	case *printAST:
		program, err := lox.ParseAST(src)
		if err != nil {
			return err
		}
		ast.Print(program)
		return nil
	default:
		return lox.Run(src, interp)
	}
}

func printError(cfg *config.Config, err error, src []byte) {
	if cfg.ShowSource {
		fmt.Fprintln(os.Stderr, loxerr.Excerpt(err, src))
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
}

func runREPL(cfg *config.Config) error {
	rlCfg := &readline.Config{
		Prompt:      cfg.Prompt,
		HistoryFile: cfg.HistoryFile,
	}
	if cfg.HistoryFile == "" {
		fmt.Fprintln(os.Stderr, "No history file configured. Command history will not be saved.")
	}

	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return fmt.Errorf("running Lox REPL: %s", err)
	}
	defer rl.Close()

	ansi.Fprintln(os.Stderr, "${BOLD}Welcome to Lox!${RESET_BOLD}")

	interp := interpreter.New(interpreter.REPLMode())
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				break
			}
			panic(fmt.Sprintf("unexpected error from readline: %s", err))
		}
		src := []byte(line)
		if err := run(src, interp); err != nil {
			printError(cfg, err, src)
		}
	}

	return nil
}

// startProfiling starts any profiling requested on the command line and returns a function which stops it.
func startProfiling() (stop func()) {
	var stops []func()
	stop = func() {
		for i := len(stops) - 1; i >= 0; i-- {
			stops[i]()
		}
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("failed to create CPU profile: %s", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("failed to start CPU profile: %s", err)
		}
		stops = append(stops, func() {
			pprof.StopCPUProfile()
			if err := f.Close(); err != nil {
				log.Fatalf("failed to close CPU profile: %s", err)
			}
		})
	}
	if *memProfile != "" {
		stops = append(stops, func() {
			f, err := os.Create(*memProfile)
			if err != nil {
				log.Fatalf("failed to create memory profile: %s", err)
			}
			defer func() {
				if err := f.Close(); err != nil {
					log.Fatalf("failed to close memory profile: %s", err)
				}
			}()
			runtime.GC()
			if err := pprof.WriteHeapProfile(f); err != nil {
				log.Fatalf("failed to write memory profile: %s", err)
			}
		})
	}
	if *traceFile != "" {
		f, err := os.Create(*traceFile)
		if err != nil {
			log.Fatalf("failed to create trace output file: %s", err)
		}
		if err := trace.Start(f); err != nil {
			log.Fatalf("failed to start trace: %s", err)
		}
		stops = append(stops, func() {
			trace.Stop()
			if err := f.Close(); err != nil {
				log.Fatalf("failed to close trace file: %s", err)
			}
		})
	}

	return stop
}
