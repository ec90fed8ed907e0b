// Entry point for the loxlint Lox checker. It reports the syntax and resolution errors in a program without running
// it.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/loxlang/lox/golox/ast"
	"github.com/loxlang/lox/golox/lox"
	"github.com/loxlang/lox/golox/loxerr"
	"github.com/loxlang/lox/golox/resolver"
)

var (
	printHelp  = flag.Bool("help", false, "Print this message")
	showSource = flag.Bool("source", true, "Print the line of source code that each error applies to")
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: loxlint [flags] [path]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "If no path is provided, the file is read from stdin.")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Options:")
	flag.PrintDefaults()
}

func exitWithUsageErr(msg string) {
	fmt.Fprintf(os.Stderr, "error: %s\n\n", msg)
	flag.Usage()
	os.Exit(2)
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *printHelp {
		flag.Usage()
		os.Exit(0)
	}

	if len(flag.Args()) > 1 {
		exitWithUsageErr("at most one path can be provided")
	}

	src, err := read(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := check(src); err != nil {
		if *showSource {
			fmt.Fprintln(os.Stderr, loxerr.Excerpt(err, src))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func read(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// check returns the errors that would stop src from being run.
func check(src []byte) error {
	program, err := lox.ParseAST(src)
	if err != nil {
		return err
	}
	locals, err := resolver.Resolve(program)
	if err != nil {
		return err
	}
	local, global := countReferences(program, locals)
	logrus.WithFields(logrus.Fields{"phase": "resolve", "local": local, "global": global}).Debug("Counted variable references")
	return nil
}

// countReferences returns the number of variable references in program which were resolved to a local scope and the
// number which refer to globals.
func countReferences(program *ast.Program, locals resolver.Locals) (local, global int) {
	ast.Walk(program, func(node ast.Node) bool {
		expr, ok := node.(ast.Expr)
		if !ok {
			return true
		}
		switch expr.(type) {
		case *ast.VariableExpr, *ast.AssignmentExpr, *ast.ThisExpr, *ast.SuperExpr:
			if _, ok := locals.Distance(expr); ok {
				local++
			} else {
				global++
			}
		}
		return true
	})
	return local, global
}
