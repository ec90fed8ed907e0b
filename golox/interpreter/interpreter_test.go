package interpreter_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/loxlang/lox/golox/interpreter"
	"github.com/loxlang/lox/golox/loxerr"
	"github.com/loxlang/lox/golox/parser"
	"github.com/loxlang/lox/golox/resolver"
	"github.com/loxlang/lox/golox/scanner"
)

// run scans, parses, resolves and interprets src with interp and returns the runtime error, if any. Any error before
// interpretation fails the test.
func run(t *testing.T, interp *interpreter.Interpreter, src string) error {
	t.Helper()
	tokens, err := scanner.Scan([]byte(src))
	if err != nil {
		t.Fatalf("Scan(%q) returned unexpected error: %s", src, err)
	}
	program, err := parser.Parse(tokens)
	if err != nil {
		t.Fatalf("Parse(%q) returned unexpected error: %s", src, err)
	}
	locals, err := resolver.Resolve(program)
	if err != nil {
		t.Fatalf("Resolve(%q) returned unexpected error: %s", src, err)
	}
	return interp.Interpret(program, locals)
}

func TestInterpret(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "arithmetic precedence",
			src:  "print 1 + 2 * 3;",
			want: "7\n",
		},
		{
			name: "number formatting",
			src:  "print 2.5; print 10 / 4; print -0; print 1 / 3;",
			want: "2.5\n2.5\n-0\n0.3333333333333333\n",
		},
		{
			name: "string concatenation",
			src:  `print "foo" + "bar";`,
			want: "foobar\n",
		},
		{
			name: "zero divided by zero is NaN",
			src:  "var n = 0 / 0; print n; print n == n; print n != n;",
			want: "NaN\nfalse\ntrue\n",
		},
		{
			name: "equality",
			src:  `print nil == nil; print 1 == "1"; print "a" == "a"; print true != false;`,
			want: "true\nfalse\ntrue\ntrue\n",
		},
		{
			name: "truthiness",
			src:  `print !nil; print !0; print !""; print !false;`,
			want: "true\nfalse\nfalse\ntrue\n",
		},
		{
			name: "logical operators return operands",
			src:  `print nil or "yes"; print 1 and 2; print false and unknown;`,
			want: "yes\n2\nfalse\n",
		},
		{
			name: "variables and shadowing",
			src: `
				var a = "global";
				{
				  var a = "outer";
				  {
				    var a = "inner";
				    print a;
				  }
				  print a;
				}
				print a;
			`,
			want: "inner\nouter\nglobal\n",
		},
		{
			name: "uninitialised variable is nil",
			src:  "var a; print a;",
			want: "nil\n",
		},
		{
			name: "while and for",
			src:  "var i = 0; while (i < 2) { print i; i = i + 1; } for (var j = 0; j < 2; j = j + 1) print j;",
			want: "0\n1\n0\n1\n",
		},
		{
			name: "closure counter",
			src: `
				fun makeCounter() {
				  var i = 0;
				  fun count() {
				    i = i + 1;
				    print i;
				  }
				  return count;
				}
				var counter = makeCounter();
				counter();
				counter();
			`,
			want: "1\n2\n",
		},
		{
			name: "closures capture declaration scope",
			src: `
				var a = "global";
				{
				  fun show() { print a; }
				  show();
				  var a = "block";
				  show();
				}
			`,
			want: "global\nglobal\n",
		},
		{
			name: "recursion",
			src:  "fun fib(n) { if (n < 2) return n; return fib(n - 2) + fib(n - 1); } print fib(10);",
			want: "55\n",
		},
		{
			name: "function without return yields nil",
			src:  "fun f() {} print f();",
			want: "nil\n",
		},
		{
			name: "printing callables",
			src:  "fun f() {} class C {} print f; print clock; print C; print C();",
			want: "<fn f>\n<native fn>\nC\nC instance\n",
		},
		{
			name: "instances compare by identity",
			src:  "class C {} var a = C(); var b = C(); print a == b; print a == a;",
			want: "false\ntrue\n",
		},
		{
			name: "fields and methods",
			src: `
				class Point {
				  init(x, y) {
				    this.x = x;
				    this.y = y;
				  }
				  sum() { return this.x + this.y; }
				}
				var p = Point(1, 2);
				print p.sum();
				p.x = 10;
				print p.sum();
				var sum = p.sum;
				print sum();
			`,
			want: "3\n12\n12\n",
		},
		{
			name: "initialiser returns this",
			src: `
				class C {
				  init() { this.n = 1; return; }
				}
				var c = C();
				print c.init() == c;
			`,
			want: "true\n",
		},
		{
			name: "inheritance and super",
			src: `
				class A {
				  method() { return "A method"; }
				  greet() { return "hi from " + this.name(); }
				  name() { return "A"; }
				}
				class B < A {
				  method() { return "B then " + super.method(); }
				  name() { return "B"; }
				}
				var b = B();
				print b.method();
				print b.greet();
			`,
			want: "B then A method\nhi from B\n",
		},
		{
			name: "class arity is initialiser arity",
			src:  "class A { init(a, b) {} } class B < A {} print B(1, 2);",
			want: "B instance\n",
		},
		{
			name: "clock returns a number",
			src:  "print clock() > 0;",
			want: "true\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			stdout := &bytes.Buffer{}
			interp := interpreter.New(interpreter.WithStdout(stdout))
			if err := run(t, interp, test.src); err != nil {
				t.Fatalf("Interpret() returned unexpected error: %s", err)
			}
			if diff := cmp.Diff(test.want, stdout.String()); diff != "" {
				t.Errorf("Interpret() output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInterpretRuntimeErrors(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		wantStdout string
		wantKind   loxerr.Kind
		wantErr    string
	}{
		{
			name:     "negate non-number",
			src:      `print -"bar";`,
			wantKind: loxerr.TypeMismatch,
			wantErr:  "[line 1] Error at '-': Operand must be a number.",
		},
		{
			name:     "add mismatched operands",
			src:      `print 1 + "a";`,
			wantKind: loxerr.BinaryOperation,
			wantErr:  "[line 1] Error at '+': Operands must be two numbers or two strings.",
		},
		{
			name:     "compare non-numbers",
			src:      `print "a" < "b";`,
			wantKind: loxerr.BinaryOperation,
			wantErr:  "[line 1] Error at '<': Operands must be numbers.",
		},
		{
			name:     "divide by zero",
			src:      "print 5 / 0;",
			wantKind: loxerr.DivideByZero,
			wantErr:  "[line 1] Error at '/': Division by zero.",
		},
		{
			name:     "undefined variable",
			src:      "print 1;\nprint x;",
			wantKind: loxerr.UndefinedVariable,
			wantErr:  "[line 2] Error at 'x': Undefined variable 'x'.",
		},
		{
			name:     "assign undefined variable",
			src:      "y = 1;",
			wantKind: loxerr.UndefinedVariable,
			wantErr:  "[line 1] Error at 'y': Undefined variable 'y'.",
		},
		{
			name:     "call non-callable",
			src:      `"not a function"();`,
			wantKind: loxerr.NotCallable,
			wantErr:  "[line 1] Error at ')': Can only call functions and classes.",
		},
		{
			name:     "arity mismatch",
			src:      "fun f(a, b) {}\nf(1);",
			wantKind: loxerr.ArityMismatch,
			wantErr:  "[line 2] Error at ')': Expected 2 arguments but got 1.",
		},
		{
			name:     "get property of non-instance",
			src:      "var a = 1; print a.b;",
			wantKind: loxerr.OnlyInstancesHaveProperties,
			wantErr:  "[line 1] Error at 'b': Only instances have properties.",
		},
		{
			name:     "set field of non-instance",
			src:      "var a = 1; a.b = 2;",
			wantKind: loxerr.OnlyInstancesHaveProperties,
			wantErr:  "[line 1] Error at 'b': Only instances have fields.",
		},
		{
			name:     "undefined property",
			src:      "class C {} C().missing;",
			wantKind: loxerr.UndefinedProperty,
			wantErr:  "[line 1] Error at 'missing': Undefined property 'missing'.",
		},
		{
			name:     "undefined super method",
			src:      "class A {} class B < A { m() { return super.m(); } } B().m();",
			wantKind: loxerr.UndefinedProperty,
			wantErr:  "[line 1] Error at 'm': Undefined property 'm'.",
		},
		{
			name:     "superclass is not a class",
			src:      "var A = 1; class B < A {}",
			wantKind: loxerr.SuperclassNotClass,
			wantErr:  "[line 1] Error at 'A': Superclass must be a class.",
		},
		{
			name:       "execution stops at first error",
			src:        "print 1;\nprint -nil;\nprint 2;",
			wantStdout: "1\n",
			wantKind:   loxerr.TypeMismatch,
			wantErr:    "[line 2] Error at '-': Operand must be a number.",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			stdout := &bytes.Buffer{}
			interp := interpreter.New(interpreter.WithStdout(stdout))
			err := run(t, interp, test.src)
			if err == nil {
				t.Fatalf("Interpret() returned no error")
			}
			loxErr := &loxerr.Error{}
			if !errors.As(err, &loxErr) {
				t.Fatalf("Interpret() error is %T, want *loxerr.Error", err)
			}
			if loxErr.Kind != test.wantKind {
				t.Errorf("Interpret() error kind = %s, want %s", loxErr.Kind, test.wantKind)
			}
			if got := err.Error(); got != test.wantErr {
				t.Errorf("Interpret() error = %q, want %q", got, test.wantErr)
			}
			if diff := cmp.Diff(test.wantStdout, stdout.String()); diff != "" {
				t.Errorf("Interpret() output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInterpretKeepsStateBetweenCalls(t *testing.T) {
	stdout := &bytes.Buffer{}
	interp := interpreter.New(interpreter.WithStdout(stdout))
	srcs := []string{
		"var a = 1;",
		"fun get() { var b = a; { return b; } }",
		"a = 2;",
		"print get();",
	}
	for _, src := range srcs {
		if err := run(t, interp, src); err != nil {
			t.Fatalf("Interpret(%q) returned unexpected error: %s", src, err)
		}
	}
	if diff := cmp.Diff("2\n", stdout.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestInterpretRecoversAfterRuntimeError(t *testing.T) {
	stdout := &bytes.Buffer{}
	interp := interpreter.New(interpreter.WithStdout(stdout))
	if err := run(t, interp, "var a = 1; { var a = 2; print -nil; }"); err == nil {
		t.Fatal("Interpret() returned no error")
	}
	if err := run(t, interp, "print a;"); err != nil {
		t.Fatalf("Interpret() returned unexpected error: %s", err)
	}
	if diff := cmp.Diff("1\n", stdout.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestREPLModePrintsExpressionStatements(t *testing.T) {
	stdout := &bytes.Buffer{}
	interp := interpreter.New(interpreter.WithStdout(stdout), interpreter.REPLMode())
	for _, src := range []string{"1 + 2;", `"a" + "b";`, "var x = 1;"} {
		if err := run(t, interp, src); err != nil {
			t.Fatalf("Interpret(%q) returned unexpected error: %s", src, err)
		}
	}
	got := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if diff := cmp.Diff([]string{"3", "ab"}, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}
