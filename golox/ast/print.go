package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/loxlang/lox/golox/token"
)

// Print prints an AST Node to stdout as an s-expression.
func Print(node Node) {
	fmt.Println(Sprint(node))
}

// Sprint formats an AST Node as an s-expression, such as (* (- 123.0) (group 45.67)). The statements of a [*Program]
// are formatted one per line.
func Sprint(node Node) string {
	if isNil(node) {
		return "nil"
	}
	switch node := node.(type) {
	case *Program:
		lines := make([]string, len(node.Stmts))
		for i, stmt := range node.Stmts {
			lines[i] = Sprint(stmt)
		}
		return strings.Join(lines, "\n")
	case *IllegalStmt:
		return "(illegal)"
	case *ExprStmt:
		return sexpr(";", node.Expr)
	case *PrintStmt:
		return sexpr("print", node.Expr)
	case *VarDecl:
		if node.Initialiser == nil {
			return sexpr("var", node.Name)
		}
		return sexpr("var", node.Name, node.Initialiser)
	case *BlockStmt:
		return sexpr("block", nodes(node.Stmts)...)
	case *IfStmt:
		if node.Else == nil {
			return sexpr("if", node.Condition, node.Then)
		}
		return sexpr("if", node.Condition, node.Then, node.Else)
	case *WhileStmt:
		return sexpr("while", node.Condition, node.Body)
	case *FunDecl:
		params := make([]string, len(node.Params))
		for i, param := range node.Params {
			params[i] = param.Lexeme
		}
		parts := []any{node.Name, "(" + strings.Join(params, " ") + ")"}
		return sexpr("fun", append(parts, nodes(node.Body)...)...)
	case *ReturnStmt:
		if node.Value == nil {
			return sexpr("return")
		}
		return sexpr("return", node.Value)
	case *ClassDecl:
		parts := []any{node.Name}
		if node.Superclass != nil {
			parts = append(parts, "<", node.Superclass)
		}
		return sexpr("class", append(parts, nodes(node.Methods)...)...)
	case *LiteralExpr:
		return formatLiteral(node.Value)
	case *UnaryExpr:
		return sexpr(node.Op.Lexeme, node.Right)
	case *BinaryExpr:
		return sexpr(node.Op.Lexeme, node.Left, node.Right)
	case *LogicalExpr:
		return sexpr(node.Op.Lexeme, node.Left, node.Right)
	case *GroupExpr:
		return sexpr("group", node.Expr)
	case *VariableExpr:
		return node.Name.Lexeme
	case *AssignmentExpr:
		return sexpr("=", node.Name, node.Value)
	case *CallExpr:
		return sexpr("call", append([]any{node.Callee}, nodes(node.Args)...)...)
	case *GetExpr:
		return sexpr(".", node.Object, node.Name)
	case *SetExpr:
		return sexpr("=", node.Object, node.Name, node.Value)
	case *ThisExpr:
		return node.This.Lexeme
	case *SuperExpr:
		return sexpr("super", node.Method)
	default:
		panic(fmt.Sprintf("unexpected node type: %T", node))
	}
}

func sexpr(name string, parts ...any) string {
	var b strings.Builder
	fmt.Fprint(&b, "(", name)
	for _, part := range parts {
		b.WriteString(" ")
		switch part := part.(type) {
		case Node:
			b.WriteString(Sprint(part))
		case token.Token:
			b.WriteString(part.Lexeme)
		case string:
			b.WriteString(part)
		default:
			panic(fmt.Sprintf("unexpected s-expression part type: %T", part))
		}
	}
	b.WriteString(")")
	return b.String()
}

func nodes[T Node](ns []T) []any {
	parts := make([]any, len(ns))
	for i, n := range ns {
		parts[i] = n
	}
	return parts
}

// formatLiteral formats a literal token. Numbers with an integral value are given a .0 suffix so that they can be
// told apart from identifiers.
func formatLiteral(tok token.Token) string {
	switch tok.Type {
	case token.Number:
		value := tok.Literal.(float64)
		s := strconv.FormatFloat(value, 'f', -1, 64)
		if value == math.Trunc(value) && !math.IsInf(value, 0) {
			s += ".0"
		}
		return s
	case token.String:
		return tok.Literal.(string)
	default:
		return tok.Lexeme
	}
}
