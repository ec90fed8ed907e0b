package ast

import (
	"reflect"
)

// Walk traverses an AST in depth-first order: It starts by calling f(node); node must not be nil. If f returns true,
// Walk invokes f recursively for each of the non-nil children of node.
func Walk(node Node, f func(Node) bool) {
	if isNil(node) || !f(node) {
		return
	}
	switch node := node.(type) {
	case *Program:
		walkSlice(node.Stmts, f)
	case *IllegalStmt:
	case *ExprStmt:
		Walk(node.Expr, f)
	case *PrintStmt:
		Walk(node.Expr, f)
	case *VarDecl:
		Walk(node.Initialiser, f)
	case *BlockStmt:
		walkSlice(node.Stmts, f)
	case *IfStmt:
		Walk(node.Condition, f)
		Walk(node.Then, f)
		Walk(node.Else, f)
	case *WhileStmt:
		Walk(node.Condition, f)
		Walk(node.Body, f)
	case *FunDecl:
		walkSlice(node.Body, f)
	case *ReturnStmt:
		Walk(node.Value, f)
	case *ClassDecl:
		Walk(node.Superclass, f)
		walkSlice(node.Methods, f)
	case *LiteralExpr:
	case *VariableExpr:
	case *ThisExpr:
	case *SuperExpr:
	case *UnaryExpr:
		Walk(node.Right, f)
	case *BinaryExpr:
		Walk(node.Left, f)
		Walk(node.Right, f)
	case *LogicalExpr:
		Walk(node.Left, f)
		Walk(node.Right, f)
	case *GroupExpr:
		Walk(node.Expr, f)
	case *AssignmentExpr:
		Walk(node.Value, f)
	case *CallExpr:
		Walk(node.Callee, f)
		walkSlice(node.Args, f)
	case *GetExpr:
		Walk(node.Object, f)
	case *SetExpr:
		Walk(node.Object, f)
		Walk(node.Value, f)
	}
}

func walkSlice[T Node](nodes []T, f func(Node) bool) {
	for _, node := range nodes {
		Walk(node, f)
	}
}

// isNil reports whether node is nil or a nil pointer to a node.
func isNil(node Node) bool {
	if node == nil {
		return true
	}
	v := reflect.ValueOf(node)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
