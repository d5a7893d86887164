// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package scope

import (
	"errors"

	"github.com/probechain/solc/ast"
	"github.com/probechain/solc/token"
)

// ErrUnresolvedName and ErrInvalidOperand are the two failure classes the
// Actions facade may raise; the parser turns either into a diagnostic plus
// a nil expression and keeps parsing.
var (
	ErrUnresolvedName = errors.New("unresolved name")
	ErrInvalidOperand = errors.New("invalid operand")
)

// Actions is the semantic-bookkeeping facade the parser drives while
// building the AST. It owns the scope stack and the currently active
// function return-type vector.
type Actions struct {
	stack       *Stack
	returnTypes []ast.Type
}

// NewActions creates an Actions facade with a fresh, single-scope stack.
func NewActions() *Actions {
	return &Actions{stack: NewStack()}
}

// PushScope opens a nested scope.
func (a *Actions) PushScope(flags Flags) { a.stack.Push(flags) }

// PopScope closes the current scope.
func (a *Actions) PopScope() { a.stack.Pop() }

// InLoop reports whether the innermost open scope is nested inside a loop
// body, i.e. whether `break`/`continue` are legal at this point.
func (a *Actions) InLoop() bool { return a.stack.InLoop() }

// AddDecl registers decl by name in the current scope.
func (a *Actions) AddDecl(name string, decl ast.Declaration) {
	a.stack.Current().symbols[name] = decl
}

// SetFnReturnTypes stashes the return-type vector for the function body
// currently being parsed, so CreateReturnStmt can validate `return e`.
func (a *Actions) SetFnReturnTypes(types []ast.Type) { a.returnTypes = types }

// EraseFnReturnTypes clears the active return-type vector on function exit.
func (a *Actions) EraseFnReturnTypes() { a.returnTypes = nil }

// CreateIdentifier resolves tok.Literal against the scope stack and returns
// a bound *ast.Identifier, or ErrUnresolvedName if no declaration matches.
func (a *Actions) CreateIdentifier(tok token.Token) (*ast.Identifier, error) {
	id := &ast.Identifier{Token: tok, Name: tok.Literal}
	decl, ok := a.stack.Current().Lookup(tok.Literal)
	if !ok {
		return id, ErrUnresolvedName
	}
	id.ResolvedDecl = decl
	if vd, ok := decl.(*ast.VarDecl); ok {
		id.SetType(vd.Type)
	}
	return id, nil
}

// CreateCallExpr builds a call node. The callee's type is left to the
// caller (parser) to have already resolved; call expressions do not carry
// a promoted operand type of their own here since return arity may be > 1,
// left to the code-generator's call-site handling.
func (a *Actions) CreateCallExpr(callee ast.Expression, args []ast.Expression) *ast.CallExpr {
	return &ast.CallExpr{Callee: callee, Args: args}
}

// CreateMemberExpr builds `base.field`.
func (a *Actions) CreateMemberExpr(base ast.Expression, tok token.Token) *ast.MemberExpr {
	return &ast.MemberExpr{Token: tok, Base: base, Field: tok.Literal}
}

// CreateIndexAccess builds `base[index]` and, when base's type is known and
// an Array or Mapping, propagates the element/value type onto the result.
func (a *Actions) CreateIndexAccess(base, index ast.Expression) (*ast.IndexAccessExpr, error) {
	e := &ast.IndexAccessExpr{Base: base, Index: index}
	switch t := base.Type().(type) {
	case ast.ArrayType:
		e.SetType(t.Elem)
	case ast.MappingType:
		e.SetType(t.Value)
	case nil:
		// base type not yet resolved; leave e untyped.
	default:
		return e, ErrInvalidOperand
	}
	return e, nil
}

// CreateBinOp builds a binary expression and assigns its result type by
// promotion. Comparison and logical operators always yield Bool;
// arithmetic and bitwise operators require two Integer operands and yield
// the wider of the two, promoted to signed if either operand is signed;
// an untyped operand (such as a number literal) takes the other operand's
// type, and the result stays untyped when both are untyped; assignment
// yields the left-hand side's type.
func (a *Actions) CreateBinOp(opTok token.Token, op string, lhs, rhs ast.Expression) (*ast.BinaryExpr, error) {
	e := &ast.BinaryExpr{Token: opTok, Operator: op, LHS: lhs, RHS: rhs}
	switch op {
	case "&&", "||", "==", "!=", "<", ">", "<=", ">=":
		e.SetType(ast.BoolType{})
		return e, nil
	case "=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>=":
		if lhs.Type() != nil {
			e.SetType(lhs.Type())
		}
		return e, nil
	}
	lt, lok := lhs.Type().(ast.IntegerType)
	rt, rok := rhs.Type().(ast.IntegerType)
	switch {
	case lhs.Type() == nil && rhs.Type() == nil:
		return e, nil
	case lhs.Type() == nil:
		lt, lok = rt, rok
	case rhs.Type() == nil:
		rt, rok = lt, lok
	}
	if !lok || !rok {
		return e, ErrInvalidOperand
	}
	bits := lt.IntKind.Bits
	if rt.IntKind.Bits > bits {
		bits = rt.IntKind.Bits
	}
	e.SetType(ast.NewIntegerType(lt.IntKind.Signed || rt.IntKind.Signed, bits, false))
	return e, nil
}

// CreateFunctionDecl registers fn's name in the current (contract) scope
// and returns fn unchanged, matching the pass-through shape of the other
// Create* operations.
func (a *Actions) CreateFunctionDecl(fn *ast.FunctionDecl) *ast.FunctionDecl {
	a.AddDecl(fn.Name, fn)
	return fn
}

// CreateEventDecl registers ev's name in the current scope.
func (a *Actions) CreateEventDecl(ev *ast.EventDecl) *ast.EventDecl {
	a.AddDecl(ev.Name, ev)
	return ev
}

// CreateReturnStmt builds a return statement. When the active
// return-type vector is empty a non-nil value is an error; when it holds
// exactly one type and value is present the parser is expected to have
// already produced an appropriately cast expression.
func (a *Actions) CreateReturnStmt(tok token.Token, value ast.Expression) (*ast.ReturnStmt, error) {
	if value != nil && len(a.returnTypes) == 0 {
		return &ast.ReturnStmt{Token: tok, Value: value}, ErrInvalidOperand
	}
	return &ast.ReturnStmt{Token: tok, Value: value}, nil
}
