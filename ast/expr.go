// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package ast

import (
	"bytes"
	"strings"

	"github.com/probechain/solc/token"
)

// Identifier resolves to a declaration via scope.Actions.CreateIdentifier.
// ResolvedDecl is nil until resolution succeeds; the concrete type stored
// there is whatever scope.Actions produced — kept as interface{} here so
// the ast package has no dependency on scope.
type Identifier struct {
	exprBase
	Token        token.Token
	Name         string
	ResolvedDecl interface{}
}

func (e *Identifier) expressionNode()      {}
func (e *Identifier) TokenLiteral() string { return e.Token.Literal }
func (e *Identifier) String() string       { return e.Name }

type BooleanLit struct {
	exprBase
	Token token.Token
	Value bool
}

func (e *BooleanLit) expressionNode()      {}
func (e *BooleanLit) TokenLiteral() string { return e.Token.Literal }
func (e *BooleanLit) String() string       { return e.Token.Literal }

// NumberLit stores the raw lexeme unchanged; the parser performs no numeric
// conversion or range check on it.
type NumberLit struct {
	exprBase
	Token token.Token
	Raw   string
}

func (e *NumberLit) expressionNode()      {}
func (e *NumberLit) TokenLiteral() string { return e.Token.Literal }
func (e *NumberLit) String() string       { return e.Raw }

// StringLit covers both ordinary string literals and hex string literals;
// Value holds the unescaped/decoded bytes as a string.
type StringLit struct {
	exprBase
	Token token.Token
	Value string
	IsHex bool
}

func (e *StringLit) expressionNode()      {}
func (e *StringLit) TokenLiteral() string { return e.Token.Literal }
func (e *StringLit) String() string {
	if e.IsHex {
		return `hex"` + e.Token.Literal + `"`
	}
	return `"` + e.Token.Literal + `"`
}

// UnaryExpr is a prefix or postfix unary operator:
// prefix ++ -- + - ! ~ & *, postfix ++ --.
type UnaryExpr struct {
	exprBase
	Token    token.Token
	Operator string
	Sub      Expression
	IsPrefix bool
}

func (e *UnaryExpr) expressionNode()      {}
func (e *UnaryExpr) TokenLiteral() string { return e.Token.Literal }
func (e *UnaryExpr) String() string {
	if e.IsPrefix {
		return "(" + e.Operator + e.Sub.String() + ")"
	}
	return "(" + e.Sub.String() + e.Operator + ")"
}

// BinaryExpr is a binary/assignment operator application.
type BinaryExpr struct {
	exprBase
	Token    token.Token
	Operator string
	LHS      Expression
	RHS      Expression
}

func (e *BinaryExpr) expressionNode()      {}
func (e *BinaryExpr) TokenLiteral() string { return e.Token.Literal }
func (e *BinaryExpr) String() string {
	return "(" + e.LHS.String() + " " + e.Operator + " " + e.RHS.String() + ")"
}

// TernaryExpr is `cond ? then : else`.
type TernaryExpr struct {
	exprBase
	Token token.Token
	Cond  Expression
	Then  Expression
	Else  Expression
}

func (e *TernaryExpr) expressionNode()      {}
func (e *TernaryExpr) TokenLiteral() string { return e.Token.Literal }
func (e *TernaryExpr) String() string {
	return "(" + e.Cond.String() + " ? " + e.Then.String() + " : " + e.Else.String() + ")"
}

// ParenExpr preserves explicit parenthesization.
type ParenExpr struct {
	exprBase
	Token token.Token
	Sub   Expression
}

func (e *ParenExpr) expressionNode()      {}
func (e *ParenExpr) TokenLiteral() string { return e.Token.Literal }
func (e *ParenExpr) String() string       { return "(" + e.Sub.String() + ")" }

// CastKind distinguishes the two mechanisms that change an expression's
// static type without changing its runtime identity/value in a way the
// code-generator must lower differently.
type CastKind int

const (
	CastIntegral      CastKind = iota // zext/sext/trunc between Integer widths
	CastExplicit                      // T(x) surface-syntax cast
	CastLValueToRValue                // load of an addressable location
)

// ImplicitCastExpr is inserted by Actions/typecheck to make an implicit
// conversion explicit for code-gen.
type ImplicitCastExpr struct {
	exprBase
	Token token.Token
	Sub   Expression
	Kind  CastKind
}

func (e *ImplicitCastExpr) expressionNode()      {}
func (e *ImplicitCastExpr) TokenLiteral() string { return e.Token.Literal }
func (e *ImplicitCastExpr) String() string { return e.Sub.String() }

// ExplicitCastExpr is a source-level `T(x)` cast.
type ExplicitCastExpr struct {
	exprBase
	Token token.Token
	Sub   Expression
	Kind  CastKind
	To    Type
}

func (e *ExplicitCastExpr) expressionNode()      {}
func (e *ExplicitCastExpr) TokenLiteral() string { return e.Token.Literal }
func (e *ExplicitCastExpr) String() string {
	return e.To.String() + "(" + e.Sub.String() + ")"
}

// CallExpr is `callee(args)`.
type CallExpr struct {
	exprBase
	Token    token.Token
	Callee   Expression
	Args     []Expression
}

func (e *CallExpr) expressionNode()      {}
func (e *CallExpr) TokenLiteral() string { return e.Token.Literal }
func (e *CallExpr) String() string {
	var out bytes.Buffer
	out.WriteString(e.Callee.String())
	out.WriteString("(")
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	out.WriteString(strings.Join(parts, ", "))
	out.WriteString(")")
	return out.String()
}

// MemberExpr is `base.field`.
type MemberExpr struct {
	exprBase
	Token token.Token
	Base  Expression
	Field string
}

func (e *MemberExpr) expressionNode()      {}
func (e *MemberExpr) TokenLiteral() string { return e.Token.Literal }
func (e *MemberExpr) String() string       { return "(" + e.Base.String() + "." + e.Field + ")" }

// IndexAccessExpr is `base[index]`.
type IndexAccessExpr struct {
	exprBase
	Token token.Token
	Base  Expression
	Index Expression
}

func (e *IndexAccessExpr) expressionNode()      {}
func (e *IndexAccessExpr) TokenLiteral() string { return e.Token.Literal }
func (e *IndexAccessExpr) String() string {
	return "(" + e.Base.String() + "[" + e.Index.String() + "])"
}

// NewExpr is `new T`.
type NewExpr struct {
	exprBase
	Token  token.Token
	NewType Type
}

func (e *NewExpr) expressionNode()      {}
func (e *NewExpr) TokenLiteral() string { return e.Token.Literal }
func (e *NewExpr) String() string       { return "new " + e.NewType.String() }
