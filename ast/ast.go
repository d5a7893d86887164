// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package ast

import (
	"bytes"
	"strings"

	"github.com/probechain/solc/token"
)

// ---------------------------------------------------------------------------
// Core interfaces
// ---------------------------------------------------------------------------

// Node is the base interface every AST node implements.
type Node interface {
	TokenLiteral() string
	String() string
}

// Expression is a marker interface for expression nodes.
type Expression interface {
	Node
	expressionNode()
	// Type returns the expression's resolved type, or nil if it has not
	// been resolved yet — the field is nullable during parsing and must
	// be resolved before code generation.
	Type() Type
	SetType(Type)
}

// Statement is a marker interface for statement nodes.
type Statement interface {
	Node
	statementNode()
}

// Declaration is a marker interface for declaration nodes.
type Declaration interface {
	Node
	declarationNode()
}

// exprBase factors out the nullable Type field shared by every Expression.
type exprBase struct{ typ Type }

func (e *exprBase) Type() Type     { return e.typ }
func (e *exprBase) SetType(t Type) { e.typ = t }

// ---------------------------------------------------------------------------
// SourceUnit — root of a parse.
// ---------------------------------------------------------------------------

type SourceUnit struct {
	Declarations []Declaration
}

func (u *SourceUnit) TokenLiteral() string {
	if len(u.Declarations) > 0 {
		return u.Declarations[0].TokenLiteral()
	}
	return ""
}
func (u *SourceUnit) String() string {
	var out bytes.Buffer
	for _, d := range u.Declarations {
		out.WriteString(d.String())
		out.WriteByte('\n')
	}
	return out.String()
}

// PragmaDirective is an opaque, accepted-but-unenforced token sequence.
type PragmaDirective struct {
	Token  token.Token
	Tokens []token.Token
}

func (d *PragmaDirective) declarationNode()      {}
func (d *PragmaDirective) TokenLiteral() string  { return d.Token.Literal }
func (d *PragmaDirective) String() string {
	parts := make([]string, len(d.Tokens))
	for i, t := range d.Tokens {
		parts[i] = t.Literal
	}
	return "pragma " + strings.Join(parts, " ") + ";"
}

// ---------------------------------------------------------------------------
// Visibility / ContractKind
// ---------------------------------------------------------------------------

type Visibility int

const (
	VisDefault Visibility = iota
	VisPrivate
	VisInternal
	VisPublic
	VisExternal
)

func (v Visibility) String() string {
	switch v {
	case VisPrivate:
		return "private"
	case VisInternal:
		return "internal"
	case VisPublic:
		return "public"
	case VisExternal:
		return "external"
	default:
		return ""
	}
}

type ContractKind int

const (
	Interface ContractKind = iota
	Contract
	Library
)

func (k ContractKind) String() string {
	switch k {
	case Interface:
		return "interface"
	case Library:
		return "library"
	default:
		return "contract"
	}
}

// ---------------------------------------------------------------------------
// InheritanceSpecifier
// ---------------------------------------------------------------------------

type InheritanceSpecifier struct {
	Token     token.Token
	BaseName  string
	Arguments []Expression
}

func (i *InheritanceSpecifier) String() string {
	if len(i.Arguments) == 0 {
		return i.BaseName
	}
	parts := make([]string, len(i.Arguments))
	for idx, a := range i.Arguments {
		parts[idx] = a.String()
	}
	return i.BaseName + "(" + strings.Join(parts, ", ") + ")"
}

// ---------------------------------------------------------------------------
// ContractDecl
// ---------------------------------------------------------------------------

type ContractDecl struct {
	Token         token.Token
	Kind          ContractKind
	Name          string
	BaseContracts []*InheritanceSpecifier
	Constructor   *FunctionDecl
	Fallback      *FunctionDecl
	Members       []Declaration // VarDecl and non-constructor/fallback FunctionDecl, in source order
	Events        []*EventDecl
}

func (d *ContractDecl) declarationNode()     {}
func (d *ContractDecl) TokenLiteral() string { return d.Token.Literal }
func (d *ContractDecl) String() string {
	var out bytes.Buffer
	out.WriteString(d.Kind.String())
	out.WriteByte(' ')
	out.WriteString(d.Name)
	if len(d.BaseContracts) > 0 {
		parts := make([]string, len(d.BaseContracts))
		for i, b := range d.BaseContracts {
			parts[i] = b.String()
		}
		out.WriteString(" is ")
		out.WriteString(strings.Join(parts, ", "))
	}
	out.WriteString(" {")
	if d.Constructor != nil {
		out.WriteString(" ")
		out.WriteString(d.Constructor.String())
	}
	for _, m := range d.Members {
		out.WriteString(" ")
		out.WriteString(m.String())
	}
	if d.Fallback != nil {
		out.WriteString(" ")
		out.WriteString(d.Fallback.String())
	}
	for _, e := range d.Events {
		out.WriteString(" ")
		out.WriteString(e.String())
	}
	out.WriteString(" }")
	return out.String()
}

// ExternalFunctions returns every member function callable from a
// transaction (public, external or default visibility; neither the
// constructor nor the fallback), in declaration order — the set the
// dispatcher must route to.
func (d *ContractDecl) ExternalFunctions() []*FunctionDecl {
	var out []*FunctionDecl
	for _, m := range d.Members {
		fn, ok := m.(*FunctionDecl)
		if !ok || fn.IsConstructor || fn.IsFallback {
			continue
		}
		if fn.Visibility == VisPublic || fn.Visibility == VisExternal || fn.Visibility == VisDefault {
			out = append(out, fn)
		}
	}
	return out
}

// StateVariables returns every state-variable member in declaration order.
func (d *ContractDecl) StateVariables() []*VarDecl {
	var out []*VarDecl
	for _, m := range d.Members {
		if v, ok := m.(*VarDecl); ok && v.IsStateVariable {
			out = append(out, v)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// ModifierInvocation
// ---------------------------------------------------------------------------

type ModifierInvocation struct {
	Token token.Token
	Name  string
	Args  []Expression
}

func (m *ModifierInvocation) String() string {
	parts := make([]string, len(m.Args))
	for i, a := range m.Args {
		parts[i] = a.String()
	}
	return m.Name + "(" + strings.Join(parts, ", ") + ")"
}

// ---------------------------------------------------------------------------
// FunctionDecl — extends the notion of CallableVarDecl.
// ---------------------------------------------------------------------------

type FunctionDecl struct {
	Token           token.Token
	Name            string
	Visibility      Visibility
	StateMutability Mutability
	IsConstructor   bool
	IsFallback      bool
	Params          []*VarDecl
	ReturnParams    []*VarDecl
	Modifiers       []*ModifierInvocation
	Body            *Block // nil until the deferred body has been parsed
}

// ConstructorName / FallbackName are the reserved internal names every
// constructor/fallback declaration is normalized to.
const (
	ConstructorName = "solidity.constructor"
	FallbackName    = "solidity.fallback"
)

func (d *FunctionDecl) declarationNode()     {}
func (d *FunctionDecl) TokenLiteral() string { return d.Token.Literal }
func (d *FunctionDecl) String() string {
	var out bytes.Buffer
	out.WriteString("function ")
	out.WriteString(d.Name)
	out.WriteString("(")
	parts := make([]string, len(d.Params))
	for i, p := range d.Params {
		parts[i] = p.String()
	}
	out.WriteString(strings.Join(parts, ", "))
	out.WriteString(")")
	if d.Visibility != VisDefault {
		out.WriteString(" ")
		out.WriteString(d.Visibility.String())
	}
	if d.StateMutability != NonPayable {
		out.WriteString(" ")
		out.WriteString(d.StateMutability.String())
	}
	if len(d.ReturnParams) > 0 {
		rp := make([]string, len(d.ReturnParams))
		for i, r := range d.ReturnParams {
			rp[i] = r.String()
		}
		out.WriteString(" returns (")
		out.WriteString(strings.Join(rp, ", "))
		out.WriteString(")")
	}
	if d.Body != nil {
		out.WriteString(" ")
		out.WriteString(d.Body.String())
	} else {
		out.WriteString(";")
	}
	return out.String()
}

// ParamTypes extracts the parameter Type list, used to build the
// canonical signature.
func (d *FunctionDecl) ParamTypes() []Type {
	out := make([]Type, len(d.Params))
	for i, p := range d.Params {
		out[i] = p.Type
	}
	return out
}

// CanonicalSignature is "name(type1,type2,...)".
func (d *FunctionDecl) CanonicalSignature() string {
	return CanonicalSignature(d.Name, d.ParamTypes())
}

// ---------------------------------------------------------------------------
// EventDecl
// ---------------------------------------------------------------------------

type EventDecl struct {
	Token     token.Token
	Name      string
	Params    []*VarDecl
	Anonymous bool
}

func (d *EventDecl) declarationNode()     {}
func (d *EventDecl) TokenLiteral() string { return d.Token.Literal }
func (d *EventDecl) String() string {
	parts := make([]string, len(d.Params))
	for i, p := range d.Params {
		s := p.Type.String()
		if p.IsIndexed {
			s += " indexed"
		}
		if p.Name != "" {
			s += " " + p.Name
		}
		parts[i] = s
	}
	s := "event " + d.Name + "(" + strings.Join(parts, ", ") + ")"
	if d.Anonymous {
		s += " anonymous"
	}
	return s + ";"
}

// CanonicalSignature is "Name(type1,type2,...)" used for the topic-0
// selector hash of a log entry.
func (d *EventDecl) CanonicalSignature() string {
	types := make([]Type, len(d.Params))
	for i, p := range d.Params {
		types[i] = p.Type
	}
	return CanonicalSignature(d.Name, types)
}

// IndexedParams returns the params marked `indexed`.
func (d *EventDecl) IndexedParams() []*VarDecl {
	var out []*VarDecl
	for _, p := range d.Params {
		if p.IsIndexed {
			out = append(out, p)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// VarDecl
// ---------------------------------------------------------------------------

type VarDecl struct {
	Token           token.Token
	Type            Type
	Name            string
	InitialValue    Expression
	Visibility      Visibility
	IsStateVariable bool
	IsIndexed       bool
	IsConstant      bool
	DataLocation    DataLocation
}

func (d *VarDecl) declarationNode()     {}
func (d *VarDecl) TokenLiteral() string { return d.Token.Literal }
func (d *VarDecl) String() string {
	var out bytes.Buffer
	if d.Type != nil {
		out.WriteString(d.Type.String())
		out.WriteByte(' ')
	}
	if d.DataLocation != Unspecified {
		out.WriteString(d.DataLocation.String())
		out.WriteByte(' ')
	}
	if d.IsIndexed {
		out.WriteString("indexed ")
	}
	if d.IsConstant {
		out.WriteString("constant ")
	}
	out.WriteString(d.Name)
	if d.InitialValue != nil {
		out.WriteString(" = ")
		out.WriteString(d.InitialValue.String())
	}
	return out.String()
}

// ---------------------------------------------------------------------------
// ParamList is just an ordered []*VarDecl, kept as a type alias for
// readability at call sites rather than a distinct struct since it carries
// no behavior beyond ordering.
// ---------------------------------------------------------------------------

type ParamList = []*VarDecl
