// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package ast

import (
	"testing"

	"github.com/probechain/solc/token"
)

func TestBinaryExprString(t *testing.T) {
	a := &Identifier{Token: token.Token{Literal: "a"}, Name: "a"}
	b := &Identifier{Token: token.Token{Literal: "b"}, Name: "b"}
	c := &Identifier{Token: token.Token{Literal: "c"}, Name: "c"}
	mul := &BinaryExpr{Operator: "*", LHS: b, RHS: c}
	add := &BinaryExpr{Operator: "+", LHS: a, RHS: mul}

	want := "(a + (b * c))"
	if got := add.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestFunctionDeclCanonicalSignature(t *testing.T) {
	fd := &FunctionDecl{
		Name: "set",
		Params: []*VarDecl{
			{Type: NewIntegerType(false, 0, true), Name: "v"},
		},
	}
	if got := fd.CanonicalSignature(); got != "set(uint256)" {
		t.Errorf("CanonicalSignature() = %q, want set(uint256)", got)
	}
}

func TestContractDeclExternalFunctions(t *testing.T) {
	ctor := &FunctionDecl{Name: ConstructorName, IsConstructor: true}
	fallback := &FunctionDecl{Name: FallbackName, IsFallback: true}
	pub := &FunctionDecl{Name: "get", Visibility: VisPublic}
	priv := &FunctionDecl{Name: "helper", Visibility: VisPrivate}

	cd := &ContractDecl{
		Kind:        Contract,
		Name:        "C",
		Constructor: ctor,
		Fallback:    fallback,
		Members:     []Declaration{pub, priv},
	}

	ext := cd.ExternalFunctions()
	if len(ext) != 1 || ext[0].Name != "get" {
		t.Fatalf("ExternalFunctions() = %v, want just [get]", ext)
	}
}

func TestContractDeclStateVariables(t *testing.T) {
	x := &VarDecl{Name: "x", IsStateVariable: true, Type: NewIntegerType(false, 0, true)}
	local := &VarDecl{Name: "y", IsStateVariable: false}
	fn := &FunctionDecl{Name: "f"}
	cd := &ContractDecl{Members: []Declaration{x, fn, local}}

	vars := cd.StateVariables()
	if len(vars) != 1 || vars[0].Name != "x" {
		t.Fatalf("StateVariables() = %v, want just [x]", vars)
	}
}

func TestEventCanonicalSignature(t *testing.T) {
	ed := &EventDecl{
		Name: "E",
		Params: []*VarDecl{
			{Type: NewIntegerType(false, 0, true), Name: "k", IsIndexed: true},
			{Type: BytesType{}, Name: "v"},
		},
	}
	if got := ed.CanonicalSignature(); got != "E(uint256,bytes)" {
		t.Errorf("CanonicalSignature() = %q, want E(uint256,bytes)", got)
	}
	if len(ed.IndexedParams()) != 1 {
		t.Errorf("IndexedParams() = %d, want 1", len(ed.IndexedParams()))
	}
}

func TestExprBaseNullableType(t *testing.T) {
	id := &Identifier{Name: "a"}
	if id.Type() != nil {
		t.Errorf("fresh expression should have a nil type until resolved")
	}
	id.SetType(BoolType{})
	if id.Type() == nil {
		t.Errorf("SetType should populate Type()")
	}
}
