// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package ir defines the SSA-form intermediate representation the
// code-generator lowers a contract into. It is the bridge between the AST
// and whatever assembler/linker consumes the module; this package only
// builds and prints the module, it never executes it.
package ir

import (
	"fmt"
	"strings"
)

// Target selects the word size and environment-function calling
// convention the module is built for: EVM (i256) or the target word size
// for EWASM.
type Target int

const (
	TargetEVM Target = iota
	TargetEWASM
)

func (t Target) String() string {
	if t == TargetEWASM {
		return "ewasm"
	}
	return "evm"
}

// WordType is the module's native integer width for this target.
func (t Target) WordType() TypeRef {
	if t == TargetEWASM {
		return TypeU64
	}
	return TypeI256
}

// TypeRef names a value's IR-level type.
type TypeRef int

const (
	TypeVoid TypeRef = iota
	TypeBool
	TypeU64
	TypeI256
	TypePtr
)

func (t TypeRef) String() string {
	switch t {
	case TypeBool:
		return "i1"
	case TypeU64:
		return "i64"
	case TypeI256:
		return "i256"
	case TypePtr:
		return "ptr"
	default:
		return "void"
	}
}

// Module is a complete lowered contract: its own functions plus the fixed
// external environment-function declarations it calls.
type Module struct {
	Name      string
	Target    Target
	Externs   []ExternFunc
	Functions []*Function
}

// ExternFunc is one host-provided environment function declaration.
type ExternFunc struct {
	Name    string
	Params  []TypeRef
	Returns TypeRef
}

// Function is one lowered contract member or dispatcher entry point.
type Function struct {
	Name       string
	Params     []Value
	ReturnType TypeRef
	Blocks     []*BasicBlock
	numValues  int
}

// BasicBlock is a straight-line instruction run ending in one Terminator.
type BasicBlock struct {
	Label        string
	Instructions []*Instruction
	Terminator   Terminator
}

// Value is an SSA virtual register.
type Value struct {
	ID   int
	Type TypeRef
	Name string
}

func (v Value) String() string {
	if v.Name != "" {
		return "%" + v.Name
	}
	return fmt.Sprintf("%%v%d", v.ID)
}

// Op enumerates the instruction opcodes this module ever emits. The set is
// deliberately narrow: arithmetic/bitwise/compare, storage access, ABI
// word conversion, and calls to extern environment functions or sibling
// contract functions.
type Op int

const (
	OpConst Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpAnd
	OpOr
	OpXor
	OpNot
	OpShl
	OpShr
	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpZext
	OpSext
	OpTrunc
	OpAlloc
	OpLoad
	OpStore
	OpStorageLoad
	OpStorageStore
	OpBswap256
	OpKeccak256
	OpSha256
	OpCall
	OpCallExtern
	OpSelect
)

var opNames = map[Op]string{
	OpConst: "const", OpAdd: "add", OpSub: "sub", OpMul: "mul", OpDiv: "div", OpMod: "mod",
	OpAnd: "and", OpOr: "or", OpXor: "xor", OpNot: "not", OpShl: "shl", OpShr: "shr",
	OpEq: "eq", OpNeq: "neq", OpLt: "lt", OpLte: "lte", OpGt: "gt", OpGte: "gte",
	OpZext: "zext", OpSext: "sext", OpTrunc: "trunc",
	OpAlloc: "alloca", OpLoad: "load", OpStore: "store",
	OpStorageLoad: "sload", OpStorageStore: "sstore", OpBswap256: "bswap256",
	OpKeccak256: "keccak256", OpSha256: "sha256",
	OpCall: "call", OpCallExtern: "callext", OpSelect: "select",
}

func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return fmt.Sprintf("op(%d)", op)
}

// Instruction is one SSA instruction.
type Instruction struct {
	Op       Op
	Result   Value
	Operands []Value
	ConstVal int64  // populated for OpConst
	Callee   string // populated for OpCall/OpCallExtern
}

func (inst *Instruction) String() string {
	var b strings.Builder
	if inst.Result.Type != TypeVoid {
		fmt.Fprintf(&b, "%s = ", inst.Result)
	}
	fmt.Fprintf(&b, "%s", inst.Op)
	if inst.Op == OpConst {
		fmt.Fprintf(&b, " %d", inst.ConstVal)
	}
	if inst.Callee != "" {
		fmt.Fprintf(&b, " @%s", inst.Callee)
	}
	for _, o := range inst.Operands {
		fmt.Fprintf(&b, " %s", o)
	}
	return b.String()
}

// Terminator ends a basic block.
type Terminator interface {
	terminator()
	String() string
}

type TermRet struct{ Value *Value }

func (*TermRet) terminator() {}
func (t *TermRet) String() string {
	if t.Value != nil {
		return "ret " + t.Value.String()
	}
	return "ret void"
}

type TermBr struct{ Target *BasicBlock }

func (*TermBr) terminator()   {}
func (t *TermBr) String() string { return "br label %" + t.Target.Label }

type TermCondBr struct {
	Cond        Value
	TrueTarget  *BasicBlock
	FalseTarget *BasicBlock
}

func (*TermCondBr) terminator() {}
func (t *TermCondBr) String() string {
	return fmt.Sprintf("br %s, label %%%s, label %%%s", t.Cond, t.TrueTarget.Label, t.FalseTarget.Label)
}

// TermRevert marks a reverting halt (spec S1's `revert` fallback path);
// distinct from TermRet since it carries no return value at all.
type TermRevert struct{}

func (*TermRevert) terminator()  {}
func (*TermRevert) String() string { return "revert" }

// String renders the module in an LLVM-like textual form; there is no
// binary/bitcode encoding since this package never assembles or links.
func (m *Module) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "; module %q target=%s\n", m.Name, m.Target)
	for _, ext := range m.Externs {
		params := make([]string, len(ext.Params))
		for i, p := range ext.Params {
			params[i] = p.String()
		}
		fmt.Fprintf(&b, "declare %s @%s(%s)\n", ext.Returns, ext.Name, strings.Join(params, ", "))
	}
	for _, fn := range m.Functions {
		params := make([]string, len(fn.Params))
		for i, p := range fn.Params {
			params[i] = p.Type.String() + " " + p.String()
		}
		fmt.Fprintf(&b, "\ndefine %s @%s(%s) {\n", fn.ReturnType, fn.Name, strings.Join(params, ", "))
		for _, bb := range fn.Blocks {
			fmt.Fprintf(&b, "%s:\n", bb.Label)
			for _, inst := range bb.Instructions {
				fmt.Fprintf(&b, "  %s\n", inst)
			}
			if bb.Terminator != nil {
				fmt.Fprintf(&b, "  %s\n", bb.Terminator)
			}
		}
		fmt.Fprintln(&b, "}")
	}
	return b.String()
}
