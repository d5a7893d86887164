// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package ir

import "strconv"

// Builder assembles a Module one function/block/instruction at a time.
type Builder struct {
	module   *Module
	function *Function
	block    *BasicBlock
}

// NewBuilder starts a fresh module for the given target.
func NewBuilder(name string, target Target) *Builder {
	return &Builder{module: &Module{Name: name, Target: target}}
}

// Module returns the module built so far.
func (b *Builder) Module() *Module { return b.module }

// DeclareExtern registers one of the fixed environment functions (spec
// §4.3.3) as an external declaration, if not already present.
func (b *Builder) DeclareExtern(name string, params []TypeRef, ret TypeRef) {
	for _, e := range b.module.Externs {
		if e.Name == name {
			return
		}
	}
	b.module.Externs = append(b.module.Externs, ExternFunc{Name: name, Params: params, Returns: ret})
}

// StartFunction opens a new function and makes it current.
func (b *Builder) StartFunction(name string, params []Value, ret TypeRef) *Function {
	fn := &Function{Name: name, Params: params, ReturnType: ret}
	b.module.Functions = append(b.module.Functions, fn)
	b.function = fn
	b.block = nil
	return fn
}

// NewBlock appends a fresh, unattached-to-current block with a unique
// label derived from prefix and makes it current.
func (b *Builder) NewBlock(prefix string) *BasicBlock {
	label := prefix
	for _, existing := range b.function.Blocks {
		if existing.Label == label {
			label = prefix + "." + strconv.Itoa(len(b.function.Blocks))
			break
		}
	}
	bb := &BasicBlock{Label: label}
	b.function.Blocks = append(b.function.Blocks, bb)
	b.block = bb
	return bb
}

// SetBlock switches the insertion point without creating a new block,
// e.g. to resume filling in a block created earlier for a forward branch.
func (b *Builder) SetBlock(bb *BasicBlock) { b.block = bb }

// CurrentBlock returns the block instructions are currently appended to.
func (b *Builder) CurrentBlock() *BasicBlock { return b.block }

// NewValue allocates a fresh SSA register of the given type, scoped to the
// function currently being built.
func (b *Builder) NewValue(t TypeRef) Value {
	v := Value{ID: b.function.numValues, Type: t}
	b.function.numValues++
	return v
}

// Emit appends inst to the current block.
func (b *Builder) Emit(inst *Instruction) {
	b.block.Instructions = append(b.block.Instructions, inst)
}

// EmitConst emits an OpConst instruction and returns its result value.
func (b *Builder) EmitConst(t TypeRef, v int64) Value {
	res := b.NewValue(t)
	b.Emit(&Instruction{Op: OpConst, Result: res, ConstVal: v})
	return res
}

// EmitBinOp emits a two-operand arithmetic/bitwise/compare instruction.
func (b *Builder) EmitBinOp(op Op, resultType TypeRef, lhs, rhs Value) Value {
	res := b.NewValue(resultType)
	b.Emit(&Instruction{Op: op, Result: res, Operands: []Value{lhs, rhs}})
	return res
}

// EmitCallExtern emits a call to a declared environment function.
func (b *Builder) EmitCallExtern(name string, args []Value, ret TypeRef) Value {
	res := Value{Type: TypeVoid}
	if ret != TypeVoid {
		res = b.NewValue(ret)
	}
	b.Emit(&Instruction{Op: OpCallExtern, Result: res, Operands: args, Callee: name})
	return res
}

// EmitCall emits a call to a sibling function within the same module.
func (b *Builder) EmitCall(name string, args []Value, ret TypeRef) Value {
	res := Value{Type: TypeVoid}
	if ret != TypeVoid {
		res = b.NewValue(ret)
	}
	b.Emit(&Instruction{Op: OpCall, Result: res, Operands: args, Callee: name})
	return res
}

// SetTerminator closes the current block with term.
func (b *Builder) SetTerminator(term Terminator) { b.block.Terminator = term }
