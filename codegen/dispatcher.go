// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Selector dispatch: a call-data-size guard, a byte-swapped 4-byte selector
// compared against every externally-callable function's canonical-signature
// hash, and a fallback-or-revert default.
package codegen

import (
	"strconv"

	"github.com/probechain/solc/ast"
	"github.com/probechain/solc/hashutil"
	"github.com/probechain/solc/ir"
	"github.com/probechain/solc/typecache"
)

func (c *Compiler) compileDispatcher(b *ir.Builder, cd *ast.ContractDecl, cache *typecache.Cache) {
	word := c.word
	b.StartFunction(DispatcherEntryName, nil, ir.TypeVoid)

	entry := b.NewBlock("entry")
	size := b.EmitCallExtern("getCallDataSize", nil, word)
	four := b.EmitConst(word, 4)
	tooShort := b.EmitBinOp(ir.OpLt, ir.TypeBool, size, four)

	fallbackBB := b.NewBlock("fallback")
	dispatchBB := b.NewBlock("dispatch")
	b.SetBlock(entry)
	b.SetTerminator(&ir.TermCondBr{Cond: tooShort, TrueTarget: fallbackBB, FalseTarget: dispatchBB})

	c.compileFallback(b, cd, fallbackBB)
	c.compileSelectorChain(b, cd, dispatchBB, fallbackBB)
}

// compileFallback lowers the "call-data too short, or no selector
// matched" path: invoke the source language's fallback function if the
// contract declared one, otherwise revert with no return data.
func (c *Compiler) compileFallback(b *ir.Builder, cd *ast.ContractDecl, fallbackBB *ir.BasicBlock) {
	b.SetBlock(fallbackBB)
	if cd.Fallback != nil {
		b.EmitCall(ast.FallbackName, nil, ir.TypeVoid)
		b.SetTerminator(&ir.TermRet{})
		return
	}
	zeroAddr := b.EmitConst(ir.TypePtr, 0)
	zeroLen := b.EmitConst(c.word, 0)
	b.EmitCallExtern("revert", []ir.Value{zeroAddr, zeroLen}, ir.TypeVoid)
	b.SetTerminator(&ir.TermRevert{})
}

// compileSelectorChain reads and byte-swaps the 4-byte selector, then
// walks cd's externally-callable functions as a linear if/else-if chain
// comparing against each one's precomputed selector constant.
func (c *Compiler) compileSelectorChain(b *ir.Builder, cd *ast.ContractDecl, dispatchBB, fallbackBB *ir.BasicBlock) {
	word := c.word
	b.SetBlock(dispatchBB)

	four := b.EmitConst(word, 4)
	zeroOff := b.EmitConst(word, 0)
	selAddr := b.NewValue(ir.TypePtr)
	b.Emit(&ir.Instruction{Op: ir.OpAlloc, Result: selAddr, Operands: []ir.Value{four}})
	b.EmitCallExtern("callDataCopy", []ir.Value{selAddr, zeroOff, four}, ir.TypeVoid)
	rawSel := b.NewValue(word)
	b.Emit(&ir.Instruction{Op: ir.OpLoad, Result: rawSel, Operands: []ir.Value{selAddr}})
	selector := b.NewValue(word)
	b.Emit(&ir.Instruction{Op: ir.OpBswap256, Result: selector, Operands: []ir.Value{rawSel}})

	fns := cd.ExternalFunctions()
	if len(fns) == 0 {
		b.SetTerminator(&ir.TermBr{Target: fallbackBB})
		return
	}

	cur := dispatchBB
	for i, fn := range fns {
		b.SetBlock(cur)
		selConst := b.EmitConst(word, int64(hashutil.SelectorUint32(fn.CanonicalSignature())))
		eq := b.EmitBinOp(ir.OpEq, ir.TypeBool, selector, selConst)

		callBB := b.NewBlock(fn.Name + ".dispatch")
		var nextBB *ir.BasicBlock
		if i == len(fns)-1 {
			nextBB = fallbackBB
		} else {
			nextBB = b.NewBlock("check." + strconv.Itoa(i+1))
		}

		b.SetBlock(cur)
		b.SetTerminator(&ir.TermCondBr{Cond: eq, TrueTarget: callBB, FalseTarget: nextBB})

		b.SetBlock(callBB)
		c.compileDispatchCall(b, cd, fn)

		cur = nextBB
	}
}

// compileDispatchCall decodes fn's ABI parameters out of call-data, calls
// fn, and encodes its return value (or an empty buffer for a void
// function) through the `finish` extern.
func (c *Compiler) compileDispatchCall(b *ir.Builder, cd *ast.ContractDecl, fn *ast.FunctionDecl) {
	fc := c.newFuncCompiler(b, cd, nil, fn)
	args := fc.decodeParams(fn)

	ret := c.word
	if len(fn.ReturnParams) == 0 {
		ret = ir.TypeVoid
	}
	result := b.EmitCall(fn.Name, args, ret)

	if len(fn.ReturnParams) == 0 {
		emptyAddr := b.EmitConst(ir.TypePtr, 0)
		emptyLen := b.EmitConst(c.word, 0)
		b.EmitCallExtern("finish", []ir.Value{emptyAddr, emptyLen}, ir.TypeVoid)
	} else {
		addr, size := fc.encodeReturn([]ir.Value{result})
		b.EmitCallExtern("finish", []ir.Value{addr, size}, ir.TypeVoid)
	}
	b.SetTerminator(&ir.TermRet{})
}
