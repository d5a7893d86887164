// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// ABI marshalling: static parameters occupy fixed 32-byte big-endian slots
// (right-aligned for integers/addresses, left-aligned for fixed-size byte
// arrays); dynamic parameters are an offset+length+payload triple. Selector
// computation is delegated to hashutil.
package codegen

import (
	"github.com/probechain/solc/ast"
	"github.com/probechain/solc/ir"
)

const wordSize = 32 // bytes; the fixed static-parameter slot width
const selectorSize = 4

// isDynamicType reports whether t is ABI-dynamic (offset+length+payload)
// rather than a fixed 32-byte slot.
func isDynamicType(t ast.Type) bool {
	switch tt := t.(type) {
	case ast.BytesType, ast.StringType:
		return true
	case ast.ArrayType:
		return tt.IsDynamic() || isDynamicType(tt.Elem)
	default:
		return false
	}
}

// staticParamOffset returns param index i's byte offset into the
// call-data payload (after the 4-byte selector), assuming every
// parameter up to i is statically sized. Contracts with dynamic
// parameters before index i therefore only get an approximate offset;
// full head/tail relocation for dynamic types is not implemented.
func staticParamOffset(i int) int {
	return selectorSize + i*wordSize
}

// decodeParams emits the call-data loads for fn's parameters into fresh
// SSA values, one per parameter, in declaration order.
func (fc *funcCompiler) decodeParams(fn *ast.FunctionDecl) []ir.Value {
	word := fc.c.word
	vals := make([]ir.Value, len(fn.Params))
	for i, p := range fn.Params {
		offset := fc.b.EmitConst(word, int64(staticParamOffset(i)))
		size := fc.b.EmitConst(word, wordSize)
		addr := fc.b.NewValue(ir.TypePtr)
		fc.b.Emit(&ir.Instruction{Op: ir.OpAlloc, Result: addr, Operands: []ir.Value{size}})
		fc.b.EmitCallExtern("callDataCopy", []ir.Value{addr, offset, size}, ir.TypeVoid)

		loaded := fc.b.NewValue(word)
		fc.b.Emit(&ir.Instruction{Op: ir.OpLoad, Result: loaded, Operands: []ir.Value{addr}})
		vals[i] = loaded

		if p.IsIndexed {
			// indexed only means something on event parameters; a stray
			// indexed function parameter is a parser-level diagnostic and
			// never reaches codegen.
			_ = p
		}
		fc.declareLocal(p, loaded)
	}
	return vals
}

// encodeReturn packs vals into a single contiguous return buffer, one
// 32-byte slot per value, and returns the buffer's address and total
// length ready for the `finish` extern.
func (fc *funcCompiler) encodeReturn(vals []ir.Value) (ir.Value, ir.Value) {
	word := fc.c.word
	total := len(vals) * wordSize
	sizeConst := fc.b.EmitConst(word, int64(total))
	addr := fc.b.NewValue(ir.TypePtr)
	fc.b.Emit(&ir.Instruction{Op: ir.OpAlloc, Result: addr, Operands: []ir.Value{sizeConst}})
	for i, v := range vals {
		slotOffset := fc.b.EmitConst(word, int64(i*wordSize))
		slotAddr := fc.b.NewValue(ir.TypePtr)
		fc.b.Emit(&ir.Instruction{Op: ir.OpAdd, Result: slotAddr, Operands: []ir.Value{addr, slotOffset}})
		fc.b.Emit(&ir.Instruction{Op: ir.OpStore, Operands: []ir.Value{slotAddr, v}})
	}
	return addr, sizeConst
}

// encodeEventData mirrors encodeReturn for a `log` call's non-indexed
// data segment; indexed parameters go into the topic list instead.
func (fc *funcCompiler) encodeEventData(vals []ir.Value) (ir.Value, ir.Value) {
	return fc.encodeReturn(vals)
}
