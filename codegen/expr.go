// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Expression lowering: LValue-vs-RValue handling (an Identifier used as an
// assignment target lowers to its storage/local address instead of a load)
// and cast lowering (ImplicitCastExpr/ExplicitCastExpr to zext/sext/trunc,
// chosen by comparing source and target bit widths).
package codegen

import (
	"strconv"
	"strings"

	"github.com/probechain/solc/ast"
	"github.com/probechain/solc/diag"
	"github.com/probechain/solc/ir"
	"github.com/probechain/solc/token"
	"github.com/probechain/solc/typecache"
)

var binOpMap = map[string]ir.Op{
	"+": ir.OpAdd, "-": ir.OpSub, "*": ir.OpMul, "/": ir.OpDiv, "%": ir.OpMod,
	"&": ir.OpAnd, "|": ir.OpOr, "^": ir.OpXor, "<<": ir.OpShl, ">>": ir.OpShr,
	"==": ir.OpEq, "!=": ir.OpNeq, "<": ir.OpLt, "<=": ir.OpLte, ">": ir.OpGt, ">=": ir.OpGte,
	"&&": ir.OpAnd, "||": ir.OpOr,
}

var compoundAssignOp = map[string]string{
	"+=": "+", "-=": "-", "*=": "*", "/=": "/", "%=": "%",
	"&=": "&", "|=": "|", "^=": "^", "<<=": "<<", ">>=": ">>",
}

func (fc *funcCompiler) compileExpr(e ast.Expression) ir.Value {
	switch expr := e.(type) {
	case *ast.NumberLit:
		return fc.b.EmitConst(fc.c.word, parseNumberLit(expr.Raw))
	case *ast.BooleanLit:
		v := int64(0)
		if expr.Value {
			v = 1
		}
		return fc.b.EmitConst(ir.TypeBool, v)
	case *ast.StringLit:
		// A string/bytes literal's payload address is out of scope for
		// this fixed-word register model; its length stands in for it.
		return fc.b.EmitConst(fc.c.word, int64(len(expr.Value)))
	case *ast.Identifier:
		return fc.compileIdentifierRead(expr)
	case *ast.ParenExpr:
		return fc.compileExpr(expr.Sub)
	case *ast.UnaryExpr:
		return fc.compileUnary(expr)
	case *ast.BinaryExpr:
		return fc.compileBinary(expr)
	case *ast.TernaryExpr:
		return fc.compileTernary(expr)
	case *ast.ImplicitCastExpr:
		return fc.compileCast(expr.Sub, expr.Kind, expr.Type())
	case *ast.ExplicitCastExpr:
		return fc.compileCast(expr.Sub, expr.Kind, expr.To)
	case *ast.CallExpr:
		return fc.compileCall(expr)
	case *ast.MemberExpr:
		fc.c.diags.Report(token.Position{}, diag.ErrUnimplementedToken).Arg("member access in code generation")
		return fc.compileExpr(expr.Base)
	case *ast.IndexAccessExpr:
		fc.c.diags.Report(token.Position{}, diag.ErrUnimplementedToken).Arg("index access in code generation")
		return fc.compileExpr(expr.Base)
	case *ast.NewExpr:
		fc.c.diags.Report(token.Position{}, diag.ErrUnimplementedToken).Arg("new expression in code generation")
		return fc.b.EmitConst(fc.c.word, 0)
	default:
		fc.c.diags.Report(token.Position{}, diag.ErrUnimplementedToken).Arg("expression kind in code generation")
		return fc.b.EmitConst(fc.c.word, 0)
	}
}

// parseNumberLit accepts the decimal/hex forms the scanner passes through
// verbatim; a parse failure yields 0 alongside whatever diagnostic the
// parser has already raised.
func parseNumberLit(raw string) int64 {
	raw = strings.ReplaceAll(raw, "_", "")
	n, err := strconv.ParseInt(raw, 0, 64)
	if err != nil {
		return 0
	}
	return n
}

func (fc *funcCompiler) compileIdentifierRead(id *ast.Identifier) ir.Value {
	vd, ok := id.ResolvedDecl.(*ast.VarDecl)
	if !ok {
		fc.c.diags.Report(token.Position{}, diag.ErrExpected).Arg("a resolved variable")
		return fc.b.EmitConst(fc.c.word, 0)
	}
	if vd.IsStateVariable {
		return fc.loadStateVar(vd)
	}
	if v, ok := fc.locals[vd]; ok {
		return v
	}
	v := fc.b.EmitConst(fc.c.word, 0)
	fc.declareLocal(vd, v)
	return v
}

func (fc *funcCompiler) storeIdentifier(id *ast.Identifier, val ir.Value) {
	vd, ok := id.ResolvedDecl.(*ast.VarDecl)
	if !ok {
		fc.c.diags.Report(token.Position{}, diag.ErrExpected).Arg("an assignable variable")
		return
	}
	if vd.IsStateVariable {
		fc.storeStateVar(vd, val)
		return
	}
	fc.declareLocal(vd, val)
}

func (fc *funcCompiler) slotKeyAddr(slot typecache.StorageSlot) ir.Value {
	size := fc.b.EmitConst(fc.c.word, wordSize)
	addr := fc.b.NewValue(ir.TypePtr)
	fc.b.Emit(&ir.Instruction{Op: ir.OpAlloc, Result: addr, Operands: []ir.Value{size}})
	slotConst := fc.b.EmitConst(fc.c.word, int64(slot))
	fc.b.Emit(&ir.Instruction{Op: ir.OpStore, Operands: []ir.Value{addr, slotConst}})
	return addr
}

func (fc *funcCompiler) loadStateVar(vd *ast.VarDecl) ir.Value {
	if vd.IsConstant {
		if vd.InitialValue != nil {
			return fc.compileExpr(vd.InitialValue)
		}
		return fc.b.EmitConst(fc.c.word, 0)
	}
	slot, _ := fc.cache.Slot(vd)
	keyAddr := fc.slotKeyAddr(slot)
	size := fc.b.EmitConst(fc.c.word, wordSize)
	valAddr := fc.b.NewValue(ir.TypePtr)
	fc.b.Emit(&ir.Instruction{Op: ir.OpAlloc, Result: valAddr, Operands: []ir.Value{size}})
	fc.b.EmitCallExtern("storageLoad", []ir.Value{keyAddr, valAddr}, ir.TypeVoid)
	loaded := fc.b.NewValue(fc.c.word)
	fc.b.Emit(&ir.Instruction{Op: ir.OpLoad, Result: loaded, Operands: []ir.Value{valAddr}})
	swapped := fc.b.NewValue(fc.c.word)
	fc.b.Emit(&ir.Instruction{Op: ir.OpBswap256, Result: swapped, Operands: []ir.Value{loaded}})
	return swapped
}

func (fc *funcCompiler) storeStateVar(vd *ast.VarDecl, val ir.Value) {
	if vd.IsConstant {
		fc.c.diags.Report(token.Position{}, diag.ErrExpected).Arg("a non-constant storage variable")
		return
	}
	slot, _ := fc.cache.Slot(vd)
	keyAddr := fc.slotKeyAddr(slot)
	swapped := fc.b.NewValue(fc.c.word)
	fc.b.Emit(&ir.Instruction{Op: ir.OpBswap256, Result: swapped, Operands: []ir.Value{val}})
	size := fc.b.EmitConst(fc.c.word, wordSize)
	valAddr := fc.b.NewValue(ir.TypePtr)
	fc.b.Emit(&ir.Instruction{Op: ir.OpAlloc, Result: valAddr, Operands: []ir.Value{size}})
	fc.b.Emit(&ir.Instruction{Op: ir.OpStore, Operands: []ir.Value{valAddr, swapped}})
	fc.b.EmitCallExtern("storageStore", []ir.Value{keyAddr, valAddr}, ir.TypeVoid)
}

func (fc *funcCompiler) compileUnary(u *ast.UnaryExpr) ir.Value {
	switch u.Operator {
	case "!":
		v := fc.compileExpr(u.Sub)
		one := fc.b.EmitConst(ir.TypeBool, 1)
		return fc.b.EmitBinOp(ir.OpXor, ir.TypeBool, v, one)
	case "-":
		v := fc.compileExpr(u.Sub)
		zero := fc.b.EmitConst(fc.c.word, 0)
		return fc.b.EmitBinOp(ir.OpSub, fc.c.word, zero, v)
	case "~":
		v := fc.compileExpr(u.Sub)
		res := fc.b.NewValue(fc.c.word)
		fc.b.Emit(&ir.Instruction{Op: ir.OpNot, Result: res, Operands: []ir.Value{v}})
		return res
	case "++", "--":
		return fc.compileIncDec(u)
	default:
		fc.c.diags.Report(token.Position{}, diag.ErrUnimplementedToken).Arg("unary operator " + u.Operator)
		return fc.compileExpr(u.Sub)
	}
}

func (fc *funcCompiler) compileIncDec(u *ast.UnaryExpr) ir.Value {
	id, ok := u.Sub.(*ast.Identifier)
	if !ok {
		fc.c.diags.Report(token.Position{}, diag.ErrUnimplementedToken).Arg("increment/decrement of a non-identifier")
		return fc.compileExpr(u.Sub)
	}
	old := fc.compileIdentifierRead(id)
	one := fc.b.EmitConst(fc.c.word, 1)
	op := ir.OpAdd
	if u.Operator == "--" {
		op = ir.OpSub
	}
	newVal := fc.b.EmitBinOp(op, fc.c.word, old, one)
	fc.storeIdentifier(id, newVal)
	if u.IsPrefix {
		return newVal
	}
	return old
}

func (fc *funcCompiler) compileBinary(be *ast.BinaryExpr) ir.Value {
	if be.Operator == "=" {
		val := fc.compileExpr(be.RHS)
		if id, ok := be.LHS.(*ast.Identifier); ok {
			fc.storeIdentifier(id, val)
		} else {
			fc.c.diags.Report(token.Position{}, diag.ErrUnimplementedToken).Arg("assignment to a non-identifier lvalue")
		}
		return val
	}
	if base, ok := compoundAssignOp[be.Operator]; ok {
		id, ok := be.LHS.(*ast.Identifier)
		if !ok {
			fc.c.diags.Report(token.Position{}, diag.ErrUnimplementedToken).Arg("compound assignment to a non-identifier lvalue")
			return fc.compileExpr(be.RHS)
		}
		lhs := fc.compileIdentifierRead(id)
		rhs := fc.compileExpr(be.RHS)
		op := binOpMap[base]
		result := fc.b.EmitBinOp(op, resultType(be.Type(), fc.c.word), lhs, rhs)
		fc.storeIdentifier(id, result)
		return result
	}

	lhs := fc.compileExpr(be.LHS)
	rhs := fc.compileExpr(be.RHS)
	op, ok := binOpMap[be.Operator]
	if !ok {
		fc.c.diags.Report(token.Position{}, diag.ErrUnimplementedToken).Arg("binary operator " + be.Operator)
		return lhs
	}
	return fc.b.EmitBinOp(op, resultType(be.Type(), fc.c.word), lhs, rhs)
}

func resultType(t ast.Type, word ir.TypeRef) ir.TypeRef {
	if _, ok := t.(ast.BoolType); ok {
		return ir.TypeBool
	}
	return word
}

// compileTernary lowers to a single select instruction rather than a
// three-block branch-and-phi: the ternary form has no statement-level
// side effects to sequence in this codegen's expression grammar, so both
// arms are evaluated eagerly rather than short-circuited.
func (fc *funcCompiler) compileTernary(t *ast.TernaryExpr) ir.Value {
	cond := fc.compileExpr(t.Cond)
	thenVal := fc.compileExpr(t.Then)
	elseVal := fc.compileExpr(t.Else)
	res := fc.b.NewValue(thenVal.Type)
	fc.b.Emit(&ir.Instruction{Op: ir.OpSelect, Result: res, Operands: []ir.Value{cond, thenVal, elseVal}})
	return res
}

// compileCast lowers a cast to zext/sext/trunc by comparing bit widths,
// or a plain load-through when the cast is between reference-compatible
// types the fixed-word model does not otherwise distinguish.
func (fc *funcCompiler) compileCast(sub ast.Expression, kind ast.CastKind, to ast.Type) ir.Value {
	v := fc.compileExpr(sub)
	fromInt, fromOK := sub.Type().(ast.IntegerType)
	toInt, toOK := to.(ast.IntegerType)
	if !fromOK || !toOK {
		return v
	}
	if toInt.IntKind.Bits == fromInt.IntKind.Bits {
		return v
	}
	res := fc.b.NewValue(fc.c.word)
	if toInt.IntKind.Bits > fromInt.IntKind.Bits {
		op := ir.OpZext
		if fromInt.IntKind.Signed {
			op = ir.OpSext
		}
		fc.b.Emit(&ir.Instruction{Op: op, Result: res, Operands: []ir.Value{v}})
	} else {
		fc.b.Emit(&ir.Instruction{Op: ir.OpTrunc, Result: res, Operands: []ir.Value{v}})
	}
	return res
}

func (fc *funcCompiler) compileCall(ce *ast.CallExpr) ir.Value {
	id, ok := ce.Callee.(*ast.Identifier)
	if !ok {
		fc.c.diags.Report(token.Position{}, diag.ErrUnimplementedToken).Arg("call through a non-identifier callee")
		return fc.b.EmitConst(fc.c.word, 0)
	}
	fn, ok := id.ResolvedDecl.(*ast.FunctionDecl)
	if !ok {
		fc.c.diags.Report(token.Position{}, diag.ErrExpected).Arg("a callable function")
		return fc.b.EmitConst(fc.c.word, 0)
	}
	args := make([]ir.Value, len(ce.Args))
	for i, a := range ce.Args {
		args[i] = fc.compileExpr(a)
	}
	ret := fc.c.word
	if len(fn.ReturnParams) == 0 {
		ret = ir.TypeVoid
	}
	return fc.b.EmitCall(fn.Name, args, ret)
}
