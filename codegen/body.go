// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Function-body code generation: a statement/expression visitor keeping a
// locals table (VarDecl -> current SSA value), temp_value_table (implicit
// through Go's own call stack, since every lowering call directly returns
// the ir.Value it produced) and basic_block_table (implicit through the
// ir.Builder's own block list). Control flow lowers if/while/do-while/for/
// break/continue/return to conditional branches converging on a single
// per-function exit block.
package codegen

import (
	"github.com/probechain/solc/ast"
	"github.com/probechain/solc/diag"
	"github.com/probechain/solc/hashutil"
	"github.com/probechain/solc/ir"
	"github.com/probechain/solc/token"
	"github.com/probechain/solc/typecache"
)

type loopCtx struct {
	breakTarget    *ir.BasicBlock
	continueTarget *ir.BasicBlock
}

// funcCompiler lowers one function body. It is created fresh per function
// by the driver and discarded once the function's blocks are complete.
type funcCompiler struct {
	c     *Compiler
	b     *ir.Builder
	cd    *ast.ContractDecl
	fn    *ast.FunctionDecl
	cache *typecache.Cache
	loop  []loopCtx

	locals map[*ast.VarDecl]ir.Value // local variable declaration -> its current SSA value
	end    *ir.BasicBlock            // convergence block every return branches to
	retVal *ir.Value                 // the function's single return-value slot, if any
}

func (c *Compiler) newFuncCompiler(b *ir.Builder, cd *ast.ContractDecl, cache *typecache.Cache, fn *ast.FunctionDecl) *funcCompiler {
	return &funcCompiler{c: c, b: b, cd: cd, fn: fn, cache: cache, locals: make(map[*ast.VarDecl]ir.Value)}
}

func (fc *funcCompiler) declareLocal(decl *ast.VarDecl, val ir.Value) {
	fc.locals[decl] = val
}

// compileBody lowers fn.Body's statements into fc.b's current function,
// then converges every return path onto a single exit block that ends in a
// TermRet carrying the return-value slot, if any.
func (fc *funcCompiler) compileBody() {
	if fc.fn.Body == nil {
		return // interface/abstract declarations carry no body
	}
	entry := fc.b.NewBlock("entry")
	// The exit block is created now, ahead of the body, since a `return`
	// nested arbitrarily deep needs a branch target that already exists;
	// it is filled in and terminated only after the body is walked.
	fc.end = fc.b.NewBlock("exit")
	fc.b.SetBlock(entry)

	if len(fc.fn.ReturnParams) == 1 {
		v := fc.b.NewValue(fc.c.word)
		fc.retVal = &v
	}

	fc.compileStmt(fc.fn.Body)

	// Fall off the end of the body without an explicit return: converge.
	if fc.b.CurrentBlock().Terminator == nil {
		fc.b.SetTerminator(&ir.TermBr{Target: fc.end})
	}

	fc.b.SetBlock(fc.end)
	if fc.retVal != nil {
		fc.b.SetTerminator(&ir.TermRet{Value: fc.retVal})
	} else {
		fc.b.SetTerminator(&ir.TermRet{})
	}
}

func (fc *funcCompiler) compileStmt(s ast.Statement) {
	switch st := s.(type) {
	case *ast.Block:
		for _, inner := range st.Stmts {
			if fc.b.CurrentBlock().Terminator != nil {
				return // unreachable code past a return/break/continue
			}
			fc.compileStmt(inner)
		}
	case *ast.DeclStmt:
		fc.compileDeclStmt(st)
	case *ast.ExprStmt:
		fc.compileExpr(st.Expr)
	case *ast.IfStmt:
		fc.compileIf(st)
	case *ast.WhileStmt:
		fc.compileWhile(st)
	case *ast.ForStmt:
		fc.compileFor(st)
	case *ast.ReturnStmt:
		fc.compileReturn(st)
	case *ast.BreakStmt:
		if len(fc.loop) > 0 {
			fc.b.SetTerminator(&ir.TermBr{Target: fc.loop[len(fc.loop)-1].breakTarget})
		}
	case *ast.ContinueStmt:
		if len(fc.loop) > 0 {
			fc.b.SetTerminator(&ir.TermBr{Target: fc.loop[len(fc.loop)-1].continueTarget})
		}
	case *ast.EmitStmt:
		fc.compileEmit(st)
	default:
		fc.c.diags.Report(token.Position{}, diag.ErrUnimplementedToken).Arg("statement kind in code generation")
	}
}

func (fc *funcCompiler) compileDeclStmt(st *ast.DeclStmt) {
	if st.Init == nil {
		for _, v := range st.Vars {
			fc.declareLocal(v, fc.b.EmitConst(fc.c.word, 0))
		}
		return
	}
	val := fc.compileExpr(st.Init)
	if len(st.Vars) == 1 {
		fc.declareLocal(st.Vars[0], val)
		return
	}
	// Tuple-shaped declaration: the single initializer value stands in for
	// every element since this codegen does not model multi-value SSA
	// results; each variable observes the same value.
	for _, v := range st.Vars {
		fc.declareLocal(v, val)
	}
}

func (fc *funcCompiler) compileIf(st *ast.IfStmt) {
	cond := fc.compileExpr(st.Cond)
	// The condition is computed in the block active before thenBB/elseBB/
	// joinBB are created; ir.Builder.NewBlock always advances "current",
	// so the home block is captured up front and its terminator is
	// attached directly once the branch targets exist.
	condBlock := fc.b.CurrentBlock()

	thenBB := fc.b.NewBlock("if.then")
	var elseBB *ir.BasicBlock
	if st.Else != nil {
		elseBB = fc.b.NewBlock("if.else")
	}
	joinBB := fc.b.NewBlock("if.end")

	falseTarget := joinBB
	if elseBB != nil {
		falseTarget = elseBB
	}
	condBlock.Terminator = &ir.TermCondBr{Cond: cond, TrueTarget: thenBB, FalseTarget: falseTarget}

	fc.b.SetBlock(thenBB)
	fc.compileStmt(st.Then)
	if fc.b.CurrentBlock().Terminator == nil {
		fc.b.SetTerminator(&ir.TermBr{Target: joinBB})
	}

	if elseBB != nil {
		fc.b.SetBlock(elseBB)
		fc.compileStmt(st.Else)
		if fc.b.CurrentBlock().Terminator == nil {
			fc.b.SetTerminator(&ir.TermBr{Target: joinBB})
		}
	}

	fc.b.SetBlock(joinBB)
}

func (fc *funcCompiler) compileWhile(st *ast.WhileStmt) {
	pred := fc.b.CurrentBlock()
	headBB := fc.b.NewBlock("while.head")
	pred.Terminator = &ir.TermBr{Target: headBB}
	fc.b.SetBlock(headBB)

	bodyBB := fc.b.NewBlock("while.body")
	endBB := fc.b.NewBlock("while.end")

	fc.b.SetBlock(headBB)
	if st.IsDoWhile {
		fc.b.SetTerminator(&ir.TermBr{Target: bodyBB})
	} else {
		cond := fc.compileExpr(st.Cond)
		fc.b.SetTerminator(&ir.TermCondBr{Cond: cond, TrueTarget: bodyBB, FalseTarget: endBB})
	}

	fc.loop = append(fc.loop, loopCtx{breakTarget: endBB, continueTarget: headBB})
	fc.b.SetBlock(bodyBB)
	fc.compileStmt(st.Body)
	if fc.b.CurrentBlock().Terminator == nil {
		if st.IsDoWhile {
			cond := fc.compileExpr(st.Cond)
			fc.b.SetTerminator(&ir.TermCondBr{Cond: cond, TrueTarget: headBB, FalseTarget: endBB})
		} else {
			fc.b.SetTerminator(&ir.TermBr{Target: headBB})
		}
	}
	fc.loop = fc.loop[:len(fc.loop)-1]

	fc.b.SetBlock(endBB)
}

func (fc *funcCompiler) compileFor(st *ast.ForStmt) {
	if st.Init != nil {
		fc.compileStmt(st.Init)
	}
	pred := fc.b.CurrentBlock()
	headBB := fc.b.NewBlock("for.head")
	pred.Terminator = &ir.TermBr{Target: headBB}
	fc.b.SetBlock(headBB)

	bodyBB := fc.b.NewBlock("for.body")
	stepBB := fc.b.NewBlock("for.step")
	endBB := fc.b.NewBlock("for.end")

	fc.b.SetBlock(headBB)
	if st.Cond != nil {
		cond := fc.compileExpr(st.Cond)
		fc.b.SetTerminator(&ir.TermCondBr{Cond: cond, TrueTarget: bodyBB, FalseTarget: endBB})
	} else {
		fc.b.SetTerminator(&ir.TermBr{Target: bodyBB})
	}

	fc.loop = append(fc.loop, loopCtx{breakTarget: endBB, continueTarget: stepBB})
	fc.b.SetBlock(bodyBB)
	fc.compileStmt(st.Body)
	if fc.b.CurrentBlock().Terminator == nil {
		fc.b.SetTerminator(&ir.TermBr{Target: stepBB})
	}
	fc.loop = fc.loop[:len(fc.loop)-1]

	fc.b.SetBlock(stepBB)
	if st.Step != nil {
		fc.compileStmt(st.Step)
	}
	if fc.b.CurrentBlock().Terminator == nil {
		fc.b.SetTerminator(&ir.TermBr{Target: headBB})
	}

	fc.b.SetBlock(endBB)
}

func (fc *funcCompiler) compileReturn(st *ast.ReturnStmt) {
	if st.Value != nil && fc.retVal != nil {
		v := fc.compileExpr(st.Value)
		fc.b.Emit(&ir.Instruction{Op: ir.OpStore, Operands: []ir.Value{*fc.retVal, v}})
	}
	fc.b.SetTerminator(&ir.TermBr{Target: fc.end})
}

func (fc *funcCompiler) compileEmit(st *ast.EmitStmt) {
	ev, ok := resolveEvent(st.Call.Callee)
	if !ok {
		fc.c.diags.Report(token.Position{}, diag.ErrExpectedEvent)
		return
	}
	var topics []ir.Value
	sigTopic := hashutil.EventTopic(ev.CanonicalSignature())
	topics = append(topics, fc.b.EmitConst(ir.TypePtr, int64(sigTopic[0])<<24))

	var dataVals []ir.Value
	indexed := ev.IndexedParams()
	indexedSet := make(map[*ast.VarDecl]bool, len(indexed))
	for _, p := range indexed {
		indexedSet[p] = true
	}
	for i, arg := range st.Call.Args {
		v := fc.compileExpr(arg)
		if i < len(ev.Params) && indexedSet[ev.Params[i]] {
			topics = append(topics, v)
		} else {
			dataVals = append(dataVals, v)
		}
	}

	addr, size := fc.encodeEventData(dataVals)
	logExtern := logExternName(len(topics))
	args := append([]ir.Value{addr, size}, topics...)
	fc.b.EmitCallExtern(logExtern, args, ir.TypeVoid)
}

func logExternName(numTopics int) string {
	switch numTopics {
	case 0:
		return "log0"
	case 1:
		return "log1"
	case 2:
		return "log2"
	case 3:
		return "log3"
	default:
		return "log4"
	}
}

func resolveEvent(callee ast.Expression) (*ast.EventDecl, bool) {
	id, ok := callee.(*ast.Identifier)
	if !ok {
		return nil, false
	}
	ev, ok := id.ResolvedDecl.(*ast.EventDecl)
	return ev, ok
}
