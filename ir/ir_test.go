// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package ir

import "testing"

func TestWordTypePerTarget(t *testing.T) {
	if TargetEVM.WordType() != TypeI256 {
		t.Fatalf("EVM word type = %s, want i256", TargetEVM.WordType())
	}
	if TargetEWASM.WordType() != TypeU64 {
		t.Fatalf("EWASM word type = %s, want i64", TargetEWASM.WordType())
	}
}

func TestBuilderEmitsAddAndReturn(t *testing.T) {
	b := NewBuilder("Counter", TargetEVM)
	b.DeclareExtern("storageLoad", []TypeRef{TypePtr, TypePtr}, TypeVoid)

	fn := b.StartFunction("get", nil, TypeI256)
	b.NewBlock("entry")
	a := b.EmitConst(TypeI256, 1)
	c := b.EmitConst(TypeI256, 2)
	sum := b.EmitBinOp(OpAdd, TypeI256, a, c)
	b.SetTerminator(&TermRet{Value: &sum})

	if len(fn.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(fn.Blocks))
	}
	bb := fn.Blocks[0]
	if len(bb.Instructions) != 3 {
		t.Fatalf("expected 3 instructions, got %d", len(bb.Instructions))
	}
	if _, ok := bb.Terminator.(*TermRet); !ok {
		t.Fatalf("expected TermRet terminator, got %T", bb.Terminator)
	}

	rendered := b.Module().String()
	if rendered == "" {
		t.Fatal("expected non-empty rendering")
	}
}

func TestNewBlockDedupesLabels(t *testing.T) {
	b := NewBuilder("M", TargetEVM)
	b.StartFunction("f", nil, TypeVoid)
	first := b.NewBlock("loop")
	second := b.NewBlock("loop")
	if first.Label == second.Label {
		t.Fatalf("expected distinct labels, got %q twice", first.Label)
	}
}

func TestDeclareExternIsIdempotent(t *testing.T) {
	b := NewBuilder("M", TargetEVM)
	b.DeclareExtern("finish", []TypeRef{TypePtr, TypeU64}, TypeVoid)
	b.DeclareExtern("finish", []TypeRef{TypePtr, TypeU64}, TypeVoid)
	if len(b.Module().Externs) != 1 {
		t.Fatalf("expected 1 extern decl, got %d", len(b.Module().Externs))
	}
}

func TestCondBrRendersBothTargets(t *testing.T) {
	b := NewBuilder("M", TargetEVM)
	fn := b.StartFunction("f", nil, TypeVoid)
	entry := b.NewBlock("entry")
	thenBB := &BasicBlock{Label: "then"}
	elseBB := &BasicBlock{Label: "else"}
	fn.Blocks = append(fn.Blocks, thenBB, elseBB)
	b.SetBlock(entry)
	cond := b.EmitConst(TypeBool, 1)
	b.SetTerminator(&TermCondBr{Cond: cond, TrueTarget: thenBB, FalseTarget: elseBB})

	term, ok := entry.Terminator.(*TermCondBr)
	if !ok {
		t.Fatalf("expected TermCondBr, got %T", entry.Terminator)
	}
	if term.TrueTarget.Label != "then" || term.FalseTarget.Label != "else" {
		t.Fatalf("unexpected branch targets: %+v", term)
	}
}
