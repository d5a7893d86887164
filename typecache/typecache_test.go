// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package typecache

import (
	"testing"

	"github.com/probechain/solc/ast"
)

func TestAssignIsMonotonicAndStable(t *testing.T) {
	c := New()
	a := &ast.VarDecl{Name: "a"}
	b := &ast.VarDecl{Name: "b"}

	if slot := c.Assign(a); slot != 0 {
		t.Fatalf("first slot = %d, want 0", slot)
	}
	if slot := c.Assign(b); slot != 1 {
		t.Fatalf("second slot = %d, want 1", slot)
	}
	if slot := c.Assign(a); slot != 0 {
		t.Fatalf("re-assigning a changed its slot to %d", slot)
	}
}

func TestConstantsNeverOccupyStorage(t *testing.T) {
	c := New()
	constant := &ast.VarDecl{Name: "MAX", IsConstant: true}
	c.Assign(constant)
	if _, ok := c.Slot(constant); ok {
		t.Fatal("constant variable should not receive a storage slot")
	}
}

func TestAssignAllSkipsConstants(t *testing.T) {
	c := New()
	vars := []*ast.VarDecl{
		{Name: "MAX", IsConstant: true},
		{Name: "owner"},
		{Name: "balance"},
	}
	c.AssignAll(vars)

	if _, ok := c.Slot(vars[0]); ok {
		t.Fatal("constant should have no slot")
	}
	ownerSlot, ok := c.Slot(vars[1])
	if !ok || ownerSlot != 0 {
		t.Fatalf("owner slot = %v, %v, want 0, true", ownerSlot, ok)
	}
	balanceSlot, ok := c.Slot(vars[2])
	if !ok || balanceSlot != 1 {
		t.Fatalf("balance slot = %v, %v, want 1, true", balanceSlot, ok)
	}
}
