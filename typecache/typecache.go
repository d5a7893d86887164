// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package typecache owns the code-generator's per-contract bookkeeping
// that must be computed once and looked up many times: storage-slot
// assignment for state variables and the per-VarDecl slot map the
// ABI/body codegen consult when lowering storage reads and writes.
package typecache

import "github.com/probechain/solc/ast"

// StorageSlot identifies a state variable's storage location. Every slot
// occupies one full 256-bit (EVM) or word-sized (EWASM) storage cell;
// packing multiple small variables into one slot is out of scope, so the
// cursor below simply increments by one per variable regardless of type
// width.
type StorageSlot uint64

// Cache holds one contract's slot assignments. It is created fresh per
// contract by the driver and consulted by the body/ABI codegen.
type Cache struct {
	cursor StorageSlot
	slots  map[*ast.VarDecl]StorageSlot
}

// New returns an empty Cache with its storage cursor at zero.
func New() *Cache {
	return &Cache{slots: make(map[*ast.VarDecl]StorageSlot)}
}

// Assign allocates the next storage slot for decl, unless decl is a
// constant (constant state variables never occupy storage) or has already
// been assigned one. Returns the slot decl holds; a constant gets no slot
// and Assign returns 0 for it.
func (c *Cache) Assign(decl *ast.VarDecl) StorageSlot {
	if slot, ok := c.slots[decl]; ok {
		return slot
	}
	if decl.IsConstant {
		return 0
	}
	slot := c.cursor
	c.slots[decl] = slot
	c.cursor++
	return slot
}

// Slot looks up decl's previously assigned storage slot.
func (c *Cache) Slot(decl *ast.VarDecl) (StorageSlot, bool) {
	slot, ok := c.slots[decl]
	return slot, ok
}

// AssignAll walks a contract's state variables in declaration order and
// assigns slots to every non-constant one, matching the source language's
// rule that slot numbers are stable and depend only on declaration order.
func (c *Cache) AssignAll(vars []*ast.VarDecl) {
	for _, v := range vars {
		if v.IsConstant {
			continue
		}
		c.Assign(v)
	}
}
